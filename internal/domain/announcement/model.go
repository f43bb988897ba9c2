package announcement

import (
	"sort"
	"time"
)

type Announcement struct {
	ID          string    `gorm:"type:uuid;primaryKey"`
	ChurchID    string    `gorm:"type:uuid;not null;index"`
	Title       string    `gorm:"not null"`
	Content     string    `gorm:"type:text;not null"`
	AuthorID    string    `gorm:"type:uuid;not null"`
	IsPinned    bool      `gorm:"not null;default:false"`
	IsImportant bool      `gorm:"not null;default:false"`
	ImageURL    *string   `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (Announcement) TableName() string {
	return "announcements"
}

type Comment struct {
	ID              string    `gorm:"type:uuid;primaryKey"`
	AnnouncementID  string    `gorm:"type:uuid;not null;index"`
	ChurchID        string    `gorm:"type:uuid;not null"`
	Content         string    `gorm:"type:text;not null"`
	AuthorID        string    `gorm:"type:uuid;not null"`
	AuthorRoleLabel string    `gorm:"type:varchar(32);not null"`
	CreatedAt       time.Time `gorm:"autoCreateTime"`
}

func (Comment) TableName() string {
	return "announcement_comments"
}

// Listed is an announcement as shown in the feed.
type Listed struct {
	Announcement
	AuthorName   string
	CommentCount int64
}

// CommentView carries the author's display name next to the comment.
type CommentView struct {
	Comment
	AuthorName string
}

type CreateInput struct {
	Title       string
	Content     string
	IsPinned    bool
	IsImportant bool
	ImageURL    *string
}

type UpdateInput struct {
	ID          string
	Title       *string
	Content     *string
	IsPinned    *bool
	IsImportant *bool
	ImageURL    *string
}

// Less orders pinned announcements first, then important ones, then the
// newest.
func Less(a, b Announcement) bool {
	if a.IsPinned != b.IsPinned {
		return a.IsPinned
	}
	if a.IsImportant != b.IsImportant {
		return a.IsImportant
	}
	return a.CreatedAt.After(b.CreatedAt)
}

func SortFeed(items []Listed) {
	sort.SliceStable(items, func(i, j int) bool {
		return Less(items[i].Announcement, items[j].Announcement)
	})
}
