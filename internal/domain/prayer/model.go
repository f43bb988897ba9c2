package prayer

import "time"

const (
	StatusPraying  = "praying"
	StatusAnswered = "answered"
)

var Categories = []string{"general", "health", "family", "work", "church", "mission"}

const DefaultCategory = "general"

type Request struct {
	ID          string  `gorm:"type:uuid;primaryKey"`
	ChurchID    string  `gorm:"type:uuid;not null;index"`
	Title       string  `gorm:"not null"`
	Content     string  `gorm:"type:text;not null"`
	AuthorID    string  `gorm:"type:uuid;not null"`
	IsAnonymous bool    `gorm:"not null;default:false"`
	IsAnswered  bool    `gorm:"not null;default:false"`
	Testimony   *string `gorm:"type:text"`
	AnsweredAt  *time.Time
	PersonID    *string   `gorm:"type:uuid;index"`
	Category    string    `gorm:"type:varchar(32);not null"`
	Status      string    `gorm:"type:varchar(16);not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (Request) TableName() string {
	return "prayer_requests"
}

type Comment struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	PrayerID  string    `gorm:"type:uuid;not null;index"`
	ChurchID  string    `gorm:"type:uuid;not null"`
	Content   string    `gorm:"type:text;not null"`
	AuthorID  string    `gorm:"type:uuid;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Comment) TableName() string {
	return "prayer_comments"
}

type Listed struct {
	Request
	AuthorName   string
	CommentCount int64
}

type CommentView struct {
	Comment
	AuthorName string
}

type Filter struct {
	Status   string
	Category string
}

type CreateInput struct {
	Title       string
	Content     string
	IsAnonymous bool
	Category    string
	PersonID    *string
}

type UpdateInput struct {
	ID          string
	Title       *string
	Content     *string
	IsAnonymous *bool
	Category    *string
	PersonID    *string
}

func ValidCategory(value string) bool {
	for _, category := range Categories {
		if category == value {
			return true
		}
	}
	return false
}

func ValidStatus(value string) bool {
	return value == StatusPraying || value == StatusAnswered
}
