package church

import "time"

const (
	RoleAdmin   = "admin"
	RoleTeacher = "teacher"
	RoleMember  = "member"
)

type Church struct {
	ID          string    `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"not null"`
	Slug        string    `gorm:"not null;uniqueIndex"`
	Description *string   `gorm:"type:text"`
	OwnerID     string    `gorm:"type:uuid;not null;index"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (Church) TableName() string {
	return "churches"
}

type Membership struct {
	ID       string    `gorm:"type:uuid;primaryKey"`
	ChurchID string    `gorm:"type:uuid;not null;uniqueIndex:idx_memberships_church_user"`
	UserID   string    `gorm:"type:uuid;not null;uniqueIndex:idx_memberships_church_user;index"`
	Role     string    `gorm:"type:varchar(16);not null"`
	JoinedAt time.Time `gorm:"autoCreateTime"`
}

func (Membership) TableName() string {
	return "memberships"
}

type InviteToken struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	ChurchID  string    `gorm:"type:uuid;not null;index"`
	Token     string    `gorm:"not null;uniqueIndex"`
	Role      string    `gorm:"type:varchar(16);not null"`
	ExpiresAt time.Time `gorm:"not null"`
	MaxUses   int       `gorm:"not null"`
	UsedCount int       `gorm:"not null;default:0"`
	CreatedBy string    `gorm:"type:uuid;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (InviteToken) TableName() string {
	return "invite_tokens"
}

func (t InviteToken) Expired(now time.Time) bool {
	return t.ExpiresAt.Before(now)
}

func (t InviteToken) Exhausted() bool {
	return t.UsedCount >= t.MaxUses
}

// ChurchWithRole is a church as seen by one user.
type ChurchWithRole struct {
	Church
	Role        string
	MemberCount int64
}

type MemberProfile struct {
	UserID    string
	Role      string
	JoinedAt  time.Time
	Name      string
	Email     *string
	Phone     *string
	AvatarURL *string
	IsOwner   bool
}

type CreateChurchInput struct {
	OwnerID     string
	Name        string
	Description string
}

type UpdateChurchInput struct {
	ChurchID    string
	Name        *string
	Description *string
}

type CreateInviteInput struct {
	ChurchID      string
	CreatedBy     string
	Role          string
	MaxUses       int
	ExpiresInDays int
}

func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleTeacher, RoleMember:
		return true
	default:
		return false
	}
}
