package user

import "time"

type Profile struct {
	UserID    string    `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"type:text;not null;default:''"`
	Phone     *string   `gorm:"type:text"`
	Bio       *string   `gorm:"type:text"`
	Email     *string   `gorm:"type:text"`
	AvatarURL *string   `gorm:"type:text"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Profile) TableName() string {
	return "profiles"
}

type UpdateProfileInput struct {
	UserID    string
	Name      *string
	Phone     *string
	Bio       *string
	AvatarURL *string
}
