package auth

import "time"

const ProviderKakao = "kakao"

// Identity links an external login to an application user.
type Identity struct {
	ID         string    `gorm:"type:uuid;primaryKey"`
	Provider   string    `gorm:"type:varchar(32);not null;uniqueIndex:idx_identities_provider_external"`
	ExternalID string    `gorm:"not null;uniqueIndex:idx_identities_provider_external"`
	UserID     string    `gorm:"type:uuid;not null;index"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (Identity) TableName() string {
	return "identities"
}

// ProviderProfile is what the provider tells us about the account.
type ProviderProfile struct {
	ExternalID string
	Nickname   string
	Email      string
	AvatarURL  string
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	UserID    string
	IsNew     bool
	Profile   ProviderProfile
}
