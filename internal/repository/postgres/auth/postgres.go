package auth

import (
	"context"

	"church-app-go/internal/db"
	domain "church-app-go/internal/domain/auth"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) FindIdentity(ctx context.Context, provider, externalID string) (*domain.Identity, error) {
	var identity domain.Identity
	if err := r.db.WithContext(ctx).
		Where("provider = ? AND external_id = ?", provider, externalID).
		First(&identity).Error; err != nil {
		if db.IsNotFound(err) {
			return nil, domain.ErrIdentityNotFound
		}
		return nil, err
	}
	return &identity, nil
}

func (r *PostgresRepository) CreateIdentity(ctx context.Context, identity *domain.Identity) error {
	err := r.db.WithContext(ctx).Create(identity).Error
	if db.IsUniqueViolation(err) {
		return domain.ErrIdentityExists
	}
	return err
}
