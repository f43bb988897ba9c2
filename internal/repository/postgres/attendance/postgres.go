package attendance

import (
	"context"
	"time"

	"church-app-go/internal/db"
	domain "church-app-go/internal/domain/attendance"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ExistsRecord(ctx context.Context, personID string, date time.Time) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Record{}).
		Where("person_id = ? AND date = ?", personID, date).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PostgresRepository) CreateRecord(ctx context.Context, record *domain.Record) error {
	err := r.db.WithContext(ctx).Create(record).Error
	if db.IsUniqueViolation(err) {
		return domain.ErrAlreadyCheckedIn
	}
	return err
}

func (r *PostgresRepository) DeleteRecord(ctx context.Context, churchID, personID string, date time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Delete(&domain.Record{}, "church_id = ? AND person_id = ? AND date = ?", churchID, personID, date)
	return db.Affected(result)
}

func (r *PostgresRepository) ListByDate(ctx context.Context, churchID string, date time.Time) ([]domain.Record, error) {
	var records []domain.Record
	if err := r.db.WithContext(ctx).
		Where("church_id = ? AND date = ?", churchID, date).
		Order("created_at asc").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *PostgresRepository) ListByRange(ctx context.Context, churchID string, from, to time.Time) ([]domain.Record, error) {
	var records []domain.Record
	if err := r.db.WithContext(ctx).
		Where("church_id = ? AND date >= ? AND date <= ?", churchID, from, to).
		Order("date asc, created_at asc").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *PostgresRepository) ListForPerson(ctx context.Context, churchID, personID string, from, to time.Time) ([]domain.Record, error) {
	var records []domain.Record
	if err := r.db.WithContext(ctx).
		Where("church_id = ? AND person_id = ? AND date >= ? AND date <= ?", churchID, personID, from, to).
		Order("date asc").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
