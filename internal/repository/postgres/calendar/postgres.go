package calendar

import (
	"context"
	"time"

	"church-app-go/internal/db"
	domain "church-app-go/internal/domain/calendar"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListOverlapping(ctx context.Context, churchID string, from, to time.Time) ([]domain.Event, error) {
	var events []domain.Event
	if err := r.db.WithContext(ctx).
		Where("church_id = ? AND start_at <= ? AND end_at >= ?", churchID, to, from).
		Order("start_at asc").
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *PostgresRepository) Get(ctx context.Context, churchID, id string) (*domain.Event, error) {
	var event domain.Event
	if err := r.db.WithContext(ctx).Where("id = ? AND church_id = ?", id, churchID).First(&event).Error; err != nil {
		if db.IsNotFound(err) {
			return nil, domain.ErrEventNotFound
		}
		return nil, err
	}
	return &event, nil
}

func (r *PostgresRepository) Create(ctx context.Context, event *domain.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *PostgresRepository) Update(ctx context.Context, event *domain.Event) error {
	return r.db.WithContext(ctx).Model(&domain.Event{}).
		Where("id = ? AND church_id = ?", event.ID, event.ChurchID).
		Updates(map[string]interface{}{
			"title":       event.Title,
			"description": event.Description,
			"type":        event.Type,
			"start_at":    event.StartAt,
			"end_at":      event.EndAt,
			"location":    event.Location,
			"updated_at":  event.UpdatedAt,
		}).Error
}

func (r *PostgresRepository) Delete(ctx context.Context, churchID, id string) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&domain.Event{}, "id = ? AND church_id = ?", id, churchID)
	return db.Affected(result)
}
