package schedule

import (
	"context"

	"church-app-go/internal/db"
	domain "church-app-go/internal/domain/schedule"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context, churchID string, filter domain.ListFilter) ([]domain.Listed, error) {
	type row struct {
		domain.Duty
		PersonName *string `gorm:"column:person_name"`
	}

	query := r.db.WithContext(ctx).
		Table("service_schedules").
		Select("service_schedules.*, persons.name AS person_name").
		Joins("left join persons on persons.id = service_schedules.person_id").
		Where("service_schedules.church_id = ?", churchID)
	if filter.From != nil {
		query = query.Where("service_schedules.date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("service_schedules.date <= ?", *filter.To)
	}
	if filter.Status != "" {
		query = query.Where("service_schedules.status = ?", filter.Status)
	}

	var rows []row
	if err := query.Order("service_schedules.date asc, service_schedules.duty_type asc").Scan(&rows).Error; err != nil {
		return nil, err
	}

	items := make([]domain.Listed, 0, len(rows))
	for _, row := range rows {
		item := domain.Listed{Duty: row.Duty}
		if row.PersonName != nil {
			item.PersonName = *row.PersonName
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *PostgresRepository) Get(ctx context.Context, churchID, id string) (*domain.Duty, error) {
	var duty domain.Duty
	if err := r.db.WithContext(ctx).Where("id = ? AND church_id = ?", id, churchID).First(&duty).Error; err != nil {
		if db.IsNotFound(err) {
			return nil, domain.ErrDutyNotFound
		}
		return nil, err
	}
	return &duty, nil
}

func (r *PostgresRepository) Create(ctx context.Context, duty *domain.Duty) error {
	return r.db.WithContext(ctx).Create(duty).Error
}

func (r *PostgresRepository) Update(ctx context.Context, duty *domain.Duty) error {
	return r.db.WithContext(ctx).Model(&domain.Duty{}).
		Where("id = ? AND church_id = ?", duty.ID, duty.ChurchID).
		Updates(map[string]interface{}{
			"duty_type":  duty.DutyType,
			"duty_name":  duty.DutyName,
			"person_id":  duty.PersonID,
			"date":       duty.Date,
			"status":     duty.Status,
			"notes":      duty.Notes,
			"updated_at": duty.UpdatedAt,
		}).Error
}

func (r *PostgresRepository) Delete(ctx context.Context, churchID, id string) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&domain.Duty{}, "id = ? AND church_id = ?", id, churchID)
	return db.Affected(result)
}
