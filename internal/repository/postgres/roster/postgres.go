package roster

import (
	"context"
	"strings"
	"time"

	"church-app-go/internal/db"
	attendancedomain "church-app-go/internal/domain/attendance"
	financedomain "church-app-go/internal/domain/finance"
	prayerdomain "church-app-go/internal/domain/prayer"
	rosterdomain "church-app-go/internal/domain/roster"
	scheduledomain "church-app-go/internal/domain/schedule"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListPersons(ctx context.Context, churchID string, filter rosterdomain.ListFilter) ([]rosterdomain.Person, error) {
	query := r.db.WithContext(ctx).Where("church_id = ?", churchID)
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Query != "" {
		query = query.Where(`LOWER(name) LIKE ? ESCAPE '\'`, "%"+escapeLike(strings.ToLower(filter.Query))+"%")
	}

	var persons []rosterdomain.Person
	if err := query.Order("name asc").Find(&persons).Error; err != nil {
		return nil, err
	}
	return persons, nil
}

func (r *PostgresRepository) GetPerson(ctx context.Context, churchID, personID string) (*rosterdomain.Person, error) {
	var person rosterdomain.Person
	if err := r.db.WithContext(ctx).Where("id = ? AND church_id = ?", personID, churchID).First(&person).Error; err != nil {
		if db.IsNotFound(err) {
			return nil, rosterdomain.ErrPersonNotFound
		}
		return nil, err
	}
	return &person, nil
}

func (r *PostgresRepository) CreatePerson(ctx context.Context, person *rosterdomain.Person) error {
	return r.db.WithContext(ctx).Create(person).Error
}

func (r *PostgresRepository) UpdatePerson(ctx context.Context, person *rosterdomain.Person) error {
	return r.db.WithContext(ctx).Model(&rosterdomain.Person{}).
		Where("id = ? AND church_id = ?", person.ID, person.ChurchID).
		Updates(map[string]interface{}{
			"name":            person.Name,
			"phone":           person.Phone,
			"age":             person.Age,
			"grade":           person.Grade,
			"type":            person.Type,
			"attendance_days": person.AttendanceDays,
			"notes":           person.Notes,
			"updated_at":      person.UpdatedAt,
		}).Error
}

func (r *PostgresRepository) UpdatePhotoURL(ctx context.Context, churchID, personID, url string) error {
	result := r.db.WithContext(ctx).Model(&rosterdomain.Person{}).
		Where("id = ? AND church_id = ?", personID, churchID).
		Updates(map[string]interface{}{
			"photo_url":  url,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return rosterdomain.ErrPersonNotFound
	}
	return nil
}

// DeletePerson drops attendance history and detaches ledger, prayer and duty
// rows before removing the person, all in one transaction.
func (r *PostgresRepository) DeletePerson(ctx context.Context, churchID, personID string) (bool, error) {
	deleted := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&rosterdomain.Person{}).Where("id = ? AND church_id = ?", personID, churchID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return nil
		}

		if err := tx.Where("person_id = ?", personID).Delete(&attendancedomain.Record{}).Error; err != nil {
			return err
		}
		for _, model := range []interface{}{&financedomain.Offering{}, &prayerdomain.Request{}, &scheduledomain.Duty{}} {
			if err := tx.Model(model).Where("person_id = ?", personID).Update("person_id", nil).Error; err != nil {
				return err
			}
		}

		result := tx.Delete(&rosterdomain.Person{}, "id = ? AND church_id = ?", personID, churchID)
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected > 0
		return nil
	})
	if err != nil {
		if db.IsInvalidID(err) {
			return false, nil
		}
		return false, err
	}
	return deleted, nil
}

func escapeLike(value string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(value)
}
