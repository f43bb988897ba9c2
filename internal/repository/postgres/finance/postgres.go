package finance

import (
	"context"

	"church-app-go/internal/db"
	domain "church-app-go/internal/domain/finance"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) scoped(ctx context.Context, churchID string, filter domain.ListFilter, kindColumn string) *gorm.DB {
	query := r.db.WithContext(ctx).Where("church_id = ?", churchID)
	if filter.From != nil {
		query = query.Where("date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("date <= ?", *filter.To)
	}
	if filter.Kind != "" {
		query = query.Where(kindColumn+" = ?", filter.Kind)
	}
	return query.Order("date desc, created_at desc")
}

func (r *PostgresRepository) ListOfferings(ctx context.Context, churchID string, filter domain.ListFilter) ([]domain.Offering, error) {
	var offerings []domain.Offering
	if err := r.scoped(ctx, churchID, filter, "type").Find(&offerings).Error; err != nil {
		return nil, err
	}
	return offerings, nil
}

func (r *PostgresRepository) GetOffering(ctx context.Context, churchID, id string) (*domain.Offering, error) {
	var offering domain.Offering
	if err := r.db.WithContext(ctx).Where("id = ? AND church_id = ?", id, churchID).First(&offering).Error; err != nil {
		if db.IsNotFound(err) {
			return nil, domain.ErrOfferingNotFound
		}
		return nil, err
	}
	return &offering, nil
}

func (r *PostgresRepository) CreateOffering(ctx context.Context, offering *domain.Offering) error {
	return r.db.WithContext(ctx).Create(offering).Error
}

func (r *PostgresRepository) UpdateOffering(ctx context.Context, offering *domain.Offering) error {
	return r.db.WithContext(ctx).Model(&domain.Offering{}).
		Where("id = ? AND church_id = ?", offering.ID, offering.ChurchID).
		Updates(map[string]interface{}{
			"type":       offering.Type,
			"amount":     offering.Amount,
			"date":       offering.Date,
			"person_id":  offering.PersonID,
			"notes":      offering.Notes,
			"updated_at": offering.UpdatedAt,
		}).Error
}

func (r *PostgresRepository) DeleteOffering(ctx context.Context, churchID, id string) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&domain.Offering{}, "id = ? AND church_id = ?", id, churchID)
	return db.Affected(result)
}

func (r *PostgresRepository) ListExpenses(ctx context.Context, churchID string, filter domain.ListFilter) ([]domain.Expense, error) {
	var expenses []domain.Expense
	if err := r.scoped(ctx, churchID, filter, "category").Find(&expenses).Error; err != nil {
		return nil, err
	}
	return expenses, nil
}

func (r *PostgresRepository) GetExpense(ctx context.Context, churchID, id string) (*domain.Expense, error) {
	var expense domain.Expense
	if err := r.db.WithContext(ctx).Where("id = ? AND church_id = ?", id, churchID).First(&expense).Error; err != nil {
		if db.IsNotFound(err) {
			return nil, domain.ErrExpenseNotFound
		}
		return nil, err
	}
	return &expense, nil
}

func (r *PostgresRepository) CreateExpense(ctx context.Context, expense *domain.Expense) error {
	return r.db.WithContext(ctx).Create(expense).Error
}

func (r *PostgresRepository) UpdateExpense(ctx context.Context, expense *domain.Expense) error {
	return r.db.WithContext(ctx).Model(&domain.Expense{}).
		Where("id = ? AND church_id = ?", expense.ID, expense.ChurchID).
		Updates(map[string]interface{}{
			"category":    expense.Category,
			"amount":      expense.Amount,
			"date":        expense.Date,
			"description": expense.Description,
			"notes":       expense.Notes,
			"updated_at":  expense.UpdatedAt,
		}).Error
}

func (r *PostgresRepository) DeleteExpense(ctx context.Context, churchID, id string) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&domain.Expense{}, "id = ? AND church_id = ?", id, churchID)
	return db.Affected(result)
}
