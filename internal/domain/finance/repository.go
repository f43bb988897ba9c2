package finance

import "context"

type Repository interface {
	// ListOfferings and ListExpenses return newest first.
	ListOfferings(ctx context.Context, churchID string, filter ListFilter) ([]Offering, error)
	GetOffering(ctx context.Context, churchID, id string) (*Offering, error)
	CreateOffering(ctx context.Context, offering *Offering) error
	UpdateOffering(ctx context.Context, offering *Offering) error
	DeleteOffering(ctx context.Context, churchID, id string) (bool, error)

	ListExpenses(ctx context.Context, churchID string, filter ListFilter) ([]Expense, error)
	GetExpense(ctx context.Context, churchID, id string) (*Expense, error)
	CreateExpense(ctx context.Context, expense *Expense) error
	UpdateExpense(ctx context.Context, expense *Expense) error
	DeleteExpense(ctx context.Context, churchID, id string) (bool, error)
}
