package schedule

import "context"

type Repository interface {
	// List orders by date, then duty type.
	List(ctx context.Context, churchID string, filter ListFilter) ([]Listed, error)
	Get(ctx context.Context, churchID, id string) (*Duty, error)
	Create(ctx context.Context, duty *Duty) error
	Update(ctx context.Context, duty *Duty) error
	Delete(ctx context.Context, churchID, id string) (bool, error)
}
