package calendar

import (
	"context"
	"time"
)

type Repository interface {
	// ListOverlapping returns events intersecting [from, to], by start time.
	ListOverlapping(ctx context.Context, churchID string, from, to time.Time) ([]Event, error)
	Get(ctx context.Context, churchID, id string) (*Event, error)
	Create(ctx context.Context, event *Event) error
	Update(ctx context.Context, event *Event) error
	Delete(ctx context.Context, churchID, id string) (bool, error)
}
