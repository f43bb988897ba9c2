package attendance

import (
	"context"
	"time"
)

type Repository interface {
	ExistsRecord(ctx context.Context, personID string, date time.Time) (bool, error)
	// CreateRecord returns ErrAlreadyCheckedIn when the (person, date)
	// uniqueness constraint rejects the insert.
	CreateRecord(ctx context.Context, record *Record) error
	DeleteRecord(ctx context.Context, churchID, personID string, date time.Time) (bool, error)
	ListByDate(ctx context.Context, churchID string, date time.Time) ([]Record, error)
	ListByRange(ctx context.Context, churchID string, from, to time.Time) ([]Record, error)
	ListForPerson(ctx context.Context, churchID, personID string, from, to time.Time) ([]Record, error)
}
