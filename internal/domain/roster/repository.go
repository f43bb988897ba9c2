package roster

import "context"

type Repository interface {
	ListPersons(ctx context.Context, churchID string, filter ListFilter) ([]Person, error)
	GetPerson(ctx context.Context, churchID, personID string) (*Person, error)
	CreatePerson(ctx context.Context, person *Person) error
	UpdatePerson(ctx context.Context, person *Person) error
	UpdatePhotoURL(ctx context.Context, churchID, personID, url string) error
	// DeletePerson removes the person with their attendance history and
	// detaches them from offerings, prayer requests and service schedules.
	DeletePerson(ctx context.Context, churchID, personID string) (bool, error)
}
