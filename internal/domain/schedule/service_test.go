package schedule

import (
	"context"
	"testing"
	"time"

	"church-app-go/internal/domain/church"
	"church-app-go/internal/domain/roster"
	"church-app-go/internal/domain/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDutyRepo struct {
	duties map[string]*Duty
}

func (r *fakeDutyRepo) List(ctx context.Context, churchID string, filter ListFilter) ([]Listed, error) {
	result := make([]Listed, 0)
	for _, duty := range r.duties {
		if duty.ChurchID != churchID {
			continue
		}
		if filter.Status != "" && duty.Status != filter.Status {
			continue
		}
		result = append(result, Listed{Duty: *duty})
	}
	return result, nil
}

func (r *fakeDutyRepo) Get(ctx context.Context, churchID, id string) (*Duty, error) {
	duty, ok := r.duties[id]
	if !ok || duty.ChurchID != churchID {
		return nil, ErrDutyNotFound
	}
	copied := *duty
	return &copied, nil
}

func (r *fakeDutyRepo) Create(ctx context.Context, duty *Duty) error {
	copied := *duty
	r.duties[duty.ID] = &copied
	return nil
}

func (r *fakeDutyRepo) Update(ctx context.Context, duty *Duty) error {
	return r.Create(ctx, duty)
}

func (r *fakeDutyRepo) Delete(ctx context.Context, churchID, id string) (bool, error) {
	duty, ok := r.duties[id]
	if !ok || duty.ChurchID != churchID {
		return false, nil
	}
	delete(r.duties, id)
	return true, nil
}

type fakePersonLookup map[string]string

func (f fakePersonLookup) GetPerson(ctx context.Context, churchID, personID string) (*roster.Person, error) {
	if f[personID] != churchID {
		return nil, roster.ErrPersonNotFound
	}
	return &roster.Person{ID: personID, ChurchID: churchID}, nil
}

var (
	admin  = church.Access{ChurchID: "c1", UserID: "admin", Role: church.RoleAdmin}
	member = church.Access{ChurchID: "c1", UserID: "member", Role: church.RoleMember}
)

func newTestService() (*Service, *fakeDutyRepo) {
	repo := &fakeDutyRepo{duties: map[string]*Duty{}}
	return NewService(repo, fakePersonLookup{"p1": "c1", "p2": "c2"}), repo
}

func TestCreateDuty(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()
	sunday := time.Date(2026, time.October, 18, 10, 0, 0, 0, time.UTC)

	_, err := service.Create(ctx, member, DutyInput{DutyType: "usher", DutyName: "Front door", Date: sunday})
	assert.ErrorIs(t, err, church.ErrForbidden)

	foreign := "p2"
	_, err = service.Create(ctx, admin, DutyInput{DutyType: "usher", DutyName: "Front door", Date: sunday, PersonID: &foreign})
	assert.ErrorIs(t, err, roster.ErrPersonNotFound)

	_, err = service.Create(ctx, admin, DutyInput{DutyType: "usher", DutyName: "Front door", Date: sunday, Status: "postponed"})
	verr, ok := validation.As(err)
	require.True(t, ok)
	assert.Equal(t, "status", verr.Field)

	assigned := "p1"
	duty, err := service.Create(ctx, admin, DutyInput{DutyType: " Usher ", DutyName: "Front door", Date: sunday, PersonID: &assigned})
	require.NoError(t, err)
	assert.Equal(t, "usher", duty.DutyType)
	assert.Equal(t, StatusScheduled, duty.Status)
	assert.Equal(t, time.Date(2026, time.October, 18, 0, 0, 0, 0, time.UTC), duty.Date)
}

func TestSetStatusAndDelete(t *testing.T) {
	service, repo := newTestService()
	ctx := context.Background()

	duty, err := service.Create(ctx, admin, DutyInput{DutyType: "music", DutyName: "Piano", Date: time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)})
	require.NoError(t, err)

	updated, err := service.SetStatus(ctx, admin, duty.ID, StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, updated.Status)
	assert.Equal(t, StatusCompleted, repo.duties[duty.ID].Status)

	_, err = service.SetStatus(ctx, admin, duty.ID, "done")
	_, ok := validation.As(err)
	assert.True(t, ok)

	listed, err := service.List(ctx, member, ListFilter{Status: StatusCompleted})
	require.NoError(t, err)
	assert.Len(t, listed, 1)

	require.NoError(t, service.Delete(ctx, admin, duty.ID))
	assert.ErrorIs(t, service.Delete(ctx, admin, duty.ID), ErrDutyNotFound)
}
