package finance

import (
	"context"
	"testing"
	"time"

	"church-app-go/internal/db/dbtest"
	domain "church-app-go/internal/domain/finance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(m time.Month, d int) time.Time {
	return time.Date(2026, m, d, 0, 0, 0, 0, time.UTC)
}

func TestListOfferingsNewestFirstWithinRange(t *testing.T) {
	repo := NewPostgres(dbtest.Open(t, &domain.Offering{}, &domain.Expense{}))
	ctx := context.Background()

	for _, o := range []domain.Offering{
		{ID: "o1", Type: domain.OfferingTithe, Amount: 10, Date: date(9, 6)},
		{ID: "o2", Type: domain.OfferingTithe, Amount: 20, Date: date(10, 4)},
		{ID: "o3", Type: domain.OfferingMission, Amount: 30, Date: date(10, 11)},
	} {
		o.ChurchID = "c1"
		o.RecordedBy = "admin"
		require.NoError(t, repo.CreateOffering(ctx, &o))
	}

	from, to := date(10, 1), date(10, 31)
	october, err := repo.ListOfferings(ctx, "c1", domain.ListFilter{From: &from, To: &to})
	require.NoError(t, err)
	require.Len(t, october, 2)
	assert.Equal(t, "o3", october[0].ID)

	tithes, err := repo.ListOfferings(ctx, "c1", domain.ListFilter{Kind: domain.OfferingTithe})
	require.NoError(t, err)
	assert.Len(t, tithes, 2)
}

func TestExpenseUpdateAndDelete(t *testing.T) {
	repo := NewPostgres(dbtest.Open(t, &domain.Offering{}, &domain.Expense{}))
	ctx := context.Background()

	expense := domain.Expense{ID: "e1", ChurchID: "c1", Category: "utilities", Amount: 42.5, Date: date(10, 2), RecordedBy: "admin"}
	require.NoError(t, repo.CreateExpense(ctx, &expense))

	expense.Category = "snacks"
	expense.Amount = 12.25
	expense.UpdatedAt = time.Now().UTC()
	require.NoError(t, repo.UpdateExpense(ctx, &expense))

	stored, err := repo.GetExpense(ctx, "c1", "e1")
	require.NoError(t, err)
	assert.Equal(t, "snacks", stored.Category)
	assert.InDelta(t, 12.25, stored.Amount, 0.001)

	_, err = repo.GetExpense(ctx, "c2", "e1")
	assert.ErrorIs(t, err, domain.ErrExpenseNotFound)

	deleted, err := repo.DeleteExpense(ctx, "c1", "e1")
	require.NoError(t, err)
	assert.True(t, deleted)
}
