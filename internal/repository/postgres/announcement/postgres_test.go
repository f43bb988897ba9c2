package announcement

import (
	"context"
	"testing"
	"time"

	"church-app-go/internal/db/dbtest"
	domain "church-app-go/internal/domain/announcement"
	userdomain "church-app-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	return dbtest.Open(t, &domain.Announcement{}, &domain.Comment{}, &userdomain.Profile{})
}

func TestListOrdersFeed(t *testing.T) {
	gormDB := newTestDB(t)
	repo := NewPostgres(gormDB)
	ctx := context.Background()
	base := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, gormDB.Create(&userdomain.Profile{UserID: "admin", Name: "Pastor Kim"}).Error)
	for _, a := range []domain.Announcement{
		{ID: "old", CreatedAt: base},
		{ID: "new", CreatedAt: base.Add(48 * time.Hour)},
		{ID: "important", IsImportant: true, CreatedAt: base.Add(time.Hour)},
		{ID: "pinned", IsPinned: true, CreatedAt: base.Add(-time.Hour)},
	} {
		a.ChurchID = "c1"
		a.Title = a.ID
		a.Content = "body"
		a.AuthorID = "admin"
		require.NoError(t, repo.Create(ctx, &a))
	}
	require.NoError(t, repo.CreateComment(ctx, &domain.Comment{ID: "k1", AnnouncementID: "old", ChurchID: "c1", Content: "hi", AuthorID: "admin", AuthorRoleLabel: "Admin"}))

	items, err := repo.List(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, items, 4)

	ids := []string{items[0].ID, items[1].ID, items[2].ID, items[3].ID}
	assert.Equal(t, []string{"pinned", "important", "new", "old"}, ids)
	assert.Equal(t, "Pastor Kim", items[0].AuthorName)
	assert.Equal(t, int64(1), items[3].CommentCount)
}

func TestDeleteRemovesComments(t *testing.T) {
	gormDB := newTestDB(t)
	repo := NewPostgres(gormDB)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &domain.Announcement{ID: "a1", ChurchID: "c1", Title: "t", Content: "c", AuthorID: "u"}))
	require.NoError(t, repo.CreateComment(ctx, &domain.Comment{ID: "k1", AnnouncementID: "a1", ChurchID: "c1", Content: "hi", AuthorID: "u", AuthorRoleLabel: "Member"}))

	deleted, err := repo.Delete(ctx, "c2", "a1")
	require.NoError(t, err)
	assert.False(t, deleted)

	deleted, err = repo.Delete(ctx, "c1", "a1")
	require.NoError(t, err)
	assert.True(t, deleted)

	var count int64
	require.NoError(t, gormDB.Model(&domain.Comment{}).Count(&count).Error)
	assert.Zero(t, count)
}
