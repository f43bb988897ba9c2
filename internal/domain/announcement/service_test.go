package announcement

import (
	"context"
	"testing"
	"time"

	"church-app-go/internal/domain/church"
	"church-app-go/internal/domain/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAnnouncementRepo struct {
	announcements map[string]*Announcement
	comments      map[string]*Comment
}

func newFakeAnnouncementRepo() *fakeAnnouncementRepo {
	return &fakeAnnouncementRepo{
		announcements: make(map[string]*Announcement),
		comments:      make(map[string]*Comment),
	}
}

func (r *fakeAnnouncementRepo) List(ctx context.Context, churchID string) ([]Listed, error) {
	result := make([]Listed, 0)
	for _, a := range r.announcements {
		if a.ChurchID != churchID {
			continue
		}
		var count int64
		for _, c := range r.comments {
			if c.AnnouncementID == a.ID {
				count++
			}
		}
		result = append(result, Listed{Announcement: *a, CommentCount: count})
	}
	return result, nil
}

func (r *fakeAnnouncementRepo) Get(ctx context.Context, churchID, id string) (*Announcement, error) {
	a, ok := r.announcements[id]
	if !ok || a.ChurchID != churchID {
		return nil, ErrAnnouncementNotFound
	}
	copied := *a
	return &copied, nil
}

func (r *fakeAnnouncementRepo) Create(ctx context.Context, announcement *Announcement) error {
	copied := *announcement
	if copied.CreatedAt.IsZero() {
		copied.CreatedAt = time.Now()
	}
	r.announcements[announcement.ID] = &copied
	return nil
}

func (r *fakeAnnouncementRepo) Update(ctx context.Context, announcement *Announcement) error {
	copied := *announcement
	r.announcements[announcement.ID] = &copied
	return nil
}

func (r *fakeAnnouncementRepo) Delete(ctx context.Context, churchID, id string) (bool, error) {
	a, ok := r.announcements[id]
	if !ok || a.ChurchID != churchID {
		return false, nil
	}
	delete(r.announcements, id)
	for commentID, c := range r.comments {
		if c.AnnouncementID == id {
			delete(r.comments, commentID)
		}
	}
	return true, nil
}

func (r *fakeAnnouncementRepo) ListComments(ctx context.Context, announcementID string) ([]CommentView, error) {
	result := make([]CommentView, 0)
	for _, c := range r.comments {
		if c.AnnouncementID == announcementID {
			result = append(result, CommentView{Comment: *c})
		}
	}
	return result, nil
}

func (r *fakeAnnouncementRepo) GetComment(ctx context.Context, churchID, id string) (*Comment, error) {
	c, ok := r.comments[id]
	if !ok || c.ChurchID != churchID {
		return nil, ErrCommentNotFound
	}
	copied := *c
	return &copied, nil
}

func (r *fakeAnnouncementRepo) CreateComment(ctx context.Context, comment *Comment) error {
	copied := *comment
	r.comments[comment.ID] = &copied
	return nil
}

func (r *fakeAnnouncementRepo) DeleteComment(ctx context.Context, churchID, id string) (bool, error) {
	c, ok := r.comments[id]
	if !ok || c.ChurchID != churchID {
		return false, nil
	}
	delete(r.comments, id)
	return true, nil
}

var (
	admin   = church.Access{ChurchID: "c1", UserID: "admin", Role: church.RoleAdmin}
	owner   = church.Access{ChurchID: "c1", UserID: "owner", IsOwner: true}
	teacher = church.Access{ChurchID: "c1", UserID: "teacher", Role: church.RoleTeacher}
	member  = church.Access{ChurchID: "c1", UserID: "member", Role: church.RoleMember}
)

func TestSortFeed(t *testing.T) {
	base := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	items := []Listed{
		{Announcement: Announcement{ID: "old", CreatedAt: base}},
		{Announcement: Announcement{ID: "important", IsImportant: true, CreatedAt: base.Add(time.Hour)}},
		{Announcement: Announcement{ID: "new", CreatedAt: base.Add(48 * time.Hour)}},
		{Announcement: Announcement{ID: "pinned-old", IsPinned: true, CreatedAt: base.Add(-time.Hour)}},
		{Announcement: Announcement{ID: "pinned-important", IsPinned: true, IsImportant: true, CreatedAt: base.Add(-2 * time.Hour)}},
	}

	SortFeed(items)

	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}
	assert.Equal(t, []string{"pinned-important", "pinned-old", "important", "new", "old"}, ids)
}

func TestCreateRequiresAdmin(t *testing.T) {
	service := NewService(newFakeAnnouncementRepo())
	ctx := context.Background()

	_, err := service.Create(ctx, member, CreateInput{Title: "Retreat", Content: "Sign up"})
	assert.ErrorIs(t, err, church.ErrForbidden)

	_, err = service.Create(ctx, admin, CreateInput{Title: "  ", Content: "Sign up"})
	verr, ok := validation.As(err)
	require.True(t, ok)
	assert.Equal(t, "title", verr.Field)

	created, err := service.Create(ctx, owner, CreateInput{Title: " Retreat ", Content: "Sign up", IsPinned: true})
	require.NoError(t, err)
	assert.Equal(t, "Retreat", created.Title)
	assert.Equal(t, "owner", created.AuthorID)
	assert.True(t, created.IsPinned)
}

func TestUpdateAnnouncement(t *testing.T) {
	repo := newFakeAnnouncementRepo()
	service := NewService(repo)
	ctx := context.Background()

	created, err := service.Create(ctx, admin, CreateInput{Title: "Retreat", Content: "Sign up"})
	require.NoError(t, err)

	_, err = service.Update(ctx, teacher, UpdateInput{ID: created.ID, Title: ptr("x")})
	assert.ErrorIs(t, err, church.ErrForbidden)

	important := true
	updated, err := service.Update(ctx, admin, UpdateInput{ID: created.ID, Content: ptr("Sign up by Sunday"), IsImportant: &important})
	require.NoError(t, err)
	assert.Equal(t, "Sign up by Sunday", updated.Content)
	assert.True(t, updated.IsImportant)

	_, err = service.Update(ctx, admin, UpdateInput{ID: "missing"})
	assert.ErrorIs(t, err, ErrAnnouncementNotFound)
}

func TestCommentsCarryRoleLabel(t *testing.T) {
	repo := newFakeAnnouncementRepo()
	service := NewService(repo)
	ctx := context.Background()

	created, err := service.Create(ctx, admin, CreateInput{Title: "Retreat", Content: "Sign up"})
	require.NoError(t, err)

	fromOwner, err := service.AddComment(ctx, owner, created.ID, "See you there")
	require.NoError(t, err)
	assert.Equal(t, "Admin", fromOwner.AuthorRoleLabel)

	fromTeacher, err := service.AddComment(ctx, teacher, created.ID, "Bringing the kids")
	require.NoError(t, err)
	assert.Equal(t, "Teacher", fromTeacher.AuthorRoleLabel)

	fromMember, err := service.AddComment(ctx, member, created.ID, "Amen")
	require.NoError(t, err)
	assert.Equal(t, "Member", fromMember.AuthorRoleLabel)

	_, err = service.AddComment(ctx, member, "missing", "Hello")
	assert.ErrorIs(t, err, ErrAnnouncementNotFound)

	comments, err := service.ListComments(ctx, member, created.ID)
	require.NoError(t, err)
	assert.Len(t, comments, 3)
}

func TestDeleteCommentPermissions(t *testing.T) {
	repo := newFakeAnnouncementRepo()
	service := NewService(repo)
	ctx := context.Background()

	created, err := service.Create(ctx, admin, CreateInput{Title: "Retreat", Content: "Sign up"})
	require.NoError(t, err)
	first, err := service.AddComment(ctx, member, created.ID, "Amen")
	require.NoError(t, err)
	second, err := service.AddComment(ctx, member, created.ID, "Hallelujah")
	require.NoError(t, err)

	assert.ErrorIs(t, service.DeleteComment(ctx, teacher, first.ID), church.ErrForbidden)
	require.NoError(t, service.DeleteComment(ctx, member, first.ID))
	require.NoError(t, service.DeleteComment(ctx, admin, second.ID))
	assert.ErrorIs(t, service.DeleteComment(ctx, admin, second.ID), ErrCommentNotFound)
}

func TestDeleteAnnouncementRemovesComments(t *testing.T) {
	repo := newFakeAnnouncementRepo()
	service := NewService(repo)
	ctx := context.Background()

	created, err := service.Create(ctx, admin, CreateInput{Title: "Retreat", Content: "Sign up"})
	require.NoError(t, err)
	_, err = service.AddComment(ctx, member, created.ID, "Amen")
	require.NoError(t, err)

	assert.ErrorIs(t, service.Delete(ctx, member, created.ID), church.ErrForbidden)
	require.NoError(t, service.Delete(ctx, admin, created.ID))
	assert.Empty(t, repo.comments)
	assert.ErrorIs(t, service.Delete(ctx, admin, created.ID), ErrAnnouncementNotFound)
}

func ptr[T any](value T) *T {
	return &value
}
