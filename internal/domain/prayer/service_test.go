package prayer

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

type fakePrayerRepo struct {
	requests map[string]*Request
	comments map[string]*Comment
	names    map[string]string
}

func newFakePrayerRepo() *fakePrayerRepo {
	return &fakePrayerRepo{
		requests: make(map[string]*Request),
		comments: make(map[string]*Comment),
		names:    map[string]string{"member": "Grace Kim", "other": "Paul Lee"},
	}
}

func (r *fakePrayerRepo) List(ctx context.Context, churchID string, filter Filter) ([]Listed, error) {
	result := make([]Listed, 0)
	for _, request := range r.requests {
		if request.ChurchID != churchID {
			continue
		}
		if filter.Status != "" && request.Status != filter.Status {
			continue
		}
		if filter.Category != "" && request.Category != filter.Category {
			continue
		}
		result = append(result, Listed{Request: *request, AuthorName: r.names[request.AuthorID]})
	}
	return result, nil
}

func (r *fakePrayerRepo) Get(ctx context.Context, churchID, id string) (*Request, error) {
	request, ok := r.requests[id]
	if !ok || request.ChurchID != churchID {
		return nil, ErrPrayerNotFound
	}
	copied := *request
	return &copied, nil
}

func (r *fakePrayerRepo) Find(ctx context.Context, churchID, id string) (*Listed, error) {
	request, err := r.Get(ctx, churchID, id)
	if err != nil {
		return nil, err
	}
	return &Listed{Request: *request, AuthorName: r.names[request.AuthorID]}, nil
}

func (r *fakePrayerRepo) Create(ctx context.Context, request *Request) error {
	copied := *request
	r.requests[request.ID] = &copied
	return nil
}

func (r *fakePrayerRepo) Update(ctx context.Context, request *Request) error {
	copied := *request
	r.requests[request.ID] = &copied
	return nil
}

func (r *fakePrayerRepo) Delete(ctx context.Context, churchID, id string) (bool, error) {
	request, ok := r.requests[id]
	if !ok || request.ChurchID != churchID {
		return false, nil
	}
	delete(r.requests, id)
	for commentID, comment := range r.comments {
		if comment.PrayerID == id {
			delete(r.comments, commentID)
		}
	}
	return true, nil
}

func (r *fakePrayerRepo) ListComments(ctx context.Context, prayerID string) ([]CommentView, error) {
	result := make([]CommentView, 0)
	for _, comment := range r.comments {
		if comment.PrayerID == prayerID {
			result = append(result, CommentView{Comment: *comment, AuthorName: r.names[comment.AuthorID]})
		}
	}
	return result, nil
}

func (r *fakePrayerRepo) GetComment(ctx context.Context, churchID, id string) (*Comment, error) {
	comment, ok := r.comments[id]
	if !ok || comment.ChurchID != churchID {
		return nil, ErrCommentNotFound
	}
	copied := *comment
	return &copied, nil
}

func (r *fakePrayerRepo) CreateComment(ctx context.Context, comment *Comment) error {
	copied := *comment
	r.comments[comment.ID] = &copied
	return nil
}

func (r *fakePrayerRepo) DeleteComment(ctx context.Context, churchID, id string) (bool, error) {
	comment, ok := r.comments[id]
	if !ok || comment.ChurchID != churchID {
		return false, nil
	}
	delete(r.comments, id)
	return true, nil
}

// fakePersons knows person ids per church.
type fakePersons map[string]string

func (p fakePersons) GetPerson(ctx context.Context, churchID, personID string) (*roster.Person, error) {
	if p[personID] != churchID {
		return nil, roster.ErrPersonNotFound
	}
	return &roster.Person{ID: personID, ChurchID: churchID}, nil
}

func newTestService(repo *fakePrayerRepo) *Service {
	return NewService(repo, fakePersons{"p1": "c1", "p-other": "c2"})
}

var (
	admin  = church.Access{ChurchID: "c1", UserID: "admin", Role: church.RoleAdmin}
	author = church.Access{ChurchID: "c1", UserID: "member", Role: church.RoleMember}
	other  = church.Access{ChurchID: "c1", UserID: "other", Role: church.RoleMember}
)

func TestCreateDefaults(t *testing.T) {
	service := newTestService(newFakePrayerRepo())

	request, err := service.Create(context.Background(), author, CreateInput{Title: "Surgery", Content: "Pray for my mother"})
	require.NoError(t, err)
	assert.Equal(t, StatusPraying, request.Status)
	assert.Equal(t, DefaultCategory, request.Category)
	assert.False(t, request.IsAnswered)
	assert.Equal(t, "member", request.AuthorID)

	_, err = service.Create(context.Background(), author, CreateInput{Title: "x", Content: "y", Category: "lottery"})
	verr, ok := validation.As(err)
	require.True(t, ok)
	assert.Equal(t, "category", verr.Field)
}

func TestAnonymousRedaction(t *testing.T) {
	service := newTestService(newFakePrayerRepo())
	ctx := context.Background()

	created, err := service.Create(ctx, author, CreateInput{Title: "Job", Content: "Interview", IsAnonymous: true, Category: "work"})
	require.NoError(t, err)

	tests := []struct {
		name       string
		viewer     church.Access
		wantAuthor string
		wantName   string
	}{
		{name: "author sees self", viewer: author, wantAuthor: "member", wantName: "Grace Kim"},
		{name: "admin sees author", viewer: admin, wantAuthor: "member", wantName: "Grace Kim"},
		{name: "other member sees nothing", viewer: other, wantAuthor: "", wantName: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := service.List(ctx, tt.viewer, Filter{})
			require.NoError(t, err)
			require.Len(t, items, 1)
			assert.Equal(t, tt.wantAuthor, items[0].AuthorID)
			assert.Equal(t, tt.wantName, items[0].AuthorName)
		})
	}

	item, err := service.Get(ctx, other, created.ID)
	require.NoError(t, err)
	assert.Empty(t, item.AuthorID)
}

func TestMarkAnswered(t *testing.T) {
	service := newTestService(newFakePrayerRepo())
	fixed := time.Date(2026, 10, 15, 8, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return fixed }
	ctx := context.Background()

	created, err := service.Create(ctx, author, CreateInput{Title: "Surgery", Content: "Pray"})
	require.NoError(t, err)

	_, err = service.MarkAnswered(ctx, other, created.ID, nil)
	assert.ErrorIs(t, err, church.ErrForbidden)

	testimony := " Recovered well "
	answered, err := service.MarkAnswered(ctx, author, created.ID, &testimony)
	require.NoError(t, err)
	assert.True(t, answered.IsAnswered)
	assert.Equal(t, StatusAnswered, answered.Status)
	require.NotNil(t, answered.AnsweredAt)
	assert.Equal(t, fixed, *answered.AnsweredAt)
	require.NotNil(t, answered.Testimony)
	assert.Equal(t, "Recovered well", *answered.Testimony)

	praying, err := service.List(ctx, author, Filter{Status: StatusPraying})
	require.NoError(t, err)
	assert.Empty(t, praying)

	done, err := service.List(ctx, author, Filter{Status: StatusAnswered})
	require.NoError(t, err)
	assert.Len(t, done, 1)
}

func TestListRejectsUnknownFilters(t *testing.T) {
	service := newTestService(newFakePrayerRepo())

	_, err := service.List(context.Background(), author, Filter{Status: "forgotten"})
	_, ok := validation.As(err)
	assert.True(t, ok)
}

func TestUpdateAndDeletePermissions(t *testing.T) {
	repo := newFakePrayerRepo()
	service := newTestService(repo)
	ctx := context.Background()

	created, err := service.Create(ctx, author, CreateInput{Title: "Surgery", Content: "Pray"})
	require.NoError(t, err)
	_, err = service.AddComment(ctx, other, created.ID, "Praying with you")
	require.NoError(t, err)

	title := "Surgery on Friday"
	_, err = service.Update(ctx, other, UpdateInput{ID: created.ID, Title: &title})
	assert.ErrorIs(t, err, church.ErrForbidden)

	updated, err := service.Update(ctx, admin, UpdateInput{ID: created.ID, Title: &title})
	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)

	assert.ErrorIs(t, service.Delete(ctx, other, created.ID), church.ErrForbidden)
	require.NoError(t, service.Delete(ctx, author, created.ID))
	assert.Empty(t, repo.comments)
	assert.ErrorIs(t, service.Delete(ctx, author, created.ID), ErrPrayerNotFound)
}

func TestPrayerComments(t *testing.T) {
	service := newTestService(newFakePrayerRepo())
	ctx := context.Background()

	created, err := service.Create(ctx, author, CreateInput{Title: "Surgery", Content: "Pray"})
	require.NoError(t, err)

	comment, err := service.AddComment(ctx, other, created.ID, "Amen")
	require.NoError(t, err)

	comments, err := service.ListComments(ctx, author, created.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "Paul Lee", comments[0].AuthorName)

	assert.ErrorIs(t, service.DeleteComment(ctx, author, comment.ID), church.ErrForbidden)
	require.NoError(t, service.DeleteComment(ctx, other, comment.ID))
}

func TestLinkedPersonMustBelongToChurch(t *testing.T) {
	service := newTestService(newFakePrayerRepo())
	ctx := context.Background()

	foreign := "p-other"
	_, err := service.Create(ctx, author, CreateInput{Title: "Exam", Content: "Pray", PersonID: &foreign})
	assert.ErrorIs(t, err, roster.ErrPersonNotFound)

	unknown := "nobody"
	_, err = service.Create(ctx, author, CreateInput{Title: "Exam", Content: "Pray", PersonID: &unknown})
	assert.ErrorIs(t, err, roster.ErrPersonNotFound)

	own := " p1 "
	created, err := service.Create(ctx, author, CreateInput{Title: "Exam", Content: "Pray", PersonID: &own})
	require.NoError(t, err)
	require.NotNil(t, created.PersonID)
	assert.Equal(t, "p1", *created.PersonID)

	_, err = service.Update(ctx, author, UpdateInput{ID: created.ID, PersonID: &foreign})
	assert.ErrorIs(t, err, roster.ErrPersonNotFound)

	blank := ""
	updated, err := service.Update(ctx, author, UpdateInput{ID: created.ID, PersonID: &blank})
	require.NoError(t, err)
	assert.Nil(t, updated.PersonID)
}

func TestDetailCarriesAuthorName(t *testing.T) {
	service := newTestService(newFakePrayerRepo())
	ctx := context.Background()

	created, err := service.Create(ctx, author, CreateInput{Title: "Exam", Content: "Pray"})
	require.NoError(t, err)
	assert.Equal(t, "Grace Kim", created.AuthorName)

	item, err := service.Get(ctx, other, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Grace Kim", item.AuthorName)

	title := "Exam on Monday"
	updated, err := service.Update(ctx, author, UpdateInput{ID: created.ID, Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Grace Kim", updated.AuthorName)
}
