package prayer

import "context"

type Repository interface {
	// List returns newest first.
	List(ctx context.Context, churchID string, filter Filter) ([]Listed, error)
	Get(ctx context.Context, churchID, id string) (*Request, error)
	// Find is Get with the author name and comment count joined in.
	Find(ctx context.Context, churchID, id string) (*Listed, error)
	Create(ctx context.Context, request *Request) error
	Update(ctx context.Context, request *Request) error
	// Delete removes the request together with its comments.
	Delete(ctx context.Context, churchID, id string) (bool, error)

	ListComments(ctx context.Context, prayerID string) ([]CommentView, error)
	GetComment(ctx context.Context, churchID, id string) (*Comment, error)
	CreateComment(ctx context.Context, comment *Comment) error
	DeleteComment(ctx context.Context, churchID, id string) (bool, error)
}
