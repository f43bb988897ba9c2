package announcement

import "context"

type Repository interface {
	// List returns the church feed already in display order.
	List(ctx context.Context, churchID string) ([]Listed, error)
	Get(ctx context.Context, churchID, id string) (*Announcement, error)
	Create(ctx context.Context, announcement *Announcement) error
	Update(ctx context.Context, announcement *Announcement) error
	// Delete removes the announcement together with its comments.
	Delete(ctx context.Context, churchID, id string) (bool, error)

	ListComments(ctx context.Context, announcementID string) ([]CommentView, error)
	GetComment(ctx context.Context, churchID, id string) (*Comment, error)
	CreateComment(ctx context.Context, comment *Comment) error
	DeleteComment(ctx context.Context, churchID, id string) (bool, error)
}
