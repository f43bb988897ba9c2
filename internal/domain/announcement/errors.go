package announcement

import "errors"

var (
	ErrAnnouncementNotFound = errors.New("announcement not found")
	ErrCommentNotFound      = errors.New("comment not found")
)
