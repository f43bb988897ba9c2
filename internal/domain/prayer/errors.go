package prayer

import "errors"

var (
	ErrPrayerNotFound  = errors.New("prayer request not found")
	ErrCommentNotFound = errors.New("comment not found")
)
