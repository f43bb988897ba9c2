package schedule

import "errors"

var ErrDutyNotFound = errors.New("schedule not found")
