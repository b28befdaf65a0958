package lifecycle

import "errors"

var (
	ErrNotAllowed = errors.New("action not allowed for role")
	ErrWrongState = errors.New("action not allowed in current status")
)
