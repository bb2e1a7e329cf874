package newsletter

import "errors"

var (
	ErrBadRequest = errors.New("bad request")
	ErrConflict   = errors.New("already subscribed")
)
