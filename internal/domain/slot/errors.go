package slot

import "errors"

var (
	ErrBadRequest  = errors.New("bad request")
	ErrNotApproved = errors.New("no approved trainer for this email")
)
