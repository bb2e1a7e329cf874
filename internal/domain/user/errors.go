package user

import "errors"

var (
	ErrNotFound   = errors.New("user not found")
	ErrConflict   = errors.New("user already exists")
	ErrBadRequest = errors.New("bad request")
)

func IsErrNotFound(err error) bool { return errors.Is(err, ErrNotFound) }
