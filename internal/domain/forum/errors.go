package forum

import "errors"

var (
	ErrBadRequest = errors.New("bad request")
	ErrNotFound   = errors.New("forum post not found")
	ErrNoAuthor   = errors.New("author has no user record")
)
