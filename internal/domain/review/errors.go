package review

import "errors"

var ErrBadRequest = errors.New("bad request")
