package class

import "errors"

var (
	ErrBadRequest    = errors.New("bad request")
	ErrNotFound      = errors.New("class not found")
	ErrTrainerExists = errors.New("trainer already assigned")
	ErrClassFull     = errors.New("class is full")
)

func IsErrConflict(err error) bool {
	return errors.Is(err, ErrTrainerExists) || errors.Is(err, ErrClassFull)
}
