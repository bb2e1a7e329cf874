package http

import (
	"errors"

	"fitness-tracker/backend/internal/access"
	"fitness-tracker/backend/internal/domain/class"
	"fitness-tracker/backend/internal/domain/forum"
	"fitness-tracker/backend/internal/domain/newsletter"
	"fitness-tracker/backend/internal/domain/payment"
	"fitness-tracker/backend/internal/domain/review"
	"fitness-tracker/backend/internal/domain/slot"
	"fitness-tracker/backend/internal/domain/trainer"
	"fitness-tracker/backend/internal/domain/user"
	"fitness-tracker/backend/internal/httpjson"
	"fitness-tracker/backend/internal/token"
	"fitness-tracker/backend/internal/upload"
)

const internalMessage = "internal server error"

func isAny(err error, targets ...error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}
	return false
}

// mapError turns a domain error into a status code and a client message.
// Anything unrecognized is a 500 and its details stay in the logs.
func mapError(err error) (int, string) {
	if err == nil {
		return 500, internalMessage
	}
	switch {
	case isAny(err, access.ErrUnauthenticated, token.ErrInvalid):
		return 401, "unauthorized access"
	case isAny(err, access.ErrForbidden):
		return 403, "forbidden access"
	case isAny(err, token.ErrIDTokenMismatch):
		return 403, err.Error()
	case isAny(err,
		user.ErrNotFound, trainer.ErrNotFound, trainer.ErrUserNotFound, trainer.ErrSlotNotFound,
		trainer.ErrNoFeedback, slot.ErrNotApproved, class.ErrNotFound, forum.ErrNotFound,
		forum.ErrNoAuthor, payment.ErrNotFound,
	):
		return 404, err.Error()
	case isAny(err,
		user.ErrConflict, newsletter.ErrConflict, trainer.ErrAlreadyApproved, payment.ErrDuplicate,
	):
		return 409, err.Error()
	case class.IsErrConflict(err):
		return 409, err.Error()
	case isAny(err,
		user.ErrBadRequest, newsletter.ErrBadRequest, trainer.ErrBadRequest, trainer.ErrAlreadyApplied,
		slot.ErrBadRequest, class.ErrBadRequest, forum.ErrBadRequest, payment.ErrBadRequest,
		payment.ErrNotConfirmed, payment.ErrBadSignature, review.ErrBadRequest, upload.ErrBadRequest,
		token.ErrMissingEmail, token.ErrInvalidEmail, token.ErrIDTokenRequired, httpjson.ErrEmptyBody,
	):
		return 400, err.Error()
	case isAny(err, payment.ErrGatewayUnavailable, upload.ErrNotConfigured):
		return 503, err.Error()
	default:
		return 500, internalMessage
	}
}
