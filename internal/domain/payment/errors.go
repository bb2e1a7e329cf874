package payment

import "errors"

var (
	ErrBadRequest         = errors.New("bad request")
	ErrDuplicate          = errors.New("payment already recorded")
	ErrGatewayUnavailable = errors.New("payment gateway is not configured")
	ErrNotConfirmed       = errors.New("payment not confirmed by gateway")
	ErrNotFound           = errors.New("payment not found")
	ErrBadSignature       = errors.New("invalid webhook signature")
)
