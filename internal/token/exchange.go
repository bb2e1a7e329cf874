package token

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fitness-tracker/backend/internal/validation"

	"firebase.google.com/go/v4/auth"
)

var (
	ErrIDTokenRequired = errors.New("idToken is required")
	ErrIDTokenMismatch = errors.New("idToken does not belong to this email")
	ErrInvalidEmail    = errors.New("invalid email")
)

// IDTokenVerifier checks a Firebase ID token.
type IDTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// Exchanger turns a login proof into an API access token.
type Exchanger struct {
	issuer         *Issuer
	verifier       IDTokenVerifier
	requireIDToken bool
}

// NewExchanger builds an Exchanger. verifier may be nil when Firebase Auth is
// not configured, in which case ID tokens cannot be required.
func NewExchanger(issuer *Issuer, verifier IDTokenVerifier, requireIDToken bool) *Exchanger {
	return &Exchanger{issuer: issuer, verifier: verifier, requireIDToken: requireIDToken}
}

type ExchangeInput struct {
	Email   string `json:"email" validate:"required,email,docid"`
	IDToken string `json:"idToken,omitempty"`
}

func (x *Exchanger) Exchange(ctx context.Context, in ExchangeInput) (string, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" {
		return "", ErrMissingEmail
	}
	in.Email = email
	if err := validation.Struct(in); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidEmail, err)
	}

	idToken := strings.TrimSpace(in.IDToken)
	switch {
	case idToken != "" && x.verifier != nil:
		tok, err := x.verifier.VerifyIDToken(ctx, idToken)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrInvalid, err)
		}
		claimed, _ := tok.Claims["email"].(string)
		if !strings.EqualFold(claimed, email) {
			return "", ErrIDTokenMismatch
		}
	case x.requireIDToken:
		return "", ErrIDTokenRequired
	}

	return x.issuer.Issue(email)
}
