// Package access decides whether an authenticated caller may use a route.
// Roles are read from the stored user record on every check; there is no
// hierarchy between them, so an admin is not implicitly a trainer.
package access

import (
	"context"
	"errors"
	"fmt"

	"fitness-tracker/backend/internal/authctx"
)

const (
	RoleMember  = "member"
	RoleTrainer = "trainer"
	RoleAdmin   = "admin"
)

var (
	ErrUnauthenticated = errors.New("unauthorized access")
	ErrForbidden       = errors.New("forbidden access")
)

// RoleLookup resolves the stored role of a user by email.
type RoleLookup interface {
	Role(ctx context.Context, email string) (string, error)
}

type Gate struct {
	roles RoleLookup
}

func NewGate(roles RoleLookup) *Gate {
	return &Gate{roles: roles}
}

func (g *Gate) RequireAdmin(ctx context.Context, id authctx.Identity) error {
	return g.RequireAnyRole(ctx, id, RoleAdmin)
}

func (g *Gate) RequireTrainer(ctx context.Context, id authctx.Identity) error {
	return g.RequireAnyRole(ctx, id, RoleTrainer)
}

func (g *Gate) RequireAnyRole(ctx context.Context, id authctx.Identity, roles ...string) error {
	if id.IsZero() {
		return ErrUnauthenticated
	}
	role, err := g.roles.Role(ctx, id.Email)
	if err != nil {
		return err
	}
	for _, r := range roles {
		if role == r {
			return nil
		}
	}
	return fmt.Errorf("%w: role %q not allowed", ErrForbidden, role)
}

// RequireSelf allows the call only when the target email is the caller's own.
func (g *Gate) RequireSelf(id authctx.Identity, email string) error {
	if id.IsZero() {
		return ErrUnauthenticated
	}
	if !id.Owns(email) {
		return fmt.Errorf("%w: email mismatch", ErrForbidden)
	}
	return nil
}

func (g *Gate) RequireSelfOrAdmin(ctx context.Context, id authctx.Identity, email string) error {
	if err := g.RequireSelf(id, email); err == nil || errors.Is(err, ErrUnauthenticated) {
		return err
	}
	return g.RequireAdmin(ctx, id)
}
