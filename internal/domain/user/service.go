package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fitness-tracker/backend/internal/utils"
	"fitness-tracker/backend/internal/validation"
)

type Store interface {
	Create(ctx context.Context, u User) (*User, error)
	Get(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, email string, fields map[string]any) (*User, error)
	List(ctx context.Context) ([]User, error)
}

type Service struct {
	store Store
	now   func() time.Time
}

func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

// Register creates a member account. Roles are never taken from the client.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*User, error) {
	in.Trim()
	if err := validation.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}

	now := s.now().UTC()
	u := User{
		Email:         in.Email,
		Name:          in.Name,
		PhotoURL:      in.PhotoURL,
		Role:          RoleMember,
		TrainerStatus: TrainerStatusNone,
		CreatedAt:     now,
		LastLoginAt:   now,
	}
	return s.store.Create(ctx, u)
}

func (s *Service) Get(ctx context.Context, email string) (*User, error) {
	email = utils.NormalizeEmail(email)
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrBadRequest)
	}
	return s.store.Get(ctx, email)
}

// Role returns the stored role, or "" for unknown users.
func (s *Service) Role(ctx context.Context, email string) (string, error) {
	u, err := s.Get(ctx, email)
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return u.Role, nil
}

func (s *Service) UpdateProfile(ctx context.Context, email string, in UpdateProfileInput) (*User, error) {
	in.Trim()
	if err := validation.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}

	fields := map[string]any{}
	if in.Name != nil {
		fields["name"] = *in.Name
	}
	if in.PhotoURL != nil {
		fields["photoURL"] = *in.PhotoURL
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: nothing to update", ErrBadRequest)
	}
	return s.store.Update(ctx, utils.NormalizeEmail(email), fields)
}

func (s *Service) TouchLogin(ctx context.Context, email string) (*User, error) {
	return s.store.Update(ctx, utils.NormalizeEmail(email), map[string]any{
		"lastLoginAt": s.now().UTC(),
	})
}

func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.store.List(ctx)
}

// Demote turns a trainer back into a member.
func (s *Service) Demote(ctx context.Context, email string) (*User, error) {
	email = utils.NormalizeEmail(email)
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrBadRequest)
	}
	return s.store.Update(ctx, email, map[string]any{
		"role":          RoleMember,
		"trainerStatus": TrainerStatusRemoved,
	})
}

func (s *Service) SetRole(ctx context.Context, email, role string) (*User, error) {
	if !ValidRole(role) {
		return nil, fmt.Errorf("%w: unknown role %q", ErrBadRequest, role)
	}
	return s.store.Update(ctx, utils.NormalizeEmail(email), map[string]any{"role": role})
}
