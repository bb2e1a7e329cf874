package trainer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fitness-tracker/backend/internal/utils"
	"fitness-tracker/backend/internal/validation"
)

type Store interface {
	Apply(ctx context.Context, a Application) (*Application, error)
	ListByStatus(ctx context.Context, status string) ([]Application, error)
	Get(ctx context.Context, id string) (*Application, error)
	GetByEmail(ctx context.Context, email string) (*Application, error)
	Approve(ctx context.Context, id string, at time.Time) (*Application, error)
	Reject(ctx context.Context, id, feedback string, at time.Time) (*RejectionFeedback, error)
	DeleteByEmail(ctx context.Context, email string) (int, error)
	Feedback(ctx context.Context, email string) (*RejectionFeedback, error)
}

type Service struct {
	store Store
	now   func() time.Time
}

func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

func (s *Service) Apply(ctx context.Context, in ApplyInput) (*Application, error) {
	in.Trim()
	if err := validation.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}

	a := Application{
		FullName:      in.FullName,
		Email:         in.Email,
		Age:           in.Age,
		ProfileImage:  in.ProfileImage,
		Skills:        nonNil(in.Skills),
		AvailableDays: nonNil(in.AvailableDays),
		AvailableTime: in.AvailableTime,
		Experience:    in.Experience,
		OtherInfo:     in.OtherInfo,
		SocialLinks:   in.SocialLinks,
		Status:        StatusPending,
		AppliedAt:     s.now().UTC(),
		Slots:         []Slot{},
	}
	return s.store.Apply(ctx, a)
}

func (s *Service) Pending(ctx context.Context) ([]Application, error) {
	return s.store.ListByStatus(ctx, StatusPending)
}

func (s *Service) Approved(ctx context.Context) ([]Application, error) {
	return s.store.ListByStatus(ctx, StatusApproved)
}

func (s *Service) Get(ctx context.Context, id string) (*Application, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: id is required", ErrBadRequest)
	}
	return s.store.Get(ctx, id)
}

func (s *Service) GetByEmail(ctx context.Context, email string) (*Application, error) {
	email = utils.NormalizeEmail(email)
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrBadRequest)
	}
	return s.store.GetByEmail(ctx, email)
}

func (s *Service) Approve(ctx context.Context, id string) (*Application, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: id is required", ErrBadRequest)
	}
	return s.store.Approve(ctx, id, s.now().UTC())
}

func (s *Service) Reject(ctx context.Context, id string, in RejectInput) (*RejectionFeedback, error) {
	in.Feedback = strings.TrimSpace(in.Feedback)
	if err := validation.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: id is required", ErrBadRequest)
	}
	return s.store.Reject(ctx, id, in.Feedback, s.now().UTC())
}

// DeleteByEmail removes the trainer's application document only. Class
// references are left for RemoveTrainerEverywhere on the class service.
func (s *Service) DeleteByEmail(ctx context.Context, email string) (int, error) {
	email = utils.NormalizeEmail(email)
	if email == "" {
		return 0, fmt.Errorf("%w: email is required", ErrBadRequest)
	}
	return s.store.DeleteByEmail(ctx, email)
}

func (s *Service) Feedback(ctx context.Context, email string) (*RejectionFeedback, error) {
	return s.store.Feedback(ctx, utils.NormalizeEmail(email))
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
