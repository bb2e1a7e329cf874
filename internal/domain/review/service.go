package review

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fitness-tracker/backend/internal/validation"
)

const latestLimit = 10

type Store interface {
	Create(ctx context.Context, rv Review) (*Review, error)
	Latest(ctx context.Context, n int) ([]Review, error)
	ByTrainer(ctx context.Context, trainerID string) ([]Review, error)
}

type Service struct {
	store Store
	now   func() time.Time
}

func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*Review, error) {
	in.Trim()
	if err := validation.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	return s.store.Create(ctx, Review{
		TrainerID:     in.TrainerID,
		SlotID:        in.SlotID,
		Rating:        in.Rating,
		Comment:       in.Comment,
		ReviewerName:  in.ReviewerName,
		ReviewerEmail: in.ReviewerEmail,
		ReviewerImage: in.ReviewerImage,
		CreatedAt:     s.now().UTC(),
	})
}

func (s *Service) Latest(ctx context.Context) ([]Review, error) {
	return s.store.Latest(ctx, latestLimit)
}

func (s *Service) ForTrainer(ctx context.Context, trainerID string) ([]Review, error) {
	trainerID = strings.TrimSpace(trainerID)
	if trainerID == "" {
		return nil, fmt.Errorf("%w: trainerId is required", ErrBadRequest)
	}
	return s.store.ByTrainer(ctx, trainerID)
}
