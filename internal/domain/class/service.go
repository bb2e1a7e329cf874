package class

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fitness-tracker/backend/internal/paging"
	"fitness-tracker/backend/internal/utils"
	"fitness-tracker/backend/internal/validation"
)

const topLimit = 6

type Store interface {
	Create(ctx context.Context, c Class) (*Class, error)
	Get(ctx context.Context, id string) (*Class, error)
	List(ctx context.Context) ([]Class, error)
	Top(ctx context.Context, n int) ([]Class, error)
	AddTrainer(ctx context.Context, id string, ref TrainerRef) (*Class, error)
	RemoveTrainerEverywhere(ctx context.Context, email string) (int, error)
}

type Service struct {
	store Store
	now   func() time.Time
}

func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*Class, error) {
	in.Trim()
	if err := validation.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}

	c := Class{
		Name:      in.Name,
		NameLower: utils.FoldName(in.Name),
		Image:     in.Image,
		Details:   in.Details,
		ExtraInfo: in.ExtraInfo,
		Trainers:  []TrainerRef{},
		CreatedAt: s.now().UTC(),
	}
	return s.store.Create(ctx, c)
}

func (s *Service) Get(ctx context.Context, id string) (*Class, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: id is required", ErrBadRequest)
	}
	return s.store.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Class, error) {
	return s.store.List(ctx)
}

// Search matches q anywhere in the class name, ignoring case and accents.
func (s *Service) Search(ctx context.Context, q string, page paging.Page) (*SearchResult, error) {
	all, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	needle := utils.FoldName(q)
	matched := all
	if needle != "" {
		matched = make([]Class, 0, len(all))
		for _, c := range all {
			name := c.NameLower
			if name == "" {
				name = utils.FoldName(c.Name)
			}
			if strings.Contains(name, needle) {
				matched = append(matched, c)
			}
		}
	}

	return &SearchResult{
		Classes:     paging.Slice(matched, page),
		TotalPages:  page.TotalPages(len(matched)),
		CurrentPage: page.Number,
		Total:       len(matched),
	}, nil
}

func (s *Service) Top(ctx context.Context) ([]Class, error) {
	return s.store.Top(ctx, topLimit)
}

func (s *Service) AddTrainer(ctx context.Context, id string, ref TrainerRef) (*Class, error) {
	ref.Trim()
	if err := validation.Struct(ref); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	return s.store.AddTrainer(ctx, id, ref)
}

func (s *Service) RemoveTrainerEverywhere(ctx context.Context, email string) (int, error) {
	email = utils.NormalizeEmail(email)
	if email == "" {
		return 0, fmt.Errorf("%w: email is required", ErrBadRequest)
	}
	return s.store.RemoveTrainerEverywhere(ctx, email)
}
