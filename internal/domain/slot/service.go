package slot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fitness-tracker/backend/internal/domain/trainer"
	"fitness-tracker/backend/internal/utils"
	"fitness-tracker/backend/internal/validation"

	"github.com/google/uuid"
)

type Store interface {
	ApprovedByEmail(ctx context.Context, email string) (*trainer.Application, error)
	Application(ctx context.Context, id string) (*trainer.Application, error)
	AppendSlot(ctx context.Context, email string, s trainer.Slot) (*trainer.Slot, error)
	DeleteSlot(ctx context.Context, email, slotID string) (*trainer.Slot, error)
}

type Service struct {
	store Store
	now   func() time.Time
	newID func() string
}

func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now, newID: uuid.NewString}
}

func (s *Service) Template(ctx context.Context, email string) (*Template, error) {
	a, err := s.store.ApprovedByEmail(ctx, utils.NormalizeEmail(email))
	if err != nil {
		return nil, err
	}
	t := TemplateFrom(*a)
	return &t, nil
}

func (s *Service) Add(ctx context.Context, email string, in Input) (*trainer.Slot, error) {
	in.Trim()
	if err := validation.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}

	sl := trainer.Slot{
		ID:        s.newID(),
		SlotName:  in.SlotName,
		SlotTime:  in.SlotTime,
		Day:       strings.ToLower(in.Day),
		ClassID:   in.ClassID,
		OtherInfo: in.OtherInfo,
		Bookings:  []trainer.Booking{},
		CreatedAt: s.now().UTC(),
	}
	return s.store.AppendSlot(ctx, utils.NormalizeEmail(email), sl)
}

func (s *Service) List(ctx context.Context, email string) ([]trainer.Slot, error) {
	a, err := s.store.ApprovedByEmail(ctx, utils.NormalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if a.Slots == nil {
		return []trainer.Slot{}, nil
	}
	return a.Slots, nil
}

func (s *Service) Details(ctx context.Context, trainerID, slotID string) (*Details, error) {
	if strings.TrimSpace(trainerID) == "" || strings.TrimSpace(slotID) == "" {
		return nil, fmt.Errorf("%w: trainerId and slotId are required", ErrBadRequest)
	}
	a, err := s.store.Application(ctx, trainerID)
	if err != nil {
		return nil, err
	}
	sl, ok := a.FindSlot(slotID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", trainer.ErrSlotNotFound, slotID)
	}
	return &Details{
		Slot:         sl,
		TrainerID:    a.ID,
		TrainerName:  a.FullName,
		TrainerEmail: a.Email,
		TrainerImage: a.ProfileImage,
	}, nil
}

func (s *Service) Delete(ctx context.Context, email, slotID string) (*trainer.Slot, error) {
	if strings.TrimSpace(slotID) == "" {
		return nil, fmt.Errorf("%w: slotId is required", ErrBadRequest)
	}
	return s.store.DeleteSlot(ctx, utils.NormalizeEmail(email), slotID)
}
