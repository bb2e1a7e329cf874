package payment

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"fitness-tracker/backend/internal/domain/trainer"
	"fitness-tracker/backend/internal/utils"
	"fitness-tracker/backend/internal/validation"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Store interface {
	Record(ctx context.Context, rec Record, b trainer.Booking) (*Record, error)
	History(ctx context.Context, email string) ([]Record, error)
	All(ctx context.Context) ([]Record, error)
	MarkGatewayStatus(ctx context.Context, transactionID, status string) error
	LogEvent(ctx context.Context, ev Event) error
}

type Service struct {
	store    Store
	gateway  Gateway
	currency string
	log      *zap.Logger
	now      func() time.Time
	newID    func() string
}

// NewService wires payments. gateway may be nil when no payment provider is
// configured; intents and webhooks are then unavailable and recorded
// payments are stored unverified.
func NewService(store Store, gateway Gateway, currency string, log *zap.Logger) *Service {
	return &Service{
		store:    store,
		gateway:  gateway,
		currency: currency,
		log:      log,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// CreateIntent opens a payment intent for a client supplied dollar price.
// The price is not checked against the slot; the gateway charges what the
// client asks for.
func (s *Service) CreateIntent(ctx context.Context, email string, in IntentInput) (*Intent, error) {
	if err := validation.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	if s.gateway == nil {
		return nil, ErrGatewayUnavailable
	}
	return s.gateway.CreateIntent(ctx, ToCents(in.Price), s.currency, map[string]string{
		"studentEmail": utils.NormalizeEmail(email),
	})
}

func (s *Service) Record(ctx context.Context, in RecordInput) (*Record, error) {
	in.Trim()
	if err := validation.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}

	status := GatewayStatusUnverified
	if s.gateway != nil {
		if err := s.confirm(ctx, in); err != nil {
			return nil, err
		}
		status = GatewayStatusSucceeded
	}

	now := s.now().UTC()
	rec := Record{
		TransactionID: in.TransactionID,
		SlotID:        in.SlotID,
		SlotName:      in.SlotName,
		TrainerID:     in.TrainerID,
		TrainerName:   in.TrainerName,
		ClassID:       in.ClassID,
		ClassName:     in.ClassName,
		StudentEmail:  in.StudentEmail,
		StudentName:   in.StudentName,
		Amount:        in.Amount,
		Currency:      s.currency,
		GatewayStatus: status,
		PaidAt:        now,
	}
	b := trainer.Booking{
		ID:            s.newID(),
		StudentEmail:  in.StudentEmail,
		StudentName:   in.StudentName,
		TransactionID: in.TransactionID,
		Amount:        in.Amount,
		BookedAt:      now,
	}
	return s.store.Record(ctx, rec, b)
}

// confirm checks that the gateway saw the intent succeed for the same amount.
func (s *Service) confirm(ctx context.Context, in RecordInput) error {
	pi, err := s.gateway.GetIntent(ctx, in.TransactionID)
	if err != nil {
		return err
	}
	if pi.Status != GatewayStatusSucceeded {
		return fmt.Errorf("%w: intent status %s", ErrNotConfirmed, pi.Status)
	}
	if pi.Amount != ToCents(in.Amount) {
		return fmt.Errorf("%w: amount mismatch", ErrNotConfirmed)
	}
	if pi.Currency != "" && !strings.EqualFold(pi.Currency, s.currency) {
		return fmt.Errorf("%w: currency mismatch", ErrNotConfirmed)
	}
	return nil
}

func (s *Service) History(ctx context.Context, email string) ([]Record, error) {
	email = utils.NormalizeEmail(email)
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrBadRequest)
	}
	return s.store.History(ctx, email)
}

func (s *Service) Export(ctx context.Context, w io.Writer) error {
	recs, err := s.store.All(ctx)
	if err != nil {
		return err
	}
	return WriteWorkbook(w, recs)
}

// HandleWebhook verifies and records a gateway event. Events for payments
// that are not stored yet are acknowledged; the record is written as
// succeeded once the client saves it.
func (s *Service) HandleWebhook(ctx context.Context, payload []byte, signature string) (*Event, error) {
	if s.gateway == nil {
		return nil, ErrGatewayUnavailable
	}
	ev, err := s.gateway.ParseEvent(payload, signature)
	if err != nil {
		return nil, err
	}

	if err := s.store.LogEvent(ctx, *ev); err != nil {
		s.log.Error("webhook: failed to log event", zap.String("event_id", ev.ID), zap.Error(err))
	}

	switch ev.Type {
	case "payment_intent.succeeded":
		err := s.store.MarkGatewayStatus(ctx, ev.IntentID, GatewayStatusSucceeded)
		if errors.Is(err, ErrNotFound) {
			s.log.Info("webhook: intent not recorded yet", zap.String("intent_id", ev.IntentID))
			return ev, nil
		}
		if err != nil {
			return nil, err
		}
	case "payment_intent.payment_failed":
		s.log.Warn("webhook: payment failed", zap.String("intent_id", ev.IntentID))
	default:
		s.log.Debug("webhook: ignored event", zap.String("type", ev.Type))
	}
	return ev, nil
}
