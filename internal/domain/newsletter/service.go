package newsletter

import (
	"context"
	"fmt"
	"html"
	"time"

	"fitness-tracker/backend/internal/mail"
	"fitness-tracker/backend/internal/markdown"
	"fitness-tracker/backend/internal/validation"

	"go.uber.org/zap"
)

type Store interface {
	Create(ctx context.Context, s Subscriber) error
	List(ctx context.Context) ([]Subscriber, error)
	Count(ctx context.Context) (int, error)
}

type Mailer interface {
	Send(ctx context.Context, msg mail.Message) (string, error)
}

type Service struct {
	store  Store
	mailer Mailer
	log    *zap.Logger
	now    func() time.Time
}

// NewService builds the newsletter service. mailer may be nil, in which case
// no welcome mail is sent.
func NewService(store Store, mailer Mailer, log *zap.Logger) *Service {
	return &Service{store: store, mailer: mailer, log: log, now: time.Now}
}

func (s *Service) Subscribe(ctx context.Context, in SubscribeInput) (*Subscriber, error) {
	in.Trim()
	if err := validation.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}

	sub := Subscriber{Email: in.Email, Name: in.Name, SubscribedAt: s.now().UTC()}
	if err := s.store.Create(ctx, sub); err != nil {
		return nil, err
	}

	s.sendWelcome(ctx, sub)
	return &sub, nil
}

func (s *Service) List(ctx context.Context) ([]Subscriber, error) {
	return s.store.List(ctx)
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.store.Count(ctx)
}

// sendWelcome is best effort: the subscription already succeeded.
func (s *Service) sendWelcome(ctx context.Context, sub Subscriber) {
	if s.mailer == nil {
		return
	}
	body, err := markdown.ToHTML(welcomeMarkdown(sub.Name))
	if err != nil {
		s.log.Warn("welcome mail render failed", zap.Error(err))
		return
	}
	if _, err := s.mailer.Send(ctx, mail.Message{
		To:      []string{sub.Email},
		Subject: "Welcome to the newsletter",
		HTML:    body,
	}); err != nil {
		s.log.Warn("welcome mail failed", zap.String("email", sub.Email), zap.Error(err))
	}
}

func welcomeMarkdown(name string) string {
	return fmt.Sprintf("Hi **%s**,\n\nthanks for subscribing. New classes, trainers and forum highlights will land in your inbox.", html.EscapeString(name))
}
