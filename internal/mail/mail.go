// Package mail sends transactional email through Resend.
package mail

import (
	"context"
	"errors"
	"fmt"

	"github.com/resend/resend-go/v2"
	"go.uber.org/zap"
)

var ErrNoRecipient = errors.New("mail: at least one recipient is required")

type Message struct {
	To      []string
	Subject string
	HTML    string
}

type ResendSender struct {
	client *resend.Client
	from   string
	log    *zap.Logger
}

func NewResendSender(apiKey, from string, log *zap.Logger) *ResendSender {
	return &ResendSender{
		client: resend.NewClient(apiKey),
		from:   from,
		log:    log,
	}
}

// Send queues msg for delivery and returns the provider message id.
func (s *ResendSender) Send(ctx context.Context, msg Message) (string, error) {
	if len(msg.To) == 0 {
		return "", ErrNoRecipient
	}

	sent, err := s.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    s.from,
		To:      msg.To,
		Subject: msg.Subject,
		Html:    msg.HTML,
	})
	if err != nil {
		return "", fmt.Errorf("resend send failed: %w", err)
	}

	s.log.Info("mail sent", zap.String("message_id", sent.Id), zap.Strings("to", msg.To), zap.String("subject", msg.Subject))
	return sent.Id, nil
}
