package newsletter

import (
	"context"
	"errors"
	"testing"

	"fitness-tracker/backend/internal/mail"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memStore struct {
	subs []Subscriber
}

func (m *memStore) Create(_ context.Context, s Subscriber) error {
	for _, x := range m.subs {
		if x.Email == s.Email {
			return ErrConflict
		}
	}
	m.subs = append(m.subs, s)
	return nil
}

func (m *memStore) List(_ context.Context) ([]Subscriber, error) { return m.subs, nil }

func (m *memStore) Count(_ context.Context) (int, error) { return len(m.subs), nil }

type fakeMailer struct {
	sent []mail.Message
	err  error
}

func (f *fakeMailer) Send(_ context.Context, msg mail.Message) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.sent = append(f.sent, msg)
	return "msg-1", nil
}

func TestSubscribe(t *testing.T) {
	mailer := &fakeMailer{}
	svc := NewService(&memStore{}, mailer, zap.NewNop())

	sub, err := svc.Subscribe(context.Background(), SubscribeInput{Name: " Ana ", Email: "ANA@fit.io"})
	require.NoError(t, err)
	assert.Equal(t, "ana@fit.io", sub.Email)
	assert.Equal(t, "Ana", sub.Name)

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, []string{"ana@fit.io"}, mailer.sent[0].To)
	assert.Contains(t, mailer.sent[0].HTML, "<strong>Ana</strong>")

	_, err = svc.Subscribe(context.Background(), SubscribeInput{Name: "Ana", Email: "ana@fit.io"})
	assert.ErrorIs(t, err, ErrConflict)
	assert.Len(t, mailer.sent, 1)
}

func TestSubscribe_RequiresNameAndEmail(t *testing.T) {
	svc := NewService(&memStore{}, nil, zap.NewNop())

	_, err := svc.Subscribe(context.Background(), SubscribeInput{Email: "ana@fit.io"})
	assert.ErrorIs(t, err, ErrBadRequest)

	_, err = svc.Subscribe(context.Background(), SubscribeInput{Name: "Ana"})
	assert.ErrorIs(t, err, ErrBadRequest)
}

func TestSubscribe_MailFailureIsNotFatal(t *testing.T) {
	svc := NewService(&memStore{}, &fakeMailer{err: errors.New("smtp down")}, zap.NewNop())

	_, err := svc.Subscribe(context.Background(), SubscribeInput{Name: "Ana", Email: "ana@fit.io"})
	assert.NoError(t, err)
}
