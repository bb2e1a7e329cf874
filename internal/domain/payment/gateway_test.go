package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v78/webhook"
)

func TestStripeGateway_ParseEvent(t *testing.T) {
	g := NewStripeGateway("sk_test_x", "whsec_test")
	payload := []byte(`{"id":"evt_1","object":"event","type":"payment_intent.succeeded","data":{"object":{"id":"pi_1","object":"payment_intent","amount":2550}}}`)

	signed := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{Payload: payload, Secret: "whsec_test"})
	ev, err := g.ParseEvent(signed.Payload, signed.Header)
	require.NoError(t, err)
	assert.Equal(t, "evt_1", ev.ID)
	assert.Equal(t, "payment_intent.succeeded", ev.Type)
	assert.Equal(t, "pi_1", ev.IntentID)

	_, err = g.ParseEvent(payload, "t=1,v1=deadbeef")
	assert.ErrorIs(t, err, ErrBadSignature)
}

func TestStripeGateway_WebhookDisabled(t *testing.T) {
	g := NewStripeGateway("sk_test_x", "")
	_, err := g.ParseEvent([]byte(`{}`), "")
	assert.ErrorIs(t, err, ErrGatewayUnavailable)
}
