//go:build unit

package gateway_test

import (
	"testing"

	"praxis-booking/internal/domain/order"
	"praxis-booking/internal/infra/gateway"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const webhookSecret = "test-webhook-secret"

func TestSignAndVerify(t *testing.T) {
	payload := []byte(`{"event_id":"evt_1","transaction_id":"txn_1","status":"paid"}`)
	sig := gateway.Sign(webhookSecret, payload)

	assert.True(t, gateway.VerifySignature(webhookSecret, payload, sig))

	t.Run("tampered payload fails", func(t *testing.T) {
		tampered := []byte(`{"event_id":"evt_1","transaction_id":"txn_2","status":"paid"}`)
		assert.False(t, gateway.VerifySignature(webhookSecret, tampered, sig))
	})

	t.Run("wrong secret fails", func(t *testing.T) {
		assert.False(t, gateway.VerifySignature("other-secret", payload, sig))
	})

	t.Run("empty signature fails", func(t *testing.T) {
		assert.False(t, gateway.VerifySignature(webhookSecret, payload, ""))
	})
}

func TestParseEvent(t *testing.T) {
	t.Run("valid payload", func(t *testing.T) {
		ev, err := gateway.ParseEvent([]byte(`{"event_id":"evt_1","transaction_id":"txn_1","status":"paid"}`))
		require.NoError(t, err)
		assert.Equal(t, "evt_1", ev.EventID)
		assert.Equal(t, "txn_1", ev.TransactionID)
		assert.Equal(t, gateway.StatusPaid, ev.Status)
	})

	t.Run("missing ids are rejected", func(t *testing.T) {
		_, err := gateway.ParseEvent([]byte(`{"status":"paid"}`))
		assert.Error(t, err)

		_, err = gateway.ParseEvent([]byte(`{"event_id":"evt_1","status":"paid"}`))
		assert.Error(t, err)
	})

	t.Run("malformed json is rejected", func(t *testing.T) {
		_, err := gateway.ParseEvent([]byte(`{`))
		assert.Error(t, err)
	})
}

func TestMapStatus(t *testing.T) {
	cases := []struct {
		in   gateway.Status
		want order.Status
	}{
		{in: gateway.StatusPending, want: order.StatusPending},
		{in: gateway.StatusInProcess, want: order.StatusInProcess},
		{in: gateway.StatusAuthorized, want: order.StatusAuthorized},
		{in: gateway.StatusPaid, want: order.StatusPaid},
		{in: gateway.StatusRecused, want: order.StatusRecused},
		{in: gateway.StatusCancelled, want: order.StatusCancelled},
		{in: gateway.StatusRefunded, want: order.StatusPartialRefunded},
	}
	for _, tc := range cases {
		t.Run(string(tc.in), func(t *testing.T) {
			got, err := gateway.MapStatus(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	_, err := gateway.MapStatus(gateway.Status("chargeback"))
	assert.Error(t, err)
}
