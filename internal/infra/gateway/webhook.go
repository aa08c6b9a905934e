package gateway

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"praxis-booking/internal/domain/order"
	"praxis-booking/internal/pkg/errs"
)

// Event is one webhook delivery. EventID is the provider's delivery id and
// drives the replay journal; TransactionID locates the order.
type Event struct {
	EventID       string `json:"event_id"`
	TransactionID string `json:"transaction_id"`
	Status        Status `json:"status"`
}

// VerifySignature checks the hex-encoded HMAC-SHA256 of the raw payload.
func VerifySignature(secret string, payload []byte, signature string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// Sign is the inverse of VerifySignature, used by tests and replay tooling.
func Sign(secret string, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

func ParseEvent(payload []byte) (Event, error) {
	var ev Event
	if err := json.Unmarshal(payload, &ev); err != nil {
		return Event{}, errs.Wrap(err, "failed to decode webhook payload")
	}
	if ev.EventID == "" || ev.TransactionID == "" {
		return Event{}, errs.New("webhook payload missing event or transaction id")
	}
	return ev, nil
}

// MapStatus translates the provider's status onto the local order lattice.
func MapStatus(s Status) (order.Status, error) {
	switch s {
	case StatusPending:
		return order.StatusPending, nil
	case StatusInProcess:
		return order.StatusInProcess, nil
	case StatusAuthorized:
		return order.StatusAuthorized, nil
	case StatusPaid:
		return order.StatusPaid, nil
	case StatusRecused:
		return order.StatusRecused, nil
	case StatusCancelled:
		return order.StatusCancelled, nil
	case StatusRefunded:
		return order.StatusPartialRefunded, nil
	default:
		return "", errs.New("unknown gateway status: " + string(s))
	}
}
