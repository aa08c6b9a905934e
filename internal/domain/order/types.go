package order

import "errors"

var (
	ErrUnknownStatus = errors.New("unknown order status")
	ErrUnknownMethod = errors.New("unknown payment method")
)

type Status string

const (
	StatusPending         Status = "pending"
	StatusInProcess       Status = "in_process"
	StatusAuthorized      Status = "authorized"
	StatusPaid            Status = "paid"
	StatusPartialRefunded Status = "partial_refunded"
	StatusCancelled       Status = "cancelled"
	StatusRecused         Status = "recused"
)

// ParseStatus maps stored values, including the legacy aliases, onto the
// canonical set. Everything past this boundary compares Status values only.
func ParseStatus(s string) (Status, error) {
	switch s {
	case "pending":
		return StatusPending, nil
	case "in_process":
		return StatusInProcess, nil
	case "authorized":
		return StatusAuthorized, nil
	case "paid", "confirmed":
		return StatusPaid, nil
	case "partial_refunded":
		return StatusPartialRefunded, nil
	case "cancelled":
		return StatusCancelled, nil
	case "recused":
		return StatusRecused, nil
	default:
		return "", ErrUnknownStatus
	}
}

func (s Status) String() string {
	return string(s)
}

// transitions is the monotonic payment lattice. Absent keys are terminal.
var transitions = map[Status][]Status{
	StatusPending:    {StatusInProcess, StatusCancelled, StatusRecused},
	StatusInProcess:  {StatusAuthorized, StatusPaid, StatusCancelled, StatusRecused},
	StatusAuthorized: {StatusPaid, StatusCancelled, StatusRecused},
	StatusPaid:       {StatusPartialRefunded, StatusRecused},
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if next == allowed {
			return true
		}
	}
	return false
}

// Terminal statuses accept no further transition at all.
func (s Status) Terminal() bool {
	return len(transitions[s]) == 0
}

// Settled reports whether payment resolved successfully (refunds included).
func (s Status) Settled() bool {
	return s == StatusPaid || s == StatusPartialRefunded
}

type Method string

const (
	MethodPix    Method = "pix"
	MethodBoleto Method = "boleto"
	MethodCard   Method = "card"
	MethodCash   Method = "cash"
)

func ParseMethod(s string) (Method, error) {
	switch Method(s) {
	case MethodPix, MethodBoleto, MethodCard, MethodCash:
		return Method(s), nil
	default:
		return "", ErrUnknownMethod
	}
}

func (m Method) String() string {
	return string(m)
}

// Refundable methods go through the gateway; cash has its own admin path.
func (m Method) Refundable() bool {
	return m == MethodPix || m == MethodCard
}
