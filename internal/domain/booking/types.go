package booking

import "errors"

var ErrUnknownStatus = errors.New("unknown reservation status")

type Status string

const (
	StatusInProcess Status = "in_process"
	StatusPaid      Status = "paid"
	StatusCancelled Status = "cancelled"
	StatusRecused   Status = "recused"
)

// ParseStatus accepts the canonical set plus the legacy aliases still found
// in old rows. Aliases never leave this boundary.
func ParseStatus(s string) (Status, error) {
	switch s {
	case "in_process", "pending":
		return StatusInProcess, nil
	case "paid", "confirmed":
		return StatusPaid, nil
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

// ConsumesCapacity reports whether a reservation in this status counts
// against the resource's capacity.
func (s Status) ConsumesCapacity() bool {
	return s != StatusCancelled && s != StatusRecused
}

func (s Status) Terminal() bool {
	return s == StatusCancelled || s == StatusRecused
}
