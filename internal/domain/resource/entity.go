package resource

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyResourceName   = errors.New("resource name cannot be empty")
	ErrResourceNameTooLong = errors.New("resource name is too long (max 255 characters)")
	ErrInvalidCapacity     = errors.New("capacity must be at least 1")
	ErrInvalidKind         = errors.New("unknown resource kind")
	ErrInvalidHours        = errors.New("close time must be after open time")
)

const MaxResourceNameLength = 255

type Kind string

const (
	KindRoom      Kind = "room"
	KindEquipment Kind = "equipment"
)

func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindRoom, KindEquipment:
		return Kind(s), nil
	default:
		return "", ErrInvalidKind
	}
}

// Resource is a bookable room or a pool of identical equipment units.
// Rooms always have capacity 1; equipment pools carry the unit count.
type Resource struct {
	id             uuid.UUID
	name           string
	kind           Kind
	capacity       int
	priceCentsHour int64
	openTime       TimeOfDay
	closeTime      TimeOfDay
	openDays       Weekdays
	active         bool
}

func NewResource(
	id uuid.UUID,
	name string,
	kind Kind,
	capacity int,
	priceCentsHour int64,
	openTime, closeTime TimeOfDay,
	openDays Weekdays,
	active bool,
) (*Resource, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyResourceName
	}
	if len(name) > MaxResourceNameLength {
		return nil, ErrResourceNameTooLong
	}
	if kind == KindRoom {
		capacity = 1
	}
	if capacity < 1 {
		return nil, ErrInvalidCapacity
	}
	if closeTime <= openTime {
		return nil, ErrInvalidHours
	}

	return &Resource{
		id:             id,
		name:           name,
		kind:           kind,
		capacity:       capacity,
		priceCentsHour: priceCentsHour,
		openTime:       openTime,
		closeTime:      closeTime,
		openDays:       openDays,
		active:         active,
	}, nil
}

func (r *Resource) ID() uuid.UUID          { return r.id }
func (r *Resource) Name() string           { return r.name }
func (r *Resource) Kind() Kind             { return r.kind }
func (r *Resource) Capacity() int          { return r.capacity }
func (r *Resource) PriceCentsHour() int64  { return r.priceCentsHour }
func (r *Resource) OpenTime() TimeOfDay    { return r.openTime }
func (r *Resource) CloseTime() TimeOfDay   { return r.closeTime }
func (r *Resource) OpenDays() Weekdays     { return r.openDays }
func (r *Resource) Active() bool           { return r.active }

func (r *Resource) OpenOn(day time.Weekday) bool {
	return r.openDays.Has(day)
}

// PriceFor charges by whole hours of the window.
func (r *Resource) PriceFor(start, end time.Time, quantity int) int64 {
	hours := int64(end.Sub(start) / time.Hour)
	if hours < 1 {
		hours = 1
	}
	return r.priceCentsHour * hours * int64(quantity)
}
