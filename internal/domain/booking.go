package domain

import (
	"strings"
	"time"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"

	// StatusUnknown legacy records written without a status
	StatusUnknown BookingStatus = ""
)

// StatusClass groups statuses for queue counting
type StatusClass int

const (
	// ClassUnknown record without a status, treated as active
	ClassUnknown StatusClass = iota
	ClassActive
	ClassTerminal
	// ClassUnrecognised non-empty value outside the four known statuses ("no_show", "CANCELLED")
	ClassUnrecognised
)

// Class returns the bucket of the status
func (s BookingStatus) Class() StatusClass {
	switch s {
	case StatusPending, StatusConfirmed:
		return ClassActive
	case StatusCompleted, StatusCancelled:
		return ClassTerminal
	case StatusUnknown:
		return ClassUnknown
	default:
		return ClassUnrecognised
	}
}

// CountsTowardQueue returns true for pending, confirmed and records without a status
func (s BookingStatus) CountsTowardQueue() bool {
	switch s.Class() {
	case ClassActive, ClassUnknown:
		return true
	}
	return false
}

// IsValid returns true for the four statuses a client may set
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether moving from s to next is allowed:
// pending -> confirmed | cancelled, confirmed -> completed.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	switch s {
	case StatusPending:
		return next == StatusConfirmed || next == StatusCancelled
	case StatusConfirmed:
		return next == StatusCompleted
	default:
		return false
	}
}

// Booking represents a booking record created from WhatsApp or the booking form
type Booking struct {
	ID       string
	Phone    string
	Service  *string // canonical service name, nil when unmatched
	Name     *string
	Date     *string // YYYY-MM-DD
	Time     *string // HH:MM
	Barber   *string // display name
	BarberID *BarberID
	Status   BookingStatus
	Source   string
	Raw      string // original unparsed text

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking counts toward queue positions
func (b *Booking) IsActive() bool {
	return b.Status.CountsTowardQueue()
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status.CanTransitionTo(StatusCancelled)
}

// CanBeConfirmed returns true if the booking can be confirmed
func (b *Booking) CanBeConfirmed() bool {
	return b.Status.CanTransitionTo(StatusConfirmed)
}

// IsTerminal returns true for completed and cancelled bookings
func (b *Booking) IsTerminal() bool {
	return b.Status.Class() == ClassTerminal
}

// DateValue returns the booking date or an empty string
func (b *Booking) DateValue() string {
	return deref(b.Date)
}

// BarberValue returns the barber display name or an empty string
func (b *Booking) BarberValue() string {
	return deref(b.Barber)
}

// ServiceValue returns the canonical service name or an empty string
func (b *Booking) ServiceValue() string {
	return deref(b.Service)
}

// NameValue returns the customer name or an empty string
func (b *Booking) NameValue() string {
	return deref(b.Name)
}

// TimeValue returns the booking time or an empty string
func (b *Booking) TimeValue() string {
	return deref(b.Time)
}

// Ref returns the short customer-facing booking reference
func (b *Booking) Ref() string {
	id := strings.ReplaceAll(b.ID, "-", "")
	if len(id) > RefLength {
		id = id[:RefLength]
	}
	return RefPrefix + strings.ToUpper(id)
}

// BookingsFilter фильтр для выборки бронирований
type BookingsFilter struct {
	Date            *string        // YYYY-MM-DD, опционально
	Barber          *string        // сравнивается через NormalizeBarberName
	Phone           *string        // канонический номер
	Status          *BookingStatus // конкретный статус
	IncludeInactive bool           // включать completed/cancelled
}

// Matches reports whether b passes the filter
func (f BookingsFilter) Matches(b *Booking) bool {
	if f.Date != nil && b.DateValue() != *f.Date {
		return false
	}
	if f.Barber != nil && NormalizeBarberName(b.BarberValue()) != NormalizeBarberName(*f.Barber) {
		return false
	}
	if f.Phone != nil && b.Phone != *f.Phone {
		return false
	}
	if f.Status != nil {
		return b.Status == *f.Status
	}
	if !f.IncludeInactive && !b.IsActive() {
		return false
	}
	return true
}

// NormalizeBarberName trim + lowercase, used for every barber comparison
func NormalizeBarberName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
