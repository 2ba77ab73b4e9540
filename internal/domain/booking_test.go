package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestBookingStatus_CanTransitionTo(t *testing.T) {
	all := []BookingStatus{StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled, StatusUnknown}
	allowed := map[BookingStatus][]BookingStatus{
		StatusPending:   {StatusConfirmed, StatusCancelled},
		StatusConfirmed: {StatusCompleted},
	}

	for _, from := range all {
		for _, to := range all {
			want := false
			for _, a := range allowed[from] {
				if a == to {
					want = true
				}
			}
			assert.Equal(t, want, from.CanTransitionTo(to), "%q -> %q", from, to)
		}
	}
}

func TestBookingStatus_Class(t *testing.T) {
	assert.Equal(t, ClassActive, StatusPending.Class())
	assert.Equal(t, ClassActive, StatusConfirmed.Class())
	assert.Equal(t, ClassTerminal, StatusCompleted.Class())
	assert.Equal(t, ClassTerminal, StatusCancelled.Class())
	assert.Equal(t, ClassUnknown, StatusUnknown.Class())
	assert.Equal(t, ClassUnrecognised, BookingStatus("archived").Class())
}

func TestBookingStatus_CountsTowardQueue(t *testing.T) {
	tests := []struct {
		status BookingStatus
		want   bool
	}{
		{status: StatusPending, want: true},
		{status: StatusConfirmed, want: true},
		{status: StatusUnknown, want: true},
		{status: StatusCompleted, want: false},
		{status: StatusCancelled, want: false},
		{status: "no_show", want: false},
		{status: "CANCELLED", want: false},
		{status: "Pending", want: false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.status.CountsTowardQueue())
			assert.Equal(t, tt.want, BookingsFilter{}.Matches(&Booking{Status: tt.status}))
		})
	}
}

func TestBooking_Ref(t *testing.T) {
	b := &Booking{ID: "3f2a9c1e-77b0-4c1d-9a55-0e8f2d6b1c44"}
	assert.Equal(t, "RB-3F2A9C1E", b.Ref())

	short := &Booking{ID: "ab"}
	assert.Equal(t, "RB-AB", short.Ref())
}

func TestBookingsFilter_Matches(t *testing.T) {
	b := &Booking{
		Phone:  "27682770367",
		Date:   strPtr("2026-01-10"),
		Barber: strPtr(" John "),
		Status: StatusPending,
	}
	cancelled := StatusCancelled

	tests := []struct {
		name   string
		filter BookingsFilter
		want   bool
	}{
		{name: "empty filter", filter: BookingsFilter{}, want: true},
		{name: "date match", filter: BookingsFilter{Date: strPtr("2026-01-10")}, want: true},
		{name: "date mismatch", filter: BookingsFilter{Date: strPtr("2026-01-11")}, want: false},
		{name: "barber normalised", filter: BookingsFilter{Barber: strPtr("JOHN")}, want: true},
		{name: "barber mismatch", filter: BookingsFilter{Barber: strPtr("Sam")}, want: false},
		{name: "phone", filter: BookingsFilter{Phone: strPtr("27682770367")}, want: true},
		{name: "explicit status", filter: BookingsFilter{Status: &cancelled}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Matches(b))
		})
	}

	done := &Booking{Status: StatusCompleted}
	assert.False(t, BookingsFilter{}.Matches(done))
	assert.True(t, BookingsFilter{IncludeInactive: true}.Matches(done))
}

func TestFormatQueueNumber(t *testing.T) {
	assert.Equal(t, "001", FormatQueueNumber(1))
	assert.Equal(t, "042", FormatQueueNumber(42))
	assert.Equal(t, "1000", FormatQueueNumber(1000))
	assert.Equal(t, "2026-01-10:john", QueueKey("2026-01-10", "  John"))
}
