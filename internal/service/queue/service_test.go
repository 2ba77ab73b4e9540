package queue

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberService/internal/domain"
)

type stubLoader struct {
	bookings []*domain.Booking
	err      error
}

func (s *stubLoader) Load(ctx context.Context) ([]*domain.Booking, error) {
	return s.bookings, s.err
}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type recordingLogger struct{ warns []string }

func (l *recordingLogger) Info(format string, v ...interface{}) {}
func (l *recordingLogger) Warn(format string, v ...interface{}) {
	l.warns = append(l.warns, fmt.Sprintf(format, v...))
}
func (l *recordingLogger) Error(format string, v ...interface{}) {}

type countingFallback struct{ reasons []string }

func (c *countingFallback) IncQueueFallback(reason string) { c.reasons = append(c.reasons, reason) }

func sp(s string) *string { return &s }

func booking(date, barber string, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{Date: sp(date), Barber: sp(barber), Status: status}
}

func TestAssigner_GenerateQueueNumber(t *testing.T) {
	tests := []struct {
		name     string
		bookings []*domain.Booking
		date     string
		barber   string
		want     string
	}{
		{
			name: "two active one cancelled",
			bookings: []*domain.Booking{
				booking("2026-01-10", "John", domain.StatusPending),
				booking("2026-01-10", "John", domain.StatusConfirmed),
				booking("2026-01-10", "John", domain.StatusCancelled),
			},
			date: "2026-01-10", barber: "John",
			want: "003",
		},
		{
			name: "other barber and other date ignored",
			bookings: []*domain.Booking{
				booking("2026-01-10", "John", domain.StatusPending),
				booking("2026-01-10", "Sam", domain.StatusPending),
				booking("2026-01-11", "John", domain.StatusPending),
				booking("2026-01-10", "Johnny", domain.StatusConfirmed),
			},
			date: "2026-01-10", barber: "John",
			want: "002",
		},
		{
			name: "barber compared trimmed and lower-cased",
			bookings: []*domain.Booking{
				booking("2026-01-10", "  JOHN ", domain.StatusPending),
			},
			date: "2026-01-10", barber: "john",
			want: "002",
		},
		{
			name: "missing status counts as active",
			bookings: []*domain.Booking{
				booking("2026-01-10", "John", domain.StatusUnknown),
				booking("2026-01-10", "John", domain.StatusCompleted),
			},
			date: "2026-01-10", barber: "John",
			want: "002",
		},
		{
			name: "unrecognised statuses are not counted",
			bookings: []*domain.Booking{
				booking("2026-01-10", "John", "no_show"),
				booking("2026-01-10", "John", "CANCELLED"),
			},
			date: "2026-01-10", barber: "John",
			want: "001",
		},
		{
			name: "date is compared as a string",
			bookings: []*domain.Booking{
				booking("2026-1-10", "John", domain.StatusPending),
			},
			date: "2026-01-10", barber: "John",
			want: "001",
		},
		{
			name: "empty barber scope",
			bookings: []*domain.Booking{
				{Date: sp("2026-01-10"), Status: domain.StatusPending},
				booking("2026-01-10", "John", domain.StatusPending),
			},
			date: "2026-01-10", barber: "",
			want: "002",
		},
		{
			name:     "empty store",
			bookings: nil,
			date:     "2026-01-10", barber: "John",
			want: "001",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAssigner(&stubLoader{bookings: tt.bookings}, nil, &recordingLogger{})
			assert.Equal(t, tt.want, a.GenerateQueueNumber(context.Background(), tt.date, tt.barber))
		})
	}
}

func TestAssigner_GenerateQueueNumber_Fallback(t *testing.T) {
	logger := &recordingLogger{}
	fallback := &countingFallback{}
	now := time.UnixMilli(1767225600042)

	a := NewAssigner(&stubLoader{err: errors.New("disk on fire")}, fallback, logger).
		WithTimeProvider(fixedTime{t: now})

	got := a.GenerateQueueNumber(context.Background(), "2026-01-10", "John")

	assert.Equal(t, "042", got)
	assert.Equal(t, []string{"load_error"}, fallback.reasons)
	require.Len(t, logger.warns, 1)
	assert.Contains(t, logger.warns[0], "disk on fire")
}

func TestAssigner_NextQueueNumber(t *testing.T) {
	loadErr := errors.New("connection reset")
	fallback := &countingFallback{}

	a := NewAssigner(&stubLoader{err: loadErr}, fallback, &recordingLogger{})
	_, err := a.NextQueueNumber(context.Background(), "2026-01-10", "John")

	assert.ErrorIs(t, err, ErrLoad)
	assert.ErrorIs(t, err, loadErr)
	assert.Empty(t, fallback.reasons)

	ok := NewAssigner(&stubLoader{bookings: []*domain.Booking{
		booking("2026-01-10", "John", domain.StatusPending),
	}}, nil, &recordingLogger{})
	got, err := ok.NextQueueNumber(context.Background(), "2026-01-10", "John")
	require.NoError(t, err)
	assert.Equal(t, "002", got)
}

func TestBoard(t *testing.T) {
	base := time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC)
	second := booking("2026-01-10", "John", domain.StatusConfirmed)
	second.ID, second.CreatedAt, second.Name = "b2", base.Add(time.Hour), sp("Sipho")
	first := booking("2026-01-10", "John", domain.StatusPending)
	first.ID, first.CreatedAt = "b1", base
	gone := booking("2026-01-10", "John", domain.StatusCancelled)
	gone.ID, gone.CreatedAt = "b0", base.Add(-time.Hour)

	entries := Board([]*domain.Booking{second, gone, first}, "2026-01-10", "john")

	require.Len(t, entries, 2)
	assert.Equal(t, "001", entries[0].QueueNumber)
	assert.Equal(t, "b1", entries[0].BookingID)
	assert.Equal(t, "002", entries[1].QueueNumber)
	assert.Equal(t, "b2", entries[1].BookingID)
	assert.Equal(t, "Sipho", entries[1].Name)
}
