package domain

import "fmt"

// QueueEntry represents a booking on the walk-in queue board
type QueueEntry struct {
	QueueNumber string
	BookingID   string
	Name        string
	Service     string
	Time        string
	Status      BookingStatus
}

// FormatQueueNumber pads n to QueueNumberWidth digits
func FormatQueueNumber(n int64) string {
	return fmt.Sprintf("%0*d", QueueNumberWidth, n)
}

// QueueKey key of the per-date, per-barber critical section
func QueueKey(date, barber string) string {
	return date + ":" + NormalizeBarberName(barber)
}
