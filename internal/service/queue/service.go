package queue

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/m04kA/SMC-BarberService/internal/domain"
)

const fallbackReasonLoad = "load_error"

// ErrLoad возвращается NextQueueNumber, если хранилище не удалось прочитать
var ErrLoad = errors.New("queue: failed to load bookings")

// Assigner вычисляет номер в очереди из уже сохранённых бронирований.
// Номер не хранится отдельно: это count(активных на дату и барбера) + 1.
type Assigner struct {
	loader       BookingLoader
	fallback     FallbackRecorder
	timeProvider TimeProvider
	logger       Logger
}

// NewAssigner создает сервис очереди. fallback может быть nil.
func NewAssigner(loader BookingLoader, fallback FallbackRecorder, logger Logger) *Assigner {
	return &Assigner{
		loader:       loader,
		fallback:     fallback,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени (тесты)
func (a *Assigner) WithTimeProvider(tp TimeProvider) *Assigner {
	a.timeProvider = tp
	return a
}

// GenerateQueueNumber returns the next three-digit queue number for bookingDate
// (YYYY-MM-DD, compared as a string) and barberName. When the store cannot be
// read the number degrades to now_ms mod 1000; it never fails.
func (a *Assigner) GenerateQueueNumber(ctx context.Context, bookingDate, barberName string) string {
	number, err := a.NextQueueNumber(ctx, bookingDate, barberName)
	if err != nil {
		return a.FallbackQueueNumber(bookingDate, barberName, err)
	}
	return number
}

// NextQueueNumber как GenerateQueueNumber, но ошибку чтения возвращает вызывающему.
// Нужен внутри транзакции: после ошибки запроса транзакция Postgres уже прервана.
func (a *Assigner) NextQueueNumber(ctx context.Context, bookingDate, barberName string) (string, error) {
	bookings, err := a.loader.Load(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: date=%s barber=%s: %w", ErrLoad, bookingDate, barberName, err)
	}

	count := len(Scope(bookings, bookingDate, barberName))
	return domain.FormatQueueNumber(int64(count + 1)), nil
}

// FallbackQueueNumber now_ms mod 1000, логируется как warning
func (a *Assigner) FallbackQueueNumber(bookingDate, barberName string, cause error) string {
	n := a.timeProvider.Now().UnixMilli() % domain.QueueFallbackModulo
	a.logger.Warn("GenerateQueueNumber: failed to load bookings, fallback number=%03d date=%s barber=%s: %v",
		n, bookingDate, barberName, cause)
	if a.fallback != nil {
		a.fallback.IncQueueFallback(fallbackReasonLoad)
	}
	return domain.FormatQueueNumber(n)
}

// Scope returns the bookings occupying a queue position for date and barber:
// exact date, trimmed lower-cased barber, status pending, confirmed or absent.
func Scope(bookings []*domain.Booking, bookingDate, barberName string) []*domain.Booking {
	barber := domain.NormalizeBarberName(barberName)

	var scoped []*domain.Booking
	for _, b := range bookings {
		if b == nil || b.DateValue() != bookingDate {
			continue
		}
		if domain.NormalizeBarberName(b.BarberValue()) != barber {
			continue
		}
		if !b.Status.CountsTowardQueue() {
			continue
		}
		scoped = append(scoped, b)
	}
	return scoped
}

// Board orders scoped bookings by creation time and assigns their positions
func Board(bookings []*domain.Booking, bookingDate, barberName string) []domain.QueueEntry {
	scoped := Scope(bookings, bookingDate, barberName)
	sort.SliceStable(scoped, func(i, j int) bool {
		return scoped[i].CreatedAt.Before(scoped[j].CreatedAt)
	})

	entries := make([]domain.QueueEntry, 0, len(scoped))
	for i, b := range scoped {
		entries = append(entries, domain.QueueEntry{
			QueueNumber: domain.FormatQueueNumber(int64(i + 1)),
			BookingID:   b.ID,
			Name:        b.NameValue(),
			Service:     b.ServiceValue(),
			Time:        b.TimeValue(),
			Status:      b.Status,
		})
	}
	return entries
}
