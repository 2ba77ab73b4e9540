package get_queue

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/internal/service/queue"
)

// UseCase use case для табло живой очереди
type UseCase struct {
	bookingRepo  BookingRepository
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, location *time.Location, logger Logger) *UseCase {
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		bookingRepo:  bookingRepo,
		location:     location,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени (тесты)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute возвращает активные бронирования на дату в порядке создания с номерами очереди
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Дата по умолчанию - сегодня
	date := uc.timeProvider.Now().In(uc.location).Format(domain.DateFormat)
	if req.Date != nil && strings.TrimSpace(*req.Date) != "" {
		date = strings.TrimSpace(*req.Date)
		if _, err := time.Parse(domain.DateFormat, date); err != nil {
			uc.logger.Warn("GetQueue: invalid date %q", date)
			return nil, fmt.Errorf("%w: %s", ErrInvalidDate, date)
		}
	}

	uc.logger.Info("GetQueue: date=%s, barber=%v", date, req.Barber)

	// 2. Активные бронирования на дату
	bookings, err := uc.bookingRepo.List(ctx, domain.BookingsFilter{Date: &date})
	if err != nil {
		uc.logger.Error("GetQueue: failed to list bookings for date=%s: %v", date, err)
		return nil, fmt.Errorf("%w: failed to list bookings: %v", ErrInternal, err)
	}

	resp := &Response{Date: date, Queues: make([]BarberQueue, 0)}

	// 3. Очередь конкретного барбера
	if req.Barber != nil {
		resp.Queues = append(resp.Queues, BarberQueue{
			Barber:  strings.TrimSpace(*req.Barber),
			Entries: queue.Board(bookings, date, *req.Barber),
		})
		return resp, nil
	}

	// 4. Все барберы в порядке первого бронирования
	for _, barber := range barbersOf(bookings) {
		resp.Queues = append(resp.Queues, BarberQueue{
			Barber:  barber,
			Entries: queue.Board(bookings, date, barber),
		})
	}

	uc.logger.Info("GetQueue: date=%s, %d queues", date, len(resp.Queues))
	return resp, nil
}

// barbersOf отображаемые имена барберов без повторов (сравнение без регистра)
func barbersOf(bookings []*domain.Booking) []string {
	seen := make(map[string]struct{})
	names := make([]string, 0)
	for _, b := range bookings {
		key := domain.NormalizeBarberName(b.BarberValue())
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		names = append(names, strings.TrimSpace(b.BarberValue()))
	}
	return names
}
