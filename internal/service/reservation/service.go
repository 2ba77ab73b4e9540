// Package reservation assigns a queue number and persists a booking as one
// step per date and barber.
package reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/internal/service/queue"
)

// Result сохранённое бронирование и его номер в очереди
type Result struct {
	Booking     *domain.Booking
	QueueNumber string
}

// Service резервирует место в очереди.
// Подсчёт и сохранение выполняются под блокировкой ключа date:barber и в SERIALIZABLE транзакции,
// поэтому два параллельных запроса не получат один и тот же номер.
type Service struct {
	repo      BookingSaver
	assigner  QueueAssigner
	locker    Locker
	txManager TransactionManager
	logger    Logger
}

// NewService создает сервис резервирования
func NewService(
	repo BookingSaver,
	assigner QueueAssigner,
	locker Locker,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		repo:      repo,
		assigner:  assigner,
		locker:    locker,
		txManager: txManager,
		logger:    logger,
	}
}

// Reserve computes the queue number for booking's date and barber and saves it.
// booking.Date must already be a canonical YYYY-MM-DD date.
func (s *Service) Reserve(ctx context.Context, booking *domain.Booking) (*Result, error) {
	date := booking.DateValue()
	barber := booking.BarberValue()
	key := domain.QueueKey(date, barber)

	// 1. Блокировка очереди date:barber
	unlock, err := s.locker.Lock(ctx, key)
	if err != nil {
		s.logger.Error("Reserve: failed to lock key=%s: %v", key, err)
		return nil, fmt.Errorf("%w: key=%s: %v", ErrLock, key, err)
	}
	defer unlock()

	var result *Result

	// 2. Номер и запись в одной транзакции
	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		queueNumber, err := s.assigner.NextQueueNumber(txCtx, date, barber)
		if err != nil {
			return err
		}

		saved, err := s.save(txCtx, booking)
		if err != nil {
			return err
		}

		result = &Result{Booking: saved, QueueNumber: queueNumber}
		return nil
	})

	// 3. Хранилище не прочиталось: номер из fallback, запись в новой транзакции
	if errors.Is(err, queue.ErrLoad) {
		queueNumber := s.assigner.FallbackQueueNumber(date, barber, err)
		err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
			saved, err := s.save(txCtx, booking)
			if err != nil {
				return err
			}
			result = &Result{Booking: saved, QueueNumber: queueNumber}
			return nil
		})
	}
	if err != nil {
		s.logger.Error("Reserve: key=%s: %v", key, err)
		return nil, err
	}

	s.logger.Info("Reserve: booking id=%s saved, key=%s, queue=%s", result.Booking.ID, key, result.QueueNumber)
	return result, nil
}

func (s *Service) save(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	saved, err := s.repo.Save(ctx, booking)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSave, err)
	}
	return saved, nil
}
