package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-BarberService/internal/infra/storage/bookingfile"
	"github.com/m04kA/SMC-BarberService/internal/service/bookings/models"
	"github.com/m04kA/SMC-BarberService/internal/service/phone"
)

// Service сервис для работы с бронированиями (админка и история клиента)
type Service struct {
	bookingRepo BookingRepository
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id string) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%s", id)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			s.logger.Warn("GetByID: booking id=%s not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// List получает бронирования с фильтрацией по дате, барберу и статусу
//
// Примеры использования:
// - Все активные бронирования: List(ctx, &ListBookingsRequest{})
// - Очередь барбера на дату: Date и Barber
// - Включая отменённые и завершённые: IncludeInactive = true
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	logMsg := "List: fetching bookings"
	if req.Date != nil {
		logMsg += fmt.Sprintf(", date=%s", *req.Date)
	}
	if req.Barber != nil {
		logMsg += fmt.Sprintf(", barber=%s", *req.Barber)
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeInactive {
		logMsg += ", includeInactive=true"
	}
	s.logger.Info("%s", logMsg)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings), nil
}

// GetCustomerBookings история бронирований клиента; номер нормализуется так же, как при сохранении
func (s *Service) GetCustomerBookings(ctx context.Context, rawPhone string, status *string) (*models.BookingListResponse, error) {
	canonical := phone.NormalizeForStorage(rawPhone)
	if canonical == "" {
		return nil, fmt.Errorf("%w: phone is required", ErrInvalidInput)
	}

	s.logger.Info("GetCustomerBookings: fetching bookings for phone=%s, status=%v", canonical, status)

	filter := domain.BookingsFilter{Phone: &canonical, IncludeInactive: true}
	if status != nil {
		st, err := models.ToDomainBookingStatus(*status)
		if err != nil {
			s.logger.Warn("GetCustomerBookings: invalid status=%s", *status)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Status = &st
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("GetCustomerBookings: repository error for phone=%s: %v", canonical, err)
		return nil, fmt.Errorf("%w: GetCustomerBookings - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBookingList(bookings), nil
}

// UpdateStatus обновляет статус бронирования с проверкой допустимых переходов
func (s *Service) UpdateStatus(ctx context.Context, bookingID string, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	newStatus, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%s", req.Status, bookingID)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	updated, err := s.Transition(ctx, bookingID, newStatus)
	if err != nil {
		return nil, err
	}

	return models.FromDomainBooking(updated), nil
}

// Transition переводит бронирование в статус next.
// Разрешены только pending -> confirmed | cancelled и confirmed -> completed.
func (s *Service) Transition(ctx context.Context, bookingID string, next domain.BookingStatus) (*domain.Booking, error) {
	s.logger.Info("Transition: booking id=%s to status=%s", bookingID, next)

	var result *domain.Booking
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.bookingRepo.GetByID(txCtx, bookingID)
		if err != nil {
			if isNotFound(err) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: Transition - get booking: %w", ErrInternal, err)
		}

		if !booking.Status.CanTransitionTo(next) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, next)
		}

		// статус мог измениться после чтения; запись условная
		updated, err := s.bookingRepo.UpdateStatus(txCtx, bookingID, booking.Status, next)
		if err != nil {
			if isNotFound(err) {
				return ErrBookingNotFound
			}
			if isStatusConflict(err) {
				return fmt.Errorf("%w: %s -> %s: %v", ErrInvalidTransition, booking.Status, next, err)
			}
			return fmt.Errorf("%w: Transition - update status: %w", ErrInternal, err)
		}

		result = updated
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound):
			s.logger.Warn("Transition: booking id=%s not found", bookingID)
		case errors.Is(err, ErrInvalidTransition):
			s.logger.Warn("Transition: booking id=%s: %v", bookingID, err)
		default:
			s.logger.Error("Transition: booking id=%s: %v", bookingID, err)
		}
		return nil, err
	}

	s.logger.Info("Transition: booking id=%s is now %s", bookingID, result.Status)
	return result, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, bookingRepo.ErrBookingNotFound) || errors.Is(err, bookingfile.ErrBookingNotFound)
}

func isStatusConflict(err error) bool {
	return errors.Is(err, bookingRepo.ErrStatusConflict) || errors.Is(err, bookingfile.ErrStatusConflict)
}
