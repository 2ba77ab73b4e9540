package create_booking

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/internal/service/ack"
	"github.com/m04kA/SMC-BarberService/internal/service/phone"
)

// UseCase use case для создания бронирования с формы сайта
type UseCase struct {
	services     ServiceMatcher
	barbers      BarberMatcher
	reserver     Reserver
	sender       MessageSender
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case. sender может быть nil, тогда подтверждение не отправляется.
func NewUseCase(
	services ServiceMatcher,
	barbers BarberMatcher,
	reserver Reserver,
	sender MessageSender,
	location *time.Location,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		services:     services,
		barbers:      barbers,
		reserver:     reserver,
		sender:       sender,
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

// Execute выполняет use case создания бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("CreateBooking: service=%q, date=%s, time=%v, barber=%v",
		req.Service, req.Date, req.Time, req.Barber)

	// 2. Дата не в прошлом
	if err := validateDate(req.Date, uc.timeProvider.Now(), uc.location); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}

	// 3. Телефон
	customerPhone := phone.NormalizeForStorage(req.Phone)
	if len(customerPhone) < minPhoneDigits {
		uc.logger.Warn("CreateBooking: invalid phone %q", req.Phone)
		return nil, ErrInvalidPhone
	}

	// 4. Услуга из каталога
	service := uc.services.FindServiceByText(req.Service)
	if service == nil {
		uc.logger.Warn("CreateBooking: service %q not found", req.Service)
		return nil, ErrServiceNotFound
	}

	booking := &domain.Booking{
		Phone:   customerPhone,
		Service: &service.Name,
		Name:    &req.Name,
		Date:    &req.Date,
		Time:    req.Time,
		Status:  domain.StatusPending,
		Source:  domain.SourceBookingForm,
		Raw:     composeRaw(req),
	}

	// 5. Барбер (опционально)
	if req.Barber != nil && strings.TrimSpace(*req.Barber) != "" {
		barber := uc.barbers.FindBarberByText(*req.Barber)
		if barber == nil {
			uc.logger.Warn("CreateBooking: barber %q not found", *req.Barber)
			return nil, ErrBarberNotFound
		}
		name, id := barber.Name, barber.ID
		booking.Barber = &name
		booking.BarberID = &id
	}

	// 6. Номер очереди и сохранение
	reserved, err := uc.reserver.Reserve(ctx, booking)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to save booking: %v", err)
		return nil, fmt.Errorf("%w: failed to save booking: %v", ErrInternal, err)
	}
	saved := reserved.Booking

	// 7. Подтверждение в WhatsApp, ошибка отправки не ломает бронирование
	when := saved.DateValue()
	if saved.Time != nil {
		when += " " + *saved.Time
	}
	ackSent := false
	if uc.sender != nil {
		msg := ack.BuildAckMessage(ack.Input{
			Name:        saved.NameValue(),
			ServiceName: saved.ServiceValue(),
			DateTime:    when,
			BarberName:  saved.BarberValue(),
			Ref:         saved.Ref(),
			QueueNumber: reserved.QueueNumber,
		})
		if err := uc.sender.Send(ctx, "", saved.Phone, msg); err != nil {
			uc.logger.Warn("CreateBooking: failed to send ack for booking id=%s: %v", saved.ID, err)
		} else {
			ackSent = true
		}
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%s, queue=%s", saved.ID, reserved.QueueNumber)

	resp := &Response{
		ID:          saved.ID,
		Ref:         saved.Ref(),
		QueueNumber: reserved.QueueNumber,
		Phone:       saved.Phone,
		Service:     saved.ServiceValue(),
		Name:        saved.NameValue(),
		Date:        saved.DateValue(),
		Time:        saved.Time,
		Barber:      saved.Barber,
		Status:      string(saved.Status),
		Source:      saved.Source,
		AckSent:     ackSent,
		CreatedAt:   saved.CreatedAt,
		UpdatedAt:   saved.UpdatedAt,
	}
	if saved.BarberID != nil {
		id := string(*saved.BarberID)
		resp.BarberID = &id
	}
	return resp, nil
}
