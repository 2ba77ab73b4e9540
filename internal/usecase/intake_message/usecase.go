package intake_message

import (
	"context"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/internal/service/ack"
	"github.com/m04kA/SMC-BarberService/internal/service/matcher"
	"github.com/m04kA/SMC-BarberService/internal/service/phone"
)

// UseCase обрабатывает входящее сообщение WhatsApp: новое бронирование или ответ 1/2/3
type UseCase struct {
	bookingRepo   BookingRepository
	extractor     FieldExtractor
	services      ServiceMatcher
	barbers       BarberMatcher
	dates         DateResolver
	reserver      Reserver
	statusUpdater StatusUpdater
	dedup         DedupStore
	sender        MessageSender
	metrics       Metrics
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case. dedup и metrics могут быть nil.
func NewUseCase(
	bookingRepo BookingRepository,
	extractor FieldExtractor,
	services ServiceMatcher,
	barbers BarberMatcher,
	dates DateResolver,
	reserver Reserver,
	statusUpdater StatusUpdater,
	dedup DedupStore,
	sender MessageSender,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		extractor:     extractor,
		services:      services,
		barbers:       barbers,
		dates:         dates,
		reserver:      reserver,
		statusUpdater: statusUpdater,
		dedup:         dedup,
		sender:        sender,
		metrics:       metrics,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// WithTimeProvider подменяет источник времени (тесты)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute обрабатывает одно входящее сообщение.
// Ошибка возвращается только когда бронирование не удалось сохранить;
// сбой отправки ответа логируется и не меняет результат.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Нормализуем отправителя и текст
	customerPhone := phone.NormalizeForStorage(phone.StripChannelPrefix(req.From))
	body := strings.TrimSpace(req.Body)
	if customerPhone == "" || body == "" {
		uc.logger.Info("IntakeMessage: ignoring message id=%s from=%q: empty sender or body", req.MessageID, req.From)
		uc.record(req.Source, OutcomeIgnored)
		return &Response{Outcome: OutcomeIgnored}, nil
	}

	// 2. Повторная доставка от провайдера
	if uc.isDuplicate(ctx, req) {
		uc.logger.Info("IntakeMessage: duplicate message id=%s from %s", req.MessageID, req.Source)
		uc.record(req.Source, OutcomeDuplicate)
		return &Response{Outcome: OutcomeDuplicate}, nil
	}

	// 3. Ответ 1/2/3 на последнее открытое бронирование
	if isReplyCommand(body) {
		resp := uc.handleReply(ctx, req, customerPhone, body)
		uc.record(req.Source, resp.Outcome)
		return resp, nil
	}

	// 4. Извлекаем поля и собираем бронирование
	booking, dateTimeText := uc.buildBooking(req, customerPhone, body)

	// 5. Номер очереди и сохранение
	reserved, err := uc.reserver.Reserve(ctx, booking)
	if err != nil {
		uc.logger.Error("IntakeMessage: failed to save booking from %s: %v", customerPhone, err)
		uc.forget(ctx, req)
		uc.record(req.Source, OutcomeFailed)
		return nil, fmt.Errorf("%w: %v", ErrSaveFailed, err)
	}
	saved := reserved.Booking

	// 6. Подтверждение клиенту
	reply := ack.BuildAckMessage(ack.Input{
		Name:        saved.NameValue(),
		ServiceName: saved.ServiceValue(),
		DateTime:    dateTimeText,
		BarberName:  saved.BarberValue(),
		Ref:         saved.Ref(),
		QueueNumber: reserved.QueueNumber,
	})
	sent := uc.send(ctx, req.Source, customerPhone, reply)

	uc.logger.Info("IntakeMessage: booking id=%s ref=%s queue=%s created from %s message id=%s",
		saved.ID, saved.Ref(), reserved.QueueNumber, req.Source, req.MessageID)
	uc.record(req.Source, OutcomeReceived)

	return &Response{
		Outcome:     OutcomeReceived,
		BookingID:   saved.ID,
		Ref:         saved.Ref(),
		QueueNumber: reserved.QueueNumber,
		Reply:       reply,
		Sent:        sent,
	}, nil
}

// buildBooking возвращает бронирование и текст даты/времени для строки "When:"
func (uc *UseCase) buildBooking(req *Request, customerPhone, body string) (*domain.Booking, string) {
	raw := truncate(body, domain.MaxRawLength)
	fields := uc.extractor.ParseBookingFields(raw)

	booking := &domain.Booking{
		Phone:  customerPhone,
		Name:   fields.Name,
		Status: domain.StatusPending,
		Source: req.Source,
		Raw:    raw,
	}

	if booking.Name == nil {
		if profile := strings.TrimSpace(req.ProfileName); profile != "" {
			booking.Name = &profile
		}
	}
	if booking.Name != nil {
		name := truncate(*booking.Name, domain.MaxNameLength)
		booking.Name = &name
	}

	if fields.Service != nil {
		svc, method := uc.services.Resolve(*fields.Service)
		uc.recordMatch(method)
		if svc != nil {
			name := svc.Name
			booking.Service = &name
		} else {
			uc.logger.Info("IntakeMessage: service %q not matched to catalog", *fields.Service)
		}
	}

	if fields.Barber != nil {
		if barber := uc.barbers.FindBarberByText(*fields.Barber); barber != nil {
			name, id := barber.Name, barber.ID
			booking.Barber = &name
			booking.BarberID = &id
		} else {
			free := strings.TrimSpace(*fields.Barber)
			booking.Barber = &free
		}
	}

	dateSource := body
	dateTimeText := ""
	if fields.DateTime != nil {
		dateSource = *fields.DateTime
		dateTimeText = *fields.DateTime
	}
	schedule := uc.dates.Resolve(dateSource, uc.timeProvider.Now())
	booking.Date = &schedule.Date
	booking.Time = schedule.Time

	return booking, dateTimeText
}

// handleReply обрабатывает ответы 1 (подтвердить), 2 (изменить), 3 (отменить)
func (uc *UseCase) handleReply(ctx context.Context, req *Request, customerPhone, command string) *Response {
	latest, err := uc.latestOpenBooking(ctx, customerPhone)
	if err != nil {
		uc.logger.Error("IntakeMessage: failed to load bookings for %s: %v", customerPhone, err)
		return uc.reply(ctx, req.Source, customerPhone, nil, ack.MsgTemporaryError)
	}
	if latest == nil {
		uc.logger.Info("IntakeMessage: reply %q from %s without open booking", command, customerPhone)
		return uc.reply(ctx, req.Source, customerPhone, nil, ack.MsgNoOpenBooking)
	}

	ref := latest.Ref()
	switch command {
	case "1":
		if latest.Status == domain.StatusConfirmed {
			return uc.reply(ctx, req.Source, customerPhone, latest, fmt.Sprintf(ack.MsgConfirmed, ref))
		}
		return uc.transition(ctx, req, customerPhone, latest, domain.StatusConfirmed,
			fmt.Sprintf(ack.MsgConfirmed, ref), ack.MsgCannotConfirm)
	case "3":
		return uc.transition(ctx, req, customerPhone, latest, domain.StatusCancelled,
			fmt.Sprintf(ack.MsgCancelled, ref), ack.MsgCannotCancel)
	default:
		uc.logger.Info("IntakeMessage: change requested for booking id=%s by %s", latest.ID, customerPhone)
		return uc.reply(ctx, req.Source, customerPhone, latest, fmt.Sprintf(ack.MsgChangeRequest, ref))
	}
}

func (uc *UseCase) transition(
	ctx context.Context,
	req *Request,
	customerPhone string,
	booking *domain.Booking,
	next domain.BookingStatus,
	okMsg, rejectedFormat string,
) *Response {
	updated, err := uc.statusUpdater.Transition(ctx, booking.ID, next)
	if err != nil {
		uc.logger.Warn("IntakeMessage: transition of booking id=%s to %s rejected: %v", booking.ID, next, err)
		current, msg := booking, ack.MsgTemporaryError
		if isRejection(err) {
			msg = fmt.Sprintf(rejectedFormat, booking.Ref(), booking.Status)
		}
		return uc.reply(ctx, req.Source, customerPhone, current, msg)
	}
	return uc.reply(ctx, req.Source, customerPhone, updated, okMsg)
}

func (uc *UseCase) reply(ctx context.Context, provider, to string, booking *domain.Booking, text string) *Response {
	resp := &Response{
		Outcome: OutcomeReply,
		Reply:   text,
		Sent:    uc.send(ctx, provider, to, text),
	}
	if booking != nil {
		resp.BookingID = booking.ID
		resp.Ref = booking.Ref()
	}
	return resp
}

// latestOpenBooking последнее pending/confirmed бронирование клиента
func (uc *UseCase) latestOpenBooking(ctx context.Context, customerPhone string) (*domain.Booking, error) {
	bookings, err := uc.bookingRepo.List(ctx, domain.BookingsFilter{Phone: &customerPhone})
	if err != nil {
		return nil, err
	}

	var latest *domain.Booking
	for _, b := range bookings {
		if b.Status.Class() != domain.ClassActive {
			continue
		}
		if latest == nil || b.CreatedAt.After(latest.CreatedAt) {
			latest = b
		}
	}
	return latest, nil
}

func (uc *UseCase) send(ctx context.Context, provider, to, body string) bool {
	if uc.sender == nil {
		return false
	}
	if err := uc.sender.Send(ctx, provider, to, body); err != nil {
		uc.logger.Warn("IntakeMessage: failed to send reply to %s via %s: %v", to, provider, err)
		return false
	}
	return true
}

func (uc *UseCase) isDuplicate(ctx context.Context, req *Request) bool {
	if uc.dedup == nil || req.MessageID == "" {
		return false
	}
	first, err := uc.dedup.MarkProcessed(ctx, req.Source, req.MessageID)
	if err != nil {
		// без хранилища дедупликации продолжаем обработку
		uc.logger.Warn("IntakeMessage: dedup unavailable for message id=%s: %v", req.MessageID, err)
		return false
	}
	return !first
}

// forget снимает отметку, чтобы повторная доставка провайдером обработала сообщение заново
func (uc *UseCase) forget(ctx context.Context, req *Request) {
	if uc.dedup == nil || req.MessageID == "" {
		return
	}
	if err := uc.dedup.Forget(ctx, req.Source, req.MessageID); err != nil {
		uc.logger.Warn("IntakeMessage: failed to forget message id=%s: %v", req.MessageID, err)
	}
}

func (uc *UseCase) record(source string, outcome Outcome) {
	if uc.metrics != nil {
		uc.metrics.IncInbound(source, string(outcome))
	}
}

func (uc *UseCase) recordMatch(method matcher.Method) {
	if uc.metrics != nil {
		uc.metrics.IncServiceMatch(string(method))
	}
}
