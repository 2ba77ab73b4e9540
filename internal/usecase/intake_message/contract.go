package intake_message

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/internal/service/matcher"
	"github.com/m04kA/SMC-BarberService/internal/service/parser"
	"github.com/m04kA/SMC-BarberService/internal/service/reservation"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// FieldExtractor извлекает поля бронирования из текста
type FieldExtractor interface {
	ParseBookingFields(raw string) parser.Fields
}

// ServiceMatcher сопоставляет текст с услугой каталога
type ServiceMatcher interface {
	Resolve(text string) (*domain.ServiceDefinition, matcher.Method)
}

// BarberMatcher сопоставляет текст с барбером
type BarberMatcher interface {
	FindBarberByText(text string) *domain.Barber
}

// DateResolver переводит текст в дату и время салона
type DateResolver interface {
	Resolve(text string, now time.Time) parser.Schedule
}

// Reserver назначает номер очереди и сохраняет бронирование
type Reserver interface {
	Reserve(ctx context.Context, booking *domain.Booking) (*reservation.Result, error)
}

// StatusUpdater переводит бронирование в новый статус
type StatusUpdater interface {
	Transition(ctx context.Context, bookingID string, next domain.BookingStatus) (*domain.Booking, error)
}

// DedupStore отмечает обработанные сообщения провайдера
type DedupStore interface {
	MarkProcessed(ctx context.Context, provider, messageID string) (bool, error)
	Forget(ctx context.Context, provider, messageID string) error
}

// MessageSender отправляет ответ через провайдера
type MessageSender interface {
	Send(ctx context.Context, provider, to, body string) error
}

// Metrics доменные счётчики
type Metrics interface {
	IncInbound(source, outcome string)
	IncServiceMatch(method string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
