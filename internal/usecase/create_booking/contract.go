package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/internal/service/reservation"
)

// ServiceMatcher сопоставляет название услуги с каталогом
type ServiceMatcher interface {
	FindServiceByText(text string) *domain.ServiceDefinition
}

// BarberMatcher сопоставляет имя барбера со списком барберов
type BarberMatcher interface {
	FindBarberByText(text string) *domain.Barber
}

// Reserver назначает номер очереди и сохраняет бронирование
type Reserver interface {
	Reserve(ctx context.Context, booking *domain.Booking) (*reservation.Result, error)
}

// MessageSender отправляет подтверждение клиенту
type MessageSender interface {
	Send(ctx context.Context, provider, to, body string) error
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
