package reservation

import (
	"context"

	"github.com/m04kA/SMC-BarberService/internal/domain"
)

// BookingSaver сохраняет новое бронирование
type BookingSaver interface {
	Save(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// QueueAssigner вычисляет следующий номер в очереди.
// NextQueueNumber оборачивает ошибку чтения в queue.ErrLoad.
type QueueAssigner interface {
	NextQueueNumber(ctx context.Context, bookingDate, barberName string) (string, error)
	FallbackQueueNumber(bookingDate, barberName string, cause error) string
}

// Locker блокировка по ключу (pkg/keylock или Redis)
type Locker interface {
	Lock(ctx context.Context, key string) (func(), error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
