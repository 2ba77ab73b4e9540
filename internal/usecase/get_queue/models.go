package get_queue

import "github.com/m04kA/SMC-BarberService/internal/domain"

// Request модель запроса табло очереди
type Request struct {
	Date   *string // YYYY-MM-DD, по умолчанию сегодня в часовом поясе салона
	Barber *string // если не указан, возвращаются очереди всех барберов на дату
}

// Response табло очереди на дату
type Response struct {
	Date   string
	Queues []BarberQueue
}

// BarberQueue очередь одного барбера
type BarberQueue struct {
	Barber  string // отображаемое имя, пусто для бронирований без барбера
	Entries []domain.QueueEntry
}
