package get_queue

import (
	"github.com/m04kA/SMC-BarberService/internal/usecase/get_queue"
)

// QueueBoardResponse табло очереди на дату
type QueueBoardResponse struct {
	Date   string           `json:"date"`
	Queues []BarberQueueDTO `json:"queues"`
}

type BarberQueueDTO struct {
	Barber  string          `json:"barber"`
	Entries []QueueEntryDTO `json:"entries"`
}

type QueueEntryDTO struct {
	QueueNumber string `json:"queueNumber"`
	BookingID   string `json:"bookingId"`
	Name        string `json:"name,omitempty"`
	Service     string `json:"service,omitempty"`
	Time        string `json:"time,omitempty"`
	Status      string `json:"status"`
}

// ToServiceRequest формирует запрос к usecase из query параметров
func ToServiceRequest(dateStr, barberStr string) *get_queue.Request {
	req := &get_queue.Request{}
	if dateStr != "" {
		req.Date = &dateStr
	}
	if barberStr != "" {
		req.Barber = &barberStr
	}
	return req
}

// FromUseCaseResponse конвертирует ответ usecase в DTO
func FromUseCaseResponse(resp *get_queue.Response) *QueueBoardResponse {
	board := &QueueBoardResponse{
		Date:   resp.Date,
		Queues: make([]BarberQueueDTO, 0, len(resp.Queues)),
	}
	for _, q := range resp.Queues {
		dto := BarberQueueDTO{
			Barber:  q.Barber,
			Entries: make([]QueueEntryDTO, 0, len(q.Entries)),
		}
		for _, e := range q.Entries {
			dto.Entries = append(dto.Entries, QueueEntryDTO{
				QueueNumber: e.QueueNumber,
				BookingID:   e.BookingID,
				Name:        e.Name,
				Service:     e.Service,
				Time:        e.Time,
				Status:      string(e.Status),
			})
		}
		board.Queues = append(board.Queues, dto)
	}
	return board
}
