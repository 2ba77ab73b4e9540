package create_booking

import (
	"time"

	createBooking "github.com/m04kA/SMC-BarberService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	Name    string  `json:"name"`
	Phone   string  `json:"phone"`
	Service string  `json:"service"` // название или id услуги
	Date    string  `json:"date"`    // "2026-01-10"
	Time    *string `json:"time,omitempty"`
	Barber  *string `json:"barber,omitempty"`
	Notes   *string `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID          string  `json:"id"`
	Ref         string  `json:"ref"`
	QueueNumber string  `json:"queueNumber"`
	Phone       string  `json:"phone"`
	Service     string  `json:"service"`
	Name        string  `json:"name"`
	Date        string  `json:"date"`
	Time        *string `json:"time,omitempty"`
	Barber      *string `json:"barber,omitempty"`
	BarberID    *string `json:"barberId,omitempty"`
	Status      string  `json:"status"`
	Source      string  `json:"source"`
	AckSent     bool    `json:"ackSent"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() *createBooking.Request {
	return &createBooking.Request{
		Name:    r.Name,
		Phone:   r.Phone,
		Service: r.Service,
		Date:    r.Date,
		Time:    r.Time,
		Barber:  r.Barber,
		Notes:   r.Notes,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:          resp.ID,
		Ref:         resp.Ref,
		QueueNumber: resp.QueueNumber,
		Phone:       resp.Phone,
		Service:     resp.Service,
		Name:        resp.Name,
		Date:        resp.Date,
		Time:        resp.Time,
		Barber:      resp.Barber,
		BarberID:    resp.BarberID,
		Status:      resp.Status,
		Source:      resp.Source,
		AckSent:     resp.AckSent,
		CreatedAt:   resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   resp.UpdatedAt.Format(time.RFC3339),
	}
}
