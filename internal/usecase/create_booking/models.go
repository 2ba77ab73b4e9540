package create_booking

import "time"

// Request модель запроса с формы бронирования
type Request struct {
	Name    string  `json:"name" validate:"required,max=100"`
	Phone   string  `json:"phone" validate:"required,max=32"`
	Service string  `json:"service" validate:"required,max=100"`
	Date    string  `json:"date" validate:"required,datetime=2006-01-02"`
	Time    *string `json:"time" validate:"omitempty,datetime=15:04"`
	Barber  *string `json:"barber" validate:"omitempty,max=100"`
	Notes   *string `json:"notes" validate:"omitempty,max=500"`
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID          string
	Ref         string
	QueueNumber string
	Phone       string
	Service     string
	Name        string
	Date        string
	Time        *string
	Barber      *string
	BarberID    *string
	Status      string
	Source      string
	AckSent     bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
