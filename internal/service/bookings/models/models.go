package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-BarberService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// UpdateStatusRequest запрос на обновление статуса бронирования
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// ListBookingsRequest запрос списка бронирований (админка)
type ListBookingsRequest struct {
	Date            *string `json:"date,omitempty"`   // YYYY-MM-DD
	Barber          *string `json:"barber,omitempty"` // имя барбера
	Status          *string `json:"status,omitempty"`
	IncludeInactive bool    `json:"includeInactive,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		Date:            r.Date,
		Barber:          r.Barber,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID       string  `json:"id"`
	Ref      string  `json:"ref"`
	Phone    string  `json:"phone"`
	Service  *string `json:"service"`
	Name     *string `json:"name,omitempty"`
	Date     *string `json:"date,omitempty"` // "2026-01-10"
	Time     *string `json:"time,omitempty"` // "15:00"
	Barber   *string `json:"barber,omitempty"`
	BarberID *string `json:"barberId,omitempty"`
	Status   string  `json:"status"`
	Source   string  `json:"source"`
	Raw      string  `json:"raw,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:        b.ID,
		Ref:       b.Ref(),
		Phone:     b.Phone,
		Service:   b.Service,
		Name:      b.Name,
		Date:      b.Date,
		Time:      b.Time,
		Barber:    b.Barber,
		Status:    string(b.Status),
		Source:    b.Source,
		Raw:       b.Raw,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
	if b.BarberID != nil {
		id := string(*b.BarberID)
		resp.BarberID = &id
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}
