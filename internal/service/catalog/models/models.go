package models

import "github.com/m04kA/SMC-BarberService/internal/domain"

// ServiceResponse услуга каталога
type ServiceResponse struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	DurationMinutes int     `json:"durationMinutes,omitempty"`
	Price           float64 `json:"price,omitempty"`
	Category        string  `json:"category,omitempty"`
}

// ServiceListResponse каталог услуг в исходном порядке
type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
}

// BarberResponse барбер
type BarberResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// BarberListResponse список барберов
type BarberListResponse struct {
	Barbers []BarberResponse `json:"barbers"`
}

// FromDomainService конвертирует доменную услугу в ответ
func FromDomainService(s domain.ServiceDefinition) ServiceResponse {
	return ServiceResponse{
		ID:              s.ID,
		Name:            s.Name,
		DurationMinutes: s.DurationMinutes,
		Price:           s.Price,
		Category:        s.Category,
	}
}

// FromDomainBarber конвертирует доменного барбера в ответ
func FromDomainBarber(b domain.Barber) BarberResponse {
	return BarberResponse{ID: string(b.ID), Name: b.Name}
}
