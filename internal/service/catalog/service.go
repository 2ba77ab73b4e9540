package catalog

import (
	"context"
	"strings"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/internal/service/catalog/models"
)

// Service читает каталог услуг и список барберов, загруженные при старте
type Service struct {
	catalog domain.Catalog
	roster  domain.Roster
	logger  Logger
}

// NewService создает сервис каталога
func NewService(catalog domain.Catalog, roster domain.Roster, logger Logger) *Service {
	return &Service{
		catalog: catalog,
		roster:  roster,
		logger:  logger,
	}
}

// ListServices возвращает услуги в порядке каталога, опционально по категории
func (s *Service) ListServices(ctx context.Context, category *string) *models.ServiceListResponse {
	resp := &models.ServiceListResponse{Services: make([]models.ServiceResponse, 0, len(s.catalog))}
	for _, def := range s.catalog {
		if category != nil && !strings.EqualFold(def.Category, *category) {
			continue
		}
		resp.Services = append(resp.Services, models.FromDomainService(def))
	}

	s.logger.Info("ListServices: returning %d services", len(resp.Services))
	return resp
}

// GetService возвращает услугу по ID
func (s *Service) GetService(ctx context.Context, id string) (*models.ServiceResponse, error) {
	def, ok := s.catalog.ByID(id)
	if !ok {
		s.logger.Warn("GetService: service id=%s not found", id)
		return nil, ErrServiceNotFound
	}
	resp := models.FromDomainService(*def)
	return &resp, nil
}

// ListBarbers возвращает барберов в порядке конфигурации
func (s *Service) ListBarbers(ctx context.Context) *models.BarberListResponse {
	resp := &models.BarberListResponse{Barbers: make([]models.BarberResponse, 0, len(s.roster))}
	for _, b := range s.roster {
		resp.Barbers = append(resp.Barbers, models.FromDomainBarber(b))
	}
	return resp
}

// GetBarber возвращает барбера по ID
func (s *Service) GetBarber(ctx context.Context, id string) (*models.BarberResponse, error) {
	b, ok := s.roster.ByID(domain.BarberID(id))
	if !ok {
		s.logger.Warn("GetBarber: barber id=%s not found", id)
		return nil, ErrBarberNotFound
	}
	resp := models.FromDomainBarber(*b)
	return &resp, nil
}
