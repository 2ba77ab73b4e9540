package get_catalog

import (
	"context"

	"github.com/m04kA/SMC-BarberService/internal/service/catalog/models"
)

type CatalogService interface {
	ListServices(ctx context.Context, category *string) *models.ServiceListResponse
	GetService(ctx context.Context, id string) (*models.ServiceResponse, error)
	ListBarbers(ctx context.Context) *models.BarberListResponse
	GetBarber(ctx context.Context, id string) (*models.BarberResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
