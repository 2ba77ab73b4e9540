package get_catalog

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BarberService/internal/api/handlers"
	"github.com/m04kA/SMC-BarberService/internal/service/catalog"
)

const (
	msgServiceNotFound = "услуга не найдена"
	msgBarberNotFound  = "барбер не найден"
)

// Handler отдаёт каталог услуг и список барберов
type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// ListServices GET /api/v1/services
// Query params: category (опционально)
func (h *Handler) ListServices(w http.ResponseWriter, r *http.Request) {
	var category *string
	if c := r.URL.Query().Get("category"); c != "" {
		category = &c
	}

	resp := h.service.ListServices(r.Context(), category)
	h.logger.Info("GET /services - Services retrieved: count=%d", len(resp.Services))
	handlers.RespondJSON(w, http.StatusOK, resp)
}

// GetService GET /api/v1/services/{serviceId}
func (h *Handler) GetService(w http.ResponseWriter, r *http.Request) {
	serviceID := mux.Vars(r)["serviceId"]

	resp, err := h.service.GetService(r.Context(), serviceID)
	if err != nil {
		if errors.Is(err, catalog.ErrServiceNotFound) {
			h.logger.Warn("GET /services/{id} - Service not found: service_id=%s", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)
			return
		}
		h.logger.Error("GET /services/{id} - Failed to get service: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}

// ListBarbers GET /api/v1/barbers
func (h *Handler) ListBarbers(w http.ResponseWriter, r *http.Request) {
	resp := h.service.ListBarbers(r.Context())
	h.logger.Info("GET /barbers - Barbers retrieved: count=%d", len(resp.Barbers))
	handlers.RespondJSON(w, http.StatusOK, resp)
}

// GetBarber GET /api/v1/barbers/{barberId}
func (h *Handler) GetBarber(w http.ResponseWriter, r *http.Request) {
	barberID := mux.Vars(r)["barberId"]

	resp, err := h.service.GetBarber(r.Context(), barberID)
	if err != nil {
		if errors.Is(err, catalog.ErrBarberNotFound) {
			h.logger.Warn("GET /barbers/{id} - Barber not found: barber_id=%s", barberID)
			handlers.RespondNotFound(w, msgBarberNotFound)
			return
		}
		h.logger.Error("GET /barbers/{id} - Failed to get barber: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}
