package get_queue

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BarberService/internal/api/handlers"
	"github.com/m04kA/SMC-BarberService/internal/usecase/get_queue"
)

const msgInvalidDate = "некорректная дата, ожидается YYYY-MM-DD"

type Handler struct {
	useCase UseCase
	logger  Logger
}

func NewHandler(useCase UseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/queue
// Query params: date (по умолчанию сегодня), barber (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := ToServiceRequest(q.Get("date"), q.Get("barber"))

	resp, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, get_queue.ErrInvalidDate):
			h.logger.Warn("GET /queue - Invalid date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /queue - Failed to build queue board: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /queue - Queue board retrieved: date=%s, barbers=%d", resp.Date, len(resp.Queues))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(resp))
}
