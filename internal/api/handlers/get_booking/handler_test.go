package get_booking

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberService/internal/service/bookings"
	"github.com/m04kA/SMC-BarberService/internal/service/bookings/models"
	"github.com/m04kA/SMC-BarberService/pkg/logger"
)

type stubService struct {
	bookings map[string]*models.BookingResponse
	err      error
}

func (s *stubService) GetByID(ctx context.Context, id string) (*models.BookingResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	b, ok := s.bookings[id]
	if !ok {
		return nil, bookings.ErrBookingNotFound
	}
	return b, nil
}

func get(svc BookingService, id string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/bookings/{bookingId}", NewHandler(svc, logger.Nop()).Handle).Methods(http.MethodGet)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/bookings/"+id, nil))
	return rec
}

func TestHandler_Handle(t *testing.T) {
	svc := &stubService{bookings: map[string]*models.BookingResponse{
		"b1": {ID: "b1", Phone: "27682770367", Status: "pending"},
	}}

	rec := get(svc, "b1")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.BookingResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "b1", resp.ID)
	assert.Equal(t, "pending", resp.Status)

	rec = get(svc, "missing")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// пробелы вокруг ID не считаются ID
	rec = get(svc, "%20")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_Handle_InternalError(t *testing.T) {
	rec := get(&stubService{err: errors.New("disk failure")}, "b1")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
