package create_booking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberService/internal/api/handlers"
	createBooking "github.com/m04kA/SMC-BarberService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-BarberService/pkg/logger"
)

type stubUseCase struct {
	got  *createBooking.Request
	resp *createBooking.Response
	err  error
}

func (s *stubUseCase) Execute(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	s.got = req
	return s.resp, s.err
}

const validBody = `{"name":"Sipho","phone":"076 828 0367","service":"Haircut","date":"2026-01-10","barber":"John"}`

func post(h *Handler, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	h.Handle(rec, req)
	return rec
}

func TestHandler_Handle_Created(t *testing.T) {
	barber := "John"
	created := time.Date(2026, 1, 9, 10, 0, 0, 0, time.UTC)
	uc := &stubUseCase{resp: &createBooking.Response{
		ID:          "b1",
		Ref:         "B1",
		QueueNumber: "003",
		Phone:       "27768280367",
		Service:     "Haircut",
		Name:        "Sipho",
		Date:        "2026-01-10",
		Barber:      &barber,
		Status:      "pending",
		Source:      "web",
		CreatedAt:   created,
		UpdatedAt:   created,
	}}

	rec := post(NewHandler(uc, logger.Nop()), validBody)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp BookingResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "b1", resp.ID)
	assert.Equal(t, "003", resp.QueueNumber)
	assert.Equal(t, "2026-01-09T10:00:00Z", resp.CreatedAt)

	require.NotNil(t, uc.got)
	assert.Equal(t, "076 828 0367", uc.got.Phone)
	require.NotNil(t, uc.got.Barber)
	assert.Equal(t, "John", *uc.got.Barber)
}

func TestHandler_Handle_Errors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		err     error
		want    int
		wantMsg string
	}{
		{name: "service not found", body: validBody, err: fmt.Errorf("%w: service=Perm", createBooking.ErrServiceNotFound), want: http.StatusNotFound, wantMsg: msgServiceNotFound},
		{name: "barber not found", body: validBody, err: createBooking.ErrBarberNotFound, want: http.StatusNotFound, wantMsg: msgBarberNotFound},
		{name: "invalid phone", body: validBody, err: createBooking.ErrInvalidPhone, want: http.StatusBadRequest, wantMsg: msgInvalidPhone},
		{name: "date in the past", body: validBody, err: createBooking.ErrInvalidDate, want: http.StatusBadRequest, wantMsg: msgInvalidBookingDate},
		{name: "invalid input", body: validBody, err: fmt.Errorf("%w: name is required", createBooking.ErrInvalidInput), want: http.StatusBadRequest},
		{name: "broken body", body: `{"name":`, want: http.StatusBadRequest, wantMsg: msgInvalidRequestBody},
		{name: "internal", body: validBody, err: createBooking.ErrInternal, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &stubUseCase{err: tt.err}

			rec := post(NewHandler(uc, logger.Nop()), tt.body)

			require.Equal(t, tt.want, rec.Code)
			if tt.wantMsg != "" {
				var resp handlers.ErrorResponse
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
				assert.Equal(t, tt.wantMsg, resp.Message)
			}
		})
	}
}
