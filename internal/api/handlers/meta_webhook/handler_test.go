package meta_webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberService/internal/api/handlers"
	"github.com/m04kA/SMC-BarberService/internal/integrations/metawa"
	intakeMessage "github.com/m04kA/SMC-BarberService/internal/usecase/intake_message"
	"github.com/m04kA/SMC-BarberService/pkg/logger"
)

// stubIntake отвечает по MessageID; отсутствующий ID означает ошибку сохранения
type stubIntake struct {
	results map[string]*intakeMessage.Response
	got     []*intakeMessage.Request
}

func (s *stubIntake) Execute(ctx context.Context, req *intakeMessage.Request) (*intakeMessage.Response, error) {
	s.got = append(s.got, req)
	if resp, ok := s.results[req.MessageID]; ok {
		return resp, nil
	}
	return nil, intakeMessage.ErrSaveFailed
}

const appSecret = "app-secret"

var twoMessages = []byte(`{
  "object": "whatsapp_business_account",
  "entry": [{
    "changes": [{
      "value": {
        "contacts": [{"wa_id": "27682770367", "profile": {"name": "Sipho"}}],
        "messages": [
          {"from": "27682770367", "id": "wamid.1", "type": "text", "text": {"body": "Service: Haircut"}},
          {"from": "27682770367", "id": "wamid.2", "type": "text", "text": {"body": "1"}}
        ]
      }
    }]
  }]
}`)

func post(body []byte, secret string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/webhooks/meta/whatsapp", bytes.NewReader(body))
	req.Header.Set(metawa.SignatureHeader, metawa.Sign(secret, body))
	return req
}

func TestHandler_Verify(t *testing.T) {
	h := NewHandler(&stubIntake{}, Config{VerifyToken: "verify-me"}, logger.Nop())

	t.Run("ok", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.Verify(rec, httptest.NewRequest(http.MethodGet,
			"/webhooks/meta/whatsapp?hub.mode=subscribe&hub.verify_token=verify-me&hub.challenge=12345", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "12345", rec.Body.String())
	})

	t.Run("wrong token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.Verify(rec, httptest.NewRequest(http.MethodGet,
			"/webhooks/meta/whatsapp?hub.mode=subscribe&hub.verify_token=nope&hub.challenge=12345", nil))

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestHandler_Handle_AllMessages(t *testing.T) {
	uc := &stubIntake{results: map[string]*intakeMessage.Response{
		"wamid.1": {Outcome: intakeMessage.OutcomeReceived, BookingID: "b1", QueueNumber: "001"},
		"wamid.2": {Outcome: intakeMessage.OutcomeReply, BookingID: "b1"},
	}}
	h := NewHandler(uc, Config{AppSecret: appSecret}, logger.Nop())

	rec := httptest.NewRecorder()
	h.Handle(rec, post(twoMessages, appSecret))

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, uc.got, 2)
	assert.Equal(t, "meta", uc.got[0].Source)
	assert.Equal(t, "Sipho", uc.got[0].ProfileName)

	var body handlers.StatusResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "reply", body.Status)
}

func TestHandler_Handle_InvalidSignature(t *testing.T) {
	uc := &stubIntake{}
	h := NewHandler(uc, Config{AppSecret: appSecret}, logger.Nop())

	rec := httptest.NewRecorder()
	h.Handle(rec, post(twoMessages, "other-secret"))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, uc.got)
}

func TestHandler_Handle_MalformedPayload(t *testing.T) {
	uc := &stubIntake{}
	h := NewHandler(uc, Config{AppSecret: appSecret}, logger.Nop())

	rec := httptest.NewRecorder()
	h.Handle(rec, post([]byte("{broken"), appSecret))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ignored")
	assert.Empty(t, uc.got)
}

func TestHandler_Handle_PartialFailure(t *testing.T) {
	uc := &stubIntake{results: map[string]*intakeMessage.Response{
		"wamid.2": {Outcome: intakeMessage.OutcomeReply},
	}}
	h := NewHandler(uc, Config{AppSecret: appSecret}, logger.Nop())

	rec := httptest.NewRecorder()
	h.Handle(rec, post(twoMessages, appSecret))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Len(t, uc.got, 2)
}
