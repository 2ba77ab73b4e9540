package twilio

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestClient_Send(t *testing.T) {
	var gotForm url.Values
	var gotUser, gotPass string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/2010-04-01/Accounts/AC123/Messages.json", r.URL.Path)
		assert.NoError(t, r.ParseForm())
		gotForm = r.PostForm
		gotUser, gotPass, _ = r.BasicAuth()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"sid":"SM1","status":"queued"}`))
	}))
	defer srv.Close()

	c := NewClient(Config{
		BaseURL:    srv.URL,
		AccountSID: "AC123",
		AuthToken:  "secret",
		From:       "+27110000000",
		Timeout:    time.Second,
	}, nopLogger{})

	err := c.Send(context.Background(), "27682770367", "Hi there!")

	require.NoError(t, err)
	assert.Equal(t, "whatsapp:+27682770367", gotForm.Get("To"))
	assert.Equal(t, "whatsapp:+27110000000", gotForm.Get("From"))
	assert.Equal(t, "Hi there!", gotForm.Get("Body"))
	assert.Equal(t, "AC123", gotUser)
	assert.Equal(t, "secret", gotPass)
	assert.Equal(t, ProviderName, c.Name())
}

func TestClient_Send_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "rejected", status: http.StatusBadRequest, body: `{"code":21211,"message":"invalid To"}`, wantErr: ErrRejected},
		{name: "server error", status: http.StatusInternalServerError, body: `oops`, wantErr: ErrInvalidResponse},
		{name: "bad json", status: http.StatusCreated, body: `{`, wantErr: ErrInvalidResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := NewClient(Config{BaseURL: srv.URL, AccountSID: "AC1", AuthToken: "t", From: "+1"}, nopLogger{})
			assert.ErrorIs(t, c.Send(context.Background(), "27682770367", "x"), tt.wantErr)
		})
	}
}

func TestClient_Send_NotConfigured(t *testing.T) {
	c := NewClient(Config{}, nopLogger{})
	assert.ErrorIs(t, c.Send(context.Background(), "27682770367", "x"), ErrNotConfigured)
}

func TestValidateSignature(t *testing.T) {
	const token = "12345"
	const webhookURL = "https://barber.example.com/webhooks/twilio/whatsapp"
	form := url.Values{
		"From":       {"whatsapp:+27682770367"},
		"Body":       {"Haircut please"},
		"MessageSid": {"SM1"},
	}

	req := httptest.NewRequest(http.MethodPost, "/webhooks/twilio/whatsapp", nil)
	req.PostForm = form
	req.Header.Set(SignatureHeader, ComputeSignature(token, webhookURL, form))
	assert.True(t, ValidateSignature(req, token, webhookURL))

	req.Header.Set(SignatureHeader, "bogus")
	assert.False(t, ValidateSignature(req, token, webhookURL))

	req.Header.Del(SignatureHeader)
	assert.False(t, ValidateSignature(req, token, webhookURL))
}

func TestParseInbound(t *testing.T) {
	msg := ParseInbound(url.Values{
		"MessageSid":  {"SM1"},
		"From":        {"whatsapp:+27682770367"},
		"Body":        {"Service: Haircut"},
		"ProfileName": {"Sipho"},
	})

	assert.Equal(t, "SM1", msg.MessageSID)
	assert.Equal(t, "whatsapp:+27682770367", msg.From)
	assert.Equal(t, "Service: Haircut", msg.Body)
	assert.Equal(t, "Sipho", msg.ProfileName)
}
