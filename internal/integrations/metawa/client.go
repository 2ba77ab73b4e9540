// Package metawa sends WhatsApp messages through the Meta WhatsApp Cloud API and
// parses its webhooks.
package metawa

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	ProviderName        = "meta"
	DefaultGraphAPIBase = "https://graph.facebook.com/v18.0"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Config настройки клиента WhatsApp Cloud API
type Config struct {
	GraphAPIBase  string
	AccessToken   string
	PhoneNumberID string
	Timeout       time.Duration
}

// Client клиент WhatsApp Cloud API
type Client struct {
	cfg        Config
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента
func NewClient(cfg Config, log Logger) *Client {
	if cfg.GraphAPIBase == "" {
		cfg.GraphAPIBase = DefaultGraphAPIBase
	}
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		log: log,
	}
}

// Name returns the provider name used in metrics and routing
func (c *Client) Name() string {
	return ProviderName
}

// Send отправляет текстовое сообщение на номер to (только цифры, с кодом страны)
func (c *Client) Send(ctx context.Context, to, body string) error {
	if c.cfg.AccessToken == "" || c.cfg.PhoneNumberID == "" {
		return ErrNotConfigured
	}

	payload, err := json.Marshal(SendRequest{
		MessagingProduct: "whatsapp",
		RecipientType:    "individual",
		To:               strings.TrimPrefix(to, "+"),
		Type:             "text",
		Text:             TextBody{Body: body},
	})
	if err != nil {
		return fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
	}

	endpoint := fmt.Sprintf("%s/%s/messages", strings.TrimRight(c.cfg.GraphAPIBase, "/"), url.PathEscape(c.cfg.PhoneNumberID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.AccessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		var apiErr ErrorResponse
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return fmt.Errorf("%w: status=%d code=%d: %s", ErrRejected, resp.StatusCode, apiErr.Error.Code, apiErr.Error.Message)
	default:
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(raw))
	}

	var sent SendResponse
	if err := json.NewDecoder(resp.Body).Decode(&sent); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	id := ""
	if len(sent.Messages) > 0 {
		id = sent.Messages[0].ID
	}
	c.log.Info("MetaWA: message id=%s sent to %s", id, to)
	return nil
}
