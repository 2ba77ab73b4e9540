package twilio_webhook

import (
	"errors"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/m04kA/SMC-BarberService/internal/api/handlers"
	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/internal/integrations/twilio"
	intakeMessage "github.com/m04kA/SMC-BarberService/internal/usecase/intake_message"
)

const msgInvalidSignature = "некорректная подпись запроса"

var tracer = otel.Tracer("barber.api.webhooks.twilio")

// Config проверка подписи. Пустой AuthToken отключает проверку.
type Config struct {
	AuthToken string
	// PublicURL адрес вебхука, как его видит Twilio (за прокси r.URL не совпадает)
	PublicURL string
}

type Handler struct {
	useCase IntakeUseCase
	cfg     Config
	logger  Logger
}

func NewHandler(useCase IntakeUseCase, cfg Config, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		cfg:     cfg,
		logger:  logger,
	}
}

// Handle POST /webhooks/twilio/whatsapp
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "webhooks.twilio.whatsapp", trace.WithSpanKind(trace.SpanKindServer))
	defer span.End()

	// Некорректная форма - не ошибка для провайдера, иначе он будет повторять запрос
	if err := r.ParseForm(); err != nil {
		h.logger.Warn("POST /webhooks/twilio/whatsapp - Malformed form: %v", err)
		span.RecordError(err)
		handlers.RespondStatus(w, http.StatusOK, handlers.StatusResponse{Status: string(intakeMessage.OutcomeIgnored)})
		return
	}

	if h.cfg.AuthToken != "" {
		if !twilio.ValidateSignature(r, h.cfg.AuthToken, h.webhookURL(r)) {
			h.logger.Warn("POST /webhooks/twilio/whatsapp - Invalid signature")
			span.RecordError(errors.New("invalid twilio signature"))
			handlers.RespondUnauthorized(w, msgInvalidSignature)
			return
		}
	}

	msg := twilio.ParseInbound(r.PostForm)
	span.SetAttributes(
		attribute.String("barber.twilio.message_sid", msg.MessageSID),
		attribute.String("barber.twilio.from", msg.From),
	)

	result, err := h.useCase.Execute(ctx, &intakeMessage.Request{
		Source:      domain.SourceTwilio,
		MessageID:   msg.MessageSID,
		From:        msg.From,
		Body:        msg.Body,
		ProfileName: msg.ProfileName,
	})
	if err != nil {
		h.logger.Error("POST /webhooks/twilio/whatsapp - Failed to process message sid=%s: %v", msg.MessageSID, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "intake failed")
		handlers.RespondInternalError(w)
		return
	}

	span.SetAttributes(attribute.String("barber.intake.outcome", string(result.Outcome)))
	h.logger.Info("POST /webhooks/twilio/whatsapp - Message sid=%s processed: outcome=%s", msg.MessageSID, result.Outcome)
	handlers.RespondStatus(w, http.StatusOK, handlers.StatusResponse{
		Status:      string(result.Outcome),
		BookingID:   result.BookingID,
		Ref:         result.Ref,
		QueueNumber: result.QueueNumber,
	})
}

func (h *Handler) webhookURL(r *http.Request) string {
	if h.cfg.PublicURL != "" {
		return h.cfg.PublicURL
	}
	scheme := "http"
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + r.Host + r.URL.RequestURI()
}
