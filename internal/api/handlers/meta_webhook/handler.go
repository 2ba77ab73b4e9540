package meta_webhook

import (
	"errors"
	"io"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/m04kA/SMC-BarberService/internal/api/handlers"
	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/internal/integrations/metawa"
	intakeMessage "github.com/m04kA/SMC-BarberService/internal/usecase/intake_message"
)

const (
	msgInvalidSignature = "некорректная подпись запроса"
	msgVerifyFailed     = "проверка вебхука не пройдена"
)

// ограничение размера тела вебхука
const maxBodyBytes = 1 << 20

var tracer = otel.Tracer("barber.api.webhooks.meta")

// Config секреты вебхука. Пустой AppSecret отключает проверку подписи.
type Config struct {
	AppSecret   string
	VerifyToken string
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

// Verify GET /webhooks/meta/whatsapp
func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if !metawa.VerifyChallenge(q.Get("hub.mode"), q.Get("hub.verify_token"), h.cfg.VerifyToken) {
		h.logger.Warn("GET /webhooks/meta/whatsapp - Verification failed: mode=%s", q.Get("hub.mode"))
		handlers.RespondForbidden(w, msgVerifyFailed)
		return
	}

	h.logger.Info("GET /webhooks/meta/whatsapp - Webhook verified")
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, q.Get("hub.challenge"))
}

// Handle POST /webhooks/meta/whatsapp
// Одно событие может содержать несколько сообщений; каждое обрабатывается отдельно.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "webhooks.meta.whatsapp", trace.WithSpanKind(trace.SpanKindServer))
	defer span.End()

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		h.logger.Warn("POST /webhooks/meta/whatsapp - Failed to read body: %v", err)
		span.RecordError(err)
		handlers.RespondStatus(w, http.StatusOK, handlers.StatusResponse{Status: string(intakeMessage.OutcomeIgnored)})
		return
	}

	if h.cfg.AppSecret != "" && !metawa.VerifySignature(h.cfg.AppSecret, body, r.Header.Get(metawa.SignatureHeader)) {
		h.logger.Warn("POST /webhooks/meta/whatsapp - Invalid signature")
		span.RecordError(errors.New("invalid meta signature"))
		handlers.RespondUnauthorized(w, msgInvalidSignature)
		return
	}

	messages, err := metawa.ParseWebhook(body)
	if err != nil || len(messages) == 0 {
		if err != nil {
			h.logger.Warn("POST /webhooks/meta/whatsapp - Malformed payload: %v", err)
			span.RecordError(err)
		}
		handlers.RespondStatus(w, http.StatusOK, handlers.StatusResponse{Status: string(intakeMessage.OutcomeIgnored)})
		return
	}
	span.SetAttributes(attribute.Int("barber.meta.messages", len(messages)))

	var last *intakeMessage.Response
	failed := 0
	for _, msg := range messages {
		result, err := h.useCase.Execute(ctx, &intakeMessage.Request{
			Source:      domain.SourceMeta,
			MessageID:   msg.MessageID,
			From:        msg.From,
			Body:        msg.Body,
			ProfileName: msg.ProfileName,
		})
		if err != nil {
			failed++
			h.logger.Error("POST /webhooks/meta/whatsapp - Failed to process message id=%s: %v", msg.MessageID, err)
			span.RecordError(err)
			continue
		}
		last = result
	}

	// Meta повторит доставку всего события, уже обработанные сообщения отсекутся как дубли
	if failed > 0 {
		span.SetStatus(codes.Error, "intake failed")
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /webhooks/meta/whatsapp - %d message(s) processed", len(messages))
	handlers.RespondStatus(w, http.StatusOK, handlers.StatusResponse{
		Status:      string(last.Outcome),
		BookingID:   last.BookingID,
		Ref:         last.Ref,
		QueueNumber: last.QueueNumber,
	})
}
