package intake_message

// Outcome результат обработки входящего сообщения
type Outcome string

const (
	OutcomeReceived  Outcome = "received"
	OutcomeDuplicate Outcome = "duplicate"
	OutcomeIgnored   Outcome = "ignored"
	OutcomeReply     Outcome = "reply"
	OutcomeFailed    Outcome = "failed"
)

// Request входящее сообщение WhatsApp, уже разобранное из формата провайдера
type Request struct {
	Source      string // twilio | meta
	MessageID   string // ID сообщения у провайдера, для идемпотентности
	From        string // адрес отправителя ("whatsapp:+27..." или "27...")
	Body        string
	ProfileName string // имя профиля WhatsApp, если провайдер его передал
}

// Response результат обработки
type Response struct {
	Outcome     Outcome
	BookingID   string
	Ref         string
	QueueNumber string
	Reply       string // текст, отправленный клиенту
	Sent        bool   // удалось ли отправить ответ
}
