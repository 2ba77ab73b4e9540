package twilio

// MessageResponse ответ Twilio Messages API
type MessageResponse struct {
	SID          string  `json:"sid"`
	Status       string  `json:"status"`
	ErrorCode    *int    `json:"error_code"`
	ErrorMessage *string `json:"error_message"`
}

// ErrorResponse модель ошибки от Twilio
type ErrorResponse struct {
	Code     int    `json:"code"`
	Message  string `json:"message"`
	MoreInfo string `json:"more_info"`
	Status   int    `json:"status"`
}

// InboundMessage входящее WhatsApp сообщение из вебхука Twilio
type InboundMessage struct {
	MessageSID  string
	AccountSID  string
	From        string
	To          string
	Body        string
	ProfileName string
}
