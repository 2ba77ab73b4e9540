package twilio

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("twilio client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от Twilio
	ErrInvalidResponse = errors.New("twilio client: invalid response")

	// ErrRejected возвращается, когда Twilio отклонил сообщение (4xx)
	ErrRejected = errors.New("twilio client: message rejected")

	// ErrNotConfigured возвращается, если не заданы SID, токен или номер отправителя
	ErrNotConfigured = errors.New("twilio client: not configured")
)
