package metawa

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("metawa client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе Graph API
	ErrInvalidResponse = errors.New("metawa client: invalid response")

	// ErrRejected возвращается, когда Graph API отклонил сообщение (4xx)
	ErrRejected = errors.New("metawa client: message rejected")

	// ErrNotConfigured возвращается, если не заданы токен или phone number id
	ErrNotConfigured = errors.New("metawa client: not configured")

	// ErrInvalidPayload возвращается, если тело вебхука не является JSON события
	ErrInvalidPayload = errors.New("metawa webhook: invalid payload")
)
