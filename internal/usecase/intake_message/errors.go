package intake_message

import "errors"

var (
	// ErrSaveFailed возвращается, если бронирование не удалось сохранить
	ErrSaveFailed = errors.New("intake_message: failed to save booking")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("intake_message: internal error")
)
