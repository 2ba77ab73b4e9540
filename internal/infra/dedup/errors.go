package dedup

import "errors"

var (
	// ErrStore возвращается при ошибке обращения к хранилищу отметок
	ErrStore = errors.New("dedup: store error")

	// ErrEmptyID возвращается, если провайдер не прислал ID сообщения
	ErrEmptyID = errors.New("dedup: empty message id")
)
