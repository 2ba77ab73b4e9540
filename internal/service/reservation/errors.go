package reservation

import "errors"

var (
	// ErrLock возвращается, если не удалось получить блокировку очереди
	ErrLock = errors.New("reservation: failed to acquire queue lock")

	// ErrSave возвращается при ошибке сохранения бронирования
	ErrSave = errors.New("reservation: failed to save booking")
)
