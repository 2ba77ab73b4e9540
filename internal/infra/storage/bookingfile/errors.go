package bookingfile

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("bookingfile.repository: booking not found")

	// ErrStatusConflict возвращается, если статус изменился с момента чтения
	ErrStatusConflict = errors.New("bookingfile.repository: booking status changed concurrently")

	// ErrDuplicateID возвращается при сохранении записи с уже существующим ID
	ErrDuplicateID = errors.New("bookingfile.repository: duplicate booking id")

	// ErrRead возвращается при ошибке чтения или разбора файла
	ErrRead = errors.New("bookingfile.repository: failed to read store")

	// ErrWrite возвращается при ошибке записи файла
	ErrWrite = errors.New("bookingfile.repository: failed to write store")
)
