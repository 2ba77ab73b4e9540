package intake_message

import (
	"errors"
	"unicode/utf8"

	"github.com/m04kA/SMC-BarberService/internal/service/bookings"
)

// isReplyCommand ответ на подтверждение: ровно "1", "2" или "3"
func isReplyCommand(body string) bool {
	return body == "1" || body == "2" || body == "3"
}

// isRejection переход запрещён текущим статусом
func isRejection(err error) bool {
	return errors.Is(err, bookings.ErrInvalidTransition)
}

// truncate обрезает строку до max рун
func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max])
}
