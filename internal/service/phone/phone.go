// Package phone canonicalises sender numbers to the form bookings are stored under.
package phone

import (
	"strings"

	"github.com/m04kA/SMC-BarberService/internal/domain"
)

// NormalizeForStorage keeps digits only, turns a 10-digit local number with a
// leading 0 into 27XXXXXXXXX and collapses a repeated 27 prefix. Idempotent.
func NormalizeForStorage(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()

	if len(digits) == domain.LocalNumberLength && digits[0] == '0' {
		digits = domain.CountryCode + digits[1:]
	}

	doubled := domain.CountryCode + domain.CountryCode
	for len(digits) > domain.MaxNumberLength && strings.HasPrefix(digits, doubled) {
		digits = digits[len(domain.CountryCode):]
	}

	return digits
}

// StripChannelPrefix убирает префикс канала ("whatsapp:+27...") перед нормализацией
func StripChannelPrefix(addr string) string {
	if i := strings.IndexByte(addr, ':'); i >= 0 {
		return addr[i+1:]
	}
	return addr
}
