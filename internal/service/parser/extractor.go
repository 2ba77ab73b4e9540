package parser

import (
	"regexp"
	"strings"

	"github.com/m04kA/SMC-BarberService/internal/domain"
)

// Fields поля бронирования, извлечённые из текста сообщения.
// Ненайденное поле остаётся nil, пустая строка никогда не возвращается.
type Fields struct {
	Service  *string
	Name     *string
	DateTime *string
	Barber   *string
	Raw      string
}

var (
	serviceLabelRe  = regexp.MustCompile(`(?i)\bservice[ \t]*:[ \t]*([^;\n]+)`)
	nameLabelRe     = regexp.MustCompile(`(?i)\bname[ \t]*:[ \t]*([^;\n]+)`)
	dateTimeLabelRe = regexp.MustCompile(`(?i)\b(?:date|when|time)[ \t]*:[ \t]*([^;\n]+)`)
	barberLabelRe   = regexp.MustCompile(`(?i)\bbarber[ \t]*:[ \t]*([^;\n]+)`)

	// "I'm Sipho", "my name is Sipho", "this is Sipho"
	introNameRe = regexp.MustCompile(`(?i)\b(?:i['’]m|i\s+am|my\s+name\s+is|this\s+is)\s+(\p{L}[\p{L}'’\-]*)`)
)

// words that follow "I'm"/"this is" without being a name
var notNames = map[string]struct{}{
	"a": {}, "an": {}, "the": {}, "here": {}, "looking": {}, "booking": {}, "interested": {},
	"available": {}, "free": {}, "coming": {}, "going": {}, "not": {}, "just": {}, "trying": {},
	"hoping": {}, "wanting": {}, "after": {}, "in": {}, "on": {}, "at": {}, "for": {}, "about": {},
}

// Extractor извлекает поля бронирования из свободного текста.
// Каталог используется для поиска услуги, если метка Service: отсутствует.
type Extractor struct {
	catalog domain.Catalog
}

// NewExtractor создает экстрактор с каталогом услуг
func NewExtractor(catalog domain.Catalog) *Extractor {
	return &Extractor{catalog: catalog}
}

// ParseBookingFields extracts Label: value fields from raw. It never fails:
// on total parse miss every field is nil and Raw still carries the input.
func (e *Extractor) ParseBookingFields(raw string) Fields {
	fields := Fields{Raw: raw}

	text := normalizeLineBreaks(raw)
	if strings.TrimSpace(text) == "" {
		return fields
	}

	fields.Service = labelValue(serviceLabelRe, text)
	fields.Name = labelValue(nameLabelRe, text)
	fields.DateTime = labelValue(dateTimeLabelRe, text)
	fields.Barber = labelValue(barberLabelRe, text)

	if fields.Service == nil {
		fields.Service = e.scanCatalog(text)
	}
	if fields.Name == nil {
		fields.Name = introducedName(text)
	}

	return fields
}

// scanCatalog ищет название услуги как подстроку текста, в порядке каталога
func (e *Extractor) scanCatalog(text string) *string {
	lower := strings.ToLower(text)
	for _, svc := range e.catalog {
		name := strings.TrimSpace(svc.Name)
		if name == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(name)) {
			return &svc.Name
		}
	}
	return nil
}

func labelValue(re *regexp.Regexp, text string) *string {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	return nonEmpty(m[1])
}

func introducedName(text string) *string {
	for _, m := range introNameRe.FindAllStringSubmatch(text, -1) {
		if _, skip := notNames[strings.ToLower(m[1])]; skip {
			continue
		}
		return nonEmpty(m[1])
	}
	return nil
}

func nonEmpty(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func normalizeLineBreaks(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
