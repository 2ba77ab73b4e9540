package matcher

import (
	"strings"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/pkg/similarity"
)

// Method способ, которым был найден кандидат
type Method string

const (
	MethodExact    Method = "exact"
	MethodContains Method = "contains"
	MethodFuzzy    Method = "fuzzy"
	MethodNone     Method = "none"
)

// ServiceMatcher сопоставляет свободный текст с услугой из каталога.
// Каталог передаётся при создании и не меняется; порядок каталога определяет победителя при равенстве.
type ServiceMatcher struct {
	catalog   domain.Catalog
	threshold float64
}

// NewServiceMatcher создает матчер услуг с порогом domain.FuzzyMatchThreshold
func NewServiceMatcher(catalog domain.Catalog) *ServiceMatcher {
	return &ServiceMatcher{
		catalog:   catalog,
		threshold: domain.FuzzyMatchThreshold,
	}
}

// FindServiceByText returns the canonical service for text or nil
func (m *ServiceMatcher) FindServiceByText(text string) *domain.ServiceDefinition {
	svc, _ := m.Resolve(text)
	return svc
}

// Resolve работает как FindServiceByText, но также возвращает способ сопоставления (для метрик)
func (m *ServiceMatcher) Resolve(text string) (*domain.ServiceDefinition, Method) {
	needle := strings.TrimSpace(text)
	if needle == "" {
		return nil, MethodNone
	}

	// 1. Точное совпадение по имени или id
	for i := range m.catalog {
		if strings.EqualFold(m.catalog[i].Name, needle) || strings.EqualFold(m.catalog[i].ID, needle) {
			return &m.catalog[i], MethodExact
		}
	}

	// 2. Вхождение в любую сторону
	lower := strings.ToLower(needle)
	for i := range m.catalog {
		name := strings.ToLower(m.catalog[i].Name)
		if name == "" {
			continue
		}
		if strings.Contains(name, lower) || strings.Contains(lower, name) {
			return &m.catalog[i], MethodContains
		}
	}

	// 3. Нечёткое совпадение
	if svc, _ := m.FindBestServiceMatch(needle, m.threshold); svc != nil {
		return svc, MethodFuzzy
	}

	return nil, MethodNone
}

// FindBestServiceMatch scores every entry against text and returns the best one
// when its score is at least threshold. Equal scores keep the earlier entry.
func (m *ServiceMatcher) FindBestServiceMatch(text string, threshold float64) (*domain.ServiceDefinition, float64) {
	best := -1
	bestScore := 0.0
	for i := range m.catalog {
		score := similarity.Similarity(text, m.catalog[i].Name)
		if best == -1 || score > bestScore {
			best = i
			bestScore = score
		}
	}

	if best == -1 || bestScore < threshold {
		return nil, bestScore
	}
	return &m.catalog[best], bestScore
}

// Catalog returns the catalog in its original order
func (m *ServiceMatcher) Catalog() domain.Catalog {
	return m.catalog
}
