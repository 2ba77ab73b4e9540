package matcher

import (
	"strings"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/pkg/similarity"
)

// BarberMatcher resolves free-text barber mentions against the roster using the
// same exact, containment, fuzzy order as services.
type BarberMatcher struct {
	roster    domain.Roster
	threshold float64
}

func NewBarberMatcher(roster domain.Roster) *BarberMatcher {
	return &BarberMatcher{
		roster:    roster,
		threshold: domain.FuzzyMatchThreshold,
	}
}

// FindBarberByText возвращает барбера из списка или nil
func (m *BarberMatcher) FindBarberByText(text string) *domain.Barber {
	needle := strings.TrimSpace(text)
	if needle == "" {
		return nil
	}

	for i := range m.roster {
		if strings.EqualFold(m.roster[i].Name, needle) || strings.EqualFold(string(m.roster[i].ID), needle) {
			return &m.roster[i]
		}
	}

	lower := strings.ToLower(needle)
	for i := range m.roster {
		name := strings.ToLower(m.roster[i].Name)
		if name == "" {
			continue
		}
		if strings.Contains(name, lower) || strings.Contains(lower, name) {
			return &m.roster[i]
		}
	}

	best := -1
	bestScore := 0.0
	for i := range m.roster {
		score := similarity.Similarity(needle, m.roster[i].Name)
		if best == -1 || score > bestScore {
			best = i
			bestScore = score
		}
	}
	if best == -1 || bestScore < m.threshold {
		return nil
	}
	return &m.roster[best]
}

// Roster returns the roster in its original order
func (m *BarberMatcher) Roster() domain.Roster {
	return m.roster
}
