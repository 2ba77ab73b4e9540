package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberService/internal/domain"
)

func testCatalog() domain.Catalog {
	return domain.Catalog{
		{ID: "haircut", Name: "Haircut", DurationMinutes: 30, Price: 120, Category: "cuts"},
		{ID: "plain-fade", Name: "PLAIN FADE", DurationMinutes: 40, Price: 150, Category: "cuts"},
		{ID: "beard-trim", Name: "Beard Trim", DurationMinutes: 20, Price: 80, Category: "beard"},
		{ID: "kids", Name: "Kids Cut", DurationMinutes: 25, Price: 90, Category: "cuts"},
	}
}

func TestServiceMatcher_Resolve(t *testing.T) {
	m := NewServiceMatcher(testCatalog())

	tests := []struct {
		name       string
		text       string
		wantID     string
		wantMethod Method
	}{
		{name: "exact name", text: "Beard Trim", wantID: "beard-trim", wantMethod: MethodExact},
		{name: "exact name other case", text: "plain fade", wantID: "plain-fade", wantMethod: MethodExact},
		{name: "exact id", text: "KIDS", wantID: "kids", wantMethod: MethodExact},
		{name: "text inside name", text: "fade", wantID: "plain-fade", wantMethod: MethodContains},
		{name: "name inside text", text: "a beard trim please", wantID: "beard-trim", wantMethod: MethodContains},
		{name: "typo", text: "Hairkut", wantID: "haircut", wantMethod: MethodFuzzy},
		{name: "nothing close", text: "manicure", wantMethod: MethodNone},
		{name: "empty", text: "", wantMethod: MethodNone},
		{name: "whitespace only", text: "   ", wantMethod: MethodNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, method := m.Resolve(tt.text)
			assert.Equal(t, tt.wantMethod, method)
			if tt.wantID == "" {
				assert.Nil(t, svc)
				return
			}
			require.NotNil(t, svc)
			assert.Equal(t, tt.wantID, svc.ID)
		})
	}
}

func TestServiceMatcher_CaseInsensitive(t *testing.T) {
	m := NewServiceMatcher(testCatalog())

	for _, pair := range [][2]string{
		{"plain fade", "PLAIN FADE"},
		{"haircut", "HAIRCUT"},
		{"beard trm", "BEARD TRM"},
	} {
		assert.Equal(t, m.FindServiceByText(pair[0]), m.FindServiceByText(pair[1]), "%q vs %q", pair[0], pair[1])
	}
}

func TestServiceMatcher_FindBestServiceMatch(t *testing.T) {
	t.Run("tie keeps catalog order", func(t *testing.T) {
		m := NewServiceMatcher(domain.Catalog{
			{ID: "first", Name: "abcd"},
			{ID: "second", Name: "abce"},
		})
		svc, score := m.FindBestServiceMatch("abcx", domain.FuzzyMatchThreshold)
		require.NotNil(t, svc)
		assert.Equal(t, "first", svc.ID)
		assert.InDelta(t, 0.75, score, 1e-9)
	})

	t.Run("below threshold", func(t *testing.T) {
		m := NewServiceMatcher(testCatalog())
		svc, _ := m.FindBestServiceMatch("zzzz", domain.FuzzyMatchThreshold)
		assert.Nil(t, svc)
	})

	t.Run("empty catalog", func(t *testing.T) {
		m := NewServiceMatcher(nil)
		svc, score := m.FindBestServiceMatch("haircut", domain.FuzzyMatchThreshold)
		assert.Nil(t, svc)
		assert.Zero(t, score)
	})
}

func TestBarberMatcher_FindBarberByText(t *testing.T) {
	m := NewBarberMatcher(domain.Roster{
		{ID: "john", Name: "John"},
		{ID: "sipho", Name: "Sipho"},
		{ID: "lerato", Name: "Lerato"},
	})

	tests := []struct {
		text   string
		wantID domain.BarberID
	}{
		{text: "John", wantID: "john"},
		{text: " sipho ", wantID: "sipho"},
		{text: "jon", wantID: "john"},
		{text: "Lerato M", wantID: "lerato"},
		{text: "Xavier", wantID: ""},
		{text: "", wantID: ""},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			b := m.FindBarberByText(tt.text)
			if tt.wantID == "" {
				assert.Nil(t, b)
				return
			}
			require.NotNil(t, b)
			assert.Equal(t, tt.wantID, b.ID)
		})
	}
}
