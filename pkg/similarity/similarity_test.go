package similarity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{name: "identical", a: "haircut", b: "haircut", want: 1},
		{name: "case folded", a: "PLAIN FADE", b: "plain fade", want: 1},
		{name: "empty left", a: "", b: "fade", want: 0},
		{name: "empty right", a: "fade", b: "", want: 0},
		{name: "both empty", a: "", b: "", want: 0},
		{name: "one substitution", a: "fade", b: "fude", want: 0.75},
		{name: "one insertion", a: "haircut", b: "haircuts", want: 1 - 1.0/8},
		{name: "completely different", a: "abc", b: "xyz", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Similarity(tt.a, tt.b), 1e-9)
		})
	}
}

func TestSimilarity_Properties(t *testing.T) {
	inputs := []string{"x", "Beard Trim", "Kids Cut", "PLAIN FADE", "chiskop", "über", "a b c"}

	for _, x := range inputs {
		assert.Equal(t, 1.0, Similarity(x, x), "similarity(x, x) for %q", x)
		assert.Equal(t, 0.0, Similarity("", x), "similarity(\"\", x) for %q", x)
		for _, y := range inputs {
			s := Similarity(x, y)
			assert.InDelta(t, s, Similarity(y, x), 1e-9, "symmetry for %q/%q", x, y)
			assert.GreaterOrEqual(t, s, 0.0)
			assert.LessOrEqual(t, s, 1.0)
		}
	}
}
