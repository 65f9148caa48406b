package similarity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		candidate string
		min, max  float64
	}{
		{"Identical", "abertura", "abertura", 0, 0},
		{"Case Insensitive", "ABERTURA", "abertura", 0, 0},
		{"Token Order", "dados coleta", "coleta_dados", 0, 0},
		{"Dropped Letter", "abrtura", "abertura", 0.14, 0.15},
		{"Missing Suffix", "venda", "vendas", 0.2, 0.2},
		{"Substitution", "diagnostoco", "diagnostico", 0.09, 0.1},
		{"Disjoint", "xyzxyz", "abertura", 1, 1},
		{"Empty Query", "", "abertura", 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(tt.query, tt.candidate)
			assert.GreaterOrEqual(t, got, tt.min)
			assert.LessOrEqual(t, got, tt.max)
		})
	}
}

func TestScore_EmptyQuery(t *testing.T) {
	for _, q := range []string{"", "  ", "-", "_", "- _"} {
		assert.Equal(t, 1.0, Score(q, ""), "query %q", q)
		assert.Equal(t, 1.0, Score(q, "_"), "query %q", q)
		assert.Equal(t, 1.0, Score(q, "abertura"), "query %q", q)
	}
}

func TestCanonical(t *testing.T) {
	assert.Equal(t, "coleta dados", Canonical("  Dados-Coleta "))
	assert.Equal(t, "", Canonical(" _ - "))
	assert.Equal(t, "abertura", Canonical("Abertura"))
}
