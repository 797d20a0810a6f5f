package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercases", "UBER", "uber"},
		{"trims whitespace", "  ifood \t", "ifood"},
		{"strips diacritics", "Açaí", "acai"},
		{"portuguese phrase", "Salário de Março", "salario de marco"},
		{"cedilla and tilde", "atenção", "atencao"},
		{"keeps interior spacing", "uber  eats", "uber  eats"},
		{"empty", "", ""},
		{"blank", "   ", ""},
		{"digits unchanged", "99pop", "99pop"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestWords(t *testing.T) {
	assert.Equal(t, []string{"compra", "no", "ifood"}, Words("compra no ifood"))
	assert.Empty(t, Words(""))
	assert.Equal(t, []string{"uber", "eats"}, Words("uber  eats"))
}
