package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "removes punctuation",
			input:    `데이터 마이닝이란 무엇인가? (핵심 개념!)`,
			expected: "데이터 마이닝이란 무엇인가 핵심 개념",
		},
		{
			name:     "collapses whitespace runs",
			input:    "R기초   통계\t분석\n개요",
			expected: "R기초 통계 분석 개요",
		},
		{
			name:     "trims leading and trailing space",
			input:    "  데이터 마트  ",
			expected: "데이터 마트",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "punctuation only",
			input:    `?!.,;:()[]{}"'`,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestNormalizeDeterministic(t *testing.T) {
	input := "빅데이터의   분석! (기획)"
	assert.Equal(t, Normalize(input), Normalize(input))
}

func TestExtractWords(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "strips particles from token ends",
			input:    "데이터의 분석을 통계와",
			expected: []string{"데이터", "분석", "통계"},
		},
		{
			name:     "strips longest matching particle",
			input:    "학교에서 친구한테서",
			expected: []string{"학교", "친구"},
		},
		{
			name:     "canonicalizes synonym expressions",
			input:    "통계란 무엇인가요",
			expected: []string{"통계란", "무엇"},
		},
		{
			name:     "duplicates collapse",
			input:    "데이터 데이터 데이터",
			expected: []string{"데이터"},
		},
		{
			name:     "empty input yields empty set",
			input:    "",
			expected: nil,
		},
		{
			name:     "token equal to a particle is dropped",
			input:    "의 데이터",
			expected: []string{"데이터"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractWords(tt.input)
			assert.Len(t, got, len(tt.expected))
			for _, word := range tt.expected {
				assert.Contains(t, got, word)
			}
		})
	}
}

func TestCharNGrams(t *testing.T) {
	t.Run("bigrams over runes", func(t *testing.T) {
		got := CharNGrams("데이터", 2)
		assert.Len(t, got, 2)
		assert.Contains(t, got, "데이")
		assert.Contains(t, got, "이터")
	})

	t.Run("text shorter than n", func(t *testing.T) {
		assert.Empty(t, CharNGrams("데", 2))
	})

	t.Run("exact length", func(t *testing.T) {
		got := CharNGrams("데이터", 3)
		assert.Len(t, got, 1)
		assert.Contains(t, got, "데이터")
	})
}

func TestJaccard(t *testing.T) {
	set := func(items ...string) map[string]struct{} {
		s := make(map[string]struct{})
		for _, item := range items {
			s[item] = struct{}{}
		}
		return s
	}

	tests := []struct {
		name     string
		a, b     map[string]struct{}
		expected float64
	}{
		{"identical sets", set("a", "b"), set("a", "b"), 1.0},
		{"disjoint sets", set("a"), set("b"), 0.0},
		{"partial overlap", set("a", "b", "c"), set("b", "c", "d"), 0.5},
		{"empty left", set(), set("a"), 0.0},
		{"empty right", set("a"), set(), 0.0},
		{"both empty", set(), set(), 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Jaccard(tt.a, tt.b), 1e-9)
			assert.InDelta(t, tt.expected, Jaccard(tt.b, tt.a), 1e-9)
		})
	}
}
