package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimilaritySymmetry(t *testing.T) {
	pairs := [][2]string{
		{"데이터 마이닝이란 무엇인가?", "데이터 마이닝 기법의 개요"},
		{"R기초 통계 분석", "통계 분석과 R 프로그래밍"},
		{"abc", "xyz"},
		{"빅데이터의 이해", "빅데이터의 이해"},
	}

	for _, pair := range pairs {
		assert.Equal(t, Similarity(pair[0], pair[1]), Similarity(pair[1], pair[0]),
			"similarity must be symmetric for %q / %q", pair[0], pair[1])
	}
}

func TestSimilarityEmptyInput(t *testing.T) {
	assert.Zero(t, Similarity("", "데이터"))
	assert.Zero(t, Similarity("데이터", ""))
	assert.Zero(t, Similarity("", ""))
}

func TestSimilarityIdenticalText(t *testing.T) {
	text := "데이터 마이닝이란 무엇인가?"
	assert.InDelta(t, 1.0, Similarity(text, text), 1e-9)
}

func TestSimilarityRange(t *testing.T) {
	tests := [][2]string{
		{"데이터 분석 기획", "데이터 분석"},
		{"통계", "완전히 다른 주제"},
		{"R기초", "R기초란 무엇인가"},
	}

	for _, pair := range tests {
		got := Similarity(pair[0], pair[1])
		assert.GreaterOrEqual(t, got, 0.0)
		assert.LessOrEqual(t, got, 1.0)
	}
}

func TestSimilarityRounding(t *testing.T) {
	got := Similarity("데이터 분석 기획의 이해", "데이터 분석 마스터 플랜")
	assert.InDelta(t, got, float64(int(got*10000))/10000, 1e-9,
		"score must carry at most 4 decimal places")
}

func TestKeywordScore(t *testing.T) {
	t.Run("zero keywords yields zero for any content", func(t *testing.T) {
		assert.Zero(t, KeywordScore("아무 내용이나 들어갑니다", ""))
		assert.Zero(t, KeywordScore("", ""))
	})

	t.Run("all keywords present", func(t *testing.T) {
		assert.InDelta(t, 1.0, KeywordScore("데이터 마이닝과 통계 분석", "데이터 통계"), 1e-9)
	})

	t.Run("partial keyword hits", func(t *testing.T) {
		got := KeywordScore("데이터 마이닝 개요", "데이터 통계")
		assert.InDelta(t, 0.5, got, 1e-9)
	})

	t.Run("no keyword hits", func(t *testing.T) {
		assert.Zero(t, KeywordScore("완전히 무관한 내용", "데이터 통계"))
	})

	t.Run("substring containment counts", func(t *testing.T) {
		// keyword matches inside a longer token
		got := KeywordScore("빅데이터마이닝", "데이터")
		assert.InDelta(t, 1.0, got, 1e-9)
	})
}

func TestBaseScore(t *testing.T) {
	content := "데이터 마이닝이란 무엇인가"
	category := "데이터 마이닝 기법 통계"

	t.Run("similarity_only equals similarity regardless of weights", func(t *testing.T) {
		got := BaseScore(content, category, StrategySimilarityOnly, 0.9, 0.1)
		assert.Equal(t, Similarity(content, category), got)
	})

	t.Run("keyword_only equals keyword score", func(t *testing.T) {
		got := BaseScore(content, category, StrategyKeywordOnly, 0.9, 0.1)
		assert.Equal(t, KeywordScore(content, category), got)
	})

	t.Run("hybrid is the weighted average", func(t *testing.T) {
		sim := Similarity(content, category)
		kw := KeywordScore(content, category)
		got := BaseScore(content, category, StrategyHybrid, 0.5, 0.5)
		assert.InDelta(t, (sim*0.5+kw*0.5)/1.0, got, 1e-9)
	})

	t.Run("hybrid with non-positive weights degrades to similarity", func(t *testing.T) {
		got := BaseScore(content, category, StrategyHybrid, 0, 0)
		assert.Equal(t, Similarity(content, category), got)

		got = BaseScore(content, category, StrategyHybrid, -1, 0.5)
		assert.Equal(t, Similarity(content, category), got)
	})
}

func TestClamp(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"below range", -0.5, 0.0},
		{"above range", 1.7, 1.0},
		{"lower bound", 0.0, 0.0},
		{"upper bound", 1.0, 1.0},
		{"identity in range", 0.42, 0.42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Clamp(tt.input))
		})
	}
}

func TestParseStrategy(t *testing.T) {
	tests := []struct {
		input    string
		expected Strategy
		valid    bool
	}{
		{"hybrid", StrategyHybrid, true},
		{"similarity_only", StrategySimilarityOnly, true},
		{"keyword_only", StrategyKeywordOnly, true},
		{"magic", StrategyHybrid, false},
		{"", StrategyHybrid, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseStrategy(tt.input)
			assert.Equal(t, tt.expected, got)
			assert.Equal(t, tt.valid, ok)
		})
	}
}
