// Package classifier scores classification requests against the taxonomy
// and ranks candidate categories.
package classifier

import (
	"math"
	"strings"

	ahocorasick "github.com/cloudflare/ahocorasick"

	"github.com/EHWIYA/adsp-quiz-back/internal/textnorm"
)

// Similarity weights. Word overlap dominates; character n-grams catch
// particle and spacing variations the word split misses.
const (
	wordWeight    = 0.6
	bigramWeight  = 0.3
	trigramWeight = 0.1
)

// Similarity computes the weighted Jaccard similarity of two texts,
// rounded to 4 decimal places. Symmetric; 0.0 when either text is empty.
func Similarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0.0
	}

	wordSim := textnorm.Jaccard(textnorm.ExtractWords(a), textnorm.ExtractWords(b))

	normA := textnorm.Normalize(a)
	normB := textnorm.Normalize(b)
	bigramSim := textnorm.Jaccard(textnorm.CharNGrams(normA, 2), textnorm.CharNGrams(normB, 2))
	trigramSim := textnorm.Jaccard(textnorm.CharNGrams(normA, 3), textnorm.CharNGrams(normB, 3))

	score := wordSim*wordWeight + bigramSim*bigramWeight + trigramSim*trigramWeight
	return math.Round(score*10000) / 10000
}

// KeywordScore is the fraction of the category's keywords found as
// substrings of the normalized content. 0.0 when the category text
// yields no keywords.
func KeywordScore(content, categoryText string) float64 {
	keywordSet := textnorm.ExtractWords(categoryText)
	keywords := make([]string, 0, len(keywordSet))
	for kw := range keywordSet {
		kw = strings.ToLower(kw)
		if kw != "" {
			keywords = append(keywords, kw)
		}
	}
	if len(keywords) == 0 {
		return 0.0
	}

	normalizedContent := strings.ToLower(textnorm.Normalize(content))
	matcher := ahocorasick.NewStringMatcher(keywords)
	hits := matcher.Match([]byte(normalizedContent))

	return float64(len(hits)) / float64(len(keywords))
}

// BaseScore combines similarity and keyword scores per the strategy.
// A hybrid with both weights at or below zero degrades to plain
// similarity.
func BaseScore(content, categoryText string, strategy Strategy, keywordWeight, similarityWeight float64) float64 {
	similarityScore := Similarity(content, categoryText)
	keywordScore := KeywordScore(content, categoryText)

	switch strategy {
	case StrategySimilarityOnly:
		return similarityScore
	case StrategyKeywordOnly:
		return keywordScore
	}

	totalWeight := keywordWeight + similarityWeight
	if totalWeight <= 0 {
		return similarityScore
	}
	return (similarityScore*similarityWeight + keywordScore*keywordWeight) / totalWeight
}

// Clamp restricts a score to [0, 1]. Identity on values already in range.
func Clamp(score float64) float64 {
	return math.Max(0.0, math.Min(1.0, score))
}
