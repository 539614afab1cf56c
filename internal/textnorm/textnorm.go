// Package textnorm normalizes Korean text for similarity scoring.
package textnorm

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Particles are grammatical suffixes stripped from token ends. The
// longest matching suffix wins.
var Particles = []string{
	"의", "는", "은", "이", "가", "을", "를", "에", "에서", "와", "과",
	"도", "만", "부터", "까지", "로", "으로", "처럼", "같이", "보다",
	"한테", "에게", "께", "더러", "에게서", "한테서",
}

// Synonyms canonicalizes interrogative variants so phrasing differences
// do not split word sets.
var Synonyms = map[string]string{
	"무엇인가":  "무엇",
	"무엇인가요": "무엇",
	"무엇인지":  "무엇",
	"무엇인":   "무엇",
	"어떤가":   "어떤",
	"어떤지":   "어떤",
}

const punctuation = `?!.,;:()[]{}"'`

// Normalize removes punctuation and collapses whitespace runs to single
// spaces. Deterministic and pure; empty input yields empty output.
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	text = norm.NFC.String(text)

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if strings.ContainsRune(punctuation, r) {
			continue
		}
		b.WriteRune(r)
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// ExtractWords tokenizes normalized text into a word set. Each token has
// its longest matching particle suffix stripped, then synonym
// canonicalization applied. Tokens reduced to empty are dropped.
func ExtractWords(text string) map[string]struct{} {
	normalized := Normalize(text)
	words := make(map[string]struct{})
	if normalized == "" {
		return words
	}

	for _, word := range strings.Fields(normalized) {
		cleaned := stripParticle(word)
		if canonical, ok := Synonyms[cleaned]; ok {
			cleaned = canonical
		}
		if cleaned != "" {
			words[cleaned] = struct{}{}
		}
	}

	return words
}

// stripParticle removes the longest particle suffix, if any. Only one
// particle is stripped per token.
func stripParticle(word string) string {
	longest := ""
	for _, particle := range Particles {
		if strings.HasSuffix(word, particle) && len(particle) > len(longest) {
			longest = particle
		}
	}
	return word[:len(word)-len(longest)]
}

// CharNGrams returns the set of n-character substrings of text, counted
// in runes. Text shorter than n yields an empty set.
func CharNGrams(text string, n int) map[string]struct{} {
	ngrams := make(map[string]struct{})
	runes := []rune(text)
	if len(runes) < n {
		return ngrams
	}

	for i := 0; i+n <= len(runes); i++ {
		ngrams[string(runes[i:i+n])] = struct{}{}
	}

	return ngrams
}

// Jaccard computes |a∩b| / |a∪b|, defined as 0 when either set is empty.
func Jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}

	intersection := 0
	for item := range a {
		if _, ok := b[item]; ok {
			intersection++
		}
	}

	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0.0
	}

	return float64(intersection) / float64(union)
}
