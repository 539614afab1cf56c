// Package quiz varies cached quizzes so repeated study sessions do not
// see identical questions.
package quiz

import (
	"math/rand"
	"strings"

	"github.com/EHWIYA/adsp-quiz-back/internal/domain"
)

// Variation types accepted by Vary.
const (
	VariationOptions  = "options"
	VariationQuestion = "question"
	VariationBoth     = "both"
)

const positiveSuffix = "에 대한 설명으로 옳은 것은?"

// inversions maps affirmative question phrases to their negations.
var inversions = [][2]string{
	{"옳은 것", "옳지 않은 것"},
	{"올바른 것", "올바르지 않은 것"},
	{"맞는 것", "맞지 않은 것"},
}

// Vary returns a variant of the quiz. With an empty variationType one of
// the variation modes is chosen at random. The input quiz is not
// modified.
func Vary(q domain.Quiz, variationType string, rng *rand.Rand) domain.Quiz {
	if variationType == "" {
		variationType = [...]string{VariationOptions, VariationQuestion, VariationBoth}[rng.Intn(3)]
	}

	switch variationType {
	case VariationOptions:
		return VaryOptions(q, rng)
	case VariationQuestion:
		return VaryQuestion(q, rng)
	case VariationBoth:
		return VaryQuestion(VaryOptions(q, rng), rng)
	default:
		return q
	}
}

// VaryOptions reshuffles the options while keeping the correct answer
// text, recomputing the correct index.
func VaryOptions(q domain.Quiz, rng *rand.Rand) domain.Quiz {
	if len(q.Options) == 0 {
		return q
	}

	correctText := q.Options[q.CorrectAnswer]
	wrong := wrongOptions(q.Options, q.CorrectAnswer)

	var newOptions []string
	if len(wrong) >= 3 {
		picked := sample(wrong, 3, rng)
		newOptions = append([]string{correctText}, picked...)
	} else {
		newOptions = append([]string(nil), q.Options...)
	}
	rng.Shuffle(len(newOptions), func(i, j int) {
		newOptions[i], newOptions[j] = newOptions[j], newOptions[i]
	})

	varied := q
	varied.Options = newOptions
	varied.CorrectAnswer = indexOf(newOptions, correctText)
	return varied
}

// VaryQuestion rewrites the question sentence. The inversion variant
// ("옳은 것" to "옳지 않은 것") promotes a wrong option to correct and
// demotes the original correct answer.
func VaryQuestion(q domain.Quiz, rng *rand.Rand) domain.Quiz {
	type variant struct {
		question      string
		options       []string
		correctAnswer int
	}
	var variants []variant

	if !strings.HasSuffix(q.Question, positiveSuffix) {
		base := strings.TrimSpace(strings.ReplaceAll(q.Question, "?", ""))
		variants = append(variants, variant{
			question:      base + positiveSuffix,
			options:       q.Options,
			correctAnswer: q.CorrectAnswer,
		})
	}

	if containsAffirmative(q.Question) {
		inverted := q.Question
		for _, pair := range inversions {
			inverted = strings.ReplaceAll(inverted, pair[0], pair[1])
		}

		correctText := q.Options[q.CorrectAnswer]
		wrong := wrongOptions(q.Options, q.CorrectAnswer)

		var options []string
		var correctAnswer int
		if len(wrong) >= 3 {
			// Promote one wrong option to correct; the old correct
			// answer joins the wrong pool.
			newCorrect := wrong[rng.Intn(len(wrong))]
			remaining := make([]string, 0, len(wrong)-1)
			for _, opt := range wrong {
				if opt != newCorrect {
					remaining = append(remaining, opt)
				}
			}
			limit := min(2, len(remaining))
			newWrong := append(sample(remaining, limit, rng), correctText)
			rng.Shuffle(len(newWrong), func(i, j int) {
				newWrong[i], newWrong[j] = newWrong[j], newWrong[i]
			})
			options = append([]string{newCorrect}, newWrong...)
			correctAnswer = 0
		} else {
			options = append([]string(nil), q.Options...)
			rng.Shuffle(len(options), func(i, j int) {
				options[i], options[j] = options[j], options[i]
			})
			correctAnswer = indexOf(options, correctText)
		}

		variants = append(variants, variant{
			question:      inverted,
			options:       options,
			correctAnswer: correctAnswer,
		})
	}

	if len(variants) == 0 {
		return q
	}

	chosen := variants[rng.Intn(len(variants))]
	varied := q
	varied.Question = chosen.question
	varied.Options = chosen.options
	varied.CorrectAnswer = chosen.correctAnswer
	return varied
}

func containsAffirmative(question string) bool {
	for _, pair := range inversions {
		if strings.Contains(question, pair[0]) {
			return true
		}
	}
	return false
}

func wrongOptions(options []string, correct int) []string {
	wrong := make([]string, 0, len(options))
	for i, opt := range options {
		if i != correct {
			wrong = append(wrong, opt)
		}
	}
	return wrong
}

func sample(items []string, n int, rng *rand.Rand) []string {
	shuffled := append([]string(nil), items...)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	if n > len(shuffled) {
		n = len(shuffled)
	}
	return shuffled[:n]
}

func indexOf(options []string, text string) int {
	for i, opt := range options {
		if opt == text {
			return i
		}
	}
	return 0
}
