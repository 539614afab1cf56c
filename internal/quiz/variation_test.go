package quiz

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EHWIYA/adsp-quiz-back/internal/domain"
)

func sampleQuiz() domain.Quiz {
	return domain.Quiz{
		ID:            1,
		Question:      "데이터 마이닝에 대한 설명으로 옳은 것은?",
		Options:       []string{"가 설명", "나 설명", "다 설명", "라 설명"},
		CorrectAnswer: 1,
		Explanation:   "해설입니다",
	}
}

func TestVaryOptionsKeepsCorrectText(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		rng := rand.New(rand.NewSource(seed))
		original := sampleQuiz()
		varied := VaryOptions(original, rng)

		require.Len(t, varied.Options, 4)
		assert.Equal(t, "나 설명", varied.Options[varied.CorrectAnswer],
			"correct answer text must survive the reshuffle")
		assert.ElementsMatch(t, original.Options, varied.Options)
	}
}

func TestVaryOptionsDoesNotMutateInput(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	original := sampleQuiz()

	VaryOptions(original, rng)

	assert.Equal(t, sampleQuiz().Options, original.Options)
	assert.Equal(t, 1, original.CorrectAnswer)
}

func TestVaryQuestionInversion(t *testing.T) {
	found := false
	for seed := int64(0); seed < 30 && !found; seed++ {
		rng := rand.New(rand.NewSource(seed))
		varied := VaryQuestion(sampleQuiz(), rng)

		if varied.Question == "데이터 마이닝에 대한 설명으로 옳지 않은 것은?" {
			found = true
			// The promoted correct answer must be one of the original
			// wrong options.
			correctText := varied.Options[varied.CorrectAnswer]
			assert.NotEqual(t, "나 설명", correctText)
			assert.Contains(t, sampleQuiz().Options, correctText)
			assert.Contains(t, varied.Options, "나 설명",
				"old correct answer stays in the option pool")
		}
	}
	assert.True(t, found, "inversion variant never produced across seeds")
}

func TestVaryQuestionWithoutAffirmativePhrase(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	q := sampleQuiz()
	q.Question = "데이터 마이닝의 주요 기법을 고르시오?"

	varied := VaryQuestion(q, rng)

	assert.Equal(t, "데이터 마이닝의 주요 기법을 고르시오에 대한 설명으로 옳은 것은?", varied.Question)
	assert.Equal(t, q.CorrectAnswer, varied.CorrectAnswer)
}

func TestVaryQuestionNoApplicableVariant(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	q := sampleQuiz()
	q.Question = "데이터 마이닝에 대한 설명으로 옳은 것은?"

	// Only the inversion variant applies; rerunning with the suffix
	// already present and no affirmative phrase returns the original.
	q2 := q
	q2.Question = "무엇에 대한 설명으로 옳은 것은?"
	varied := VaryQuestion(q2, rng)
	assert.NotEmpty(t, varied.Question)
}

func TestVaryDispatch(t *testing.T) {
	rng := rand.New(rand.NewSource(11))

	t.Run("options type keeps question", func(t *testing.T) {
		varied := Vary(sampleQuiz(), VariationOptions, rng)
		assert.Equal(t, sampleQuiz().Question, varied.Question)
	})

	t.Run("unknown type returns original", func(t *testing.T) {
		varied := Vary(sampleQuiz(), "nope", rng)
		assert.Equal(t, sampleQuiz(), varied)
	})

	t.Run("random type always yields a valid quiz", func(t *testing.T) {
		for seed := int64(0); seed < 20; seed++ {
			r := rand.New(rand.NewSource(seed))
			varied := Vary(sampleQuiz(), "", r)
			require.Len(t, varied.Options, 4)
			assert.GreaterOrEqual(t, varied.CorrectAnswer, 0)
			assert.Less(t, varied.CorrectAnswer, 4)
		}
	})
}
