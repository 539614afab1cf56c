package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuizResponse(t *testing.T) {
	t.Run("plain json", func(t *testing.T) {
		quiz, err := parseQuizResponse(`{"question":"데이터 마이닝의 정의는?","options":["가","나","다","라"],"correct_answer":2,"explanation":"해설"}`)
		require.NoError(t, err)
		assert.Equal(t, "데이터 마이닝의 정의는?", quiz.Question)
		assert.Len(t, quiz.Options, 4)
		assert.Equal(t, 2, quiz.CorrectAnswer)
	})

	t.Run("json wrapped in markdown fence", func(t *testing.T) {
		quiz, err := parseQuizResponse("```json\n" +
			`{"question":"Q","options":["a","b","c","d"],"correct_answer":0,"explanation":"E"}` +
			"\n```")
		require.NoError(t, err)
		assert.Equal(t, "Q", quiz.Question)
	})

	t.Run("wrong option count", func(t *testing.T) {
		_, err := parseQuizResponse(`{"question":"Q","options":["a","b"],"correct_answer":0,"explanation":"E"}`)
		require.Error(t, err)
	})

	t.Run("correct answer out of range", func(t *testing.T) {
		_, err := parseQuizResponse(`{"question":"Q","options":["a","b","c","d"],"correct_answer":4,"explanation":"E"}`)
		require.Error(t, err)
	})

	t.Run("empty question", func(t *testing.T) {
		_, err := parseQuizResponse(`{"question":"","options":["a","b","c","d"],"correct_answer":0,"explanation":"E"}`)
		require.Error(t, err)
	})

	t.Run("not json", func(t *testing.T) {
		_, err := parseQuizResponse("죄송하지만 문제를 생성할 수 없습니다")
		require.Error(t, err)
	})
}
