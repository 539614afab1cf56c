// Package ai generates multiple-choice quizzes from source text via the
// Anthropic API.
package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"golang.org/x/time/rate"

	"github.com/EHWIYA/adsp-quiz-back/internal/logger"
)

// ErrOverloaded marks a transient capacity error from the LLM. The API
// layer maps it to 503 so clients can retry.
var ErrOverloaded = errors.New("퀴즈 생성 서비스가 일시적으로 과부하 상태입니다")

// GeneratedQuiz is one quiz produced by the model.
type GeneratedQuiz struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
}

// Client wraps the Anthropic API for quiz generation. Calls are rate
// limited so batch generation cannot exhaust the API quota.
type Client struct {
	client    anthropic.Client
	model     string
	maxTokens int
	limiter   *rate.Limiter
	logger    logger.Logger
}

// Config holds client construction parameters.
type Config struct {
	APIKey         string
	Model          string
	MaxTokens      int
	RequestsPerMin int
}

// NewClient creates a quiz generation client.
func NewClient(cfg Config, log logger.Logger) *Client {
	perMin := cfg.RequestsPerMin
	if perMin <= 0 {
		perMin = 30
	}
	return &Client{
		client:    anthropic.NewClient(option.WithAPIKey(cfg.APIKey)),
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
		limiter:   rate.NewLimiter(rate.Limit(float64(perMin)/60.0), 1),
		logger:    log,
	}
}

const systemPrompt = `당신은 교육용 문제 생성 전문가입니다.
JSON만 응답하세요 (마크다운 없이):
{"question": "...", "options": ["...", "...", "...", "..."], "correct_answer": 0, "explanation": "..."}`

// GenerateQuiz produces one multiple-choice quiz from source text.
func (c *Client) GenerateQuiz(ctx context.Context, sourceText, subjectName string) (*GeneratedQuiz, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	prompt := fmt.Sprintf(`%s 과목 객관식 문제 1개 생성

텍스트: %s

요구: 명확한 문제, 선택지 4개(0-3), 정답 인덱스(0-3), 간결한 해설`, subjectName, sourceText)

	start := time.Now()
	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: int64(c.maxTokens),
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		if isOverloaded(err) {
			c.logger.Warn("llm overloaded", logger.Error(err))
			return nil, ErrOverloaded
		}
		return nil, fmt.Errorf("anthropic api: %w", err)
	}

	text := ""
	for _, block := range message.Content {
		if block.Type == "text" {
			text = block.Text
			break
		}
	}
	if text == "" {
		return nil, errors.New("no text content in model response")
	}

	quiz, err := parseQuizResponse(text)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("quiz generated",
		logger.Duration("duration", time.Since(start)),
		logger.Int64("tokens_in", message.Usage.InputTokens),
		logger.Int64("tokens_out", message.Usage.OutputTokens))

	return quiz, nil
}

func isOverloaded(err error) bool {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 429 || apiErr.StatusCode == 529
	}
	return false
}

func parseQuizResponse(text string) (*GeneratedQuiz, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var quiz GeneratedQuiz
	if err := json.Unmarshal([]byte(text), &quiz); err != nil {
		return nil, fmt.Errorf("parsing quiz response: %w", err)
	}

	if quiz.Question == "" {
		return nil, errors.New("model returned an empty question")
	}
	if len(quiz.Options) != 4 {
		return nil, fmt.Errorf("model returned %d options, want 4", len(quiz.Options))
	}
	if quiz.CorrectAnswer < 0 || quiz.CorrectAnswer >= len(quiz.Options) {
		return nil, fmt.Errorf("correct answer index %d out of range", quiz.CorrectAnswer)
	}

	return &quiz, nil
}
