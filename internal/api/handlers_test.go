package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EHWIYA/adsp-quiz-back/internal/ai"
	"github.com/EHWIYA/adsp-quiz-back/internal/classifier"
	"github.com/EHWIYA/adsp-quiz-back/internal/domain"
	"github.com/EHWIYA/adsp-quiz-back/internal/logger"
	"github.com/EHWIYA/adsp-quiz-back/internal/service"
)

// In-memory stores backing the handlers under test.

type memCategories struct {
	subjects  map[int]*domain.Subject
	subTopics map[int]*domain.SubTopic
}

func (m *memCategories) ListSubjects(ctx context.Context) ([]*domain.Subject, error) {
	var subjects []*domain.Subject
	for _, s := range m.subjects {
		subjects = append(subjects, s)
	}
	return subjects, nil
}

func (m *memCategories) GetSubject(ctx context.Context, id int) (*domain.Subject, error) {
	return m.subjects[id], nil
}

func (m *memCategories) ListWithRelations(ctx context.Context) ([]*domain.SubTopic, error) {
	var subTopics []*domain.SubTopic
	for _, st := range m.subTopics {
		subTopics = append(subTopics, st)
	}
	return subTopics, nil
}

func (m *memCategories) ListByMainTopic(ctx context.Context, mainTopicID int) ([]*domain.SubTopic, error) {
	return m.ListWithRelations(ctx)
}

func (m *memCategories) GetSubTopic(ctx context.Context, id int) (*domain.SubTopic, error) {
	return m.subTopics[id], nil
}

func (m *memCategories) AppendContent(ctx context.Context, id int, text, sourceType string) (*domain.SubTopic, error) {
	subTopic, ok := m.subTopics[id]
	if !ok {
		return nil, nil
	}
	subTopic.CoreContent = &text
	subTopic.SourceType = &sourceType
	return subTopic, nil
}

func (m *memCategories) SetContent(ctx context.Context, id int, content, sourceType string) (*domain.SubTopic, error) {
	return m.AppendContent(ctx, id, content, sourceType)
}

type memRules struct{}

func (memRules) ListActive(ctx context.Context) ([]*domain.CategoryRule, error) { return nil, nil }
func (memRules) List(ctx context.Context) ([]*domain.CategoryRule, error)       { return nil, nil }
func (memRules) Upsert(ctx context.Context, rules []*domain.CategoryRule) error {
	for i, rule := range rules {
		rule.ID = i + 1
	}
	return nil
}

type memSettings struct {
	settings domain.AutoSettings
}

func (m *memSettings) GetOrCreate(ctx context.Context) (*domain.AutoSettings, error) {
	copied := m.settings
	return &copied, nil
}

func (m *memSettings) Update(ctx context.Context, update domain.SettingsUpdate) (*domain.AutoSettings, error) {
	if update.Strategy != nil {
		m.settings.Strategy = *update.Strategy
	}
	if update.MinConfidence != nil {
		m.settings.MinConfidence = *update.MinConfidence
	}
	copied := m.settings
	return &copied, nil
}

type memRuns struct {
	nextID int
	runs   map[int]*domain.AutoRun
}

func (m *memRuns) CreateWithCandidates(ctx context.Context, run *domain.AutoRun, candidates []*domain.AutoCandidate) error {
	m.nextID++
	run.ID = m.nextID
	copied := *run
	m.runs[run.ID] = &copied
	return nil
}

func (m *memRuns) GetByID(ctx context.Context, id int) (*domain.AutoRun, error) {
	return m.runs[id], nil
}

func (m *memRuns) Finalize(ctx context.Context, id int, finalSubTopicID *int, status string, rejectionReason *string) (*domain.AutoRun, error) {
	run, ok := m.runs[id]
	if !ok {
		return nil, nil
	}
	run.FinalSubTopicID = finalSubTopicID
	run.Status = status
	run.RejectionReason = rejectionReason
	return run, nil
}

func (m *memRuns) ListPending(ctx context.Context, page, limit int) ([]*domain.AutoRun, int, error) {
	var pending []*domain.AutoRun
	for _, run := range m.runs {
		if run.Status == domain.RunStatusPending {
			pending = append(pending, run)
		}
	}
	return pending, len(pending), nil
}

func (m *memRuns) CandidatesByRunIDs(ctx context.Context, runIDs []int) (map[int][]*domain.AutoCandidate, error) {
	return map[int][]*domain.AutoCandidate{}, nil
}

type memOverrides struct{}

func (memOverrides) Create(ctx context.Context, override *domain.AutoOverride) error { return nil }

type memTranscripts struct{}

func (memTranscripts) Transcript(ctx context.Context, videoID string) (string, error) {
	return "전사된 자막", nil
}

type memQuizzes struct {
	nextID  int
	quizzes map[int]*domain.Quiz
	byHash  map[string]*domain.Quiz
}

func (m *memQuizzes) Create(ctx context.Context, quiz *domain.Quiz) error {
	m.nextID++
	quiz.ID = m.nextID
	m.quizzes[quiz.ID] = quiz
	m.byHash[quiz.SourceHash] = quiz
	return nil
}

func (m *memQuizzes) GetByID(ctx context.Context, id int) (*domain.Quiz, error) {
	return m.quizzes[id], nil
}

func (m *memQuizzes) GetByHash(ctx context.Context, sourceHash string) (*domain.Quiz, error) {
	return m.byHash[sourceHash], nil
}

func (m *memQuizzes) ListBySubTopic(ctx context.Context, subTopicID, limit int) ([]*domain.Quiz, error) {
	return nil, nil
}

func (m *memQuizzes) UpdateSubTopicID(ctx context.Context, quizID int, subTopicID *int) error {
	return nil
}

type memExams struct {
	records []*domain.ExamRecord
}

func (m *memExams) CreateRecord(ctx context.Context, record *domain.ExamRecord) error {
	record.ID = len(m.records) + 1
	m.records = append(m.records, record)
	return nil
}

func (m *memExams) ListBySession(ctx context.Context, sessionID string) ([]*domain.ExamRecord, error) {
	var matched []*domain.ExamRecord
	for _, record := range m.records {
		if record.ExamSessionID == sessionID {
			matched = append(matched, record)
		}
	}
	return matched, nil
}

type memWrongs struct {
	answers map[int]*domain.WrongAnswer
}

func (m *memWrongs) Upsert(ctx context.Context, wa *domain.WrongAnswer) error {
	wa.ID = 1
	m.answers[wa.QuizID] = wa
	return nil
}

func (m *memWrongs) List(ctx context.Context, page, limit int) ([]*domain.WrongAnswer, int, error) {
	var all []*domain.WrongAnswer
	for _, wa := range m.answers {
		all = append(all, wa)
	}
	return all, len(all), nil
}

func (m *memWrongs) Delete(ctx context.Context, quizID int) (bool, error) {
	if _, ok := m.answers[quizID]; !ok {
		return false, nil
	}
	delete(m.answers, quizID)
	return true, nil
}

type memGenerator struct {
	err error
}

func (m *memGenerator) GenerateQuiz(ctx context.Context, sourceText, subjectName string) (*ai.GeneratedQuiz, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &ai.GeneratedQuiz{
		Question:      "생성된 문제?",
		Options:       []string{"가", "나", "다", "라"},
		CorrectAnswer: 1,
		Explanation:   "해설",
	}, nil
}

type routerFixture struct {
	router    *gin.Engine
	runs      *memRuns
	generator *memGenerator
	settings  *memSettings
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	categories := &memCategories{
		subjects: map[int]*domain.Subject{1: {ID: 1, Name: "데이터 이해"}},
		subTopics: map[int]*domain.SubTopic{
			1: {
				ID: 1, MainTopicID: 10, Name: "데이터 마이닝",
				Description: "분류 군집 연관분석", SubjectID: 1,
				MainTopicName: "분석 기법", SubjectName: "데이터 분석",
			},
		},
	}
	settings := &memSettings{settings: func() domain.AutoSettings {
		s := domain.DefaultAutoSettings()
		s.ID = 1
		s.MinConfidence = 0.01
		return s
	}()}
	runs := &memRuns{runs: make(map[int]*domain.AutoRun)}
	generator := &memGenerator{}

	log := logger.NewNop()
	engine := classifier.NewEngine(log, nil)
	coreContent := service.NewCoreContentService(
		categories, memRules{}, settings, runs, memOverrides{}, memTranscripts{}, engine, nil, log,
	)
	quizzes := &memQuizzes{quizzes: make(map[int]*domain.Quiz), byHash: make(map[string]*domain.Quiz)}
	quizService := service.NewQuizService(
		quizzes, &memExams{}, &memWrongs{answers: make(map[int]*domain.WrongAnswer)},
		categories, generator, memTranscripts{}, nil, log,
	)

	router := gin.New()
	SetupRoutes(router, NewHandler(coreContent, quizService, log), nil)

	return &routerFixture{router: router, runs: runs, generator: generator, settings: settings}
}

func (f *routerFixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	f.router.ServeHTTP(recorder, req)
	return recorder
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder, target any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), target))
}

func TestHealthEndpoints(t *testing.T) {
	f := newRouterFixture(t)

	assert.Equal(t, http.StatusOK, f.do(t, http.MethodGet, "/health", nil).Code)
	assert.Equal(t, http.StatusOK, f.do(t, http.MethodGet, "/ready", nil).Code)
}

func TestAutoClassifyEndpoint(t *testing.T) {
	f := newRouterFixture(t)

	recorder := f.do(t, http.MethodPost, "/api/v1/core-content/auto", gin.H{
		"core_content": "데이터 마이닝의 분류 군집 연관분석",
		"source_type":  "text",
	})
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

	var resp AutoClassifyResponse
	decodeBody(t, recorder, &resp)
	assert.Equal(t, domain.RunStatusApplied, resp.Status)
	assert.NotZero(t, resp.ID)
	assert.NotEmpty(t, resp.Candidates)
	require.NotNil(t, resp.CategoryPath)
	assert.Contains(t, *resp.CategoryPath, "데이터 마이닝")
}

func TestAutoClassifyPendingHidesPath(t *testing.T) {
	f := newRouterFixture(t)
	f.settings.settings.MinConfidence = 0.99

	content := "데이터 마이닝의 분류 군집 연관분석"
	recorder := f.do(t, http.MethodPost, "/api/v1/core-content/auto", gin.H{
		"core_content": content,
		"source_type":  "text",
	})
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

	var resp AutoClassifyResponse
	decodeBody(t, recorder, &resp)
	assert.Equal(t, domain.RunStatusPending, resp.Status)
	assert.Nil(t, resp.CategoryPath, "the path is only revealed once content is applied")
	assert.Nil(t, resp.SubTopicID)

	recorder = f.do(t, http.MethodGet, "/api/v1/core-content/pending", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var pending PendingListResponse
	decodeBody(t, recorder, &pending)
	require.Len(t, pending.Items, 1)
	assert.Equal(t, content, pending.Items[0].RequestContent,
		"reviewers get the full request, not just the preview")
}

func TestAutoClassifyErrorBody(t *testing.T) {
	f := newRouterFixture(t)

	recorder := f.do(t, http.MethodPost, "/api/v1/core-content/auto", gin.H{
		"core_content": "내용",
		"source_type":  "rss",
	})
	require.Equal(t, http.StatusBadRequest, recorder.Code)

	var body errorBody
	decodeBody(t, recorder, &body)
	assert.Equal(t, "INVALID_SOURCE_TYPE", body.Code)
	assert.NotEmpty(t, body.Detail)
}

func TestApproveUnknownRun(t *testing.T) {
	f := newRouterFixture(t)

	recorder := f.do(t, http.MethodPost, "/api/v1/core-content/runs/999/approve", gin.H{
		"sub_topic_id": 1,
	})
	require.Equal(t, http.StatusNotFound, recorder.Code)

	var body errorBody
	decodeBody(t, recorder, &body)
	assert.Equal(t, "RUN_NOT_FOUND", body.Code)
}

func TestApproveBadRunID(t *testing.T) {
	f := newRouterFixture(t)

	recorder := f.do(t, http.MethodPost, "/api/v1/core-content/runs/abc/approve", gin.H{
		"sub_topic_id": 1,
	})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestSettingsRoundTrip(t *testing.T) {
	f := newRouterFixture(t)

	recorder := f.do(t, http.MethodGet, "/api/v1/core-content/settings", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	recorder = f.do(t, http.MethodPut, "/api/v1/core-content/settings", gin.H{
		"strategy": "keyword_only",
	})
	require.Equal(t, http.StatusOK, recorder.Code)

	var settings domain.AutoSettings
	decodeBody(t, recorder, &settings)
	assert.Equal(t, "keyword_only", settings.Strategy)

	recorder = f.do(t, http.MethodPut, "/api/v1/core-content/settings", gin.H{
		"strategy": "cosine",
	})
	require.Equal(t, http.StatusBadRequest, recorder.Code)

	var body errorBody
	decodeBody(t, recorder, &body)
	assert.Equal(t, "INVALID_STRATEGY", body.Code)
}

func TestGenerateQuizEndpoint(t *testing.T) {
	f := newRouterFixture(t)

	recorder := f.do(t, http.MethodPost, "/api/v1/quiz/generate", gin.H{
		"source_type": "text",
		"content":     "데이터 전처리 기법",
	})
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

	var resp QuizResponse
	decodeBody(t, recorder, &resp)
	assert.NotZero(t, resp.ID)
	assert.Len(t, resp.Options, 4)
	assert.False(t, resp.Cached)

	// Same content again returns the cached quiz.
	recorder = f.do(t, http.MethodPost, "/api/v1/quiz/generate", gin.H{
		"source_type": "text",
		"content":     "데이터 전처리 기법",
	})
	require.Equal(t, http.StatusOK, recorder.Code)
	decodeBody(t, recorder, &resp)
	assert.True(t, resp.Cached)
}

func TestGenerateQuizOverloadedMapsTo503(t *testing.T) {
	f := newRouterFixture(t)
	f.generator.err = ai.ErrOverloaded

	recorder := f.do(t, http.MethodPost, "/api/v1/quiz/generate", gin.H{
		"source_type": "text",
		"content":     "회귀분석",
	})
	require.Equal(t, http.StatusServiceUnavailable, recorder.Code)

	var body errorBody
	decodeBody(t, recorder, &body)
	assert.Equal(t, "AI_SERVICE_OVERLOADED", body.Code)
}

func TestExamFlowEndpoints(t *testing.T) {
	f := newRouterFixture(t)

	recorder := f.do(t, http.MethodPost, "/api/v1/quiz/generate", gin.H{
		"source_type": "text",
		"content":     "표본추출 방법",
	})
	require.Equal(t, http.StatusOK, recorder.Code)
	var quiz QuizResponse
	decodeBody(t, recorder, &quiz)

	recorder = f.do(t, http.MethodPost, "/api/v1/exam/answers", gin.H{
		"quiz_id":     quiz.ID,
		"user_answer": quiz.CorrectAnswer,
	})
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
	var answer SubmitAnswerResponse
	decodeBody(t, recorder, &answer)
	require.NotNil(t, answer.IsCorrect)
	assert.True(t, *answer.IsCorrect)
	require.NotEmpty(t, answer.ExamSessionID)

	recorder = f.do(t, http.MethodGet, "/api/v1/exam/results/"+answer.ExamSessionID, nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	var result ExamResultResponse
	decodeBody(t, recorder, &result)
	assert.Equal(t, 1, result.Total)
	assert.Equal(t, 1, result.Correct)
}

func TestWrongAnswerEndpoints(t *testing.T) {
	f := newRouterFixture(t)

	recorder := f.do(t, http.MethodPost, "/api/v1/quiz/generate", gin.H{
		"source_type": "text",
		"content":     "연관규칙 지지도",
	})
	require.Equal(t, http.StatusOK, recorder.Code)
	var quiz QuizResponse
	decodeBody(t, recorder, &quiz)

	selected := 3
	recorder = f.do(t, http.MethodPost, "/api/v1/wrong-answers", gin.H{
		"quiz_id":         quiz.ID,
		"selected_answer": selected,
	})
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

	recorder = f.do(t, http.MethodGet, "/api/v1/wrong-answers", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	var list WrongAnswerListResponse
	decodeBody(t, recorder, &list)
	assert.Equal(t, 1, list.Total)

	recorder = f.do(t, http.MethodDelete, "/api/v1/wrong-answers/"+strconv.Itoa(quiz.ID), nil)
	assert.Equal(t, http.StatusOK, recorder.Code)

	recorder = f.do(t, http.MethodDelete, "/api/v1/wrong-answers/"+strconv.Itoa(quiz.ID), nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}
