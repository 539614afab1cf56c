package service

import (
	"context"
	"errors"
	"sort"

	"github.com/EHWIYA/adsp-quiz-back/internal/ai"
	"github.com/EHWIYA/adsp-quiz-back/internal/corecontent"
	"github.com/EHWIYA/adsp-quiz-back/internal/domain"
)

type fakeCategoryStore struct {
	subjects   map[int]*domain.Subject
	subTopics  map[int]*domain.SubTopic
	appendErr  error
	appendLog  []int
	setContent []int
}

func newFakeCategoryStore() *fakeCategoryStore {
	return &fakeCategoryStore{
		subjects:  make(map[int]*domain.Subject),
		subTopics: make(map[int]*domain.SubTopic),
	}
}

func (f *fakeCategoryStore) ListSubjects(ctx context.Context) ([]*domain.Subject, error) {
	ids := make([]int, 0, len(f.subjects))
	for id := range f.subjects {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	subjects := make([]*domain.Subject, 0, len(ids))
	for _, id := range ids {
		subjects = append(subjects, f.subjects[id])
	}
	return subjects, nil
}

func (f *fakeCategoryStore) GetSubject(ctx context.Context, id int) (*domain.Subject, error) {
	return f.subjects[id], nil
}

func (f *fakeCategoryStore) ListWithRelations(ctx context.Context) ([]*domain.SubTopic, error) {
	ids := make([]int, 0, len(f.subTopics))
	for id := range f.subTopics {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	subTopics := make([]*domain.SubTopic, 0, len(ids))
	for _, id := range ids {
		subTopics = append(subTopics, f.subTopics[id])
	}
	return subTopics, nil
}

func (f *fakeCategoryStore) ListByMainTopic(ctx context.Context, mainTopicID int) ([]*domain.SubTopic, error) {
	all, _ := f.ListWithRelations(ctx)
	var filtered []*domain.SubTopic
	for _, st := range all {
		if st.MainTopicID == mainTopicID {
			filtered = append(filtered, st)
		}
	}
	return filtered, nil
}

func (f *fakeCategoryStore) GetSubTopic(ctx context.Context, id int) (*domain.SubTopic, error) {
	return f.subTopics[id], nil
}

func (f *fakeCategoryStore) AppendContent(ctx context.Context, id int, text, sourceType string) (*domain.SubTopic, error) {
	if f.appendErr != nil {
		return nil, f.appendErr
	}
	subTopic, ok := f.subTopics[id]
	if !ok {
		return nil, nil
	}
	current := ""
	if subTopic.CoreContent != nil {
		current = *subTopic.CoreContent
	}
	updated := corecontent.Prepend(current, text, sourceType)
	subTopic.CoreContent = &updated
	subTopic.SourceType = &sourceType
	f.appendLog = append(f.appendLog, id)
	return subTopic, nil
}

func (f *fakeCategoryStore) SetContent(ctx context.Context, id int, content, sourceType string) (*domain.SubTopic, error) {
	subTopic, ok := f.subTopics[id]
	if !ok {
		return nil, nil
	}
	subTopic.CoreContent = &content
	subTopic.SourceType = &sourceType
	f.setContent = append(f.setContent, id)
	return subTopic, nil
}

type fakeRuleStore struct {
	rules map[int]*domain.CategoryRule
}

func newFakeRuleStore() *fakeRuleStore {
	return &fakeRuleStore{rules: make(map[int]*domain.CategoryRule)}
}

func (f *fakeRuleStore) ListActive(ctx context.Context) ([]*domain.CategoryRule, error) {
	var active []*domain.CategoryRule
	for _, rule := range f.rules {
		if rule.IsActive {
			active = append(active, rule)
		}
	}
	return active, nil
}

func (f *fakeRuleStore) List(ctx context.Context) ([]*domain.CategoryRule, error) {
	var all []*domain.CategoryRule
	for _, rule := range f.rules {
		all = append(all, rule)
	}
	return all, nil
}

func (f *fakeRuleStore) Upsert(ctx context.Context, rules []*domain.CategoryRule) error {
	for _, rule := range rules {
		if rule.ID == 0 {
			rule.ID = len(f.rules) + 1
		}
		f.rules[rule.SubTopicID] = rule
	}
	return nil
}

type fakeSettingsStore struct {
	settings domain.AutoSettings
}

func newFakeSettingsStore() *fakeSettingsStore {
	settings := domain.DefaultAutoSettings()
	settings.ID = 1
	return &fakeSettingsStore{settings: settings}
}

func (f *fakeSettingsStore) GetOrCreate(ctx context.Context) (*domain.AutoSettings, error) {
	copied := f.settings
	return &copied, nil
}

func (f *fakeSettingsStore) Update(ctx context.Context, update domain.SettingsUpdate) (*domain.AutoSettings, error) {
	if update.MinConfidence != nil {
		f.settings.MinConfidence = *update.MinConfidence
	}
	if update.Strategy != nil {
		f.settings.Strategy = *update.Strategy
	}
	if update.KeywordWeight != nil {
		f.settings.KeywordWeight = *update.KeywordWeight
	}
	if update.SimilarityWeight != nil {
		f.settings.SimilarityWeight = *update.SimilarityWeight
	}
	if update.MaxCandidates != nil {
		f.settings.MaxCandidates = *update.MaxCandidates
	}
	if update.TextPreviewLength != nil {
		f.settings.TextPreviewLength = *update.TextPreviewLength
	}
	copied := f.settings
	return &copied, nil
}

type fakeRunStore struct {
	nextID     int
	runs       map[int]*domain.AutoRun
	candidates map[int][]*domain.AutoCandidate
}

func newFakeRunStore() *fakeRunStore {
	return &fakeRunStore{
		runs:       make(map[int]*domain.AutoRun),
		candidates: make(map[int][]*domain.AutoCandidate),
	}
}

func (f *fakeRunStore) CreateWithCandidates(ctx context.Context, run *domain.AutoRun, candidates []*domain.AutoCandidate) error {
	f.nextID++
	run.ID = f.nextID
	copied := *run
	f.runs[run.ID] = &copied
	for i, c := range candidates {
		c.RunID = run.ID
		c.Rank = i + 1
	}
	f.candidates[run.ID] = candidates
	return nil
}

func (f *fakeRunStore) GetByID(ctx context.Context, id int) (*domain.AutoRun, error) {
	run, ok := f.runs[id]
	if !ok {
		return nil, nil
	}
	copied := *run
	return &copied, nil
}

func (f *fakeRunStore) Finalize(ctx context.Context, id int, finalSubTopicID *int, status string, rejectionReason *string) (*domain.AutoRun, error) {
	run, ok := f.runs[id]
	if !ok {
		return nil, nil
	}
	run.FinalSubTopicID = finalSubTopicID
	run.Status = status
	run.RejectionReason = rejectionReason
	copied := *run
	return &copied, nil
}

func (f *fakeRunStore) ListPending(ctx context.Context, page, limit int) ([]*domain.AutoRun, int, error) {
	var pending []*domain.AutoRun
	for _, run := range f.runs {
		if run.Status == domain.RunStatusPending {
			pending = append(pending, run)
		}
	}
	sort.Slice(pending, func(i, j int) bool { return pending[i].ID > pending[j].ID })
	total := len(pending)

	offset := (page - 1) * limit
	if offset >= len(pending) {
		return nil, total, nil
	}
	end := min(offset+limit, len(pending))
	return pending[offset:end], total, nil
}

func (f *fakeRunStore) CandidatesByRunIDs(ctx context.Context, runIDs []int) (map[int][]*domain.AutoCandidate, error) {
	result := make(map[int][]*domain.AutoCandidate)
	for _, id := range runIDs {
		if cands, ok := f.candidates[id]; ok {
			result[id] = cands
		}
	}
	return result, nil
}

type fakeOverrideStore struct {
	overrides []*domain.AutoOverride
}

func (f *fakeOverrideStore) Create(ctx context.Context, override *domain.AutoOverride) error {
	override.ID = len(f.overrides) + 1
	f.overrides = append(f.overrides, override)
	return nil
}

type fakeTranscripts struct {
	text string
	err  error
}

func (f *fakeTranscripts) Transcript(ctx context.Context, videoID string) (string, error) {
	return f.text, f.err
}

type fakeQuizStore struct {
	nextID  int
	quizzes map[int]*domain.Quiz
	byHash  map[string]*domain.Quiz
}

func newFakeQuizStore() *fakeQuizStore {
	return &fakeQuizStore{
		quizzes: make(map[int]*domain.Quiz),
		byHash:  make(map[string]*domain.Quiz),
	}
}

func (f *fakeQuizStore) Create(ctx context.Context, quiz *domain.Quiz) error {
	f.nextID++
	quiz.ID = f.nextID
	copied := *quiz
	f.quizzes[quiz.ID] = &copied
	f.byHash[quiz.SourceHash] = &copied
	return nil
}

func (f *fakeQuizStore) GetByID(ctx context.Context, id int) (*domain.Quiz, error) {
	quiz, ok := f.quizzes[id]
	if !ok {
		return nil, nil
	}
	copied := *quiz
	return &copied, nil
}

func (f *fakeQuizStore) GetByHash(ctx context.Context, sourceHash string) (*domain.Quiz, error) {
	quiz, ok := f.byHash[sourceHash]
	if !ok {
		return nil, nil
	}
	copied := *quiz
	return &copied, nil
}

func (f *fakeQuizStore) ListBySubTopic(ctx context.Context, subTopicID, limit int) ([]*domain.Quiz, error) {
	var matched []*domain.Quiz
	ids := make([]int, 0, len(f.quizzes))
	for id := range f.quizzes {
		ids = append(ids, id)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(ids)))
	for _, id := range ids {
		quiz := f.quizzes[id]
		if quiz.SubTopicID != nil && *quiz.SubTopicID == subTopicID {
			copied := *quiz
			matched = append(matched, &copied)
			if len(matched) == limit {
				break
			}
		}
	}
	return matched, nil
}

func (f *fakeQuizStore) UpdateSubTopicID(ctx context.Context, quizID int, subTopicID *int) error {
	quiz, ok := f.quizzes[quizID]
	if !ok {
		return errors.New("quiz not found")
	}
	quiz.SubTopicID = subTopicID
	f.byHash[quiz.SourceHash].SubTopicID = subTopicID
	return nil
}

type fakeExamStore struct {
	nextID  int
	records []*domain.ExamRecord
}

func (f *fakeExamStore) CreateRecord(ctx context.Context, record *domain.ExamRecord) error {
	f.nextID++
	record.ID = f.nextID
	copied := *record
	f.records = append(f.records, &copied)
	return nil
}

func (f *fakeExamStore) ListBySession(ctx context.Context, sessionID string) ([]*domain.ExamRecord, error) {
	var matched []*domain.ExamRecord
	for _, record := range f.records {
		if record.ExamSessionID == sessionID {
			matched = append(matched, record)
		}
	}
	return matched, nil
}

type fakeWrongAnswerStore struct {
	nextID  int
	answers map[int]*domain.WrongAnswer
}

func newFakeWrongAnswerStore() *fakeWrongAnswerStore {
	return &fakeWrongAnswerStore{answers: make(map[int]*domain.WrongAnswer)}
}

func (f *fakeWrongAnswerStore) Upsert(ctx context.Context, wa *domain.WrongAnswer) error {
	if existing, ok := f.answers[wa.QuizID]; ok {
		wa.ID = existing.ID
	} else {
		f.nextID++
		wa.ID = f.nextID
	}
	copied := *wa
	f.answers[wa.QuizID] = &copied
	return nil
}

func (f *fakeWrongAnswerStore) List(ctx context.Context, page, limit int) ([]*domain.WrongAnswer, int, error) {
	var all []*domain.WrongAnswer
	for _, wa := range f.answers {
		all = append(all, wa)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	total := len(all)
	offset := (page - 1) * limit
	if offset >= len(all) {
		return nil, total, nil
	}
	end := min(offset+limit, len(all))
	return all[offset:end], total, nil
}

func (f *fakeWrongAnswerStore) Delete(ctx context.Context, quizID int) (bool, error) {
	if _, ok := f.answers[quizID]; !ok {
		return false, nil
	}
	delete(f.answers, quizID)
	return true, nil
}

// fakeGenerator replays a scripted sequence of results and errors.
type fakeGenerator struct {
	results []*ai.GeneratedQuiz
	errs    []error
	calls   int
}

func (f *fakeGenerator) GenerateQuiz(ctx context.Context, sourceText, subjectName string) (*ai.GeneratedQuiz, error) {
	i := f.calls
	f.calls++
	if i < len(f.errs) && f.errs[i] != nil {
		return nil, f.errs[i]
	}
	if i < len(f.results) {
		return f.results[i], nil
	}
	return &ai.GeneratedQuiz{
		Question:      "생성된 문제?",
		Options:       []string{"가", "나", "다", "라"},
		CorrectAnswer: 0,
		Explanation:   "해설",
	}, nil
}
