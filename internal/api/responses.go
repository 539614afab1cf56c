package api

import (
	"time"

	"github.com/EHWIYA/adsp-quiz-back/internal/domain"
	"github.com/EHWIYA/adsp-quiz-back/internal/service"
)

// errorBody is the uniform error payload: a stable machine code plus a
// human-readable detail in Korean.
type errorBody struct {
	Code   string `json:"code"`
	Detail string `json:"detail"`
}

// AutoClassifyRequest submits content for automatic classification.
type AutoClassifyRequest struct {
	CoreContent string `json:"core_content" binding:"required"`
	SourceType  string `json:"source_type"`
}

// CandidateResponse is one ranked category of a run.
type CandidateResponse struct {
	SubTopicID   int     `json:"sub_topic_id"`
	CategoryPath string  `json:"category_path"`
	Score        float64 `json:"score"`
	Rank         int     `json:"rank"`
}

// AutoClassifyResponse reports the outcome of one classification run.
// The category path is null until the content is actually applied.
type AutoClassifyResponse struct {
	ID           int                 `json:"id"`
	Status       string              `json:"status"`
	SubTopicID   *int                `json:"sub_topic_id,omitempty"`
	CategoryPath *string             `json:"category_path"`
	Confidence   float64             `json:"confidence"`
	Candidates   []CandidateResponse `json:"candidates"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

// PendingRunResponse is one run awaiting review. The full request
// content rides along so reviewers are not limited to the preview.
type PendingRunResponse struct {
	ID             int                 `json:"id"`
	RequestContent string              `json:"request_core_content"`
	TextPreview    string              `json:"text_preview"`
	SourceType     string              `json:"source_type"`
	AutoSubTopicID *int                `json:"auto_sub_topic_id,omitempty"`
	AutoConfidence float64             `json:"auto_confidence"`
	Status         string              `json:"status"`
	Candidates     []CandidateResponse `json:"candidates"`
	CreatedAt      time.Time           `json:"created_at"`
}

// PendingListResponse is a page of runs awaiting review.
type PendingListResponse struct {
	Items []PendingRunResponse `json:"items"`
	Total int                  `json:"total"`
	Page  int                  `json:"page"`
	Limit int                  `json:"limit"`
}

// ApproveRequest confirms a run into a category.
type ApproveRequest struct {
	SubTopicID int     `json:"sub_topic_id" binding:"required"`
	Reason     *string `json:"reason"`
}

// RejectRequest discards a pending run.
type RejectRequest struct {
	Reason *string `json:"reason"`
}

// ReviewResponse reports the run state after a review decision.
type ReviewResponse struct {
	RunID           int       `json:"run_id"`
	Status          string    `json:"status"`
	FinalSubTopicID *int      `json:"final_sub_topic_id,omitempty"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// RuleRequest creates or replaces the ranking rule for a sub topic.
type RuleRequest struct {
	SubTopicID int     `json:"sub_topic_id" binding:"required"`
	Weight     float64 `json:"weight"`
	Priority   int     `json:"priority"`
	IsActive   *bool   `json:"is_active"`
}

// CoreContentEntryResponse is one decoded study-material entry.
type CoreContentEntryResponse struct {
	Content    string `json:"content"`
	SourceType string `json:"source_type"`
}

// CoreContentResponse is a sub topic's accumulated study material.
type CoreContentResponse struct {
	SubTopicID  int                        `json:"sub_topic_id"`
	Name        string                     `json:"name"`
	CoreContent *string                    `json:"core_content"`
	SourceType  *string                    `json:"source_type"`
	Entries     []CoreContentEntryResponse `json:"entries"`
	UpdatedAt   time.Time                  `json:"updated_at"`
}

// RegisterCoreContentRequest stores the first study material directly.
type RegisterCoreContentRequest struct {
	MainTopicID int    `json:"main_topic_id"`
	CoreContent string `json:"core_content" binding:"required"`
	SourceType  string `json:"source_type"`
}

// GenerateQuizRequest produces one quiz from text or a YouTube URL.
type GenerateQuizRequest struct {
	SourceType string `json:"source_type" binding:"required"`
	Content    string `json:"content" binding:"required"`
	SubjectID  int    `json:"subject_id"`
}

// QuizResponse is one quiz. The correct answer and explanation are
// included; the frontend hides them until grading.
type QuizResponse struct {
	ID            int      `json:"id"`
	SubjectID     int      `json:"subject_id"`
	SubTopicID    *int     `json:"sub_topic_id,omitempty"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
	Cached        bool     `json:"cached"`
}

// StudyQuizRequest builds a quiz batch from a sub topic's core content.
type StudyQuizRequest struct {
	SubTopicID int `json:"sub_topic_id" binding:"required"`
	Count      int `json:"count"`
}

// StudyQuizResponse is a generated study batch, possibly partial when
// the model was overloaded mid-batch.
type StudyQuizResponse struct {
	Quizzes []QuizResponse `json:"quizzes"`
	Total   int            `json:"total"`
}

// SubmitAnswerRequest grades one answer.
type SubmitAnswerRequest struct {
	QuizID        int    `json:"quiz_id" binding:"required"`
	UserAnswer    *int   `json:"user_answer"`
	ExamSessionID string `json:"exam_session_id"`
}

// SubmitAnswerResponse reports the grading result.
type SubmitAnswerResponse struct {
	RecordID      int    `json:"record_id"`
	ExamSessionID string `json:"exam_session_id"`
	IsCorrect     *bool  `json:"is_correct"`
	CorrectAnswer int    `json:"correct_answer"`
	Explanation   string `json:"explanation"`
}

// ExamResultResponse summarizes one exam session.
type ExamResultResponse struct {
	ExamSessionID string  `json:"exam_session_id"`
	Total         int     `json:"total"`
	Correct       int     `json:"correct"`
	Score         float64 `json:"score"`
}

// SaveWrongAnswerRequest copies a quiz into the wrong-answer note.
type SaveWrongAnswerRequest struct {
	QuizID         int  `json:"quiz_id" binding:"required"`
	SelectedAnswer *int `json:"selected_answer" binding:"required"`
}

// WrongAnswerListResponse is a page of the wrong-answer note.
type WrongAnswerListResponse struct {
	Items []*domain.WrongAnswer `json:"items"`
	Total int                   `json:"total"`
	Page  int                   `json:"page"`
	Limit int                   `json:"limit"`
}

func toCandidateResponses(candidates []*domain.AutoCandidate) []CandidateResponse {
	responses := make([]CandidateResponse, 0, len(candidates))
	for _, c := range candidates {
		responses = append(responses, CandidateResponse{
			SubTopicID:   c.SubTopicID,
			CategoryPath: c.CategoryPath,
			Score:        c.Score,
			Rank:         c.Rank,
		})
	}
	return responses
}

func toAutoClassifyResponse(result *service.ClassifyResult) AutoClassifyResponse {
	var categoryPath *string
	if result.CategoryPath != "" {
		categoryPath = &result.CategoryPath
	}
	return AutoClassifyResponse{
		ID:           result.Run.ID,
		Status:       result.Run.Status,
		SubTopicID:   result.Run.FinalSubTopicID,
		CategoryPath: categoryPath,
		Confidence:   result.Run.AutoConfidence,
		Candidates:   toCandidateResponses(result.Candidates),
		UpdatedAt:    result.Run.UpdatedAt,
	}
}

func toReviewResponse(run *domain.AutoRun) ReviewResponse {
	return ReviewResponse{
		RunID:           run.ID,
		Status:          run.Status,
		FinalSubTopicID: run.FinalSubTopicID,
		UpdatedAt:       run.UpdatedAt,
	}
}

func toQuizResponse(quiz *domain.Quiz, cached bool) QuizResponse {
	return QuizResponse{
		ID:            quiz.ID,
		SubjectID:     quiz.SubjectID,
		SubTopicID:    quiz.SubTopicID,
		Question:      quiz.Question,
		Options:       quiz.Options,
		CorrectAnswer: quiz.CorrectAnswer,
		Explanation:   quiz.Explanation,
		Cached:        cached,
	}
}
