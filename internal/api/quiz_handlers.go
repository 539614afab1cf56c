package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/EHWIYA/adsp-quiz-back/internal/service"
)

// GenerateQuiz handles POST /api/v1/quiz/generate.
func (h *Handler) GenerateQuiz(c *gin.Context) {
	var req GenerateQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody{
			Code:   "INVALID_REQUEST",
			Detail: "source_type과 content는 필수입니다.",
		})
		return
	}

	quiz, cached, err := h.quiz.Generate(c.Request.Context(), service.GenerateInput{
		SourceType: req.SourceType,
		Content:    req.Content,
		SubjectID:  req.SubjectID,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toQuizResponse(quiz, cached))
}

// GenerateStudyQuiz handles POST /api/v1/quiz/study.
func (h *Handler) GenerateStudyQuiz(c *gin.Context) {
	var req StudyQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody{
			Code:   "INVALID_REQUEST",
			Detail: "sub_topic_id는 필수입니다.",
		})
		return
	}

	quizzes, err := h.quiz.GenerateStudy(c.Request.Context(), req.SubTopicID, req.Count)
	if err != nil {
		h.respondError(c, err)
		return
	}

	responses := make([]QuizResponse, 0, len(quizzes))
	for _, quiz := range quizzes {
		responses = append(responses, toQuizResponse(quiz, false))
	}

	c.JSON(http.StatusOK, StudyQuizResponse{
		Quizzes: responses,
		Total:   len(responses),
	})
}

// GetQuiz handles GET /api/v1/quiz/:id.
func (h *Handler) GetQuiz(c *gin.Context) {
	quizID, ok := intParam(c, "id")
	if !ok {
		return
	}

	quiz, err := h.quiz.GetQuiz(c.Request.Context(), quizID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toQuizResponse(quiz, false))
}

// ListSubjects handles GET /api/v1/subjects.
func (h *Handler) ListSubjects(c *gin.Context) {
	subjects, err := h.quiz.ListSubjects(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"subjects": subjects, "total": len(subjects)})
}

// SubmitAnswer handles POST /api/v1/exam/answers.
func (h *Handler) SubmitAnswer(c *gin.Context) {
	var req SubmitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody{
			Code:   "INVALID_REQUEST",
			Detail: "quiz_id는 필수입니다.",
		})
		return
	}

	result, err := h.quiz.SubmitAnswer(c.Request.Context(), service.SubmitAnswerInput{
		QuizID:        req.QuizID,
		UserAnswer:    req.UserAnswer,
		ExamSessionID: req.ExamSessionID,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SubmitAnswerResponse{
		RecordID:      result.Record.ID,
		ExamSessionID: result.Record.ExamSessionID,
		IsCorrect:     result.Record.IsCorrect,
		CorrectAnswer: result.Quiz.CorrectAnswer,
		Explanation:   result.Quiz.Explanation,
	})
}

// GetExamResults handles GET /api/v1/exam/results/:session_id.
func (h *Handler) GetExamResults(c *gin.Context) {
	sessionID := c.Param("session_id")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, errorBody{
			Code:   "INVALID_PARAMETER",
			Detail: "session_id 값이 올바르지 않습니다.",
		})
		return
	}

	summary, err := h.quiz.ExamResults(c.Request.Context(), sessionID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ExamResultResponse{
		ExamSessionID: summary.ExamSessionID,
		Total:         summary.Total,
		Correct:       summary.Correct,
		Score:         summary.Score,
	})
}

// SaveWrongAnswer handles POST /api/v1/wrong-answers.
func (h *Handler) SaveWrongAnswer(c *gin.Context) {
	var req SaveWrongAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody{
			Code:   "INVALID_REQUEST",
			Detail: "quiz_id와 selected_answer는 필수입니다.",
		})
		return
	}

	saved, err := h.quiz.SaveWrongAnswer(c.Request.Context(), req.QuizID, *req.SelectedAnswer)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, saved)
}

// ListWrongAnswers handles GET /api/v1/wrong-answers.
func (h *Handler) ListWrongAnswers(c *gin.Context) {
	page := intQuery(c, "page", 1)
	limit := intQuery(c, "limit", 0)

	answers, total, page, limit, err := h.quiz.ListWrongAnswers(c.Request.Context(), page, limit)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, WrongAnswerListResponse{
		Items: answers,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// DeleteWrongAnswer handles DELETE /api/v1/wrong-answers/:quiz_id.
func (h *Handler) DeleteWrongAnswer(c *gin.Context) {
	quizID, ok := intParam(c, "quiz_id")
	if !ok {
		return
	}

	if err := h.quiz.DeleteWrongAnswer(c.Request.Context(), quizID); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
