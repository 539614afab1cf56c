// Package api exposes the classification and quiz workflows over HTTP.
package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/EHWIYA/adsp-quiz-back/internal/domain"
	"github.com/EHWIYA/adsp-quiz-back/internal/logger"
	"github.com/EHWIYA/adsp-quiz-back/internal/service"
)

// Handler handles HTTP requests for the quiz backend API.
type Handler struct {
	coreContent *service.CoreContentService
	quiz        *service.QuizService
	logger      logger.Logger
}

// NewHandler creates a new API handler.
func NewHandler(coreContent *service.CoreContentService, quiz *service.QuizService, log logger.Logger) *Handler {
	return &Handler{
		coreContent: coreContent,
		quiz:        quiz,
		logger:      log,
	}
}

// respondError translates application errors into their HTTP shape.
// Anything that is not a domain error is a 500 with a generic body.
func (h *Handler) respondError(c *gin.Context, err error) {
	if appErr, ok := domain.AsError(err); ok {
		c.JSON(appErr.Status, errorBody{Code: appErr.Code, Detail: appErr.Detail})
		return
	}

	h.logger.Error("request failed",
		logger.String("path", c.FullPath()),
		logger.Error(err))
	c.JSON(http.StatusInternalServerError, errorBody{
		Code:   "INTERNAL_ERROR",
		Detail: "요청 처리 중 오류가 발생했습니다.",
	})
}

func intParam(c *gin.Context, name string) (int, bool) {
	value, err := strconv.Atoi(c.Param(name))
	if err != nil || value < 1 {
		c.JSON(http.StatusBadRequest, errorBody{
			Code:   "INVALID_PARAMETER",
			Detail: name + " 값이 올바르지 않습니다.",
		})
		return 0, false
	}
	return value, true
}

func intQuery(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

// AutoClassify handles POST /api/v1/core-content/auto.
func (h *Handler) AutoClassify(c *gin.Context) {
	var req AutoClassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, domain.ErrEmptyCoreContent())
		return
	}

	sourceType := req.SourceType
	if sourceType == "" {
		sourceType = domain.SourceTypeText
	}

	result, err := h.coreContent.ClassifyAndApply(c.Request.Context(), service.ClassifyInput{
		Content:    req.CoreContent,
		SourceType: sourceType,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toAutoClassifyResponse(result))
}

// ListPending handles GET /api/v1/core-content/pending.
func (h *Handler) ListPending(c *gin.Context) {
	page := intQuery(c, "page", 1)
	limit := intQuery(c, "limit", 0)

	pending, err := h.coreContent.ListPending(c.Request.Context(), page, limit)
	if err != nil {
		h.respondError(c, err)
		return
	}

	items := make([]PendingRunResponse, 0, len(pending.Runs))
	for _, run := range pending.Runs {
		items = append(items, PendingRunResponse{
			ID:             run.ID,
			RequestContent: run.RequestContent,
			TextPreview:    run.TextPreview,
			SourceType:     run.SourceType,
			AutoSubTopicID: run.AutoSubTopicID,
			AutoConfidence: run.AutoConfidence,
			Status:         run.Status,
			Candidates:     toCandidateResponses(pending.Candidates[run.ID]),
			CreatedAt:      run.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, PendingListResponse{
		Items: items,
		Total: pending.Total,
		Page:  pending.Page,
		Limit: pending.Limit,
	})
}

// Approve handles POST /api/v1/core-content/runs/:id/approve.
func (h *Handler) Approve(c *gin.Context) {
	runID, ok := intParam(c, "id")
	if !ok {
		return
	}

	var req ApproveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody{
			Code:   "INVALID_REQUEST",
			Detail: "sub_topic_id는 필수입니다.",
		})
		return
	}

	run, err := h.coreContent.Approve(c.Request.Context(), runID, req.SubTopicID, req.Reason)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toReviewResponse(run))
}

// Reject handles POST /api/v1/core-content/runs/:id/reject.
func (h *Handler) Reject(c *gin.Context) {
	runID, ok := intParam(c, "id")
	if !ok {
		return
	}

	var req RejectRequest
	_ = c.ShouldBindJSON(&req)

	run, err := h.coreContent.Reject(c.Request.Context(), runID, req.Reason)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toReviewResponse(run))
}

// GetSettings handles GET /api/v1/core-content/settings.
func (h *Handler) GetSettings(c *gin.Context) {
	settings, err := h.coreContent.GetSettings(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, settings)
}

// UpdateSettings handles PUT /api/v1/core-content/settings.
func (h *Handler) UpdateSettings(c *gin.Context) {
	var update domain.SettingsUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, errorBody{
			Code:   "INVALID_REQUEST",
			Detail: "설정 요청 본문이 올바르지 않습니다.",
		})
		return
	}

	settings, err := h.coreContent.UpdateSettings(c.Request.Context(), update)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, settings)
}

// ListRules handles GET /api/v1/core-content/rules.
func (h *Handler) ListRules(c *gin.Context) {
	rules, err := h.coreContent.ListRules(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"rules": rules, "total": len(rules)})
}

// UpsertRule handles PUT /api/v1/core-content/rules.
func (h *Handler) UpsertRule(c *gin.Context) {
	var req RuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody{
			Code:   "INVALID_REQUEST",
			Detail: "sub_topic_id는 필수입니다.",
		})
		return
	}

	weight := req.Weight
	if weight == 0 {
		weight = 1.0
	}
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	rule, err := h.coreContent.UpsertRule(c.Request.Context(), &domain.CategoryRule{
		SubTopicID: req.SubTopicID,
		Weight:     weight,
		Priority:   req.Priority,
		IsActive:   isActive,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, rule)
}

// GetCoreContent handles GET /api/v1/sub-topics/:id/core-content.
func (h *Handler) GetCoreContent(c *gin.Context) {
	subTopicID, ok := intParam(c, "id")
	if !ok {
		return
	}

	subTopic, entries, err := h.coreContent.GetCoreContent(c.Request.Context(), subTopicID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	entryResponses := make([]CoreContentEntryResponse, 0, len(entries))
	for _, entry := range entries {
		entryResponses = append(entryResponses, CoreContentEntryResponse{
			Content:    entry.Text,
			SourceType: entry.SourceType,
		})
	}

	c.JSON(http.StatusOK, CoreContentResponse{
		SubTopicID:  subTopic.ID,
		Name:        subTopic.Name,
		CoreContent: subTopic.CoreContent,
		SourceType:  subTopic.SourceType,
		Entries:     entryResponses,
		UpdatedAt:   subTopic.UpdatedAt,
	})
}

// RegisterCoreContent handles PUT /api/v1/sub-topics/:id/core-content.
func (h *Handler) RegisterCoreContent(c *gin.Context) {
	subTopicID, ok := intParam(c, "id")
	if !ok {
		return
	}

	var req RegisterCoreContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, domain.ErrEmptyCoreContent())
		return
	}

	sourceType := req.SourceType
	if sourceType == "" {
		sourceType = domain.SourceTypeText
	}

	subTopic, err := h.coreContent.RegisterCoreContent(c.Request.Context(), service.RegisterInput{
		SubTopicID:  subTopicID,
		MainTopicID: req.MainTopicID,
		Content:     req.CoreContent,
		SourceType:  sourceType,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sub_topic_id": subTopic.ID,
		"updated_at":   subTopic.UpdatedAt,
	})
}

// ListSubTopics handles GET /api/v1/main-topics/:id/sub-topics.
func (h *Handler) ListSubTopics(c *gin.Context) {
	mainTopicID, ok := intParam(c, "id")
	if !ok {
		return
	}

	subTopics, err := h.coreContent.ListSubTopics(c.Request.Context(), mainTopicID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"sub_topics": subTopics, "total": len(subTopics)})
}

// HealthCheck handles GET /health.
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "adsp-quiz-back",
	})
}

// ReadyCheck handles GET /ready.
func (h *Handler) ReadyCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
