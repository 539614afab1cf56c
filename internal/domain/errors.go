package domain

import (
	"errors"
	"net/http"
)

// Error is an application-level error carrying a stable machine code and
// the HTTP status the boundary layer should translate it to.
type Error struct {
	Code   string
	Detail string
	Status int
}

func (e *Error) Error() string {
	return e.Detail
}

// AsError unwraps err into a *Error if one is in the chain.
func AsError(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// Client input errors (400-class).

func ErrEmptyCoreContent() *Error {
	return &Error{Code: "EMPTY_CORE_CONTENT", Detail: "core_content는 비어있을 수 없습니다.", Status: http.StatusBadRequest}
}

func ErrInvalidSourceType() *Error {
	return &Error{Code: "INVALID_SOURCE_TYPE", Detail: "source_type은 'text' 또는 'youtube_url'이어야 합니다.", Status: http.StatusBadRequest}
}

// ErrInvalidQuizSourceType covers the quiz endpoints, which accept "url"
// rather than "youtube_url".
func ErrInvalidQuizSourceType() *Error {
	return &Error{Code: "INVALID_SOURCE_TYPE", Detail: "source_type은 'text' 또는 'url'이어야 합니다.", Status: http.StatusBadRequest}
}

func ErrEmptyClassificationText() *Error {
	return &Error{Code: "EMPTY_CLASSIFICATION_TEXT", Detail: "분류를 위한 텍스트가 비어있습니다.", Status: http.StatusBadRequest}
}

func ErrInvalidYoutubeURL(detail string) *Error {
	return &Error{Code: "INVALID_YOUTUBE_URL", Detail: detail, Status: http.StatusBadRequest}
}

func ErrTranscriptNotFound(detail string) *Error {
	return &Error{Code: "TRANSCRIPT_NOT_FOUND", Detail: detail, Status: http.StatusBadRequest}
}

func ErrInvalidStrategy() *Error {
	return &Error{Code: "INVALID_STRATEGY", Detail: "strategy는 hybrid, similarity_only, keyword_only 중 하나여야 합니다.", Status: http.StatusBadRequest}
}

// ErrSubTopicNotFound is raised for a rule update referencing a missing
// sub topic.
func ErrSubTopicNotFound() *Error {
	return &Error{Code: "SUB_TOPIC_NOT_FOUND", Detail: "세부항목을 찾을 수 없습니다.", Status: http.StatusBadRequest}
}

func ErrRunStatusInvalid(detail string) *Error {
	return &Error{Code: "RUN_STATUS_INVALID", Detail: detail, Status: http.StatusBadRequest}
}

func ErrInvalidCategory() *Error {
	return &Error{Code: "INVALID_CATEGORY", Detail: "세부항목이 해당 주요 항목에 속하지 않습니다.", Status: http.StatusBadRequest}
}

// Not-found errors (404-class).

func ErrRunNotFound() *Error {
	return &Error{Code: "RUN_NOT_FOUND", Detail: "자동 분류 이력이 존재하지 않습니다.", Status: http.StatusNotFound}
}

// ErrCategoryNotFound is raised when an approval targets a missing
// sub topic.
func ErrCategoryNotFound() *Error {
	return &Error{Code: "CATEGORY_NOT_FOUND", Detail: "세부항목을 찾을 수 없습니다.", Status: http.StatusNotFound}
}

func ErrNotFound(detail string) *Error {
	return &Error{Code: "NOT_FOUND", Detail: detail, Status: http.StatusNotFound}
}

// Conflict errors (409-class).

func ErrAlreadyExists() *Error {
	return &Error{Code: "ALREADY_EXISTS", Detail: "이미 핵심 정보가 등록되어 있습니다.", Status: http.StatusConflict}
}

// Server/data errors (500-class).

func ErrCategoryDataUnavailable() *Error {
	return &Error{Code: "CATEGORY_DATA_NOT_FOUND", Detail: "분류 가능한 카테고리가 없습니다.", Status: http.StatusInternalServerError}
}

func ErrContentUpdateFailed() *Error {
	return &Error{Code: "CORE_CONTENT_UPDATE_FAILED", Detail: "핵심 정보 저장에 실패했습니다.", Status: http.StatusInternalServerError}
}

func ErrAIOverloaded() *Error {
	return &Error{Code: "AI_SERVICE_OVERLOADED", Detail: "퀴즈 생성 서비스가 일시적으로 과부하 상태입니다.", Status: http.StatusServiceUnavailable}
}
