package service

import (
	"context"
	"errors"

	"github.com/EHWIYA/adsp-quiz-back/internal/domain"
	"github.com/EHWIYA/adsp-quiz-back/internal/logger"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// PendingPage is one page of runs awaiting review.
type PendingPage struct {
	Runs       []*domain.AutoRun
	Candidates map[int][]*domain.AutoCandidate
	Total      int
	Page       int
	Limit      int
}

// ListPending returns runs below the confidence threshold, newest first.
func (s *CoreContentService) ListPending(ctx context.Context, page, limit int) (*PendingPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	runs, total, err := s.runs.ListPending(ctx, page, limit)
	if err != nil {
		return nil, err
	}

	runIDs := make([]int, 0, len(runs))
	for _, run := range runs {
		runIDs = append(runIDs, run.ID)
	}

	candidates, err := s.runs.CandidatesByRunIDs(ctx, runIDs)
	if err != nil {
		return nil, err
	}

	return &PendingPage{
		Runs:       runs,
		Candidates: candidates,
		Total:      total,
		Page:       page,
		Limit:      limit,
	}, nil
}

// Approve confirms a run into the given category. Picking a category
// other than the automatic top pick records an override. Approving a run
// that already landed on the same category is a no-op.
func (s *CoreContentService) Approve(ctx context.Context, runID, subTopicID int, reason *string) (*domain.AutoRun, error) {
	run, err := s.runs.GetByID(ctx, runID)
	if err != nil {
		return nil, err
	}
	if run == nil {
		return nil, domain.ErrRunNotFound()
	}

	switch run.Status {
	case domain.RunStatusPending, domain.RunStatusApplied, domain.RunStatusOverridden:
	default:
		return nil, domain.ErrRunStatusInvalid("승인할 수 없는 상태입니다.")
	}

	target, err := s.categories.GetSubTopic(ctx, subTopicID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, domain.ErrCategoryNotFound()
	}

	alreadyFinal := run.FinalSubTopicID != nil && *run.FinalSubTopicID == subTopicID
	if alreadyFinal && run.Status != domain.RunStatusPending {
		return run, nil
	}

	subTopic, err := s.categories.AppendContent(ctx, subTopicID, run.RequestContent, run.SourceType)
	if err == nil && subTopic == nil {
		err = errors.New("approval target disappeared")
	}
	if err != nil {
		s.logger.Error("core content append failed on approval",
			logger.Int("run_id", runID),
			logger.Int("sub_topic_id", subTopicID),
			logger.Error(err))
		return nil, domain.ErrContentUpdateFailed()
	}

	status := domain.RunStatusApplied
	action := "approve"
	if run.FinalSubTopicID != nil && *run.FinalSubTopicID != subTopicID {
		status = domain.RunStatusOverridden
		action = "override"
	}
	if run.AutoSubTopicID == nil || *run.AutoSubTopicID != subTopicID {
		status = domain.RunStatusOverridden
		action = "override"
		if err := s.overrides.Create(ctx, &domain.AutoOverride{
			RunID:           runID,
			AutoSubTopicID:  run.AutoSubTopicID,
			FinalSubTopicID: subTopicID,
			Reason:          reason,
		}); err != nil {
			return nil, err
		}
	}

	updated, err := s.runs.Finalize(ctx, runID, &subTopicID, status, nil)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, domain.ErrRunNotFound()
	}

	if s.telemetry != nil {
		s.telemetry.RecordReview(ctx, action)
	}

	s.logger.Info("run reviewed",
		logger.Int("run_id", runID),
		logger.String("action", action),
		logger.Int("sub_topic_id", subTopicID))

	return updated, nil
}

// Reject discards a pending run. Nothing is appended anywhere and the
// final category stays empty.
func (s *CoreContentService) Reject(ctx context.Context, runID int, reason *string) (*domain.AutoRun, error) {
	run, err := s.runs.GetByID(ctx, runID)
	if err != nil {
		return nil, err
	}
	if run == nil {
		return nil, domain.ErrRunNotFound()
	}

	if run.Status != domain.RunStatusPending {
		return nil, domain.ErrRunStatusInvalid("거절할 수 없는 상태입니다.")
	}

	updated, err := s.runs.Finalize(ctx, runID, nil, domain.RunStatusRejected, reason)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, domain.ErrRunNotFound()
	}

	if s.telemetry != nil {
		s.telemetry.RecordReview(ctx, "reject")
	}

	s.logger.Info("run rejected", logger.Int("run_id", runID))

	return updated, nil
}
