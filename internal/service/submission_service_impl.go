package service

import (
	"context"
	"log/slog"

	"github.com/portfolio/backend/internal/metrics"
	"github.com/portfolio/backend/internal/model"
	"github.com/portfolio/backend/internal/repository"
)

// submissionServiceImpl is the production implementation of SubmissionService.
type submissionServiceImpl struct {
	repo     repository.SubmissionRepository
	notifier Notifier // nil disables notifications
	metrics  *metrics.Metrics
}

// NewSubmissionService creates a SubmissionService. notifier and m may be nil.
func NewSubmissionService(repo repository.SubmissionRepository, notifier Notifier, m *metrics.Metrics) SubmissionService {
	return &submissionServiceImpl{repo: repo, notifier: notifier, metrics: m}
}

// Submit runs validate -> persist -> notify. Persistence decides success.
func (s *submissionServiceImpl) Submit(ctx context.Context, in model.SubmissionInput, meta model.RequestMeta) (*model.Submission, error) {
	sub, err := normalizeSubmission(in)
	if err != nil {
		s.metrics.ObserveSubmission(metrics.ResultInvalid)
		return nil, err
	}
	sub.UserAgent = meta.UserAgent
	sub.IPAddress = meta.IPAddress

	if err := s.repo.Insert(ctx, sub); err != nil {
		s.metrics.ObserveSubmission(metrics.ResultFailed)
		return nil, &PersistenceError{Op: "insert submission", Err: err}
	}
	s.metrics.ObserveSubmission(metrics.ResultCreated)

	s.notify(ctx, sub)
	return sub, nil
}

// notify is best effort: the submission is already stored, so a relay
// failure is logged and dropped.
func (s *submissionServiceImpl) notify(ctx context.Context, sub *model.Submission) {
	if s.notifier == nil {
		s.metrics.ObserveNotification(metrics.ResultSkipped)
		return
	}
	// The client may disconnect once the row is saved; keep sending.
	ctx = context.WithoutCancel(ctx)
	if err := s.notifier.NotifySubmission(ctx, sub); err != nil {
		s.metrics.ObserveNotification(metrics.ResultFailed)
		slog.ErrorContext(ctx, "failed to send email notification",
			"submission_id", sub.ID,
			"error", &NotificationError{Err: err},
		)
		return
	}
	s.metrics.ObserveNotification(metrics.ResultSent)
}
