package service

import (
	"context"

	"github.com/portfolio/backend/internal/metrics"
	"github.com/portfolio/backend/internal/model"
	"github.com/portfolio/backend/internal/repository"
)

// SubmissionAdminService gives the site owner read access to submissions
// and lets them toggle the read flag. Callers authenticate before use.
type SubmissionAdminService interface {
	List(ctx context.Context) ([]*model.Submission, error)
	SetRead(ctx context.Context, update model.ReadUpdate) error
}

type submissionAdminServiceImpl struct {
	repo    repository.SubmissionRepository
	metrics *metrics.Metrics
}

// NewSubmissionAdminService creates a SubmissionAdminService backed by repo.
func NewSubmissionAdminService(repo repository.SubmissionRepository, m *metrics.Metrics) SubmissionAdminService {
	return &submissionAdminServiceImpl{repo: repo, metrics: m}
}

// List returns up to repository.RecentLimit submissions, newest first.
func (s *submissionAdminServiceImpl) List(ctx context.Context) ([]*model.Submission, error) {
	subs, err := s.repo.ListRecent(ctx)
	if err != nil {
		s.metrics.ObserveAdmin("list", metrics.ResultFailed)
		return nil, &PersistenceError{Op: "list submissions", Err: err}
	}
	if subs == nil {
		subs = []*model.Submission{}
	}
	s.metrics.ObserveAdmin("list", metrics.ResultOK)
	return subs, nil
}

// SetRead updates the read flag. A zero id is rejected; an id that matches
// no row succeeds silently.
func (s *submissionAdminServiceImpl) SetRead(ctx context.Context, update model.ReadUpdate) error {
	if update.ID == 0 {
		s.metrics.ObserveAdmin("update", metrics.ResultInvalid)
		return &ValidationError{Reason: ReasonMissingID}
	}
	if err := s.repo.SetRead(ctx, update.ID, update.Read); err != nil {
		s.metrics.ObserveAdmin("update", metrics.ResultFailed)
		return &PersistenceError{Op: "update submission", Err: err}
	}
	s.metrics.ObserveAdmin("update", metrics.ResultOK)
	return nil
}
