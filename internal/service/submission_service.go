package service

import (
	"context"

	"github.com/portfolio/backend/internal/model"
)

// SubmissionService runs the contact form intake pipeline.
type SubmissionService interface {
	// Submit validates in, stores it and attempts a notification.
	// Errors are *ValidationError or *PersistenceError; notification
	// failures are logged and never returned.
	Submit(ctx context.Context, in model.SubmissionInput, meta model.RequestMeta) (*model.Submission, error)
}

// Notifier delivers a notice about a stored submission.
type Notifier interface {
	NotifySubmission(ctx context.Context, sub *model.Submission) error
}
