package repository

import (
	"context"

	"github.com/portfolio/backend/internal/model"
)

// DB is the connection liveness check used by the health endpoint.
type DB interface {
	PingContext(ctx context.Context) error
}

// SubmissionRepository persists contact form submissions.
type SubmissionRepository interface {
	// Insert stores sub and sets sub.ID from the database.
	Insert(ctx context.Context, sub *model.Submission) error
	// ListRecent returns at most RecentLimit submissions, newest first.
	ListRecent(ctx context.Context) ([]*model.Submission, error)
	// SetRead updates the read flag. Unknown ids are not an error.
	SetRead(ctx context.Context, id int64, read bool) error
}
