package repository

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jmoiron/sqlx"
	"github.com/portfolio/backend/internal/model"
)

// RecentLimit caps the number of rows returned by ListRecent.
const RecentLimit = 100

const insertSubmissionSQL = `INSERT INTO submissions (name, email, subject, message, user_agent, ip_address)
	VALUES (?, ?, ?, ?, ?, ?)
	RETURNING id`

var selectRecentSQL = `SELECT id, name, email, subject, message, created_at, read, COALESCE(ip_address, '') AS ip_address
	FROM submissions
	ORDER BY created_at DESC
	LIMIT ` + strconv.Itoa(RecentLimit)

const updateReadSQL = `UPDATE submissions SET read = ? WHERE id = ?`

// SQLSubmissionRepository stores submissions through database/sql. The same
// statements serve PostgreSQL (pgx) and SQLite; placeholders are rebound per driver.
type SQLSubmissionRepository struct {
	db *sqlx.DB
}

// NewSQLSubmissionRepository creates a SQLSubmissionRepository backed by db.
func NewSQLSubmissionRepository(db *sqlx.DB) *SQLSubmissionRepository {
	return &SQLSubmissionRepository{db: db}
}

var _ SubmissionRepository = (*SQLSubmissionRepository)(nil)

// Insert adds a new row and fills sub.ID from the RETURNING clause.
// read and created_at take their column defaults.
func (r *SQLSubmissionRepository) Insert(ctx context.Context, sub *model.Submission) error {
	stmt, err := r.db.PreparexContext(ctx, r.db.Rebind(insertSubmissionSQL))
	if err != nil {
		return fmt.Errorf("prepare insert submission: %w", err)
	}
	defer stmt.Close()

	err = stmt.QueryRowxContext(ctx,
		sub.Name, sub.Email, sub.Subject, sub.Message, sub.UserAgent, sub.IPAddress,
	).Scan(&sub.ID)
	if err != nil {
		return fmt.Errorf("insert submission: %w", err)
	}
	return nil
}

// ListRecent returns the newest submissions first.
func (r *SQLSubmissionRepository) ListRecent(ctx context.Context) ([]*model.Submission, error) {
	stmt, err := r.db.PreparexContext(ctx, selectRecentSQL)
	if err != nil {
		return nil, fmt.Errorf("prepare list submissions: %w", err)
	}
	defer stmt.Close()

	subs := []*model.Submission{}
	if err := stmt.SelectContext(ctx, &subs); err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	return subs, nil
}

// SetRead stores read as 1 or 0 on the row with the given id.
func (r *SQLSubmissionRepository) SetRead(ctx context.Context, id int64, read bool) error {
	flag := 0
	if read {
		flag = 1
	}
	if err := exec(ctx, r.db, updateReadSQL, flag, id); err != nil {
		return fmt.Errorf("update submission %d: %w", id, err)
	}
	return nil
}
