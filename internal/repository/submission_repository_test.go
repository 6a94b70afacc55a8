package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/portfolio/backend/internal/model"
)

func newMockDB(t *testing.T, driver string) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, driver), mock
}

func strPtr(s string) *string { return &s }

func TestSQLSubmissionRepository_Insert_SetsID(t *testing.T) {
	db, mock := newMockDB(t, DriverSQLite)
	repo := NewSQLSubmissionRepository(db)

	mock.ExpectPrepare("INSERT INTO submissions").
		ExpectQuery().
		WithArgs("John Doe", "john@x.com", nil, "hi", "Mozilla/5.0", "192.168.1.1").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	sub := &model.Submission{
		Name:      "John Doe",
		Email:     "john@x.com",
		Message:   "hi",
		UserAgent: "Mozilla/5.0",
		IPAddress: "192.168.1.1",
	}
	if err := repo.Insert(context.Background(), sub); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sub.ID != 7 {
		t.Errorf("expected ID=7, got %d", sub.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestSQLSubmissionRepository_Insert_BindsSubject(t *testing.T) {
	db, mock := newMockDB(t, DriverSQLite)
	repo := NewSQLSubmissionRepository(db)

	mock.ExpectPrepare("INSERT INTO submissions").
		ExpectQuery().
		WithArgs("Alice", "a@b.co", "Hello", "msg", "", "").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))

	sub := &model.Submission{Name: "Alice", Email: "a@b.co", Subject: strPtr("Hello"), Message: "msg"}
	if err := repo.Insert(context.Background(), sub); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestSQLSubmissionRepository_Insert_PostgresPlaceholders(t *testing.T) {
	db, mock := newMockDB(t, DriverPostgres)
	repo := NewSQLSubmissionRepository(db)

	mock.ExpectPrepare(regexp.QuoteMeta("VALUES ($1, $2, $3, $4, $5, $6)")).
		ExpectQuery().
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(3)))

	sub := &model.Submission{Name: "n", Email: "e@x.io", Message: "m"}
	if err := repo.Insert(context.Background(), sub); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestSQLSubmissionRepository_Insert_Error(t *testing.T) {
	db, mock := newMockDB(t, DriverSQLite)
	repo := NewSQLSubmissionRepository(db)

	mock.ExpectPrepare("INSERT INTO submissions").
		ExpectQuery().
		WillReturnError(sql.ErrConnDone)

	err := repo.Insert(context.Background(), &model.Submission{Name: "n", Email: "e@x.io", Message: "m"})
	if !errors.Is(err, sql.ErrConnDone) {
		t.Errorf("expected wrapped sql.ErrConnDone, got %v", err)
	}
}

func TestSQLSubmissionRepository_ListRecent(t *testing.T) {
	db, mock := newMockDB(t, DriverSQLite)
	repo := NewSQLSubmissionRepository(db)

	now := time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "name", "email", "subject", "message", "created_at", "read", "ip_address"}).
		AddRow(int64(2), "Jane", "jane@x.com", "Hi", "second", now, int64(1), "10.0.0.2").
		AddRow(int64(1), "John", "john@x.com", nil, "first", now.Add(-time.Hour), int64(0), "")
	mock.ExpectPrepare("SELECT id, name, email, subject, message, created_at, read").
		ExpectQuery().
		WillReturnRows(rows)

	subs, err := repo.ListRecent(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(subs) != 2 {
		t.Fatalf("expected 2 submissions, got %d", len(subs))
	}
	if subs[0].ID != 2 || !subs[0].Read || subs[0].Subject == nil || *subs[0].Subject != "Hi" {
		t.Errorf("unexpected first row: %+v", subs[0])
	}
	if subs[1].Subject != nil {
		t.Errorf("expected nil subject for NULL column, got %q", *subs[1].Subject)
	}
	if subs[1].Read {
		t.Error("expected read=false for 0")
	}
	if !subs[0].CreatedAt.Equal(now) {
		t.Errorf("expected created_at %v, got %v", now, subs[0].CreatedAt)
	}
}

func TestSQLSubmissionRepository_ListRecent_QueryShape(t *testing.T) {
	db, mock := newMockDB(t, DriverPostgres)
	repo := NewSQLSubmissionRepository(db)

	mock.ExpectPrepare(regexp.QuoteMeta("ORDER BY created_at DESC") + `\s+LIMIT 100`).
		ExpectQuery().
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	subs, err := repo.ListRecent(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if subs == nil || len(subs) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", subs)
	}
}

func TestSQLSubmissionRepository_ListRecent_Error(t *testing.T) {
	db, mock := newMockDB(t, DriverSQLite)
	repo := NewSQLSubmissionRepository(db)

	mock.ExpectPrepare("SELECT id").WillReturnError(errors.New("no such table"))

	if _, err := repo.ListRecent(context.Background()); err == nil {
		t.Error("expected error, got nil")
	}
}

func TestSQLSubmissionRepository_SetRead(t *testing.T) {
	tests := []struct {
		name string
		read bool
		flag int
	}{
		{"mark read", true, 1},
		{"mark unread", false, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			db, mock := newMockDB(t, DriverSQLite)
			repo := NewSQLSubmissionRepository(db)

			mock.ExpectPrepare(regexp.QuoteMeta("UPDATE submissions SET read = ? WHERE id = ?")).
				ExpectExec().
				WithArgs(tc.flag, int64(1)).
				WillReturnResult(sqlmock.NewResult(0, 1))

			if err := repo.SetRead(context.Background(), 1, tc.read); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Errorf("unmet expectations: %v", err)
			}
		})
	}
}

// TestSQLSubmissionRepository_SetRead_UnknownID verifies zero affected rows is not an error.
func TestSQLSubmissionRepository_SetRead_UnknownID(t *testing.T) {
	db, mock := newMockDB(t, DriverSQLite)
	repo := NewSQLSubmissionRepository(db)

	mock.ExpectPrepare("UPDATE submissions").
		ExpectExec().
		WithArgs(1, int64(999)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.SetRead(context.Background(), 999, true); err != nil {
		t.Errorf("expected no error for unknown id, got %v", err)
	}
}

func TestSQLSubmissionRepository_SQLiteRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	db, err := Open(ctx, DriverSQLite, ":memory:")
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	defer db.Close()

	if err := EnsureSchema(ctx, db); err != nil {
		t.Fatalf("EnsureSchema failed: %v", err)
	}
	// second run must be a no-op
	if err := EnsureSchema(ctx, db); err != nil {
		t.Fatalf("EnsureSchema (repeat) failed: %v", err)
	}

	repo := NewSQLSubmissionRepository(db)
	sub := &model.Submission{Name: "John Doe", Email: "john@x.com", Message: "hi"}
	if err := repo.Insert(ctx, sub); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if sub.ID == 0 {
		t.Fatal("expected ID to be set after Insert")
	}

	if err := repo.SetRead(ctx, sub.ID, true); err != nil {
		t.Fatalf("SetRead failed: %v", err)
	}

	subs, err := repo.ListRecent(ctx)
	if err != nil {
		t.Fatalf("ListRecent failed: %v", err)
	}
	if len(subs) != 1 {
		t.Fatalf("expected 1 submission, got %d", len(subs))
	}
	got := subs[0]
	if got.Email != "john@x.com" || got.Subject != nil || !got.Read {
		t.Errorf("unexpected row: %+v", got)
	}
	if got.CreatedAt.IsZero() {
		t.Error("expected created_at to be set by the database")
	}
}
