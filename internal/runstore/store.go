package runstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"demoreel/internal/config"
)

// Store manages run persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

const (
	sqliteBusyCode          = 5
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond
)

func ensureContext(ctx context.Context) context.Context {
	if ctx != nil {
		return ctx
	}
	return context.Background()
}

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code() == sqliteBusyCode {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

func retryOnBusy(ctx context.Context, op func() error) error {
	delay := busyRetryInitialBackoff
	var lastErr error
	for attempt := 0; attempt < busyRetryAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !isSQLiteBusy(lastErr) || attempt == busyRetryAttempts-1 {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		if next := delay * 2; next <= busyRetryMaxBackoff {
			delay = next
		}
	}
	return lastErr
}

func (s *Store) execWithRetry(ctx context.Context, query string, args ...any) (sql.Result, error) {
	ctx = ensureContext(ctx)
	var (
		res     sql.Result
		execErr error
	)
	if err := retryOnBusy(ctx, func() error {
		res, execErr = s.db.ExecContext(ctx, query, args...)
		return execErr
	}); err != nil {
		return nil, err
	}
	return res, nil
}

// Open initializes or connects to the run database.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := filepath.Join(cfg.Paths.WorkspaceDir, "runs.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// NewRun inserts a new pending run and returns it with its generated run id.
func (s *Store) NewRun(ctx context.Context, title, videoFile, template string) (*Run, error) {
	now := time.Now().UTC()
	timestamp := now.Format(time.RFC3339Nano)
	runID := uuid.NewString()

	res, err := s.execWithRetry(
		ctx,
		`INSERT INTO runs (
            run_id, title, status, template, video_file, created_at, updated_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		runID,
		nullableString(title),
		StatusPending,
		nullableString(template),
		nullableString(videoFile),
		timestamp,
		timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("insert run: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	return s.GetByID(ctx, id)
}

// GetByID fetches a run by row identifier.
func (s *Store) GetByID(ctx context.Context, id int64) (*Run, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	return run, nil
}

// GetByRunID fetches a run by its public identifier. Unique prefixes are
// accepted so CLI users can pass a shortened id.
func (s *Store) GetByRunID(ctx context.Context, runID string) (*Run, error) {
	trimmed := strings.TrimSpace(runID)
	if trimmed == "" {
		return nil, errors.New("run id is empty")
	}
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT `+runColumns+` FROM runs WHERE run_id LIKE ? ORDER BY created_at LIMIT 2`,
		trimmed+"%",
	)
	if err != nil {
		return nil, fmt.Errorf("find run: %w", err)
	}
	defer rows.Close()

	var matches []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		matches = append(matches, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	switch len(matches) {
	case 0:
		return nil, nil
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("run id %q is ambiguous", trimmed)
	}
}

// Latest returns the most recently created run, or nil when the store is empty.
func (s *Store) Latest(ctx context.Context) (*Run, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs ORDER BY created_at DESC, id DESC LIMIT 1`)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("latest run: %w", err)
	}
	return run, nil
}

// Update persists changes to an existing run.
func (s *Store) Update(ctx context.Context, run *Run) error {
	if run == nil {
		return errors.New("run is nil")
	}
	run.UpdatedAt = time.Now().UTC()
	ctx = ensureContext(ctx)
	if err := retryOnBusy(ctx, func() error {
		_, err := s.db.ExecContext(
			ctx,
			`UPDATE runs
             SET title = ?, status = ?, template = ?, video_file = ?, markers_file = ?,
                 request_file = ?, placement_json = ?, timemap_json = ?, captions_file = ?,
                 output_file = ?, error_message = ?, updated_at = ?
             WHERE id = ?`,
			nullableString(run.Title),
			run.Status,
			nullableString(run.Template),
			nullableString(run.VideoFile),
			nullableString(run.MarkersFile),
			nullableString(run.RequestFile),
			nullableString(run.PlacementJSON),
			nullableString(run.TimeMapJSON),
			nullableString(run.CaptionsFile),
			nullableString(run.OutputFile),
			nullableString(run.ErrorMessage),
			run.UpdatedAt.Format(time.RFC3339Nano),
			run.ID,
		)
		return err
	}); err != nil {
		return fmt.Errorf("update run: %w", err)
	}
	return nil
}

// MarkFailed records a failure message and flips the run to failed.
func (s *Store) MarkFailed(ctx context.Context, run *Run, cause error) error {
	if run == nil {
		return errors.New("run is nil")
	}
	run.Status = StatusFailed
	if cause != nil {
		run.ErrorMessage = cause.Error()
	}
	return s.Update(ctx, run)
}

// List returns runs filtered by status set (or all runs when no status is provided).
func (s *Store) List(ctx context.Context, statuses ...Status) ([]*Run, error) {
	var (
		rows *sql.Rows
		err  error
	)

	baseQuery := `SELECT ` + runColumns + ` FROM runs`
	orderClause := ` ORDER BY created_at`

	if len(statuses) == 0 {
		rows, err = s.db.QueryContext(ctx, baseQuery+orderClause)
	} else {
		placeholders := makePlaceholders(len(statuses))
		args := make([]any, len(statuses))
		for i, status := range statuses {
			args[i] = status
		}
		query := baseQuery + ` WHERE status IN (` + placeholders + `)` + orderClause
		rows, err = s.db.QueryContext(ctx, query, args...)
	}
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Remove deletes a run by row identifier.
func (s *Store) Remove(ctx context.Context, id int64) (bool, error) {
	res, err := s.execWithRetry(ctx, `DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete run: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

// Clear removes all runs.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.execWithRetry(ctx, `DELETE FROM runs`)
	if err != nil {
		return 0, fmt.Errorf("clear runs: %w", err)
	}
	return res.RowsAffected()
}

// ClearFailed removes only failed runs.
func (s *Store) ClearFailed(ctx context.Context) (int64, error) {
	res, err := s.execWithRetry(ctx, `DELETE FROM runs WHERE status = ?`, StatusFailed)
	if err != nil {
		return 0, fmt.Errorf("clear failed: %w", err)
	}
	return res.RowsAffected()
}

// Health aggregates run counts per lifecycle bucket.
func (s *Store) Health(ctx context.Context) (HealthSummary, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT status, COUNT(1) FROM runs GROUP BY status`)
	if err != nil {
		return HealthSummary{}, fmt.Errorf("health query: %w", err)
	}
	defer rows.Close()

	var summary HealthSummary
	for rows.Next() {
		var statusStr string
		var count int
		if err := rows.Scan(&statusStr, &count); err != nil {
			return HealthSummary{}, err
		}
		summary.Total += count
		switch Status(statusStr) {
		case StatusPending:
			summary.Pending += count
		case StatusCompleted:
			summary.Completed += count
		case StatusFailed:
			summary.Failed += count
		default:
			summary.Active += count
		}
	}
	return summary, rows.Err()
}
