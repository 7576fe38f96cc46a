package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"
)

// Record is one sync run outcome. Scale and Offset are only set for
// completed runs; ErrorMessage only for failed ones.
type Record struct {
	ID           int64
	RunID        string
	SubtitlePath string
	VideoPath    string
	Status       string
	Scale        sql.NullFloat64
	Offset       sql.NullFloat64
	Attempts     int
	OutputPath   string
	ErrorMessage string
	CreatedAt    time.Time
}

// Store manages history persistence backed by SQLite. Appends take a file
// lock so concurrent subsync processes sharing the database serialize their
// writes.
type Store struct {
	db   *sql.DB
	path string
	lock *flock.Flock
}

// Open initializes or connects to the history database at path and applies
// migrations.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{
		db:   db,
		path: path,
		lock: flock.New(path + ".lock"),
	}
	if err := store.applyMigrations(context.Background()); err != nil {
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

// Append inserts a record and returns it with ID and CreatedAt filled in.
func (s *Store) Append(ctx context.Context, record Record) (*Record, error) {
	if err := s.lock.Lock(); err != nil {
		return nil, fmt.Errorf("acquire history lock: %w", err)
	}
	defer func() {
		_ = s.lock.Unlock()
	}()

	now := time.Now().UTC()
	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO sync_runs (
            run_id, subtitle_path, video_path, status, scale, offset,
            attempts, output_path, error_message, created_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.RunID,
		record.SubtitlePath,
		record.VideoPath,
		record.Status,
		record.Scale,
		record.Offset,
		record.Attempts,
		nullableString(record.OutputPath),
		nullableString(record.ErrorMessage),
		now.Format(time.RFC3339Nano),
	)
	if err != nil {
		return nil, fmt.Errorf("insert sync run: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(ctx, id)
}

// GetByID fetches one record.
func (s *Store) GetByID(ctx context.Context, id int64) (*Record, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+" FROM sync_runs WHERE id = ?", id)
	record, err := scanRecord(row)
	if err != nil {
		return nil, fmt.Errorf("get sync run %d: %w", id, err)
	}
	return record, nil
}

// List returns the most recent records, newest first. A non-positive limit
// returns everything.
func (s *Store) List(ctx context.Context, limit int) ([]Record, error) {
	query := selectColumns + " FROM sync_runs ORDER BY id DESC"
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	return s.queryRecords(ctx, query, args...)
}

// ListByRun returns every record from one batch run, in insertion order.
func (s *Store) ListByRun(ctx context.Context, runID string) ([]Record, error) {
	return s.queryRecords(ctx, selectColumns+" FROM sync_runs WHERE run_id = ? ORDER BY id ASC", runID)
}

const selectColumns = `SELECT id, run_id, subtitle_path, video_path, status,
    scale, offset, attempts, output_path, error_message, created_at`

func (s *Store) queryRecords(ctx context.Context, query string, args ...any) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query sync runs: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sync run: %w", err)
		}
		records = append(records, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sync runs: %w", err)
	}
	return records, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*Record, error) {
	var record Record
	var output, message sql.NullString
	var createdAt string
	if err := row.Scan(
		&record.ID,
		&record.RunID,
		&record.SubtitlePath,
		&record.VideoPath,
		&record.Status,
		&record.Scale,
		&record.Offset,
		&record.Attempts,
		&output,
		&message,
		&createdAt,
	); err != nil {
		return nil, err
	}
	record.OutputPath = output.String
	record.ErrorMessage = message.String
	if parsed, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		record.CreatedAt = parsed
	}
	return &record, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
