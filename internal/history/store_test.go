package history

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("Close: %v", err)
		}
	})
	return store
}

func TestAppendAndGet(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	record, err := store.Append(ctx, Record{
		RunID:        "1f1e9f66-7f3a-4a3e-9a21-2f4f0a2f7c11",
		SubtitlePath: "/subs/episode.01.srt",
		VideoPath:    "/video/episode.01.mkv",
		Status:       "completed",
		Scale:        sql.NullFloat64{Float64: 1.0083, Valid: true},
		Offset:       sql.NullFloat64{Float64: 4.917, Valid: true},
		Attempts:     3,
		OutputPath:   "/subs/episode.01_synced.srt",
	})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if record.ID == 0 {
		t.Error("Append did not assign an ID")
	}
	if record.CreatedAt.IsZero() {
		t.Error("Append did not record a timestamp")
	}

	got, err := store.GetByID(ctx, record.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != "completed" || !got.Scale.Valid || got.Scale.Float64 != 1.0083 {
		t.Errorf("round trip mismatch: %+v", got)
	}
	if got.OutputPath != "/subs/episode.01_synced.srt" {
		t.Errorf("OutputPath = %q", got.OutputPath)
	}
}

func TestAppendFailedRunKeepsNullTransform(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	record, err := store.Append(ctx, Record{
		RunID:        "run-a",
		SubtitlePath: "a.srt",
		VideoPath:    "a.mkv",
		Status:       "failed",
		Attempts:     50,
		ErrorMessage: "no anchors confirmed",
	})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if record.Scale.Valid || record.Offset.Valid {
		t.Errorf("failed run stored a transform: %+v", record)
	}
	if record.ErrorMessage != "no anchors confirmed" {
		t.Errorf("ErrorMessage = %q", record.ErrorMessage)
	}
}

func TestListNewestFirstWithLimit(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"one", "two", "three"} {
		if _, err := store.Append(ctx, Record{
			RunID: "run-a", SubtitlePath: name + ".srt", VideoPath: name + ".mkv", Status: "completed",
		}); err != nil {
			t.Fatalf("Append %s: %v", name, err)
		}
	}

	records, err := store.List(ctx, 2)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("List returned %d records, want 2", len(records))
	}
	if records[0].SubtitlePath != "three.srt" || records[1].SubtitlePath != "two.srt" {
		t.Errorf("List order: %q, %q", records[0].SubtitlePath, records[1].SubtitlePath)
	}

	all, err := store.List(ctx, 0)
	if err != nil {
		t.Fatalf("List all: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("List(0) returned %d records, want 3", len(all))
	}
}

func TestListByRun(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for _, run := range []string{"run-a", "run-b", "run-a"} {
		if _, err := store.Append(ctx, Record{
			RunID: run, SubtitlePath: "s.srt", VideoPath: "v.mkv", Status: "completed",
		}); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	records, err := store.ListByRun(ctx, "run-a")
	if err != nil {
		t.Fatalf("ListByRun: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("ListByRun returned %d records, want 2", len(records))
	}
	if records[0].ID > records[1].ID {
		t.Error("ListByRun not in insertion order")
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "history.db")

	first, err := Open(path)
	if err != nil {
		t.Fatalf("first Open: %v", err)
	}
	if _, err := first.Append(context.Background(), Record{
		RunID: "run-a", SubtitlePath: "s.srt", VideoPath: "v.mkv", Status: "completed",
	}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	second, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer second.Close()

	records, err := second.List(context.Background(), 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("reopened store has %d records, want 1", len(records))
	}
}
