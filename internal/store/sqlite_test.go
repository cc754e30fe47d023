package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ykvlv/lesson-reminder/internal/domain"
)

func openTestJournal(t *testing.T) *SQLiteJournal {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data", "journal.db")
	j, err := OpenSQLite(context.Background(), path)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = j.Close() })
	return j
}

func TestSQLiteJournal_RecordAndList(t *testing.T) {
	ctx := context.Background()
	j := openTestJournal(t)

	jobID := uuid.New()
	base := time.Date(2025, time.November, 1, 13, 0, 0, 0, time.UTC)

	if err := j.Record(ctx, domain.Delivery{
		ChatID: 100, Kind: domain.KindStartup, Status: domain.StatusSent, At: base,
	}); err != nil {
		t.Fatalf("record startup: %v", err)
	}
	if err := j.Record(ctx, domain.Delivery{
		JobID: jobID, ChatID: -200, Kind: domain.KindReminder, Status: domain.StatusFailed,
		Error: "Forbidden: bot was kicked", At: base.Add(time.Minute),
	}); err != nil {
		t.Fatalf("record reminder: %v", err)
	}

	got, err := j.List(ctx, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("want 2 rows, got %d", len(got))
	}

	newest := got[0]
	if newest.JobID != jobID || newest.ChatID != -200 || newest.Kind != domain.KindReminder {
		t.Fatalf("unexpected newest row: %+v", newest)
	}
	if newest.Status != domain.StatusFailed || newest.Error == "" {
		t.Fatalf("want failed row with error, got %+v", newest)
	}
	if !newest.At.Equal(base.Add(time.Minute)) {
		t.Fatalf("want at %s, got %s", base.Add(time.Minute), newest.At)
	}
	if got[1].JobID != uuid.Nil {
		t.Fatalf("startup row must have no job id, got %s", got[1].JobID)
	}
}

func TestSQLiteJournal_ListLimit(t *testing.T) {
	ctx := context.Background()
	j := openTestJournal(t)

	for i := 0; i < 5; i++ {
		if err := j.Record(ctx, domain.Delivery{ChatID: int64(i + 1), Kind: domain.KindReminder, Status: domain.StatusSent}); err != nil {
			t.Fatalf("record: %v", err)
		}
	}
	got, err := j.List(ctx, 3)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("want 3 rows, got %d", len(got))
	}
}

func TestOpenSQLite_MigrationsAreRepeatable(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "journal.db")

	j, err := OpenSQLite(ctx, path)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	_ = j.Close()

	j, err = OpenSQLite(ctx, path)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	_ = j.Close()
}
