package scheduler

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"
)

type fakePruner struct {
	before time.Time
	n      int64
	err    error
}

func (f *fakePruner) Prune(ctx context.Context, before time.Time) (int64, error) {
	f.before = before
	return f.n, f.err
}

func testLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, nil))
}

func TestPruneOnce_Cutoff(t *testing.T) {
	var buf bytes.Buffer
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	p := &fakePruner{n: 3}

	pruneOnce(context.Background(), p, 24*time.Hour, func() time.Time { return now }, testLogger(&buf))

	if want := now.Add(-24 * time.Hour); !p.before.Equal(want) {
		t.Errorf("cutoff: got %v, want %v", p.before, want)
	}
	if !strings.Contains(buf.String(), "count=3") {
		t.Errorf("expected prune count in log, got: %s", buf.String())
	}
}

func TestPruneOnce_Error(t *testing.T) {
	var buf bytes.Buffer
	p := &fakePruner{err: errors.New("boom")}

	pruneOnce(context.Background(), p, time.Hour, time.Now, testLogger(&buf))

	if !strings.Contains(buf.String(), "audit prune failed") {
		t.Errorf("expected failure log, got: %s", buf.String())
	}
}

func TestStart_InvalidSpec(t *testing.T) {
	var buf bytes.Buffer
	if _, err := Start("not a schedule", time.Hour, &fakePruner{}, testLogger(&buf)); err == nil {
		t.Fatal("expected error for invalid cron spec")
	}
}

func TestStart_Stop(t *testing.T) {
	var buf bytes.Buffer
	stop, err := Start("@hourly", time.Hour, &fakePruner{}, testLogger(&buf))
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	stop()
}
