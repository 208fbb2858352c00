package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Pruner deletes audit entries created before a cutoff.
type Pruner interface {
	Prune(ctx context.Context, before time.Time) (int64, error)
}

// PruneTimeout bounds a single prune run.
const PruneTimeout = 30 * time.Second

// Start schedules pruneOnce at the given cron spec (e.g. "@hourly", "0 3 * * *").
// The returned func stops the scheduler and waits for a running prune to finish.
func Start(spec string, retention time.Duration, p Pruner, logger *slog.Logger) (func(), error) {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		pruneOnce(context.Background(), p, retention, time.Now, logger)
	})
	if err != nil {
		return nil, err
	}

	c.Start()
	logger.Info("audit pruning scheduled", "schedule", spec, "retention", retention.String())

	return func() {
		<-c.Stop().Done()
	}, nil
}

func pruneOnce(ctx context.Context, p Pruner, retention time.Duration, now func() time.Time, logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(ctx, PruneTimeout)
	defer cancel()

	cutoff := now().UTC().Add(-retention)
	n, err := p.Prune(ctx, cutoff)
	if err != nil {
		logger.Error("audit prune failed", "error", err)
		return
	}
	if n > 0 {
		logger.Info("audit entries pruned", "count", n, "before", cutoff.Format(time.RFC3339))
	}
}
