package app

import (
	"context"
	"fmt"
	"time"

	"github.com/ffmaxarena/arena-api/internal/platform/logging"
	"github.com/ffmaxarena/arena-api/internal/usecase"
	"github.com/go-co-op/gocron/v2"
	"github.com/jonboulle/clockwork"
)

const (
	catalogRefreshJob = "catalog-refresh"
	refreshTimeout    = time.Minute
)

// newCatalogScheduler runs the catalog refresh once at start and then every
// interval. Overlapping runs are skipped.
func newCatalogScheduler(
	ctx context.Context,
	clock clockwork.Clock,
	interval time.Duration,
	refresher *usecase.CatalogRefresher,
	logger *logging.Logger,
) (gocron.Scheduler, error) {
	scheduler, err := gocron.NewScheduler(
		gocron.WithClock(clock),
		gocron.WithLocation(time.UTC),
	)
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}

	// The job must outlive the wiring context but not its values.
	base := context.WithoutCancel(ctx)
	_, err = scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			runCtx, cancel := context.WithTimeout(base, refreshTimeout)
			defer cancel()
			if _, err := refresher.Refresh(runCtx); err != nil {
				logger.WarnContext(runCtx, "catalog refresh failed", "error", err)
			}
		}),
		gocron.WithName(catalogRefreshJob),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		_ = scheduler.Shutdown()
		return nil, fmt.Errorf("schedule %s: %w", catalogRefreshJob, err)
	}

	return scheduler, nil
}
