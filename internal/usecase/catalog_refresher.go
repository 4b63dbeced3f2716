package usecase

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ffmaxarena/arena-api/internal/domain/organizer"
	"github.com/ffmaxarena/arena-api/internal/domain/tournament"
	"github.com/ffmaxarena/arena-api/internal/platform/logging"
	"github.com/jonboulle/clockwork"
	"github.com/panjf2000/ants/v2"
)

// CacheInvalidator drops every cached entry of one collection.
type CacheInvalidator interface {
	Invalidate(ctx context.Context)
}

type CatalogRefreshResult struct {
	Tournaments int
	Organizers  int
	Warmed      int
	Failed      int
	DurationMs  int64
}

// CatalogRefresher reloads the shared tournament and organizer set and warms
// the detail entries of tournaments that are still upcoming or live.
type CatalogRefresher struct {
	tournamentRepo tournament.Repository
	organizerRepo  organizer.Repository
	invalidators   []CacheInvalidator
	workers        int
	clock          clockwork.Clock
	location       *time.Location
	logger         *logging.Logger
}

func NewCatalogRefresher(
	tournamentRepo tournament.Repository,
	organizerRepo organizer.Repository,
	invalidators []CacheInvalidator,
	workers int,
	clock clockwork.Clock,
	location *time.Location,
	logger *logging.Logger,
) *CatalogRefresher {
	if workers <= 0 {
		workers = 4
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if location == nil {
		location = time.Local
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &CatalogRefresher{
		tournamentRepo: tournamentRepo,
		organizerRepo:  organizerRepo,
		invalidators:   invalidators,
		workers:        workers,
		clock:          clock,
		location:       location,
		logger:         logger,
	}
}

func (r *CatalogRefresher) Refresh(ctx context.Context) (CatalogRefreshResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogRefresher.Refresh")
	defer span.End()

	started := r.clock.Now()
	for _, inv := range r.invalidators {
		inv.Invalidate(ctx)
	}

	tournaments, err := r.tournamentRepo.ListAll(ctx)
	if err != nil {
		return CatalogRefreshResult{}, fmt.Errorf("list tournaments: %w", err)
	}
	organizers, err := r.organizerRepo.ListAll(ctx)
	if err != nil {
		return CatalogRefreshResult{}, fmt.Errorf("list organizers: %w", err)
	}

	now := r.clock.Now().In(r.location)
	active := make([]tournament.Tournament, 0, len(tournaments))
	for _, item := range tournaments {
		if !item.StatusAt(now).IsCompleted() {
			active = append(active, item)
		}
	}

	result := CatalogRefreshResult{Tournaments: len(tournaments), Organizers: len(organizers)}
	if len(active) > 0 {
		warmed, failed, err := r.warm(ctx, active)
		if err != nil {
			return CatalogRefreshResult{}, err
		}
		result.Warmed = warmed
		result.Failed = failed
	}
	result.DurationMs = r.clock.Since(started).Milliseconds()

	r.logger.InfoContext(ctx, "catalog refreshed",
		"tournaments", result.Tournaments,
		"organizers", result.Organizers,
		"warmed", result.Warmed,
		"failed", result.Failed,
		"duration_ms", result.DurationMs,
	)
	return result, nil
}

func (r *CatalogRefresher) warm(ctx context.Context, items []tournament.Tournament) (int, int, error) {
	workers := r.workers
	if workers > len(items) {
		workers = len(items)
	}

	pool, err := ants.NewPool(workers)
	if err != nil {
		return 0, 0, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var (
		warmed atomic.Int32
		failed atomic.Int32
		wg     sync.WaitGroup
	)
	for _, item := range items {
		item := item
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			if err := r.warmOne(ctx, item); err != nil {
				failed.Add(1)
				r.logger.WarnContext(ctx, "warm tournament cache failed", "tournament_id", item.ID, "error", err)
				return
			}
			warmed.Add(1)
		}); err != nil {
			wg.Done()
			return 0, 0, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}
	wg.Wait()

	return int(warmed.Load()), int(failed.Load()), nil
}

func (r *CatalogRefresher) warmOne(ctx context.Context, item tournament.Tournament) error {
	if _, _, err := r.tournamentRepo.GetByID(ctx, item.ID); err != nil {
		return fmt.Errorf("get tournament: %w", err)
	}
	if item.OrganizerName == "" {
		return nil
	}
	if _, _, err := r.organizerRepo.GetByName(ctx, item.OrganizerName); err != nil {
		return fmt.Errorf("get organizer by name: %w", err)
	}
	return nil
}
