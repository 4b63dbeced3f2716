package usecase

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/ffmaxarena/arena-api/internal/domain/organizer"
	"github.com/ffmaxarena/arena-api/internal/domain/tournament"
	"github.com/jonboulle/clockwork"
	"github.com/sourcegraph/conc/pool"
)

type HomeStats struct {
	LiveTournaments  int
	Organizers       int
	PlayersServed    int
	TotalTournaments int
}

type HomeOverview struct {
	Stats    HomeStats
	Featured []tournament.Ranked
}

type HomeService struct {
	tournamentRepo tournament.Repository
	organizerRepo  organizer.Repository
	clock          clockwork.Clock
	location       *time.Location
}

func NewHomeService(
	tournamentRepo tournament.Repository,
	organizerRepo organizer.Repository,
	clock clockwork.Clock,
	location *time.Location,
) *HomeService {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if location == nil {
		location = time.Local
	}
	return &HomeService{
		tournamentRepo: tournamentRepo,
		organizerRepo:  organizerRepo,
		clock:          clock,
		location:       location,
	}
}

// Overview loads both collections concurrently and fails if either read fails.
func (s *HomeService) Overview(ctx context.Context) (HomeOverview, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.HomeService.Overview")
	defer span.End()

	var (
		tournaments []tournament.Tournament
		organizers  []organizer.Organizer
	)

	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		items, err := s.tournamentRepo.ListAll(ctx)
		if err != nil {
			return fmt.Errorf("list tournaments: %w", err)
		}
		tournaments = items
		return nil
	})
	p.Go(func(ctx context.Context) error {
		items, err := s.organizerRepo.ListAll(ctx)
		if err != nil {
			return fmt.Errorf("list organizers: %w", err)
		}
		organizers = items
		return nil
	})
	if err := p.Wait(); err != nil {
		return HomeOverview{}, err
	}

	now := s.clock.Now().In(s.location)
	stats := HomeStats{
		Organizers:       len(organizers),
		TotalTournaments: len(tournaments),
	}
	for _, item := range tournaments {
		if item.StatusAt(now).IsLive() {
			stats.LiveTournaments++
		}
	}
	for _, org := range organizers {
		stats.PlayersServed += org.PlayersServed
	}

	return HomeOverview{
		Stats:    stats,
		Featured: tournament.Featured(tournaments, now, tournament.FeaturedLimit),
	}, nil
}

// FormatNumber renders 1200 as "1.2k" and 2500000 as "2.5M".
func FormatNumber(n int) string {
	switch {
	case n >= 1_000_000:
		return strconv.FormatFloat(float64(n)/1_000_000, 'f', 1, 64) + "M"
	case n >= 1_000:
		return strconv.FormatFloat(float64(n)/1_000, 'f', 1, 64) + "k"
	default:
		return strconv.Itoa(n)
	}
}
