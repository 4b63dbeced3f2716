package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/ffmaxarena/arena-api/internal/domain/organizer"
	"github.com/ffmaxarena/arena-api/internal/domain/tournament"
	"github.com/jonboulle/clockwork"
)

// OrganizerProfile is the public organizer page. PlayersServed here is
// computed from completed tournaments; the stored counter is left as-is.
type OrganizerProfile struct {
	Organizer     organizer.Organizer
	Upcoming      []TournamentView
	Completed     []TournamentView
	PlayersServed int
}

type OrganizerService struct {
	organizerRepo  organizer.Repository
	tournamentRepo tournament.Repository
	clock          clockwork.Clock
	location       *time.Location
}

func NewOrganizerService(
	organizerRepo organizer.Repository,
	tournamentRepo tournament.Repository,
	clock clockwork.Clock,
	location *time.Location,
) *OrganizerService {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if location == nil {
		location = time.Local
	}
	return &OrganizerService{
		organizerRepo:  organizerRepo,
		tournamentRepo: tournamentRepo,
		clock:          clock,
		location:       location,
	}
}

func (s *OrganizerService) List(ctx context.Context) ([]organizer.Organizer, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.OrganizerService.List")
	defer span.End()

	items, err := s.organizerRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list organizers: %w", err)
	}
	return items, nil
}

func (s *OrganizerService) Get(ctx context.Context, id int64) (OrganizerProfile, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.OrganizerService.Get")
	defer span.End()

	if id <= 0 {
		return OrganizerProfile{}, fmt.Errorf("%w: organizer id must be positive", ErrInvalidInput)
	}

	org, exists, err := s.organizerRepo.GetByID(ctx, id)
	if err != nil {
		return OrganizerProfile{}, fmt.Errorf("get organizer: %w", err)
	}
	if !exists {
		return OrganizerProfile{}, fmt.Errorf("%w: organizer=%d", ErrNotFound, id)
	}

	items, err := s.tournamentRepo.ListByOrganizer(ctx, org.Name)
	if err != nil {
		return OrganizerProfile{}, fmt.Errorf("list organizer tournaments: %w", err)
	}

	now := s.clock.Now().In(s.location)
	profile := OrganizerProfile{
		Organizer: org,
		Upcoming:  make([]TournamentView, 0, len(items)),
		Completed: make([]TournamentView, 0, len(items)),
	}
	for _, item := range items {
		view := TournamentView{Tournament: item, Status: item.StatusAt(now)}
		if view.Status.IsCompleted() {
			profile.Completed = append(profile.Completed, view)
			profile.PlayersServed += tournament.ParsePlayerCount(item.MaxParticipants)
			continue
		}
		profile.Upcoming = append(profile.Upcoming, view)
	}

	sort.SliceStable(profile.Upcoming, func(i, j int) bool {
		return profile.Upcoming[i].Tournament.Date < profile.Upcoming[j].Tournament.Date
	})
	sort.SliceStable(profile.Completed, func(i, j int) bool {
		return profile.Completed[i].Tournament.Date > profile.Completed[j].Tournament.Date
	})

	return profile, nil
}
