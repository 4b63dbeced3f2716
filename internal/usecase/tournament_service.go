package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ffmaxarena/arena-api/internal/domain/organizer"
	"github.com/ffmaxarena/arena-api/internal/domain/tournament"
	"github.com/jonboulle/clockwork"
	"go.opentelemetry.io/otel/attribute"
)

// TournamentView is a tournament with its status at read time.
type TournamentView struct {
	Tournament tournament.Tournament
	Status     tournament.Status
}

type TournamentListing struct {
	Items      []TournamentView
	Total      int
	Page       int
	PageSize   int
	TotalPages int
}

type TournamentDetail struct {
	Tournament tournament.Tournament
	Status     tournament.Status
	Countdown  tournament.Countdown
	// StartsAt is nil for TBA tournaments.
	StartsAt  *time.Time
	Organizer *organizer.Organizer
}

type TournamentService struct {
	tournamentRepo tournament.Repository
	organizerRepo  organizer.Repository
	clock          clockwork.Clock
	location       *time.Location
}

func NewTournamentService(
	tournamentRepo tournament.Repository,
	organizerRepo organizer.Repository,
	clock clockwork.Clock,
	location *time.Location,
) *TournamentService {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if location == nil {
		location = time.Local
	}
	return &TournamentService{
		tournamentRepo: tournamentRepo,
		organizerRepo:  organizerRepo,
		clock:          clock,
		location:       location,
	}
}

// Now is the service clock in the configured time zone.
func (s *TournamentService) Now() time.Time {
	return s.clock.Now().In(s.location)
}

func (s *TournamentService) List(ctx context.Context, query tournament.ListQuery) (TournamentListing, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.List")
	defer span.End()

	query = query.Normalize()
	page, err := s.tournamentRepo.Search(ctx, query)
	if err != nil {
		return TournamentListing{}, fmt.Errorf("search tournaments: %w", err)
	}

	now := s.Now()
	items := make([]TournamentView, 0, len(page.Items))
	for _, item := range page.Items {
		items = append(items, TournamentView{Tournament: item, Status: item.StatusAt(now)})
	}

	return TournamentListing{
		Items:      items,
		Total:      page.Total,
		Page:       query.Page,
		PageSize:   tournament.PageSize,
		TotalPages: page.TotalPages(),
	}, nil
}

// Featured ranks the full set in memory, live first then soonest start.
func (s *TournamentService) Featured(ctx context.Context) ([]tournament.Ranked, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.Featured")
	defer span.End()

	items, err := s.tournamentRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tournaments: %w", err)
	}

	return tournament.Featured(items, s.Now(), tournament.FeaturedLimit), nil
}

func (s *TournamentService) Get(ctx context.Context, id int64) (TournamentDetail, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.Get", attribute.Int64("tournament.id", id))
	defer span.End()

	item, err := s.lookup(ctx, id)
	if err != nil {
		return TournamentDetail{}, err
	}

	now := s.Now()
	detail := TournamentDetail{
		Tournament: item,
		Status:     item.StatusAt(now),
	}
	if start, ok := tournament.StartsAt(item.Date, item.Time, now.Location()); ok {
		detail.StartsAt = &start
		detail.Countdown = tournament.CountdownTo(start, now)
	}

	name := strings.TrimSpace(item.OrganizerName)
	if name != "" {
		org, exists, err := s.organizerRepo.GetByName(ctx, name)
		if err != nil {
			return TournamentDetail{}, fmt.Errorf("get organizer by name: %w", err)
		}
		if exists {
			detail.Organizer = &org
		}
	}

	return detail, nil
}

// Lookup returns the stored tournament without derived fields.
func (s *TournamentService) Lookup(ctx context.Context, id int64) (tournament.Tournament, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.Lookup")
	defer span.End()

	return s.lookup(ctx, id)
}

func (s *TournamentService) lookup(ctx context.Context, id int64) (tournament.Tournament, error) {
	if id <= 0 {
		return tournament.Tournament{}, fmt.Errorf("%w: tournament id must be positive", ErrInvalidInput)
	}

	item, exists, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		return tournament.Tournament{}, fmt.Errorf("get tournament: %w", err)
	}
	if !exists {
		return tournament.Tournament{}, fmt.Errorf("%w: tournament=%d", ErrNotFound, id)
	}
	return item, nil
}
