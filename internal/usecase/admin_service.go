package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/ffmaxarena/arena-api/internal/domain/draft"
	"github.com/ffmaxarena/arena-api/internal/domain/media"
	"github.com/ffmaxarena/arena-api/internal/domain/organizer"
	"github.com/ffmaxarena/arena-api/internal/domain/tournament"
	"github.com/ffmaxarena/arena-api/internal/platform/logging"
	"github.com/sourcegraph/conc/pool"
)

// AdminSnapshot is the full admin view: tournaments by date ascending and
// organizers newest first.
type AdminSnapshot struct {
	Tournaments []tournament.Tournament
	Organizers  []organizer.Organizer
}

type AdminService struct {
	tournamentRepo tournament.Repository
	organizerRepo  organizer.Repository
	drafts         draft.Store
	logger         *logging.Logger
}

func NewAdminService(
	tournamentRepo tournament.Repository,
	organizerRepo organizer.Repository,
	drafts draft.Store,
	logger *logging.Logger,
) *AdminService {
	if logger == nil {
		logger = logging.Default()
	}
	return &AdminService{
		tournamentRepo: tournamentRepo,
		organizerRepo:  organizerRepo,
		drafts:         drafts,
		logger:         logger,
	}
}

// Snapshot re-reads both collections. Either failure fails the whole read.
func (s *AdminService) Snapshot(ctx context.Context) (AdminSnapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AdminService.Snapshot")
	defer span.End()

	var out AdminSnapshot
	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		items, err := s.tournamentRepo.ListAll(ctx)
		if err != nil {
			return fmt.Errorf("list tournaments: %w", err)
		}
		out.Tournaments = items
		return nil
	})
	p.Go(func(ctx context.Context) error {
		items, err := s.organizerRepo.ListAll(ctx)
		if err != nil {
			return fmt.Errorf("list organizers: %w", err)
		}
		out.Organizers = items
		return nil
	})
	if err := p.Wait(); err != nil {
		return AdminSnapshot{}, err
	}
	return out, nil
}

func (s *AdminService) CreateTournament(ctx context.Context, item tournament.Tournament) (AdminSnapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AdminService.CreateTournament")
	defer span.End()

	item.ID = 0
	item.Status = string(tournament.StateUpcoming)
	item.IsVerified = true
	item.BannerURL = ""
	if err := validateTournament(item); err != nil {
		return AdminSnapshot{}, err
	}

	created, err := s.tournamentRepo.Create(ctx, item)
	if err != nil {
		return AdminSnapshot{}, fmt.Errorf("create tournament: %w", err)
	}
	s.logger.InfoContext(ctx, "tournament created", "tournament_id", created.ID, "title", created.Title)

	s.clearDraft(ctx, draft.TournamentKey(0))
	return s.refetch(ctx)
}

func (s *AdminService) UpdateTournament(ctx context.Context, item tournament.Tournament) (AdminSnapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AdminService.UpdateTournament")
	defer span.End()

	if item.ID <= 0 {
		return AdminSnapshot{}, fmt.Errorf("%w: tournament id must be positive", ErrInvalidInput)
	}
	item.BannerURL = ""
	if err := validateTournament(item); err != nil {
		return AdminSnapshot{}, err
	}

	_, exists, err := s.tournamentRepo.Update(ctx, item)
	if err != nil {
		return AdminSnapshot{}, fmt.Errorf("update tournament: %w", err)
	}
	if !exists {
		return AdminSnapshot{}, fmt.Errorf("%w: tournament=%d", ErrNotFound, item.ID)
	}

	s.clearDraft(ctx, draft.TournamentKey(item.ID))
	return s.refetch(ctx)
}

func (s *AdminService) DeleteTournament(ctx context.Context, id int64, confirmed bool) (AdminSnapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AdminService.DeleteTournament")
	defer span.End()

	if err := checkDelete(id, confirmed); err != nil {
		return AdminSnapshot{}, err
	}

	deleted, err := s.tournamentRepo.Delete(ctx, id)
	if err != nil {
		return AdminSnapshot{}, fmt.Errorf("delete tournament: %w", err)
	}
	if !deleted {
		return AdminSnapshot{}, fmt.Errorf("%w: tournament=%d", ErrNotFound, id)
	}
	s.logger.InfoContext(ctx, "tournament deleted", "tournament_id", id)

	return s.refetch(ctx)
}

func (s *AdminService) CreateOrganizer(ctx context.Context, item organizer.Organizer) (AdminSnapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AdminService.CreateOrganizer")
	defer span.End()

	item.ID = 0
	item = prepareOrganizer(item)
	if err := item.Validate(); err != nil {
		return AdminSnapshot{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	created, err := s.organizerRepo.Create(ctx, item)
	if err != nil {
		return AdminSnapshot{}, fmt.Errorf("create organizer: %w", err)
	}
	s.logger.InfoContext(ctx, "organizer created", "organizer_id", created.ID, "name", created.Name)

	s.clearDraft(ctx, draft.OrganizerKey(0))
	return s.refetch(ctx)
}

func (s *AdminService) UpdateOrganizer(ctx context.Context, item organizer.Organizer) (AdminSnapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AdminService.UpdateOrganizer")
	defer span.End()

	if item.ID <= 0 {
		return AdminSnapshot{}, fmt.Errorf("%w: organizer id must be positive", ErrInvalidInput)
	}
	item = prepareOrganizer(item)
	if err := item.Validate(); err != nil {
		return AdminSnapshot{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	_, exists, err := s.organizerRepo.Update(ctx, item)
	if err != nil {
		return AdminSnapshot{}, fmt.Errorf("update organizer: %w", err)
	}
	if !exists {
		return AdminSnapshot{}, fmt.Errorf("%w: organizer=%d", ErrNotFound, item.ID)
	}

	s.clearDraft(ctx, draft.OrganizerKey(item.ID))
	return s.refetch(ctx)
}

func (s *AdminService) DeleteOrganizer(ctx context.Context, id int64, confirmed bool) (AdminSnapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AdminService.DeleteOrganizer")
	defer span.End()

	if err := checkDelete(id, confirmed); err != nil {
		return AdminSnapshot{}, err
	}

	deleted, err := s.organizerRepo.Delete(ctx, id)
	if err != nil {
		return AdminSnapshot{}, fmt.Errorf("delete organizer: %w", err)
	}
	if !deleted {
		return AdminSnapshot{}, fmt.Errorf("%w: organizer=%d", ErrNotFound, id)
	}
	s.logger.InfoContext(ctx, "organizer deleted", "organizer_id", id)

	return s.refetch(ctx)
}

// refetch runs after a committed write, so its failure is reported on its own.
func (s *AdminService) refetch(ctx context.Context) (AdminSnapshot, error) {
	snapshot, err := s.Snapshot(ctx)
	if err != nil {
		return AdminSnapshot{}, fmt.Errorf("refetch after write: %w", err)
	}
	return snapshot, nil
}

func (s *AdminService) clearDraft(ctx context.Context, key string) {
	if s.drafts == nil {
		return
	}
	if err := s.drafts.Delete(ctx, key); err != nil {
		s.logger.WarnContext(ctx, "clear admin draft failed", "draft_key", key, "error", err)
	}
}

func validateTournament(item tournament.Tournament) error {
	if err := item.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if !media.IsImageURL(strings.TrimSpace(item.PosterURL)) {
		return fmt.Errorf("%w: tournament poster url must be an http(s) URL or image data URI", ErrInvalidInput)
	}
	return nil
}

// prepareOrganizer applies the admin form rules: every saved organizer is
// verified and badges are never nil.
func prepareOrganizer(item organizer.Organizer) organizer.Organizer {
	item.Name = strings.TrimSpace(item.Name)
	item.ContactEmail = strings.TrimSpace(item.ContactEmail)
	item.IsVerified = true
	if item.Badges == nil {
		item.Badges = []string{}
	}
	return item
}

func checkDelete(id int64, confirmed bool) error {
	if id <= 0 {
		return fmt.Errorf("%w: id must be positive", ErrInvalidInput)
	}
	if !confirmed {
		return fmt.Errorf("%w: delete requires confirm=true", ErrInvalidInput)
	}
	return nil
}
