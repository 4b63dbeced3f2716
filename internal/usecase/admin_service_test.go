package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/ffmaxarena/arena-api/internal/domain/draft"
	"github.com/ffmaxarena/arena-api/internal/domain/organizer"
	"github.com/ffmaxarena/arena-api/internal/domain/tournament"
	draftmock "github.com/ffmaxarena/arena-api/internal/mocks/domain/draft"
	organizermock "github.com/ffmaxarena/arena-api/internal/mocks/domain/organizer"
	tournamentmock "github.com/ffmaxarena/arena-api/internal/mocks/domain/tournament"
	"github.com/ffmaxarena/arena-api/internal/platform/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type adminFixture struct {
	tournaments *tournamentmock.Repository
	organizers  *organizermock.Repository
	drafts      *draftmock.Store
	service     *AdminService
}

func newAdminFixture(t *testing.T) adminFixture {
	t.Helper()

	f := adminFixture{
		tournaments: tournamentmock.NewRepository(t),
		organizers:  organizermock.NewRepository(t),
		drafts:      draftmock.NewStore(t),
	}
	f.service = NewAdminService(f.tournaments, f.organizers, f.drafts, logging.NewNop())
	return f
}

func (f adminFixture) expectRefetch() {
	f.tournaments.On("ListAll", mock.Anything).Return([]tournament.Tournament{{ID: 1}, {ID: 2}}, nil).Once()
	f.organizers.On("ListAll", mock.Anything).Return([]organizer.Organizer{{ID: 5}}, nil).Once()
}

func validTournament() tournament.Tournament {
	return tournament.Tournament{
		Title:         "Booyah Weekly",
		OrganizerName: "Booyah Hub",
		Date:          "2026-04-01",
		Time:          "6:00 PM",
		PosterURL:     "https://cdn.test/poster.png",
		BannerURL:     "https://cdn.test/banner.png",
		Status:        "Completed",
	}
}

func TestAdminService_CreateTournament_AppliesDefaultsAndRefetches(t *testing.T) {
	t.Parallel()

	f := newAdminFixture(t)
	f.tournaments.
		On("Create", mock.Anything, mock.MatchedBy(func(item tournament.Tournament) bool {
			return item.Status == "Upcoming" && item.IsVerified && item.BannerURL == "" && item.ID == 0
		})).
		Return(tournament.Tournament{ID: 3, Title: "Booyah Weekly"}, nil).
		Once()
	f.drafts.On("Delete", mock.Anything, draft.TournamentKey(0)).Return(nil).Once()
	f.expectRefetch()

	item := validTournament()
	item.ID = 77
	snapshot, err := f.service.CreateTournament(context.Background(), item)
	require.NoError(t, err)
	assert.Len(t, snapshot.Tournaments, 2)
	assert.Len(t, snapshot.Organizers, 1)
}

func TestAdminService_CreateTournament_ValidationNeverTouchesStore(t *testing.T) {
	t.Parallel()

	f := newAdminFixture(t)

	item := validTournament()
	item.PosterURL = "javascript:alert(1)"
	_, err := f.service.CreateTournament(context.Background(), item)
	assert.True(t, errors.Is(err, ErrInvalidInput), "got %v", err)

	item = validTournament()
	item.Title = " "
	_, err = f.service.CreateTournament(context.Background(), item)
	assert.True(t, errors.Is(err, ErrInvalidInput), "got %v", err)
}

func TestAdminService_UpdateTournament_FailureKeepsDraft(t *testing.T) {
	t.Parallel()

	f := newAdminFixture(t)
	item := validTournament()
	item.ID = 4

	f.tournaments.On("Update", mock.Anything, mock.Anything).Return(tournament.Tournament{}, false, errors.New("write timeout")).Once()

	_, err := f.service.UpdateTournament(context.Background(), item)
	require.Error(t, err)
	// No Delete on the draft store and no refetch; the mocks fail on unexpected calls.
	f.drafts.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	f.tournaments.AssertNotCalled(t, "ListAll", mock.Anything)
}

func TestAdminService_UpdateTournament_NotFound(t *testing.T) {
	t.Parallel()

	f := newAdminFixture(t)
	item := validTournament()
	item.ID = 404

	f.tournaments.On("Update", mock.Anything, mock.Anything).Return(tournament.Tournament{}, false, nil).Once()

	_, err := f.service.UpdateTournament(context.Background(), item)
	assert.True(t, errors.Is(err, ErrNotFound), "got %v", err)
}

func TestAdminService_UpdateTournament_ClearsEditDraft(t *testing.T) {
	t.Parallel()

	f := newAdminFixture(t)
	item := validTournament()
	item.ID = 9

	f.tournaments.
		On("Update", mock.Anything, mock.MatchedBy(func(in tournament.Tournament) bool {
			return in.ID == 9 && in.BannerURL == "" && in.Status == "Completed"
		})).
		Return(item, true, nil).
		Once()
	f.drafts.On("Delete", mock.Anything, "adminTournamentForm_edit_9").Return(nil).Once()
	f.expectRefetch()

	_, err := f.service.UpdateTournament(context.Background(), item)
	require.NoError(t, err)
}

func TestAdminService_DeleteRequiresConfirmation(t *testing.T) {
	t.Parallel()

	f := newAdminFixture(t)

	_, err := f.service.DeleteTournament(context.Background(), 3, false)
	assert.True(t, errors.Is(err, ErrInvalidInput), "got %v", err)

	_, err = f.service.DeleteOrganizer(context.Background(), 3, false)
	assert.True(t, errors.Is(err, ErrInvalidInput), "got %v", err)
}

func TestAdminService_DeleteTournament(t *testing.T) {
	t.Parallel()

	f := newAdminFixture(t)
	f.tournaments.On("Delete", mock.Anything, int64(3)).Return(true, nil).Once()
	f.expectRefetch()

	_, err := f.service.DeleteTournament(context.Background(), 3, true)
	require.NoError(t, err)

	f.tournaments.On("Delete", mock.Anything, int64(8)).Return(false, nil).Once()
	_, err = f.service.DeleteTournament(context.Background(), 8, true)
	assert.True(t, errors.Is(err, ErrNotFound), "got %v", err)
}

func TestAdminService_CreateOrganizer_ForcesVerified(t *testing.T) {
	t.Parallel()

	f := newAdminFixture(t)
	f.organizers.
		On("Create", mock.Anything, mock.MatchedBy(func(item organizer.Organizer) bool {
			return item.IsVerified && item.Badges != nil && item.Name == "Zeta Esports"
		})).
		Return(organizer.Organizer{ID: 6, Name: "Zeta Esports"}, nil).
		Once()
	f.drafts.On("Delete", mock.Anything, draft.OrganizerKey(0)).Return(errors.New("redis gone")).Once()
	f.expectRefetch()

	_, err := f.service.CreateOrganizer(context.Background(), organizer.Organizer{
		Name:         " Zeta Esports ",
		ContactEmail: "ops@zeta.gg",
		Rating:       4.5,
	})
	require.NoError(t, err, "draft cleanup failure must not fail the save")
}

func TestAdminService_CreateOrganizer_Invalid(t *testing.T) {
	t.Parallel()

	f := newAdminFixture(t)

	_, err := f.service.CreateOrganizer(context.Background(), organizer.Organizer{
		Name:         "Zeta",
		ContactEmail: "ops@zeta.gg",
		Badges:       []string{"Gold Star"},
	})
	assert.True(t, errors.Is(err, ErrInvalidInput), "got %v", err)

	_, err = f.service.CreateOrganizer(context.Background(), organizer.Organizer{Name: "Zeta", ContactEmail: "not-an-email"})
	assert.True(t, errors.Is(err, ErrInvalidInput), "got %v", err)
}

func TestAdminService_Snapshot_FailsAsUnit(t *testing.T) {
	t.Parallel()

	f := newAdminFixture(t)
	f.tournaments.On("ListAll", mock.Anything).Return(nil, errors.New("boom")).Once()
	f.organizers.On("ListAll", mock.Anything).Return([]organizer.Organizer{{ID: 1}}, nil).Maybe()

	snapshot, err := f.service.Snapshot(context.Background())
	require.Error(t, err)
	assert.Empty(t, snapshot.Organizers)
}
