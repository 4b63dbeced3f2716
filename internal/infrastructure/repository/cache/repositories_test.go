package cache

import (
	"context"
	"errors"
	"testing"

	"github.com/ffmaxarena/arena-api/internal/domain/organizer"
	"github.com/ffmaxarena/arena-api/internal/domain/tournament"
	organizermock "github.com/ffmaxarena/arena-api/internal/mocks/domain/organizer"
	tournamentmock "github.com/ffmaxarena/arena-api/internal/mocks/domain/tournament"
	basecache "github.com/ffmaxarena/arena-api/internal/platform/cache"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestTournamentRepository_CachesReadsUntilWrite(t *testing.T) {
	ctx := context.Background()
	next := tournamentmock.NewRepository(t)
	repo := NewTournamentRepository(next, basecache.NewStore(0, clockwork.NewFakeClock()))

	seeded := []tournament.Tournament{{ID: 1, Title: "Alpha Cup"}}
	next.On("ListAll", mock.Anything).Return(seeded, nil).Twice()

	first, err := repo.ListAll(ctx)
	require.NoError(t, err)
	first[0].Title = "mutated by caller"

	second, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Alpha Cup", second[0].Title)

	created := tournament.Tournament{ID: 2, Title: "Beta Cup"}
	next.On("Create", mock.Anything, mock.AnythingOfType("tournament.Tournament")).Return(created, nil).Once()
	_, err = repo.Create(ctx, tournament.Tournament{Title: "Beta Cup"})
	require.NoError(t, err)

	_, err = repo.ListAll(ctx)
	require.NoError(t, err)
}

func TestTournamentRepository_WriteDuringReadRefetchesFreshList(t *testing.T) {
	ctx := context.Background()
	next := tournamentmock.NewRepository(t)
	repo := NewTournamentRepository(next, basecache.NewStore(0, clockwork.NewFakeClock()))

	started := make(chan struct{})
	release := make(chan struct{})
	created := tournament.Tournament{ID: 1, Title: "Alpha Cup"}

	next.On("ListAll", mock.Anything).
		Run(func(mock.Arguments) {
			close(started)
			<-release
		}).
		Return([]tournament.Tournament{}, nil).Once()
	next.On("Create", mock.Anything, mock.AnythingOfType("tournament.Tournament")).Return(created, nil).Once()
	next.On("ListAll", mock.Anything).Return([]tournament.Tournament{created}, nil).Once()

	publicRead := make(chan []tournament.Tournament, 1)
	go func() {
		items, _ := repo.ListAll(ctx)
		publicRead <- items
	}()
	<-started

	_, err := repo.Create(ctx, tournament.Tournament{Title: "Alpha Cup"})
	require.NoError(t, err)

	refetched, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, refetched, 1)

	close(release)
	assert.Empty(t, <-publicRead)

	again, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, again, 1)
}

func TestTournamentRepository_FailedWriteKeepsCache(t *testing.T) {
	ctx := context.Background()
	next := tournamentmock.NewRepository(t)
	repo := NewTournamentRepository(next, basecache.NewStore(0, clockwork.NewFakeClock()))

	next.On("GetByID", mock.Anything, int64(7)).Return(tournament.Tournament{ID: 7, Title: "Cached"}, true, nil).Once()
	next.On("Update", mock.Anything, mock.Anything).Return(tournament.Tournament{}, false, errors.New("db down")).Once()
	next.On("Delete", mock.Anything, int64(7)).Return(false, nil).Once()

	_, ok, err := repo.GetByID(ctx, 7)
	require.NoError(t, err)
	require.True(t, ok)

	_, _, err = repo.Update(ctx, tournament.Tournament{ID: 7, Title: "Changed"})
	require.Error(t, err)

	deleted, err := repo.Delete(ctx, 7)
	require.NoError(t, err)
	require.False(t, deleted)

	item, ok, err := repo.GetByID(ctx, 7)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Cached", item.Title)
}

func TestTournamentRepository_SearchKeyIncludesFilters(t *testing.T) {
	ctx := context.Background()
	next := tournamentmock.NewRepository(t)
	repo := NewTournamentRepository(next, basecache.NewStore(0, clockwork.NewFakeClock()))

	squad := tournament.ListQuery{GameMode: tournament.GameModeSquad, Page: 1}.Normalize()
	duo := tournament.ListQuery{GameMode: tournament.GameModeDuo, Page: 1}.Normalize()
	next.On("Search", mock.Anything, squad).Return(tournament.Page{Total: 3, Page: 1}, nil).Once()
	next.On("Search", mock.Anything, duo).Return(tournament.Page{Total: 1, Page: 1}, nil).Once()

	for i := 0; i < 2; i++ {
		page, err := repo.Search(ctx, tournament.ListQuery{GameMode: tournament.GameModeSquad})
		require.NoError(t, err)
		assert.Equal(t, 3, page.Total)
	}
	page, err := repo.Search(ctx, tournament.ListQuery{GameMode: tournament.GameModeDuo})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)
}

func TestOrganizerRepository_ErrorsAreNotCached(t *testing.T) {
	ctx := context.Background()
	next := organizermock.NewRepository(t)
	repo := NewOrganizerRepository(next, basecache.NewStore(0, clockwork.NewFakeClock()))

	next.On("GetByName", mock.Anything, "Zeta").Return(organizer.Organizer{}, false, errors.New("timeout")).Once()
	next.On("GetByName", mock.Anything, "Zeta").Return(organizer.Organizer{ID: 1, Name: "Zeta", Badges: []string{organizer.BadgeVerified}}, true, nil).Once()

	_, _, err := repo.GetByName(ctx, "Zeta")
	require.Error(t, err)

	item, ok, err := repo.GetByName(ctx, "Zeta")
	require.NoError(t, err)
	require.True(t, ok)
	item.Badges[0] = "mutated"

	again, _, err := repo.GetByName(ctx, "Zeta")
	require.NoError(t, err)
	assert.Equal(t, organizer.BadgeVerified, again.Badges[0])
}

func TestOrganizerRepository_UpdateInvalidates(t *testing.T) {
	ctx := context.Background()
	next := organizermock.NewRepository(t)
	repo := NewOrganizerRepository(next, basecache.NewStore(0, clockwork.NewFakeClock()))

	next.On("ListAll", mock.Anything).Return([]organizer.Organizer{{ID: 1, Name: "Old"}}, nil).Once()
	next.On("ListAll", mock.Anything).Return([]organizer.Organizer{{ID: 1, Name: "New"}}, nil).Once()
	next.On("Update", mock.Anything, mock.Anything).Return(organizer.Organizer{ID: 1, Name: "New"}, true, nil).Once()

	items, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Old", items[0].Name)

	_, ok, err := repo.Update(ctx, organizer.Organizer{ID: 1, Name: "New"})
	require.NoError(t, err)
	require.True(t, ok)

	items, err = repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, "New", items[0].Name)
}
