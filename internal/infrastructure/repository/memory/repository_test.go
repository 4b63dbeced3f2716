package memory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/ffmaxarena/arena-api/internal/domain/organizer"
	"github.com/ffmaxarena/arena-api/internal/domain/tournament"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTournamentRepository_SearchPaginates(t *testing.T) {
	items := make([]tournament.Tournament, 0, 20)
	for i := 1; i <= 20; i++ {
		fee := "₹50"
		if i%2 == 0 {
			fee = "Free"
		}
		items = append(items, tournament.Tournament{
			ID:            int64(i),
			Title:         fmt.Sprintf("Cup %02d", i),
			OrganizerName: "Zeta Esports",
			GameMode:      string(tournament.GameModeSquad),
			EntryFee:      fee,
			Date:          fmt.Sprintf("2026-03-%02d", i),
			Time:          "7:00 PM",
		})
	}
	repo := NewTournamentRepository(items, clockwork.NewFakeClock())
	ctx := context.Background()

	first, err := repo.Search(ctx, tournament.ListQuery{})
	require.NoError(t, err)
	assert.Equal(t, 20, first.Total)
	assert.Equal(t, 1, first.Page)
	require.Len(t, first.Items, tournament.PageSize)
	assert.Equal(t, int64(20), first.Items[0].ID, "newest date first")

	last, err := repo.Search(ctx, tournament.ListQuery{Page: 3})
	require.NoError(t, err)
	require.Len(t, last.Items, 2)
	assert.Equal(t, 3, last.TotalPages())

	beyond, err := repo.Search(ctx, tournament.ListQuery{Page: 9})
	require.NoError(t, err)
	assert.Empty(t, beyond.Items)
	assert.Equal(t, 20, beyond.Total)

	free, err := repo.Search(ctx, tournament.ListQuery{EntryType: tournament.EntryTypeFree})
	require.NoError(t, err)
	assert.Equal(t, 10, free.Total)
}

func TestTournamentRepository_SearchHugePageIsEmpty(t *testing.T) {
	repo := NewTournamentRepository([]tournament.Tournament{
		{ID: 1, Title: "Cup", Date: "2026-03-01", Time: "7:00 PM"},
	}, clockwork.NewFakeClock())

	page, err := repo.Search(context.Background(), tournament.ListQuery{Page: 1024819115206086202})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)
	assert.Equal(t, tournament.MaxPage, page.Page)
	assert.Empty(t, page.Items)
}

func TestTournamentRepository_CRUD(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	repo := NewTournamentRepository([]tournament.Tournament{{ID: 5, Title: "Seeded", Date: "2026-03-10"}}, clock)
	ctx := context.Background()

	created, err := repo.Create(ctx, tournament.Tournament{Title: "New", OrganizerName: "Zeta", Date: "2026-03-02"})
	require.NoError(t, err)
	assert.Equal(t, int64(6), created.ID)
	assert.Equal(t, clock.Now().UTC(), created.CreatedAt)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, int64(6), all[0].ID, "date ascending")

	created.Title = "Renamed"
	updated, ok, err := repo.Update(ctx, created)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)

	_, ok, err = repo.Update(ctx, tournament.Tournament{ID: 99})
	require.NoError(t, err)
	assert.False(t, ok)

	byOrganizer, err := repo.ListByOrganizer(ctx, "Zeta")
	require.NoError(t, err)
	require.Len(t, byOrganizer, 1)

	deleted, err := repo.Delete(ctx, 6)
	require.NoError(t, err)
	assert.True(t, deleted)
	deleted, err = repo.Delete(ctx, 6)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestOrganizerRepository_OrderingAndIsolation(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	repo := NewOrganizerRepository([]organizer.Organizer{
		{ID: 1, Name: "Old", ContactEmail: "old@org.gg", CreatedAt: base, Badges: []string{organizer.BadgeVerified}},
		{ID: 2, Name: "New", ContactEmail: "new@org.gg", CreatedAt: base.Add(time.Hour)},
	}, clockwork.NewFakeClockAt(base.Add(2*time.Hour)))
	ctx := context.Background()

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "New", all[0].Name)

	all[1].Badges[0] = "mutated"
	again, ok, err := repo.GetByName(ctx, "Old")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, organizer.BadgeVerified, again.Badges[0])

	created, err := repo.Create(ctx, organizer.Organizer{Name: "Newest", ContactEmail: "n@org.gg"})
	require.NoError(t, err)
	all, err = repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, created.ID, all[0].ID)

	_, ok, err = repo.GetByName(ctx, "Missing")
	require.NoError(t, err)
	assert.False(t, ok)
}
