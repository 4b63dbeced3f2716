package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/ffmaxarena/arena-api/internal/domain/tournament"
	"github.com/jonboulle/clockwork"
)

type TournamentRepository struct {
	mu     sync.RWMutex
	clock  clockwork.Clock
	items  map[int64]tournament.Tournament
	nextID int64
}

func NewTournamentRepository(items []tournament.Tournament, clock clockwork.Clock) *TournamentRepository {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	r := &TournamentRepository{
		clock: clock,
		items: make(map[int64]tournament.Tournament, len(items)),
	}
	for _, item := range items {
		if item.ID <= 0 {
			item.ID = r.nextID + 1
		}
		if item.ID > r.nextID {
			r.nextID = item.ID
		}
		r.items[item.ID] = item
	}
	return r
}

func (r *TournamentRepository) Search(_ context.Context, query tournament.ListQuery) (tournament.Page, error) {
	query = query.Normalize()

	r.mu.RLock()
	matched := make([]tournament.Tournament, 0, len(r.items))
	for _, item := range r.items {
		if query.Matches(item) {
			matched = append(matched, item)
		}
	}
	r.mu.RUnlock()

	sortByID(matched)
	tournament.SortForListing(matched)

	page := tournament.Page{Total: len(matched), Page: query.Page}
	start := query.Offset()
	if start >= len(matched) {
		page.Items = []tournament.Tournament{}
		return page, nil
	}
	end := start + tournament.PageSize
	if end > len(matched) {
		end = len(matched)
	}
	page.Items = append([]tournament.Tournament(nil), matched[start:end]...)
	return page, nil
}

func (r *TournamentRepository) ListAll(_ context.Context) ([]tournament.Tournament, error) {
	r.mu.RLock()
	out := make([]tournament.Tournament, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item)
	}
	r.mu.RUnlock()

	sortByDateAsc(out)
	return out, nil
}

func (r *TournamentRepository) ListByOrganizer(_ context.Context, organizerName string) ([]tournament.Tournament, error) {
	r.mu.RLock()
	out := make([]tournament.Tournament, 0)
	for _, item := range r.items {
		if item.OrganizerName == organizerName {
			out = append(out, item)
		}
	}
	r.mu.RUnlock()

	sortByDateAsc(out)
	return out, nil
}

func (r *TournamentRepository) GetByID(_ context.Context, id int64) (tournament.Tournament, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	return item, ok, nil
}

func (r *TournamentRepository) Create(_ context.Context, item tournament.Tournament) (tournament.Tournament, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	item.ID = r.nextID
	item.CreatedAt = r.clock.Now().UTC()
	r.items[item.ID] = item
	return item, nil
}

func (r *TournamentRepository) Update(_ context.Context, item tournament.Tournament) (tournament.Tournament, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.items[item.ID]
	if !ok {
		return tournament.Tournament{}, false, nil
	}
	item.CreatedAt = existing.CreatedAt
	r.items[item.ID] = item
	return item, true, nil
}

func (r *TournamentRepository) Delete(_ context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return false, nil
	}
	delete(r.items, id)
	return true, nil
}

func sortByID(items []tournament.Tournament) {
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
}

func sortByDateAsc(items []tournament.Tournament) {
	sortByID(items)
	sort.SliceStable(items, func(i, j int) bool { return items[i].Date < items[j].Date })
}
