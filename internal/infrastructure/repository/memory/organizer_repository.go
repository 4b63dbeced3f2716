package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/ffmaxarena/arena-api/internal/domain/organizer"
	"github.com/jonboulle/clockwork"
)

type OrganizerRepository struct {
	mu     sync.RWMutex
	clock  clockwork.Clock
	items  map[int64]organizer.Organizer
	nextID int64
}

func NewOrganizerRepository(items []organizer.Organizer, clock clockwork.Clock) *OrganizerRepository {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	r := &OrganizerRepository{
		clock: clock,
		items: make(map[int64]organizer.Organizer, len(items)),
	}
	for _, item := range items {
		if item.ID <= 0 {
			item.ID = r.nextID + 1
		}
		if item.ID > r.nextID {
			r.nextID = item.ID
		}
		r.items[item.ID] = cloneOrganizer(item)
	}
	return r
}

func (r *OrganizerRepository) ListAll(_ context.Context) ([]organizer.Organizer, error) {
	r.mu.RLock()
	out := make([]organizer.Organizer, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, cloneOrganizer(item))
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *OrganizerRepository) GetByID(_ context.Context, id int64) (organizer.Organizer, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return organizer.Organizer{}, false, nil
	}
	return cloneOrganizer(item), true, nil
}

func (r *OrganizerRepository) GetByName(_ context.Context, name string) (organizer.Organizer, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var (
		found organizer.Organizer
		ok    bool
	)
	for _, item := range r.items {
		if item.Name != name {
			continue
		}
		if !ok || item.ID < found.ID {
			found, ok = item, true
		}
	}
	if !ok {
		return organizer.Organizer{}, false, nil
	}
	return cloneOrganizer(found), true, nil
}

func (r *OrganizerRepository) Create(_ context.Context, item organizer.Organizer) (organizer.Organizer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	item.ID = r.nextID
	item.CreatedAt = r.clock.Now().UTC()
	r.items[item.ID] = cloneOrganizer(item)
	return cloneOrganizer(item), nil
}

func (r *OrganizerRepository) Update(_ context.Context, item organizer.Organizer) (organizer.Organizer, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.items[item.ID]
	if !ok {
		return organizer.Organizer{}, false, nil
	}
	item.CreatedAt = existing.CreatedAt
	r.items[item.ID] = cloneOrganizer(item)
	return cloneOrganizer(item), true, nil
}

func (r *OrganizerRepository) Delete(_ context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return false, nil
	}
	delete(r.items, id)
	return true, nil
}

func cloneOrganizer(item organizer.Organizer) organizer.Organizer {
	item.Badges = append([]string(nil), item.Badges...)
	return item
}
