package cache

import (
	"context"
	"fmt"
	"strconv"

	"github.com/ffmaxarena/arena-api/internal/domain/organizer"
	"github.com/ffmaxarena/arena-api/internal/domain/tournament"
	basecache "github.com/ffmaxarena/arena-api/internal/platform/cache"
)

const (
	tournamentPrefix = "tournament:"
	organizerPrefix  = "organizer:"
)

type lookup[T any] struct {
	value  T
	exists bool
}

// TournamentRepository caches reads and drops every tournament entry after a
// successful write. Failed writes leave the cache untouched.
type TournamentRepository struct {
	next  tournament.Repository
	cache *basecache.Store
}

func NewTournamentRepository(next tournament.Repository, cache *basecache.Store) *TournamentRepository {
	return &TournamentRepository{next: next, cache: cache}
}

func (r *TournamentRepository) Search(ctx context.Context, query tournament.ListQuery) (tournament.Page, error) {
	query = query.Normalize()
	key := fmt.Sprintf("%ssearch:%s|%s|%s|%d", tournamentPrefix, query.Search, query.GameMode, query.EntryType, query.Page)
	page, err := basecache.Load(ctx, r.cache, key, func(ctx context.Context) (tournament.Page, error) {
		return r.next.Search(ctx, query)
	})
	if err != nil {
		return tournament.Page{}, err
	}
	page.Items = append([]tournament.Tournament(nil), page.Items...)
	return page, nil
}

func (r *TournamentRepository) ListAll(ctx context.Context) ([]tournament.Tournament, error) {
	items, err := basecache.Load(ctx, r.cache, tournamentPrefix+"all", r.next.ListAll)
	if err != nil {
		return nil, err
	}
	return append([]tournament.Tournament(nil), items...), nil
}

func (r *TournamentRepository) ListByOrganizer(ctx context.Context, organizerName string) ([]tournament.Tournament, error) {
	items, err := basecache.Load(ctx, r.cache, tournamentPrefix+"organizer:"+organizerName, func(ctx context.Context) ([]tournament.Tournament, error) {
		return r.next.ListByOrganizer(ctx, organizerName)
	})
	if err != nil {
		return nil, err
	}
	return append([]tournament.Tournament(nil), items...), nil
}

func (r *TournamentRepository) GetByID(ctx context.Context, id int64) (tournament.Tournament, bool, error) {
	key := tournamentPrefix + "id:" + strconv.FormatInt(id, 10)
	cached, err := basecache.Load(ctx, r.cache, key, func(ctx context.Context) (lookup[tournament.Tournament], error) {
		item, exists, err := r.next.GetByID(ctx, id)
		if err != nil {
			return lookup[tournament.Tournament]{}, err
		}
		return lookup[tournament.Tournament]{value: item, exists: exists}, nil
	})
	if err != nil {
		return tournament.Tournament{}, false, err
	}
	return cached.value, cached.exists, nil
}

func (r *TournamentRepository) Create(ctx context.Context, item tournament.Tournament) (tournament.Tournament, error) {
	created, err := r.next.Create(ctx, item)
	if err != nil {
		return tournament.Tournament{}, err
	}
	r.Invalidate(ctx)
	return created, nil
}

func (r *TournamentRepository) Update(ctx context.Context, item tournament.Tournament) (tournament.Tournament, bool, error) {
	updated, ok, err := r.next.Update(ctx, item)
	if err != nil {
		return tournament.Tournament{}, false, err
	}
	if ok {
		r.Invalidate(ctx)
	}
	return updated, ok, nil
}

func (r *TournamentRepository) Delete(ctx context.Context, id int64) (bool, error) {
	ok, err := r.next.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if ok {
		r.Invalidate(ctx)
	}
	return ok, nil
}

func (r *TournamentRepository) Invalidate(ctx context.Context) {
	r.cache.DeletePrefix(ctx, tournamentPrefix)
}

type OrganizerRepository struct {
	next  organizer.Repository
	cache *basecache.Store
}

func NewOrganizerRepository(next organizer.Repository, cache *basecache.Store) *OrganizerRepository {
	return &OrganizerRepository{next: next, cache: cache}
}

func (r *OrganizerRepository) ListAll(ctx context.Context) ([]organizer.Organizer, error) {
	items, err := basecache.Load(ctx, r.cache, organizerPrefix+"all", r.next.ListAll)
	if err != nil {
		return nil, err
	}
	return cloneOrganizers(items), nil
}

func (r *OrganizerRepository) GetByID(ctx context.Context, id int64) (organizer.Organizer, bool, error) {
	return r.get(ctx, organizerPrefix+"id:"+strconv.FormatInt(id, 10), func(ctx context.Context) (organizer.Organizer, bool, error) {
		return r.next.GetByID(ctx, id)
	})
}

func (r *OrganizerRepository) GetByName(ctx context.Context, name string) (organizer.Organizer, bool, error) {
	return r.get(ctx, organizerPrefix+"name:"+name, func(ctx context.Context) (organizer.Organizer, bool, error) {
		return r.next.GetByName(ctx, name)
	})
}

func (r *OrganizerRepository) get(
	ctx context.Context,
	key string,
	fetch func(context.Context) (organizer.Organizer, bool, error),
) (organizer.Organizer, bool, error) {
	cached, err := basecache.Load(ctx, r.cache, key, func(ctx context.Context) (lookup[organizer.Organizer], error) {
		item, exists, err := fetch(ctx)
		if err != nil {
			return lookup[organizer.Organizer]{}, err
		}
		return lookup[organizer.Organizer]{value: item, exists: exists}, nil
	})
	if err != nil {
		return organizer.Organizer{}, false, err
	}
	item := cached.value
	item.Badges = append([]string(nil), item.Badges...)
	return item, cached.exists, nil
}

func (r *OrganizerRepository) Create(ctx context.Context, item organizer.Organizer) (organizer.Organizer, error) {
	created, err := r.next.Create(ctx, item)
	if err != nil {
		return organizer.Organizer{}, err
	}
	r.Invalidate(ctx)
	return created, nil
}

func (r *OrganizerRepository) Update(ctx context.Context, item organizer.Organizer) (organizer.Organizer, bool, error) {
	updated, ok, err := r.next.Update(ctx, item)
	if err != nil {
		return organizer.Organizer{}, false, err
	}
	if ok {
		r.Invalidate(ctx)
	}
	return updated, ok, nil
}

func (r *OrganizerRepository) Delete(ctx context.Context, id int64) (bool, error) {
	ok, err := r.next.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if ok {
		r.Invalidate(ctx)
	}
	return ok, nil
}

func (r *OrganizerRepository) Invalidate(ctx context.Context) {
	r.cache.DeletePrefix(ctx, organizerPrefix)
}

func cloneOrganizers(items []organizer.Organizer) []organizer.Organizer {
	out := make([]organizer.Organizer, 0, len(items))
	for _, item := range items {
		item.Badges = append([]string(nil), item.Badges...)
		out = append(out, item)
	}
	return out
}
