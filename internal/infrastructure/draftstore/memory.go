package draftstore

import (
	"context"
	"time"

	"github.com/ffmaxarena/arena-api/internal/domain/draft"
	basecache "github.com/ffmaxarena/arena-api/internal/platform/cache"
	"github.com/jonboulle/clockwork"
)

// MemoryStore keeps drafts in process. Drafts are lost on restart.
type MemoryStore struct {
	store *basecache.Store
}

func NewMemoryStore(ttl time.Duration, clock clockwork.Clock) *MemoryStore {
	return &MemoryStore{store: basecache.NewStore(ttl, clock)}
}

func (s *MemoryStore) Get(ctx context.Context, key string) (draft.Draft, bool, error) {
	v, ok := s.store.Get(ctx, key)
	if !ok {
		return draft.Draft{}, false, nil
	}
	item, _ := v.(draft.Draft)
	item.Payload = append([]byte(nil), item.Payload...)
	return item, true, nil
}

func (s *MemoryStore) Put(ctx context.Context, item draft.Draft) error {
	item.Payload = append([]byte(nil), item.Payload...)
	s.store.Set(ctx, item.Key, item)
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.store.Delete(ctx, key)
	return nil
}
