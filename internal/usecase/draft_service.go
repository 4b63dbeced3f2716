package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ffmaxarena/arena-api/internal/domain/draft"
	"github.com/jonboulle/clockwork"
)

// DraftService keeps unsaved admin form state between sessions.
type DraftService struct {
	store draft.Store
	clock clockwork.Clock
}

func NewDraftService(store draft.Store, clock clockwork.Clock) *DraftService {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &DraftService{store: store, clock: clock}
}

func (s *DraftService) Get(ctx context.Context, key string) (draft.Draft, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftService.Get")
	defer span.End()

	if err := draft.ValidateKey(key); err != nil {
		return draft.Draft{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	item, exists, err := s.store.Get(ctx, key)
	if err != nil {
		return draft.Draft{}, fmt.Errorf("get draft: %w", err)
	}
	if !exists {
		return draft.Draft{}, fmt.Errorf("%w: draft=%s", ErrNotFound, key)
	}
	return item, nil
}

func (s *DraftService) Save(ctx context.Context, key string, payload json.RawMessage) (draft.Draft, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftService.Save")
	defer span.End()

	item := draft.Draft{Key: key, Payload: payload, UpdatedAt: s.clock.Now().UTC()}
	if err := item.Validate(); err != nil {
		return draft.Draft{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.store.Put(ctx, item); err != nil {
		return draft.Draft{}, fmt.Errorf("save draft: %w", err)
	}
	return item, nil
}

// Discard is the explicit cancel. Missing drafts are not an error.
func (s *DraftService) Discard(ctx context.Context, key string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftService.Discard")
	defer span.End()

	if err := draft.ValidateKey(key); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.store.Delete(ctx, key); err != nil {
		return fmt.Errorf("delete draft: %w", err)
	}
	return nil
}
