package organizer

import "context"

// Repository describes organizer persistence needs from use cases.
type Repository interface {
	// ListAll returns every organizer, newest first.
	ListAll(ctx context.Context) ([]Organizer, error)
	GetByID(ctx context.Context, id int64) (Organizer, bool, error)
	GetByName(ctx context.Context, name string) (Organizer, bool, error)
	Create(ctx context.Context, item Organizer) (Organizer, error)
	Update(ctx context.Context, item Organizer) (Organizer, bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}
