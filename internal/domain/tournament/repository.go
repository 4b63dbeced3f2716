package tournament

import "context"

// Repository describes tournament persistence needs from use cases.
type Repository interface {
	Search(ctx context.Context, query ListQuery) (Page, error)
	// ListAll returns every tournament ordered by date ascending.
	ListAll(ctx context.Context) ([]Tournament, error)
	ListByOrganizer(ctx context.Context, organizerName string) ([]Tournament, error)
	GetByID(ctx context.Context, id int64) (Tournament, bool, error)
	Create(ctx context.Context, item Tournament) (Tournament, error)
	Update(ctx context.Context, item Tournament) (Tournament, bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}
