package postgres

import (
	"context"
	"fmt"

	"github.com/ffmaxarena/arena-api/internal/infrastructure/repository/memory"
	qb "github.com/ffmaxarena/arena-api/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
)

// BootstrapSeed loads the catalog into an empty database. It is a no-op once
// any tournament or organizer exists.
func BootstrapSeed(ctx context.Context, db *sqlx.DB, catalog memory.Catalog) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT (SELECT COUNT(1) FROM tournaments) + (SELECT COUNT(1) FROM organizers)`); err != nil {
		return fmt.Errorf("count rows for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, o := range catalog.Organizers {
		query, args, err := qb.InsertModel(organizersTable, organizerToModel(o))
		if err != nil {
			return fmt.Errorf("build seed organizer %q query: %w", o.Name, err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("seed organizer %q: %w", o.Name, err)
		}
	}

	for _, t := range catalog.Tournaments {
		query, args, err := qb.InsertModel(tournamentsTable, tournamentToModel(t))
		if err != nil {
			return fmt.Errorf("build seed tournament %q query: %w", t.Title, err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("seed tournament %q: %w", t.Title, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}

	return nil
}
