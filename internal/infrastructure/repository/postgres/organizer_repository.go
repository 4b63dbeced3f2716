package postgres

import (
	"context"
	"fmt"

	"github.com/ffmaxarena/arena-api/internal/domain/organizer"
	qb "github.com/ffmaxarena/arena-api/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
)

type OrganizerRepository struct {
	db *sqlx.DB
}

func NewOrganizerRepository(db *sqlx.DB) *OrganizerRepository {
	return &OrganizerRepository{db: db}
}

func (r *OrganizerRepository) ListAll(ctx context.Context) ([]organizer.Organizer, error) {
	query, args, err := qb.Select(organizerColumns...).From(organizersTable).
		OrderBy("created_at DESC", "id DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list organizers query: %w", err)
	}

	var rows []organizerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list organizers: %w", err)
	}

	out := make([]organizer.Organizer, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *OrganizerRepository) GetByID(ctx context.Context, id int64) (organizer.Organizer, bool, error) {
	return r.getOne(ctx, "id", qb.Eq("id", id))
}

func (r *OrganizerRepository) GetByName(ctx context.Context, name string) (organizer.Organizer, bool, error) {
	return r.getOne(ctx, "name", qb.Eq("name", name))
}

func (r *OrganizerRepository) getOne(ctx context.Context, by string, cond qb.Condition) (organizer.Organizer, bool, error) {
	query, args, err := qb.Select(organizerColumns...).From(organizersTable).
		Where(cond).
		OrderBy("id ASC").
		Limit(1).
		ToSQL()
	if err != nil {
		return organizer.Organizer{}, false, fmt.Errorf("build get organizer by %s query: %w", by, err)
	}

	var row organizerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return organizer.Organizer{}, false, nil
		}
		return organizer.Organizer{}, false, fmt.Errorf("get organizer by %s: %w", by, err)
	}

	return row.toDomain(), true, nil
}

func (r *OrganizerRepository) Create(ctx context.Context, item organizer.Organizer) (organizer.Organizer, error) {
	query, args, err := qb.InsertModel(organizersTable, organizerToModel(item), organizerColumns...)
	if err != nil {
		return organizer.Organizer{}, fmt.Errorf("build create organizer query: %w", err)
	}

	var row organizerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		return organizer.Organizer{}, fmt.Errorf("create organizer: %w", err)
	}

	return row.toDomain(), nil
}

func (r *OrganizerRepository) Update(ctx context.Context, item organizer.Organizer) (organizer.Organizer, bool, error) {
	query, args, err := qb.UpdateModel(organizersTable, organizerToModel(item), qb.Eq("id", item.ID), organizerColumns...)
	if err != nil {
		return organizer.Organizer{}, false, fmt.Errorf("build update organizer query: %w", err)
	}

	var row organizerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return organizer.Organizer{}, false, nil
		}
		return organizer.Organizer{}, false, fmt.Errorf("update organizer: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *OrganizerRepository) Delete(ctx context.Context, id int64) (bool, error) {
	query, args, err := qb.DeleteFrom(organizersTable).Where(qb.Eq("id", id)).ToSQL()
	if err != nil {
		return false, fmt.Errorf("build delete organizer query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("delete organizer: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected delete organizer: %w", err)
	}

	return affected > 0, nil
}
