package postgres

import (
	"context"
	"fmt"

	"github.com/ffmaxarena/arena-api/internal/domain/tournament"
	qb "github.com/ffmaxarena/arena-api/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
)

type TournamentRepository struct {
	db *sqlx.DB
}

func NewTournamentRepository(db *sqlx.DB) *TournamentRepository {
	return &TournamentRepository{db: db}
}

func (r *TournamentRepository) Search(ctx context.Context, query tournament.ListQuery) (tournament.Page, error) {
	query = query.Normalize()
	conditions := listConditions(query)

	countQuery, countArgs, err := qb.Count(tournamentsTable).Where(conditions...).ToSQL()
	if err != nil {
		return tournament.Page{}, fmt.Errorf("build count tournaments query: %w", err)
	}
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, countArgs...); err != nil {
		return tournament.Page{}, fmt.Errorf("count tournaments: %w", err)
	}

	selectQuery, selectArgs, err := searchQuery(query, conditions)
	if err != nil {
		return tournament.Page{}, fmt.Errorf("build search tournaments query: %w", err)
	}
	var rows []tournamentTableModel
	if err := r.db.SelectContext(ctx, &rows, selectQuery, selectArgs...); err != nil {
		return tournament.Page{}, fmt.Errorf("search tournaments: %w", err)
	}

	return tournament.Page{
		Items: tournamentsToDomain(rows),
		Total: total,
		Page:  query.Page,
	}, nil
}

func (r *TournamentRepository) ListAll(ctx context.Context) ([]tournament.Tournament, error) {
	query, args, err := qb.Select(tournamentColumns...).From(tournamentsTable).
		OrderBy("date ASC", "id ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list tournaments query: %w", err)
	}

	var rows []tournamentTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list tournaments: %w", err)
	}

	return tournamentsToDomain(rows), nil
}

func (r *TournamentRepository) ListByOrganizer(ctx context.Context, organizerName string) ([]tournament.Tournament, error) {
	query, args, err := qb.Select(tournamentColumns...).From(tournamentsTable).
		Where(qb.Eq("organizer_name", organizerName)).
		OrderBy("date ASC", "id ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list tournaments by organizer query: %w", err)
	}

	var rows []tournamentTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list tournaments by organizer: %w", err)
	}

	return tournamentsToDomain(rows), nil
}

func (r *TournamentRepository) GetByID(ctx context.Context, id int64) (tournament.Tournament, bool, error) {
	query, args, err := qb.Select(tournamentColumns...).From(tournamentsTable).
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return tournament.Tournament{}, false, fmt.Errorf("build get tournament query: %w", err)
	}

	var row tournamentTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return tournament.Tournament{}, false, nil
		}
		return tournament.Tournament{}, false, fmt.Errorf("get tournament by id: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *TournamentRepository) Create(ctx context.Context, item tournament.Tournament) (tournament.Tournament, error) {
	query, args, err := qb.InsertModel(tournamentsTable, tournamentToModel(item), tournamentColumns...)
	if err != nil {
		return tournament.Tournament{}, fmt.Errorf("build create tournament query: %w", err)
	}

	var row tournamentTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		return tournament.Tournament{}, fmt.Errorf("create tournament: %w", err)
	}

	return row.toDomain(), nil
}

func (r *TournamentRepository) Update(ctx context.Context, item tournament.Tournament) (tournament.Tournament, bool, error) {
	query, args, err := qb.UpdateModel(tournamentsTable, tournamentToModel(item), qb.Eq("id", item.ID), tournamentColumns...)
	if err != nil {
		return tournament.Tournament{}, false, fmt.Errorf("build update tournament query: %w", err)
	}

	var row tournamentTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return tournament.Tournament{}, false, nil
		}
		return tournament.Tournament{}, false, fmt.Errorf("update tournament: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *TournamentRepository) Delete(ctx context.Context, id int64) (bool, error) {
	query, args, err := qb.DeleteFrom(tournamentsTable).Where(qb.Eq("id", id)).ToSQL()
	if err != nil {
		return false, fmt.Errorf("build delete tournament query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("delete tournament: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected delete tournament: %w", err)
	}

	return affected > 0, nil
}

// listConditions translates listing filters into the store predicates.
// Paid is the negation of Free, so NULL and empty fees count as paid.
func listConditions(query tournament.ListQuery) []qb.Condition {
	var conditions []qb.Condition
	if query.Search != "" {
		pattern := qb.ContainsPattern(query.Search)
		conditions = append(conditions, qb.Or(
			qb.ILike("title", pattern),
			qb.ILike("organizer_name", pattern),
		))
	}
	if query.GameMode != "" && query.GameMode != tournament.GameModeAll {
		conditions = append(conditions, qb.Eq("game_mode", string(query.GameMode)))
	}
	switch query.EntryType {
	case tournament.EntryTypeFree:
		conditions = append(conditions, qb.ILike("entry_fee", "free"))
	case tournament.EntryTypePaid:
		conditions = append(conditions, qb.NotILike("entry_fee", "free"))
	}
	return conditions
}

func searchQuery(query tournament.ListQuery, conditions []qb.Condition) (string, []any, error) {
	return qb.Select(tournamentColumns...).From(tournamentsTable).
		Where(conditions...).
		OrderBy("date DESC", `time COLLATE "C" ASC`).
		Limit(tournament.PageSize).
		Offset(query.Offset()).
		ToSQL()
}
