package querybuilder

import (
	"reflect"
	"testing"
)

func TestSelectBuilder_ListingQuery(t *testing.T) {
	pattern := ContainsPattern("alpha")
	query, args, err := Select("id", "title").
		From("tournaments").
		Where(
			Or(ILike("title", pattern), ILike("organizer_name", pattern)),
			Eq("game_mode", "Squad"),
			NotILike("entry_fee", "free"),
		).
		OrderBy("date DESC", "time ASC").
		Limit(9).
		Offset(18).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT id, title FROM tournaments WHERE (title ILIKE $1 OR organizer_name ILIKE $2) AND game_mode = $3 AND COALESCE(entry_fee, '') NOT ILIKE $4 ORDER BY date DESC, time ASC LIMIT 9 OFFSET 18"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	wantArgs := []any{"%alpha%", "%alpha%", "Squad", "free"}
	if !reflect.DeepEqual(args, wantArgs) {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestCountBuilder(t *testing.T) {
	query, args, err := Count("tournaments").Where(ILike("entry_fee", "free")).ToSQL()
	if err != nil {
		t.Fatalf("build count query: %v", err)
	}
	if query != "SELECT COUNT(*) FROM tournaments WHERE entry_fee ILIKE $1" {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 1 || args[0] != "free" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_ZeroOffsetOmitted(t *testing.T) {
	query, _, err := Select("id").From("organizers").OrderBy("created_at DESC").Offset(0).ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}
	if query != "SELECT id FROM organizers ORDER BY created_at DESC" {
		t.Fatalf("unexpected query: %s", query)
	}
	if _, _, err := Select("id").From("organizers").Offset(-1).ToSQL(); err == nil {
		t.Fatalf("expected error for negative offset")
	}
}

func TestEmptyOr(t *testing.T) {
	query, _, err := Select("id").From("t").Where(Or()).ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}
	if query != "SELECT id FROM t WHERE 1=0" {
		t.Fatalf("unexpected query: %s", query)
	}
}

func TestExprPlaceholders(t *testing.T) {
	query, args, err := Select("id").
		From("tournaments").
		Where(Eq("organizer_name", "Zeta"), Expr("date >= ? AND date <= ?", "2026-03-01", "2026-03-31")).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}
	if query != "SELECT id FROM tournaments WHERE organizer_name = $1 AND date >= $2 AND date <= $3" {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 3 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestUpdateAndDeleteBuilders(t *testing.T) {
	query, args, err := Update("organizers").
		Set("name", "new").
		Where(Eq("id", int64(7))).
		Returning("id").
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}
	if query != "UPDATE organizers SET name = $1 WHERE id = $2 RETURNING id" {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 2 || args[1] != int64(7) {
		t.Fatalf("unexpected args: %+v", args)
	}

	query, args, err = DeleteFrom("organizers").Where(Eq("id", int64(7))).ToSQL()
	if err != nil {
		t.Fatalf("build delete query: %v", err)
	}
	if query != "DELETE FROM organizers WHERE id = $1" || len(args) != 1 {
		t.Fatalf("unexpected delete: %s %+v", query, args)
	}

	if _, _, err := DeleteFrom("organizers").ToSQL(); err == nil {
		t.Fatalf("expected error for unscoped delete")
	}
	if _, _, err := Update("organizers").Set("name", "x").ToSQL(); err == nil {
		t.Fatalf("expected error for unscoped update")
	}
}

func TestContainsPattern(t *testing.T) {
	if got := ContainsPattern(`50%_off\`); got != `%50\%\_off\\%` {
		t.Fatalf("unexpected pattern: %s", got)
	}
}
