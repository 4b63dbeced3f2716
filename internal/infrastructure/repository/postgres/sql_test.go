package postgres

import (
	"database/sql"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/ffmaxarena/arena-api/internal/domain/organizer"
	"github.com/ffmaxarena/arena-api/internal/domain/tournament"
	qb "github.com/ffmaxarena/arena-api/internal/platform/querybuilder"
	"github.com/lib/pq"
)

func TestIsNotFound(t *testing.T) {
	if !isNotFound(fmt.Errorf("get tournament: %w", sql.ErrNoRows)) {
		t.Fatalf("expected wrapped ErrNoRows to be not found")
	}
	if isNotFound(fmt.Errorf("pq: relation tournaments does not exist")) {
		t.Fatalf("expected unrelated error to be false")
	}
}

func TestNullString(t *testing.T) {
	if got := nullString("  "); got.Valid {
		t.Fatalf("expected blank string to be NULL")
	}
	if got := nullString("₹50"); !got.Valid || got.String != "₹50" {
		t.Fatalf("unexpected null string: %+v", got)
	}
}

func TestTournamentColumnsCastDate(t *testing.T) {
	found := false
	for _, column := range tournamentColumns {
		if column == "date" {
			t.Fatalf("date must be selected as text")
		}
		if column == "date::text AS date" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected date cast in %v", tournamentColumns)
	}
}

func TestSearchQuery_AllFilters(t *testing.T) {
	query := tournament.ListQuery{
		Search:    "alpha",
		GameMode:  tournament.GameModeSquad,
		EntryType: tournament.EntryTypePaid,
		Page:      3,
	}.Normalize()

	sqlText, args, err := searchQuery(query, listConditions(query))
	if err != nil {
		t.Fatalf("build search query: %v", err)
	}

	wantSuffix := " FROM tournaments WHERE (title ILIKE $1 OR organizer_name ILIKE $2) AND game_mode = $3" +
		" AND COALESCE(entry_fee, '') NOT ILIKE $4" +
		` ORDER BY date DESC, time COLLATE "C" ASC LIMIT 9 OFFSET 18`
	if !strings.HasSuffix(sqlText, wantSuffix) {
		t.Fatalf("unexpected query:\nwant suffix: %s\ngot:         %s", wantSuffix, sqlText)
	}
	wantArgs := []any{"%alpha%", "%alpha%", "Squad", "free"}
	if !reflect.DeepEqual(args, wantArgs) {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSearchQuery_DefaultsHaveNoWhere(t *testing.T) {
	query := tournament.ListQuery{}.Normalize()
	sqlText, args, err := searchQuery(query, listConditions(query))
	if err != nil {
		t.Fatalf("build search query: %v", err)
	}
	if strings.Contains(sqlText, "WHERE") || strings.Contains(sqlText, "OFFSET") {
		t.Fatalf("unexpected clauses for first unfiltered page: %s", sqlText)
	}
	if !strings.HasSuffix(sqlText, `ORDER BY date DESC, time COLLATE "C" ASC LIMIT 9`) {
		t.Fatalf("unexpected query: %s", sqlText)
	}
	if len(args) != 0 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestListConditions_FreeAndEscapedSearch(t *testing.T) {
	query := tournament.ListQuery{Search: "100%_cup", EntryType: tournament.EntryTypeFree}.Normalize()
	sqlText, args, err := qb.Count(tournamentsTable).Where(listConditions(query)...).ToSQL()
	if err != nil {
		t.Fatalf("build count query: %v", err)
	}

	want := "SELECT COUNT(*) FROM tournaments WHERE (title ILIKE $1 OR organizer_name ILIKE $2) AND entry_fee ILIKE $3"
	if sqlText != want {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", want, sqlText)
	}
	if args[0] != `%100\%\_cup%` || args[2] != "free" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestTournamentModelRoundTrip(t *testing.T) {
	in := tournament.Tournament{
		ID:            7,
		Title:         "Booyah Cup",
		OrganizerName: "Zeta Esports",
		EntryFee:      "Free",
		Date:          "2026-03-10",
		Time:          "7:00 PM",
		PosterURL:     "https://cdn.ffmaxarena.test/p.png",
		IsVerified:    true,
		Status:        "Upcoming",
	}
	row := tournamentToModel(in)
	if row.BannerURL.Valid {
		t.Fatalf("expected empty banner to be stored as NULL")
	}

	out := row.toDomain()
	if !reflect.DeepEqual(in, out) {
		t.Fatalf("unexpected round trip:\nwant %+v\ngot  %+v", in, out)
	}
}

func TestOrganizerModel_BadgesNeverNil(t *testing.T) {
	row := organizerToModel(organizer.Organizer{Name: "Zeta", ContactEmail: "z@zeta.gg"})
	if row.Badges == nil {
		t.Fatalf("expected empty badge array, got nil")
	}

	row.Badges = pq.StringArray{organizer.BadgeVerified}
	if got := row.toDomain().Badges; len(got) != 1 || got[0] != organizer.BadgeVerified {
		t.Fatalf("unexpected badges: %v", got)
	}
}

func TestOrganizerInsertSkipsReadonlyColumns(t *testing.T) {
	sqlText, args, err := qb.InsertModel(organizersTable, organizerToModel(organizer.Organizer{
		Name:         "Zeta",
		ContactEmail: "z@zeta.gg",
		Rating:       organizer.DefaultRating,
	}), "id")
	if err != nil {
		t.Fatalf("build insert: %v", err)
	}
	if strings.Contains(sqlText, "created_at") || strings.Contains(sqlText, "(id,") {
		t.Fatalf("readonly columns leaked into insert: %s", sqlText)
	}
	if !strings.HasPrefix(sqlText, "INSERT INTO organizers (name, contact_email, about,") {
		t.Fatalf("unexpected insert: %s", sqlText)
	}
	if len(args) != 13 {
		t.Fatalf("expected 13 writable values, got %d", len(args))
	}
}
