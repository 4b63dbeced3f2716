package tournament

import (
	"math"
	"testing"
	"time"
)

func TestListQuery_Matches(t *testing.T) {
	items := []Tournament{
		{Title: "Alpha Cup", OrganizerName: "Zeta Esports", GameMode: "Squad", EntryFee: "FREE"},
		{Title: "Night Clash", OrganizerName: "ALPHA Gaming", GameMode: "Clash Squad", EntryFee: "₹50"},
		{Title: "Solo Rush", OrganizerName: "Rush Org", GameMode: "Solo", EntryFee: "N/A"},
		{Title: "Duo Draft", OrganizerName: "Draft House", GameMode: "Duo", EntryFee: ""},
		{Title: "Free Friday", OrganizerName: "Friday Org", GameMode: "Squad", EntryFee: "free"},
	}

	count := func(q ListQuery) int {
		n := 0
		for _, item := range items {
			if q.Normalize().Matches(item) {
				n++
			}
		}
		return n
	}

	if got := count(ListQuery{Search: "alpha"}); got != 2 {
		t.Fatalf("search alpha: got %d want 2", got)
	}
	if got := count(ListQuery{GameMode: GameModeSquad}); got != 2 {
		t.Fatalf("squad filter: got %d want 2", got)
	}
	if got := count(ListQuery{EntryType: EntryTypeFree}); got != 2 {
		t.Fatalf("free filter: got %d want 2", got)
	}
	if got := count(ListQuery{EntryType: EntryTypePaid}); got != 3 {
		t.Fatalf("paid filter should include N/A and empty fees: got %d want 3", got)
	}
	if got := count(ListQuery{Search: "alpha", EntryType: EntryTypePaid}); got != 1 {
		t.Fatalf("combined filter: got %d want 1", got)
	}
}

func TestListQuery_WithFiltersResetsPage(t *testing.T) {
	q := ListQuery{Search: "cup", GameMode: GameModeAll, EntryType: EntryTypeAll, Page: 4}

	same := q.WithFilters("cup", GameModeAll, EntryTypeAll)
	if same.Page != 4 {
		t.Fatalf("unchanged filters should keep the page, got %d", same.Page)
	}

	changed := q.WithFilters("cup", GameModeDuo, EntryTypeAll)
	if changed.Page != 1 {
		t.Fatalf("expected page reset to 1, got %d", changed.Page)
	}
}

func TestListQuery_OffsetAndNormalize(t *testing.T) {
	q := ListQuery{Page: 0}.Normalize()
	if q.Page != 1 || q.Offset() != 0 {
		t.Fatalf("unexpected normalized page=%d offset=%d", q.Page, q.Offset())
	}
	if off := (ListQuery{Page: 3}).Offset(); off != 18 {
		t.Fatalf("unexpected offset for page 3: %d", off)
	}
	if off := (ListQuery{Page: 1024819115206086202}).Offset(); off < 0 || off != (MaxPage-1)*PageSize {
		t.Fatalf("offset must saturate for huge pages, got %d", off)
	}
	if q := (ListQuery{Page: math.MaxInt}).Normalize(); q.Page != MaxPage {
		t.Fatalf("unexpected clamped page: %d", q.Page)
	}
	if pages := (Page{Total: 19}).TotalPages(); pages != 3 {
		t.Fatalf("unexpected total pages: %d", pages)
	}
}

func TestParseFilters(t *testing.T) {
	if mode, err := ParseGameMode("clash squad"); err != nil || mode != GameModeClashSquad {
		t.Fatalf("unexpected game mode: %q %v", mode, err)
	}
	if _, err := ParseGameMode("battle royale"); err == nil {
		t.Fatalf("expected error for unknown game mode")
	}
	if entry, err := ParseEntryType(""); err != nil || entry != EntryTypeAll {
		t.Fatalf("unexpected entry type: %q %v", entry, err)
	}
	if _, err := ParseEntryType("cheap"); err == nil {
		t.Fatalf("expected error for unknown entry type")
	}
}

func TestFeatured(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	items := []Tournament{
		{ID: 1, Date: "2026-03-09", Time: "12:00 PM"}, // completed
		{ID: 2, Date: "2026-03-14", Time: "6:00 PM"},  // upcoming, later
		{ID: 3, Date: "2026-03-10", Time: "10:00 AM"}, // live
		{ID: 4, Date: "", Time: ""},                   // TBA
		{ID: 5, Date: "2026-03-11", Time: "6:00 PM"},  // upcoming, sooner
	}

	got := Featured(items, now, FeaturedLimit)
	if len(got) != 3 {
		t.Fatalf("expected 3 featured, got %d", len(got))
	}
	wantIDs := []int64{3, 5, 2}
	for i, want := range wantIDs {
		if got[i].Tournament.ID != want {
			t.Fatalf("position %d: got id %d want %d", i, got[i].Tournament.ID, want)
		}
	}

	all := Featured(items, now, 0)
	if last := all[len(all)-1]; last.Tournament.ID != 4 {
		t.Fatalf("expected TBA tournament last, got id %d", last.Tournament.ID)
	}
}

func TestSortForListing(t *testing.T) {
	items := []Tournament{
		{ID: 1, Date: "2026-03-10", Time: "7:00 PM"},
		{ID: 2, Date: "2026-03-12", Time: "6:00 PM"},
		{ID: 3, Date: "2026-03-10", Time: "10:00 AM"},
		{ID: 4, Date: "2026-03-10", Time: "7:00 pm"},
	}
	SortForListing(items)

	want := []int64{2, 3, 1, 4}
	for i, id := range want {
		if items[i].ID != id {
			t.Fatalf("position %d: got id %d want %d", i, items[i].ID, id)
		}
	}
}

func TestParsePlayerCount(t *testing.T) {
	tests := map[string]int{
		"400 players":   400,
		"Max 48 Players": 48,
		"100 teams":     400,
		"25Teams":       100,
		"400":           400,
		"":              0,
		"unlimited":     0,
		"400 slots":     0,
	}
	for in, want := range tests {
		if got := ParsePlayerCount(in); got != want {
			t.Fatalf("ParsePlayerCount(%q): got %d want %d", in, got, want)
		}
	}
}
