package tournament

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// PageSize is the fixed number of tournaments per listing page.
const PageSize = 9

// MaxPage is the largest page whose offset fits in an int.
const MaxPage = math.MaxInt/PageSize + 1

// FeaturedLimit caps the homepage featured list.
const FeaturedLimit = 3

// ListQuery holds the listing parameters assembled from the UI state.
type ListQuery struct {
	Search    string
	GameMode  GameMode
	EntryType EntryType
	Page      int
}

// WithFilters returns a copy with new filters applied. Any filter change
// moves the query back to the first page.
func (q ListQuery) WithFilters(search string, mode GameMode, entry EntryType) ListQuery {
	if q.Search == search && q.GameMode == mode && q.EntryType == entry {
		return q
	}
	return ListQuery{Search: search, GameMode: mode, EntryType: entry, Page: 1}
}

// Normalize fills defaults and clamps the page to at least 1.
func (q ListQuery) Normalize() ListQuery {
	q.Search = strings.TrimSpace(q.Search)
	if q.GameMode == "" {
		q.GameMode = GameModeAll
	}
	if q.EntryType == "" {
		q.EntryType = EntryTypeAll
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Page > MaxPage {
		q.Page = MaxPage
	}
	return q
}

// Offset saturates at the offset of MaxPage.
func (q ListQuery) Offset() int {
	page := q.Page
	if page < 1 {
		page = 1
	}
	if page > MaxPage {
		page = MaxPage
	}
	return (page - 1) * PageSize
}

// Matches applies the search and filter rules to one tournament.
func (q ListQuery) Matches(t Tournament) bool {
	if q.Search != "" {
		needle := strings.ToLower(q.Search)
		if !strings.Contains(strings.ToLower(t.Title), needle) &&
			!strings.Contains(strings.ToLower(t.OrganizerName), needle) {
			return false
		}
	}
	if q.GameMode != "" && q.GameMode != GameModeAll && t.GameMode != string(q.GameMode) {
		return false
	}
	switch q.EntryType {
	case EntryTypeFree:
		return t.IsFree()
	case EntryTypePaid:
		return !t.IsFree()
	}
	return true
}

// Page is one slice of the listing plus the total match count.
type Page struct {
	Items []Tournament
	Total int
	Page  int
}

func (p Page) TotalPages() int {
	if p.Total <= 0 {
		return 0
	}
	return (p.Total + PageSize - 1) / PageSize
}

// SortForListing orders by date descending, then time ascending by byte
// order, matching the store ordering under the C collation.
func SortForListing(items []Tournament) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Date != items[j].Date {
			return items[i].Date > items[j].Date
		}
		return items[i].Time < items[j].Time
	})
}

// Ranked pairs a tournament with its status at evaluation time.
type Ranked struct {
	Tournament Tournament
	Status     Status
}

// Featured keeps upcoming and live tournaments, live first, then the
// soonest start, and returns at most limit entries. TBA sorts last.
func Featured(items []Tournament, now time.Time, limit int) []Ranked {
	out := make([]Ranked, 0, len(items))
	for _, item := range items {
		status := item.StatusAt(now)
		if status.IsCompleted() {
			continue
		}
		out = append(out, Ranked{Tournament: item, Status: status})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Status.IsLive() != out[j].Status.IsLive() {
			return out[i].Status.IsLive()
		}
		return out[i].Status.TimeDiff < out[j].Status.TimeDiff
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

var (
	playersPattern = regexp.MustCompile(`(?i)(\d+)\s*players`)
	teamsPattern   = regexp.MustCompile(`(?i)(\d+)\s*teams`)
	numberPattern  = regexp.MustCompile(`^\d+$`)
)

// PlayersPerTeam is the squad size used to convert team counts.
const PlayersPerTeam = 4

// ParsePlayerCount reads the free-text max participants field.
// "400 players" is 400, "100 teams" is 400, "400" is 400, anything else 0.
func ParsePlayerCount(raw string) int {
	if raw == "" {
		return 0
	}
	if m := playersPattern.FindStringSubmatch(raw); m != nil {
		n, _ := strconv.Atoi(m[1])
		return n
	}
	if m := teamsPattern.FindStringSubmatch(raw); m != nil {
		n, _ := strconv.Atoi(m[1])
		return n * PlayersPerTeam
	}
	if numberPattern.MatchString(raw) {
		n, _ := strconv.Atoi(raw)
		return n
	}
	return 0
}
