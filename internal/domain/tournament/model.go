package tournament

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar date format used for Tournament.Date.
const DateLayout = "2006-01-02"

// Tournament is a single scheduled Free Fire Max event.
type Tournament struct {
	ID               int64
	Title            string
	OrganizerName    string
	Description      string
	GameMode         string
	Map              string
	PrizePool        string
	EntryFee         string
	MaxParticipants  string
	Date             string
	Time             string
	PosterURL        string
	BannerURL        string
	RegistrationLink string
	WhatsappLink     string
	DiscordLink      string
	YoutubeLink      string
	IsVerified       bool
	Status           string
	CreatedAt        time.Time
}

func (t Tournament) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return fmt.Errorf("tournament title is required")
	}
	if strings.TrimSpace(t.OrganizerName) == "" {
		return fmt.Errorf("tournament organizer name is required")
	}
	if strings.TrimSpace(t.Date) == "" {
		return fmt.Errorf("tournament date is required")
	}
	if _, err := time.Parse(DateLayout, t.Date); err != nil {
		return fmt.Errorf("tournament date must use %s: %w", DateLayout, err)
	}
	if strings.TrimSpace(t.PosterURL) == "" {
		return fmt.Errorf("tournament poster url is required")
	}

	return nil
}

// IsFree reports whether the entry fee reads "free" in any letter case.
func (t Tournament) IsFree() bool {
	return strings.EqualFold(t.EntryFee, "free")
}

// GameMode filter values accepted by the listing.
type GameMode string

const (
	GameModeAll        GameMode = "All"
	GameModeSquad      GameMode = "Squad"
	GameModeDuo        GameMode = "Duo"
	GameModeSolo       GameMode = "Solo"
	GameModeClashSquad GameMode = "Clash Squad"
)

// GameModes lists the playable modes, without the All filter.
var GameModes = []GameMode{GameModeSquad, GameModeDuo, GameModeSolo, GameModeClashSquad}

// Maps lists the battle maps offered by the admin and submission forms.
var Maps = []string{"Bermuda", "Bermuda Remastered", "Purgatory", "Kalahari", "Alpine", "NeXTerra"}

func ParseGameMode(raw string) (GameMode, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return GameModeAll, nil
	}
	if strings.EqualFold(value, string(GameModeAll)) {
		return GameModeAll, nil
	}
	for _, mode := range GameModes {
		if strings.EqualFold(value, string(mode)) {
			return mode, nil
		}
	}

	return "", fmt.Errorf("unknown game mode %q", raw)
}

// EntryType filters on the free-text entry fee.
type EntryType string

const (
	EntryTypeAll  EntryType = "All"
	EntryTypeFree EntryType = "Free"
	EntryTypePaid EntryType = "Paid"
)

func ParseEntryType(raw string) (EntryType, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "all":
		return EntryTypeAll, nil
	case "free":
		return EntryTypeFree, nil
	case "paid":
		return EntryTypePaid, nil
	default:
		return "", fmt.Errorf("unknown entry type %q", raw)
	}
}
