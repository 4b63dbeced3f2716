package organizer

import (
	"fmt"
	"net/mail"
	"strings"
	"time"
)

const (
	BadgeVerified            = "Verified Badge"
	BadgePriorityListing     = "Priority Listing"
	BadgeFeaturedTournaments = "Featured Tournaments"
)

// Badges is the fixed badge vocabulary.
var Badges = []string{BadgeVerified, BadgePriorityListing, BadgeFeaturedTournaments}

const (
	DefaultRating = 5.0
	MaxRating     = 5.0
)

// Organizer hosts tournaments. Counters and rating are curated by admins.
type Organizer struct {
	ID               int64
	Name             string
	ContactEmail     string
	About            string
	LogoURL          string
	DiscordID        string
	YoutubeChannel   string
	InstagramProfile string
	WhatsappNumber   string
	IsVerified       bool
	Badges           []string
	Rating           float64
	TotalTournaments int
	PlayersServed    int
	CreatedAt        time.Time
}

func (o Organizer) Validate() error {
	if strings.TrimSpace(o.Name) == "" {
		return fmt.Errorf("organizer name is required")
	}
	if strings.TrimSpace(o.ContactEmail) == "" {
		return fmt.Errorf("organizer contact email is required")
	}
	if _, err := mail.ParseAddress(o.ContactEmail); err != nil {
		return fmt.Errorf("organizer contact email is invalid")
	}
	if o.Rating < 0 || o.Rating > MaxRating {
		return fmt.Errorf("organizer rating must be between 0 and %.0f", MaxRating)
	}
	if o.TotalTournaments < 0 || o.PlayersServed < 0 {
		return fmt.Errorf("organizer counters must be >= 0")
	}
	for _, badge := range o.Badges {
		if !IsKnownBadge(badge) {
			return fmt.Errorf("unknown organizer badge %q", badge)
		}
	}

	return nil
}

func IsKnownBadge(badge string) bool {
	for _, known := range Badges {
		if badge == known {
			return true
		}
	}
	return false
}
