package memory

import (
	"fmt"
	"os"
	"time"

	"github.com/ffmaxarena/arena-api/internal/domain/organizer"
	"github.com/ffmaxarena/arena-api/internal/domain/tournament"
	"gopkg.in/yaml.v3"
)

// Catalog is the seed data set for local runs and empty databases.
type Catalog struct {
	Tournaments []tournament.Tournament
	Organizers  []organizer.Organizer
}

type seedFile struct {
	Tournaments []seedTournament `yaml:"tournaments"`
	Organizers  []seedOrganizer  `yaml:"organizers"`
}

type seedTournament struct {
	ID               int64  `yaml:"id"`
	Title            string `yaml:"title"`
	OrganizerName    string `yaml:"organizer_name"`
	Description      string `yaml:"description"`
	GameMode         string `yaml:"game_mode"`
	Map              string `yaml:"map"`
	PrizePool        string `yaml:"prize_pool"`
	EntryFee         string `yaml:"entry_fee"`
	MaxParticipants  string `yaml:"max_participants"`
	Date             string `yaml:"date"`
	Time             string `yaml:"time"`
	PosterURL        string `yaml:"poster_url"`
	BannerURL        string `yaml:"banner_url"`
	RegistrationLink string `yaml:"registration_link"`
	WhatsappLink     string `yaml:"whatsapp_link"`
	DiscordLink      string `yaml:"discord_link"`
	YoutubeLink      string `yaml:"youtube_link"`
	IsVerified       bool   `yaml:"is_verified"`
	Status           string `yaml:"status"`
}

type seedOrganizer struct {
	ID               int64     `yaml:"id"`
	Name             string    `yaml:"name"`
	ContactEmail     string    `yaml:"contact_email"`
	About            string    `yaml:"about"`
	LogoURL          string    `yaml:"logo_url"`
	DiscordID        string    `yaml:"discord_id"`
	YoutubeChannel   string    `yaml:"youtube_channel"`
	InstagramProfile string    `yaml:"instagram_profile"`
	WhatsappNumber   string    `yaml:"whatsapp_number"`
	IsVerified       bool      `yaml:"is_verified"`
	Badges           []string  `yaml:"badges"`
	Rating           *float64  `yaml:"rating"`
	TotalTournaments int       `yaml:"total_tournaments"`
	PlayersServed    int       `yaml:"players_served"`
	CreatedAt        time.Time `yaml:"created_at"`
}

// LoadCatalog reads a YAML seed file and validates every entry.
func LoadCatalog(path string) (Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("read seed file %s: %w", path, err)
	}
	return ParseCatalog(raw)
}

func ParseCatalog(raw []byte) (Catalog, error) {
	var file seedFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return Catalog{}, fmt.Errorf("decode seed file: %w", err)
	}

	out := Catalog{
		Tournaments: make([]tournament.Tournament, 0, len(file.Tournaments)),
		Organizers:  make([]organizer.Organizer, 0, len(file.Organizers)),
	}
	for i, item := range file.Tournaments {
		t := item.toDomain()
		if err := t.Validate(); err != nil {
			return Catalog{}, fmt.Errorf("seed tournament %d: %w", i, err)
		}
		out.Tournaments = append(out.Tournaments, t)
	}
	for i, item := range file.Organizers {
		o := item.toDomain()
		if err := o.Validate(); err != nil {
			return Catalog{}, fmt.Errorf("seed organizer %d: %w", i, err)
		}
		out.Organizers = append(out.Organizers, o)
	}

	return out, nil
}

func (s seedTournament) toDomain() tournament.Tournament {
	return tournament.Tournament{
		ID:               s.ID,
		Title:            s.Title,
		OrganizerName:    s.OrganizerName,
		Description:      s.Description,
		GameMode:         s.GameMode,
		Map:              s.Map,
		PrizePool:        s.PrizePool,
		EntryFee:         s.EntryFee,
		MaxParticipants:  s.MaxParticipants,
		Date:             s.Date,
		Time:             s.Time,
		PosterURL:        s.PosterURL,
		BannerURL:        s.BannerURL,
		RegistrationLink: s.RegistrationLink,
		WhatsappLink:     s.WhatsappLink,
		DiscordLink:      s.DiscordLink,
		YoutubeLink:      s.YoutubeLink,
		IsVerified:       s.IsVerified,
		Status:           s.Status,
	}
}

func (s seedOrganizer) toDomain() organizer.Organizer {
	rating := organizer.DefaultRating
	if s.Rating != nil {
		rating = *s.Rating
	}
	return organizer.Organizer{
		ID:               s.ID,
		Name:             s.Name,
		ContactEmail:     s.ContactEmail,
		About:            s.About,
		LogoURL:          s.LogoURL,
		DiscordID:        s.DiscordID,
		YoutubeChannel:   s.YoutubeChannel,
		InstagramProfile: s.InstagramProfile,
		WhatsappNumber:   s.WhatsappNumber,
		IsVerified:       s.IsVerified,
		Badges:           s.Badges,
		Rating:           rating,
		TotalTournaments: s.TotalTournaments,
		PlayersServed:    s.PlayersServed,
		CreatedAt:        s.CreatedAt,
	}
}

// DefaultCatalog is the built-in demo data used when no seed file is set.
func DefaultCatalog() Catalog {
	created := time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC)
	return Catalog{
		Organizers: []organizer.Organizer{
			{
				ID:               1,
				Name:             "Zeta Esports",
				ContactEmail:     "hello@zetaesports.gg",
				About:            "Weekly squad scrims and monthly cups for Free Fire Max players.",
				DiscordID:        "zeta-esports",
				YoutubeChannel:   "https://youtube.com/@zetaesports",
				IsVerified:       true,
				Badges:           []string{organizer.BadgeVerified, organizer.BadgePriorityListing},
				Rating:           4.8,
				TotalTournaments: 42,
				PlayersServed:    5200,
				CreatedAt:        created,
			},
			{
				ID:               2,
				Name:             "Booyah Hub",
				ContactEmail:     "team@booyahhub.gg",
				About:            "Clash Squad nights and free solo rushes.",
				InstagramProfile: "https://instagram.com/booyahhub",
				IsVerified:       true,
				Badges:           []string{organizer.BadgeVerified},
				Rating:           organizer.DefaultRating,
				TotalTournaments: 12,
				PlayersServed:    1300,
				CreatedAt:        created.Add(24 * time.Hour),
			},
		},
		Tournaments: []tournament.Tournament{
			{
				ID:              1,
				Title:           "Zeta Squad Cup",
				OrganizerName:   "Zeta Esports",
				GameMode:        string(tournament.GameModeSquad),
				Map:             "Bermuda",
				PrizePool:       "₹10,000",
				EntryFee:        "₹50",
				MaxParticipants: "48 teams",
				Date:            "2026-11-14",
				Time:            "7:00 PM",
				PosterURL:       "https://images.ffmaxarena.gg/posters/zeta-squad-cup.png",
				IsVerified:      true,
				Status:          "Upcoming",
			},
			{
				ID:              2,
				Title:           "Booyah Solo Rush",
				OrganizerName:   "Booyah Hub",
				GameMode:        string(tournament.GameModeSolo),
				Map:             "Purgatory",
				PrizePool:       "₹2,000",
				EntryFee:        "Free",
				MaxParticipants: "48 players",
				Date:            "2026-11-02",
				Time:            "6:30 PM",
				PosterURL:       "https://images.ffmaxarena.gg/posters/booyah-solo-rush.png",
				IsVerified:      true,
				Status:          "Upcoming",
			},
			{
				ID:              3,
				Title:           "Clash Night Finals",
				OrganizerName:   "Booyah Hub",
				GameMode:        string(tournament.GameModeClashSquad),
				Map:             "Kalahari",
				PrizePool:       "₹5,000",
				EntryFee:        "₹20",
				MaxParticipants: "32 teams",
				Date:            "2026-09-20",
				Time:            "8:00 PM",
				PosterURL:       "https://images.ffmaxarena.gg/posters/clash-night.png",
				IsVerified:      true,
				Status:          "Completed",
			},
		},
	}
}
