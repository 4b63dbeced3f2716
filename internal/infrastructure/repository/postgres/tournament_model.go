package postgres

import (
	"database/sql"
	"time"

	"github.com/ffmaxarena/arena-api/internal/domain/tournament"
)

const tournamentsTable = "tournaments"

type tournamentTableModel struct {
	ID               int64          `db:"id,readonly"`
	Title            string         `db:"title"`
	OrganizerName    string         `db:"organizer_name"`
	Description      sql.NullString `db:"description"`
	GameMode         sql.NullString `db:"game_mode"`
	Map              sql.NullString `db:"map"`
	PrizePool        sql.NullString `db:"prize_pool"`
	EntryFee         sql.NullString `db:"entry_fee"`
	MaxParticipants  sql.NullString `db:"max_participants"`
	Date             string         `db:"date"`
	Time             sql.NullString `db:"time"`
	PosterURL        sql.NullString `db:"poster_url"`
	BannerURL        sql.NullString `db:"banner_url"`
	RegistrationLink sql.NullString `db:"registration_link"`
	WhatsappLink     sql.NullString `db:"whatsapp_link"`
	DiscordLink      sql.NullString `db:"discord_link"`
	YoutubeLink      sql.NullString `db:"youtube_link"`
	IsVerified       bool           `db:"is_verified"`
	Status           sql.NullString `db:"status"`
	CreatedAt        time.Time      `db:"created_at,readonly"`
}

// tournamentColumns reads the DATE column as text so it round-trips as YYYY-MM-DD.
var tournamentColumns = selectList(tournamentTableModel{}, map[string]string{
	"date": "date::text AS date",
})

func tournamentToModel(t tournament.Tournament) tournamentTableModel {
	return tournamentTableModel{
		ID:               t.ID,
		Title:            t.Title,
		OrganizerName:    t.OrganizerName,
		Description:      nullString(t.Description),
		GameMode:         nullString(t.GameMode),
		Map:              nullString(t.Map),
		PrizePool:        nullString(t.PrizePool),
		EntryFee:         nullString(t.EntryFee),
		MaxParticipants:  nullString(t.MaxParticipants),
		Date:             t.Date,
		Time:             nullString(t.Time),
		PosterURL:        nullString(t.PosterURL),
		BannerURL:        nullString(t.BannerURL),
		RegistrationLink: nullString(t.RegistrationLink),
		WhatsappLink:     nullString(t.WhatsappLink),
		DiscordLink:      nullString(t.DiscordLink),
		YoutubeLink:      nullString(t.YoutubeLink),
		IsVerified:       t.IsVerified,
		Status:           nullString(t.Status),
	}
}

func (m tournamentTableModel) toDomain() tournament.Tournament {
	return tournament.Tournament{
		ID:               m.ID,
		Title:            m.Title,
		OrganizerName:    m.OrganizerName,
		Description:      m.Description.String,
		GameMode:         m.GameMode.String,
		Map:              m.Map.String,
		PrizePool:        m.PrizePool.String,
		EntryFee:         m.EntryFee.String,
		MaxParticipants:  m.MaxParticipants.String,
		Date:             m.Date,
		Time:             m.Time.String,
		PosterURL:        m.PosterURL.String,
		BannerURL:        m.BannerURL.String,
		RegistrationLink: m.RegistrationLink.String,
		WhatsappLink:     m.WhatsappLink.String,
		DiscordLink:      m.DiscordLink.String,
		YoutubeLink:      m.YoutubeLink.String,
		IsVerified:       m.IsVerified,
		Status:           m.Status.String,
		CreatedAt:        m.CreatedAt,
	}
}

func tournamentsToDomain(rows []tournamentTableModel) []tournament.Tournament {
	out := make([]tournament.Tournament, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out
}
