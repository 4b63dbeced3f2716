package postgres

import (
	"database/sql"
	"time"

	"github.com/ffmaxarena/arena-api/internal/domain/organizer"
	"github.com/lib/pq"
)

const organizersTable = "organizers"

type organizerTableModel struct {
	ID               int64          `db:"id,readonly"`
	Name             string         `db:"name"`
	ContactEmail     string         `db:"contact_email"`
	About            sql.NullString `db:"about"`
	LogoURL          sql.NullString `db:"logo_url"`
	DiscordID        sql.NullString `db:"discord_id"`
	YoutubeChannel   sql.NullString `db:"youtube_channel"`
	InstagramProfile sql.NullString `db:"instagram_profile"`
	WhatsappNumber   sql.NullString `db:"whatsapp_number"`
	IsVerified       bool           `db:"is_verified"`
	Badges           pq.StringArray `db:"badges"`
	Rating           float64        `db:"rating"`
	TotalTournaments int            `db:"total_tournaments"`
	PlayersServed    int            `db:"players_served"`
	CreatedAt        time.Time      `db:"created_at,readonly"`
}

var organizerColumns = selectList(organizerTableModel{}, nil)

func organizerToModel(o organizer.Organizer) organizerTableModel {
	badges := pq.StringArray(o.Badges)
	if badges == nil {
		badges = pq.StringArray{}
	}
	return organizerTableModel{
		ID:               o.ID,
		Name:             o.Name,
		ContactEmail:     o.ContactEmail,
		About:            nullString(o.About),
		LogoURL:          nullString(o.LogoURL),
		DiscordID:        nullString(o.DiscordID),
		YoutubeChannel:   nullString(o.YoutubeChannel),
		InstagramProfile: nullString(o.InstagramProfile),
		WhatsappNumber:   nullString(o.WhatsappNumber),
		IsVerified:       o.IsVerified,
		Badges:           badges,
		Rating:           o.Rating,
		TotalTournaments: o.TotalTournaments,
		PlayersServed:    o.PlayersServed,
	}
}

func (m organizerTableModel) toDomain() organizer.Organizer {
	return organizer.Organizer{
		ID:               m.ID,
		Name:             m.Name,
		ContactEmail:     m.ContactEmail,
		About:            m.About.String,
		LogoURL:          m.LogoURL.String,
		DiscordID:        m.DiscordID.String,
		YoutubeChannel:   m.YoutubeChannel.String,
		InstagramProfile: m.InstagramProfile.String,
		WhatsappNumber:   m.WhatsappNumber.String,
		IsVerified:       m.IsVerified,
		Badges:           append([]string(nil), m.Badges...),
		Rating:           m.Rating,
		TotalTournaments: m.TotalTournaments,
		PlayersServed:    m.PlayersServed,
		CreatedAt:        m.CreatedAt,
	}
}
