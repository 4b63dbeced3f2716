package httpapi

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/ffmaxarena/arena-api/internal/domain/draft"
	"github.com/ffmaxarena/arena-api/internal/domain/media"
	"github.com/ffmaxarena/arena-api/internal/domain/organizer"
	"github.com/ffmaxarena/arena-api/internal/domain/submission"
	"github.com/ffmaxarena/arena-api/internal/domain/tournament"
	"github.com/ffmaxarena/arena-api/internal/usecase"
)

type statusDTO struct {
	State       string `json:"state"`
	Message     string `json:"message"`
	IsLive      bool   `json:"is_live"`
	IsUpcoming  bool   `json:"is_upcoming"`
	IsCompleted bool   `json:"is_completed"`
	// TimeDiffSeconds is null for tournaments without a schedule.
	TimeDiffSeconds *int64 `json:"time_diff_seconds"`
}

type countdownDTO struct {
	Days    int `json:"days"`
	Hours   int `json:"hours"`
	Minutes int `json:"mins"`
	Seconds int `json:"secs"`
}

type tournamentDTO struct {
	ID               int64      `json:"id"`
	Title            string     `json:"title"`
	OrganizerName    string     `json:"organizer_name"`
	Description      *string    `json:"description"`
	GameMode         *string    `json:"game_mode"`
	Map              *string    `json:"map"`
	PrizePool        *string    `json:"prize_pool"`
	EntryFee         *string    `json:"entry_fee"`
	IsFree           bool       `json:"is_free"`
	MaxParticipants  *string    `json:"max_participants"`
	Date             string     `json:"date"`
	Time             *string    `json:"time"`
	PosterURL        *string    `json:"poster_url"`
	BannerURL        *string    `json:"banner_url"`
	RegistrationLink *string    `json:"registration_link"`
	WhatsappLink     *string    `json:"whatsapp_link"`
	DiscordLink      *string    `json:"discord_link"`
	YoutubeLink      *string    `json:"youtube_link"`
	IsVerified       bool       `json:"is_verified"`
	StoredStatus     *string    `json:"status"`
	CreatedAt        time.Time  `json:"created_at"`
	Lifecycle        *statusDTO `json:"lifecycle,omitempty"`
}

type tournamentListDTO struct {
	Items      []tournamentDTO `json:"items"`
	Total      int             `json:"total"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	TotalPages int             `json:"total_pages"`
}

type tournamentDetailDTO struct {
	Tournament tournamentDTO `json:"tournament"`
	Countdown  countdownDTO  `json:"countdown"`
	StartsAt   *time.Time    `json:"starts_at"`
	Organizer  *organizerDTO `json:"organizer"`
}

type organizerDTO struct {
	ID               int64     `json:"id"`
	Name             string    `json:"name"`
	ContactEmail     string    `json:"contact_email"`
	About            *string   `json:"about"`
	LogoURL          *string   `json:"logo_url"`
	DiscordID        *string   `json:"discord_id"`
	YoutubeChannel   *string   `json:"youtube_channel"`
	InstagramProfile *string   `json:"instagram_profile"`
	WhatsappNumber   *string   `json:"whatsapp_number"`
	IsVerified       bool      `json:"is_verified"`
	Badges           []string  `json:"badges"`
	Rating           float64   `json:"rating"`
	TotalTournaments int       `json:"total_tournaments"`
	PlayersServed    int       `json:"players_served"`
	CreatedAt        time.Time `json:"created_at"`
}

type organizerProfileDTO struct {
	Organizer            organizerDTO    `json:"organizer"`
	UpcomingTournaments  []tournamentDTO `json:"upcoming_tournaments"`
	CompletedTournaments []tournamentDTO `json:"completed_tournaments"`
	PlayersServed        int             `json:"players_served"`
	PlayersServedDisplay string          `json:"players_served_display"`
}

type homeStatsDTO struct {
	LiveTournaments         int    `json:"live_tournaments"`
	VerifiedOrganizers      int    `json:"verified_organizers"`
	PlayersServed           int    `json:"players_served"`
	PlayersServedDisplay    string `json:"players_served_display"`
	TotalTournaments        int    `json:"total_tournaments"`
	TotalTournamentsDisplay string `json:"total_tournaments_display"`
}

type homeDTO struct {
	Stats    homeStatsDTO    `json:"stats"`
	Featured []tournamentDTO `json:"featured"`
}

type referenceDTO struct {
	GameModes  []string `json:"game_modes"`
	Maps       []string `json:"maps"`
	Badges     []string `json:"badges"`
	EntryTypes []string `json:"entry_types"`
}

type thankYouDTO struct {
	Title      string `json:"title"`
	Message    string `json:"message"`
	ButtonText string `json:"button_text"`
	ButtonLink string `json:"button_link"`
}

type submissionAcceptedDTO struct {
	ThankYouType string `json:"thank_you_type"`
}

type uploadDTO struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

type loginDTO struct {
	Authenticated bool      `json:"authenticated"`
	AccessToken   string    `json:"access_token"`
	ExpiresAt     time.Time `json:"expires_at"`
	Email         string    `json:"email"`
}

type sessionDTO struct {
	Authenticated bool   `json:"authenticated"`
	Email         string `json:"email"`
}

type adminSnapshotDTO struct {
	Tournaments []tournamentDTO `json:"tournaments"`
	Organizers  []organizerDTO  `json:"organizers"`
}

type draftDTO struct {
	Key       string          `json:"key"`
	Payload   json.RawMessage `json:"payload"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type statusFrameDTO struct {
	Type         string        `json:"type"`
	TournamentID int64         `json:"tournament_id"`
	Status       statusDTO     `json:"status"`
	Countdown    *countdownDTO `json:"countdown,omitempty"`
	At           time.Time     `json:"at"`
}

type tournamentRequest struct {
	Title            string `json:"title" validate:"required,max=200"`
	OrganizerName    string `json:"organizer_name" validate:"required,max=200"`
	Description      string `json:"description"`
	GameMode         string `json:"game_mode" validate:"omitempty,gamemode"`
	Map              string `json:"map"`
	PrizePool        string `json:"prize_pool"`
	EntryFee         string `json:"entry_fee"`
	MaxParticipants  string `json:"max_participants"`
	Date             string `json:"date" validate:"required,datetime=2006-01-02"`
	Time             string `json:"time"`
	Hour             string `json:"hour" validate:"omitempty,numeric"`
	Minute           string `json:"minute" validate:"omitempty,numeric"`
	AMPM             string `json:"ampm" validate:"omitempty,oneof=AM PM am pm"`
	PosterURL        string `json:"poster_url" validate:"required,imageurl"`
	RegistrationLink string `json:"registration_link"`
	WhatsappLink     string `json:"whatsapp_link"`
	DiscordLink      string `json:"discord_link"`
	YoutubeLink      string `json:"youtube_link"`
	Status           string `json:"status"`
	IsVerified       *bool  `json:"is_verified"`
}

func (r tournamentRequest) toDomain(id int64) tournament.Tournament {
	clock := strings.TrimSpace(r.Time)
	if assembled := tournament.FormatTime(r.Hour, r.Minute, r.AMPM); assembled != "" {
		clock = assembled
	}
	status := strings.TrimSpace(r.Status)
	if status == "" {
		status = string(tournament.StateUpcoming)
	}
	verified := true
	if r.IsVerified != nil {
		verified = *r.IsVerified
	}

	return tournament.Tournament{
		ID:               id,
		Title:            strings.TrimSpace(r.Title),
		OrganizerName:    strings.TrimSpace(r.OrganizerName),
		Description:      r.Description,
		GameMode:         r.GameMode,
		Map:              r.Map,
		PrizePool:        r.PrizePool,
		EntryFee:         r.EntryFee,
		MaxParticipants:  r.MaxParticipants,
		Date:             strings.TrimSpace(r.Date),
		Time:             clock,
		PosterURL:        strings.TrimSpace(r.PosterURL),
		RegistrationLink: r.RegistrationLink,
		WhatsappLink:     r.WhatsappLink,
		DiscordLink:      r.DiscordLink,
		YoutubeLink:      r.YoutubeLink,
		IsVerified:       verified,
		Status:           status,
	}
}

type organizerRequest struct {
	Name             string   `json:"name" validate:"required,max=200"`
	ContactEmail     string   `json:"contact_email" validate:"required,email"`
	About            string   `json:"about"`
	LogoURL          string   `json:"logo_url" validate:"omitempty,imageurl"`
	DiscordID        string   `json:"discord_id"`
	YoutubeChannel   string   `json:"youtube_channel"`
	InstagramProfile string   `json:"instagram_profile"`
	WhatsappNumber   string   `json:"whatsapp_number"`
	Badges           []string `json:"badges" validate:"omitempty,dive,badge"`
	Rating           *float64 `json:"rating" validate:"omitempty,gte=0,lte=5"`
	TotalTournaments int      `json:"total_tournaments" validate:"gte=0"`
	PlayersServed    int      `json:"players_served" validate:"gte=0"`
}

func (r organizerRequest) toDomain(id int64) organizer.Organizer {
	rating := organizer.DefaultRating
	if r.Rating != nil {
		rating = *r.Rating
	}
	return organizer.Organizer{
		ID:               id,
		Name:             r.Name,
		ContactEmail:     r.ContactEmail,
		About:            r.About,
		LogoURL:          strings.TrimSpace(r.LogoURL),
		DiscordID:        r.DiscordID,
		YoutubeChannel:   r.YoutubeChannel,
		InstagramProfile: r.InstagramProfile,
		WhatsappNumber:   r.WhatsappNumber,
		Badges:           r.Badges,
		Rating:           rating,
		TotalTournaments: r.TotalTournaments,
		PlayersServed:    r.PlayersServed,
	}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type tournamentSubmissionRequest struct {
	OrganizerName    string `json:"organizer_name" validate:"required"`
	Email            string `json:"email" validate:"required,email"`
	TournamentTitle  string `json:"tournament_title" validate:"required"`
	Date             string `json:"date" validate:"required,datetime=2006-01-02,notpast"`
	Hour             string `json:"hour" validate:"required,numeric"`
	Minute           string `json:"minute" validate:"required,numeric"`
	AMPM             string `json:"ampm" validate:"required,oneof=AM PM"`
	EntryFee         string `json:"entry_fee" validate:"required"`
	GameMode         string `json:"game_mode" validate:"required,gamemode"`
	Map              string `json:"map" validate:"required"`
	PrizePool        string `json:"prize_pool"`
	MaxParticipants  string `json:"max_participants"`
	WhatsappLink     string `json:"whatsapp_link"`
	DiscordLink      string `json:"discord_link"`
	RegistrationLink string `json:"registration_link"`
	YoutubeLink      string `json:"youtube_link"`
	Description      string `json:"description"`
	PosterURL        string `json:"poster_url" validate:"required,imageurl"`
}

func (r tournamentSubmissionRequest) toDomain() submission.TournamentSubmission {
	return submission.TournamentSubmission(r)
}

type verificationRequest struct {
	OrganizerName       string `json:"organizer_name" validate:"required"`
	Email               string `json:"email" validate:"required,email"`
	Phone               string `json:"phone" validate:"required"`
	OrganizationName    string `json:"organization_name" validate:"required"`
	Experience          string `json:"experience" validate:"required"`
	PreviousTournaments string `json:"previous_tournaments"`
	WhatsappLink        string `json:"whatsapp_link"`
	DiscordLink         string `json:"discord_link"`
	SocialMedia         string `json:"social_media"`
	WhyVerified         string `json:"why_verified" validate:"required"`
	ProofLinks          string `json:"proof_links"`
	LogoURL             string `json:"logo_url" validate:"omitempty,imageurl"`
}

func (r verificationRequest) toDomain() submission.VerificationApplication {
	return submission.VerificationApplication(r)
}

type contactRequest struct {
	FullName string `json:"full_name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Subject  string `json:"subject"`
	Message  string `json:"message" validate:"required"`
}

type newsletterRequest struct {
	Email string `json:"email" validate:"required,email"`
}

func statusToDTO(s tournament.Status) statusDTO {
	out := statusDTO{
		State:       string(s.State),
		Message:     s.Message,
		IsLive:      s.IsLive(),
		IsUpcoming:  s.IsUpcoming(),
		IsCompleted: s.IsCompleted(),
	}
	if s.HasSchedule() {
		secs := int64(s.TimeDiff / time.Second)
		out.TimeDiffSeconds = &secs
	}
	return out
}

func countdownToDTO(c tournament.Countdown) countdownDTO {
	return countdownDTO{Days: c.Days, Hours: c.Hours, Minutes: c.Minutes, Seconds: c.Seconds}
}

func tournamentToDTO(t tournament.Tournament) tournamentDTO {
	return tournamentDTO{
		ID:               t.ID,
		Title:            t.Title,
		OrganizerName:    t.OrganizerName,
		Description:      optionalString(t.Description),
		GameMode:         optionalString(t.GameMode),
		Map:              optionalString(t.Map),
		PrizePool:        optionalString(t.PrizePool),
		EntryFee:         optionalString(t.EntryFee),
		IsFree:           t.IsFree(),
		MaxParticipants:  optionalString(t.MaxParticipants),
		Date:             t.Date,
		Time:             optionalString(t.Time),
		PosterURL:        mediaURL(t.PosterURL),
		BannerURL:        mediaURL(t.BannerURL),
		RegistrationLink: optionalString(t.RegistrationLink),
		WhatsappLink:     optionalString(t.WhatsappLink),
		DiscordLink:      optionalString(t.DiscordLink),
		YoutubeLink:      optionalString(t.YoutubeLink),
		IsVerified:       t.IsVerified,
		StoredStatus:     optionalString(t.Status),
		CreatedAt:        t.CreatedAt,
	}
}

func tournamentViewToDTO(t tournament.Tournament, s tournament.Status) tournamentDTO {
	out := tournamentToDTO(t)
	status := statusToDTO(s)
	out.Lifecycle = &status
	return out
}

func viewsToDTO(items []usecase.TournamentView) []tournamentDTO {
	out := make([]tournamentDTO, 0, len(items))
	for _, item := range items {
		out = append(out, tournamentViewToDTO(item.Tournament, item.Status))
	}
	return out
}

func rankedToDTO(items []tournament.Ranked) []tournamentDTO {
	out := make([]tournamentDTO, 0, len(items))
	for _, item := range items {
		out = append(out, tournamentViewToDTO(item.Tournament, item.Status))
	}
	return out
}

func organizerToDTO(o organizer.Organizer) organizerDTO {
	badges := make([]string, len(o.Badges))
	copy(badges, o.Badges)
	return organizerDTO{
		ID:               o.ID,
		Name:             o.Name,
		ContactEmail:     o.ContactEmail,
		About:            optionalString(o.About),
		LogoURL:          mediaURL(o.LogoURL),
		DiscordID:        optionalString(o.DiscordID),
		YoutubeChannel:   optionalString(o.YoutubeChannel),
		InstagramProfile: optionalString(o.InstagramProfile),
		WhatsappNumber:   optionalString(o.WhatsappNumber),
		IsVerified:       o.IsVerified,
		Badges:           badges,
		Rating:           o.Rating,
		TotalTournaments: o.TotalTournaments,
		PlayersServed:    o.PlayersServed,
		CreatedAt:        o.CreatedAt,
	}
}

func organizersToDTO(items []organizer.Organizer) []organizerDTO {
	out := make([]organizerDTO, 0, len(items))
	for _, item := range items {
		out = append(out, organizerToDTO(item))
	}
	return out
}

func snapshotToDTO(s usecase.AdminSnapshot) adminSnapshotDTO {
	tournaments := make([]tournamentDTO, 0, len(s.Tournaments))
	for _, item := range s.Tournaments {
		tournaments = append(tournaments, tournamentToDTO(item))
	}
	return adminSnapshotDTO{Tournaments: tournaments, Organizers: organizersToDTO(s.Organizers)}
}

func thankYouToDTO(t submission.ThankYou) thankYouDTO {
	return thankYouDTO{Title: t.Title, Message: t.Message, ButtonText: t.ButtonText, ButtonLink: t.ButtonLink}
}

func draftToDTO(d draft.Draft) draftDTO {
	return draftDTO{Key: d.Key, Payload: d.Payload, UpdatedAt: d.UpdatedAt}
}

func frameToDTO(f usecase.StatusFrame) statusFrameDTO {
	out := statusFrameDTO{
		Type:         string(f.Kind),
		TournamentID: f.TournamentID,
		Status:       statusToDTO(f.Status),
		At:           f.At,
	}
	if f.Kind == usecase.FrameCountdown {
		c := countdownToDTO(f.Countdown)
		out.Countdown = &c
	}
	return out
}

func optionalString(v string) *string {
	if strings.TrimSpace(v) == "" {
		return nil
	}
	return &v
}

// mediaURL drops anything that is not an http(s) URL or an image data URI.
func mediaURL(v string) *string {
	return optionalString(media.SanitizeURL(v))
}
