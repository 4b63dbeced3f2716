package submission

import (
	"context"
	"fmt"
	"net/mail"
	"sort"
	"strings"
	"time"
)

type Kind string

const (
	KindSubmission   Kind = "submission"
	KindVerification Kind = "verification"
	KindContact      Kind = "contact"
	KindNewsletter   Kind = "newsletter"
)

// Message is what gets posted to the form relay. Fields are forwarded as-is.
type Message struct {
	Kind     Kind
	Subject  string
	FromName string
	Fields   map[string]string
}

// Result is the relay's verdict on one message.
type Result struct {
	Success bool
	Message string
}

// Relay forwards form messages to an external inbox service.
type Relay interface {
	Send(ctx context.Context, msg Message) (Result, error)
}

// TournamentSubmission is a tournament proposed by an organizer for listing.
type TournamentSubmission struct {
	OrganizerName    string
	Email            string
	TournamentTitle  string
	Date             string
	Hour             string
	Minute           string
	AMPM             string
	EntryFee         string
	GameMode         string
	Map              string
	PrizePool        string
	MaxParticipants  string
	WhatsappLink     string
	DiscordLink      string
	RegistrationLink string
	YoutubeLink      string
	Description      string
	PosterURL        string
}

// Validate rejects dates before the calendar day of today.
func (s TournamentSubmission) Validate(today time.Time) error {
	if err := required(map[string]string{
		"organizer_name":   s.OrganizerName,
		"email":            s.Email,
		"tournament_title": s.TournamentTitle,
		"date":             s.Date,
		"hour":             s.Hour,
		"minute":           s.Minute,
		"ampm":             s.AMPM,
		"entry_fee":        s.EntryFee,
		"game_mode":        s.GameMode,
		"map":              s.Map,
		"poster_url":       s.PosterURL,
	}); err != nil {
		return err
	}
	if err := validEmail(s.Email); err != nil {
		return err
	}

	day, err := time.ParseInLocation("2006-01-02", s.Date, today.Location())
	if err != nil {
		return fmt.Errorf("date must use YYYY-MM-DD")
	}
	midnight := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	if day.Before(midnight) {
		return fmt.Errorf("date cannot be in the past")
	}

	return nil
}

func (s TournamentSubmission) Message() Message {
	fullDateTime := fmt.Sprintf("%s at %s:%s %s", s.Date, s.Hour, s.Minute, s.AMPM)
	return Message{
		Kind:     KindSubmission,
		Subject:  "New Tournament Submission: " + s.TournamentTitle,
		FromName: "FFMaxArena Submissions",
		Fields: map[string]string{
			"organizer_name":    s.OrganizerName,
			"email":             s.Email,
			"tournament_title":  s.TournamentTitle,
			"date":              s.Date,
			"hour":              s.Hour,
			"minute":            s.Minute,
			"ampm":              s.AMPM,
			"entry_fee":         s.EntryFee,
			"game_mode":         s.GameMode,
			"map":               s.Map,
			"prize_pool":        s.PrizePool,
			"max_participants":  s.MaxParticipants,
			"whatsapp_link":     s.WhatsappLink,
			"discord_link":      s.DiscordLink,
			"registration_link": s.RegistrationLink,
			"youtube_link":      s.YoutubeLink,
			"description":       s.Description,
			"poster_url":        s.PosterURL,
			"fullDateTime":      fullDateTime,
		},
	}
}

// VerificationApplication asks for the verified organizer badge.
type VerificationApplication struct {
	OrganizerName       string
	Email               string
	Phone               string
	OrganizationName    string
	Experience          string
	PreviousTournaments string
	WhatsappLink        string
	DiscordLink         string
	SocialMedia         string
	WhyVerified         string
	ProofLinks          string
	LogoURL             string
}

func (v VerificationApplication) Validate() error {
	if err := required(map[string]string{
		"organizer_name":    v.OrganizerName,
		"organization_name": v.OrganizationName,
		"email":             v.Email,
		"phone":             v.Phone,
		"experience":        v.Experience,
		"why_verified":      v.WhyVerified,
	}); err != nil {
		return err
	}
	return validEmail(v.Email)
}

func (v VerificationApplication) Message() Message {
	return Message{
		Kind:     KindVerification,
		Subject:  "New Organizer Verification: " + v.OrganizerName,
		FromName: "FFMaxArena Verifications",
		Fields: map[string]string{
			"organizer_name":       v.OrganizerName,
			"email":                v.Email,
			"phone":                v.Phone,
			"organization_name":    v.OrganizationName,
			"experience":           v.Experience,
			"previous_tournaments": v.PreviousTournaments,
			"whatsapp_link":        v.WhatsappLink,
			"discord_link":         v.DiscordLink,
			"social_media":         v.SocialMedia,
			"why_verified":         v.WhyVerified,
			"proof_links":          v.ProofLinks,
			"logo_url":             v.LogoURL,
		},
	}
}

type ContactMessage struct {
	FullName string
	Email    string
	Subject  string
	Message  string
}

func (c ContactMessage) Validate() error {
	if err := required(map[string]string{
		"full_name": c.FullName,
		"email":     c.Email,
		"message":   c.Message,
	}); err != nil {
		return err
	}
	return validEmail(c.Email)
}

// RelayMessage falls back to "No Subject" and sends as the sender's own name.
func (c ContactMessage) RelayMessage() Message {
	subject := strings.TrimSpace(c.Subject)
	if subject == "" {
		subject = "No Subject"
	}
	return Message{
		Kind:     KindContact,
		Subject:  "Contact Form: " + subject,
		FromName: c.FullName,
		Fields: map[string]string{
			"full_name": c.FullName,
			"email":     c.Email,
			"subject":   c.Subject,
			"message":   c.Message,
		},
	}
}

type NewsletterSignup struct {
	Email string
}

func (n NewsletterSignup) Validate() error {
	if strings.TrimSpace(n.Email) == "" {
		return fmt.Errorf("email is required")
	}
	return validEmail(n.Email)
}

func (n NewsletterSignup) Message() Message {
	return Message{
		Kind:     KindNewsletter,
		Subject:  "New Newsletter Subscription: " + n.Email,
		FromName: "FFMaxArena Newsletter",
		Fields: map[string]string{
			"email":   n.Email,
			"message": n.Email + " has subscribed to the newsletter.",
		},
	}
}

// required reports the first missing field in a stable order.
func required(fields map[string]string) error {
	missing := make([]string, 0, len(fields))
	for name, value := range fields {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return fmt.Errorf("%s is required", strings.Join(missing, ", "))
}

func validEmail(raw string) error {
	if _, err := mail.ParseAddress(strings.TrimSpace(raw)); err != nil {
		return fmt.Errorf("email address is invalid")
	}
	return nil
}
