package submission

import (
	"strings"
	"testing"
	"time"
)

func validTournamentSubmission() TournamentSubmission {
	return TournamentSubmission{
		OrganizerName:   "Zeta Esports",
		Email:           "host@zeta.gg",
		TournamentTitle: "Weekend Squad Cup",
		Date:            "2026-03-12",
		Hour:            "07",
		Minute:          "00",
		AMPM:            "PM",
		EntryFee:        "FREE",
		GameMode:        "Squad",
		Map:             "Bermuda",
		PosterURL:       "https://cdn.example.com/poster.png",
	}
}

func TestTournamentSubmission_Validate(t *testing.T) {
	today := time.Date(2026, 3, 10, 23, 0, 0, 0, time.UTC)

	if err := validTournamentSubmission().Validate(today); err != nil {
		t.Fatalf("expected valid submission, got %v", err)
	}

	sameDay := validTournamentSubmission()
	sameDay.Date = "2026-03-10"
	if err := sameDay.Validate(today); err != nil {
		t.Fatalf("today should be accepted, got %v", err)
	}

	past := validTournamentSubmission()
	past.Date = "2026-03-09"
	if err := past.Validate(today); err == nil || !strings.Contains(err.Error(), "past") {
		t.Fatalf("expected past date error, got %v", err)
	}

	badEmail := validTournamentSubmission()
	badEmail.Email = "not-an-email"
	if err := badEmail.Validate(today); err == nil {
		t.Fatalf("expected invalid email error")
	}

	missing := validTournamentSubmission()
	missing.PosterURL = ""
	missing.EntryFee = " "
	err := missing.Validate(today)
	if err == nil || err.Error() != "entry_fee, poster_url is required" {
		t.Fatalf("unexpected missing-field error: %v", err)
	}
}

func TestMessages(t *testing.T) {
	msg := validTournamentSubmission().Message()
	if msg.Subject != "New Tournament Submission: Weekend Squad Cup" || msg.FromName != "FFMaxArena Submissions" {
		t.Fatalf("unexpected submission envelope: %+v", msg)
	}
	if got := msg.Fields["fullDateTime"]; got != "2026-03-12 at 07:00 PM" {
		t.Fatalf("unexpected fullDateTime: %q", got)
	}

	verification := VerificationApplication{OrganizerName: "Rahul"}.Message()
	if verification.Subject != "New Organizer Verification: Rahul" || verification.FromName != "FFMaxArena Verifications" {
		t.Fatalf("unexpected verification envelope: %+v", verification)
	}

	contact := ContactMessage{FullName: "Asha", Email: "asha@example.com", Message: "hi"}.RelayMessage()
	if contact.Subject != "Contact Form: No Subject" || contact.FromName != "Asha" {
		t.Fatalf("unexpected contact envelope: %+v", contact)
	}

	news := NewsletterSignup{Email: "fan@example.com"}.Message()
	if news.Subject != "New Newsletter Subscription: fan@example.com" {
		t.Fatalf("unexpected newsletter subject: %q", news.Subject)
	}
	if news.Fields["message"] != "fan@example.com has subscribed to the newsletter." {
		t.Fatalf("unexpected newsletter message: %q", news.Fields["message"])
	}
}

func TestOtherValidations(t *testing.T) {
	if err := (VerificationApplication{OrganizerName: "a", Email: "a@b.co"}).Validate(); err == nil {
		t.Fatalf("expected verification missing fields")
	}
	if err := (ContactMessage{FullName: "a", Email: "a@b.co", Message: "m"}).Validate(); err != nil {
		t.Fatalf("subject should be optional, got %v", err)
	}
	if err := (NewsletterSignup{Email: "nope"}).Validate(); err == nil {
		t.Fatalf("expected invalid newsletter email")
	}
}

func TestThankYouFor(t *testing.T) {
	if got := ThankYouFor("submission"); got.Title != "Submission Sent!" || got.ButtonLink != "/tournaments" {
		t.Fatalf("unexpected submission copy: %+v", got)
	}
	if got := ThankYouFor("verification"); got.ButtonLink != "/organizers" {
		t.Fatalf("unexpected verification copy: %+v", got)
	}
	if got := ThankYouFor("newsletter"); got.Title != "Successfully Subscribed!" {
		t.Fatalf("unexpected newsletter copy: %+v", got)
	}
	if got := ThankYouFor("mystery"); got.Title != "Thank You!" || got.ButtonText != "Go Home" {
		t.Fatalf("unexpected default copy: %+v", got)
	}
}
