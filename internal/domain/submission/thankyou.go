package submission

// ThankYou is the confirmation copy shown after a successful form.
type ThankYou struct {
	Title      string
	Message    string
	ButtonText string
	ButtonLink string
}

// ThankYouFor returns the copy for kind, or the generic copy for unknown kinds.
func ThankYouFor(kind string) ThankYou {
	switch Kind(kind) {
	case KindSubmission:
		return ThankYou{
			Title:      "Submission Sent!",
			Message:    "Your tournament has been sent for review. We'll get it listed within 24-48 hours. Thanks for contributing!",
			ButtonText: "See Other Tournaments",
			ButtonLink: "/tournaments",
		}
	case KindVerification:
		return ThankYou{
			Title:      "Application Received!",
			Message:    "Your organizer verification request is in our hands. We'll review your details and get back to you soon.",
			ButtonText: "Back to Organizers",
			ButtonLink: "/organizers",
		}
	case KindContact:
		return ThankYou{
			Title:      "Message Sent!",
			Message:    "Thanks for reaching out! We've received your message and will get back to you as soon as possible.",
			ButtonText: "Back to Home",
			ButtonLink: "/",
		}
	case KindNewsletter:
		return ThankYou{
			Title:      "Successfully Subscribed!",
			Message:    "Thank you for joining our newsletter. Keep an eye on your inbox for the latest updates.",
			ButtonText: "Back to Home",
			ButtonLink: "/",
		}
	default:
		return ThankYou{
			Title:      "Thank You!",
			Message:    "Your request has been successfully processed.",
			ButtonText: "Go Home",
			ButtonLink: "/",
		}
	}
}
