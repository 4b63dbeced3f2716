package httpapi

import (
	"net/http"

	"github.com/ffmaxarena/arena-api/internal/domain/submission"
)

func (h *Handler) SubmitTournament(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitTournament")
	defer span.End()

	var req tournamentSubmissionRequest
	if err := h.decodeJSON(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	kind, err := h.submissionService.SubmitTournament(ctx, req.toDomain())
	if err != nil {
		h.logger.WarnContext(ctx, "tournament submission failed",
			"title", req.TournamentTitle,
			"client_ip", clientIP(r),
			"country", clientCountry(r),
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusAccepted, submissionAcceptedDTO{ThankYouType: string(kind)})
}

func (h *Handler) SubmitVerification(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitVerification")
	defer span.End()

	var req verificationRequest
	if err := h.decodeJSON(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	kind, err := h.submissionService.ApplyVerification(ctx, req.toDomain())
	if err != nil {
		h.logger.WarnContext(ctx, "verification application failed",
			"organizer_name", req.OrganizerName,
			"country", clientCountry(r),
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusAccepted, submissionAcceptedDTO{ThankYouType: string(kind)})
}

func (h *Handler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitContact")
	defer span.End()

	var req contactRequest
	if err := h.decodeJSON(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	kind, err := h.submissionService.Contact(ctx, submission.ContactMessage{
		FullName: req.FullName,
		Email:    req.Email,
		Subject:  req.Subject,
		Message:  req.Message,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "contact message failed", "country", clientCountry(r), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusAccepted, submissionAcceptedDTO{ThankYouType: string(kind)})
}

func (h *Handler) SubscribeNewsletter(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubscribeNewsletter")
	defer span.End()

	var req newsletterRequest
	if err := h.decodeJSON(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	kind, err := h.submissionService.Subscribe(ctx, submission.NewsletterSignup{Email: req.Email})
	if err != nil {
		h.logger.WarnContext(ctx, "newsletter signup failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusAccepted, submissionAcceptedDTO{ThankYouType: string(kind)})
}
