package httpapi

import (
	"net/http"

	"github.com/ffmaxarena/arena-api/internal/usecase"
	"go.opentelemetry.io/otel/attribute"
)

func (h *Handler) ListOrganizers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListOrganizers")
	defer span.End()

	items, err := h.organizerService.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list organizers failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, organizersToDTO(items))
}

func (h *Handler) GetOrganizer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetOrganizer", attribute.String("organizer.id", r.PathValue("organizerID")))
	defer span.End()

	id, err := parseID(r.PathValue("organizerID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	profile, err := h.organizerService.Get(ctx, id)
	if err != nil {
		h.logger.WarnContext(ctx, "get organizer failed", "organizer_id", id, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, organizerProfileDTO{
		Organizer:            organizerToDTO(profile.Organizer),
		UpcomingTournaments:  viewsToDTO(profile.Upcoming),
		CompletedTournaments: viewsToDTO(profile.Completed),
		PlayersServed:        profile.PlayersServed,
		PlayersServedDisplay: usecase.FormatNumber(profile.PlayersServed),
	})
}
