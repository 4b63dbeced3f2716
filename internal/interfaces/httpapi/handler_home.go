package httpapi

import (
	"net/http"

	"github.com/ffmaxarena/arena-api/internal/domain/organizer"
	"github.com/ffmaxarena/arena-api/internal/domain/submission"
	"github.com/ffmaxarena/arena-api/internal/domain/tournament"
	"github.com/ffmaxarena/arena-api/internal/usecase"
)

func (h *Handler) GetHome(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetHome")
	defer span.End()

	overview, err := h.homeService.Overview(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "get home overview failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	stats := overview.Stats
	writeSuccess(ctx, w, http.StatusOK, homeDTO{
		Stats: homeStatsDTO{
			LiveTournaments:         stats.LiveTournaments,
			VerifiedOrganizers:      stats.Organizers,
			PlayersServed:           stats.PlayersServed,
			PlayersServedDisplay:    usecase.FormatNumber(stats.PlayersServed),
			TotalTournaments:        stats.TotalTournaments,
			TotalTournamentsDisplay: usecase.FormatNumber(stats.TotalTournaments),
		},
		Featured: rankedToDTO(overview.Featured),
	})
}

func (h *Handler) GetReference(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetReference")
	defer span.End()

	modes := make([]string, 0, len(tournament.GameModes)+1)
	modes = append(modes, string(tournament.GameModeAll))
	for _, mode := range tournament.GameModes {
		modes = append(modes, string(mode))
	}

	writeSuccess(ctx, w, http.StatusOK, referenceDTO{
		GameModes: modes,
		Maps:      append([]string(nil), tournament.Maps...),
		Badges:    append([]string(nil), organizer.Badges...),
		EntryTypes: []string{
			string(tournament.EntryTypeAll),
			string(tournament.EntryTypeFree),
			string(tournament.EntryTypePaid),
		},
	})
}

func (h *Handler) GetThankYou(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetThankYou")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, thankYouToDTO(submission.ThankYouFor(r.PathValue("kind"))))
}
