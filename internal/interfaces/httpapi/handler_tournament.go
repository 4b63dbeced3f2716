package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/ffmaxarena/arena-api/internal/domain/tournament"
	"github.com/ffmaxarena/arena-api/internal/usecase"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel/attribute"
)

const (
	streamWriteWait  = 10 * time.Second
	streamReadLimit  = 512
	closeReasonEnded = "tournament completed"
)

func (h *Handler) ListTournaments(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTournaments")
	defer span.End()

	query, err := parseListQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	listing, err := h.tournamentService.List(ctx, query)
	if err != nil {
		h.logger.ErrorContext(ctx, "list tournaments failed", "search", query.Search, "page", query.Page, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, tournamentListDTO{
		Items:      viewsToDTO(listing.Items),
		Total:      listing.Total,
		Page:       listing.Page,
		PageSize:   listing.PageSize,
		TotalPages: listing.TotalPages,
	})
}

func (h *Handler) ListFeaturedTournaments(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListFeaturedTournaments")
	defer span.End()

	items, err := h.tournamentService.Featured(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list featured tournaments failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, rankedToDTO(items))
}

func (h *Handler) GetTournament(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTournament", attribute.String("tournament.id", r.PathValue("tournamentID")))
	defer span.End()

	id, err := parseID(r.PathValue("tournamentID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	detail, err := h.tournamentService.Get(ctx, id)
	if err != nil {
		h.logger.WarnContext(ctx, "get tournament failed", "tournament_id", id, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := tournamentDetailDTO{
		Tournament: tournamentViewToDTO(detail.Tournament, detail.Status),
		Countdown:  countdownToDTO(detail.Countdown),
		StartsAt:   detail.StartsAt,
	}
	if detail.Organizer != nil {
		org := organizerToDTO(*detail.Organizer)
		out.Organizer = &org
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

// StreamTournamentStatus upgrades to a websocket and pushes status and
// countdown frames until the tournament completes or the client leaves.
func (h *Handler) StreamTournamentStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.StreamTournamentStatus", attribute.String("tournament.id", r.PathValue("tournamentID")))
	defer span.End()

	id, err := parseID(r.PathValue("tournamentID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.tournamentService.Lookup(ctx, id)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error.
		h.logger.WarnContext(ctx, "websocket upgrade failed", "tournament_id", id, "error", err)
		return
	}
	defer conn.Close()

	streamID := uuid.NewString()
	logger := h.logger.With("stream_id", streamID, "tournament_id", id)
	logger.InfoContext(ctx, "status stream opened")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go readUntilClosed(conn, cancel)

	err = h.statusWatcher.Watch(ctx, item, func(frame usecase.StatusFrame) error {
		payload, err := sonic.Marshal(frameToDTO(frame))
		if err != nil {
			return fmt.Errorf("encode status frame: %w", err)
		}
		_ = conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
		return conn.WriteMessage(websocket.TextMessage, payload)
	})

	switch {
	case err == nil:
		deadline := time.Now().Add(streamWriteWait)
		_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, closeReasonEnded), deadline)
		logger.InfoContext(ctx, "status stream completed")
	case errors.Is(err, context.Canceled):
		logger.InfoContext(ctx, "status stream closed by client")
	default:
		logger.WarnContext(ctx, "status stream ended", "error", err)
	}
}

// readUntilClosed drains client frames so control frames are handled, and
// cancels the stream once the connection drops.
func readUntilClosed(conn *websocket.Conn, cancel context.CancelFunc) {
	defer cancel()

	// Server read and write timeouts carry over from the upgrade request.
	_ = conn.SetReadDeadline(time.Time{})
	conn.SetReadLimit(streamReadLimit)
	for {
		if _, _, err := conn.NextReader(); err != nil {
			return
		}
	}
}

func parseListQuery(r *http.Request) (tournament.ListQuery, error) {
	values := r.URL.Query()

	mode, err := tournament.ParseGameMode(values.Get("game_mode"))
	if err != nil {
		return tournament.ListQuery{}, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}
	entry, err := tournament.ParseEntryType(values.Get("type"))
	if err != nil {
		return tournament.ListQuery{}, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}

	page := 1
	if raw := strings.TrimSpace(values.Get("page")); raw != "" {
		page, err = strconv.Atoi(raw)
		if err != nil {
			return tournament.ListQuery{}, fmt.Errorf("%w: page must be an integer", usecase.ErrInvalidInput)
		}
		if page > tournament.MaxPage {
			return tournament.ListQuery{}, fmt.Errorf("%w: page is out of range", usecase.ErrInvalidInput)
		}
	}

	return tournament.ListQuery{
		Search:    values.Get("search"),
		GameMode:  mode,
		EntryType: entry,
		Page:      page,
	}.Normalize(), nil
}
