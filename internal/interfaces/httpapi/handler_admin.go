package httpapi

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/ffmaxarena/arena-api/internal/usecase"
)

const maxDraftBytes = 256 * 1024

func (h *Handler) GetAdminSnapshot(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetAdminSnapshot")
	defer span.End()

	snapshot, err := h.adminService.Snapshot(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "load admin snapshot failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, snapshotToDTO(snapshot))
}

func (h *Handler) CreateTournament(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateTournament")
	defer span.End()

	var req tournamentRequest
	if err := h.decodeJSON(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	snapshot, err := h.adminService.CreateTournament(ctx, req.toDomain(0))
	if err != nil {
		h.logger.WarnContext(ctx, "create tournament failed", "admin", adminEmail(r), "title", req.Title, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, snapshotToDTO(snapshot))
}

func (h *Handler) UpdateTournament(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateTournament")
	defer span.End()

	id, err := parseID(r.PathValue("tournamentID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req tournamentRequest
	if err := h.decodeJSON(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	snapshot, err := h.adminService.UpdateTournament(ctx, req.toDomain(id))
	if err != nil {
		h.logger.WarnContext(ctx, "update tournament failed", "admin", adminEmail(r), "tournament_id", id, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, snapshotToDTO(snapshot))
}

func (h *Handler) DeleteTournament(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteTournament")
	defer span.End()

	id, err := parseID(r.PathValue("tournamentID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	snapshot, err := h.adminService.DeleteTournament(ctx, id, confirmed(r))
	if err != nil {
		h.logger.WarnContext(ctx, "delete tournament failed", "admin", adminEmail(r), "tournament_id", id, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, snapshotToDTO(snapshot))
}

func (h *Handler) CreateOrganizer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateOrganizer")
	defer span.End()

	var req organizerRequest
	if err := h.decodeJSON(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	snapshot, err := h.adminService.CreateOrganizer(ctx, req.toDomain(0))
	if err != nil {
		h.logger.WarnContext(ctx, "create organizer failed", "admin", adminEmail(r), "name", req.Name, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, snapshotToDTO(snapshot))
}

func (h *Handler) UpdateOrganizer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateOrganizer")
	defer span.End()

	id, err := parseID(r.PathValue("organizerID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req organizerRequest
	if err := h.decodeJSON(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	snapshot, err := h.adminService.UpdateOrganizer(ctx, req.toDomain(id))
	if err != nil {
		h.logger.WarnContext(ctx, "update organizer failed", "admin", adminEmail(r), "organizer_id", id, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, snapshotToDTO(snapshot))
}

func (h *Handler) DeleteOrganizer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteOrganizer")
	defer span.End()

	id, err := parseID(r.PathValue("organizerID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	snapshot, err := h.adminService.DeleteOrganizer(ctx, id, confirmed(r))
	if err != nil {
		h.logger.WarnContext(ctx, "delete organizer failed", "admin", adminEmail(r), "organizer_id", id, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, snapshotToDTO(snapshot))
}

func (h *Handler) GetDraft(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetDraft")
	defer span.End()

	item, err := h.draftService.Get(ctx, r.PathValue("draftKey"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, draftToDTO(item))
}

func (h *Handler) SaveDraft(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SaveDraft")
	defer span.End()

	raw, err := io.ReadAll(io.LimitReader(r.Body, maxDraftBytes+1))
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: read draft body: %v", usecase.ErrInvalidInput, err))
		return
	}
	if len(raw) > maxDraftBytes {
		writeError(ctx, w, fmt.Errorf("%w: draft payload exceeds %d bytes", usecase.ErrInvalidInput, maxDraftBytes))
		return
	}

	item, err := h.draftService.Save(ctx, r.PathValue("draftKey"), json.RawMessage(raw))
	if err != nil {
		h.logger.WarnContext(ctx, "save draft failed", "draft_key", r.PathValue("draftKey"), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, draftToDTO(item))
}

func (h *Handler) DiscardDraft(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DiscardDraft")
	defer span.End()

	key := r.PathValue("draftKey")
	if err := h.draftService.Discard(ctx, key); err != nil {
		h.logger.WarnContext(ctx, "discard draft failed", "draft_key", key, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"key": key, "status": "discarded"})
}

func confirmed(r *http.Request) bool {
	ok, err := strconv.ParseBool(strings.TrimSpace(r.URL.Query().Get("confirm")))
	return err == nil && ok
}

func adminEmail(r *http.Request) string {
	principal, ok := principalFromContext(r.Context())
	if !ok {
		return ""
	}
	return principal.Email
}
