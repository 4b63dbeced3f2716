package httpapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/ffmaxarena/arena-api/internal/platform/logging"
	"github.com/ffmaxarena/arena-api/internal/usecase"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"
)

// HandlerDeps groups the use cases served over HTTP.
type HandlerDeps struct {
	Tournaments *usecase.TournamentService
	Organizers  *usecase.OrganizerService
	Home        *usecase.HomeService
	Admin       *usecase.AdminService
	Drafts      *usecase.DraftService
	Submissions *usecase.SubmissionService
	Uploads     *usecase.UploadService
	Auth        *usecase.AuthService
	Watcher     *usecase.StatusWatcher
}

type Handler struct {
	tournamentService *usecase.TournamentService
	organizerService  *usecase.OrganizerService
	homeService       *usecase.HomeService
	adminService      *usecase.AdminService
	draftService      *usecase.DraftService
	submissionService *usecase.SubmissionService
	uploadService     *usecase.UploadService
	authService       *usecase.AuthService
	statusWatcher     *usecase.StatusWatcher
	logger            *logging.Logger
	validator         *validator.Validate
	upgrader          websocket.Upgrader
	clock             clockwork.Clock
	location          *time.Location
}

func NewHandler(
	deps HandlerDeps,
	logger *logging.Logger,
	clock clockwork.Clock,
	location *time.Location,
	allowedOrigins []string,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if location == nil {
		location = time.Local
	}

	return &Handler{
		tournamentService: deps.Tournaments,
		organizerService:  deps.Organizers,
		homeService:       deps.Home,
		adminService:      deps.Admin,
		draftService:      deps.Drafts,
		submissionService: deps.Submissions,
		uploadService:     deps.Uploads,
		authService:       deps.Auth,
		statusWatcher:     deps.Watcher,
		logger:            logger,
		validator:         newValidator(clock, location),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
		clock:    clock,
		location: location,
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return newValidationError(err)
	}

	return nil
}

// decodeJSON reads a strict JSON body and validates it.
func (h *Handler) decodeJSON(ctx context.Context, r *http.Request, dst any) error {
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		if err == io.EOF {
			return fmt.Errorf("%w: request body is required", usecase.ErrInvalidInput)
		}
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return h.validateRequest(ctx, dst)
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: id must be a positive integer", usecase.ErrInvalidInput)
	}
	return id, nil
}

func originChecker(allowedOrigins []string) func(*http.Request) bool {
	allowAll := false
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		candidate := strings.TrimSpace(origin)
		if candidate == "*" {
			allowAll = true
			continue
		}
		if candidate != "" {
			allowed[candidate] = struct{}{}
		}
	}

	return func(r *http.Request) bool {
		origin := strings.TrimSpace(r.Header.Get("Origin"))
		if origin == "" || allowAll {
			return true
		}
		_, ok := allowed[origin]
		return ok
	}
}
