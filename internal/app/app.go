package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/ffmaxarena/arena-api/internal/config"
	"github.com/ffmaxarena/arena-api/internal/domain/draft"
	"github.com/ffmaxarena/arena-api/internal/domain/media"
	"github.com/ffmaxarena/arena-api/internal/domain/organizer"
	"github.com/ffmaxarena/arena-api/internal/domain/tournament"
	"github.com/ffmaxarena/arena-api/internal/domain/user"
	"github.com/ffmaxarena/arena-api/internal/infrastructure/account/identity"
	"github.com/ffmaxarena/arena-api/internal/infrastructure/account/local"
	"github.com/ffmaxarena/arena-api/internal/infrastructure/draftstore"
	"github.com/ffmaxarena/arena-api/internal/infrastructure/formrelay"
	repocache "github.com/ffmaxarena/arena-api/internal/infrastructure/repository/cache"
	"github.com/ffmaxarena/arena-api/internal/infrastructure/repository/memory"
	"github.com/ffmaxarena/arena-api/internal/infrastructure/repository/postgres"
	"github.com/ffmaxarena/arena-api/internal/infrastructure/storage"
	"github.com/ffmaxarena/arena-api/internal/interfaces/httpapi"
	basecache "github.com/ffmaxarena/arena-api/internal/platform/cache"
	"github.com/ffmaxarena/arena-api/internal/platform/logging"
	"github.com/ffmaxarena/arena-api/internal/usecase"
	"github.com/go-co-op/gocron/v2"
	"github.com/jonboulle/clockwork"
)

// App owns the HTTP server, the background catalog refresh and every
// connection opened while wiring them.
type App struct {
	cfg       config.Config
	logger    *logging.Logger
	server    *http.Server
	scheduler gocron.Scheduler
	refresher *usecase.CatalogRefresher
	closers   []closer
}

type closer struct {
	name string
	fn   func() error
}

type repositories struct {
	tournaments  tournament.Repository
	organizers   organizer.Repository
	invalidators []usecase.CacheInvalidator
}

// New wires the service. On error, anything already opened is closed.
func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (_ *App, err error) {
	if logger == nil {
		logger = logging.Default()
	}
	clock := clockwork.NewRealClock()

	a := &App{cfg: cfg, logger: logger}
	defer func() {
		if err != nil {
			a.closeAll()
		}
	}()

	repos, err := a.buildRepositories(ctx, clock)
	if err != nil {
		return nil, err
	}
	drafts, err := a.buildDraftStore(ctx, clock)
	if err != nil {
		return nil, err
	}
	uploader, err := a.buildUploader(ctx)
	if err != nil {
		return nil, err
	}
	authenticator, err := a.buildAuthenticator(clock)
	if err != nil {
		return nil, err
	}
	relay, err := formrelay.NewClient(formrelay.Config{
		URL:       cfg.FormRelayURL,
		AccessKey: cfg.FormRelayAccessKey,
		Timeout:   cfg.FormRelayTimeout,
		Breaker:   cfg.FormRelayBreaker,
	}, logger, clock)
	if err != nil {
		return nil, fmt.Errorf("build form relay client: %w", err)
	}

	handler := httpapi.NewHandler(httpapi.HandlerDeps{
		Tournaments: usecase.NewTournamentService(repos.tournaments, repos.organizers, clock, cfg.Location),
		Organizers:  usecase.NewOrganizerService(repos.organizers, repos.tournaments, clock, cfg.Location),
		Home:        usecase.NewHomeService(repos.tournaments, repos.organizers, clock, cfg.Location),
		Admin:       usecase.NewAdminService(repos.tournaments, repos.organizers, drafts, logger),
		Drafts:      usecase.NewDraftService(drafts, clock),
		Submissions: usecase.NewSubmissionService(relay, clock, cfg.Location, logger),
		Uploads:     usecase.NewUploadService(uploader, clock),
		Auth:        usecase.NewAuthService(authenticator),
		Watcher:     usecase.NewStatusWatcher(clock, cfg.Location),
	}, logger, clock, cfg.Location, cfg.CORSAllowedOrigins)
	router := httpapi.NewRouter(handler, authenticator, logger, cfg.SwaggerEnabled, cfg.CORSAllowedOrigins)

	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}
	a.server = &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
	}

	a.refresher = usecase.NewCatalogRefresher(
		repos.tournaments,
		repos.organizers,
		repos.invalidators,
		cfg.CatalogWarmWorkers,
		clock,
		cfg.Location,
		logger,
	)
	a.scheduler, err = newCatalogScheduler(ctx, clock, cfg.CatalogRefreshInterval, a.refresher, logger)
	if err != nil {
		return nil, err
	}

	return a, nil
}

// Handler exposes the router for in-process tests.
func (a *App) Handler() http.Handler {
	return a.server.Handler
}

// Run serves HTTP until ctx is cancelled, then shuts everything down within
// the configured timeout.
func (a *App) Run(ctx context.Context) error {
	a.scheduler.Start()

	serveErr := make(chan error, 1)
	go func() {
		a.logger.Info("http server starting", "addr", a.cfg.HTTPAddr, "backend", a.cfg.DataBackend)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	var runErr error
	select {
	case <-ctx.Done():
	case err, ok := <-serveErr:
		if ok {
			runErr = fmt.Errorf("http server failed: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("graceful shutdown failed", "error", err)
		runErr = errors.Join(runErr, err)
	}
	if err := a.scheduler.Shutdown(); err != nil {
		a.logger.Warn("scheduler shutdown failed", "error", err)
	}
	a.closeAll()
	a.logger.Info("http server stopped")

	return runErr
}

func (a *App) closeAll() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		c := a.closers[i]
		if err := c.fn(); err != nil {
			a.logger.Warn("close dependency failed", "dependency", c.name, "error", err)
		}
	}
	a.closers = nil
}

func (a *App) onClose(name string, fn func() error) {
	a.closers = append(a.closers, closer{name: name, fn: fn})
}

func (a *App) loadCatalog() (memory.Catalog, error) {
	if a.cfg.SeedFile == "" {
		return memory.DefaultCatalog(), nil
	}
	catalog, err := memory.LoadCatalog(a.cfg.SeedFile)
	if err != nil {
		return memory.Catalog{}, fmt.Errorf("load seed catalog: %w", err)
	}
	return catalog, nil
}

func (a *App) buildRepositories(ctx context.Context, clock clockwork.Clock) (repositories, error) {
	catalog, err := a.loadCatalog()
	if err != nil {
		return repositories{}, err
	}

	var (
		tournaments tournament.Repository
		organizers  organizer.Repository
	)
	switch a.cfg.DataBackend {
	case config.BackendMemory:
		tournaments = memory.NewTournamentRepository(catalog.Tournaments, clock)
		organizers = memory.NewOrganizerRepository(catalog.Organizers, clock)
	default:
		db, err := openDB(ctx, a.cfg)
		if err != nil {
			return repositories{}, err
		}
		a.onClose("postgres", db.Close)

		if err := postgres.BootstrapSeed(ctx, db, catalog); err != nil {
			return repositories{}, fmt.Errorf("bootstrap seed: %w", err)
		}
		tournaments = postgres.NewTournamentRepository(db)
		organizers = postgres.NewOrganizerRepository(db)
	}

	if !a.cfg.CacheEnabled {
		return repositories{tournaments: tournaments, organizers: organizers}, nil
	}

	store := basecache.NewStore(a.cfg.CacheTTL, clock)
	cachedTournaments := repocache.NewTournamentRepository(tournaments, store)
	cachedOrganizers := repocache.NewOrganizerRepository(organizers, store)
	return repositories{
		tournaments:  cachedTournaments,
		organizers:   cachedOrganizers,
		invalidators: []usecase.CacheInvalidator{cachedTournaments, cachedOrganizers},
	}, nil
}

func (a *App) buildDraftStore(ctx context.Context, clock clockwork.Clock) (draft.Store, error) {
	if a.cfg.DraftStore != config.DraftStoreRedis {
		return draftstore.NewMemoryStore(a.cfg.DraftTTL, clock), nil
	}

	rdb, err := draftstore.OpenRedis(ctx, a.cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("open draft store: %w", err)
	}
	a.onClose("redis", rdb.Close)
	return draftstore.NewRedisStore(rdb, a.cfg.DraftTTL), nil
}

// buildUploader returns a nil Uploader when storage is disabled; uploads then
// fail with a dependency error.
func (a *App) buildUploader(ctx context.Context) (media.Uploader, error) {
	if !a.cfg.StorageEnabled {
		a.logger.Info("object storage disabled", "reason", "STORAGE_ENABLED=false")
		return nil, nil
	}

	uploader, err := storage.NewS3Uploader(ctx, storage.Config{
		Endpoint:        a.cfg.StorageEndpoint,
		Region:          a.cfg.StorageRegion,
		AccessKeyID:     a.cfg.StorageAccessKeyID,
		SecretAccessKey: a.cfg.StorageSecretAccessKey,
		Bucket:          a.cfg.StorageBucket,
		PublicBaseURL:   a.cfg.StoragePublicBaseURL,
		UsePathStyle:    a.cfg.StorageUsePathStyle,
	}, a.logger)
	if err != nil {
		return nil, fmt.Errorf("build object storage: %w", err)
	}
	return uploader, nil
}

type adminAuthenticator interface {
	user.Authenticator
	httpapi.TokenVerifier
}

func (a *App) buildAuthenticator(clock clockwork.Clock) (adminAuthenticator, error) {
	if a.cfg.AuthProvider == config.AuthRemote {
		return identity.NewClient(nil, identity.Config{
			BaseURL:        a.cfg.IdentityBaseURL,
			LoginPath:      a.cfg.IdentityLoginPath,
			IntrospectPath: a.cfg.IdentityIntrospectPath,
			APIKey:         a.cfg.IdentityAPIKey,
			Timeout:        a.cfg.IdentityTimeout,
			CacheTTL:       a.cfg.IdentityCacheTTL,
			Breaker:        a.cfg.IdentityBreaker,
		}, a.logger, clock), nil
	}

	provider, err := local.NewProvider(local.Config{
		AdminEmail:        a.cfg.AdminEmail,
		AdminPasswordHash: a.cfg.AdminPasswordHash,
		JWTSecret:         a.cfg.AdminJWTSecret,
		SessionTTL:        a.cfg.AdminSessionTTL,
	}, a.logger, clock)
	if err != nil {
		return nil, fmt.Errorf("build local auth provider: %w", err)
	}
	return provider, nil
}
