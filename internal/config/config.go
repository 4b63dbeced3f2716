package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ffmaxarena/arena-api/internal/platform/logging"
	"github.com/ffmaxarena/arena-api/internal/platform/resilience"
	"github.com/joho/godotenv"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

const (
	BackendPostgres = "postgres"
	BackendMemory   = "memory"

	AuthRemote = "remote"
	AuthLocal  = "local"

	DraftStoreMemory = "memory"
	DraftStoreRedis  = "redis"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv          string
	ServiceName     string
	ServiceVersion  string
	HTTPAddr        string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	LogLevel        logging.Level

	CORSAllowedOrigins []string
	SwaggerEnabled     bool
	Location           *time.Location

	DataBackend       string
	DBURL             string
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration
	SeedFile          string

	CacheEnabled           bool
	CacheTTL               time.Duration
	CatalogRefreshInterval time.Duration
	CatalogWarmWorkers     int

	FormRelayURL       string
	FormRelayAccessKey string
	FormRelayTimeout   time.Duration
	FormRelayBreaker   resilience.BreakerConfig

	StorageEnabled         bool
	StorageEndpoint        string
	StorageRegion          string
	StorageAccessKeyID     string
	StorageSecretAccessKey string
	StorageBucket          string
	StoragePublicBaseURL   string
	StorageUsePathStyle    bool

	AuthProvider           string
	IdentityBaseURL        string
	IdentityLoginPath      string
	IdentityIntrospectPath string
	IdentityAPIKey         string
	IdentityTimeout        time.Duration
	IdentityCacheTTL       time.Duration
	IdentityBreaker        resilience.BreakerConfig
	AdminEmail             string
	AdminPasswordHash      string
	AdminJWTSecret         string
	AdminSessionTTL        time.Duration

	DraftStore string
	RedisURL   string
	DraftTTL   time.Duration

	PprofEnabled bool
	PprofAddr    string

	UptraceEnabled             bool
	UptraceDSN                 string
	UptraceLogsEnabled         bool
	UptraceCaptureRequestBody  bool
	UptraceRequestBodyMaxBytes int

	BetterStackEnabled  bool
	BetterStackEndpoint string
	BetterStackToken    string
	BetterStackTimeout  time.Duration
	BetterStackMinLevel logging.Level

	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration
}

// LoadDotEnv reads .env style files into the process environment without
// overriding variables that are already set. Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", path, err)
		}
	}
	return nil
}

func Load() (Config, error) {
	p := &parser{}

	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}
	swaggerDefault := "true"
	if appEnv == EnvProd {
		swaggerDefault = "false"
	}

	cfg := Config{
		AppEnv:          appEnv,
		ServiceName:     getEnv("APP_SERVICE_NAME", "ffmaxarena-api"),
		ServiceVersion:  getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:        strings.TrimSpace(getEnv("APP_HTTP_ADDR", ":8080")),
		ReadTimeout:     p.positiveDuration("APP_READ_TIMEOUT", "10s"),
		WriteTimeout:    p.positiveDuration("APP_WRITE_TIMEOUT", "15s"),
		ShutdownTimeout: p.positiveDuration("APP_SHUTDOWN_TIMEOUT", "10s"),
		LogLevel:        p.level("APP_LOG_LEVEL", "info"),

		CORSAllowedOrigins: splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		SwaggerEnabled:     p.bool("SWAGGER_ENABLED", swaggerDefault),

		DataBackend:       strings.ToLower(strings.TrimSpace(getEnv("DATA_BACKEND", BackendPostgres))),
		DBURL:             strings.TrimSpace(getEnv("DB_URL", "")),
		DBMaxOpenConns:    p.minInt("DB_MAX_OPEN_CONNS", 10, 1),
		DBMaxIdleConns:    p.minInt("DB_MAX_IDLE_CONNS", 5, 0),
		DBConnMaxLifetime: p.positiveDuration("DB_CONN_MAX_LIFETIME", "30m"),
		SeedFile:          strings.TrimSpace(getEnv("SEED_FILE", "")),

		CacheEnabled:           p.bool("CACHE_ENABLED", "true"),
		CacheTTL:               p.positiveDuration("CACHE_TTL", "60s"),
		CatalogRefreshInterval: p.positiveDuration("CATALOG_REFRESH_INTERVAL", "5m"),
		CatalogWarmWorkers:     p.minInt("CATALOG_WARM_WORKERS", 4, 1),

		FormRelayURL:       strings.TrimSpace(getEnv("FORM_RELAY_URL", "https://api.web3forms.com/submit")),
		FormRelayAccessKey: strings.TrimSpace(getEnv("FORM_RELAY_ACCESS_KEY", "")),
		FormRelayTimeout:   p.positiveDuration("FORM_RELAY_TIMEOUT", "10s"),
		FormRelayBreaker:   p.breaker("FORM_RELAY"),

		StorageEnabled:         p.bool("STORAGE_ENABLED", "false"),
		StorageEndpoint:        strings.TrimSpace(getEnv("STORAGE_ENDPOINT", "")),
		StorageRegion:          strings.TrimSpace(getEnv("STORAGE_REGION", "auto")),
		StorageAccessKeyID:     strings.TrimSpace(getEnv("STORAGE_ACCESS_KEY_ID", "")),
		StorageSecretAccessKey: strings.TrimSpace(getEnv("STORAGE_SECRET_ACCESS_KEY", "")),
		StorageBucket:          strings.TrimSpace(getEnv("STORAGE_BUCKET", "tournament-posters")),
		StoragePublicBaseURL:   strings.TrimSuffix(strings.TrimSpace(getEnv("STORAGE_PUBLIC_BASE_URL", "")), "/"),
		StorageUsePathStyle:    p.bool("STORAGE_USE_PATH_STYLE", "true"),

		AuthProvider:           strings.ToLower(strings.TrimSpace(getEnv("AUTH_PROVIDER", AuthLocal))),
		IdentityBaseURL:        strings.TrimSpace(getEnv("IDENTITY_BASE_URL", "http://localhost:8081")),
		IdentityLoginPath:      strings.TrimSpace(getEnv("IDENTITY_LOGIN_PATH", "/auth/v1/token?grant_type=password")),
		IdentityIntrospectPath: strings.TrimSpace(getEnv("IDENTITY_INTROSPECT_PATH", "/auth/v1/user")),
		IdentityAPIKey:         strings.TrimSpace(getEnv("IDENTITY_API_KEY", "")),
		IdentityTimeout:        p.positiveDuration("IDENTITY_TIMEOUT", "3s"),
		IdentityCacheTTL:       p.duration("IDENTITY_CACHE_TTL", "30s"),
		IdentityBreaker:        p.breaker("IDENTITY"),
		AdminEmail:             strings.TrimSpace(getEnv("ADMIN_EMAIL", "")),
		AdminPasswordHash:      strings.TrimSpace(getEnv("ADMIN_PASSWORD_HASH", "")),
		AdminJWTSecret:         strings.TrimSpace(getEnv("ADMIN_JWT_SECRET", "")),
		AdminSessionTTL:        p.positiveDuration("ADMIN_SESSION_TTL", "12h"),

		DraftStore: strings.ToLower(strings.TrimSpace(getEnv("DRAFT_STORE", DraftStoreMemory))),
		RedisURL:   strings.TrimSpace(getEnv("REDIS_URL", "")),
		DraftTTL:   p.positiveDuration("DRAFT_TTL", "168h"),

		PprofEnabled: p.bool("PPROF_ENABLED", "false"),
		PprofAddr:    strings.TrimSpace(getEnv("PPROF_ADDR", ":6060")),

		UptraceEnabled:             p.bool("UPTRACE_ENABLED", "false"),
		UptraceDSN:                 strings.TrimSpace(getEnv("UPTRACE_DSN", "")),
		UptraceLogsEnabled:         p.bool("UPTRACE_LOGS_ENABLED", "true"),
		UptraceCaptureRequestBody:  p.bool("UPTRACE_CAPTURE_REQUEST_BODY", "true"),
		UptraceRequestBodyMaxBytes: p.minInt("UPTRACE_REQUEST_BODY_MAX_BYTES", 8192, 1),

		BetterStackEnabled:  p.bool("BETTERSTACK_ENABLED", "false"),
		BetterStackEndpoint: strings.TrimSpace(getEnv("BETTERSTACK_ENDPOINT", "")),
		BetterStackToken:    strings.TrimSpace(getEnv("BETTERSTACK_TOKEN", "")),
		BetterStackTimeout:  p.positiveDuration("BETTERSTACK_TIMEOUT", "3s"),
		BetterStackMinLevel: p.level("BETTERSTACK_MIN_LEVEL", "error"),

		PyroscopeEnabled:           p.bool("PYROSCOPE_ENABLED", "false"),
		PyroscopeServerAddress:     strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", "")),
		PyroscopeAuthToken:         strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:     strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword: strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:        p.positiveDuration("PYROSCOPE_UPLOAD_RATE", "15s"),
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.UptraceDSN == "" {
		cfg.UptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}

	loc, err := time.LoadLocation(strings.TrimSpace(getEnv("APP_TIMEZONE", "Asia/Kolkata")))
	if err != nil {
		p.fail(fmt.Errorf("parse APP_TIMEZONE: %w", err))
	}
	cfg.Location = loc

	if p.err != nil {
		return Config{}, p.err
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) validate() error {
	if c.HTTPAddr == "" {
		return fmt.Errorf("APP_HTTP_ADDR cannot be empty")
	}
	if len(c.CORSAllowedOrigins) == 0 {
		return fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	switch c.DataBackend {
	case BackendPostgres:
		if c.DBURL == "" {
			return fmt.Errorf("DB_URL is required when DATA_BACKEND=%s", BackendPostgres)
		}
	case BackendMemory:
	default:
		return fmt.Errorf("invalid DATA_BACKEND %q: valid values are %s, %s", c.DataBackend, BackendPostgres, BackendMemory)
	}

	if c.FormRelayAccessKey == "" {
		return fmt.Errorf("FORM_RELAY_ACCESS_KEY is required")
	}
	if c.FormRelayURL == "" {
		return fmt.Errorf("FORM_RELAY_URL cannot be empty")
	}

	if c.StorageEnabled {
		if c.StorageEndpoint == "" {
			return fmt.Errorf("STORAGE_ENDPOINT is required when STORAGE_ENABLED=true")
		}
		if c.StorageAccessKeyID == "" || c.StorageSecretAccessKey == "" {
			return fmt.Errorf("STORAGE_ACCESS_KEY_ID and STORAGE_SECRET_ACCESS_KEY are required when STORAGE_ENABLED=true")
		}
		if c.StoragePublicBaseURL == "" {
			return fmt.Errorf("STORAGE_PUBLIC_BASE_URL is required when STORAGE_ENABLED=true")
		}
	}

	switch c.AuthProvider {
	case AuthRemote:
		if c.IdentityBaseURL == "" {
			return fmt.Errorf("IDENTITY_BASE_URL is required when AUTH_PROVIDER=%s", AuthRemote)
		}
	case AuthLocal:
		if c.AdminEmail == "" || c.AdminPasswordHash == "" {
			return fmt.Errorf("ADMIN_EMAIL and ADMIN_PASSWORD_HASH are required when AUTH_PROVIDER=%s", AuthLocal)
		}
		if len(c.AdminJWTSecret) < 32 {
			return fmt.Errorf("ADMIN_JWT_SECRET must be at least 32 characters when AUTH_PROVIDER=%s", AuthLocal)
		}
	default:
		return fmt.Errorf("invalid AUTH_PROVIDER %q: valid values are %s, %s", c.AuthProvider, AuthRemote, AuthLocal)
	}

	switch c.DraftStore {
	case DraftStoreMemory:
	case DraftStoreRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("REDIS_URL is required when DRAFT_STORE=%s", DraftStoreRedis)
		}
	default:
		return fmt.Errorf("invalid DRAFT_STORE %q: valid values are %s, %s", c.DraftStore, DraftStoreMemory, DraftStoreRedis)
	}

	if c.PprofEnabled && c.PprofAddr == "" {
		return fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}
	if c.UptraceEnabled && c.UptraceDSN == "" {
		return fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}
	if c.BetterStackEnabled && c.BetterStackEndpoint == "" {
		return fmt.Errorf("BETTERSTACK_ENDPOINT is required when BETTERSTACK_ENABLED=true")
	}
	if c.PyroscopeEnabled && c.PyroscopeServerAddress == "" {
		return fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	if c.PyroscopeEnabled && c.PyroscopeAppName == "" {
		return fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	}

	return nil
}

// parser keeps the first parse error so Load can read every variable in one pass.
type parser struct {
	err error
}

func (p *parser) fail(err error) {
	if p.err == nil {
		p.err = err
	}
}

func (p *parser) bool(key, fallback string) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(getEnv(key, fallback)))
	if err != nil {
		p.fail(fmt.Errorf("parse %s: %w", key, err))
	}
	return v
}

func (p *parser) duration(key, fallback string) time.Duration {
	v, err := time.ParseDuration(strings.TrimSpace(getEnv(key, fallback)))
	if err != nil {
		p.fail(fmt.Errorf("parse %s: %w", key, err))
	}
	return v
}

func (p *parser) positiveDuration(key, fallback string) time.Duration {
	v := p.duration(key, fallback)
	if v <= 0 {
		p.fail(fmt.Errorf("%s must be > 0", key))
	}
	return v
}

func (p *parser) minInt(key string, fallback, min int) int {
	v, err := getEnvAsInt(key, fallback)
	if err != nil {
		p.fail(fmt.Errorf("parse %s: %w", key, err))
		return fallback
	}
	if v < min {
		p.fail(fmt.Errorf("%s must be >= %d", key, min))
	}
	return v
}

func (p *parser) level(key, fallback string) logging.Level {
	v, err := logging.ParseLevel(getEnv(key, fallback))
	if err != nil {
		p.fail(fmt.Errorf("parse %s: %w", key, err))
	}
	return v
}

// breaker reads {prefix}_CIRCUIT_* settings.
func (p *parser) breaker(prefix string) resilience.BreakerConfig {
	return resilience.BreakerConfig{
		Enabled:          p.bool(prefix+"_CIRCUIT_ENABLED", "true"),
		FailureThreshold: p.minInt(prefix+"_CIRCUIT_FAILURE_COUNT", 5, 1),
		OpenTimeout:      p.positiveDuration(prefix+"_CIRCUIT_OPEN_TIMEOUT", "15s"),
		HalfOpenProbes:   p.minInt(prefix+"_CIRCUIT_HALF_OPEN_MAX_REQ", 2, 1),
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}
	return strconv.Atoi(value)
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if item := strings.TrimSpace(part); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	for _, item := range strings.Split(raw, ",") {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			return strings.Trim(strings.TrimSpace(parts[1]), "\"'")
		}
	}
	return ""
}

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
