package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/ffmaxarena/arena-api/internal/config"
	"github.com/ffmaxarena/arena-api/internal/platform/logging"
	"github.com/ffmaxarena/arena-api/internal/platform/resilience"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	testAdminEmail    = "admin@ffmaxarena.test"
	testAdminPassword = "correct horse battery staple"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(testAdminPassword), bcrypt.MinCost)
	require.NoError(t, err)

	return config.Config{
		AppEnv:                 config.EnvDev,
		ServiceName:            "ffmaxarena-api",
		ServiceVersion:         "test",
		HTTPAddr:               "127.0.0.1:0",
		ReadTimeout:            5 * time.Second,
		WriteTimeout:           5 * time.Second,
		ShutdownTimeout:        5 * time.Second,
		CORSAllowedOrigins:     []string{"*"},
		SwaggerEnabled:         true,
		Location:               time.UTC,
		DataBackend:            config.BackendMemory,
		CacheEnabled:           true,
		CacheTTL:               time.Minute,
		CatalogRefreshInterval: time.Hour,
		CatalogWarmWorkers:     2,
		FormRelayURL:           "https://relay.example.com/submit",
		FormRelayAccessKey:     "relay-key",
		FormRelayTimeout:       time.Second,
		FormRelayBreaker:       resilience.DefaultBreakerConfig(),
		AuthProvider:           config.AuthLocal,
		AdminEmail:             testAdminEmail,
		AdminPasswordHash:      string(hash),
		AdminJWTSecret:         strings.Repeat("s", 32),
		AdminSessionTTL:        time.Hour,
		DraftStore:             config.DraftStoreMemory,
		DraftTTL:               time.Hour,
	}
}

func serve(t *testing.T, h http.Handler, method, target, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestNew_MemoryBackendServesCatalogAndAdmin(t *testing.T) {
	a, err := New(context.Background(), testConfig(t), logging.NewNop())
	require.NoError(t, err)
	h := a.Handler()

	rec := serve(t, h, http.MethodGet, "/v1/tournaments", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Zeta Squad Cup")

	rec = serve(t, h, http.MethodGet, "/v1/admin/snapshot", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = serve(t, h, http.MethodPost, "/v1/auth/login", `{"email":"`+testAdminEmail+`","password":"`+testAdminPassword+`"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var login struct {
		Data struct {
			AccessToken string `json:"access_token"`
		} `json:"data"`
	}
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &login))
	require.NotEmpty(t, login.Data.AccessToken)

	rec = serve(t, h, http.MethodGet, "/v1/admin/snapshot", "", login.Data.AccessToken)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Booyah Hub")

	rec = serve(t, h, http.MethodGet, "/openapi.yaml", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestNew_UploadsUnavailableWithoutStorage(t *testing.T) {
	a, err := New(context.Background(), testConfig(t), logging.NewNop())
	require.NoError(t, err)

	body := "--b\r\nContent-Disposition: form-data; name=\"file\"; filename=\"p.png\"\r\nContent-Type: image/png\r\n\r\npng\r\n--b--\r\n"
	req := httptest.NewRequest(http.MethodPost, "/v1/uploads", strings.NewReader(body))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=b")
	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestNew_MissingSeedFileFails(t *testing.T) {
	cfg := testConfig(t)
	cfg.SeedFile = t.TempDir() + "/missing.yaml"

	_, err := New(context.Background(), cfg, logging.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load seed catalog")
}

func TestNew_InvalidAdminHashFails(t *testing.T) {
	cfg := testConfig(t)
	cfg.AdminPasswordHash = "plain-text"

	_, err := New(context.Background(), cfg, logging.NewNop())
	require.Error(t, err)
}

func TestRun_StopsOnCancel(t *testing.T) {
	a, err := New(context.Background(), testConfig(t), logging.NewNop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
