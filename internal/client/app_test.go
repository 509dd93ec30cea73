package client

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-session-keeper/internal/config"
	"github.com/MKhiriev/go-session-keeper/internal/logger"
	"github.com/MKhiriev/go-session-keeper/models"
)

func newBackend(t *testing.T) *httptest.Server {
	t.Helper()
	r := chi.NewRouter()
	r.Post("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"token":"tok","user":{"id":"1","name":"Alice","email":"alice@example.com"}}`)
	})
	r.Get("/auth/me", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"error":"token revoked"}`)
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func newTestConfig(serverURL, dsn string) *config.ClientConfig {
	return &config.ClientConfig{
		Adapter: config.ClientAdapter{HTTPAddress: serverURL, RequestTimeout: 5 * time.Second},
		Storage: config.ClientStorage{Driver: config.DriverSQLite, DSN: dsn},
		Guard:   config.ClientGuard{PublicEntry: "sign-in", PrivateEntry: "home", RedirectAuthenticated: true},
	}
}

func TestNewApp_WiresSessionThroughStorageAndAdapter(t *testing.T) {
	ctx := context.Background()
	srv := newBackend(t)
	dsn := filepath.Join(t.TempDir(), "session.db")

	a, err := NewApp(ctx, newTestConfig(srv.URL, dsn), models.NewAppBuildInfo("", "", ""), logger.Nop())
	require.NoError(t, err)

	require.NoError(t, a.sessions.Initialize(ctx))
	require.NoError(t, a.services.AuthService.SignIn(ctx, "alice@example.com", "secret"))
	assert.Equal(t, "tok", a.sessions.Current().Credential)
	a.Close()

	// the credential survives a restart
	restarted, err := NewApp(ctx, newTestConfig(srv.URL, dsn), models.AppBuildInfo{}, logger.Nop())
	require.NoError(t, err)
	defer restarted.Close()

	require.NoError(t, restarted.sessions.Initialize(ctx))
	current := restarted.sessions.Current()
	assert.True(t, current.Authenticated())
	require.NotNil(t, current.Profile)
	assert.Equal(t, "Alice", current.Profile.Name)

	// a revoked credential is invalidated by the API client
	assert.Error(t, restarted.services.AuthService.RefreshProfile(ctx))
	assert.False(t, restarted.sessions.Current().Authenticated())
}

func TestNewApp_RecordsMetrics(t *testing.T) {
	ctx := context.Background()
	srv := newBackend(t)

	a, err := NewApp(ctx, newTestConfig(srv.URL, filepath.Join(t.TempDir(), "session.db")), models.AppBuildInfo{}, logger.Nop())
	require.NoError(t, err)
	defer a.Close()

	require.NoError(t, a.sessions.Initialize(ctx))
	require.NoError(t, a.services.AuthService.SignIn(ctx, "alice@example.com", "secret"))

	families, err := a.Metrics().Gather()
	require.NoError(t, err)

	names := make(map[string]bool)
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["session_transitions_total"])
	assert.True(t, names["api_requests_total"])
}

func TestApp_ServesMetricsWhenConfigured(t *testing.T) {
	ctx := context.Background()
	srv := newBackend(t)
	cfg := newTestConfig(srv.URL, filepath.Join(t.TempDir(), "session.db"))
	cfg.Metrics.Address = "127.0.0.1:0"

	a, err := NewApp(ctx, cfg, models.AppBuildInfo{}, logger.Nop())
	require.NoError(t, err)
	defer a.Close()

	require.NoError(t, a.sessions.Initialize(ctx))
	require.NoError(t, a.startMetrics())
	require.NotNil(t, a.metricsServer)
	addr := a.metricsServer.Addr()

	resp, err := http.Get("http://" + addr + "/metrics")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "session_transitions_total")

	a.stopMetrics()
	assert.Nil(t, a.metricsServer)
	_, err = http.Get("http://" + addr + "/metrics")
	assert.Error(t, err)
}

func TestApp_MetricsDisabledByDefault(t *testing.T) {
	a, err := NewApp(context.Background(), newTestConfig("http://localhost:1", filepath.Join(t.TempDir(), "session.db")), models.AppBuildInfo{}, logger.Nop())
	require.NoError(t, err)
	defer a.Close()

	require.NoError(t, a.startMetrics())
	assert.Nil(t, a.metricsServer)
	a.stopMetrics()
}

func TestNewApp_InvalidAdapterAddress(t *testing.T) {
	cfg := newTestConfig("", filepath.Join(t.TempDir(), "session.db"))
	cfg.Adapter.HTTPAddress = "   "

	_, err := NewApp(context.Background(), cfg, models.AppBuildInfo{}, logger.Nop())
	assert.Error(t, err)
}

func TestNewApp_UnknownDriver(t *testing.T) {
	cfg := newTestConfig("http://localhost:1", "")
	cfg.Storage.Driver = "etcd"

	_, err := NewApp(context.Background(), cfg, models.AppBuildInfo{}, logger.Nop())
	assert.Error(t, err)
}
