package server

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusnav/core/internal/infrastructure/config"
	"github.com/campusnav/core/internal/infrastructure/logger"
	"github.com/campusnav/core/internal/infrastructure/metrics"
	"github.com/campusnav/core/internal/infrastructure/storage"
)

func testConfig(dir string) *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "campusnav", Version: "test"},
		Storage: config.StorageConfig{
			DataDir:           dir,
			LocationsFile:     "locations.csv",
			RoutesFile:        "routes.csv",
			UsersFile:         "users.csv",
			NotificationsFile: "notifications.csv",
		},
		JWT:      config.JWTConfig{Secret: "test-secret", ExpiresIn: time.Hour, Issuer: "campusnav"},
		Security: config.SecurityConfig{CORSAllowedOrigins: "*", PasswordHash: "sha256"},
		Notifier: config.NotifierConfig{Enabled: true, DefaultUserID: 1},
		Metrics:  config.MetricsConfig{Enabled: true},
	}
}

func newTestServer(t *testing.T) (*Server, string) {
	t.Helper()
	dir := t.TempDir()
	cfg := testConfig(dir)
	m := metrics.New()

	data, err := storage.New(cfg.Storage, m)
	require.NoError(t, err)

	srv, err := New(cfg, data, m, logger.NewNop())
	require.NoError(t, err)
	return srv, dir
}

func do(t *testing.T, srv *Server, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func signup(t *testing.T, srv *Server, username, role string) string {
	t.Helper()
	body := `{"username":"` + username + `","email":"` + username + `@uni.edu","password":"pw","role":"` + role + `","consent":true}`
	rec := do(t, srv, http.MethodPost, "/api/v1/auth/signup", "", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.AccessToken)
	return resp.AccessToken
}

func TestHealthEndpoints(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := do(t, srv, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, srv, http.MethodGet, "/ready", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ready"`)

	rec = do(t, srv, http.MethodGet, "/health/detailed", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"storage"`)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestAuthIsRequired(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := do(t, srv, http.MethodGet, "/api/v1/locations", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, srv, http.MethodGet, "/api/v1/locations", "not-a-token", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRolesGuardWrites(t *testing.T) {
	srv, dir := newTestServer(t)

	staff := signup(t, srv, "sam", "staff")
	student := signup(t, srv, "stu", "student")

	location := `{"name":"Library","building":"Main","floor":1,"accessible":true}`

	rec := do(t, srv, http.MethodPost, "/api/v1/locations", student, location)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(t, srv, http.MethodPost, "/api/v1/locations", staff, location)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(t, srv, http.MethodGet, "/api/v1/locations", student, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Library")

	// Users are admin-only for writes.
	rec = do(t, srv, http.MethodDelete, "/api/v1/users/1", staff, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	raw, err := os.ReadFile(filepath.Join(dir, "locations.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "Library,Main,1,True")

	raw, err = os.ReadFile(filepath.Join(dir, "notifications.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "New location 'Main, 1' added")
}

func login(t *testing.T, srv *Server, username, password string) string {
	t.Helper()
	rec := do(t, srv, http.MethodPost, "/api/v1/auth/login", "", `{"username":"`+username+`","password":"`+password+`"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.AccessToken
}

func TestUserDirectoryIsAdminOnly(t *testing.T) {
	srv, dir := newTestServer(t)

	sum := sha256.Sum256([]byte("s3cret"))
	hash := hex.EncodeToString(sum[:])
	require.NoError(t, os.WriteFile(filepath.Join(dir, "users.csv"),
		[]byte("id,username,email,role,password\n1,root,root@uni.edu,admin,"+hash+"\n"), 0o644))

	visitor := signup(t, srv, "mallory", "visitor")
	rec := do(t, srv, http.MethodGet, "/api/v1/users?q="+hash[:6], visitor, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec = do(t, srv, http.MethodGet, "/api/v1/users/1", visitor, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	admin := login(t, srv, "root", "s3cret")

	rec = do(t, srv, http.MethodGet, "/api/v1/users?q="+hash[:6], admin, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total":0`)

	rec = do(t, srv, http.MethodGet, "/api/v1/users?q=root", admin, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total":1`)
	assert.NotContains(t, rec.Body.String(), hash)
}

func TestMetricsEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	do(t, srv, http.MethodGet, "/health", "", "")

	rec := do(t, srv, http.MethodGet, "/metrics", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total")
}
