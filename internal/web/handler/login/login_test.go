package login

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/dulha-dulhan/matrimony/internal/config"
	"github.com/dulha-dulhan/matrimony/internal/db/controller/user"
	"github.com/dulha-dulhan/matrimony/internal/db/dbtest"
	"github.com/dulha-dulhan/matrimony/internal/db/models"
	"github.com/dulha-dulhan/matrimony/internal/web/handler"
	"github.com/dulha-dulhan/matrimony/internal/web/handler/logout"
	websess "github.com/dulha-dulhan/matrimony/internal/web/session"
)

// testStorage is a minimal in-memory implementation of fiber.Storage for tests.
type testStorage struct {
	mu   sync.RWMutex
	data map[string][]byte
}

var _ fiber.Storage = (*testStorage)(nil)

func (s *testStorage) Get(key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.data[key]
	if !ok {
		return nil, nil
	}

	out := make([]byte, len(v))
	copy(out, v)

	return out, nil
}

func (s *testStorage) Set(key string, val []byte, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	buf := make([]byte, len(val))
	copy(buf, val)
	s.data[key] = buf

	return nil
}

func (s *testStorage) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, key)

	return nil
}

func (s *testStorage) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = make(map[string][]byte)

	return nil
}

func (s *testStorage) Close() error { return nil }

func (s *testStorage) len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.data)
}

func newTestConfig() *config.Config {
	return &config.Config{
		Webserver: config.Webserver{
			URL:     "http://localhost",
			Port:    3000,
			Session: config.Session{ExpiryTime: time.Minute},
		},
	}
}

type testEnv struct {
	app     *fiber.App
	db      *gorm.DB
	storage *testStorage
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := dbtest.New(t)
	cfg := newTestConfig()
	storage := &testStorage{data: make(map[string][]byte)}
	sessions := websess.New(storage, websess.Options{Expiry: cfg.Webserver.Session.ExpiryTime, SameSite: "Lax"})

	app := fiber.New(fiber.Config{ErrorHandler: handler.ErrorHandler})

	var (
		in  Service
		out logout.Service
	)

	require.NoError(t, in.Init(app, cfg, db, sessions))
	require.NoError(t, out.Init(app, cfg, sessions))

	return &testEnv{app: app, db: db, storage: storage}
}

func (e *testEnv) do(t *testing.T, method, target, body, cookie string) (*http.Response, string) {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)

	if cookie != "" {
		req.Header.Set("Cookie", websess.CookieName+"="+cookie)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)

	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp, string(b)
}

func sessionCookie(resp *http.Response) string {
	for _, c := range resp.Cookies() {
		if c.Name == websess.CookieName {
			return c.Value
		}
	}

	return ""
}

func TestInit(t *testing.T) {
	var s Service

	require.ErrorIs(t, s.Init(nil, newTestConfig(), nil, nil), handler.ErrNilDependency)
	require.ErrorIs(t, s.Init(fiber.New(), newTestConfig(), dbtest.New(t), nil), ErrNoSessionStore)
}

func TestLoginMeLogout(t *testing.T) {
	e := newTestEnv(t)

	admin, err := user.Create(e.db, "admin", "changeme")
	require.NoError(t, err)

	resp, body := e.do(t, fiber.MethodPost, Path, `{"username":"admin","password":"changeme"}`, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode, body)
	assert.JSONEq(t, `{"id":`+itoa(admin.ID)+`,"username":"admin","role":"admin"}`, body)

	cookie := sessionCookie(resp)
	require.NotEmpty(t, cookie)
	assert.Equal(t, 1, e.storage.len())

	resp, body = e.do(t, fiber.MethodGet, MePath, "", cookie)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"username":"admin"`)

	resp, _ = e.do(t, fiber.MethodPost, logout.Path, "", cookie)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	assert.Zero(t, e.storage.len())

	resp, body = e.do(t, fiber.MethodGet, MePath, "", cookie)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.JSONEq(t, `{"message":"Unauthorized"}`, body)
}

func TestLoginRejected(t *testing.T) {
	e := newTestEnv(t)

	_, err := user.Create(e.db, "admin", "changeme")
	require.NoError(t, err)

	disabled, err := user.Create(e.db, "former", "changeme")
	require.NoError(t, err)
	require.NoError(t, e.db.Model(&models.User{}).Where("id = ?", disabled.ID).Update("active", false).Error)

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{name: "wrong password", body: `{"username":"admin","password":"nope"}`, wantStatus: fiber.StatusUnauthorized},
		{name: "unknown user", body: `{"username":"ghost","password":"changeme"}`, wantStatus: fiber.StatusUnauthorized},
		{name: "disabled account", body: `{"username":"former","password":"changeme"}`, wantStatus: fiber.StatusUnauthorized},
		{name: "missing password", body: `{"username":"admin"}`, wantStatus: fiber.StatusBadRequest},
		{name: "not json", body: `username=admin`, wantStatus: fiber.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := e.do(t, fiber.MethodPost, Path, tt.body, "")
			assert.Equal(t, tt.wantStatus, resp.StatusCode, body)
			assert.Empty(t, sessionCookie(resp))
			assert.Zero(t, e.storage.len())
		})
	}
}

func TestLogoutWithoutSession(t *testing.T) {
	e := newTestEnv(t)

	resp, _ := e.do(t, fiber.MethodPost, logout.Path, "", "")
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
}

func itoa(v uint64) string {
	return strconv.FormatUint(v, 10)
}
