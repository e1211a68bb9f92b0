package server_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-session-server/auth"
	"github.com/jrsteele09/go-session-server/internal/config"
	"github.com/jrsteele09/go-session-server/server"
	"github.com/jrsteele09/go-session-server/sessions/repofakes"
	"github.com/jrsteele09/go-session-server/users"
	fakeuserrepo "github.com/jrsteele09/go-session-server/users/repofake"
)

const (
	adminUsername = "admin"
	adminPassword = "Password123"
)

type fixture struct {
	server *server.Server
	store  *repofakes.FakeSessionStore
	users  users.Repo
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	t.Setenv("ENV", "TEST")
	t.Setenv("ADMIN_USERNAME", adminUsername)
	t.Setenv("ADMIN_PASSWORD", adminPassword)
	t.Setenv("SESSION_COOKIE_NAME", "")
	t.Setenv("SESSION_MAX_AGE", "")

	store := repofakes.NewFakeSessionStore()
	repo := fakeuserrepo.NewFakeUserRepo()

	strategy, err := auth.NewStrategy(repo)
	require.NoError(t, err)

	srv, err := server.New(config.New(), store, strategy, repo)
	require.NoError(t, err)

	return &fixture{server: srv, store: store, users: repo}
}

func (f *fixture) login(t *testing.T, username, password string) *http.Response {
	t.Helper()

	form := url.Values{"username": {username}, "password": {password}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := httptest.NewRecorder()
	f.server.ServeHTTP(rec, req)
	return rec.Result()
}

func sessionCookie(t *testing.T, resp *http.Response) *http.Cookie {
	t.Helper()
	for _, c := range resp.Cookies() {
		if c.Name == "session_id" {
			return c
		}
	}
	t.Fatal("no session cookie in response")
	return nil
}

func TestHealthEndpoint(t *testing.T) {
	f := newFixture(t)

	rec := httptest.NewRecorder()
	f.server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestIndexPage(t *testing.T) {
	f := newFixture(t)

	rec := httptest.NewRecorder()
	f.server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Go Session Server")
}

func TestLoginPageDisplaysErrorAndUsername(t *testing.T) {
	f := newFixture(t)

	rec := httptest.NewRecorder()
	f.server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/login?error=Session+expired&username=admin", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Session expired")
	require.Contains(t, rec.Body.String(), "admin")
}

func TestAdminBootstrapSeedsUser(t *testing.T) {
	f := newFixture(t)

	admin, err := f.users.GetByUsername(context.Background(), adminUsername)
	require.NoError(t, err)
	require.True(t, admin.CheckPassword(adminPassword))
}

func TestAdminBootstrapLeavesExistingUserUntouched(t *testing.T) {
	f := newFixture(t)

	before, err := f.users.GetByUsername(context.Background(), adminUsername)
	require.NoError(t, err)

	// A second server over the same repo must not replace the account
	strategy, err := auth.NewStrategy(f.users)
	require.NoError(t, err)
	_, err = server.New(config.New(), f.store, strategy, f.users)
	require.NoError(t, err)

	after, err := f.users.GetByUsername(context.Background(), adminUsername)
	require.NoError(t, err)
	require.Equal(t, before.ID, after.ID)
	require.Equal(t, before.PasswordHash, after.PasswordHash)
}

func TestAdminBootstrapRejectsWeakPassword(t *testing.T) {
	t.Setenv("ENV", "TEST")
	t.Setenv("ADMIN_USERNAME", "admin")
	t.Setenv("ADMIN_PASSWORD", "weak")

	repo := fakeuserrepo.NewFakeUserRepo()
	strategy, err := auth.NewStrategy(repo)
	require.NoError(t, err)

	_, err = server.New(config.New(), repofakes.NewFakeSessionStore(), strategy, repo)
	require.Error(t, err)
}

func TestLoginCreatesSessionAndRedirectsToProfile(t *testing.T) {
	f := newFixture(t)

	resp := f.login(t, adminUsername, adminPassword)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/profile", resp.Header.Get("Location"))

	cookie := sessionCookie(t, resp)
	require.NotEmpty(t, cookie.Value)
	require.True(t, cookie.HttpOnly)
	require.Equal(t, 1, f.store.Len())

	payload, err := f.store.Get(context.Background(), cookie.Value)
	require.NoError(t, err)
	require.NotNil(t, payload)
	require.NotEmpty(t, payload["user_id"])
}

func TestLoginWithBadCredentials(t *testing.T) {
	f := newFixture(t)

	resp := f.login(t, adminUsername, "wrong-password")
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	location := resp.Header.Get("Location")
	require.Contains(t, location, "/login?error=")
	require.Contains(t, location, url.QueryEscape("Invalid username or password"))
	require.Contains(t, location, "username=admin")
	require.Zero(t, f.store.Len())
}

func TestLoginWithMissingFields(t *testing.T) {
	f := newFixture(t)

	resp := f.login(t, "", "")
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Contains(t, resp.Header.Get("Location"), url.QueryEscape("Username and password are required"))
}

func TestProfileWithLiveSession(t *testing.T) {
	f := newFixture(t)
	cookie := sessionCookie(t, f.login(t, adminUsername, adminPassword))

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.AddCookie(&http.Cookie{Name: cookie.Name, Value: cookie.Value})
	rec := httptest.NewRecorder()
	f.server.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), adminUsername)
}

func TestProfileWithoutSessionRedirectsToLogin(t *testing.T) {
	f := newFixture(t)

	rec := httptest.NewRecorder()
	f.server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/profile", nil))

	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Contains(t, rec.Header().Get("Location"), "/login?error=")
}

func TestProfileWithUnknownSessionCookie(t *testing.T) {
	f := newFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.AddCookie(&http.Cookie{Name: "session_id", Value: "never-issued"})
	rec := httptest.NewRecorder()
	f.server.ServeHTTP(rec, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Contains(t, rec.Header().Get("Location"), url.QueryEscape("Session expired"))
}

func TestProfileDropsSessionOfDeletedUser(t *testing.T) {
	f := newFixture(t)
	cookie := sessionCookie(t, f.login(t, adminUsername, adminPassword))

	require.NoError(t, f.users.Delete(context.Background(), adminUsername))

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.AddCookie(&http.Cookie{Name: cookie.Name, Value: cookie.Value})
	rec := httptest.NewRecorder()
	f.server.ServeHTTP(rec, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Zero(t, f.store.Len())
}

func TestLogoutDestroysSessionAndClearsCookie(t *testing.T) {
	f := newFixture(t)
	cookie := sessionCookie(t, f.login(t, adminUsername, adminPassword))

	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	req.AddCookie(&http.Cookie{Name: cookie.Name, Value: cookie.Value})
	rec := httptest.NewRecorder()
	f.server.ServeHTTP(rec, req)

	resp := rec.Result()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/", resp.Header.Get("Location"))
	require.Zero(t, f.store.Len())

	cleared := sessionCookie(t, resp)
	require.Empty(t, cleared.Value)
	require.Negative(t, cleared.MaxAge)
}

func TestSessionRecordCarriesCookieMaxAge(t *testing.T) {
	f := newFixture(t)
	cookie := sessionCookie(t, f.login(t, adminUsername, adminPassword))

	payload, err := f.store.Get(context.Background(), cookie.Value)
	require.NoError(t, err)

	meta, ok := payload["cookie"].(map[string]any)
	require.True(t, ok)
	require.EqualValues(t, 24*60*60*1000, meta["maxAge"])
}

func TestFrameSecurityHeadersOnProtectedPages(t *testing.T) {
	f := newFixture(t)
	cookie := sessionCookie(t, f.login(t, adminUsername, adminPassword))

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.AddCookie(&http.Cookie{Name: cookie.Name, Value: cookie.Value})
	rec := httptest.NewRecorder()
	f.server.ServeHTTP(rec, req)

	require.Equal(t, "SAMEORIGIN", rec.Header().Get("X-Frame-Options"))
}
