package session

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/greentwin/aas-cockpit/internal/config"
)

var testDBCounter int

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	testDBCounter++
	store, err := Open(config.SessionConfig{
		Driver: "sqlite",
		DSN:    fmt.Sprintf("file:sessions_test_%d?mode=memory&cache=shared", testDBCounter),
	})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return NewManager(store, "test-secret")
}

func initSession(t *testing.T, m *Manager, token string) *http.Cookie {
	t.Helper()
	rec := httptest.NewRecorder()
	if err := m.Init(rec, token); err != nil {
		t.Fatalf("init session: %v", err)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected one cookie, got %d", len(cookies))
	}
	return cookies[0]
}

func TestInitAndResolveToken(t *testing.T) {
	m := newTestManager(t)
	cookie := initSession(t, m, "backend-token")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	token, ok := m.Token(req)
	if !ok || token != "backend-token" {
		t.Fatalf("token = %q, %v", token, ok)
	}
}

func TestCookieCarriesNoToken(t *testing.T) {
	m := newTestManager(t)
	cookie := initSession(t, m, "backend-token")
	if strings.Contains(cookie.Value, "backend-token") {
		t.Fatalf("cookie leaks the token: %q", cookie.Value)
	}
}

func TestTamperedCookieIsRejected(t *testing.T) {
	m := newTestManager(t)
	cookie := initSession(t, m, "backend-token")

	parts := strings.SplitN(cookie.Value, ".", 2)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: cookie.Name, Value: parts[0] + ".forged-signature"})
	if _, ok := m.Token(req); ok {
		t.Fatal("tampered cookie accepted")
	}
}

func TestClearDeletesSession(t *testing.T) {
	m := newTestManager(t)
	cookie := initSession(t, m, "backend-token")

	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	m.Clear(rec, req)

	// The old cookie no longer resolves even if the browser kept it.
	again := httptest.NewRequest(http.MethodGet, "/", nil)
	again.AddCookie(cookie)
	if _, ok := m.Token(again); ok {
		t.Fatal("session survived Clear")
	}
}

func TestMiddlewareAndRequireAuth(t *testing.T) {
	m := newTestManager(t)
	cookie := initSession(t, m, "backend-token")

	var seen string
	handler := m.Middleware(m.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = TokenFromContext(r.Context())
	})))

	req := httptest.NewRequest(http.MethodGet, "/aas", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || seen != "backend-token" {
		t.Fatalf("authenticated request: code=%d token=%q", rec.Code, seen)
	}
}

func TestRequireAuthRedirectsAnonymousHTML(t *testing.T) {
	m := newTestManager(t)
	handler := m.Middleware(m.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler reached without session")
	})))

	req := httptest.NewRequest(http.MethodGet, "/aas", nil)
	req.Header.Set("Accept", "text/html")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/login" {
		t.Fatalf("code=%d location=%q", rec.Code, rec.Header().Get("Location"))
	}
}

func TestRequireAuthAnswersJSONWith401(t *testing.T) {
	m := newTestManager(t)
	handler := m.Middleware(m.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})))

	req := httptest.NewRequest(http.MethodGet, "/aas", nil)
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("code = %d, want 401", rec.Code)
	}
}
