package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/greentwin/aas-cockpit/internal/backend"
	"github.com/greentwin/aas-cockpit/internal/config"
	"github.com/greentwin/aas-cockpit/internal/session"
)

var authDBCounter int

func newAuthHandler(t *testing.T, backendHandler http.HandlerFunc) (*AuthHandler, *session.Manager) {
	t.Helper()
	srv := httptest.NewServer(backendHandler)
	t.Cleanup(srv.Close)
	client := backend.New(srv.URL, 5*time.Second, zerolog.Nop())

	authDBCounter++
	store, err := session.Open(config.SessionConfig{
		Driver: "sqlite",
		DSN:    fmt.Sprintf("file:auth_test_%d?mode=memory&cache=shared", authDBCounter),
	})
	if err != nil {
		t.Fatalf("open session store: %v", err)
	}
	sessions := session.NewManager(store, "test-secret")
	return NewAuthHandler(client, sessions, zerolog.Nop()), sessions
}

func TestLoginSetsSession(t *testing.T) {
	h, sessions := newAuthHandler(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]string{"token": "alpha"})
	})

	form := url.Values{"username": {"user"}, "password": {"secret"}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected session cookie, got %d cookies", len(cookies))
	}
	follow := httptest.NewRequest(http.MethodGet, "/aas", nil)
	follow.AddCookie(cookies[0])
	token, ok := sessions.Token(follow)
	if !ok || token != "alpha" {
		t.Fatalf("session token = %q, %v", token, ok)
	}
}

func TestLoginRejectedShowsError(t *testing.T) {
	h, _ := newAuthHandler(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad credentials", http.StatusUnauthorized)
	})

	form := url.Values{"username": {"user"}, "password": {"wrong"}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Invalid username or password") {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
}

func TestLogoutClearsSession(t *testing.T) {
	h, sessions := newAuthHandler(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"token": "alpha"})
	})

	// login first
	form := url.Values{"username": {"user"}, "password": {"secret"}}
	loginReq := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	loginReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	loginRec := httptest.NewRecorder()
	h.Login(loginRec, loginReq)
	cookie := loginRec.Result().Cookies()[0]

	logoutReq := httptest.NewRequest(http.MethodPost, "/logout", nil)
	logoutReq.AddCookie(cookie)
	logoutRec := httptest.NewRecorder()
	h.Logout(logoutRec, logoutReq)

	if logoutRec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d", logoutRec.Code)
	}
	stale := httptest.NewRequest(http.MethodGet, "/aas", nil)
	stale.AddCookie(cookie)
	if _, ok := sessions.Token(stale); ok {
		t.Fatal("session survived logout")
	}
}
