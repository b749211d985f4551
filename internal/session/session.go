package session

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"strings"
	"time"

	"github.com/greentwin/aas-cockpit/httpx"
)

type ctxKey string

const (
	cookieName  = "session"
	tokenCtxKey = ctxKey("token")
)

// Manager signs session-id cookies and resolves them to tokens through the
// store.
type Manager struct {
	store  *Store
	secret []byte
}

// NewManager wires a store to a cookie signing secret.
func NewManager(store *Store, secret string) *Manager {
	return &Manager{store: store, secret: []byte(secret)}
}

// Init creates a session for the token and sets the signed cookie.
func (m *Manager) Init(w http.ResponseWriter, token string) error {
	id, err := m.store.Create(token)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    m.sign(id),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(TTL),
	})
	return nil
}

// Clear removes the session row and expires the cookie. A missing or
// tampered cookie still clears cleanly.
func (m *Manager) Clear(w http.ResponseWriter, r *http.Request) {
	if id, ok := m.sessionID(r); ok {
		m.store.Delete(id)
	}
	http.SetCookie(w, &http.Cookie{Name: cookieName, Value: "", Path: "/", Expires: time.Unix(0, 0), HttpOnly: true, SameSite: http.SameSiteLaxMode})
}

// Token resolves the request's cookie to its backend token.
func (m *Manager) Token(r *http.Request) (string, bool) {
	id, ok := m.sessionID(r)
	if !ok {
		return "", false
	}
	token, err := m.store.Token(id)
	if err != nil {
		return "", false
	}
	return token, true
}

// Middleware attaches the token to the request context if a valid session
// exists.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if token, ok := m.Token(r); ok {
			r = r.WithContext(WithToken(r.Context(), token))
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAuth redirects unauthenticated HTML requests to /login and answers
// JSON requests with 401.
func (m *Manager) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := TokenFromContext(r.Context()); !ok {
			accept := r.Header.Get("Accept")
			if strings.Contains(accept, "application/json") && !strings.Contains(accept, "text/html") {
				httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", nil)
				return
			}
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// WithToken stores the token in context.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenCtxKey, token)
}

// TokenFromContext extracts the token.
func TokenFromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(tokenCtxKey)
	if v == nil {
		return "", false
	}
	token, ok := v.(string)
	return token, ok
}

func (m *Manager) sign(id string) string {
	mac := hmac.New(sha256.New, m.secret)
	mac.Write([]byte(id))
	return id + "." + base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

func (m *Manager) sessionID(r *http.Request) (string, bool) {
	c, err := r.Cookie(cookieName)
	if err != nil || c.Value == "" {
		return "", false
	}
	parts := strings.Split(c.Value, ".")
	if len(parts) != 2 {
		return "", false
	}
	id, sig := parts[0], parts[1]
	mac := hmac.New(sha256.New, m.secret)
	mac.Write([]byte(id))
	expected := base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
	if !hmac.Equal([]byte(sig), []byte(expected)) {
		return "", false
	}
	return id, true
}
