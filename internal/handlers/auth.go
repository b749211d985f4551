package handlers

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/greentwin/aas-cockpit/internal/backend"
	"github.com/greentwin/aas-cockpit/internal/session"
	"github.com/greentwin/aas-cockpit/internal/view"
)

// AuthHandler delegates credential checks to the backend and keeps the
// returned token in a server-side session.
type AuthHandler struct {
	backend  *backend.Client
	sessions *session.Manager
	log      zerolog.Logger
}

func NewAuthHandler(client *backend.Client, sessions *session.Manager, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		backend:  client,
		sessions: sessions,
		log:      log.With().Str("component", "auth").Logger(),
	}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		if _, ok := session.TokenFromContext(r.Context()); ok {
			http.Redirect(w, r, "/aas", http.StatusSeeOther)
			return
		}
		view.Render(w, r, "login.html", nil)
		return
	}

	username := r.FormValue("username")
	password := r.FormValue("password")

	token, err := h.backend.Login(r.Context(), username, password)
	if err != nil || token == "" {
		h.log.Warn().Str("username", username).Msg("login rejected")
		view.Render(w, r, "login.html", map[string]any{"Error": "Invalid username or password"})
		return
	}

	if err := h.sessions.Init(w, token); err != nil {
		h.log.Error().Err(err).Msg("create session")
		view.Render(w, r, "login.html", map[string]any{"Error": "Internal server error"})
		return
	}
	http.Redirect(w, r, "/aas", http.StatusSeeOther)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Clear(w, r)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
