package handlers

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/greentwin/aas-cockpit/internal/apikeys"
	"github.com/greentwin/aas-cockpit/internal/view"
)

// AdminHandler manages API keys through the key service. A freshly created
// or regenerated key is rendered exactly once and never stored here.
type AdminHandler struct {
	keys *apikeys.Client
	log  zerolog.Logger
}

func NewAdminHandler(keys *apikeys.Client, log zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		keys: keys,
		log:  log.With().Str("component", "admin").Logger(),
	}
}

// Index lists all key owners.
func (h *AdminHandler) Index(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "", "")
}

// Create registers a new owner and shows the plaintext key once.
func (h *AdminHandler) Create(w http.ResponseWriter, r *http.Request) {
	owner := strings.TrimSpace(r.FormValue("owner"))
	if owner == "" {
		h.render(w, r, "", "Owner name is required")
		return
	}
	key, err := h.keys.Create(r.Context(), owner)
	if err != nil {
		h.log.Error().Err(err).Str("owner", owner).Msg("create key")
		h.render(w, r, "", err.Error())
		return
	}
	h.render(w, r, key, "")
}

// Delete removes an owner.
func (h *AdminHandler) Delete(w http.ResponseWriter, r *http.Request) {
	owner := r.FormValue("owner")
	if err := h.keys.Delete(r.Context(), owner); err != nil {
		h.log.Error().Err(err).Str("owner", owner).Msg("delete key")
		h.render(w, r, "", err.Error())
		return
	}
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// Rename changes an owner's name.
func (h *AdminHandler) Rename(w http.ResponseWriter, r *http.Request) {
	oldOwner := r.FormValue("owner")
	newOwner := strings.TrimSpace(r.FormValue("newOwner"))
	if newOwner == "" {
		h.render(w, r, "", "New owner name is required")
		return
	}
	if err := h.keys.Rename(r.Context(), oldOwner, newOwner); err != nil {
		h.log.Error().Err(err).Str("owner", oldOwner).Msg("rename key")
		h.render(w, r, "", err.Error())
		return
	}
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// Regenerate rotates an owner's key and shows the new plaintext once.
func (h *AdminHandler) Regenerate(w http.ResponseWriter, r *http.Request) {
	owner := r.FormValue("owner")
	key, err := h.keys.Regenerate(r.Context(), owner)
	if err != nil {
		h.log.Error().Err(err).Str("owner", owner).Msg("regenerate key")
		h.render(w, r, "", err.Error())
		return
	}
	h.render(w, r, key, "")
}

func (h *AdminHandler) render(w http.ResponseWriter, r *http.Request, newKey, errMsg string) {
	keys, err := h.keys.List(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("list keys")
		if errMsg == "" {
			errMsg = "The key service is not reachable."
		}
	}
	view.Render(w, r, "admin/index.html", map[string]any{
		"Keys":   keys,
		"NewKey": newKey,
		"Error":  errMsg,
	})
}
