package handlers

import (
	"net/http"

	"github.com/greentwin/aas-cockpit/internal/view"
)

// Home renders the landing page.
func Home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	view.Render(w, r, "welcome.html", nil)
}
