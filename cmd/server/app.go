package main

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/greentwin/aas-cockpit/internal/apikeys"
	"github.com/greentwin/aas-cockpit/internal/backend"
	"github.com/greentwin/aas-cockpit/internal/handlers"
	"github.com/greentwin/aas-cockpit/internal/policy"
	"github.com/greentwin/aas-cockpit/internal/services"
	"github.com/greentwin/aas-cockpit/internal/session"
	"github.com/greentwin/aas-cockpit/internal/view"
)

// App is the main application handler that sets up all routes.
type App struct {
	mux      *http.ServeMux
	sessions *session.Manager
}

// NewApp creates a new application with all routes configured.
func NewApp(aasClient *backend.Client, keyClient *apikeys.Client, collection *services.Collection, sessions *session.Manager, log zerolog.Logger) *App {
	app := &App{
		mux:      http.NewServeMux(),
		sessions: sessions,
	}

	// Let templates show the right navigation without importing session types.
	view.SetLoggedInResolver(func(r *http.Request) bool {
		_, ok := session.TokenFromContext(r.Context())
		return ok
	})
	view.SetAdminResolver(func(r *http.Request) bool {
		token, ok := session.TokenFromContext(r.Context())
		return ok && policy.IsElevated(token)
	})

	aas := handlers.NewAASHandler(aasClient, collection, log)
	auth := handlers.NewAuthHandler(aasClient, sessions, log)
	admin := handlers.NewAdminHandler(keyClient, log)

	mux := app.mux

	// Public routes
	mux.HandleFunc("GET /", handlers.Home)
	mux.HandleFunc("GET /login", auth.Login)
	mux.HandleFunc("POST /login", auth.Login)
	mux.HandleFunc("GET /logout", auth.Logout)
	mux.HandleFunc("POST /logout", auth.Logout)

	// Asset routes
	mux.Handle("GET /aas", app.requireAuth(http.HandlerFunc(aas.List)))
	mux.Handle("GET /aas/show", app.requireAuth(http.HandlerFunc(aas.Show)))
	mux.Handle("GET /aas/new", app.requireAuth(http.HandlerFunc(aas.New)))
	mux.Handle("GET /aas/edit", app.requireAuth(http.HandlerFunc(aas.Edit)))
	mux.Handle("POST /aas/submission", app.requireAuth(http.HandlerFunc(aas.Submit)))
	mux.Handle("POST /aas/delete", app.requireAuth(http.HandlerFunc(aas.Delete)))
	mux.Handle("POST /aas/import", app.requireAuth(http.HandlerFunc(aas.Import)))
	mux.Handle("POST /aas/export", app.requireAuth(http.HandlerFunc(aas.Export)))

	// API key administration
	mux.Handle("GET /admin", app.requireAuth(http.HandlerFunc(admin.Index)))
	mux.Handle("POST /admin/keys", app.requireAuth(http.HandlerFunc(admin.Create)))
	mux.Handle("POST /admin/keys/delete", app.requireAuth(http.HandlerFunc(admin.Delete)))
	mux.Handle("POST /admin/keys/rename", app.requireAuth(http.HandlerFunc(admin.Rename)))
	mux.Handle("POST /admin/keys/regenerate", app.requireAuth(http.HandlerFunc(admin.Regenerate)))

	// Static files
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))

	return app
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.sessions.Middleware(a.mux).ServeHTTP(w, r)
}

// requireAuth wraps a handler to require a live session.
func (a *App) requireAuth(next http.Handler) http.Handler {
	return a.sessions.RequireAuth(next)
}
