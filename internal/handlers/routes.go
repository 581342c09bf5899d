package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func RegisterRoutes(r *chi.Mux, login http.HandlerFunc, linkedRole *LinkedRoleHandler, home *HomeHandler, status *StatusHandler) {
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Initialize Huma API
	config := huma.DefaultConfig("Contributor Linked Role API", "1.0.0")
	api := humachi.New(r, config)

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})
	r.Get("/", home.HandleHome)

	// OAuth flow
	r.Get("/auth", login)
	r.Get("/linked-role", linkedRole.HandleCallback)

	huma.Get(api, "/api/repositories", status.HandleRepositories)
	huma.Get(api, "/api/status", status.HandleStatus)
}
