package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/cortex-kb/cortex/internal/core/ports/driving"
)

// Origins the desktop app loads from. Tauri serves the production build
// from its own scheme and the dev build from localhost:1420.
var allowedOrigins = []string{
	"tauri://localhost",
	"http://localhost",
	"http://localhost:1420",
	"http://127.0.0.1",
	"http://127.0.0.1:1420",
}

// Handler holds the services the HTTP routes are served from.
type Handler struct {
	items    driving.ItemService
	health   driving.HealthService
	provider driving.ProviderService
	status   driving.StatusService
}

// NewHandler creates a Handler over the given services.
func NewHandler(items driving.ItemService, health driving.HealthService, provider driving.ProviderService, status driving.StatusService) *Handler {
	return &Handler{
		items:    items,
		health:   health,
		provider: provider,
		status:   status,
	}
}

// NewRouter builds the /api route tree with CORS for the desktop app.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.StripSlashes)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Route("/items", func(r chi.Router) {
			r.Post("/", h.createItem)
			r.Get("/", h.listItems)
			r.Get("/{id}", h.getItem)
			r.Put("/{id}", h.updateItem)
			r.Delete("/{id}", h.deleteItem)
		})

		r.Get("/health", h.getHealth)
		r.Get("/health/ollama", h.getOllamaHealth)
		r.Get("/db/status", h.getDBStatus)
	})

	return r
}
