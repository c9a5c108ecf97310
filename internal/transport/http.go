package transport

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/tricast360/tricast360-server/internal/handler"
	"github.com/tricast360/tricast360-server/internal/ratelimit"
)

// Deps carries the wired handlers. Orders is nil when no database is
// configured; the order routes are simply not mounted then.
type Deps struct {
	Contact   *handler.ContactHandler
	Quote     *handler.QuoteHandler
	Draft     *handler.DraftHandler
	Orders    *handler.OrderHandler
	Limiter   *ratelimit.Limiter
	StaticDir string
}

func NewRouter(deps Deps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	// must be set before the /api subtree is mounted so unmatched routes
	// inside it fall back to the SPA as well
	if deps.StaticDir != "" {
		r.NotFound(spaHandler(deps.StaticDir))
	}

	r.Route("/api", func(api chi.Router) {
		api.Get("/health", handler.Health)

		api.Group(func(limited chi.Router) {
			limited.Use(rateLimitMiddleware(deps.Limiter))
			deps.Contact.RegisterRoutes(limited)
		})

		deps.Quote.RegisterRoutes(api)
		deps.Draft.RegisterRoutes(api)
		if deps.Orders != nil {
			deps.Orders.RegisterRoutes(api)
		}
	})

	return r
}

// rateLimitMiddleware rejects over-limit sources with the fixed German text.
func rateLimitMiddleware(limiter *ratelimit.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow(handler.ClientIP(r)) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(`{"success":false,"message":"` + ratelimit.MsgLimitExceeded + `"}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// spaHandler serves files from the built frontend and falls back to
// index.html so client-side routes resolve on direct navigation.
func spaHandler(staticDir string) http.HandlerFunc {
	fileServer := http.FileServer(http.Dir(staticDir))
	index := filepath.Join(staticDir, "index.html")

	return func(w http.ResponseWriter, r *http.Request) {
		path := filepath.Join(staticDir, filepath.Clean("/"+r.URL.Path))

		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			http.ServeFile(w, r, index)
			return
		}

		fileServer.ServeHTTP(w, r)
	}
}
