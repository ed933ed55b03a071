// Package web serves the planner's interactive surface: the login/signup
// page, the meal-planning dashboard, and the post-logout screen. Navigation
// is entirely session-state driven; every page is reached through "/" and
// actions are plain form posts.
package web

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Mainadeveloper/food-waste-app/internal/auth"
	"github.com/Mainadeveloper/food-waste-app/internal/recommender"
	"github.com/Mainadeveloper/food-waste-app/internal/storage"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// Handler holds the view handlers' dependencies.
type Handler struct {
	store         storage.Store
	authenticator *auth.PasswordAuthenticator
	sessions      *auth.SessionManager
	recommender   *recommender.Recommender
	foods         []string // fixed vocabulary, in display order
	logger        *slog.Logger
}

// NewHandler creates the web handler set.
func NewHandler(
	store storage.Store,
	authenticator *auth.PasswordAuthenticator,
	sessions *auth.SessionManager,
	rec *recommender.Recommender,
	foods []string,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		store:         store,
		authenticator: authenticator,
		sessions:      sessions,
		recommender:   rec,
		foods:         foods,
		logger:        logger,
	}
}

// NewRouter builds the chi router with the standard middleware stack.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Timeout(60*time.Second),
	)
	r.Use(requestLogger)

	r.Get("/", h.Home)
	r.Post("/login", h.Login)
	r.Post("/signup", h.Signup)
	r.Post("/plan", h.Plan)
	r.Post("/logout", h.Logout)
	r.Post("/return", h.Return)

	r.Get("/healthz", healthz)
	r.Handle("/metrics", promhttp.Handler())

	return r
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// requestLogger logs every completed request with its status and duration.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		slog.Info("Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

func (h *Handler) render(w http.ResponseWriter, name string, data any) {
	if err := templates.ExecuteTemplate(w, name, data); err != nil {
		h.logger.Error("Failed to render template", "template", name, "error", err)
	}
}
