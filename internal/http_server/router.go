package httpserver

import (
	"log/slog"
	"net/http"

	"auth_backend/internal/auth"
	"auth_backend/internal/config"
	"auth_backend/internal/http_server/handlers/example"
	"auth_backend/internal/http_server/handlers/login"
	"auth_backend/internal/http_server/handlers/logout"
	"auth_backend/internal/http_server/handlers/me"
	"auth_backend/internal/http_server/handlers/refresh"
	"auth_backend/internal/http_server/handlers/signup"
	resp "auth_backend/internal/lib/api/response"
	"auth_backend/internal/middleware/authn"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
)

const envProd = "prod"

// NewRouter wires every route onto a chi mux. Protected routes sit behind the
// bearer-token middleware; logout is gated too even though it acts on the
// refresh cookie.
func NewRouter(log *slog.Logger, authService *auth.Auth, cfg *config.Config) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
	}))

	validate := validator.New()
	secureCookie := cfg.Env == envProd

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, resp.OK("server is running"))
	})
	r.Get("/example", example.New())

	r.Post("/signup", signup.New(log, validate, authService))
	r.Post("/login", login.New(log, validate, authService, cfg.Tokens.RefreshTokenTTL, secureCookie))
	r.Post("/refresh", refresh.New(log, authService))

	r.Group(func(r chi.Router) {
		r.Use(authn.New(log, []byte(cfg.Tokens.AccessTokenSecret)))

		r.Get("/me", me.New(log, authService))
		r.Post("/logout", logout.New(log, authService))
	})

	return r
}
