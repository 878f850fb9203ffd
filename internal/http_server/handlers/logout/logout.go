package logout

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"auth_backend/internal/auth"
	resp "auth_backend/internal/lib/api/response"
	sl "auth_backend/internal/lib/logger"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
)

const refreshTokenCookie = "refreshToken"

type Response struct {
	resp.Response
}

// New ends the session behind the refresh cookie and clears the cookie.
// A missing or already invalidated cookie still yields 200; client logout
// flows must never be blocked on server-side state.
func New(
	log *slog.Logger,
	authService *auth.Auth,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.logout.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if cookie, err := r.Cookie(refreshTokenCookie); err == nil && cookie.Value != "" {
			if err := authService.Logout(ctx, cookie.Value); err != nil {
				log.Error("failed to logout user", sl.Err(err))

				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, resp.Error("internal error"))

				return
			}
		}

		http.SetCookie(w, &http.Cookie{
			Name:     refreshTokenCookie,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
		})

		log.Info("user logged out")

		render.JSON(w, r, Response{
			Response: resp.OK("user logged out successfully"),
		})
	}
}
