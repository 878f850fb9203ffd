package refresh

import (
	"context"
	"errors"
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
	AccessToken string `json:"accessToken"`
}

// New mints a new access token from the refresh cookie. The refresh token
// itself is not rotated; the session row stays as it was at login.
func New(
	log *slog.Logger,
	authService *auth.Auth,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.refresh.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		cookie, err := r.Cookie(refreshTokenCookie)
		if err != nil || cookie.Value == "" {
			log.Info("refresh token not provided")

			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, resp.Error("refresh token not provided"))

			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		accessToken, err := authService.Refresh(ctx, cookie.Value)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrInvalidRefreshToken):
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, resp.Error("invalid refresh token"))

				return
			case errors.Is(err, auth.ErrSessionNotFound):
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, resp.Error("session not found"))

				return
			case errors.Is(err, auth.ErrSessionExpired):
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, resp.Error("session expired"))

				return
			}

			log.Error("failed to refresh access token", sl.Err(err))

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, resp.Error("internal error"))

			return
		}

		log.Info("access token refreshed")

		render.JSON(w, r, Response{
			Response:    resp.OK("access token generated successfully"),
			AccessToken: accessToken,
		})
	}
}
