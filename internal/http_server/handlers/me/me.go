package me

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"auth_backend/internal/auth"
	resp "auth_backend/internal/lib/api/response"
	sl "auth_backend/internal/lib/logger"
	"auth_backend/internal/middleware/authn"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
)

type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type Response struct {
	resp.Response
	User User `json:"user"`
}

// New returns the authenticated user. The user id comes from the authn
// middleware, never from the request itself.
func New(
	log *slog.Logger,
	authService *auth.Auth,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.me.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		userID, ok := authn.UserIDFromContext(r.Context())
		if !ok {
			log.Error("no user id in request context")

			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, resp.Error("user id is required"))

			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		user, err := authService.User(ctx, userID)
		if err != nil {
			if errors.Is(err, auth.ErrUserNotFound) {
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, resp.Error("user not found"))

				return
			}

			log.Error("failed to get user", sl.Err(err))

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, resp.Error("internal error"))

			return
		}

		render.JSON(w, r, Response{
			Response: resp.OK("user found successfully"),
			User:     User{ID: user.ID, Email: user.Email},
		})
	}
}
