package authn

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	resp "auth_backend/internal/lib/api/response"
	"auth_backend/internal/lib/jwt"

	"github.com/go-chi/render"
)

type ctxKey string

const userIDKey ctxKey = "authn.userID"

// UserIDFromContext returns the user id set by the middleware.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok
}

// New gates protected routes on a bearer access token. On success the
// verified user id is attached to the request context.
func New(log *slog.Logger, accessSecret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middleware.authn.New"

			log := log.With(slog.String("op", op))

			token := bearerToken(r)
			if token == "" {
				log.Info("no token provided")

				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, resp.Error("no token provided"))

				return
			}

			userID, err := jwt.ParseToken(token, accessSecret)
			if err != nil {
				log.Info("invalid token")

				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, resp.Error("invalid token"))

				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}

	return parts[1]
}
