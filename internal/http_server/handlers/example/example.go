package example

import (
	"net/http"
	"time"

	resp "auth_backend/internal/lib/api/response"

	"github.com/go-chi/render"
)

type Response struct {
	resp.Response
	Timestamp string `json:"timestamp"`
}

// New is a demo endpoint kept around for smoke-testing deployments.
func New() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, Response{
			Response:  resp.OK("example controller is working"),
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		})
	}
}
