package errors

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"TgBridge/internal/lib/api/response"
	"TgBridge/internal/lib/sl"
)

func NotAllowed(log *slog.Logger) http.HandlerFunc {
	mod := sl.Module("http.handlers.errors")

	return func(w http.ResponseWriter, r *http.Request) {
		log.With(
			mod,
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
		).Debug("method not allowed")

		render.Status(r, http.StatusMethodNotAllowed)
		render.JSON(w, r, response.Error("Method not allowed"))
	}
}
