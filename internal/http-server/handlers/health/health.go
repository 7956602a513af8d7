package health

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
)

// Core exposes the cached process state the health route reports. None
// of these calls may touch the network.
type Core interface {
	WebhookEnabled() bool
	TelegramConnected() bool
	FileSession() bool
	SessionExists() bool
}

type healthResponse struct {
	Status            string `json:"status"`
	Webhook           bool   `json:"webhook"`
	TelegramConnected bool   `json:"telegram_connected"`
	SessionExists     *bool  `json:"session_exists,omitempty"`
}

// Healthz reports liveness and cached connection state. It answers 200
// before any Telegram connection exists: "running" means the process is
// serving, not that the platform link is up.
func Healthz(_ *slog.Logger, core Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := healthResponse{
			Status:            "running",
			Webhook:           core.WebhookEnabled(),
			TelegramConnected: core.TelegramConnected(),
		}
		if core.FileSession() {
			exists := core.SessionExists()
			resp.SessionExists = &exists
		}

		render.Status(r, http.StatusOK)
		render.JSON(w, r, resp)
	}
}
