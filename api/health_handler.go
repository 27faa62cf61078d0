package api

import (
	"context"
	"net/http"
	"time"

	"github.com/IliyaMhz/PersonalBlog/errs"
	"github.com/rs/zerolog/log"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type healthHandler struct {
	responder   Responder
	store       Pinger
	startupTime time.Time
}

func newHealthHandler(store Pinger, startupTime time.Time) healthHandler {
	logger := log.With().Str("handlerName", "healthHandler").Logger()

	return healthHandler{
		responder:   NewResponder(logger),
		store:       store,
		startupTime: startupTime,
	}
}

// health pings the store with a short deadline
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} ErrorResponse "Database unreachable"
// @Router /health [get]
func (h healthHandler) health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := h.store.Ping(ctx); err != nil {
			h.responder.WriteError(w, r, errs.NewDatabaseConnectionError(err))
			return
		}

		now := time.Now().UTC()
		h.responder.WriteJSON(w, http.StatusOK, HealthResponse{
			Status:        "healthy",
			Timestamp:     now.Format(time.RFC3339),
			UptimeSeconds: int64(now.Sub(h.startupTime).Seconds()),
		})
	}
}
