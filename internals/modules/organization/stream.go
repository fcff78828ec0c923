package organization

import (
	"context"
	"net/http"
	"net/url"
	"statuspage/pkg/metrics"
	"statuspage/pkg/utils"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
)

const streamWriteTimeout = 5 * time.Second

var streamUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		u, err := url.Parse(origin)
		if err != nil {
			return false
		}
		return strings.EqualFold(strings.TrimSpace(r.Host), strings.TrimSpace(u.Host))
	},
}

// Stream pushes the status snapshot on connect and then every stream interval
// until the client goes away.
func (h *PublicHandler) Stream(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)

	// resolve before upgrading so an unknown org is a plain 404
	org, err := h.pages.Resolve(ctx, chi.URLParam(r, "orgRef"))
	if err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}

	conn, err := streamUpgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Debug().Err(err).Str("organization_id", org.ID.String()).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	metrics.StreamClients.Inc()
	defer metrics.StreamClients.Dec()

	// detached from request deadlines; the stream ends when the client disconnects
	streamCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	push := func() error {
		snap, err := h.pages.snapshot(streamCtx, org)
		if err != nil {
			h.logger.Error().Err(err).Str("organization_id", org.ID.String()).Msg("status snapshot for stream failed")
			return nil
		}
		_ = conn.SetWriteDeadline(time.Now().Add(streamWriteTimeout))
		return conn.WriteJSON(snap)
	}

	if err := push(); err != nil {
		return
	}

	ticker := time.NewTicker(h.streamInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := push(); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
