package app

import (
	"context"
	"net/http"
	"statuspage/pkg/apperror"
	"statuspage/pkg/utils"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Cache    string `json:"cache"`
}

// Health reports 503 when either backing store is unreachable.
func Health(db, cache Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reqID := middleware.GetReqID(r.Context())
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		resp := HealthResponse{Status: "healthy", Database: "up", Cache: "up"}
		var g errgroup.Group
		g.Go(func() error {
			if err := db.Ping(ctx); err != nil {
				resp.Database = "down"
				return err
			}
			return nil
		})
		g.Go(func() error {
			if err := cache.Ping(ctx); err != nil {
				resp.Cache = "down"
				return err
			}
			return nil
		})

		if err := g.Wait(); err != nil {
			utils.WriteError(w, http.StatusServiceUnavailable, reqID, apperror.Dependency, "database "+resp.Database+", cache "+resp.Cache)
			return
		}
		utils.WriteJSON(w, http.StatusOK, reqID, "ok", resp)
	}
}
