package timeline

import (
	"context"
	"statuspage/internals/modules/incident"
	"statuspage/pkg/db"
	"statuspage/pkg/utils"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type repository struct {
	querier *db.Queries
	logger  *zerolog.Logger
}

func NewRepository(dbExecutor db.DBTX, logger *zerolog.Logger) *repository {
	return &repository{
		querier: db.New(dbExecutor),
		logger:  logger,
	}
}

// InWindow returns incidents whose lifetime intersects [start, end], oldest first.
func (r *repository) InWindow(ctx context.Context, orgID uuid.UUID, start, end time.Time) ([]incident.Incident, error) {
	const op string = "repo.timeline.in_window"

	rows, err := r.querier.ListIncidentsInWindow(ctx, utils.ToPgUUID(orgID), utils.ToPgTimestamptz(start), utils.ToPgTimestamptz(end))
	if err != nil {
		return nil, utils.WrapRepoError(op, err, false, r.logger)
	}
	out := make([]incident.Incident, 0, len(rows))
	for _, i := range rows {
		out = append(out, incident.FromDB(i))
	}
	return out, nil
}
