package incident

import (
	"context"
	"statuspage/pkg/apperror"
	"statuspage/pkg/db"
	"statuspage/pkg/status"
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

func FromDB(i db.Incident) Incident {
	return Incident{
		ID:             utils.FromPgUUID(i.ID),
		OrganizationID: utils.FromPgUUID(i.OrganizationID),
		ServiceID:      utils.FromPgUUID(i.ServiceID),
		Title:          i.Title,
		Description:    utils.FromPgText(i.Description),
		Status:         status.IncidentStatus(i.Status),
		Impact:         status.IncidentImpact(i.Impact),
		CreatedAt:      utils.FromPgTimestamptz(i.CreatedAt),
		UpdatedAt:      utils.FromPgTimestamptzPtr(i.UpdatedAt),
		ResolvedAt:     utils.FromPgTimestamptzPtr(i.ResolvedAt),
	}
}

func fromDBList(rows []db.Incident) []Incident {
	out := make([]Incident, 0, len(rows))
	for _, i := range rows {
		out = append(out, FromDB(i))
	}
	return out
}

func (r *repository) Create(ctx context.Context, cmd CreateIncidentCmd) (Incident, error) {
	const op string = "repo.incident.create"

	i, err := r.querier.CreateIncident(ctx, db.CreateIncidentParams{
		OrganizationID: utils.ToPgUUID(cmd.OrganizationID),
		ServiceID:      utils.ToPgUUID(cmd.ServiceID),
		Title:          cmd.Title,
		Description:    utils.ToPgText(cmd.Description),
		Status:         string(status.Investigating),
		Impact:         string(cmd.Impact),
	})
	if err != nil {
		return Incident{}, utils.WrapRepoError(op, err, false, r.logger)
	}
	return FromDB(i), nil
}

func (r *repository) GetByID(ctx context.Context, id, orgID uuid.UUID) (Incident, error) {
	const op string = "repo.incident.get_by_id"

	i, err := r.querier.GetIncident(ctx, utils.ToPgUUID(id), utils.ToPgUUID(orgID))
	if err != nil {
		return Incident{}, utils.WrapRepoError(op, err, true, r.logger)
	}
	return FromDB(i), nil
}

func (r *repository) List(ctx context.Context, f ListFilter) ([]Incident, error) {
	const op string = "repo.incident.list"

	rows, err := r.querier.ListIncidents(ctx, db.ListIncidentsParams{
		OrganizationID: utils.ToPgUUID(f.OrganizationID),
		ServiceID:      utils.ToPgUUIDPtr(f.ServiceID),
		ActiveOnly:     f.ActiveOnly,
	})
	if err != nil {
		return nil, utils.WrapRepoError(op, err, false, r.logger)
	}
	return fromDBList(rows), nil
}

func (r *repository) ListSince(ctx context.Context, orgID uuid.UUID, since time.Time) ([]Incident, error) {
	const op string = "repo.incident.list_since"

	rows, err := r.querier.ListIncidentsSince(ctx, utils.ToPgUUID(orgID), utils.ToPgTimestamptz(since))
	if err != nil {
		return nil, utils.WrapRepoError(op, err, false, r.logger)
	}
	return fromDBList(rows), nil
}

func (r *repository) Update(ctx context.Context, i Incident) (Incident, error) {
	const op string = "repo.incident.update"

	updated, err := r.querier.UpdateIncident(ctx, db.UpdateIncidentParams{
		ID:             utils.ToPgUUID(i.ID),
		OrganizationID: utils.ToPgUUID(i.OrganizationID),
		Title:          i.Title,
		Description:    utils.ToPgText(i.Description),
		Status:         string(i.Status),
		Impact:         string(i.Impact),
		ResolvedAt:     utils.ToPgTimestamptzPtr(i.ResolvedAt),
	})
	if err != nil {
		return Incident{}, utils.WrapRepoError(op, err, true, r.logger)
	}
	return FromDB(updated), nil
}

func (r *repository) Delete(ctx context.Context, id, orgID uuid.UUID) error {
	const op string = "repo.incident.delete"

	rows, err := r.querier.DeleteIncident(ctx, utils.ToPgUUID(id), utils.ToPgUUID(orgID))
	if err != nil {
		return utils.WrapRepoError(op, err, false, r.logger)
	}
	if rows == 0 {
		return apperror.Newf(apperror.NotFound, op, "incident not found")
	}
	return nil
}

func (r *repository) Stats(ctx context.Context, orgID uuid.UUID) (Stats, error) {
	const op string = "repo.incident.stats"

	row, err := r.querier.IncidentStats(ctx, utils.ToPgUUID(orgID))
	if err != nil {
		return Stats{}, utils.WrapRepoError(op, err, false, r.logger)
	}
	return Stats{
		Total:          row.Total,
		Active:         row.Active,
		Resolved:       row.Resolved,
		CriticalActive: row.CriticalActive,
	}, nil
}
