package service

import (
	"context"
	"statuspage/pkg/apperror"
	"statuspage/pkg/db"
	"statuspage/pkg/status"
	"statuspage/pkg/utils"

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

func fromDB(s db.Service) Service {
	uptime := DefaultUptimePercentage
	if s.UptimePercentage.Valid {
		uptime = utils.FromPgFloat8(s.UptimePercentage)
	}
	return Service{
		ID:               utils.FromPgUUID(s.ID),
		OrganizationID:   utils.FromPgUUID(s.OrganizationID),
		Name:             s.Name,
		Description:      utils.FromPgText(s.Description),
		Status:           status.ServiceStatus(s.Status),
		UptimePercentage: uptime,
		CreatedAt:        utils.FromPgTimestamptz(s.CreatedAt),
		UpdatedAt:        utils.FromPgTimestamptzPtr(s.UpdatedAt),
	}
}

func (r *repository) Create(ctx context.Context, cmd CreateServiceCmd) (Service, error) {
	const op string = "repo.service.create"

	uptime := DefaultUptimePercentage
	if cmd.UptimePercentage != nil {
		uptime = *cmd.UptimePercentage
	}

	s, err := r.querier.CreateService(ctx, db.CreateServiceParams{
		OrganizationID:   utils.ToPgUUID(cmd.OrganizationID),
		Name:             cmd.Name,
		Description:      utils.ToPgText(cmd.Description),
		Status:           string(cmd.Status),
		UptimePercentage: utils.ToPgFloat8(uptime),
	})
	if err != nil {
		return Service{}, utils.WrapRepoError(op, err, false, r.logger)
	}
	return fromDB(s), nil
}

func (r *repository) GetByID(ctx context.Context, id, orgID uuid.UUID) (Service, error) {
	const op string = "repo.service.get_by_id"

	s, err := r.querier.GetService(ctx, utils.ToPgUUID(id), utils.ToPgUUID(orgID))
	if err != nil {
		return Service{}, utils.WrapRepoError(op, err, true, r.logger)
	}
	return fromDB(s), nil
}

func (r *repository) ListByOrg(ctx context.Context, orgID uuid.UUID) ([]Service, error) {
	const op string = "repo.service.list_by_org"

	rows, err := r.querier.ListServicesByOrg(ctx, utils.ToPgUUID(orgID))
	if err != nil {
		return nil, utils.WrapRepoError(op, err, false, r.logger)
	}

	out := make([]Service, 0, len(rows))
	for _, s := range rows {
		out = append(out, fromDB(s))
	}
	return out, nil
}

func (r *repository) Update(ctx context.Context, s Service) (Service, error) {
	const op string = "repo.service.update"

	updated, err := r.querier.UpdateService(ctx, db.UpdateServiceParams{
		ID:               utils.ToPgUUID(s.ID),
		OrganizationID:   utils.ToPgUUID(s.OrganizationID),
		Name:             s.Name,
		Description:      utils.ToPgText(s.Description),
		Status:           string(s.Status),
		UptimePercentage: utils.ToPgFloat8(s.UptimePercentage),
	})
	if err != nil {
		return Service{}, utils.WrapRepoError(op, err, true, r.logger)
	}
	return fromDB(updated), nil
}

func (r *repository) SetStatus(ctx context.Context, id uuid.UUID, st status.ServiceStatus) (Service, error) {
	const op string = "repo.service.set_status"

	updated, err := r.querier.UpdateServiceStatus(ctx, utils.ToPgUUID(id), string(st))
	if err != nil {
		return Service{}, utils.WrapRepoError(op, err, true, r.logger)
	}
	return fromDB(updated), nil
}

func (r *repository) Delete(ctx context.Context, id, orgID uuid.UUID) error {
	const op string = "repo.service.delete"

	rows, err := r.querier.DeleteService(ctx, utils.ToPgUUID(id), utils.ToPgUUID(orgID))
	if err != nil {
		return utils.WrapRepoError(op, err, false, r.logger)
	}
	if rows == 0 {
		return apperror.Newf(apperror.NotFound, op, "service not found")
	}
	return nil
}

func (r *repository) ActiveImpacts(ctx context.Context, serviceID uuid.UUID) ([]status.IncidentImpact, error) {
	const op string = "repo.service.active_impacts"

	rows, err := r.querier.ListActiveImpactsByService(ctx, utils.ToPgUUID(serviceID))
	if err != nil {
		return nil, utils.WrapRepoError(op, err, false, r.logger)
	}

	impacts := make([]status.IncidentImpact, 0, len(rows))
	for _, i := range rows {
		impacts = append(impacts, status.IncidentImpact(i))
	}
	return impacts, nil
}
