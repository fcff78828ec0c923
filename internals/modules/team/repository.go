package team

import (
	"context"
	"statuspage/internals/modules/user"
	"statuspage/internals/security"
	"statuspage/pkg/db"
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

func (r *repository) ListByOrg(ctx context.Context, orgID uuid.UUID) ([]user.User, error) {
	const op string = "repo.team.list_by_org"

	rows, err := r.querier.ListUsersByOrg(ctx, utils.ToPgUUID(orgID))
	if err != nil {
		return nil, utils.WrapRepoError(op, err, false, r.logger)
	}
	out := make([]user.User, 0, len(rows))
	for _, u := range rows {
		out = append(out, user.FromDB(u))
	}
	return out, nil
}

func (r *repository) GetInOrg(ctx context.Context, id, orgID uuid.UUID) (user.User, error) {
	const op string = "repo.team.get_in_org"

	u, err := r.querier.GetUserInOrg(ctx, utils.ToPgUUID(id), utils.ToPgUUID(orgID))
	if err != nil {
		return user.User{}, utils.WrapRepoError(op, err, true, r.logger)
	}
	return user.FromDB(u), nil
}

func (r *repository) UpdateAccess(ctx context.Context, c AccessChange) (user.User, error) {
	const op string = "repo.team.update_access"

	u, err := r.querier.UpdateUserAccess(ctx, db.UpdateUserAccessParams{
		ID:             utils.ToPgUUID(c.UserID),
		OrganizationID: utils.ToPgUUID(c.OrganizationID),
		Status:         string(c.Status),
		Role:           string(c.Role),
		ApprovedBy:     utils.ToPgUUID(c.ApprovedBy),
		ApprovedAt:     utils.ToPgTimestamptz(c.ApprovedAt),
	})
	if err != nil {
		return user.User{}, utils.WrapRepoError(op, err, true, r.logger)
	}
	return user.FromDB(u), nil
}

func (r *repository) UpdateRole(ctx context.Context, id, orgID uuid.UUID, role security.Role) (user.User, error) {
	const op string = "repo.team.update_role"

	u, err := r.querier.UpdateUserRole(ctx, utils.ToPgUUID(id), utils.ToPgUUID(orgID), string(role))
	if err != nil {
		return user.User{}, utils.WrapRepoError(op, err, true, r.logger)
	}
	return user.FromDB(u), nil
}

func (r *repository) Organization(ctx context.Context, id uuid.UUID) (OrganizationInfo, error) {
	const op string = "repo.team.organization"

	o, err := r.querier.GetOrganizationByID(ctx, utils.ToPgUUID(id))
	if err != nil {
		return OrganizationInfo{}, utils.WrapRepoError(op, err, true, r.logger)
	}
	return OrganizationInfo{
		ID:     utils.FromPgUUID(o.ID),
		Name:   o.Name,
		Domain: utils.FromPgText(o.Domain),
		Status: o.Status,
	}, nil
}
