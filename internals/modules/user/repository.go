package user

import (
	"context"
	middle "statuspage/internals/middleware"
	"statuspage/internals/security"
	"statuspage/pkg/apperror"
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

// FromDB maps a stored user row. The team module shares it.
func FromDB(u db.User) User {
	return User{
		ID:             utils.FromPgUUID(u.ID),
		Email:          u.Email,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		PasswordHash:   u.PasswordHash,
		OrganizationID: utils.FromPgUUID(u.OrganizationID),
		Role:           security.Role(u.Role),
		Status:         security.AccountStatus(u.Status),
		ApprovedBy:     utils.FromPgUUIDPtr(u.ApprovedBy),
		ApprovedAt:     utils.FromPgTimestamptzPtr(u.ApprovedAt),
		CreatedAt:      utils.FromPgTimestamptz(u.CreatedAt),
	}
}

func (r *repository) Create(ctx context.Context, cmd CreateUserCmd) (User, error) {
	const op string = "repo.user.create"

	u, err := r.querier.CreateUser(ctx, db.CreateUserParams{
		Email:          cmd.Email,
		FirstName:      cmd.FirstName,
		LastName:       cmd.LastName,
		PasswordHash:   cmd.PasswordHash,
		OrganizationID: utils.ToPgUUID(cmd.OrganizationID),
		Role:           string(cmd.Role),
		Status:         string(cmd.Status),
	})
	if err != nil {
		return User{}, utils.WrapRepoError(op, err, false, r.logger)
	}
	return FromDB(u), nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (User, error) {
	const op string = "repo.user.get_by_id"

	u, err := r.querier.GetUserByID(ctx, utils.ToPgUUID(id))
	if err != nil {
		return User{}, utils.WrapRepoError(op, err, true, r.logger)
	}
	return FromDB(u), nil
}

func (r *repository) GetByEmail(ctx context.Context, email string) (User, error) {
	const op string = "repo.user.get_by_email"

	u, err := r.querier.GetUserByEmail(ctx, email)
	if err != nil {
		return User{}, utils.WrapRepoError(op, err, true, r.logger)
	}
	return FromDB(u), nil
}

func (r *repository) OrganizationExists(ctx context.Context, orgID uuid.UUID) (bool, error) {
	const op string = "repo.user.organization_exists"

	_, err := r.querier.GetOrganizationByID(ctx, utils.ToPgUUID(orgID))
	if err == nil {
		return true, nil
	}
	wrapped := utils.WrapRepoError(op, err, true, r.logger)
	if apperror.IsKind(wrapped, apperror.NotFound) {
		return false, nil
	}
	return false, wrapped
}

// CurrentAccess backs the auth middleware's per-request access check.
func (r *repository) CurrentAccess(ctx context.Context, userID uuid.UUID) (middle.Access, error) {
	u, err := r.GetByID(ctx, userID)
	if err != nil {
		return middle.Access{}, err
	}
	return middle.Access{
		OrgID:  u.OrganizationID,
		Role:   u.Role,
		Status: u.Status,
	}, nil
}
