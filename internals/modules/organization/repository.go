package organization

import (
	"context"
	"fmt"
	"statuspage/internals/security"
	"statuspage/pkg/apperror"
	"statuspage/pkg/db"
	"statuspage/pkg/utils"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Pool is the slice of *pgxpool.Pool the repository needs: queries plus transactions.
type Pool interface {
	db.DBTX
	db.TxBeginner
}

type repository struct {
	pool    Pool
	querier *db.Queries
	logger  *zerolog.Logger
}

func NewRepository(pool Pool, logger *zerolog.Logger) *repository {
	return &repository{
		pool:    pool,
		querier: db.New(pool),
		logger:  logger,
	}
}

func fromDB(o db.Organization) Organization {
	return Organization{
		ID:               utils.FromPgUUID(o.ID),
		Name:             o.Name,
		Domain:           utils.FromPgText(o.Domain),
		SubscriptionCode: utils.FromPgText(o.SubscriptionCode),
		PlanName:         utils.FromPgText(o.PlanName),
		Status:           o.Status,
		CreatedAt:        utils.FromPgTimestamptz(o.CreatedAt),
	}
}

func settingsFromDB(s db.OrganizationSetting) Settings {
	return Settings{
		OrganizationID:      utils.FromPgUUID(s.OrganizationID),
		PageTitle:           utils.FromPgText(s.PageTitle),
		PageDescription:     utils.FromPgText(s.PageDescription),
		CustomDomain:        utils.FromPgText(s.CustomDomain),
		Subdomain:           utils.FromPgText(s.Subdomain),
		LogoURL:             utils.FromPgText(s.LogoUrl),
		PrimaryColor:        s.PrimaryColor,
		BackgroundColor:     s.BackgroundColor,
		CustomCSS:           utils.FromPgText(s.CustomCss),
		ShowIncidentHistory: s.ShowIncidentHistory,
		ShowUptimeStats:     s.ShowUptimeStats,
		MaintenanceMode:     s.MaintenanceMode,
		MaintenanceMessage:  utils.FromPgText(s.MaintenanceMessage),
		ContactEmail:        utils.FromPgText(s.ContactEmail),
		SupportURL:          utils.FromPgText(s.SupportUrl),
		CreatedAt:           utils.FromPgTimestamptz(s.CreatedAt),
		UpdatedAt:           utils.FromPgTimestamptzPtr(s.UpdatedAt),
	}
}

func settingsParams(s Settings) db.UpsertSettingsParams {
	return db.UpsertSettingsParams{
		OrganizationID:      utils.ToPgUUID(s.OrganizationID),
		PageTitle:           utils.ToPgText(s.PageTitle),
		PageDescription:     utils.ToPgText(s.PageDescription),
		CustomDomain:        utils.ToPgText(s.CustomDomain),
		Subdomain:           utils.ToPgText(s.Subdomain),
		LogoUrl:             utils.ToPgText(s.LogoURL),
		PrimaryColor:        s.PrimaryColor,
		BackgroundColor:     s.BackgroundColor,
		CustomCss:           utils.ToPgText(s.CustomCSS),
		ShowIncidentHistory: s.ShowIncidentHistory,
		ShowUptimeStats:     s.ShowUptimeStats,
		MaintenanceMode:     s.MaintenanceMode,
		MaintenanceMessage:  utils.ToPgText(s.MaintenanceMessage),
		ContactEmail:        utils.ToPgText(s.ContactEmail),
		SupportUrl:          utils.ToPgText(s.SupportURL),
	}
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (Organization, error) {
	const op string = "repo.organization.get_by_id"

	o, err := r.querier.GetOrganizationByID(ctx, utils.ToPgUUID(id))
	if err != nil {
		return Organization{}, utils.WrapRepoError(op, err, true, r.logger)
	}
	return fromDB(o), nil
}

func (r *repository) GetByName(ctx context.Context, name string) (Organization, error) {
	const op string = "repo.organization.get_by_name"

	o, err := r.querier.GetOrganizationByName(ctx, name)
	if err != nil {
		return Organization{}, utils.WrapRepoError(op, err, true, r.logger)
	}
	return fromDB(o), nil
}

func (r *repository) ListPublic(ctx context.Context) ([]Organization, error) {
	const op string = "repo.organization.list_public"

	rows, err := r.querier.ListPublicOrganizations(ctx)
	if err != nil {
		return nil, utils.WrapRepoError(op, err, false, r.logger)
	}
	out := make([]Organization, 0, len(rows))
	for _, o := range rows {
		out = append(out, fromDB(o))
	}
	return out, nil
}

func (r *repository) EmailTaken(ctx context.Context, email string) (bool, error) {
	const op string = "repo.organization.email_taken"

	_, err := r.querier.GetUserByEmail(ctx, email)
	if err == nil {
		return true, nil
	}
	wrapped := utils.WrapRepoError(op, err, true, r.logger)
	if apperror.IsKind(wrapped, apperror.NotFound) {
		return false, nil
	}
	return false, wrapped
}

func (r *repository) GetSettings(ctx context.Context, orgID uuid.UUID) (Settings, error) {
	const op string = "repo.organization.get_settings"

	s, err := r.querier.GetSettingsByOrg(ctx, utils.ToPgUUID(orgID))
	if err != nil {
		return Settings{}, utils.WrapRepoError(op, err, true, r.logger)
	}
	return settingsFromDB(s), nil
}

func (r *repository) GetSettingsByHost(ctx context.Context, host string) (Settings, error) {
	const op string = "repo.organization.get_settings_by_host"

	s, err := r.querier.GetSettingsByHost(ctx, host)
	if err != nil {
		return Settings{}, utils.WrapRepoError(op, err, true, r.logger)
	}
	return settingsFromDB(s), nil
}

func (r *repository) CreateSettings(ctx context.Context, s Settings) (Settings, error) {
	const op string = "repo.organization.create_settings"

	created, err := r.querier.CreateSettings(ctx, settingsParams(s))
	if err != nil {
		return Settings{}, utils.WrapRepoError(op, err, false, r.logger)
	}
	return settingsFromDB(created), nil
}

func (r *repository) UpdateSettings(ctx context.Context, s Settings) (Settings, error) {
	const op string = "repo.organization.update_settings"

	updated, err := r.querier.UpdateSettings(ctx, settingsParams(s))
	if err != nil {
		return Settings{}, utils.WrapRepoError(op, err, true, r.logger)
	}
	return settingsFromDB(updated), nil
}

// Register writes the organization, its default settings and the approved
// admin in a single transaction.
func (r *repository) Register(ctx context.Context, in NewOrganization) (Registration, error) {
	const op string = "repo.organization.register"

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return Registration{}, utils.WrapRepoError(op, err, false, r.logger)
	}
	// no-op after a successful commit
	defer func() { _ = tx.Rollback(ctx) }()

	q := r.querier.WithTx(tx)

	org, err := q.CreateOrganization(ctx, db.CreateOrganizationParams{
		Name:             in.Name,
		Domain:           utils.ToPgText(in.Domain),
		SubscriptionCode: utils.ToPgText(in.SubscriptionCode),
		PlanName:         utils.ToPgText(in.PlanName),
		Status:           in.Status,
	})
	if err != nil {
		return Registration{}, utils.WrapRepoError(op, err, false, r.logger)
	}

	subdomain, err := uniqueSubdomain(ctx, q, Slugify(in.Name))
	if err != nil {
		return Registration{}, utils.WrapRepoError(op, err, false, r.logger)
	}

	orgID := utils.FromPgUUID(org.ID)
	settings := DefaultSettings(orgID)
	settings.Subdomain = subdomain
	settings.PageTitle = fmt.Sprintf("%s Status", in.Name)
	settings.PageDescription = fmt.Sprintf("System status and incident updates for %s", in.Name)
	if _, err := q.CreateSettings(ctx, settingsParams(settings)); err != nil {
		return Registration{}, utils.WrapRepoError(op, err, false, r.logger)
	}

	admin, err := q.CreateUser(ctx, db.CreateUserParams{
		Email:          in.Admin.Email,
		FirstName:      in.Admin.FirstName,
		LastName:       in.Admin.LastName,
		PasswordHash:   in.Admin.PasswordHash,
		OrganizationID: org.ID,
		Role:           string(security.RoleAdmin),
		Status:         string(security.StatusApproved),
		ApprovedAt:     utils.ToPgTimestamptz(time.Now().UTC()),
	})
	if err != nil {
		return Registration{}, utils.WrapRepoError(op, err, false, r.logger)
	}

	if err := tx.Commit(ctx); err != nil {
		return Registration{}, utils.WrapRepoError(op, err, false, r.logger)
	}

	return Registration{
		Organization: fromDB(org),
		Subdomain:    subdomain,
		AdminUserID:  utils.FromPgUUID(admin.ID),
		AdminEmail:   admin.Email,
	}, nil
}

type subdomainChecker interface {
	SubdomainExists(ctx context.Context, subdomain string) (bool, error)
}

// uniqueSubdomain appends -1, -2, ... to base until the subdomain is free.
func uniqueSubdomain(ctx context.Context, q subdomainChecker, base string) (string, error) {
	candidate := base
	for n := 1; ; n++ {
		taken, err := q.SubdomainExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, n)
	}
}
