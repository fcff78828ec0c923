package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const settingsColumns = `id, organization_id, page_title, page_description, custom_domain, subdomain, logo_url,
	primary_color, background_color, custom_css, show_incident_history, show_uptime_stats,
	maintenance_mode, maintenance_message, contact_email, support_url, created_at, updated_at`

func scanSettings(row pgx.Row) (OrganizationSetting, error) {
	var i OrganizationSetting
	err := row.Scan(
		&i.ID,
		&i.OrganizationID,
		&i.PageTitle,
		&i.PageDescription,
		&i.CustomDomain,
		&i.Subdomain,
		&i.LogoUrl,
		&i.PrimaryColor,
		&i.BackgroundColor,
		&i.CustomCss,
		&i.ShowIncidentHistory,
		&i.ShowUptimeStats,
		&i.MaintenanceMode,
		&i.MaintenanceMessage,
		&i.ContactEmail,
		&i.SupportUrl,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

// UpsertSettingsParams carries every writable settings column.
type UpsertSettingsParams struct {
	OrganizationID      pgtype.UUID
	PageTitle           pgtype.Text
	PageDescription     pgtype.Text
	CustomDomain        pgtype.Text
	Subdomain           pgtype.Text
	LogoUrl             pgtype.Text
	PrimaryColor        string
	BackgroundColor     string
	CustomCss           pgtype.Text
	ShowIncidentHistory bool
	ShowUptimeStats     bool
	MaintenanceMode     bool
	MaintenanceMessage  pgtype.Text
	ContactEmail        pgtype.Text
	SupportUrl          pgtype.Text
}

func (p UpsertSettingsParams) args() []any {
	return []any{
		p.OrganizationID,
		p.PageTitle,
		p.PageDescription,
		p.CustomDomain,
		p.Subdomain,
		p.LogoUrl,
		p.PrimaryColor,
		p.BackgroundColor,
		p.CustomCss,
		p.ShowIncidentHistory,
		p.ShowUptimeStats,
		p.MaintenanceMode,
		p.MaintenanceMessage,
		p.ContactEmail,
		p.SupportUrl,
	}
}

const createSettings = `-- name: CreateSettings :one
INSERT INTO organization_settings (
	organization_id, page_title, page_description, custom_domain, subdomain, logo_url,
	primary_color, background_color, custom_css, show_incident_history, show_uptime_stats,
	maintenance_mode, maintenance_message, contact_email, support_url
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
RETURNING ` + settingsColumns

func (q *Queries) CreateSettings(ctx context.Context, arg UpsertSettingsParams) (OrganizationSetting, error) {
	return scanSettings(q.db.QueryRow(ctx, createSettings, arg.args()...))
}

const updateSettings = `-- name: UpdateSettings :one
UPDATE organization_settings SET
	page_title = $2, page_description = $3, custom_domain = $4, subdomain = $5, logo_url = $6,
	primary_color = $7, background_color = $8, custom_css = $9, show_incident_history = $10,
	show_uptime_stats = $11, maintenance_mode = $12, maintenance_message = $13,
	contact_email = $14, support_url = $15, updated_at = now()
WHERE organization_id = $1
RETURNING ` + settingsColumns

func (q *Queries) UpdateSettings(ctx context.Context, arg UpsertSettingsParams) (OrganizationSetting, error) {
	return scanSettings(q.db.QueryRow(ctx, updateSettings, arg.args()...))
}

const getSettingsByOrg = `-- name: GetSettingsByOrg :one
SELECT ` + settingsColumns + ` FROM organization_settings WHERE organization_id = $1`

func (q *Queries) GetSettingsByOrg(ctx context.Context, orgID pgtype.UUID) (OrganizationSetting, error) {
	return scanSettings(q.db.QueryRow(ctx, getSettingsByOrg, orgID))
}

const getSettingsByHost = `-- name: GetSettingsByHost :one
SELECT ` + settingsColumns + ` FROM organization_settings
WHERE lower(subdomain) = lower($1) OR lower(custom_domain) = lower($1)
LIMIT 1`

// GetSettingsByHost matches either the generated subdomain or a custom domain.
func (q *Queries) GetSettingsByHost(ctx context.Context, host string) (OrganizationSetting, error) {
	return scanSettings(q.db.QueryRow(ctx, getSettingsByHost, host))
}

const subdomainExists = `-- name: SubdomainExists :one
SELECT EXISTS (SELECT 1 FROM organization_settings WHERE lower(subdomain) = lower($1))`

func (q *Queries) SubdomainExists(ctx context.Context, subdomain string) (bool, error) {
	var exists bool
	err := q.db.QueryRow(ctx, subdomainExists, subdomain).Scan(&exists)
	return exists, err
}
