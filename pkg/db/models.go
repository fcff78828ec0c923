package db

import "github.com/jackc/pgx/v5/pgtype"

type Organization struct {
	ID               pgtype.UUID
	Name             string
	Domain           pgtype.Text
	SubscriptionCode pgtype.Text
	PlanName         pgtype.Text
	Status           string
	CreatedAt        pgtype.Timestamptz
	UpdatedAt        pgtype.Timestamptz
}

type OrganizationSetting struct {
	ID                  pgtype.UUID
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
	CreatedAt           pgtype.Timestamptz
	UpdatedAt           pgtype.Timestamptz
}

type User struct {
	ID             pgtype.UUID
	Email          string
	FirstName      string
	LastName       string
	PasswordHash   string
	OrganizationID pgtype.UUID
	Role           string
	Status         string
	ApprovedBy     pgtype.UUID
	ApprovedAt     pgtype.Timestamptz
	CreatedAt      pgtype.Timestamptz
	UpdatedAt      pgtype.Timestamptz
}

type Service struct {
	ID               pgtype.UUID
	OrganizationID   pgtype.UUID
	Name             string
	Description      pgtype.Text
	Status           string
	UptimePercentage pgtype.Float8
	CreatedAt        pgtype.Timestamptz
	UpdatedAt        pgtype.Timestamptz
}

type Incident struct {
	ID             pgtype.UUID
	OrganizationID pgtype.UUID
	ServiceID      pgtype.UUID
	Title          string
	Description    pgtype.Text
	Status         string
	Impact         string
	CreatedAt      pgtype.Timestamptz
	UpdatedAt      pgtype.Timestamptz
	ResolvedAt     pgtype.Timestamptz
}
