package organization

import (
	"statuspage/pkg/status"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	StatusActive    = "active"
	StatusTrial     = "trial"
	StatusSuspended = "suspended"
)

type Organization struct {
	ID               uuid.UUID
	Name             string
	Domain           string
	SubscriptionCode string
	PlanName         string
	Status           string
	CreatedAt        time.Time
}

type Settings struct {
	OrganizationID      uuid.UUID
	PageTitle           string
	PageDescription     string
	CustomDomain        string
	Subdomain           string
	LogoURL             string
	PrimaryColor        string
	BackgroundColor     string
	CustomCSS           string
	ShowIncidentHistory bool
	ShowUptimeStats     bool
	MaintenanceMode     bool
	MaintenanceMessage  string
	ContactEmail        string
	SupportURL          string
	CreatedAt           time.Time
	UpdatedAt           *time.Time
}

// DefaultSettings are the values a page starts with before any edit.
func DefaultSettings(orgID uuid.UUID) Settings {
	return Settings{
		OrganizationID:      orgID,
		PrimaryColor:        "#3b82f6",
		BackgroundColor:     "#ffffff",
		ShowIncidentHistory: true,
		ShowUptimeStats:     true,
	}
}

// SettingsPatch is a partial update; nil fields are left unchanged.
type SettingsPatch struct {
	PageTitle           *string
	PageDescription     *string
	CustomDomain        *string
	Subdomain           *string
	LogoURL             *string
	PrimaryColor        *string
	BackgroundColor     *string
	CustomCSS           *string
	ShowIncidentHistory *bool
	ShowUptimeStats     *bool
	MaintenanceMode     *bool
	MaintenanceMessage  *string
	ContactEmail        *string
	SupportURL          *string
}

func (p SettingsPatch) Apply(s Settings) Settings {
	setStr := func(dst *string, v *string) {
		if v != nil {
			*dst = strings.TrimSpace(*v)
		}
	}
	setBool := func(dst *bool, v *bool) {
		if v != nil {
			*dst = *v
		}
	}

	setStr(&s.PageTitle, p.PageTitle)
	setStr(&s.PageDescription, p.PageDescription)
	setStr(&s.CustomDomain, p.CustomDomain)
	setStr(&s.LogoURL, p.LogoURL)
	setStr(&s.PrimaryColor, p.PrimaryColor)
	setStr(&s.BackgroundColor, p.BackgroundColor)
	setStr(&s.CustomCSS, p.CustomCSS)
	setStr(&s.MaintenanceMessage, p.MaintenanceMessage)
	setStr(&s.ContactEmail, p.ContactEmail)
	setStr(&s.SupportURL, p.SupportURL)
	setBool(&s.ShowIncidentHistory, p.ShowIncidentHistory)
	setBool(&s.ShowUptimeStats, p.ShowUptimeStats)
	setBool(&s.MaintenanceMode, p.MaintenanceMode)
	if p.Subdomain != nil {
		s.Subdomain = Slugify(*p.Subdomain)
	}
	return s
}

// Slugify turns an organization name into its default subdomain.
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	return strings.NewReplacer(" ", "-", "_", "-").Replace(s)
}

type AdminAccount struct {
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
}

type RegisterCmd struct {
	Name             string
	Domain           string
	SubscriptionCode string
	AdminFirstName   string
	AdminLastName    string
	AdminEmail       string
	AdminPassword    string
}

// NewOrganization is what the repository persists in one transaction.
type NewOrganization struct {
	Name             string
	Domain           string
	SubscriptionCode string
	PlanName         string
	Status           string
	Admin            AdminAccount
}

type Registration struct {
	Organization Organization
	Subdomain    string
	AdminUserID  uuid.UUID
	AdminEmail   string
	Plan         Plan
}

type PublicService struct {
	ID          uuid.UUID            `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description,omitempty"`
	Status      status.ServiceStatus `json:"status"`
	Uptime      *float64             `json:"uptime_percentage,omitempty"`
	UpdatedAt   *time.Time           `json:"updated_at,omitempty"`
}

type PublicIncident struct {
	ID          uuid.UUID             `json:"id"`
	ServiceID   uuid.UUID             `json:"service_id"`
	Title       string                `json:"title"`
	Description string                `json:"description,omitempty"`
	Status      status.IncidentStatus `json:"status"`
	Impact      status.IncidentImpact `json:"impact"`
	CreatedAt   time.Time             `json:"created_at"`
	UpdatedAt   *time.Time            `json:"updated_at,omitempty"`
	ResolvedAt  *time.Time            `json:"resolved_at,omitempty"`
}

type OrganizationSummary struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Domain string    `json:"domain,omitempty"`
}

// StatusSnapshot is the public status of one organization. It is cached as-is.
type StatusSnapshot struct {
	Organization  OrganizationSummary  `json:"organization"`
	OverallStatus status.OverallStatus `json:"overall_status"`
	Services      []PublicService      `json:"services"`
	Incidents     []PublicIncident     `json:"incidents"`
	LastUpdated   time.Time            `json:"last_updated"`
}

type DirectoryEntry struct {
	ID           uuid.UUID            `json:"id"`
	Name         string               `json:"name"`
	Domain       string               `json:"domain,omitempty"`
	Status       status.OverallStatus `json:"status"`
	ServiceCount int                  `json:"service_count"`
}

// BrandedPage is the subdomain-addressed public page: branding plus the snapshot.
type BrandedPage struct {
	OrganizationID      uuid.UUID            `json:"organization_id"`
	OrganizationName    string               `json:"organization_name"`
	PageTitle           string               `json:"page_title,omitempty"`
	PageDescription     string               `json:"page_description,omitempty"`
	LogoURL             string               `json:"logo_url,omitempty"`
	PrimaryColor        string               `json:"primary_color"`
	BackgroundColor     string               `json:"background_color"`
	CustomCSS           string               `json:"custom_css,omitempty"`
	ShowIncidentHistory bool                 `json:"show_incident_history"`
	ShowUptimeStats     bool                 `json:"show_uptime_stats"`
	MaintenanceMode     bool                 `json:"maintenance_mode"`
	MaintenanceMessage  string               `json:"maintenance_message,omitempty"`
	ContactEmail        string               `json:"contact_email,omitempty"`
	SupportURL          string               `json:"support_url,omitempty"`
	OverallStatus       status.OverallStatus `json:"overall_status"`
	Services            []PublicService      `json:"services"`
	Incidents           []PublicIncident     `json:"incidents"`
}
