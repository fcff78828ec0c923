package statusclient

import (
	"statuspage/pkg/projector"
	"statuspage/pkg/status"
	"time"
)

type envelope[T any] struct {
	Success   bool   `json:"success"`
	RequestID string `json:"request_id"`
	Message   string `json:"message"`
	Data      T      `json:"data"`
}

type errorEnvelope struct {
	Success   bool   `json:"success"`
	RequestID string `json:"request_id"`
	Error     struct {
		Kind    string `json:"kind"`
		Message string `json:"message"`
	} `json:"error"`
}

// auth

type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

type Profile struct {
	ID             string     `json:"id"`
	Email          string     `json:"email"`
	FirstName      string     `json:"first_name"`
	LastName       string     `json:"last_name"`
	OrganizationID string     `json:"organization_id"`
	Role           string     `json:"role"`
	Status         string     `json:"status"`
	ApprovedAt     *time.Time `json:"approved_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

type RegisterUserRequest struct {
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	OrganizationID string `json:"organization_id"`
}

// organizations

type Subscription struct {
	Valid    bool     `json:"valid"`
	PlanName string   `json:"plan_name,omitempty"`
	Features []string `json:"features,omitempty"`
	Message  string   `json:"message"`
}

type AdminUser struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type RegisterOrganizationRequest struct {
	Name             string    `json:"name"`
	Domain           string    `json:"domain,omitempty"`
	SubscriptionCode string    `json:"subscription_code"`
	AdminUser        AdminUser `json:"admin_user"`
}

type Registration struct {
	OrganizationID   string `json:"organization_id"`
	OrganizationName string `json:"organization_name"`
	Status           string `json:"status"`
	Subdomain        string `json:"subdomain"`
	AdminUserID      string `json:"admin_user_id"`
	AdminEmail       string `json:"admin_email"`
	PlanName         string `json:"plan_name"`
}

type OrganizationInfo struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Domain string `json:"domain,omitempty"`
}

// SettingsPatch leaves nil fields untouched on the server.
type SettingsPatch struct {
	PageTitle           *string `json:"page_title,omitempty"`
	PageDescription     *string `json:"page_description,omitempty"`
	CustomDomain        *string `json:"custom_domain,omitempty"`
	Subdomain           *string `json:"subdomain,omitempty"`
	LogoURL             *string `json:"logo_url,omitempty"`
	PrimaryColor        *string `json:"primary_color,omitempty"`
	BackgroundColor     *string `json:"background_color,omitempty"`
	CustomCSS           *string `json:"custom_css,omitempty"`
	ShowIncidentHistory *bool   `json:"show_incident_history,omitempty"`
	ShowUptimeStats     *bool   `json:"show_uptime_stats,omitempty"`
	MaintenanceMode     *bool   `json:"maintenance_mode,omitempty"`
	MaintenanceMessage  *string `json:"maintenance_message,omitempty"`
	ContactEmail        *string `json:"contact_email,omitempty"`
	SupportURL          *string `json:"support_url,omitempty"`
}

type Settings struct {
	OrganizationID      string     `json:"organization_id"`
	PageTitle           string     `json:"page_title"`
	PageDescription     string     `json:"page_description"`
	CustomDomain        string     `json:"custom_domain,omitempty"`
	Subdomain           string     `json:"subdomain,omitempty"`
	LogoURL             string     `json:"logo_url,omitempty"`
	PrimaryColor        string     `json:"primary_color"`
	BackgroundColor     string     `json:"background_color"`
	CustomCSS           string     `json:"custom_css,omitempty"`
	ShowIncidentHistory bool       `json:"show_incident_history"`
	ShowUptimeStats     bool       `json:"show_uptime_stats"`
	MaintenanceMode     bool       `json:"maintenance_mode"`
	MaintenanceMessage  string     `json:"maintenance_message,omitempty"`
	ContactEmail        string     `json:"contact_email,omitempty"`
	SupportURL          string     `json:"support_url,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           *time.Time `json:"updated_at,omitempty"`
}

// services and incidents

type Service struct {
	ID             string               `json:"id"`
	OrganizationID string               `json:"organization_id,omitempty"`
	Name           string               `json:"name"`
	Description    string               `json:"description,omitempty"`
	Status         status.ServiceStatus `json:"status"`
	// Uptime is absent on branded pages that hide uptime stats.
	Uptime    *float64   `json:"uptime_percentage,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

type CreateServiceRequest struct {
	Name        string   `json:"name" validate:"required,min=1,max=120"`
	Description string   `json:"description" validate:"max=1000"`
	Status      string   `json:"status" validate:"omitempty,oneof=operational degraded partial_outage major_outage maintenance"`
	Uptime      *float64 `json:"uptime_percentage,omitempty" validate:"omitempty,gte=0,lte=100"`
}

type UpdateServiceRequest struct {
	Name        *string  `json:"name,omitempty" validate:"omitempty,min=1,max=120"`
	Description *string  `json:"description,omitempty" validate:"omitempty,max=1000"`
	Status      *string  `json:"status,omitempty" validate:"omitempty,oneof=operational degraded partial_outage major_outage maintenance"`
	Uptime      *float64 `json:"uptime_percentage,omitempty" validate:"omitempty,gte=0,lte=100"`
}

type RefreshResult struct {
	Total   int `json:"total"`
	Changed int `json:"changed"`
}

type Incident struct {
	ID             string                `json:"id"`
	OrganizationID string                `json:"organization_id,omitempty"`
	ServiceID      string                `json:"service_id"`
	Title          string                `json:"title"`
	Description    string                `json:"description,omitempty"`
	Status         status.IncidentStatus `json:"status"`
	Impact         status.IncidentImpact `json:"impact"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      *time.Time            `json:"updated_at,omitempty"`
	ResolvedAt     *time.Time            `json:"resolved_at,omitempty"`
}

type CreateIncidentRequest struct {
	ServiceID   string `json:"service_id" validate:"required,uuid"`
	Title       string `json:"title" validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"max=10000"`
	Impact      string `json:"impact" validate:"omitempty,oneof=low medium high critical"`
}

type UpdateIncidentRequest struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=10000"`
	Status      *string `json:"status,omitempty" validate:"omitempty,oneof=investigating identified monitoring resolved"`
	Impact      *string `json:"impact,omitempty" validate:"omitempty,oneof=low medium high critical"`
}

type IncidentFilter struct {
	ServiceID  string
	ActiveOnly bool
}

type IncidentStats struct {
	Total          int64 `json:"total_incidents"`
	Active         int64 `json:"active_incidents"`
	Resolved       int64 `json:"resolved_incidents"`
	CriticalActive int64 `json:"critical_active"`
}

// team

type Member struct {
	ID         string     `json:"id"`
	FirstName  string     `json:"first_name"`
	LastName   string     `json:"last_name"`
	Email      string     `json:"email"`
	Role       string     `json:"role"`
	Status     string     `json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
	ApprovedAt *time.Time `json:"approved_at,omitempty"`
	ApprovedBy string     `json:"approved_by,omitempty"`
}

type Members struct {
	Total    int      `json:"total"`
	Pending  int      `json:"pending"`
	Approved int      `json:"approved"`
	Rejected int      `json:"rejected"`
	Members  []Member `json:"members"`
}

// public

type OrganizationSummary struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Domain string `json:"domain,omitempty"`
}

type StatusSnapshot struct {
	Organization  OrganizationSummary  `json:"organization"`
	OverallStatus status.OverallStatus `json:"overall_status"`
	Services      []Service            `json:"services"`
	Incidents     []Incident           `json:"incidents"`
	LastUpdated   time.Time            `json:"last_updated"`
}

type DirectoryEntry struct {
	ID           string               `json:"id"`
	Name         string               `json:"name"`
	Domain       string               `json:"domain,omitempty"`
	Status       status.OverallStatus `json:"status"`
	ServiceCount int                  `json:"service_count"`
}

type StatusPage struct {
	OrganizationID      string               `json:"organization_id"`
	OrganizationName    string               `json:"organization_name"`
	PageTitle           string               `json:"page_title,omitempty"`
	PageDescription     string               `json:"page_description,omitempty"`
	LogoURL             string               `json:"logo_url,omitempty"`
	PrimaryColor        string               `json:"primary_color"`
	BackgroundColor     string               `json:"background_color"`
	ShowIncidentHistory bool                 `json:"show_incident_history"`
	ShowUptimeStats     bool                 `json:"show_uptime_stats"`
	MaintenanceMode     bool                 `json:"maintenance_mode"`
	MaintenanceMessage  string               `json:"maintenance_message,omitempty"`
	OverallStatus       status.OverallStatus `json:"overall_status"`
	Services            []Service            `json:"services"`
	Incidents           []Incident           `json:"incidents"`
}

// timeline

type TimelineBlock struct {
	ID            string                `json:"id"`
	Title         string                `json:"title"`
	Description   string                `json:"description,omitempty"`
	Impact        status.IncidentImpact `json:"impact"`
	Status        status.IncidentStatus `json:"status"`
	Color         string                `json:"color"`
	StartTime     time.Time             `json:"start_time"`
	EndTime       time.Time             `json:"end_time"`
	DurationHours float64               `json:"duration_hours"`
	DurationLabel string                `json:"duration_label"`
	IsOngoing     bool                  `json:"is_ongoing"`
	Layout        projector.Layout      `json:"layout"`
}

type TimelineService struct {
	Service struct {
		ID            string               `json:"id"`
		Name          string               `json:"name"`
		Description   string               `json:"description,omitempty"`
		CurrentStatus status.ServiceStatus `json:"current_status"`
	} `json:"service"`
	IncidentCount int             `json:"incident_count"`
	Incidents     []TimelineBlock `json:"incidents"`
}

type Timeline struct {
	Organization OrganizationSummary `json:"organization"`
	Period       struct {
		StartDate time.Time `json:"start_date"`
		EndDate   time.Time `json:"end_date"`
		Days      int       `json:"days"`
	} `json:"timeline_period"`
	Services []TimelineService `json:"services"`
	Summary  struct {
		TotalIncidents         int     `json:"total_incidents"`
		CriticalIncidents      int     `json:"critical_incidents"`
		HighIncidents          int     `json:"high_incidents"`
		OngoingIncidents       int     `json:"ongoing_incidents"`
		AverageResolutionHours float64 `json:"average_resolution_hours"`
	} `json:"summary"`
	ImpactLegend map[string]struct {
		Color string `json:"color"`
		Label string `json:"label"`
	} `json:"impact_legend"`
	GeneratedAt time.Time `json:"generated_at"`
}

type Health struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Cache    string `json:"cache"`
}
