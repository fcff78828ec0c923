package organization

import "time"

type ValidateSubscriptionRequest struct {
	SubscriptionCode string `json:"subscription_code" validate:"required,max=64"`
}

type SubscriptionResponse struct {
	Valid    bool     `json:"valid"`
	PlanName string   `json:"plan_name,omitempty"`
	Features []string `json:"features,omitempty"`
	Message  string   `json:"message"`
}

type AdminUserRequest struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8,max=128"`
}

type RegisterRequest struct {
	Name             string           `json:"name" validate:"required,min=2,max=120"`
	Domain           string           `json:"domain" validate:"omitempty,fqdn"`
	SubscriptionCode string           `json:"subscription_code" validate:"required"`
	AdminUser        AdminUserRequest `json:"admin_user" validate:"required"`
}

type RegistrationResponse struct {
	OrganizationID   string `json:"organization_id"`
	OrganizationName string `json:"organization_name"`
	Status           string `json:"status"`
	Subdomain        string `json:"subdomain"`
	AdminUserID      string `json:"admin_user_id"`
	AdminEmail       string `json:"admin_email"`
	PlanName         string `json:"plan_name"`
}

// SettingsRequest serves both create and update; absent fields keep their value.
type SettingsRequest struct {
	PageTitle           *string `json:"page_title" validate:"omitempty,max=200"`
	PageDescription     *string `json:"page_description" validate:"omitempty,max=2000"`
	CustomDomain        *string `json:"custom_domain" validate:"omitempty,fqdn"`
	Subdomain           *string `json:"subdomain" validate:"omitempty,min=2,max=63"`
	LogoURL             *string `json:"logo_url" validate:"omitempty,url"`
	PrimaryColor        *string `json:"primary_color" validate:"omitempty,hexcolor"`
	BackgroundColor     *string `json:"background_color" validate:"omitempty,hexcolor"`
	CustomCSS           *string `json:"custom_css" validate:"omitempty,max=20000"`
	ShowIncidentHistory *bool   `json:"show_incident_history"`
	ShowUptimeStats     *bool   `json:"show_uptime_stats"`
	MaintenanceMode     *bool   `json:"maintenance_mode"`
	MaintenanceMessage  *string `json:"maintenance_message" validate:"omitempty,max=2000"`
	ContactEmail        *string `json:"contact_email" validate:"omitempty,email"`
	SupportURL          *string `json:"support_url" validate:"omitempty,url"`
}

func (r SettingsRequest) toPatch() SettingsPatch {
	return SettingsPatch{
		PageTitle:           r.PageTitle,
		PageDescription:     r.PageDescription,
		CustomDomain:        r.CustomDomain,
		Subdomain:           r.Subdomain,
		LogoURL:             r.LogoURL,
		PrimaryColor:        r.PrimaryColor,
		BackgroundColor:     r.BackgroundColor,
		CustomCSS:           r.CustomCSS,
		ShowIncidentHistory: r.ShowIncidentHistory,
		ShowUptimeStats:     r.ShowUptimeStats,
		MaintenanceMode:     r.MaintenanceMode,
		MaintenanceMessage:  r.MaintenanceMessage,
		ContactEmail:        r.ContactEmail,
		SupportURL:          r.SupportURL,
	}
}

type SettingsResponse struct {
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

func toSettingsResponse(s Settings) SettingsResponse {
	return SettingsResponse{
		OrganizationID:      s.OrganizationID.String(),
		PageTitle:           s.PageTitle,
		PageDescription:     s.PageDescription,
		CustomDomain:        s.CustomDomain,
		Subdomain:           s.Subdomain,
		LogoURL:             s.LogoURL,
		PrimaryColor:        s.PrimaryColor,
		BackgroundColor:     s.BackgroundColor,
		CustomCSS:           s.CustomCSS,
		ShowIncidentHistory: s.ShowIncidentHistory,
		ShowUptimeStats:     s.ShowUptimeStats,
		MaintenanceMode:     s.MaintenanceMode,
		MaintenanceMessage:  s.MaintenanceMessage,
		ContactEmail:        s.ContactEmail,
		SupportURL:          s.SupportURL,
		CreatedAt:           s.CreatedAt,
		UpdatedAt:           s.UpdatedAt,
	}
}
