package service

import (
	"time"

	"statuspage/pkg/status"
)

type CreateServiceRequest struct {
	Name        string   `json:"name" validate:"required,min=1,max=120"`
	Description string   `json:"description" validate:"max=1000"`
	Status      string   `json:"status" validate:"omitempty,oneof=operational degraded partial_outage major_outage maintenance"`
	Uptime      *float64 `json:"uptime_percentage" validate:"omitempty,gte=0,lte=100"`
}

type UpdateServiceRequest struct {
	Name        *string  `json:"name" validate:"omitempty,min=1,max=120"`
	Description *string  `json:"description" validate:"omitempty,max=1000"`
	Status      *string  `json:"status" validate:"omitempty,oneof=operational degraded partial_outage major_outage maintenance"`
	Uptime      *float64 `json:"uptime_percentage" validate:"omitempty,gte=0,lte=100"`
}

type UpdateServiceStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=operational degraded partial_outage major_outage maintenance"`
}

type ServiceResponse struct {
	ID             string               `json:"id"`
	OrganizationID string               `json:"organization_id"`
	Name           string               `json:"name"`
	Description    string               `json:"description,omitempty"`
	Status         status.ServiceStatus `json:"status"`
	Uptime         float64              `json:"uptime_percentage"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      *time.Time           `json:"updated_at,omitempty"`
}

func toResponse(s Service) ServiceResponse {
	return ServiceResponse{
		ID:             s.ID.String(),
		OrganizationID: s.OrganizationID.String(),
		Name:           s.Name,
		Description:    s.Description,
		Status:         s.Status,
		Uptime:         s.UptimePercentage,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}
