package incident

import (
	"time"

	"statuspage/pkg/status"
)

type CreateIncidentRequest struct {
	ServiceID   string `json:"service_id" validate:"required,uuid"`
	Title       string `json:"title" validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"max=10000"`
	Impact      string `json:"impact" validate:"omitempty,oneof=low medium high critical"`
}

type UpdateIncidentRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=10000"`
	Status      *string `json:"status" validate:"omitempty,oneof=investigating identified monitoring resolved"`
	Impact      *string `json:"impact" validate:"omitempty,oneof=low medium high critical"`
}

type UpdateIncidentStatusRequest struct {
	Status        string `json:"status" validate:"required,oneof=investigating identified monitoring resolved"`
	UpdateMessage string `json:"update_message" validate:"max=5000"`
}

type IncidentResponse struct {
	ID             string                `json:"id"`
	OrganizationID string                `json:"organization_id"`
	ServiceID      string                `json:"service_id"`
	Title          string                `json:"title"`
	Description    string                `json:"description,omitempty"`
	Status         status.IncidentStatus `json:"status"`
	Impact         status.IncidentImpact `json:"impact"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      *time.Time            `json:"updated_at,omitempty"`
	ResolvedAt     *time.Time            `json:"resolved_at,omitempty"`
}

func ToResponse(i Incident) IncidentResponse {
	return IncidentResponse{
		ID:             i.ID.String(),
		OrganizationID: i.OrganizationID.String(),
		ServiceID:      i.ServiceID.String(),
		Title:          i.Title,
		Description:    i.Description,
		Status:         i.Status,
		Impact:         i.Impact,
		CreatedAt:      i.CreatedAt,
		UpdatedAt:      i.UpdatedAt,
		ResolvedAt:     i.ResolvedAt,
	}
}
