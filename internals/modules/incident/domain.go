package incident

import (
	"time"

	"statuspage/pkg/status"

	"github.com/google/uuid"
)

type Incident struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
	ServiceID      uuid.UUID
	Title          string
	Description    string
	Status         status.IncidentStatus
	Impact         status.IncidentImpact
	CreatedAt      time.Time
	UpdatedAt      *time.Time
	ResolvedAt     *time.Time
}

type CreateIncidentCmd struct {
	OrganizationID uuid.UUID
	ServiceID      uuid.UUID
	Title          string
	Description    string
	Impact         status.IncidentImpact
}

// UpdateIncidentCmd is a partial update; nil fields are left unchanged.
type UpdateIncidentCmd struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
	Title          *string
	Description    *string
	Status         *status.IncidentStatus
	Impact         *status.IncidentImpact
}

type UpdateStatusCmd struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
	Status         status.IncidentStatus
	UpdateMessage  string
}

type ListFilter struct {
	OrganizationID uuid.UUID
	ServiceID      *uuid.UUID
	ActiveOnly     bool
}

type Stats struct {
	Total          int64 `json:"total_incidents"`
	Active         int64 `json:"active_incidents"`
	Resolved       int64 `json:"resolved_incidents"`
	CriticalActive int64 `json:"critical_active"`
}
