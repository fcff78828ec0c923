package service

import (
	"time"

	"statuspage/pkg/status"

	"github.com/google/uuid"
)

// DefaultUptimePercentage is reported for services that never had one set.
const DefaultUptimePercentage = 99.9

type Service struct {
	ID               uuid.UUID
	OrganizationID   uuid.UUID
	Name             string
	Description      string
	Status           status.ServiceStatus
	UptimePercentage float64
	CreatedAt        time.Time
	UpdatedAt        *time.Time
}

type CreateServiceCmd struct {
	OrganizationID   uuid.UUID
	Name             string
	Description      string
	Status           status.ServiceStatus
	UptimePercentage *float64
}

// UpdateServiceCmd is a partial update; nil fields are left unchanged.
type UpdateServiceCmd struct {
	ID               uuid.UUID
	OrganizationID   uuid.UUID
	Name             *string
	Description      *string
	Status           *status.ServiceStatus
	UptimePercentage *float64
}

type RefreshResult struct {
	Total   int `json:"total"`
	Changed int `json:"changed"`
}
