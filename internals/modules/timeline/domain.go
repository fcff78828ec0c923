package timeline

import (
	"statuspage/pkg/projector"
	"statuspage/pkg/status"
	"time"

	"github.com/google/uuid"
)

type OrganizationRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type Period struct {
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Days      int       `json:"days"`
}

type ServiceRef struct {
	ID            uuid.UUID            `json:"id"`
	Name          string               `json:"name"`
	Description   string               `json:"description,omitempty"`
	CurrentStatus status.ServiceStatus `json:"current_status"`
}

// Block is one incident bar on a service's row.
type Block struct {
	ID            uuid.UUID             `json:"id"`
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

type ServiceTimeline struct {
	Service       ServiceRef `json:"service"`
	IncidentCount int        `json:"incident_count"`
	Incidents     []Block    `json:"incidents"`
}

type Summary struct {
	TotalIncidents         int     `json:"total_incidents"`
	CriticalIncidents      int     `json:"critical_incidents"`
	HighIncidents          int     `json:"high_incidents"`
	OngoingIncidents       int     `json:"ongoing_incidents"`
	AverageResolutionHours float64 `json:"average_resolution_hours"`
}

type LegendEntry struct {
	Color string `json:"color"`
	Label string `json:"label"`
}

type Timeline struct {
	Organization OrganizationRef        `json:"organization"`
	Period       Period                 `json:"timeline_period"`
	Services     []ServiceTimeline      `json:"services"`
	Summary      Summary                `json:"summary"`
	ImpactLegend map[string]LegendEntry `json:"impact_legend"`
	GeneratedAt  time.Time              `json:"generated_at"`
}
