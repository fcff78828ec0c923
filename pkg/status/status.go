// Package status holds the closed status vocabularies shared by the API and
// the client, and the pure reductions over them.
package status

import (
	"fmt"
	"strings"
)

// ServiceStatus is the health label of a single service.
type ServiceStatus string

const (
	Operational   ServiceStatus = "operational"
	Degraded      ServiceStatus = "degraded"
	PartialOutage ServiceStatus = "partial_outage"
	MajorOutage   ServiceStatus = "major_outage"
	Maintenance   ServiceStatus = "maintenance"
)

// ServiceStatuses lists every accepted ServiceStatus.
var ServiceStatuses = []ServiceStatus{Operational, Degraded, PartialOutage, MajorOutage, Maintenance}

func (s ServiceStatus) Valid() bool {
	switch s {
	case Operational, Degraded, PartialOutage, MajorOutage, Maintenance:
		return true
	}
	return false
}

// ParseServiceStatus is strict: anything outside ServiceStatuses is an error.
func ParseServiceStatus(s string) (ServiceStatus, error) {
	v := ServiceStatus(strings.ToLower(strings.TrimSpace(s)))
	if !v.Valid() {
		return "", fmt.Errorf("unknown service status %q", s)
	}
	return v, nil
}

// IncidentImpact is the severity of an incident.
type IncidentImpact string

const (
	ImpactLow      IncidentImpact = "low"
	ImpactMedium   IncidentImpact = "medium"
	ImpactHigh     IncidentImpact = "high"
	ImpactCritical IncidentImpact = "critical"
)

var IncidentImpacts = []IncidentImpact{ImpactLow, ImpactMedium, ImpactHigh, ImpactCritical}

func (i IncidentImpact) Valid() bool {
	return i.Rank() > 0
}

// Rank orders impacts by severity; unknown impacts rank 0.
func (i IncidentImpact) Rank() int {
	switch i {
	case ImpactLow:
		return 1
	case ImpactMedium:
		return 2
	case ImpactHigh:
		return 3
	case ImpactCritical:
		return 4
	}
	return 0
}

func ParseIncidentImpact(s string) (IncidentImpact, error) {
	v := IncidentImpact(strings.ToLower(strings.TrimSpace(s)))
	if !v.Valid() {
		return "", fmt.Errorf("unknown incident impact %q", s)
	}
	return v, nil
}

// IncidentStatus is the lifecycle stage of an incident.
type IncidentStatus string

const (
	Investigating IncidentStatus = "investigating"
	Identified    IncidentStatus = "identified"
	Monitoring    IncidentStatus = "monitoring"
	Resolved      IncidentStatus = "resolved"
)

var IncidentStatuses = []IncidentStatus{Investigating, Identified, Monitoring, Resolved}

func (s IncidentStatus) Valid() bool {
	switch s {
	case Investigating, Identified, Monitoring, Resolved:
		return true
	}
	return false
}

// Active reports whether the incident still affects its service.
func (s IncidentStatus) Active() bool {
	return s.Valid() && s != Resolved
}

func ParseIncidentStatus(s string) (IncidentStatus, error) {
	v := IncidentStatus(strings.ToLower(strings.TrimSpace(s)))
	if !v.Valid() {
		return "", fmt.Errorf("unknown incident status %q", s)
	}
	return v, nil
}

// OneOf renders a value list in the form validator's oneof tag expects.
func OneOf[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, " ")
}
