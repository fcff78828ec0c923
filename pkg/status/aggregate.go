package status

import "strings"

// OverallStatus is the single label shown at the top of a status page.
type OverallStatus string

const (
	NoServices         OverallStatus = "no_services"
	OverallMajorOutage OverallStatus = "major_outage"
	OverallDegraded    OverallStatus = "degraded_performance"
	OverallMaintenance OverallStatus = "under_maintenance"
	OverallOperational OverallStatus = "operational"
)

type category int

const (
	catUnknown category = iota
	catOperational
	catMaintenance
	catDegraded
	catOutage
)

// classify buckets a raw status. Legacy labels seen on older pages
// ("outage", "degraded_performance", "under_maintenance") are accepted.
func classify(s ServiceStatus) category {
	switch ServiceStatus(strings.ToLower(string(s))) {
	case MajorOutage, PartialOutage, "outage":
		return catOutage
	case Degraded, "degraded_performance":
		return catDegraded
	case Maintenance, "under_maintenance":
		return catMaintenance
	case Operational:
		return catOperational
	}
	return catUnknown
}

// Aggregate reduces per-service statuses to one overall label.
// Precedence is outage > degraded > maintenance > operational. Unknown values
// do not raise the result; a list of only unknown values is operational.
func Aggregate(statuses []ServiceStatus) OverallStatus {
	if len(statuses) == 0 {
		return NoServices
	}

	worst := catUnknown
	for _, s := range statuses {
		if c := classify(s); c > worst {
			worst = c
		}
	}

	switch worst {
	case catOutage:
		return OverallMajorOutage
	case catDegraded:
		return OverallDegraded
	case catMaintenance:
		return OverallMaintenance
	default:
		return OverallOperational
	}
}

// DeriveServiceStatus maps the impacts of a service's active incidents to the
// service status: critical wins, then high, then anything else.
func DeriveServiceStatus(activeImpacts []IncidentImpact) ServiceStatus {
	if len(activeImpacts) == 0 {
		return Operational
	}

	highest := 0
	for _, i := range activeImpacts {
		if r := i.Rank(); r > highest {
			highest = r
		}
	}

	switch {
	case highest >= ImpactCritical.Rank():
		return MajorOutage
	case highest == ImpactHigh.Rank():
		return PartialOutage
	default:
		return Degraded
	}
}
