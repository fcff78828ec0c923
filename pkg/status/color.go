package status

// UnknownColor is used for impacts outside the closed set.
const UnknownColor = "#6b7280"

var impactColors = map[IncidentImpact]string{
	ImpactCritical: "#dc2626",
	ImpactHigh:     "#ea580c",
	ImpactMedium:   "#ca8a04",
	ImpactLow:      "#16a34a",
}

func (i IncidentImpact) Color() string {
	if c, ok := impactColors[i]; ok {
		return c
	}
	return UnknownColor
}

// Legend returns the impact to colour mapping, including the fallback under "unknown".
func Legend() map[string]string {
	out := make(map[string]string, len(impactColors)+1)
	for k, v := range impactColors {
		out[string(k)] = v
	}
	out["unknown"] = UnknownColor
	return out
}
