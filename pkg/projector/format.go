package projector

import (
	"fmt"
	"math"
)

// FormatDuration renders hours as minutes under an hour, hours under a day,
// and days beyond that. Negative input is treated as zero.
func FormatDuration(hours float64) string {
	if hours < 0 || math.IsNaN(hours) {
		hours = 0
	}

	switch {
	case hours < 1:
		return fmt.Sprintf("%dm", int(math.Round(hours*60)))
	case hours < 24:
		return fmt.Sprintf("%.1fh", roundTenth(hours))
	default:
		return fmt.Sprintf("%.1fd", roundTenth(hours/24))
	}
}

// roundTenth rounds half away from zero; %.1f alone rounds 1.25 down to 1.2.
func roundTenth(f float64) float64 {
	return math.Round(f*10) / 10
}
