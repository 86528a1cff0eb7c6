package normalize

import (
	"fmt"

	"github.com/anonymous-127001/travel-agent/internal/flightsearch/entity"
)

// FormatDuration renders a minute count as "2h 5m", "1h", "30m" or "0m".
// Negative input returns the "N/A" sentinel instead of an error: callers feed
// it source-supplied numbers they do not trust.
func FormatDuration(totalMinutes int) string {
	if totalMinutes < 0 {
		return entity.NA
	}

	hours := totalMinutes / 60
	minutes := totalMinutes % 60

	switch {
	case hours == 0 && minutes == 0:
		return "0m"
	case hours == 0:
		return fmt.Sprintf("%dm", minutes)
	case minutes == 0:
		return fmt.Sprintf("%dh", hours)
	default:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
}
