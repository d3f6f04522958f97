package main

import (
	"fmt"
	"time"
)

// metersToStatuteMiles converts a visibility in meters to statute miles
func metersToStatuteMiles(meters int) float64 {
	return float64(meters) / 1609.344
}

// relativeTimeString describes how long before now t was, e.g. "(2 hours, 5 minutes ago)"
func relativeTimeString(t, now time.Time) string {
	diff := now.UTC().Sub(t)

	// Convert to minutes for easier comparisons
	minutes := int(diff.Minutes())

	if minutes < 0 {
		// For future times (rare, but possible with timezone issues)
		return "(in the future)"
	} else if minutes < 1 {
		return "(just now)"
	} else if minutes < 60 {
		return fmt.Sprintf("(%d minutes ago)", minutes)
	} else if minutes < 1440 { // less than 24 hours
		hours := minutes / 60
		mins := minutes % 60
		if mins == 0 {
			return fmt.Sprintf("(%d hours ago)", hours)
		}
		return fmt.Sprintf("(%d hours, %d minutes ago)", hours, mins)
	} else {
		days := minutes / 1440
		hours := (minutes % 1440) / 60
		if hours == 0 {
			return fmt.Sprintf("(%d days ago)", days)
		}
		return fmt.Sprintf("(%d days, %d hours ago)", days, hours)
	}
}
