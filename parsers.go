package main

import (
	"fmt"
	"strconv"
	"time"

	"k8s.io/utils/ptr"
)

// parseTime parses a time string in the format "DDHHMM"Z relative to now
func parseTime(timeStr string, now time.Time) (time.Time, error) {
	matches := timeRegex.FindStringSubmatch(timeStr)
	if matches == nil {
		return time.Time{}, fmt.Errorf("invalid time format: %s", timeStr)
	}

	day, _ := strconv.Atoi(matches[1])
	hour, _ := strconv.Atoi(matches[2])
	minute, _ := strconv.Atoi(matches[3])
	if day < 1 || day > 31 || hour > 23 || minute > 59 {
		return time.Time{}, fmt.Errorf("invalid time value: %s", timeStr)
	}

	// Use current year and month
	now = now.UTC()
	result := time.Date(now.Year(), now.Month(), day, hour, minute, 0, 0, time.UTC)

	// A day ahead of today belongs to the previous month, which must have it;
	// time.Date would otherwise normalize 31 February into March.
	if now.Day() < day {
		lastDay := time.Date(now.Year(), now.Month(), 0, 0, 0, 0, 0, time.UTC).Day()
		if day > lastDay {
			return time.Time{}, fmt.Errorf("invalid time value: %s: day %d not in previous month", timeStr, day)
		}
		result = time.Date(now.Year(), now.Month()-1, day, hour, minute, 0, 0, time.UTC)
	}

	return result, nil
}

// parseVisibility parses a statute mile or metric visibility group into statute miles.
// It returns nil when the group is not a visibility.
func parseVisibility(visStr string) *float64 {
	if matches := visRegexSM.FindStringSubmatch(visStr); matches != nil {
		miles, err := strconv.ParseFloat(matches[2], 64)
		if err != nil {
			return nil
		}
		return ptr.To(miles)
	}

	if matches := visRegexFrac.FindStringSubmatch(visStr); matches != nil {
		num, _ := strconv.ParseFloat(matches[2], 64)
		den, _ := strconv.ParseFloat(matches[3], 64)
		if den == 0 {
			return nil
		}
		return ptr.To(num / den)
	}

	if matches := visRegexMeters.FindStringSubmatch(visStr); matches != nil {
		meters, _ := strconv.Atoi(matches[1])
		if meters == 9999 {
			// 9999 means 10 km or more
			meters = 10000
		}
		return ptr.To(metersToStatuteMiles(meters))
	}

	return nil
}

// parseCloud parses a cloud layer string like "BKN012CB"
func parseCloud(cloudStr string) (Cloud, bool) {
	matches := cloudRegex.FindStringSubmatch(cloudStr)
	if matches == nil {
		return Cloud{}, false
	}

	cloud := Cloud{
		Coverage: matches[1],
		Type:     matches[3],
	}
	if cloud.Type == "///" {
		cloud.Type = ""
	}
	if matches[2] != "" {
		height, _ := strconv.Atoi(matches[2])
		cloud.Height = ptr.To(height * 100)
	}

	return cloud, true
}
