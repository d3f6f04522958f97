package main

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"k8s.io/utils/ptr"
)

// Cloud represents cloud information in a weather report
type Cloud struct {
	Coverage string
	Height   *int   // Height in feet above ground, nil when not reported
	Type     string // CB, TCU, etc.
}

// METAR holds the decoded parts of a METAR needed to accept a report and
// categorize it. Visibility and Ceiling are nil when the report does not state them.
type METAR struct {
	Raw        string
	Station    string
	Time       time.Time
	Visibility *float64 // Statute miles
	Ceiling    *int     // Feet above ground
	Clouds     []Cloud
	CAVOK      bool
}

// DecodeMETAR decodes the station, time and sky condition of a raw METAR
func DecodeMETAR(raw string) METAR {
	return decodeMETARAt(raw, time.Now().UTC())
}

func decodeMETARAt(raw string, now time.Time) METAR {
	m := METAR{Raw: strings.Join(strings.Fields(raw), " ")}
	parts := strings.Fields(m.Raw)

	// Skip report type and correction markers ahead of the station
	for len(parts) > 0 && (parts[0] == "METAR" || parts[0] == "SPECI" || parts[0] == "COR") {
		parts = parts[1:]
	}
	if len(parts) == 0 {
		return m
	}

	m.Station = parts[0]

	i := 1
	if i < len(parts) {
		if t, err := parseTime(parts[i], now); err == nil {
			m.Time = t
			i++
		}
	}

	for ; i < len(parts); i++ {
		part := parts[i]

		// Trend and remarks sections end the observation
		if part == "RMK" || part == "TEMPO" || part == "BECMG" || part == "NOSIG" {
			break
		}

		if part == "CAVOK" {
			m.CAVOK = true
			m.Visibility = ptr.To(10.0)
			continue
		}

		// Split visibility such as "1 1/2SM"
		if m.Visibility == nil && visRegexWhole.MatchString(part) && i+1 < len(parts) && visRegexFrac.MatchString(parts[i+1]) {
			whole, _ := strconv.ParseFloat(part, 64)
			if frac := parseVisibility(parts[i+1]); frac != nil {
				m.Visibility = ptr.To(whole + *frac)
				i++
				continue
			}
		}

		if m.Visibility == nil {
			if vis := parseVisibility(part); vis != nil {
				m.Visibility = vis
				continue
			}
		}

		if cloud, ok := parseCloud(part); ok {
			m.Clouds = append(m.Clouds, cloud)
			if (cloud.Coverage == "BKN" || cloud.Coverage == "OVC") && cloud.Height != nil {
				m.setCeiling(*cloud.Height)
			}
			continue
		}

		if matches := vvRegex.FindStringSubmatch(part); matches != nil {
			height, _ := strconv.Atoi(matches[1])
			m.setCeiling(height * 100)
		}
	}

	return m
}

// setCeiling records height as the ceiling when it is the lowest seen so far
func (m *METAR) setCeiling(height int) {
	if m.Ceiling == nil || height < *m.Ceiling {
		m.Ceiling = ptr.To(height)
	}
}

// FlightRules returns the flight category of the decoded report
func (m METAR) FlightRules() FlightRules {
	return FlightRulesFor(m.Visibility, m.Ceiling)
}

// Validate checks that the report was decoded and belongs to the requested station
func (m METAR) Validate(icao string) error {
	if m.Station == "" {
		return ErrNoReport
	}
	if m.Station != icao {
		return fmt.Errorf("%w: got %s, want %s", ErrStationMismatch, m.Station, icao)
	}
	return nil
}

// FlightRulesFor categorizes visibility in statute miles and ceiling in feet
// using the FAA thresholds. A missing value does not limit the category.
func FlightRulesFor(visibility *float64, ceiling *int) FlightRules {
	if visibility == nil && ceiling == nil {
		return FlightRulesUnknown
	}

	vis := ptr.Deref(visibility, math.Inf(1))
	ceil := ptr.Deref(ceiling, math.MaxInt)

	switch {
	case ceil < 500 || vis < 1:
		return FlightRulesLIFR
	case ceil < 1000 || vis < 3:
		return FlightRulesIFR
	case ceil <= 3000 || vis <= 5:
		return FlightRulesMVFR
	default:
		return FlightRulesVFR
	}
}

// ParseFlightRules maps a provider's flight rules string to a FlightRules value
func ParseFlightRules(s string) FlightRules {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "VFR":
		return FlightRulesVFR
	case "MVFR":
		return FlightRulesMVFR
	case "IFR":
		return FlightRulesIFR
	case "LIFR":
		return FlightRulesLIFR
	default:
		return FlightRulesUnknown
	}
}
