package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Color definitions using fatih/color
var (
	labelColor    = color.New(color.FgCyan)
	valueColor    = color.New(color.FgWhite)
	functionColor = color.New(color.FgMagenta)
	skipColor     = color.New(color.FgHiBlack)

	// Age-based colors
	freshColor   = color.New(color.FgGreen)
	warningColor = color.New(color.FgYellow)
	expiredColor = color.New(color.FgRed)

	// Flight rules colors
	vfrColor  = color.New(color.FgGreen)
	mvfrColor = color.New(color.FgBlue)
	ifrColor  = color.New(color.FgRed)
	lifrColor = color.New(color.FgMagenta)
)

// colorEnabled reports whether w is a terminal that should receive color.
// fatih/color only inspects stdout, but diagnostics are written to stderr.
func colorEnabled(w io.Writer) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok || os.Getenv("TERM") == "dumb" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// FormatStationLine formats an ICAO code as a quoted, comma-terminated list entry
func FormatStationLine(icao string) string {
	return `"` + icao + `",`
}

// getFlightRulesColor returns the conventional chart color for a flight category
func getFlightRulesColor(rules FlightRules) *color.Color {
	switch rules {
	case FlightRulesVFR:
		return vfrColor
	case FlightRulesMVFR:
		return mvfrColor
	case FlightRulesIFR:
		return ifrColor
	case FlightRulesLIFR:
		return lifrColor
	default:
		return valueColor
	}
}

// getMetarAgeColor returns the appropriate color based on METAR age
func getMetarAgeColor(t, now time.Time) *color.Color {
	minutes := int(now.Sub(t).Minutes())
	if minutes > 60 {
		return expiredColor
	} else if minutes > 30 {
		return warningColor
	}
	return freshColor
}

// formatReport formats a retrieved report as a single diagnostic line
func formatReport(station Station, report Report, now time.Time) string {
	var sb strings.Builder

	labelColor.Fprint(&sb, station.ICAO)
	sb.WriteString(" ")

	rules := string(report.FlightRules)
	if rules == "" {
		rules = "UNKN"
	}
	getFlightRulesColor(report.FlightRules).Fprintf(&sb, "%-4s", rules)

	if !report.Time.IsZero() {
		sb.WriteString(" ")
		getMetarAgeColor(report.Time, now).Fprint(&sb, relativeTimeString(report.Time, now))
	}

	if station.Name != "" {
		sb.WriteString(" ")
		valueColor.Fprint(&sb, station.Name)
	}

	if report.Source != "" {
		fmt.Fprintf(&sb, " [%s]", report.Source)
	}

	return sb.String()
}

// formatSkip formats a skipped station as a single diagnostic line
func formatSkip(station Station, err error) string {
	var sb strings.Builder
	labelColor.Fprint(&sb, station.ICAO)
	sb.WriteString(" ")
	skipColor.Fprintf(&sb, "skipped: %v", err)
	return sb.String()
}

// formatSummary formats the end-of-run counters
func formatSummary(sum Summary) string {
	return functionColor.Sprintf("listed %d reporting stations (%d malformed records dropped), %d matched the filter, %d with a current report",
		sum.Listed, sum.Dropped, sum.Matched, sum.Reported)
}
