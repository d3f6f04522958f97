package main

import (
	"context"
	"errors"
	"regexp"
	"slices"
	"time"
)

// Default filter values used when no --country/--state flags are given
var (
	defaultCountries = []string{"CA"}
	defaultStates    = []string{"ON"}
)

// Provider endpoints
const (
	awcBaseURL       = "https://aviationweather.gov"
	awcStationsPath  = "/data/cache/stations.cache.json.gz"
	awcMETARPath     = "/api/data/metar"
	avwxBaseURL      = "https://avwx.rest"
	avwxMETARPathFmt = "/api/metar/%s"
)

// Report sources
const (
	sourceAWC  = "awc"
	sourceAVWX = "avwx"
)

// siteTypeMETAR marks a station that produces METAR reports
const siteTypeMETAR = "METAR"

var (
	// ErrNoReport is returned when the provider has no current report for a station
	ErrNoReport = errors.New("no report available")
	// ErrStationMismatch is returned when the provider answers with another station's report
	ErrStationMismatch = errors.New("report does not match requested station")
)

// Commonly used regular expressions
var (
	icaoRegex      = regexp.MustCompile(`^[A-Z0-9]{4}$`)
	timeRegex      = regexp.MustCompile(`^(\d{2})(\d{2})(\d{2})Z$`)
	visRegexSM     = regexp.MustCompile(`^([MP])?(\d+)SM$`)
	visRegexFrac   = regexp.MustCompile(`^(M)?(\d+)/(\d+)SM$`)
	visRegexWhole  = regexp.MustCompile(`^\d$`)
	visRegexMeters = regexp.MustCompile(`^(\d{4})(NDV|[NESW]{1,2})?$`)
	cloudRegex     = regexp.MustCompile(`^(SKC|CLR|NSC|NCD|FEW|SCT|BKN|OVC)(\d{3})?(CB|TCU|///)?$`)
	vvRegex        = regexp.MustCompile(`^VV(\d{3})$`)
)

// Station represents a weather station record from the AWC station cache
type Station struct {
	ICAO      string   `json:"icaoId"`
	Name      string   `json:"site"`
	State     string   `json:"state"`
	Country   string   `json:"country"`
	Latitude  float64  `json:"lat"`
	Longitude float64  `json:"lon"`
	Elevation float64  `json:"elev"`
	SiteTypes []string `json:"siteType"`
}

// Reporting reports whether the station is flagged as producing METARs
func (s Station) Reporting() bool {
	return slices.Contains(s.SiteTypes, siteTypeMETAR)
}

// FlightRules is the flight category derived from visibility and ceiling
type FlightRules string

const (
	FlightRulesUnknown FlightRules = ""
	FlightRulesVFR     FlightRules = "VFR"
	FlightRulesMVFR    FlightRules = "MVFR"
	FlightRulesIFR     FlightRules = "IFR"
	FlightRulesLIFR    FlightRules = "LIFR"
)

// Report is the result of a single successful retrieval for a station
type Report struct {
	Station     string
	Raw         string
	Time        time.Time
	FlightRules FlightRules
	Source      string
}

// StationList is the result of listing a provider's stations
type StationList struct {
	Stations []Station // Well-formed reporting stations in provider order
	Dropped  int       // Records rejected for a missing ICAO code or country
}

// StationSource lists the stations known to a provider
type StationSource interface {
	ListStations(ctx context.Context) (StationList, error)
}

// ReportFetcher retrieves the current report for one station
type ReportFetcher interface {
	FetchReport(ctx context.Context, icao string) (Report, error)
}
