package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultTimeout = 30 * time.Second
	userAgent      = "metarlist/1.0 (+https://github.com/rmitchellscott/metarlist)"
)

// errEmptyResponse is returned by fetchData for a 204 or a blank body
var errEmptyResponse = errors.New("empty response")

// newHTTPClient returns an HTTP client with the standard timeout
func newHTTPClient() *http.Client {
	return &http.Client{
		Timeout: defaultTimeout,
	}
}

// fetchData performs a GET request and returns the response body. Credentials
// belong in header, never in rawURL, since transport errors quote the URL.
func fetchData(ctx context.Context, client *http.Client, rawURL string, dataType string, header http.Header) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("error building %s request: %w", dataType, err)
	}
	for key, values := range header {
		req.Header[key] = values
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error fetching %s: %w", dataType, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil, fmt.Errorf("no %s data: %w", dataType, errEmptyResponse)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code fetching %s: %d", dataType, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading %s response: %w", dataType, err)
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return nil, fmt.Errorf("no %s data: %w", dataType, errEmptyResponse)
	}

	return body, nil
}

// AWCClient talks to the Aviation Weather Center data API
type AWCClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewAWCClient creates a client for aviationweather.gov
func NewAWCClient() *AWCClient {
	return NewAWCClientWithHTTP(newHTTPClient(), awcBaseURL)
}

// NewAWCClientWithHTTP creates a client with a custom HTTP client and base URL
func NewAWCClientWithHTTP(httpClient *http.Client, baseURL string) *AWCClient {
	return &AWCClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// ListStations downloads the AWC station cache and returns its reporting stations
func (c *AWCClient) ListStations(ctx context.Context) (StationList, error) {
	body, err := fetchData(ctx, c.httpClient, c.baseURL+awcStationsPath, "station list", nil)
	if err != nil {
		return StationList{}, err
	}

	return decodeStations(bytes.NewReader(body))
}

// FetchReport fetches the latest raw METAR for a station
func (c *AWCClient) FetchReport(ctx context.Context, icao string) (Report, error) {
	q := url.Values{}
	q.Set("ids", icao)
	q.Set("format", "raw")

	body, err := fetchData(ctx, c.httpClient, c.baseURL+awcMETARPath+"?"+q.Encode(), "METAR", nil)
	if err != nil {
		if errors.Is(err, errEmptyResponse) {
			return Report{}, fmt.Errorf("%s: %w", icao, ErrNoReport)
		}
		return Report{}, err
	}

	// Only the most recent observation is needed
	raw, _, _ := strings.Cut(strings.TrimSpace(string(body)), "\n")

	metar := DecodeMETAR(raw)
	if err := metar.Validate(icao); err != nil {
		return Report{}, fmt.Errorf("%s: %w", icao, err)
	}

	return Report{
		Station:     metar.Station,
		Raw:         metar.Raw,
		Time:        metar.Time,
		FlightRules: metar.FlightRules(),
		Source:      sourceAWC,
	}, nil
}

// AVWXClient talks to the AVWX REST API
type AVWXClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// avwxMETAR is the subset of the AVWX METAR response we read
type avwxMETAR struct {
	Raw         string `json:"raw"`
	Station     string `json:"station"`
	FlightRules string `json:"flight_rules"`
	Time        struct {
		DT time.Time `json:"dt"`
	} `json:"time"`
	Error string `json:"error"`
}

// NewAVWXClient creates a client for avwx.rest
func NewAVWXClient(token string) *AVWXClient {
	return NewAVWXClientWithHTTP(newHTTPClient(), avwxBaseURL, token)
}

// NewAVWXClientWithHTTP creates a client with a custom HTTP client and base URL
func NewAVWXClientWithHTTP(httpClient *http.Client, baseURL, token string) *AVWXClient {
	return &AVWXClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: httpClient,
	}
}

// FetchReport fetches the current METAR for a station. AVWX is asked to fall
// back to its cached report when the upstream source fails.
func (c *AVWXClient) FetchReport(ctx context.Context, icao string) (Report, error) {
	q := url.Values{}
	q.Set("format", "json")
	q.Set("onfail", "cache")

	u := c.baseURL + fmt.Sprintf(avwxMETARPathFmt, url.PathEscape(icao)) + "?" + q.Encode()

	header := http.Header{}
	header.Set("Authorization", "BEARER "+c.token)

	body, err := fetchData(ctx, c.httpClient, u, "METAR", header)
	if err != nil {
		if errors.Is(err, errEmptyResponse) {
			return Report{}, fmt.Errorf("%s: %w", icao, ErrNoReport)
		}
		return Report{}, err
	}

	var resp avwxMETAR
	if err := json.Unmarshal(body, &resp); err != nil {
		return Report{}, fmt.Errorf("error parsing AVWX response for %s: %w", icao, err)
	}
	if resp.Error != "" {
		return Report{}, fmt.Errorf("%s: %s: %w", icao, resp.Error, ErrNoReport)
	}
	if resp.Station != "" && resp.Station != icao {
		return Report{}, fmt.Errorf("%s: %w: got %s", icao, ErrStationMismatch, resp.Station)
	}

	metar := DecodeMETAR(resp.Raw)
	if err := metar.Validate(icao); err != nil {
		return Report{}, fmt.Errorf("%s: %w", icao, err)
	}

	report := Report{
		Station:     metar.Station,
		Raw:         metar.Raw,
		Time:        resp.Time.DT.UTC(),
		FlightRules: ParseFlightRules(resp.FlightRules),
		Source:      sourceAVWX,
	}
	if resp.Time.DT.IsZero() {
		report.Time = metar.Time
	}
	if report.FlightRules == FlightRulesUnknown {
		report.FlightRules = metar.FlightRules()
	}

	return report, nil
}
