package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseArgs(t *testing.T, args ...string) (*CLI, error) {
	t.Helper()

	var cli CLI
	parser, err := newParser(&cli)
	require.NoError(t, err)

	_, err = parser.Parse(args)
	return &cli, err
}

func TestCLI_defaults(t *testing.T) {
	t.Setenv("AVWX_TOKEN", "")

	cli, err := parseArgs(t)
	require.NoError(t, err)

	assert.Equal(t, []string{"CA"}, cli.Country)
	assert.Equal(t, []string{"ON"}, cli.State)
	assert.Equal(t, sourceAWC, cli.Source)
	assert.Empty(t, cli.StationsFile)
	assert.False(t, cli.Verbose)
	assert.Equal(t, DefaultFilter(), cli.Filter())
}

func TestCLI_overrides(t *testing.T) {
	t.Setenv("AVWX_TOKEN", "")

	cli, err := parseArgs(t, "-c", "ca,us", "--state", "ON,NY", "--source", "avwx", "--avwx-token", "tok", "-v", "--no-color")
	require.NoError(t, err)

	filter := cli.Filter()
	assert.Equal(t, []string{"CA", "US"}, filter.Countries.SortedList())
	assert.Equal(t, []string{"NY", "ON"}, filter.States.SortedList())
	assert.Equal(t, sourceAVWX, cli.Source)
	assert.Equal(t, "tok", cli.AVWXToken)
	assert.True(t, cli.Verbose)
	assert.True(t, cli.NoColor)
	assert.True(t, filter.Match(Station{Country: "US", State: "NY"}))
}

func TestCLI_tokenFromEnvironment(t *testing.T) {
	t.Setenv("AVWX_TOKEN", "from-env")

	cli, err := parseArgs(t, "--source", "avwx")
	require.NoError(t, err)
	assert.Equal(t, "from-env", cli.AVWXToken)
}

func TestCLI_validation(t *testing.T) {
	t.Setenv("AVWX_TOKEN", "")

	_, err := parseArgs(t, "--source", "avwx")
	assert.ErrorContains(t, err, "AVWX_TOKEN is required")

	_, err = parseArgs(t, "--country", "ZZ")
	assert.ErrorContains(t, err, `unknown country code "ZZ"`)

	_, err = parseArgs(t, "--source", "noaa")
	assert.Error(t, err)

	_, err = parseArgs(t, "--stations-file", "/does/not/exist.json")
	assert.Error(t, err)
}

func TestNewSources(t *testing.T) {
	stations, reports := newSources(&CLI{Source: sourceAWC})
	assert.IsType(t, &AWCClient{}, stations)
	assert.IsType(t, &AWCClient{}, reports)

	stations, reports = newSources(&CLI{Source: sourceAVWX, AVWXToken: "tok", StationsFile: "stations.json"})
	assert.IsType(t, &FileStationSource{}, stations)
	assert.IsType(t, &AVWXClient{}, reports)
}

func TestRun(t *testing.T) {
	cli := &CLI{Country: []string{"CA"}, State: []string{"ON"}, Verbose: true, NoColor: true}
	fetcher := &fakeReportFetcher{ok: map[string]bool{"CYOW": true, "CYYZ": true}}

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), cli, &fakeStationSource{stations: scenarioStations()}, fetcher, &stdout, &stderr)
	require.NoError(t, err)

	assert.Equal(t, "\"CYOW\",\n\"CYYZ\",\n", stdout.String())
	assert.Contains(t, stderr.String(), "2 with a current report")
}

func TestRun_quietByDefault(t *testing.T) {
	cli := &CLI{Country: []string{"CA"}, State: []string{"ON"}}
	fetcher := &fakeReportFetcher{ok: map[string]bool{"CYOW": true}}

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), cli, &fakeStationSource{stations: scenarioStations()}, fetcher, &stdout, &stderr)
	require.NoError(t, err)

	assert.Equal(t, "\"CYOW\",\n", stdout.String())
	assert.Empty(t, stderr.String())
}

func TestRun_listFailure(t *testing.T) {
	cli := &CLI{Country: []string{"CA"}, State: []string{"ON"}}

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), cli, &fakeStationSource{err: errors.New("503")}, &fakeReportFetcher{}, &stdout, &stderr)
	assert.ErrorContains(t, err, "list stations: 503")
	assert.Empty(t, stdout.String())
}

func TestColorEnabled(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "stderr.log"))
	require.NoError(t, err)
	defer f.Close()

	assert.False(t, colorEnabled(&bytes.Buffer{}))
	assert.False(t, colorEnabled(f))

	t.Setenv("NO_COLOR", "1")
	assert.False(t, colorEnabled(os.Stderr))
}

func TestRun_colorFollowsStderr(t *testing.T) {
	// Colors must not leak into a redirected stderr even when stdout is a terminal
	color.NoColor = false

	cli := &CLI{Country: []string{"CA"}, State: []string{"ON"}, Verbose: true}
	fetcher := &fakeReportFetcher{ok: map[string]bool{"CYOW": true}}

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), cli, &fakeStationSource{stations: scenarioStations()}, fetcher, &stdout, &stderr)
	require.NoError(t, err)

	assert.True(t, color.NoColor)
	assert.Contains(t, stderr.String(), "CYOW VFR")
	assert.NotContains(t, stderr.String(), "\x1b[")
}
