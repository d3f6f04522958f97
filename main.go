package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"
	"github.com/joho/godotenv"
)

// CLI holds the command-line configuration
type CLI struct {
	Country      []string `short:"c" default:"${default_countries}" placeholder:"CODE" help:"Permitted ISO 3166 country codes."`
	State        []string `short:"s" default:"${default_states}" placeholder:"CODE" help:"Permitted state or province codes."`
	Source       string   `enum:"awc,avwx" default:"awc" help:"Report provider (${enum})."`
	StationsFile string   `type:"existingfile" placeholder:"PATH" help:"Read stations from a local AWC station cache instead of downloading it."`
	AVWXToken    string   `name:"avwx-token" env:"AVWX_TOKEN" help:"AVWX API token, required with --source=avwx."`
	Verbose      bool     `short:"v" help:"Log per-station results to stderr."`
	NoColor      bool     `help:"Disable color output."`
}

// Filter returns the station filter described by the flags
func (c *CLI) Filter() Filter {
	return NewFilter(c.Country, c.State)
}

// Validate is called by kong after parsing
func (c *CLI) Validate() error {
	if err := c.Filter().Validate(); err != nil {
		return err
	}
	if c.Source == sourceAVWX && c.AVWXToken == "" {
		return errors.New("--avwx-token or AVWX_TOKEN is required with --source=avwx")
	}
	return nil
}

func newParser(cli *CLI, options ...kong.Option) (*kong.Kong, error) {
	options = append([]kong.Option{
		kong.Name("metarlist"),
		kong.Description("Print the ICAO codes of matching stations that have a current METAR, one \"ICAO\", entry per line."),
		kong.UsageOnError(),
		kong.Vars{
			"default_countries": strings.Join(defaultCountries, ","),
			"default_states":    strings.Join(defaultStates, ","),
		},
	}, options...)
	return kong.New(cli, options...)
}

// newSources wires the station source and report provider selected by the flags
func newSources(cli *CLI) (StationSource, ReportFetcher) {
	awc := NewAWCClient()

	var stations StationSource = awc
	if cli.StationsFile != "" {
		stations = NewFileStationSource(cli.StationsFile)
	}

	var reports ReportFetcher = awc
	if cli.Source == sourceAVWX {
		reports = NewAVWXClient(cli.AVWXToken)
	}

	return stations, reports
}

func run(ctx context.Context, cli *CLI, stations StationSource, reports ReportFetcher, stdout, stderr io.Writer) error {
	// Colored text only ever reaches stderr
	color.NoColor = cli.NoColor || !colorEnabled(stderr)

	reporter := NewReporter(stations, reports, cli.Filter(), stdout)
	if cli.Verbose {
		reporter.SetLogger(log.New(stderr, "", log.LstdFlags))
	}

	_, err := reporter.Run(ctx)
	return err
}

func main() {
	// A .env file is optional; it only supplies AVWX_TOKEN
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Warning: could not load .env: %v\n", err)
	}

	var cli CLI
	parser, err := newParser(&cli)
	if err != nil {
		panic(err)
	}
	kctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	stations, reports := newSources(&cli)
	if err := run(ctx, &cli, stations, reports, os.Stdout, os.Stderr); err != nil {
		cancel()
		kctx.FatalIfErrorf(err)
	}
}
