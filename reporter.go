package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"
)

// Summary counts what a Reporter run did
type Summary struct {
	Listed   int // Reporting stations returned by the station source
	Dropped  int // Malformed station records rejected by the station source
	Matched  int // Stations that passed the filter
	Reported int // Stations printed because a report was retrieved
}

// Reporter lists stations, filters them and prints the ones with a current report
type Reporter struct {
	stations StationSource
	reports  ReportFetcher
	filter   Filter
	out      io.Writer
	logger   *log.Logger
	now      func() time.Time
}

// NewReporter creates a Reporter writing station lines to out
func NewReporter(stations StationSource, reports ReportFetcher, filter Filter, out io.Writer) *Reporter {
	return &Reporter{
		stations: stations,
		reports:  reports,
		filter:   filter,
		out:      out,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// SetLogger enables per-station diagnostics. A nil logger keeps the run silent.
func (r *Reporter) SetLogger(logger *log.Logger) {
	r.logger = logger
}

// Run makes a single sequential pass over the station list. Failing to list
// stations aborts the run before anything is written; a failed report fetch
// only skips that station.
func (r *Reporter) Run(ctx context.Context) (Summary, error) {
	var sum Summary

	list, err := r.stations.ListStations(ctx)
	if err != nil {
		return sum, fmt.Errorf("list stations: %w", err)
	}
	sum.Listed = len(list.Stations)
	sum.Dropped = list.Dropped
	r.logf("%s", functionColor.Sprintf("checking %d reporting stations (%s)", sum.Listed, r.filter))

	for _, station := range list.Stations {
		if err := ctx.Err(); err != nil {
			return sum, err
		}

		if !r.filter.Match(station) {
			continue
		}
		sum.Matched++

		report, ok := r.tryReport(ctx, station)
		if !ok {
			continue
		}

		if _, err := fmt.Fprintln(r.out, FormatStationLine(station.ICAO)); err != nil {
			return sum, fmt.Errorf("write output: %w", err)
		}
		sum.Reported++
		r.logf("%s", formatReport(station, report, r.now()))
	}

	r.logf("%s", formatSummary(sum))
	return sum, nil
}

// tryReport makes one retrieval attempt. Errors stop here.
func (r *Reporter) tryReport(ctx context.Context, station Station) (Report, bool) {
	report, err := r.reports.FetchReport(ctx, station.ICAO)
	if err != nil {
		r.logf("%s", formatSkip(station, err))
		return Report{}, false
	}
	return report, true
}

func (r *Reporter) logf(format string, args ...any) {
	if r.logger == nil {
		return
	}
	r.logger.Printf(format, args...)
}
