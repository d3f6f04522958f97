package main

import (
	"bufio"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// FileStationSource reads stations from a local copy of the AWC station cache
type FileStationSource struct {
	path string
}

// NewFileStationSource creates a source reading path, which may be gzipped
func NewFileStationSource(path string) *FileStationSource {
	return &FileStationSource{path: path}
}

// ListStations returns the reporting stations in the file
func (s *FileStationSource) ListStations(ctx context.Context) (StationList, error) {
	if err := ctx.Err(); err != nil {
		return StationList{}, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		return StationList{}, fmt.Errorf("error opening stations file: %w", err)
	}
	defer f.Close()

	return decodeStations(f)
}

// decodeStations parses an AWC station list, transparently gunzipping it, and
// keeps the well-formed reporting stations in their original order.
// Malformed records are counted in Dropped; well-formed stations that do not
// report METARs are skipped without being counted.
func decodeStations(r io.Reader) (StationList, error) {
	br := bufio.NewReader(r)

	var reader io.Reader = br
	if magic, err := br.Peek(2); err == nil && magic[0] == 0x1f && magic[1] == 0x8b {
		gz, err := gzip.NewReader(br)
		if err != nil {
			return StationList{}, fmt.Errorf("error opening gzipped station list: %w", err)
		}
		defer gz.Close()
		reader = gz
	}

	var records []Station
	if err := json.NewDecoder(reader).Decode(&records); err != nil {
		return StationList{}, fmt.Errorf("failed to parse station list: %w", err)
	}

	list := StationList{Stations: make([]Station, 0, len(records))}
	for _, record := range records {
		station, ok := normalizeStation(record)
		if !ok {
			list.Dropped++
			continue
		}
		if !station.Reporting() {
			continue
		}
		list.Stations = append(list.Stations, station)
	}

	return list, nil
}

// normalizeStation validates a provider record. Records without a
// four-character ICAO code or a country are rejected.
func normalizeStation(s Station) (Station, bool) {
	s.ICAO = strings.ToUpper(strings.TrimSpace(s.ICAO))
	s.Country = strings.ToUpper(strings.TrimSpace(s.Country))
	s.State = strings.ToUpper(strings.TrimSpace(s.State))
	s.Name = strings.TrimSpace(s.Name)

	if !icaoRegex.MatchString(s.ICAO) || s.Country == "" {
		return Station{}, false
	}
	return s, true
}
