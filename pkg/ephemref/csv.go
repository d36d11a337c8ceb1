package ephemref

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
)

// CSVProvider serves longitudes from a pre-sampled export. Each record is
// body,timestamp,longitude_deg with an RFC3339 timestamp; a header row is
// allowed. Lookups are exact on the instant, so the sampling cadence must
// match the cadence the file was exported at.
type CSVProvider struct {
	name    string
	samples map[string]map[int64]float64
}

// NewCSVProvider loads a CSV export from a file.
func NewCSVProvider(path string) (*CSVProvider, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ephemeris CSV: %w", err)
	}
	defer f.Close()
	p, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("failed to load ephemeris CSV %s: %w", path, err)
	}
	p.name = fmt.Sprintf("csv:%s", path)
	return p, nil
}

// ReadCSV parses a CSV export from a reader.
func ReadCSV(r io.Reader) (*CSVProvider, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 3

	p := &CSVProvider{
		name:    "csv",
		samples: make(map[string]map[int64]float64),
	}
	line := 0
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		line++
		if line == 1 && rec[0] == "body" {
			continue
		}
		ts, err := time.Parse(time.RFC3339, rec[1])
		if err != nil {
			return nil, fmt.Errorf("record %d: bad timestamp %q: %w", line, rec[1], err)
		}
		lon, err := strconv.ParseFloat(rec[2], 64)
		if err != nil {
			return nil, fmt.Errorf("record %d: bad longitude %q: %w", line, rec[2], err)
		}
		if lon < 0 || lon >= 360 {
			return nil, fmt.Errorf("record %d: longitude %v outside [0, 360)", line, lon)
		}
		body := rec[0]
		if p.samples[body] == nil {
			p.samples[body] = make(map[int64]float64)
		}
		p.samples[body][ts.Unix()] = lon
	}
	if len(p.samples) == 0 {
		return nil, fmt.Errorf("no samples in CSV")
	}
	return p, nil
}

func (p *CSVProvider) Name() string { return p.name }

// Bodies returns the body names present in the export.
func (p *CSVProvider) Bodies() []string {
	bodies := make([]string, 0, len(p.samples))
	for b := range p.samples {
		bodies = append(bodies, b)
	}
	return bodies
}

// LongitudeDeg looks up the sample for a body at an exact instant.
func (p *CSVProvider) LongitudeDeg(_ context.Context, body string, t time.Time) (float64, error) {
	series, ok := p.samples[body]
	if !ok {
		return 0, fmt.Errorf("no samples for body %q in export", body)
	}
	lon, ok := series[t.Unix()]
	if !ok {
		return 0, fmt.Errorf("no sample for %s at %v in export", body, t.UTC().Format(time.RFC3339))
	}
	return lon, nil
}
