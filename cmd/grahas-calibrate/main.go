package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/smahajan/grahas/internal/log"
	"github.com/smahajan/grahas/pkg/coeffs"
	"github.com/smahajan/grahas/pkg/ephemref"
	"github.com/smahajan/grahas/pkg/residual"
	"github.com/smahajan/grahas/pkg/siddhanta"
)

func main() {
	var (
		startStr = flag.String("start", "", "Start of the sampling range (RFC3339)")
		endStr   = flag.String("end", "", "End of the sampling range (RFC3339)")
		stepStr  = flag.String("step", "24h", "Sampling cadence (Go duration, e.g. 24h)")
		bodies   = flag.String("bodies", "", "Comma-separated body names to fit (default: all)")
		periods  = flag.String("periods", "", "Comma-separated base periods: preset names (solar_year, jupiter, saturn, node) or day counts (default: all presets)")
		order    = flag.Int("order", 2, "Harmonics per base period")
		refURL   = flag.String("ref-url", "", "Base URL of a reference ephemeris HTTP service")
		refCSV   = flag.String("ref-csv", "", "Path to a pre-sampled reference CSV export")
		outFile  = flag.String("out", "", "Write the fitted table to this JSON file")
		outDB    = flag.String("db", "", "Append the fitted table as a run in this SQLite database")
		note     = flag.String("note", "", "Free-form note stored with the fit run")
		debug    = flag.Bool("debug", false, "Turn on debugging output")
	)
	flag.Parse()

	if err := log.Init(*debug); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	start, err := time.Parse(time.RFC3339, *startStr)
	if err != nil {
		log.Fatalf("Invalid -start: %v", err)
	}
	end, err := time.Parse(time.RFC3339, *endStr)
	if err != nil {
		log.Fatalf("Invalid -end: %v", err)
	}
	step, err := time.ParseDuration(*stepStr)
	if err != nil || step <= 0 {
		log.Fatalf("Invalid -step %q", *stepStr)
	}
	if *outFile == "" && *outDB == "" {
		log.Fatal("No output selected: pass -out and/or -db")
	}

	cfg := residual.Config{PeriodsDays: residual.DefaultPeriods, Order: *order}
	if *periods != "" {
		cfg.PeriodsDays = nil
		for _, name := range strings.Split(*periods, ",") {
			p, err := residual.ParsePeriod(strings.TrimSpace(name))
			if err != nil {
				log.Fatalf("Invalid -periods: %v", err)
			}
			cfg.PeriodsDays = append(cfg.PeriodsDays, p)
		}
	}

	fitBodies := make([]string, 0, len(siddhanta.Bodies))
	if *bodies == "" {
		for _, b := range siddhanta.Bodies {
			fitBodies = append(fitBodies, string(b))
		}
	} else {
		for _, name := range strings.Split(*bodies, ",") {
			name = strings.TrimSpace(name)
			if _, ok := siddhanta.ParseBody(name); !ok {
				log.Fatalf("Unknown body %q", name)
			}
			fitBodies = append(fitBodies, name)
		}
	}

	provider, err := buildProvider(*refURL, *refCSV)
	if err != nil {
		log.Fatalf("Reference provider: %v", err)
	}
	log.Infof("Sampling %d bodies from %s against %s, %s to %s every %v",
		len(fitBodies), "classical engine", provider.Name(),
		start.Format(time.RFC3339), end.Format(time.RFC3339), step)

	sampler := &residual.Sampler{Engine: siddhanta.NewDefault(), Provider: provider}
	ctx := context.Background()
	series := make(map[string][]residual.Sample, len(fitBodies))
	for _, body := range fitBodies {
		samples, err := sampler.Collect(ctx, body, start, end, step)
		if err != nil {
			log.Fatalf("Sampling %s: %v", body, err)
		}
		log.Debugf("collected %d samples for %s", len(samples), body)
		series[body] = samples
	}

	log.Infof("Fitting %d coefficients per body (order %d, %d base periods)",
		cfg.Coefficients(), cfg.Order, len(cfg.PeriodsDays))
	models, errs := residual.FitAll(series, cfg)
	for body, err := range errs {
		log.Errorf("Fit failed for %s: %v", body, err)
	}
	if len(models) == 0 {
		log.Fatal("No body could be fitted")
	}

	for _, body := range fitBodies {
		m, ok := models[body]
		if !ok {
			continue
		}
		before, after := residual.MeanSquaredResidual(series[body], m)
		log.Infof("%-8s RMS residual %8.4f° -> %8.4f°", body, math.Sqrt(before), math.Sqrt(after))
	}

	data := &coeffs.TableData{GeneratedAt: time.Now().UTC(), Note: *note, Bodies: models}
	if *outDB != "" {
		p, err := coeffs.NewSQLiteProvider(*outDB)
		if err != nil {
			log.Fatalf("Opening coefficient database: %v", err)
		}
		if err := p.Store(data); err != nil {
			p.Close()
			log.Fatalf("Storing fit run: %v", err)
		}
		p.Close()
		log.Infof("Stored fit run %s in %s", data.RunID, *outDB)
	}
	if *outFile != "" {
		p := coeffs.NewJSONProvider(*outFile)
		if err := p.Store(data); err != nil {
			log.Fatalf("Writing coefficient file: %v", err)
		}
		log.Infof("Wrote coefficient table to %s", *outFile)
	}

	if len(errs) > 0 {
		os.Exit(1)
	}
}

func buildProvider(refURL, refCSV string) (ephemref.Provider, error) {
	switch {
	case refURL != "" && refCSV != "":
		return nil, fmt.Errorf("pass only one of -ref-url and -ref-csv")
	case refURL != "":
		return ephemref.NewHTTPProvider(refURL, 30*time.Second), nil
	case refCSV != "":
		p, err := ephemref.NewCSVProvider(refCSV)
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, fmt.Errorf("a reference source is required: -ref-url or -ref-csv")
	}
}
