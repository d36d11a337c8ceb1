package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/soniakeys/unit"

	"github.com/smahajan/grahas/pkg/coeffs"
	"github.com/smahajan/grahas/pkg/residual"
	"github.com/smahajan/grahas/pkg/siddhanta"
)

var signs = []string{
	"Meṣa", "Vṛṣabha", "Mithuna", "Karka", "Siṃha", "Kanyā",
	"Tulā", "Vṛścika", "Dhanus", "Makara", "Kumbha", "Mīna",
}

func zodiac(lonDeg float64) string {
	sign := int(lonDeg / 30)
	within := unit.AngleFromDeg(lonDeg - float64(sign)*30)
	d := int(within.Deg())
	m := within.Min() - float64(d)*60
	return fmt.Sprintf("%s %2d°%05.2f′", signs[sign], d, m)
}

func main() {
	var (
		timeStr   string
		mode      string
		coeffFile string
		coeffDB   string
	)
	flag.StringVar(&timeStr, "time", "", "UTC time to compute positions for (RFC3339 format, e.g., 2025-05-19T13:51:26Z)")
	flag.StringVar(&mode, "mode", "siddhanta", "Output mode: 'siddhanta' (classical), 'modern' (corrected), or 'both'")
	flag.StringVar(&coeffFile, "coeffs", "", "Path to a JSON coefficient table (required for corrected modes)")
	flag.StringVar(&coeffDB, "coeffs-db", "", "Path to a SQLite coefficient database (alternative to -coeffs)")
	flag.Parse()

	var t time.Time
	if timeStr == "" {
		t = time.Now().UTC()
	} else {
		var err error
		t, err = time.Parse(time.RFC3339, timeStr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing time: %v\n", err)
			os.Exit(1)
		}
	}

	if mode != "siddhanta" && mode != "modern" && mode != "both" {
		fmt.Fprintf(os.Stderr, "Unknown mode %q: use siddhanta, modern, or both\n", mode)
		os.Exit(1)
	}

	var table residual.Table
	if mode != "siddhanta" {
		data, err := loadCoeffs(coeffFile, coeffDB)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading coefficients: %v\n", err)
			os.Exit(1)
		}
		table = data.Bodies
	}

	engine := siddhanta.NewDefault()
	result, err := engine.At(siddhanta.FromTime(t))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing positions: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Graha positions for %s\n", t.Format(time.RFC3339))
	fmt.Printf("  Julian Day: %.6f\n", result.JulianDay)
	fmt.Printf("  Ahargana:   %.6f days since Kali epoch\n", result.DayCount)
	fmt.Println()

	for _, body := range siddhanta.Bodies {
		pos := result.Positions[body]
		fmt.Printf("  %-8s %10.4f°  %s  lat %+8.4f°  decl %+8.4f°  mean %10.4f°\n",
			body, pos.LongitudeDeg, zodiac(pos.LongitudeDeg), pos.LatitudeDeg, pos.DeclinationDeg,
			pos.MeanLongitudeDeg)
		if table != nil {
			corrected, err := table.Apply(string(body), pos.LongitudeDeg, result.DayCount)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Warning: no correction for %s: %v\n", body, err)
				continue
			}
			delta := residual.WrapDelta(corrected, pos.LongitudeDeg)
			fmt.Printf("  %-8s %10.4f°  %s  (correction %+.2f′)\n",
				"", corrected, zodiac(corrected), unit.AngleFromDeg(delta).Min())
		}
	}
}

func loadCoeffs(coeffFile, coeffDB string) (*coeffs.TableData, error) {
	var provider coeffs.Provider
	switch {
	case coeffFile != "":
		provider = coeffs.NewJSONProvider(coeffFile)
	case coeffDB != "":
		var err error
		provider, err = coeffs.NewSQLiteProvider(coeffDB)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("corrected modes need -coeffs or -coeffs-db")
	}
	defer provider.Close()
	return provider.Load()
}
