package residual

import (
	"fmt"
	"math"
	"strconv"
)

// Base period presets, in days. Residuals of the classical model beat against
// the tropical year, the slow outer-planet periods, and the nodal regression;
// these four cover the dominant error lines for every body.
const (
	PeriodSolarYear = 365.256363004
	PeriodJupiter   = 4332.589
	PeriodSaturn    = 10759.22
	PeriodNode      = 6798.38
)

// DefaultPeriods is the standard preset selection used when the caller does
// not pick frequencies explicitly.
var DefaultPeriods = []float64{PeriodSolarYear, PeriodJupiter, PeriodSaturn, PeriodNode}

var periodPresets = map[string]float64{
	"solar_year": PeriodSolarYear,
	"jupiter":    PeriodJupiter,
	"saturn":     PeriodSaturn,
	"node":       PeriodNode,
}

// ParsePeriod resolves a preset name or a numeric day count to a period.
func ParsePeriod(s string) (float64, error) {
	if p, ok := periodPresets[s]; ok {
		return p, nil
	}
	p, err := strconv.ParseFloat(s, 64)
	if err != nil || p <= 0 || math.IsInf(p, 0) || math.IsNaN(p) {
		return 0, fmt.Errorf("unknown period %q: not a preset name or positive day count", s)
	}
	return p, nil
}

// Omega converts a period in days to an angular frequency in radians per day.
func Omega(periodDays float64) float64 {
	return 2 * math.Pi / periodDays
}
