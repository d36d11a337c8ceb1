// Package residual fits and evaluates harmonic correction models that map
// the classical siddhānta longitudes onto a modern reference ephemeris. A
// model is a truncated Fourier series in the day count: an offset plus
// cos/sin pairs at preset base frequencies and their harmonics. Fitting is
// an offline batch least-squares solve; evaluation is a pure function.
package residual

import (
	"fmt"
	"math"

	"github.com/smahajan/grahas/pkg/siddhanta"
)

// Term is one harmonic of a fitted model. Frequencies are angular
// (radians per day); amplitudes are in degrees.
type Term struct {
	FrequencyRadPerDay float64 `json:"angular_frequency_rad_per_day"`
	CosAmplitudeDeg    float64 `json:"cos_amplitude_deg"`
	SinAmplitudeDeg    float64 `json:"sin_amplitude_deg"`
}

// Model is the fitted residual correction for one body. Term order is
// significant for interchange and is preserved by fitting and storage.
type Model struct {
	OffsetDeg float64 `json:"offset_deg"`
	Terms     []Term  `json:"terms"`
}

// Correction evaluates the model at a day count, in degrees.
func (m Model) Correction(dayCount float64) float64 {
	c := m.OffsetDeg
	for _, t := range m.Terms {
		phase := t.FrequencyRadPerDay * dayCount
		c += t.CosAmplitudeDeg*math.Cos(phase) + t.SinAmplitudeDeg*math.Sin(phase)
	}
	return c
}

// Apply returns the corrected longitude, normalized into [0, 360).
func (m Model) Apply(classicalLonDeg, dayCount float64) float64 {
	return siddhanta.Norm360(classicalLonDeg + m.Correction(dayCount))
}

// UnknownBodyError reports a body absent from a model table.
type UnknownBodyError struct {
	Body string
}

func (e *UnknownBodyError) Error() string {
	return fmt.Sprintf("no residual model fitted for body %q", e.Body)
}

// Table maps body names to fitted models. The string key (rather than
// siddhanta.Body) matches the interchange format, which is keyed by name.
type Table map[string]Model

// Apply corrects a classical longitude for a body, or returns
// *UnknownBodyError if the body was never fitted.
func (t Table) Apply(body string, classicalLonDeg, dayCount float64) (float64, error) {
	m, ok := t[body]
	if !ok {
		return 0, &UnknownBodyError{Body: body}
	}
	return m.Apply(classicalLonDeg, dayCount), nil
}

// WrapDelta reduces the circular difference a−b into (−180, 180]. Residuals
// must pass through this before any linear fitting, or the 0°/360° wrap
// shows up as a spurious discontinuity.
func WrapDelta(a, b float64) float64 {
	d := math.Mod(a-b+180, 360)
	if d < 0 {
		d += 360
	}
	d -= 180
	if d == -180 {
		d = 180
	}
	return d
}
