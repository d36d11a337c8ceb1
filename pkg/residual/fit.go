package residual

import (
	"fmt"
	"math"
	"sync"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Sample pairs a classical longitude with a reference longitude at one
// day count.
type Sample struct {
	DayCount     float64 `json:"day_count"`
	ClassicalDeg float64 `json:"classical_longitude_deg"`
	ReferenceDeg float64 `json:"reference_longitude_deg"`
}

// Config selects the harmonic basis for a fit.
type Config struct {
	// PeriodsDays are the base periods; each contributes Order harmonics.
	PeriodsDays []float64
	// Order is the number of harmonics per base period (k = 1..Order).
	Order int
}

// Coefficients returns the number of free parameters of the basis:
// a cos/sin pair per period-harmonic plus the constant offset.
func (c Config) Coefficients() int {
	return 2*len(c.PeriodsDays)*c.Order + 1
}

// UnderdeterminedError reports a fit attempted with fewer samples than
// coefficients. Dropping harmonics silently is not an option; the caller
// must either supply more samples or ask for a smaller basis.
type UnderdeterminedError struct {
	Body         string
	Samples      int
	Coefficients int
}

func (e *UnderdeterminedError) Error() string {
	return fmt.Sprintf("residual fit for %q underdetermined: %d samples for %d coefficients",
		e.Body, e.Samples, e.Coefficients)
}

// SingularError reports a numerically singular design matrix, typically from
// duplicate base periods or degenerate sampling.
type SingularError struct {
	Body string
}

func (e *SingularError) Error() string {
	return fmt.Sprintf("residual fit for %q: singular design matrix", e.Body)
}

// Fit solves the harmonic least-squares problem for one body. Residuals are
// reduced into (−180, 180] before fitting. The returned model's term order is
// period-major, harmonic-minor, matching the interchange format.
func Fit(body string, samples []Sample, cfg Config) (Model, error) {
	if cfg.Order < 1 {
		return Model{}, fmt.Errorf("residual fit for %q: order %d < 1", body, cfg.Order)
	}
	if len(cfg.PeriodsDays) == 0 {
		return Model{}, fmt.Errorf("residual fit for %q: no base periods", body)
	}
	n := len(samples)
	cols := cfg.Coefficients()
	if n < cols {
		return Model{}, &UnderdeterminedError{Body: body, Samples: n, Coefficients: cols}
	}

	// Angular frequencies in the term order of the model.
	freqs := make([]float64, 0, len(cfg.PeriodsDays)*cfg.Order)
	for _, p := range cfg.PeriodsDays {
		w := Omega(p)
		for k := 1; k <= cfg.Order; k++ {
			freqs = append(freqs, float64(k)*w)
		}
	}

	// Design matrix: constant column, then cos/sin per frequency.
	X := mat.NewDense(n, cols, nil)
	y := mat.NewVecDense(n, nil)
	for i, s := range samples {
		X.Set(i, 0, 1)
		for j, w := range freqs {
			phase := w * s.DayCount
			X.Set(i, 1+2*j, math.Cos(phase))
			X.Set(i, 2+2*j, math.Sin(phase))
		}
		y.SetVec(i, WrapDelta(s.ReferenceDeg, s.ClassicalDeg))
	}

	var qr mat.QR
	qr.Factorize(X)
	// SolveVecTo does not report rank deficiency on its own; a duplicated
	// base period would otherwise yield arbitrary mirrored coefficients.
	if cond := qr.Cond(); cond > mat.ConditionTolerance {
		return Model{}, &SingularError{Body: body}
	}
	coeffs := mat.NewVecDense(cols, nil)
	if err := qr.SolveVecTo(coeffs, false, y); err != nil {
		if _, ok := err.(mat.Condition); ok {
			return Model{}, &SingularError{Body: body}
		}
		return Model{}, fmt.Errorf("residual fit for %q: %w", body, err)
	}

	m := Model{
		OffsetDeg: coeffs.AtVec(0),
		Terms:     make([]Term, len(freqs)),
	}
	for j, w := range freqs {
		m.Terms[j] = Term{
			FrequencyRadPerDay: w,
			CosAmplitudeDeg:    coeffs.AtVec(1 + 2*j),
			SinAmplitudeDeg:    coeffs.AtVec(2 + 2*j),
		}
	}
	return m, nil
}

// FitAll fits every body concurrently. Each body's fit is independent; a
// failure for one body is reported in the error map and never aborts the
// others. Bodies present in errs are absent from the returned table.
func FitAll(samples map[string][]Sample, cfg Config) (Table, map[string]error) {
	var (
		mu     sync.Mutex
		wg     sync.WaitGroup
		models = make(Table, len(samples))
		errs   = make(map[string]error)
	)
	for body, series := range samples {
		wg.Add(1)
		go func(body string, series []Sample) {
			defer wg.Done()
			m, err := Fit(body, series, cfg)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs[body] = err
				return
			}
			models[body] = m
		}(body, series)
	}
	wg.Wait()
	return models, errs
}

// MeanSquaredResidual reports the mean squared residual of a sample series
// before and after applying a model's correction. A sound fit strictly
// reduces it on the data it was fitted to.
func MeanSquaredResidual(samples []Sample, m Model) (before, after float64) {
	sqBefore := make([]float64, len(samples))
	sqAfter := make([]float64, len(samples))
	for i, s := range samples {
		d := WrapDelta(s.ReferenceDeg, s.ClassicalDeg)
		sqBefore[i] = d * d
		r := d - m.Correction(s.DayCount)
		sqAfter[i] = r * r
	}
	return stat.Mean(sqBefore, nil), stat.Mean(sqAfter, nil)
}
