package residual

import (
	"context"
	"fmt"
	"time"

	"github.com/smahajan/grahas/pkg/siddhanta"
)

// Provider supplies reference ecliptic longitudes for the sampling phase.
// Implementations live outside this package (HTTP service, pre-sampled CSV);
// the fitter only needs this one call.
type Provider interface {
	// LongitudeDeg returns the reference geocentric ecliptic longitude of
	// a body at a UTC instant, in degrees.
	LongitudeDeg(ctx context.Context, body string, t time.Time) (float64, error)
}

// ProviderFunc adapts a plain function to the Provider interface.
type ProviderFunc func(ctx context.Context, body string, t time.Time) (float64, error)

func (f ProviderFunc) LongitudeDeg(ctx context.Context, body string, t time.Time) (float64, error) {
	return f(ctx, body, t)
}

// Sampler pairs classical engine output with reference longitudes over a
// time range. It holds no state between calls.
type Sampler struct {
	Engine   *siddhanta.Engine
	Provider Provider
}

// Collect samples one body at a fixed cadence over [start, end]. Both
// endpoints are included when the step divides the range evenly. The
// reference provider is consulted once per instant; any provider error
// aborts the collection for this body only.
func (s *Sampler) Collect(ctx context.Context, body string, start, end time.Time, step time.Duration) ([]Sample, error) {
	if step <= 0 {
		return nil, fmt.Errorf("sampling %s: non-positive step %v", body, step)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("sampling %s: range end %v before start %v", body, end, start)
	}
	b, ok := siddhanta.ParseBody(body)
	if !ok {
		return nil, fmt.Errorf("sampling %s: unknown body", body)
	}

	var samples []Sample
	for t := start; !t.After(end); t = t.Add(step) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		dc := siddhanta.FromTime(t).DayCount()
		classical := s.Engine.Compute(dc)[b].LongitudeDeg
		ref, err := s.Provider.LongitudeDeg(ctx, body, t)
		if err != nil {
			return nil, fmt.Errorf("sampling %s at %v: %w", body, t, err)
		}
		samples = append(samples, Sample{
			DayCount:     dc,
			ClassicalDeg: classical,
			ReferenceDeg: ref,
		})
	}
	return samples, nil
}
