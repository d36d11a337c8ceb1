// Package ephemref supplies reference ecliptic longitudes for calibration.
// Providers wrap a modern ephemeris source: an HTTP service for live
// sampling, or a pre-sampled CSV export for offline and repeatable runs.
package ephemref

import (
	"context"
	"time"
)

// Provider is a source of reference geocentric ecliptic longitudes. It is a
// superset of the fitter's sampling interface, adding a name for logging.
type Provider interface {
	// Name identifies the source in logs and run metadata.
	Name() string

	// LongitudeDeg returns the reference longitude of a body at a UTC
	// instant, in degrees in [0, 360).
	LongitudeDeg(ctx context.Context, body string, t time.Time) (float64, error)
}
