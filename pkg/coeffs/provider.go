// Package coeffs persists fitted residual coefficient tables. Two backends
// implement the same provider interface: a flat JSON file matching the
// interchange format, and a SQLite database that keeps a history of fit runs.
package coeffs

import (
	"time"

	"github.com/smahajan/grahas/pkg/residual"
)

// TableData is a coefficient table plus the metadata of the fit run that
// produced it.
type TableData struct {
	RunID       string         `json:"run_id"`
	GeneratedAt time.Time      `json:"generated_at"`
	Note        string         `json:"note,omitempty"`
	Bodies      residual.Table `json:"bodies"`
}

// Provider defines the interface for coefficient table storage backends.
type Provider interface {
	// Load returns the current coefficient table. For backends with run
	// history this is the most recent run.
	Load() (*TableData, error)

	// Store persists a table. Backends with run history append a run;
	// flat-file backends overwrite.
	Store(*TableData) error

	IsReadOnly() bool
	Close() error
}
