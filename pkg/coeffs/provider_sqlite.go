package coeffs

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/smahajan/grahas/pkg/residual"
)

// SQLiteProvider stores coefficient tables in a SQLite database, one row set
// per fit run. Load returns the most recent run; earlier runs stay queryable
// for comparison.
type SQLiteProvider struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteProvider opens (and if necessary initializes) a coefficient
// database at the given path.
func NewSQLiteProvider(dbPath string) (*SQLiteProvider, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}

	p := &SQLiteProvider{db: db, dbPath: dbPath}
	if err := p.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return p, nil
}

func (p *SQLiteProvider) initSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS fit_runs (
			id TEXT PRIMARY KEY,
			generated_at TEXT NOT NULL,
			note TEXT NOT NULL DEFAULT ''
		);
		CREATE TABLE IF NOT EXISTS fit_models (
			run_id TEXT NOT NULL REFERENCES fit_runs(id),
			body TEXT NOT NULL,
			offset_deg REAL NOT NULL,
			PRIMARY KEY (run_id, body)
		);
		CREATE TABLE IF NOT EXISTS fit_terms (
			run_id TEXT NOT NULL,
			body TEXT NOT NULL,
			position INTEGER NOT NULL,
			angular_frequency_rad_per_day REAL NOT NULL,
			cos_amplitude_deg REAL NOT NULL,
			sin_amplitude_deg REAL NOT NULL,
			PRIMARY KEY (run_id, body, position),
			FOREIGN KEY (run_id, body) REFERENCES fit_models(run_id, body)
		);
	`
	if _, err := p.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize coefficient schema: %w", err)
	}
	return nil
}

// Load returns the coefficient table of the most recent fit run.
func (p *SQLiteProvider) Load() (*TableData, error) {
	var (
		runID       string
		generatedAt string
		note        string
	)
	err := p.db.QueryRow(`
		SELECT id, generated_at, note FROM fit_runs
		ORDER BY generated_at DESC, id DESC LIMIT 1
	`).Scan(&runID, &generatedAt, &note)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("no fit runs stored in %s", p.dbPath)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query fit runs: %w", err)
	}
	ts, err := time.Parse(time.RFC3339Nano, generatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse run timestamp %q: %w", generatedAt, err)
	}

	data := &TableData{
		RunID:       runID,
		GeneratedAt: ts,
		Note:        note,
		Bodies:      make(residual.Table),
	}

	rows, err := p.db.Query(`SELECT body, offset_deg FROM fit_models WHERE run_id = ?`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query fit models: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			body   string
			offset float64
		)
		if err := rows.Scan(&body, &offset); err != nil {
			return nil, fmt.Errorf("failed to scan model row: %w", err)
		}
		data.Bodies[body] = residual.Model{OffsetDeg: offset}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read model rows: %w", err)
	}

	termRows, err := p.db.Query(`
		SELECT body, angular_frequency_rad_per_day, cos_amplitude_deg, sin_amplitude_deg
		FROM fit_terms WHERE run_id = ?
		ORDER BY body, position
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query fit terms: %w", err)
	}
	defer termRows.Close()
	for termRows.Next() {
		var (
			body string
			term residual.Term
		)
		if err := termRows.Scan(&body, &term.FrequencyRadPerDay, &term.CosAmplitudeDeg, &term.SinAmplitudeDeg); err != nil {
			return nil, fmt.Errorf("failed to scan term row: %w", err)
		}
		m, ok := data.Bodies[body]
		if !ok {
			return nil, fmt.Errorf("term row for body %q with no model row", body)
		}
		m.Terms = append(m.Terms, term)
		data.Bodies[body] = m
	}
	if err := termRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read term rows: %w", err)
	}

	return data, nil
}

// Store appends a new fit run. A zero RunID gets a fresh UUID; a zero
// GeneratedAt gets the current time.
func (p *SQLiteProvider) Store(data *TableData) error {
	runID := data.RunID
	if runID == "" {
		runID = uuid.New().String()
	}
	generatedAt := data.GeneratedAt
	if generatedAt.IsZero() {
		generatedAt = time.Now().UTC()
	}

	tx, err := p.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`INSERT INTO fit_runs (id, generated_at, note) VALUES (?, ?, ?)`,
		runID, generatedAt.Format(time.RFC3339Nano), data.Note); err != nil {
		return fmt.Errorf("failed to insert fit run: %w", err)
	}
	for body, m := range data.Bodies {
		if _, err := tx.Exec(`INSERT INTO fit_models (run_id, body, offset_deg) VALUES (?, ?, ?)`,
			runID, body, m.OffsetDeg); err != nil {
			return fmt.Errorf("failed to insert model for %s: %w", body, err)
		}
		for i, term := range m.Terms {
			if _, err := tx.Exec(`
				INSERT INTO fit_terms
					(run_id, body, position, angular_frequency_rad_per_day, cos_amplitude_deg, sin_amplitude_deg)
				VALUES (?, ?, ?, ?, ?, ?)
			`, runID, body, i, term.FrequencyRadPerDay, term.CosAmplitudeDeg, term.SinAmplitudeDeg); err != nil {
				return fmt.Errorf("failed to insert term %d for %s: %w", i, body, err)
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit fit run: %w", err)
	}

	data.RunID = runID
	data.GeneratedAt = generatedAt
	return nil
}

func (p *SQLiteProvider) IsReadOnly() bool { return false }

func (p *SQLiteProvider) Close() error {
	return p.db.Close()
}
