package coeffs

import (
	"encoding/json"
	"fmt"
	"os"
)

// JSONProvider stores the coefficient table as a single flat file in the
// interchange format. Store overwrites the previous contents atomically.
type JSONProvider struct {
	path string
}

// NewJSONProvider creates a JSON file provider. The file does not need to
// exist yet; Load fails until a table has been stored.
func NewJSONProvider(path string) *JSONProvider {
	return &JSONProvider{path: path}
}

// Load reads and decodes the coefficient table from the file.
func (p *JSONProvider) Load() (*TableData, error) {
	raw, err := os.ReadFile(p.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read coefficient file: %w", err)
	}
	var data TableData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to decode coefficient file %s: %w", p.path, err)
	}
	return &data, nil
}

// Store writes the table through a temp file and renames it into place, so
// a reader never sees a partially written table.
func (p *JSONProvider) Store(data *TableData) error {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode coefficient table: %w", err)
	}
	tmp := p.path + ".tmp"
	if err := os.WriteFile(tmp, append(raw, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write coefficient file: %w", err)
	}
	if err := os.Rename(tmp, p.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace coefficient file: %w", err)
	}
	return nil
}

func (p *JSONProvider) IsReadOnly() bool { return false }

func (p *JSONProvider) Close() error { return nil }
