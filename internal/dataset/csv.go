package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

// ReadFile loads a CSV into a Table. The first record is the header; every
// data row must have the same width as the header.
func ReadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: open %q: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("dataset: read %q: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("dataset: %q is empty", path)
	}

	return &Table{Columns: records[0], Rows: records[1:]}, nil
}

// WriteFile writes the table as a CSV, creating intermediate directories.
func WriteFile(path string, t *Table) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("dataset: create output dir: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("dataset: create %q: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(t.Columns); err != nil {
		return fmt.Errorf("dataset: write header: %w", err)
	}
	for _, row := range t.Rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("dataset: write row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}
