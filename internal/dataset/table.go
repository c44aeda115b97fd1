// Package dataset provides the tabular frame that pipeline stages read,
// transform, and write. Cells are kept as strings exactly as they appear in
// the CSV; stages parse numbers on demand so untouched cells round-trip
// byte-for-byte.
package dataset

import (
	"strconv"

	dErrors "houseprice/pkg/domain-errors"
)

// Table is an in-memory CSV: a header row plus data rows. Row order is
// meaningful only to the extent the stages preserve it.
type Table struct {
	Columns []string
	Rows    [][]string
}

// IsMissing reports whether a cell counts as a missing value.
func IsMissing(cell string) bool {
	return cell == "" || cell == "NA" || cell == "NaN"
}

// NumRows returns the number of data rows.
func (t *Table) NumRows() int {
	return len(t.Rows)
}

// ColumnIndex returns the position of the named column.
func (t *Table) ColumnIndex(name string) (int, bool) {
	for i, c := range t.Columns {
		if c == name {
			return i, true
		}
	}
	return 0, false
}

// Column returns the cells of the named column in row order.
func (t *Table) Column(name string) ([]string, error) {
	idx, ok := t.ColumnIndex(name)
	if !ok {
		return nil, dErrors.Newf(dErrors.CodeBadData, "column %q not present", name)
	}
	out := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = row[idx]
	}
	return out, nil
}

// NumericColumn parses the named column's non-missing cells as floats.
// A non-missing cell that fails to parse is a DataError.
func (t *Table) NumericColumn(name string) ([]float64, error) {
	cells, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	out := make([]float64, 0, len(cells))
	for i, cell := range cells {
		if IsMissing(cell) {
			continue
		}
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return nil, dErrors.Newf(dErrors.CodeBadData, "column %q row %d: %q is not numeric", name, i, cell)
		}
		out = append(out, v)
	}
	return out, nil
}

// IsNumericColumn reports whether every non-missing cell in the column parses
// as a float. A column with no observed values is neither numeric nor
// categorical; the cleaner rejects it before asking.
func (t *Table) IsNumericColumn(idx int) bool {
	for _, row := range t.Rows {
		cell := row[idx]
		if IsMissing(cell) {
			continue
		}
		if _, err := strconv.ParseFloat(cell, 64); err != nil {
			return false
		}
	}
	return true
}

// AppendColumn adds a derived column. The value slice must match the row
// count.
func (t *Table) AppendColumn(name string, values []string) error {
	if len(values) != len(t.Rows) {
		return dErrors.Newf(dErrors.CodeBadData, "column %q has %d values for %d rows", name, len(values), len(t.Rows))
	}
	t.Columns = append(t.Columns, name)
	for i := range t.Rows {
		t.Rows[i] = append(t.Rows[i], values[i])
	}
	return nil
}

// Clone deep-copies the table so transformations never mutate their input.
func (t *Table) Clone() *Table {
	cp := &Table{
		Columns: append([]string(nil), t.Columns...),
		Rows:    make([][]string, len(t.Rows)),
	}
	for i, row := range t.Rows {
		cp.Rows[i] = append([]string(nil), row...)
	}
	return cp
}

// FormatFloat renders a derived numeric cell. Integral values print without a
// decimal point so derived integer columns look like the source data;
// fractional values print in fixed notation so large magnitudes never fall
// into scientific form in the written CSV.
func FormatFloat(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
