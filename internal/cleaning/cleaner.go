// Package cleaning implements the data-cleaning stage: per-column
// missing-value imputation followed by IQR outlier removal on the price
// column.
package cleaning

import (
	"context"
	"log/slog"
	"strconv"

	"houseprice/internal/dataset"
	"houseprice/internal/stats"
	dErrors "houseprice/pkg/domain-errors"
)

// TargetColumn is the column the outlier rule applies to.
const TargetColumn = "price"

// Imputation records how one column's missing cells were filled.
type Imputation struct {
	Column   string `json:"column"`
	Missing  int    `json:"missing"`
	Strategy string `json:"strategy"` // "median" or "mode"
	Value    string `json:"value"`
}

// Report is the audit trail of a cleaning run.
type Report struct {
	RowsIn          int          `json:"rows_in"`
	RowsOut         int          `json:"rows_out"`
	Imputations     []Imputation `json:"imputations"`
	OutliersDropped int          `json:"outliers_dropped"`
	LowerBound      float64      `json:"lower_bound"`
	UpperBound      float64      `json:"upper_bound"`
}

// Cleaner transforms a raw table into a cleaned one.
type Cleaner struct {
	logger *slog.Logger
}

// New creates a Cleaner with the given logger.
func New(logger *slog.Logger) *Cleaner {
	return &Cleaner{logger: logger}
}

// Clean imputes missing values column by column (median for numeric columns,
// first mode for categorical ones) and then drops rows whose price falls
// outside [Q1-1.5*IQR, Q3+1.5*IQR], with the quartiles computed over the
// pre-removal distribution. Cells that were present in the input are
// preserved unmodified. A column with no observed values at all is a
// DataError: there is no defensible fill value to invent.
func (c *Cleaner) Clean(ctx context.Context, raw *dataset.Table) (*dataset.Table, *Report, error) {
	cleaned := raw.Clone()
	report := &Report{RowsIn: cleaned.NumRows()}

	for idx, column := range cleaned.Columns {
		missing := 0
		for _, row := range cleaned.Rows {
			if dataset.IsMissing(row[idx]) {
				missing++
			}
		}
		if missing == 0 {
			continue
		}
		if missing == cleaned.NumRows() {
			return nil, nil, dErrors.Newf(dErrors.CodeBadData, "column %q is entirely missing", column)
		}

		c.logger.InfoContext(ctx, "missing values found",
			"column", column,
			"missing", missing,
		)

		imp, err := c.impute(ctx, cleaned, idx, column, missing)
		if err != nil {
			return nil, nil, err
		}
		report.Imputations = append(report.Imputations, imp)
	}

	if err := c.dropPriceOutliers(ctx, cleaned, report); err != nil {
		return nil, nil, err
	}

	report.RowsOut = cleaned.NumRows()
	c.logger.InfoContext(ctx, "cleaning complete",
		"rows_in", report.RowsIn,
		"rows_out", report.RowsOut,
		"columns_imputed", len(report.Imputations),
		"outliers_dropped", report.OutliersDropped,
	)
	return cleaned, report, nil
}

func (c *Cleaner) impute(ctx context.Context, t *dataset.Table, idx int, column string, missing int) (Imputation, error) {
	var fill, strategy string

	if t.IsNumericColumn(idx) {
		vals, err := t.NumericColumn(column)
		if err != nil {
			return Imputation{}, err
		}
		fill = dataset.FormatFloat(stats.Median(vals))
		strategy = "median"
	} else {
		fill = columnMode(t, idx)
		strategy = "mode"
	}

	for _, row := range t.Rows {
		if dataset.IsMissing(row[idx]) {
			row[idx] = fill
		}
	}

	c.logger.InfoContext(ctx, "imputed column",
		"column", column,
		"strategy", strategy,
		"fill", fill,
		"cells", missing,
	)

	return Imputation{Column: column, Missing: missing, Strategy: strategy, Value: fill}, nil
}

// columnMode returns the most frequent observed value; ties break toward the
// value seen first in row order.
func columnMode(t *dataset.Table, idx int) string {
	counts := make(map[string]int)
	var mode string
	best := 0
	for _, row := range t.Rows {
		cell := row[idx]
		if dataset.IsMissing(cell) {
			continue
		}
		counts[cell]++
		if counts[cell] > best {
			best = counts[cell]
			mode = cell
		}
	}
	return mode
}

func (c *Cleaner) dropPriceOutliers(ctx context.Context, t *dataset.Table, report *Report) error {
	idx, ok := t.ColumnIndex(TargetColumn)
	if !ok {
		return dErrors.Newf(dErrors.CodeBadData, "column %q not present", TargetColumn)
	}

	prices, err := t.NumericColumn(TargetColumn)
	if err != nil {
		return err
	}
	lower, upper := stats.IQRBounds(prices)
	report.LowerBound = lower
	report.UpperBound = upper

	kept := t.Rows[:0]
	for _, row := range t.Rows {
		// All prices are imputed by now, so every cell parses.
		v, err := strconv.ParseFloat(row[idx], 64)
		if err != nil {
			return dErrors.Newf(dErrors.CodeBadData, "column %q: %q is not numeric", TargetColumn, row[idx])
		}
		if v < lower || v > upper {
			report.OutliersDropped++
			continue
		}
		kept = append(kept, row)
	}
	t.Rows = kept

	if report.OutliersDropped > 0 {
		c.logger.InfoContext(ctx, "removed price outliers",
			"dropped", report.OutliersDropped,
			"lower_bound", lower,
			"upper_bound", upper,
		)
	}
	return nil
}
