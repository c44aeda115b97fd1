// Command process runs the data cleaning stage: it reads a raw CSV, imputes
// missing values, drops price outliers, and writes the cleaned CSV.
package main

import (
	"context"
	"flag"
	"os"

	"houseprice/internal/cleaning"
	"houseprice/internal/dataset"
	"houseprice/internal/platform/logger"
)

func main() {
	input := flag.String("input", "", "path to the raw CSV file")
	output := flag.String("output", "", "path for the cleaned CSV file")
	flag.Parse()

	log := logger.New()
	ctx := context.Background()

	if *input == "" || *output == "" {
		log.ErrorContext(ctx, "both --input and --output are required")
		os.Exit(2)
	}

	raw, err := dataset.ReadFile(*input)
	if err != nil {
		log.ErrorContext(ctx, "read input failed", "path", *input, "error", err)
		os.Exit(1)
	}

	cleaned, report, err := cleaning.New(log).Clean(ctx, raw)
	if err != nil {
		log.ErrorContext(ctx, "cleaning failed", "error", err)
		os.Exit(1)
	}

	if err := dataset.WriteFile(*output, cleaned); err != nil {
		log.ErrorContext(ctx, "write output failed", "path", *output, "error", err)
		os.Exit(1)
	}

	log.InfoContext(ctx, "cleaning stage complete",
		"input", *input,
		"output", *output,
		"rows_in", report.RowsIn,
		"rows_out", report.RowsOut,
		"outliers_dropped", report.OutliersDropped,
	)
}
