// Command engineer runs the feature engineering stage: it derives model
// features from the cleaned CSV, fits the preprocessor, and writes both the
// featured CSV and the preprocessor artifact.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"houseprice/internal/engineer"
	"houseprice/internal/platform/logger"
)

func main() {
	input := flag.String("input", "", "path to the cleaned CSV file")
	output := flag.String("output", "", "path for the featured CSV file")
	preprocessor := flag.String("preprocessor", "", "path for the preprocessor artifact")
	year := flag.Int("reference-year", time.Now().UTC().Year(), "reference year for house age")
	flag.Parse()

	log := logger.New()
	ctx := context.Background()

	if *input == "" || *output == "" || *preprocessor == "" {
		log.ErrorContext(ctx, "--input, --output and --preprocessor are required")
		os.Exit(2)
	}

	err := engineer.Run(ctx, log, engineer.Params{
		InputPath:        *input,
		OutputPath:       *output,
		PreprocessorPath: *preprocessor,
		ReferenceYear:    *year,
	})
	if err != nil {
		log.ErrorContext(ctx, "feature engineering failed", "error", err)
		os.Exit(1)
	}
}
