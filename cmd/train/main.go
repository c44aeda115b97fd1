// Command train runs the model training stage: it fits a linear model on the
// featured CSV, writes the model artifact, and optionally publishes both
// artifacts to S3.
package main

import (
	"context"
	"flag"
	"os"

	"houseprice/internal/artifact"
	"houseprice/internal/platform/logger"
	"houseprice/internal/train"
)

func main() {
	configPath := flag.String("config", "", "path to the model config YAML")
	data := flag.String("data", "", "path to the featured CSV file")
	preprocessor := flag.String("preprocessor", "", "path to the fitted preprocessor artifact")
	outputModel := flag.String("output-model-path", "", "path for the trained model artifact")
	bucket := flag.String("bucket", "", "S3 bucket to publish artifacts to (empty skips upload)")
	region := flag.String("region", "us-east-1", "AWS region for the artifact bucket")
	modelKey := flag.String("model-key", "production/model.json", "S3 key for the model artifact")
	preprocessorKey := flag.String("preprocessor-key", "production/preprocessor.json", "S3 key for the preprocessor artifact")
	flag.Parse()

	log := logger.New()
	ctx := context.Background()

	if *configPath == "" || *data == "" || *preprocessor == "" || *outputModel == "" {
		log.ErrorContext(ctx, "--config, --data, --preprocessor and --output-model-path are required")
		os.Exit(2)
	}

	cfg, err := train.LoadConfig(*configPath)
	if err != nil {
		log.ErrorContext(ctx, "invalid model config", "path", *configPath, "error", err)
		os.Exit(1)
	}

	var store train.Store
	if *bucket != "" {
		s3store, err := artifact.NewS3Store(ctx, *bucket, *region,
			os.Getenv("AWS_ACCESS_KEY_ID"), os.Getenv("AWS_SECRET_ACCESS_KEY"))
		if err != nil {
			log.ErrorContext(ctx, "s3 store init failed", "error", err)
			os.Exit(1)
		}
		store = s3store
	}

	err = train.Run(ctx, log, train.Params{
		DataPath:         *data,
		PreprocessorPath: *preprocessor,
		ModelOutputPath:  *outputModel,
		Config:           cfg,
		Store:            store,
		ModelKey:         *modelKey,
		PreprocessorKey:  *preprocessorKey,
	})
	if err != nil {
		log.ErrorContext(ctx, "training failed", "error", err)
		os.Exit(1)
	}
}
