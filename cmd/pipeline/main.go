// Command pipeline compiles the training workflow definition to a YAML file
// that an orchestrator can execute.
package main

import (
	"context"
	"flag"
	"os"

	"houseprice/internal/pipeline"
	"houseprice/internal/platform/logger"
)

func main() {
	rawData := flag.String("raw-data", "data/raw/house_data.csv", "path to the raw data CSV")
	configPath := flag.String("config", "configs/model_config.yaml", "path to the model config YAML")
	bucket := flag.String("bucket", "", "S3 bucket the train stage publishes to")
	modelKey := flag.String("model-key", "production/model.json", "S3 key for the model artifact")
	preprocessorKey := flag.String("preprocessor-key", "production/preprocessor.json", "S3 key for the preprocessor artifact")
	image := flag.String("image", "", "container image the stages run in")
	out := flag.String("out", "house_price_pipeline.yaml", "output path for the compiled pipeline")
	flag.Parse()

	log := logger.New()
	ctx := context.Background()

	p := pipeline.Default(pipeline.Params{
		RawDataPath:     *rawData,
		ConfigPath:      *configPath,
		Bucket:          *bucket,
		ModelKey:        *modelKey,
		PreprocessorKey: *preprocessorKey,
		Image:           *image,
	})
	if err := p.Compile(*out); err != nil {
		log.ErrorContext(ctx, "pipeline compile failed", "error", err)
		os.Exit(1)
	}
	log.InfoContext(ctx, "pipeline compiled", "path", *out, "stages", len(p.Stages))
}
