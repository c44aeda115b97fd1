// Package config loads all service configuration from environment variables
// so main stays lean. A .env file is honored when present, matching how the
// stage containers are configured in development.
package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the inference-service configuration.
type Config struct {
	Addr string

	// Remote artifact store. Empty S3Bucket disables the remote source and
	// the loader goes straight to the local paths.
	S3Bucket        string
	S3Region        string
	ModelKey        string
	PreprocessorKey string

	// Explicit AWS credentials. When empty the default provider chain is
	// used (instance profile, shared credentials file, env).
	AWSAccessKeyID     string
	AWSSecretAccessKey string

	// Local fallback artifact paths.
	LocalModelPath        string
	LocalPreprocessorPath string

	// Optional Postgres prediction log. Empty DSN disables it.
	PredictionLogDSN string

	RequestTimeoutSeconds int
}

// FromEnv reads the .env file (if any) and returns a populated Config.
func FromEnv() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		Addr: getEnv("ADDR", ":8000"),

		S3Bucket:        os.Getenv("S3_BUCKET_NAME"),
		S3Region:        getEnv("AWS_REGION", "us-east-1"),
		ModelKey:        getEnv("MODEL_KEY", "production/model.json"),
		PreprocessorKey: getEnv("PREPROCESSOR_KEY", "production/preprocessor.json"),

		AWSAccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
		AWSSecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),

		LocalModelPath:        getEnv("LOCAL_MODEL_PATH", "models/trained/model.json"),
		LocalPreprocessorPath: getEnv("LOCAL_PREPROCESSOR_PATH", "models/trained/preprocessor.json"),

		PredictionLogDSN: os.Getenv("PREDICTION_LOG_DSN"),

		RequestTimeoutSeconds: getEnvInt("REQUEST_TIMEOUT_SECONDS", 30),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}
