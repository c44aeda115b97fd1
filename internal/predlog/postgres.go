// Package predlog persists served predictions to Postgres for offline
// analysis. The sink is optional and best-effort: the predictor logs write
// failures and keeps serving.
package predlog

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"houseprice/internal/predict"
)

// PostgresRecorder writes one row per served prediction.
type PostgresRecorder struct {
	db *sql.DB
}

// NewPostgresRecorder opens the connection, runs the schema migration, and
// returns a ready recorder.
func NewPostgresRecorder(dsn string) (*PostgresRecorder, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("predlog: open: %w", err)
	}

	for i := 0; i < 5; i++ {
		if err = db.Ping(); err == nil {
			break
		}
		time.Sleep(time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("predlog: ping failed after retries: %w", err)
	}

	r := &PostgresRecorder{db: db}
	if err := r.migrate(); err != nil {
		return nil, fmt.Errorf("predlog: migrate: %w", err)
	}
	return r, nil
}

func (r *PostgresRecorder) migrate() error {
	_, err := r.db.Exec(`
		CREATE TABLE IF NOT EXISTS predictions (
			id          SERIAL PRIMARY KEY,
			request_id  TEXT          NOT NULL,
			sqft        NUMERIC(10,2) NOT NULL,
			bedrooms    NUMERIC(4,1)  NOT NULL,
			bathrooms   NUMERIC(4,1)  NOT NULL,
			year_built  INT           NOT NULL,
			estimate    NUMERIC(12,2) NOT NULL,
			created_at  TIMESTAMPTZ   NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_predictions_request_id ON predictions(request_id);
		CREATE INDEX IF NOT EXISTS idx_predictions_created_at ON predictions(created_at);
	`)
	return err
}

// Record implements predict.Recorder.
func (r *PostgresRecorder) Record(ctx context.Context, requestID string, req predict.Request, estimate float64) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO predictions (request_id, sqft, bedrooms, bathrooms, year_built, estimate)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, requestID, req.SquareFeet, req.Bedrooms, req.Bathrooms, int(req.YearBuilt), estimate)
	if err != nil {
		return fmt.Errorf("predlog: insert: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func (r *PostgresRecorder) Close() error {
	return r.db.Close()
}
