// Package store persists a completed search run's ranked results to
// Postgres. The pipeline talks to it through the ResultSink
// capability so runs without a database skip persistence entirely.
package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/jobscoutdev/jobscout/internal/jobs"
)

// ResultSink receives the final ranked list of one search run.
type ResultSink interface {
	Save(ctx context.Context, searchID string, list *jobs.Jobs) error
}

// Store is the Postgres-backed ResultSink. Expected schema:
//
//	CREATE TABLE search_results (
//	    search_id   text        NOT NULL,
//	    rank        int         NOT NULL,
//	    source      text        NOT NULL,
//	    external_id text        NOT NULL,
//	    title       text        NOT NULL,
//	    company     text        NOT NULL,
//	    score       int         NOT NULL,
//	    raw_data    jsonb       NOT NULL,
//	    created_at  timestamptz NOT NULL DEFAULT now(),
//	    PRIMARY KEY (search_id, rank)
//	)
type Store struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func New(ctx context.Context, databaseURL string, logger *zap.Logger) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.New: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres ping failed: %w", err)
	}

	return &Store{pool: pool, logger: logger}, nil
}

// Save inserts one row per ranked record. Rows that fail to serialize
// are skipped with a warning rather than failing the whole run.
func (s *Store) Save(ctx context.Context, searchID string, list *jobs.Jobs) error {
	for _, job := range list.Items {
		rawJSON, err := json.Marshal(job)
		if err != nil {
			s.logger.Warn("skipping unserializable record",
				zap.String("external_id", job.ExternalID),
				zap.Error(err),
			)
			continue
		}

		_, err = s.pool.Exec(ctx,
			`INSERT INTO search_results (search_id, rank, source, external_id, title, company, score, raw_data)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8::jsonb)`,
			searchID, job.Rank, job.Source, job.ExternalID, job.Title, job.Company, job.HeuristicScore, string(rawJSON),
		)
		if err != nil {
			return fmt.Errorf("insert rank %d: %w", job.Rank, err)
		}
	}

	s.logger.Info("results persisted",
		zap.String("search_id", searchID),
		zap.Int("count", list.Len()),
	)

	return nil
}

func (s *Store) Close() {
	s.pool.Close()
}
