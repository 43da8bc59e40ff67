// Package ai defines the semantic scoring capability consumed by the
// pipeline. Implementations live in subpackages; the pipeline only
// depends on the interface so tests can run against a stub.
package ai

import (
	"context"

	"github.com/jobscoutdev/jobscout/internal/jobs"
)

// Ranking is one semantic verdict, matched back to the submitted batch
// by position.
type Ranking struct {
	Score         int
	Justification string
}

// Reranker scores a bounded batch of records against a profile
// summary. The returned slice must be parallel to the input: entry i
// scores batch[i]. Any malformed or partial response is an error for
// the whole batch.
type Reranker interface {
	Rerank(ctx context.Context, profileSummary string, batch []*jobs.Job) ([]Ranking, error)
}
