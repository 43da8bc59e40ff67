// Package progress models the pipeline stage machine and publishes
// stage transitions for an external status poller.
package progress

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Stage is one discrete pipeline state.
type Stage string

const (
	StageQueued     Stage = "queued"
	StageFetching   Stage = "fetching"
	StageFiltering  Stage = "filtering"
	StageScoring    Stage = "scoring"
	StagePersisting Stage = "persisting"
	StageCompleted  Stage = "completed"
	StageError      Stage = "error"
)

// stageOrder enforces forward-only transitions. Terminal stages have
// no successor.
var stageOrder = map[Stage]int{
	StageQueued:     0,
	StageFetching:   1,
	StageFiltering:  2,
	StageScoring:    3,
	StagePersisting: 4,
	StageCompleted:  5,
	StageError:      6,
}

// Update is one published transition.
type Update struct {
	Stage   Stage     `json:"stage"`
	Message string    `json:"message,omitempty"`
	At      time.Time `json:"at"`
}

// Sink receives stage transitions for one search run.
type Sink interface {
	Publish(ctx context.Context, searchID string, update Update) error
}

// Tracker owns the current stage of one pipeline run. Transitions are
// strictly forward; error is reachable from any non-terminal stage and
// is terminal. Publishing failures are logged, never fatal.
type Tracker struct {
	searchID string
	sink     Sink
	logger   *zap.Logger

	mu      sync.Mutex
	current Stage
}

func NewTracker(searchID string, sink Sink, logger *zap.Logger) *Tracker {
	return &Tracker{
		searchID: searchID,
		sink:     sink,
		logger:   logger,
		current:  StageQueued,
	}
}

func (t *Tracker) SearchID() string {
	return t.searchID
}

func (t *Tracker) Current() Stage {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current
}

// Advance moves the run to the given stage. Moving backwards or out of
// a terminal stage is rejected.
func (t *Tracker) Advance(ctx context.Context, stage Stage) error {
	return t.transition(ctx, stage, "")
}

// Fail moves the run to the terminal error stage with a user-readable
// message.
func (t *Tracker) Fail(ctx context.Context, message string) error {
	return t.transition(ctx, StageError, message)
}

// Complete marks the run finished. An empty result set still
// completes.
func (t *Tracker) Complete(ctx context.Context) error {
	return t.transition(ctx, StageCompleted, "")
}

func (t *Tracker) transition(ctx context.Context, stage Stage, message string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.current == StageCompleted || t.current == StageError {
		return fmt.Errorf("run already terminal in stage %q", t.current)
	}
	if stage != StageError && stageOrder[stage] <= stageOrder[t.current] {
		return fmt.Errorf("cannot move from %q to %q", t.current, stage)
	}

	t.current = stage
	t.logger.Info("pipeline stage",
		zap.String("search_id", t.searchID),
		zap.String("stage", string(stage)),
	)

	if t.sink == nil {
		return nil
	}

	update := Update{Stage: stage, Message: message, At: time.Now().UTC()}
	if err := t.sink.Publish(ctx, t.searchID, update); err != nil {
		t.logger.Warn("publishing stage update failed",
			zap.String("search_id", t.searchID),
			zap.String("stage", string(stage)),
			zap.Error(err),
		)
	}

	return nil
}
