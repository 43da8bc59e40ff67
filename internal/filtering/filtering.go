// Package filtering implements the compliance filter chain applied to
// the raw merged record collection before scoring.
package filtering

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jobscoutdev/jobscout/internal/jobs"
)

// Filter represents a single filtering step applied to the collection.
type Filter interface {
	Name() string
	IsEnabled() bool

	Validate() error
	Apply(ctx context.Context, list *jobs.Jobs) (*jobs.Jobs, Step, error)
}

// Step describes the result of executing a filtering step.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

// Filtering runs an ordered list of filters.
type Filtering struct {
	steps  []Filter
	logger *zap.Logger
}

func New(steps []Filter, logger *zap.Logger) *Filtering {
	return &Filtering{
		steps:  steps,
		logger: logger,
	}
}

// RunFilters validates every enabled step, then applies them in order,
// logging per-step drop counts.
func (f *Filtering) RunFilters(ctx context.Context, list *jobs.Jobs) (*jobs.Jobs, error) {
	for _, step := range f.steps {
		if !step.IsEnabled() {
			continue
		}
		if err := step.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}
	}

	for _, step := range f.steps {
		if !step.IsEnabled() {
			f.logger.Debug("filter disabled", zap.String("name", step.Name()))
			continue
		}

		next, info, err := step.Apply(ctx, list)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}

		f.logger.Info("filter step",
			zap.String("name", step.Name()),
			zap.Int("initial", info.Initial),
			zap.Int("dropped", info.Dropped),
			zap.Int("left", info.Left),
		)

		list = next
	}

	return list, nil
}
