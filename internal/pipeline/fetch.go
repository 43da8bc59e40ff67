package pipeline

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jobscoutdev/jobscout/internal/jobs"
	"github.com/jobscoutdev/jobscout/internal/source"
)

// DefaultAdapterTimeout bounds each adapter's fetch independently.
const DefaultAdapterTimeout = 90 * time.Second

// fetchAll invokes every adapter concurrently with its own timeout.
// An adapter that errors or times out contributes nothing and never
// aborts its siblings; the merged output carries no ordering. All
// adapters failing yields a valid empty collection.
func (p *Pipeline) fetchAll(ctx context.Context, query source.Query) *jobs.Jobs {
	merged := &jobs.Jobs{}
	var mu sync.Mutex

	g := new(errgroup.Group)
	for _, adapter := range p.adapters {
		g.Go(func() error {
			adapterCtx, cancel := context.WithTimeout(ctx, p.adapterTimeout)
			defer cancel()

			started := time.Now()
			list, err := adapter.Fetch(adapterCtx, query)
			if err != nil {
				p.logger.Warn("source adapter failed",
					zap.String("adapter", adapter.Name()),
					zap.Duration("elapsed", time.Since(started)),
					zap.Error(err),
				)
				return nil
			}

			p.logger.Info("source adapter finished",
				zap.String("adapter", adapter.Name()),
				zap.Int("records", list.Len()),
				zap.Duration("elapsed", time.Since(started)),
			)

			mu.Lock()
			merged.Append(list)
			mu.Unlock()
			return nil
		})
	}
	g.Wait()

	return merged
}
