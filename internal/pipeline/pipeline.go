// Package pipeline runs one search request end to end: concurrent
// fetch across all source adapters, compliance filtering, heuristic
// scoring, deduplication, best-effort semantic re-ranking of the top
// slice, and final rank assignment.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jobscoutdev/jobscout/internal/ai"
	"github.com/jobscoutdev/jobscout/internal/filtering"
	"github.com/jobscoutdev/jobscout/internal/jobs"
	"github.com/jobscoutdev/jobscout/internal/profile"
	"github.com/jobscoutdev/jobscout/internal/progress"
	"github.com/jobscoutdev/jobscout/internal/scoring"
	"github.com/jobscoutdev/jobscout/internal/source"
	"github.com/jobscoutdev/jobscout/internal/store"
)

const (
	// DefaultRerankTimeout bounds the semantic re-ranker call. It is
	// shorter than the adapter timeout because the stage is
	// best-effort and must not stall a nearly-finished run.
	DefaultRerankTimeout = 45 * time.Second

	// RerankSliceSize is how many top records are submitted for
	// semantic scoring.
	RerankSliceSize = 10
)

// Pipeline wires the stages together. Reranker and ResultSink are
// optional capabilities; a nil reranker skips semantic scoring and a
// nil sink skips persistence.
type Pipeline struct {
	adapters       []source.Adapter
	reranker       ai.Reranker
	sink           store.ResultSink
	agencyDenylist []string
	adapterTimeout time.Duration
	rerankTimeout  time.Duration
	logger         *zap.Logger
}

// Option tweaks pipeline construction.
type Option func(*Pipeline)

func WithReranker(r ai.Reranker) Option {
	return func(p *Pipeline) { p.reranker = r }
}

func WithResultSink(s store.ResultSink) Option {
	return func(p *Pipeline) { p.sink = s }
}

func WithAgencyDenylist(denylist []string) Option {
	return func(p *Pipeline) { p.agencyDenylist = denylist }
}

func WithAdapterTimeout(d time.Duration) Option {
	return func(p *Pipeline) {
		if d > 0 {
			p.adapterTimeout = d
		}
	}
}

func WithRerankTimeout(d time.Duration) Option {
	return func(p *Pipeline) {
		if d > 0 {
			p.rerankTimeout = d
		}
	}
}

func New(adapters []source.Adapter, logger *zap.Logger, opts ...Option) *Pipeline {
	p := &Pipeline{
		adapters:       adapters,
		adapterTimeout: DefaultAdapterTimeout,
		rerankTimeout:  DefaultRerankTimeout,
		logger:         logger,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run executes the pipeline for one profile and reports stage
// transitions through the tracker. Only a malformed profile is fatal;
// every other failure degrades toward fewer or lower-quality results.
// Zero results is a valid completed outcome.
func (p *Pipeline) Run(ctx context.Context, prof *profile.Profile, tracker *progress.Tracker) (*jobs.Jobs, error) {
	if err := prof.Validate(); err != nil {
		tracker.Fail(ctx, err.Error())
		return nil, fmt.Errorf("invalid profile: %w", err)
	}

	window, err := profile.ParseRecency(prof.Recency)
	if err != nil {
		tracker.Fail(ctx, err.Error())
		return nil, fmt.Errorf("invalid profile: %w", err)
	}

	query := source.Query{
		Roles:     prof.Roles,
		Location:  prof.Location,
		Seniority: prof.Seniority,
		Window:    window,
	}

	tracker.Advance(ctx, progress.StageFetching)
	list := p.fetchAll(ctx, query)
	p.logger.Info("fetch finished", zap.Int("records", list.Len()))

	tracker.Advance(ctx, progress.StageFiltering)
	list, err = p.filter(ctx, prof, list)
	if err != nil {
		tracker.Fail(ctx, err.Error())
		return nil, err
	}

	tracker.Advance(ctx, progress.StageScoring)
	list = scoring.NewScorer(prof, p.logger).Score(list)
	list = scoring.DedupAndRank(list)
	final := p.rerank(ctx, prof, list)

	tracker.Advance(ctx, progress.StagePersisting)
	if p.sink != nil {
		if err := p.sink.Save(ctx, tracker.SearchID(), final); err != nil {
			tracker.Fail(ctx, err.Error())
			return nil, fmt.Errorf("persist results: %w", err)
		}
	}

	tracker.Complete(ctx)
	return final, nil
}

func (p *Pipeline) filter(ctx context.Context, prof *profile.Profile, list *jobs.Jobs) (*jobs.Jobs, error) {
	chain := filtering.New([]filtering.Filter{
		filtering.NewAgencyExclusion(prof.ExcludeAgencies, p.agencyDenylist),
		filtering.NewContractType(prof.RequestedContracts()),
		filtering.NewRemoteMode(prof.RequestedRemoteModes()),
	}, p.logger)

	return chain.RunFilters(ctx, list)
}

// rerank submits the top slice for semantic scoring and assembles the
// final order. Any re-ranker failure keeps the heuristic order.
func (p *Pipeline) rerank(ctx context.Context, prof *profile.Profile, list *jobs.Jobs) *jobs.Jobs {
	if p.reranker == nil || list.Len() == 0 {
		return scoring.Assemble(&jobs.Jobs{}, list)
	}

	head := list.Top(RerankSliceSize)
	tail := list.Tail(RerankSliceSize)

	rerankCtx, cancel := context.WithTimeout(ctx, p.rerankTimeout)
	defer cancel()

	rankings, err := p.reranker.Rerank(rerankCtx, prof.Summary(), head.Items)
	if err != nil {
		p.logger.Warn("semantic re-ranking failed, keeping heuristic order", zap.Error(err))
		return scoring.Assemble(&jobs.Jobs{}, list)
	}
	if len(rankings) != head.Len() {
		p.logger.Warn("semantic re-ranking returned wrong batch size, keeping heuristic order",
			zap.Int("want", head.Len()),
			zap.Int("got", len(rankings)),
		)
		return scoring.Assemble(&jobs.Jobs{}, list)
	}

	for i, job := range head.Items {
		score := rankings[i].Score
		job.SemanticScore = &score
		job.Justification = rankings[i].Justification
	}

	return scoring.Assemble(head, tail)
}
