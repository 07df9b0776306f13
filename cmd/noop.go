package cmd

import (
	"context"

	"github.com/abhisek/bojcoach/internal/store"
)

// noopEventRepo satisfies store.EventRepo when the database could not be
// opened. Writes are discarded and reads return nothing.
type noopEventRepo struct{}

func (noopEventRepo) AppendAnalysis(ctx context.Context, data store.AnalysisEventData) error {
	return nil
}

func (noopEventRepo) AppendLLMRequest(ctx context.Context, data store.LLMRequestEventData) error {
	return nil
}

func (noopEventRepo) RecentAnalyses(ctx context.Context, handle string, opts store.QueryOpts) ([]store.AnalysisEvent, error) {
	return nil, nil
}

func (noopEventRepo) RecentLLMRequests(ctx context.Context, opts store.QueryOpts) ([]store.LLMRequestEvent, error) {
	return nil, nil
}
