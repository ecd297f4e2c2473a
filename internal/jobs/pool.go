// Package jobs runs page resolutions concurrently. Pages are independent:
// no resolver state crosses page boundaries, so a document's pages can be
// fanned out across workers while each page's slot processing stays
// strictly sequential inside the resolution core. Reports come back in
// page order regardless of completion order.
package jobs

import (
	"context"
	"log/slog"
	"runtime"
	"sync"

	"github.com/pagefit/pagefit/internal/types"
)

// ResolveFunc resolves one page into a report. Implementations must be
// safe for concurrent use; the match engine is.
type ResolveFunc func(page types.Page) *types.Report

// Pool is a bounded worker pool for page resolution.
type Pool struct {
	workers int
	logger  *slog.Logger
}

// PoolConfig configures a new Pool.
type PoolConfig struct {
	// Workers caps concurrency. Zero or negative means one per CPU.
	Workers int
	Logger  *slog.Logger
}

// NewPool creates a pool.
func NewPool(cfg PoolConfig) *Pool {
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Pool{workers: workers, logger: logger}
}

// ResolvePages resolves every page and returns the reports indexed like
// the input slice. Cancelling ctx abandons unstarted pages and returns
// the context error.
func (p *Pool) ResolvePages(ctx context.Context, pages []types.Page, resolve ResolveFunc) ([]*types.Report, error) {
	if len(pages) == 0 {
		return nil, nil
	}

	workers := p.workers
	if workers > len(pages) {
		workers = len(pages)
	}

	indexes := make(chan int)
	reports := make([]*types.Report, len(pages))

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				reports[i] = resolve(pages[i])
				p.logger.Debug("page done", "page", pages[i].Index)
			}
		}()
	}

	var cancelled error
feed:
	for i := range pages {
		select {
		case <-ctx.Done():
			cancelled = ctx.Err()
			break feed
		case indexes <- i:
		}
	}
	close(indexes)
	wg.Wait()

	if cancelled != nil {
		return nil, cancelled
	}
	return reports, nil
}
