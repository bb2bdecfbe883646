package balance

import (
	"context"
	"sync"
	"time"

	"github.com/vadiminshakov/folio/internal/domain"
)

// DefaultSourceTimeout bounds a single balance fetch so one unresponsive
// exchange cannot stall the whole portfolio request.
const DefaultSourceTimeout = 10 * time.Second

// Fetcher retrieves balances from all selected sources concurrently and
// waits for every one of them. Each source resolves to its own outcome; a
// failing source never aborts or delays the others beyond the join barrier.
type Fetcher struct {
	timeout time.Duration
}

// NewFetcher creates a fetcher with the given per-source timeout. A
// non-positive timeout falls back to DefaultSourceTimeout.
func NewFetcher(timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = DefaultSourceTimeout
	}
	return &Fetcher{timeout: timeout}
}

// Fetch returns one outcome per source, in source order.
func (f *Fetcher) Fetch(ctx context.Context, sources []Source) []domain.Outcome {
	outcomes := make([]domain.Outcome, len(sources))

	var wg sync.WaitGroup
	for i, src := range sources {
		wg.Add(1)
		go func(i int, src Source) {
			defer wg.Done()

			fetchCtx, cancel := context.WithTimeout(ctx, f.timeout)
			defer cancel()

			balances, err := src.Balances(fetchCtx)
			outcomes[i] = domain.Outcome{SourceID: src.ID(), Balances: balances, Err: err}
		}(i, src)
	}
	wg.Wait()

	return outcomes
}
