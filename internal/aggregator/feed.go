package aggregator

import (
	"context"
	"sync"

	"github.com/julianstephens/weekendly/internal/models"
)

// LoadFunc produces one generation of results
type LoadFunc func(ctx context.Context, filters models.SearchFilters) models.ActivityResponse

// Feed serializes repeated queries so the latest one wins. Starting a Load
// cancels the one in flight, and a Load that finishes after a newer one
// started is discarded.
type Feed struct {
	load LoadFunc

	mu        sync.Mutex
	gen       uint64
	cancel    context.CancelFunc
	latest    models.ActivityResponse
	latestGen uint64
}

func NewFeed(load LoadFunc) *Feed {
	return &Feed{load: load}
}

// Load runs a new generation. The bool is false when a newer Load started
// before this one finished; its response is then not recorded.
func (f *Feed) Load(ctx context.Context, filters models.SearchFilters) (models.ActivityResponse, bool) {
	f.mu.Lock()
	f.gen++
	gen := f.gen
	if f.cancel != nil {
		f.cancel()
	}
	runCtx, cancel := context.WithCancel(ctx)
	f.cancel = cancel
	f.mu.Unlock()

	resp := f.load(runCtx, filters)

	f.mu.Lock()
	defer f.mu.Unlock()
	if gen != f.gen {
		cancel()
		return resp, false
	}
	cancel()
	f.cancel = nil
	f.latest = resp
	f.latestGen = gen
	return resp, true
}

// Latest returns the most recent accepted response and its generation.
// Generation 0 means nothing has loaded yet.
func (f *Feed) Latest() (models.ActivityResponse, uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.latest, f.latestGen
}

// Cancel aborts the in-flight Load, if any
func (f *Feed) Cancel() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
}
