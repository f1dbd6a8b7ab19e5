package aggregator

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/weekendly/internal/constants"
	"github.com/julianstephens/weekendly/internal/models"
	"github.com/julianstephens/weekendly/internal/sources"
)

func TestFeed_LatestWins(t *testing.T) {
	started := make(chan struct{})
	feed := NewFeed(func(ctx context.Context, filters models.SearchFilters) models.ActivityResponse {
		if filters.Query == "old" {
			close(started)
			<-ctx.Done()
			return models.Fail[[]models.Activity](ctx.Err(), constants.SourceAPI)
		}
		return models.OK(acts(filters.Query, 1), constants.SourceAPI)
	})

	var wg sync.WaitGroup
	var oldAccepted bool
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, oldAccepted = feed.Load(context.Background(), models.SearchFilters{Query: "old"})
	}()

	<-started
	resp, ok := feed.Load(context.Background(), models.SearchFilters{Query: "new"})
	require.True(t, ok)
	assert.Equal(t, "new-0", resp.Data[0].ID)

	wg.Wait()
	assert.False(t, oldAccepted, "stale generation must be discarded")

	latest, gen := feed.Latest()
	assert.Equal(t, uint64(2), gen)
	assert.Equal(t, "new-0", latest.Data[0].ID)
}

func TestFeed_SequentialLoads(t *testing.T) {
	feed := NewFeed(func(_ context.Context, filters models.SearchFilters) models.ActivityResponse {
		return models.OK(acts(filters.Query, 1), constants.SourceAPI)
	})

	_, gen := feed.Latest()
	assert.Equal(t, uint64(0), gen)

	_, ok := feed.Load(context.Background(), models.SearchFilters{Query: "one"})
	assert.True(t, ok)
	_, ok = feed.Load(context.Background(), models.SearchFilters{Query: "two"})
	assert.True(t, ok)

	latest, gen := feed.Latest()
	assert.Equal(t, uint64(2), gen)
	assert.Equal(t, "two-0", latest.Data[0].ID)
}

func TestFeed_Cancel(t *testing.T) {
	started := make(chan struct{})
	feed := NewFeed(func(ctx context.Context, _ models.SearchFilters) models.ActivityResponse {
		close(started)
		select {
		case <-ctx.Done():
			return models.Fail[[]models.Activity](ctx.Err(), constants.SourceAPI)
		case <-time.After(5 * time.Second):
			return models.OK([]models.Activity{}, constants.SourceAPI)
		}
	})

	done := make(chan models.ActivityResponse, 1)
	go func() {
		resp, _ := feed.Load(context.Background(), models.SearchFilters{})
		done <- resp
	}()

	<-started
	feed.Cancel()

	select {
	case resp := <-done:
		assert.False(t, resp.Success)
	case <-time.After(2 * time.Second):
		t.Fatal("Cancel did not stop the in-flight load")
	}
}

func TestFeed_WithManager(t *testing.T) {
	m := New([]sources.Adapter{&stubAdapter{name: "a", live: acts("a", 3)}}, seeded())
	feed := NewFeed(m.GetMixedActivities)

	resp, ok := feed.Load(context.Background(), models.SearchFilters{})
	require.True(t, ok)
	assert.Len(t, resp.Data, 3)
}
