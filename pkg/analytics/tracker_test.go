package analytics_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gastropartner/gastropartner/pkg/analytics"
)

type memStore struct {
	mu      sync.Mutex
	batches [][]analytics.Event
	gate    chan struct{} // when set, SaveBatch blocks until closed
	started chan struct{} // signals the first SaveBatch call
}

func (s *memStore) SaveBatch(_ context.Context, events []analytics.Event) error {
	if s.started != nil {
		select {
		case s.started <- struct{}{}:
		default:
		}
	}
	if s.gate != nil {
		<-s.gate
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	batch := make([]analytics.Event, len(events))
	copy(batch, events)
	s.batches = append(s.batches, batch)
	return nil
}

func (s *memStore) total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int
	for _, b := range s.batches {
		n += len(b)
	}
	return n
}

func event(name string) analytics.Event {
	return analytics.NewEvent(uuid.New(), nil, analytics.EventTypeUsage, name, nil)
}

func TestAsyncTracker(t *testing.T) {
	t.Parallel()

	t.Run("close flushes buffered events", func(t *testing.T) {
		t.Parallel()

		store := &memStore{}
		tracker := analytics.NewAsyncTracker(store,
			analytics.WithBatchSize(100),
			analytics.WithFlushInterval(time.Hour),
		)

		for range 10 {
			tracker.Track(context.Background(), event("ingredient_created"))
		}
		require.NoError(t, tracker.Close(context.Background()))

		assert.Equal(t, 10, store.total())
		assert.Zero(t, tracker.Dropped())
	})

	t.Run("flushes full batches without waiting for the ticker", func(t *testing.T) {
		t.Parallel()

		store := &memStore{}
		tracker := analytics.NewAsyncTracker(store,
			analytics.WithBatchSize(2),
			analytics.WithFlushInterval(time.Hour),
		)

		for range 4 {
			tracker.Track(context.Background(), event("limit_hit"))
		}

		require.Eventually(t, func() bool { return store.total() == 4 }, time.Second, 5*time.Millisecond)
		require.NoError(t, tracker.Close(context.Background()))
	})

	t.Run("drops instead of blocking when the buffer is full", func(t *testing.T) {
		t.Parallel()

		gate := make(chan struct{})
		store := &memStore{gate: gate, started: make(chan struct{}, 1)}
		tracker := analytics.NewAsyncTracker(store,
			analytics.WithBufferSize(1),
			analytics.WithBatchSize(1),
			analytics.WithFlushInterval(time.Hour),
		)

		// First event reaches the store and parks there on the gate.
		tracker.Track(context.Background(), event("a"))
		<-store.started

		// Second event fills the one-slot buffer; the rest must be dropped
		// without blocking this goroutine.
		tracker.Track(context.Background(), event("b"))
		done := make(chan struct{})
		go func() {
			for range 20 {
				tracker.Track(context.Background(), event("overflow"))
			}
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("Track blocked on a full buffer")
		}
		assert.GreaterOrEqual(t, tracker.Dropped(), int64(19))

		close(gate)
		require.NoError(t, tracker.Close(context.Background()))
	})

	t.Run("track racing close never panics", func(t *testing.T) {
		t.Parallel()

		store := &memStore{}
		tracker := analytics.NewAsyncTracker(store, analytics.WithBufferSize(4))

		var wg sync.WaitGroup
		for range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for range 200 {
					tracker.Track(context.Background(), event("racing"))
				}
			}()
		}

		require.NoError(t, tracker.Close(context.Background()))
		wg.Wait()
	})

	t.Run("events after close are dropped", func(t *testing.T) {
		t.Parallel()

		store := &memStore{}
		tracker := analytics.NewAsyncTracker(store)
		require.NoError(t, tracker.Close(context.Background()))

		tracker.Track(context.Background(), event("late"))
		assert.Equal(t, int64(1), tracker.Dropped())
		assert.Zero(t, store.total())
	})
}

func TestNewEvent(t *testing.T) {
	t.Parallel()

	orgID := uuid.New()
	userID := uuid.New()

	ev := analytics.NewEvent(orgID, &userID, analytics.EventTypeLimit, analytics.EventLimitHit, map[string]any{
		"resource": "recipes",
	})

	assert.Equal(t, orgID, ev.OrganizationID)
	require.NotNil(t, ev.UserID)
	assert.Equal(t, userID, *ev.UserID)
	assert.Equal(t, analytics.EventTypeLimit, ev.EventType)
	assert.Equal(t, "limit_hit", ev.EventName)
	assert.Equal(t, "recipes", ev.Properties["resource"])
	assert.False(t, ev.CreatedAt.IsZero())
	assert.Equal(t, time.UTC, ev.CreatedAt.Location())
}
