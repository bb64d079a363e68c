package analytics

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// Tracker accepts analytics events. Implementations must not block the
// caller and must never return an error to it.
type Tracker interface {
	Track(ctx context.Context, event Event)
}

// Store persists batches of events.
type Store interface {
	SaveBatch(ctx context.Context, events []Event) error
}

// AsyncTracker buffers events in a bounded channel and flushes them to a
// Store from a background worker. When the buffer is full new events are
// dropped and counted; callers are never blocked.
type AsyncTracker struct {
	events  chan Event
	store   Store
	log     *slog.Logger
	wg      sync.WaitGroup
	once    sync.Once
	closed  chan struct{}
	dropped atomic.Int64

	batchSize  int
	flushEvery time.Duration
}

// TrackerOption configures an AsyncTracker.
type TrackerOption func(*AsyncTracker)

// WithBufferSize sets the channel capacity. Events beyond it are dropped.
func WithBufferSize(n int) TrackerOption {
	return func(t *AsyncTracker) {
		if n > 0 {
			t.events = make(chan Event, n)
		}
	}
}

// WithBatchSize sets the maximum number of events written per Store call.
func WithBatchSize(n int) TrackerOption {
	return func(t *AsyncTracker) {
		if n > 0 {
			t.batchSize = n
		}
	}
}

// WithFlushInterval sets how often buffered events are flushed even when
// the batch is not full.
func WithFlushInterval(d time.Duration) TrackerOption {
	return func(t *AsyncTracker) {
		if d > 0 {
			t.flushEvery = d
		}
	}
}

// WithLogger supplies a logger for flush failures and drop reporting.
func WithLogger(log *slog.Logger) TrackerOption {
	return func(t *AsyncTracker) {
		if log != nil {
			t.log = log
		}
	}
}

// NewAsyncTracker creates a started tracker. Call Close on shutdown to
// flush remaining events.
func NewAsyncTracker(store Store, opts ...TrackerOption) *AsyncTracker {
	t := &AsyncTracker{
		events:     make(chan Event, 1024),
		store:      store,
		log:        slog.Default(),
		closed:     make(chan struct{}),
		batchSize:  64,
		flushEvery: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(t)
	}

	t.wg.Add(1)
	go t.worker()
	return t
}

// Track enqueues an event without blocking. Events arriving after Close
// or when the buffer is full are dropped.
func (t *AsyncTracker) Track(_ context.Context, event Event) {
	select {
	case <-t.closed:
		t.dropped.Add(1)
		return
	default:
	}

	select {
	case t.events <- event:
	default:
		t.dropped.Add(1)
	}
}

// Dropped returns the number of events discarded because the tracker was
// full or closed.
func (t *AsyncTracker) Dropped() int64 {
	return t.dropped.Load()
}

// Close stops accepting events, flushes the remaining buffer and waits
// for the worker to finish or the context to expire. The events channel
// itself is never closed: a Track racing Close must not be able to send
// on a closed channel.
func (t *AsyncTracker) Close(ctx context.Context) error {
	t.once.Do(func() {
		close(t.closed)
	})

	done := make(chan struct{})
	go func() {
		t.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (t *AsyncTracker) worker() {
	defer t.wg.Done()

	ticker := time.NewTicker(t.flushEvery)
	defer ticker.Stop()

	batch := make([]Event, 0, t.batchSize)

	flush := func() {
		if len(batch) == 0 {
			return
		}
		// Detached context: the producing request may already be gone.
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := t.store.SaveBatch(ctx, batch); err != nil {
			t.log.Error("analytics flush failed", "error", err, "events", len(batch))
		}
		cancel()
		batch = batch[:0]
	}

	for {
		select {
		case event := <-t.events:
			batch = append(batch, event)
			if len(batch) >= t.batchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		case <-t.closed:
			// Drain whatever made it into the buffer before shutdown. A
			// Track that slipped past the closed check at worst leaves
			// its event behind in the buffer.
			for {
				select {
				case event := <-t.events:
					batch = append(batch, event)
					if len(batch) >= t.batchSize {
						flush()
					}
				default:
					flush()
					return
				}
			}
		}
	}
}
