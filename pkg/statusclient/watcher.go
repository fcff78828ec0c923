package statusclient

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

type FetchFunc[P, T any] func(ctx context.Context, params P) (T, error)

// Result is one completed fetch. Err is set instead of Value on failure.
type Result[T any] struct {
	Generation uint64
	Value      T
	Err        error
	FetchedAt  time.Time
}

// Watcher keeps at most one fetch in flight. Every parameter change or manual
// refresh starts a new generation and cancels the previous request; results
// from older generations are dropped. Polling never retries on its own.
type Watcher[P, T any] struct {
	fetch    FetchFunc[P, T]
	interval time.Duration
	logger   zerolog.Logger

	mu      sync.Mutex
	params  P
	changed chan struct{}
	refresh chan struct{}
	results chan Result[T]
}

func NewWatcher[P, T any](fetch FetchFunc[P, T], params P, interval time.Duration, logger zerolog.Logger) *Watcher[P, T] {
	return &Watcher[P, T]{
		fetch:    fetch,
		interval: interval,
		logger:   logger,
		params:   params,
		changed:  make(chan struct{}, 1),
		refresh:  make(chan struct{}, 1),
		results:  make(chan Result[T]),
	}
}

// Results is closed when Run returns.
func (w *Watcher[P, T]) Results() <-chan Result[T] { return w.results }

func (w *Watcher[P, T]) Params() P {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.params
}

// SetParams never blocks; only the latest value is fetched.
func (w *Watcher[P, T]) SetParams(p P) {
	w.mu.Lock()
	w.params = p
	w.mu.Unlock()
	notify(w.changed)
}

// Refresh is the manual retry.
func (w *Watcher[P, T]) Refresh() { notify(w.refresh) }

func notify(ch chan struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}

// Run fetches immediately, then on every tick, parameter change or refresh,
// until ctx is cancelled.
func (w *Watcher[P, T]) Run(ctx context.Context) {
	defer close(w.results)

	var ticks <-chan time.Time
	if w.interval > 0 {
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()
		ticks = ticker.C
	}

	var (
		gen      uint64
		inFlight bool
		cancel   context.CancelFunc = func() {}
		done                        = make(chan Result[T])
	)
	defer func() { cancel() }()

	start := func() {
		cancel()
		gen++
		inFlight = true

		fctx, c := context.WithCancel(ctx)
		cancel = c
		g, p := gen, w.Params()
		go func() {
			v, err := w.fetch(fctx, p)
			select {
			case done <- Result[T]{Generation: g, Value: v, Err: err, FetchedAt: time.Now()}:
			case <-ctx.Done():
			}
		}()
	}

	start()
	for {
		select {
		case <-ctx.Done():
			return

		case <-ticks:
			// polls wait for the current request
			if !inFlight {
				start()
			}

		case <-w.changed:
			start()

		case <-w.refresh:
			start()

		case res := <-done:
			if res.Generation != gen {
				w.logger.Debug().Uint64("generation", res.Generation).Uint64("current", gen).Msg("dropping stale result")
				continue
			}
			inFlight = false
			select {
			case w.results <- res:
			case <-ctx.Done():
				return
			}
		}
	}
}
