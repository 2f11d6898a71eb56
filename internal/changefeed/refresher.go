package changefeed

import (
	"context"
	"log/slog"
	"time"

	"github.com/rupaladventures/basecamp/internal/domain"
)

// Refresher keeps a view current by re-running fetch after change events.
//
// Events arriving within the debounce window of the first one are collapsed
// into a single fetch. Fetches never overlap: a burst that ends while a fetch
// is running marks the view dirty, and one more fetch starts as soon as the
// running one returns. Results are delivered in fetch order, so a newer view
// is never overwritten by an older one. A failed fetch delivers nothing and
// the consumer keeps its previous view.
type Refresher[T any] struct {
	fetch    func(ctx context.Context) (T, error)
	debounce time.Duration
	logger   *slog.Logger
}

// NewRefresher returns a Refresher for fetch.
func NewRefresher[T any](fetch func(ctx context.Context) (T, error), debounce time.Duration, logger *slog.Logger) *Refresher[T] {
	return &Refresher[T]{fetch: fetch, debounce: debounce, logger: logger}
}

type fetchResult[T any] struct {
	value T
	err   error
}

// Run fetches once immediately and again after each debounced burst of
// events until ctx is done. The returned channel holds at most one undelivered
// view; a newer view replaces an unread older one. It is closed when Run stops.
func (r *Refresher[T]) Run(ctx context.Context, events <-chan domain.ChangeEvent) <-chan T {
	out := make(chan T, 1)
	go r.loop(ctx, events, out, true)
	return out
}

// Follow is Run for a caller that already holds the current view: nothing
// is fetched until the first burst of events.
func (r *Refresher[T]) Follow(ctx context.Context, events <-chan domain.ChangeEvent) <-chan T {
	out := make(chan T, 1)
	go r.loop(ctx, events, out, false)
	return out
}

func (r *Refresher[T]) loop(ctx context.Context, events <-chan domain.ChangeEvent, out chan T, initial bool) {
	defer close(out)

	results := make(chan fetchResult[T])
	var (
		inFlight bool
		dirty    bool
	)

	start := func() {
		inFlight = true
		go func() {
			v, err := r.fetch(ctx)
			select {
			case results <- fetchResult[T]{value: v, err: err}:
			case <-ctx.Done():
			}
		}()
	}

	timer := time.NewTimer(r.debounce)
	timer.Stop()
	defer timer.Stop()
	var pending <-chan time.Time

	if initial {
		start()
	}

	for {
		select {
		case <-ctx.Done():
			return

		case _, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			if pending == nil {
				timer.Reset(r.debounce)
				pending = timer.C
			}

		case <-pending:
			pending = nil
			if inFlight {
				dirty = true
				continue
			}
			start()

		case res := <-results:
			inFlight = false
			if dirty {
				dirty = false
				start()
			}
			if res.err != nil {
				r.logger.Warn("changefeed: refresh failed, keeping previous view", "error", res.err)
				continue
			}
			select {
			case out <- res.value:
			default:
				select {
				case <-out:
				default:
				}
				out <- res.value
			}
		}
	}
}
