// Package service contains the business logic for the Rupal Adventures API.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here; services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/rupaladventures/basecamp/internal/domain"
)

// DefaultStoreTimeout bounds every individual store call.
const DefaultStoreTimeout = 5 * time.Second

// Publisher announces a committed mutation to change feed subscribers.
type Publisher interface {
	Publish(ctx context.Context, ev domain.ChangeEvent) error
}

// Options are shared by the record services.
type Options struct {
	// StoreTimeout bounds each store call. Zero means DefaultStoreTimeout.
	StoreTimeout time.Duration
	// Publisher, when set, is told about every successful create, update
	// and delete. Leave it nil when the store notifies on its own.
	Publisher Publisher
	// Logger defaults to slog.Default().
	Logger *slog.Logger
	// Clock defaults to time.Now.
	Clock func() time.Time
}

func (o Options) withDefaults() Options {
	if o.StoreTimeout <= 0 {
		o.StoreTimeout = DefaultStoreTimeout
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if o.Clock == nil {
		o.Clock = time.Now
	}
	return o
}

// storeCtx derives the context for one store call.
func (o Options) storeCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, o.StoreTimeout)
}

// publish is best effort: the mutation has already committed, so a failed
// announcement is logged and swallowed.
func (o Options) publish(ctx context.Context, kind domain.RecordKind, op domain.ChangeOp, id string) {
	if o.Publisher == nil {
		return
	}
	ctx, cancel := o.storeCtx(context.WithoutCancel(ctx))
	defer cancel()
	ev := domain.ChangeEvent{Table: kind, Op: op, ID: id}
	if err := o.Publisher.Publish(ctx, ev); err != nil {
		o.Logger.Warn("service: publish change failed", "table", kind, "op", op, "id", id, "error", err)
	}
}
