// Package changefeed delivers row-level change notifications for the
// inquiries and bookings tables and turns them into debounced re-fetches.
//
// Delivery is at least once. An event only says "the view may be stale";
// consumers re-run their full query rather than patching in the change.
package changefeed

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rupaladventures/basecamp/internal/domain"
)

// Channel is the Postgres NOTIFY channel and Redis pub/sub channel.
const Channel = "record_changes"

// Source yields change events until ctx is done, then closes the channel.
// An error is returned only when the initial subscription cannot be made.
type Source interface {
	Listen(ctx context.Context) (<-chan domain.ChangeEvent, error)
}

// Publisher announces a committed change to other processes.
type Publisher interface {
	Publish(ctx context.Context, ev domain.ChangeEvent) error
}

// Decode parses a JSON notification payload.
func Decode(payload string) (domain.ChangeEvent, error) {
	var ev domain.ChangeEvent
	if err := json.Unmarshal([]byte(payload), &ev); err != nil {
		return domain.ChangeEvent{}, fmt.Errorf("changefeed: decode payload: %w", err)
	}
	if !ev.Table.Valid() {
		return domain.ChangeEvent{}, fmt.Errorf("changefeed: unknown table %q", ev.Table)
	}
	return ev, nil
}

// Encode renders ev as the JSON payload Decode accepts.
func Encode(ev domain.ChangeEvent) (string, error) {
	b, err := json.Marshal(ev)
	if err != nil {
		return "", fmt.Errorf("changefeed: encode payload: %w", err)
	}
	return string(b), nil
}
