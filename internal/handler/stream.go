package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rupaladventures/basecamp/internal/changefeed"
	"github.com/rupaladventures/basecamp/internal/domain"
)

// Stream handles GET /admin/stream?kind=inquiries|bookings plus the list
// keys. It answers with server-sent events: a "page" event carrying the
// current result page, then another after every debounced burst of change
// notifications. A page identical to the last one sent is skipped.
func (s *Server) Stream(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if err := rejectUnknownKeys(q, []string{"kind"}, listKeys); err != nil {
		s.respondErr(w, r, err, "")
		return
	}
	query, err := parseListQuery(q)
	if err != nil {
		s.respondErr(w, r, err, "")
		return
	}

	var fetch func(ctx context.Context) (any, error)
	switch kind := domain.RecordKind(q.Get("kind")); kind {
	case domain.KindInquiries:
		fetch = func(ctx context.Context) (any, error) { return s.inquiries.List(ctx, query) }
	case domain.KindBookings:
		fetch = func(ctx context.Context) (any, error) { return s.bookings.List(ctx, query) }
	default:
		s.respondErr(w, r, newBadRequest("kind must be inquiries or bookings"), "")
		return
	}

	// The first page is fetched before the stream opens so a bad query still
	// gets a plain error response.
	first, err := fetch(r.Context())
	if err != nil {
		s.respondErr(w, r, err, "")
		return
	}

	ctx, cancel := context.WithCancel(r.Context())
	events, unsubscribe := s.hub.Subscribe()
	defer unsubscribe()
	defer cancel()

	rc := http.NewResponseController(w)
	// The server's write timeout would otherwise end the stream.
	_ = rc.SetWriteDeadline(time.Time{})

	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	sse := &eventWriter{w: w, rc: rc}
	if err := sse.page(first); err != nil {
		return
	}
	s.logger.DebugContext(ctx, "handler: admin stream opened", "kind", q.Get("kind"))

	views := changefeed.NewRefresher(fetch, s.debounce, s.logger).Follow(ctx, events)
	heartbeat := time.NewTicker(s.heartbeat)
	defer heartbeat.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.DebugContext(ctx, "handler: admin stream closed")
			return
		case v, ok := <-views:
			if !ok {
				return
			}
			if err := sse.page(v); err != nil {
				return
			}
		case <-heartbeat.C:
			if err := sse.comment("ping"); err != nil {
				return
			}
		}
	}
}

// eventWriter frames server-sent events and flushes each one.
type eventWriter struct {
	w    http.ResponseWriter
	rc   *http.ResponseController
	last []byte
}

func (e *eventWriter) page(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("handler: encode stream page: %w", err)
	}
	if bytes.Equal(data, e.last) {
		return nil
	}
	e.last = data
	if _, err := fmt.Fprintf(e.w, "event: page\ndata: %s\n\n", data); err != nil {
		return err
	}
	return e.rc.Flush()
}

func (e *eventWriter) comment(text string) error {
	if _, err := fmt.Fprintf(e.w, ": %s\n\n", text); err != nil {
		return err
	}
	return e.rc.Flush()
}
