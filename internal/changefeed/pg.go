package changefeed

import (
	"context"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rupaladventures/basecamp/internal/domain"
)

// PGSource listens for the notifications the record_changes trigger sends.
// It holds one connection taken out of the pool for its whole lifetime and
// reconnects with exponential backoff when that connection drops.
type PGSource struct {
	pool    *pgxpool.Pool
	channel string
	logger  *slog.Logger

	MinBackoff time.Duration
	MaxBackoff time.Duration
}

// NewPGSource returns a source on Channel.
func NewPGSource(pool *pgxpool.Pool, logger *slog.Logger) *PGSource {
	return &PGSource{
		pool:       pool,
		channel:    Channel,
		logger:     logger,
		MinBackoff: 500 * time.Millisecond,
		MaxBackoff: 30 * time.Second,
	}
}

// Listen subscribes and starts forwarding events in a goroutine.
func (s *PGSource) Listen(ctx context.Context) (<-chan domain.ChangeEvent, error) {
	conn, err := s.listen(ctx)
	if err != nil {
		return nil, err
	}
	out := make(chan domain.ChangeEvent, 16)
	go s.run(ctx, conn, out)
	return out, nil
}

func (s *PGSource) listen(ctx context.Context) (*pgx.Conn, error) {
	pc, err := s.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	// A LISTEN connection must not return to the pool.
	conn := pc.Hijack()
	if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{s.channel}.Sanitize()); err != nil {
		conn.Close(context.Background())
		return nil, err
	}
	return conn, nil
}

func (s *PGSource) run(ctx context.Context, conn *pgx.Conn, out chan<- domain.ChangeEvent) {
	defer close(out)
	defer func() {
		if conn != nil {
			conn.Close(context.Background())
		}
	}()

	backoff := s.MinBackoff
	for {
		if conn == nil {
			c, err := s.listen(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				s.logger.Warn("changefeed: relisten failed", "error", err, "retry_in", backoff)
				select {
				case <-ctx.Done():
					return
				case <-time.After(backoff):
				}
				backoff = min(backoff*2, s.MaxBackoff)
				continue
			}
			s.logger.Info("changefeed: listening again", "channel", s.channel)
			conn, backoff = c, s.MinBackoff
		}

		n, err := conn.WaitForNotification(ctx)
		if err != nil {
			conn.Close(context.Background())
			conn = nil
			if ctx.Err() != nil {
				return
			}
			s.logger.Warn("changefeed: connection lost", "error", err)
			continue
		}

		ev, err := Decode(n.Payload)
		if err != nil {
			s.logger.Warn("changefeed: dropping notification", "error", err, "payload", n.Payload)
			continue
		}
		select {
		case out <- ev:
		case <-ctx.Done():
			return
		}
	}
}
