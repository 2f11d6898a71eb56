package changefeed_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rupaladventures/basecamp/internal/changefeed"
	"github.com/rupaladventures/basecamp/internal/domain"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func receive[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v, ok := <-ch:
		require.True(t, ok, "channel closed")
		return v
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for value")
	}
	var zero T
	return zero
}

func assertQuiet[T any](t *testing.T, ch <-chan T, d time.Duration) {
	t.Helper()
	select {
	case v := <-ch:
		t.Fatalf("unexpected value %v", v)
	case <-time.After(d):
	}
}

func TestDecode(t *testing.T) {
	ev, err := changefeed.Decode(`{"table":"bookings","op":"UPDATE","id":"6f1c"}`)
	require.NoError(t, err)
	assert.Equal(t, domain.ChangeEvent{Table: domain.KindBookings, Op: domain.OpUpdate, ID: "6f1c"}, ev)

	_, err = changefeed.Decode(`{"table":"posts","op":"INSERT","id":"1"}`)
	assert.Error(t, err)

	_, err = changefeed.Decode(`not json`)
	assert.Error(t, err)
}

func TestEncodeDecode(t *testing.T) {
	in := domain.ChangeEvent{Table: domain.KindInquiries, Op: domain.OpDelete, ID: "42"}
	payload, err := changefeed.Encode(in)
	require.NoError(t, err)

	out, err := changefeed.Decode(payload)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

// chanSource is a Source backed by a channel the test controls.
type chanSource struct {
	ch  chan domain.ChangeEvent
	err error
}

func (s chanSource) Listen(context.Context) (<-chan domain.ChangeEvent, error) {
	return s.ch, s.err
}

var _ changefeed.Source = chanSource{}

func TestHub_FanOut(t *testing.T) {
	hub := changefeed.NewHub(discard)
	a, unsubA := hub.Subscribe()
	b, unsubB := hub.Subscribe()
	defer unsubB()

	src := chanSource{ch: make(chan domain.ChangeEvent)}
	done := make(chan error, 1)
	go func() { done <- hub.Run(context.Background(), src) }()

	ev := domain.ChangeEvent{Table: domain.KindBookings, Op: domain.OpInsert, ID: "1"}
	src.ch <- ev
	assert.Equal(t, ev, receive(t, a))
	assert.Equal(t, ev, receive(t, b))

	unsubA()
	_, open := <-a
	assert.False(t, open, "unsubscribe closes the channel")

	close(src.ch)
	assert.NoError(t, receive(t, done))
}

func TestHub_SlowSubscriberKeepsOnePending(t *testing.T) {
	hub := changefeed.NewHub(discard)
	ch, unsub := hub.Subscribe()
	defer unsub()

	for i := range 5 {
		require.NoError(t, hub.Publish(context.Background(), domain.ChangeEvent{Table: domain.KindInquiries, Op: domain.OpInsert, ID: string(rune('0' + i))}))
	}

	first := receive(t, ch)
	assert.Equal(t, "0", first.ID)
	assertQuiet(t, ch, 20*time.Millisecond)
}

func TestHub_RunListenError(t *testing.T) {
	hub := changefeed.NewHub(discard)
	boom := errors.New("listen failed")

	err := hub.Run(context.Background(), chanSource{err: boom})

	assert.ErrorIs(t, err, boom)
}

func TestRedis_PublishReachesSource(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rdb, err := changefeed.OpenRedis(ctx, changefeed.RedisConfig{Addr: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { rdb.Close() })

	events, err := changefeed.NewRedisSource(rdb, discard).Listen(ctx)
	require.NoError(t, err)

	ev := domain.ChangeEvent{Table: domain.KindBookings, Op: domain.OpUpdate, ID: "abc"}
	require.NoError(t, changefeed.NewRedisPublisher(rdb).Publish(ctx, ev))

	assert.Equal(t, ev, receive(t, events))

	cancel()
	require.Eventually(t, func() bool {
		select {
		case _, ok := <-events:
			return !ok
		default:
			return false
		}
	}, 2*time.Second, 10*time.Millisecond, "source closes after ctx is done")
}

func TestRedis_DropsMalformedPayload(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rdb, err := changefeed.OpenRedis(ctx, changefeed.RedisConfig{Addr: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { rdb.Close() })

	events, err := changefeed.NewRedisSource(rdb, discard).Listen(ctx)
	require.NoError(t, err)

	mr.Publish(changefeed.Channel, "garbage")
	good := domain.ChangeEvent{Table: domain.KindInquiries, Op: domain.OpInsert, ID: "9"}
	require.NoError(t, changefeed.NewRedisPublisher(rdb).Publish(ctx, good))

	assert.Equal(t, good, receive(t, events))
}

func TestOpenRedis_RequiresAddr(t *testing.T) {
	_, err := changefeed.OpenRedis(context.Background(), changefeed.RedisConfig{})
	assert.Error(t, err)
}
