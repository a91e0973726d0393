package watch

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

const interval = 2 * time.Second

type result struct {
	serials []string
	err     error
}

// scriptedLister returns one scripted result per poll and signals each poll.
type scriptedLister struct {
	mu     sync.Mutex
	script []result
	polled chan struct{}
}

func newScriptedLister(script ...result) *scriptedLister {
	return &scriptedLister{script: script, polled: make(chan struct{}, len(script)+8)}
}

func (l *scriptedLister) OnlineSerials(context.Context) ([]string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	defer func() { l.polled <- struct{}{} }()
	if len(l.script) == 0 {
		return nil, nil
	}
	r := l.script[0]
	if len(l.script) > 1 {
		l.script = l.script[1:]
	}
	return r.serials, r.err
}

func waitPoll(t *testing.T, l *scriptedLister) {
	t.Helper()
	select {
	case <-l.polled:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for poll")
	}
}

func expectHandled(t *testing.T, ch <-chan string, want string) {
	t.Helper()
	select {
	case got := <-ch:
		assert.Equal(t, want, got)
	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for %s", want)
	}
}

func startWatcher(t *testing.T, l *scriptedLister, opts ...Option) (*clockwork.FakeClock, <-chan string, func()) {
	t.Helper()
	clock := clockwork.NewFakeClock()
	handled := make(chan string, 16)

	w := New(l, interval, zap.NewNop(), append(opts, WithClock(clock))...)
	w.OnDevice(func(_ context.Context, serial string) {
		handled <- serial
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		w.Run(ctx)
	}()

	stop := func() {
		cancel()
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("watcher did not stop")
		}
	}
	return clock, handled, stop
}

func TestWatcher_NewAndReattachedDevices(t *testing.T) {
	defer goleak.VerifyNone(t)

	l := newScriptedLister(
		result{serials: []string{"a"}},
		result{serials: []string{"a", "b"}},
		result{serials: []string{"b"}},
		result{serials: []string{"a", "b"}},
	)
	clock, handled, stop := startWatcher(t, l)
	defer stop()

	waitPoll(t, l)
	expectHandled(t, handled, "a")

	clock.Advance(interval)
	waitPoll(t, l)
	expectHandled(t, handled, "b")

	clock.Advance(interval)
	waitPoll(t, l)

	clock.Advance(interval)
	waitPoll(t, l)
	expectHandled(t, handled, "a")

	assert.Empty(t, handled)
}

func TestWatcher_ErrorKeepsState(t *testing.T) {
	defer goleak.VerifyNone(t)

	l := newScriptedLister(
		result{serials: []string{"a"}},
		result{err: errors.New("adb server restarting")},
		result{serials: []string{"a"}},
	)
	clock, handled, stop := startWatcher(t, l)
	defer stop()

	waitPoll(t, l)
	expectHandled(t, handled, "a")

	clock.Advance(interval)
	waitPoll(t, l)
	clock.Advance(interval)
	waitPoll(t, l)

	assert.Empty(t, handled, "a is still known after a failed poll")
}

func TestWatcher_Serials(t *testing.T) {
	defer goleak.VerifyNone(t)

	l := newScriptedLister(result{serials: []string{"a", "b", "c"}})
	_, handled, stop := startWatcher(t, l, WithSerials([]string{"c"}))
	defer stop()

	waitPoll(t, l)
	expectHandled(t, handled, "c")
	assert.Empty(t, handled)
}

func TestWatcher_StopsOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	l := newScriptedLister(result{serials: nil})
	w := New(l, interval, zap.NewNop(), WithClock(clockwork.NewFakeClock()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		w.Run(ctx)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		require.FailNow(t, "watcher did not return after cancel")
	}
}
