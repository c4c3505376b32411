package debounce

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// manualClock só avança quando o teste manda.
type manualClock struct {
	mu     sync.Mutex
	now    time.Duration
	timers []*manualTimer
}

type manualTimer struct {
	clock   *manualClock
	at      time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (c *manualClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &manualTimer{clock: c, at: c.now + d, f: f}
	c.timers = append(c.timers, t)
	return t
}

func (t *manualTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	active := !t.stopped && !t.fired
	t.stopped = true
	return active
}

// Advance move o relógio e dispara, fora do lock, os timers vencidos.
func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now += d
	var due []*manualTimer
	for _, t := range c.timers {
		if !t.stopped && !t.fired && t.at <= c.now {
			t.fired = true
			due = append(due, t)
		}
	}
	c.mu.Unlock()

	for _, t := range due {
		t.f()
	}
}

func (c *manualClock) active() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

type recorder[T any] struct {
	mu   sync.Mutex
	args []T
}

func (r *recorder[T]) record(v T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.args = append(r.args, v)
}

func (r *recorder[T]) calls() []T {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]T(nil), r.args...)
}

func TestNew_RejectsNegativeQuiet(t *testing.T) {
	_, err := New(func(int) {}, -time.Millisecond)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestNew_RejectsNilAction(t *testing.T) {
	_, err := New[int](nil, time.Second)
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = Func(nil, time.Second)
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestNew_BurstCollapsesToLastArgument(t *testing.T) {
	clock := &manualClock{}
	rec := &recorder[int]{}

	wrapped, err := New(rec.record, 100*time.Millisecond, WithClock(clock))
	require.NoError(t, err)

	wrapped(1)
	clock.Advance(50 * time.Millisecond)
	wrapped(2)
	clock.Advance(50 * time.Millisecond)
	wrapped(3)

	assert.Empty(t, rec.calls())
	assert.Equal(t, 1, clock.active(), "only one pending timer per wrapper")

	clock.Advance(99 * time.Millisecond)
	assert.Empty(t, rec.calls())

	clock.Advance(1 * time.Millisecond)
	assert.Equal(t, []int{3}, rec.calls())
	assert.Equal(t, 0, clock.active())
}

func TestNew_SpacedCallsFireOncePerCall(t *testing.T) {
	clock := &manualClock{}
	rec := &recorder[string]{}

	wrapped, err := New(rec.record, 10*time.Millisecond, WithClock(clock))
	require.NoError(t, err)

	for _, q := range []string{"a", "ab", "abc"} {
		wrapped(q)
		clock.Advance(11 * time.Millisecond)
	}

	assert.Equal(t, []string{"a", "ab", "abc"}, rec.calls())
}

func TestNew_StormSuppressesExecution(t *testing.T) {
	clock := &manualClock{}
	rec := &recorder[int]{}

	wrapped, err := New(rec.record, 10*time.Millisecond, WithClock(clock))
	require.NoError(t, err)

	for i := 0; i < 100; i++ {
		wrapped(i)
		clock.Advance(9 * time.Millisecond)
	}
	assert.Empty(t, rec.calls())

	clock.Advance(1 * time.Millisecond)
	assert.Equal(t, []int{99}, rec.calls())
}

func TestNew_WrappersAreIndependent(t *testing.T) {
	clock := &manualClock{}
	rec := &recorder[int]{}

	w1, err := New(rec.record, 10*time.Millisecond, WithClock(clock))
	require.NoError(t, err)
	w2, err := New(rec.record, 10*time.Millisecond, WithClock(clock))
	require.NoError(t, err)

	w1(1)
	w2(2)
	assert.Equal(t, 2, clock.active())

	clock.Advance(10 * time.Millisecond)
	assert.ElementsMatch(t, []int{1, 2}, rec.calls())
}

func TestNew_StaleTimerDoesNotFire(t *testing.T) {
	clock := &manualClock{}
	rec := &recorder[int]{}

	wrapped, err := New(rec.record, 10*time.Millisecond, WithClock(clock))
	require.NoError(t, err)

	wrapped(1)
	clock.mu.Lock()
	first := clock.timers[0]
	clock.mu.Unlock()

	wrapped(2)

	// simula um Stop que perdeu a corrida: o callback antigo roda mesmo assim
	first.f()
	assert.Empty(t, rec.calls())

	clock.Advance(10 * time.Millisecond)
	assert.Equal(t, []int{2}, rec.calls())
}

func TestFunc_ZeroArgument(t *testing.T) {
	clock := &manualClock{}
	calls := 0

	wrapped, err := Func(func() { calls++ }, 5*time.Millisecond, WithClock(clock))
	require.NoError(t, err)

	wrapped()
	wrapped()
	clock.Advance(5 * time.Millisecond)
	assert.Equal(t, 1, calls)
}

func TestNew_RealClockTrailingCall(t *testing.T) {
	defer goleak.VerifyNone(t)

	done := make(chan int, 4)
	wrapped, err := New(func(v int) { done <- v }, 20*time.Millisecond)
	require.NoError(t, err)

	wrapped(1)
	wrapped(2)
	wrapped(3)

	select {
	case got := <-done:
		assert.Equal(t, 3, got)
	case <-time.After(time.Second):
		t.Fatalf("timeout waiting debounced call")
	}

	select {
	case got := <-done:
		t.Fatalf("unexpected second invocation with %d", got)
	case <-time.After(60 * time.Millisecond):
	}
}

func TestNew_ZeroQuietIsAllowed(t *testing.T) {
	defer goleak.VerifyNone(t)

	done := make(chan struct{}, 1)
	wrapped, err := Func(func() { done <- struct{}{} }, 0)
	require.NoError(t, err)

	wrapped()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("timeout waiting zero-quiet call")
	}
}
