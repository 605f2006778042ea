// Test Type: Unit Test
// Description: Serialized passes and event coalescing

package watch_test

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/autobarrel/pkg/barrel"
	"github.com/arthur-debert/autobarrel/pkg/watch"
)

const waitTimeout = 5 * time.Second

// blockingPass starts, signals, and blocks until released.
type blockingPass struct {
	started chan struct{}
	release chan error
}

func newBlockingPass() *blockingPass {
	return &blockingPass{
		started: make(chan struct{}, 16),
		release: make(chan error),
	}
}

func (p *blockingPass) run(ctx context.Context) error {
	p.started <- struct{}{}
	return <-p.release
}

func (p *blockingPass) waitStarted(t *testing.T) {
	t.Helper()
	select {
	case <-p.started:
	case <-time.After(waitTimeout):
		t.Fatal("pass did not start")
	}
}

func (p *blockingPass) assertNotStarted(t *testing.T) {
	t.Helper()
	select {
	case <-p.started:
		t.Fatal("unexpected pass")
	case <-time.After(50 * time.Millisecond):
	}
}

func newTrigger() watch.Trigger {
	return watch.NewTrigger(barrel.NewConventions(""), []string{"src/**"}, nil)
}

func startCoordinator(ctx context.Context, pass watch.PassFunc) (chan watch.Event, <-chan int) {
	events := make(chan watch.Event)
	result := make(chan int, 1)
	coord := watch.NewCoordinator(pass, newTrigger())
	go func() {
		result <- coord.Run(ctx, events)
	}()
	return events, result
}

func waitResult(t *testing.T, result <-chan int) int {
	t.Helper()
	select {
	case n := <-result:
		return n
	case <-time.After(waitTimeout):
		t.Fatal("coordinator did not return")
		return 0
	}
}

func TestCoordinator_CoalescesEventsDuringPass(t *testing.T) {
	pass := newBlockingPass()
	events, result := startCoordinator(context.Background(), pass.run)

	events <- watch.Event{Op: watch.OpAdd, Path: "src/a.ts"}
	pass.waitStarted(t)

	// Sends are unbuffered, so each is consumed before the next one.
	for _, p := range []string{"src/b.ts", "src/c.ts", "src/d/e.ts"} {
		events <- watch.Event{Op: watch.OpAdd, Path: p}
	}
	events <- watch.Event{Op: watch.OpRemove, Path: "src/a.ts"}
	pass.assertNotStarted(t)

	pass.release <- nil
	pass.waitStarted(t)
	pass.assertNotStarted(t)

	pass.release <- nil
	close(events)
	assert.Equal(t, 2, waitResult(t, result))
}

func TestCoordinator_BarrelWritesDoNotRetrigger(t *testing.T) {
	pass := newBlockingPass()
	events, result := startCoordinator(context.Background(), pass.run)

	events <- watch.Event{Op: watch.OpAdd, Path: "src/a.ts"}
	pass.waitStarted(t)

	events <- watch.Event{Op: watch.OpAdd, Path: "src/index.ts"}
	events <- watch.Event{Op: watch.OpChange, Path: "src/index.ts"}
	events <- watch.Event{Op: watch.OpRemove, Path: "src/old/index.ts"}

	pass.release <- nil
	pass.assertNotStarted(t)

	events <- watch.Event{Op: watch.OpAdd, Path: "src/index.ts"}
	pass.assertNotStarted(t)

	close(events)
	assert.Equal(t, 1, waitResult(t, result))
}

func TestCoordinator_SequentialEventsRunSeparatePasses(t *testing.T) {
	pass := newBlockingPass()
	events, result := startCoordinator(context.Background(), pass.run)

	for i := 0; i < 3; i++ {
		events <- watch.Event{Op: watch.OpAdd, Path: "src/a.ts"}
		pass.waitStarted(t)
		pass.release <- nil
	}

	close(events)
	assert.Equal(t, 3, waitResult(t, result))
}

func TestCoordinator_PassErrorDoesNotStopWatching(t *testing.T) {
	pass := newBlockingPass()
	events, result := startCoordinator(context.Background(), pass.run)

	events <- watch.Event{Op: watch.OpAdd, Path: "src/a.ts"}
	pass.waitStarted(t)
	pass.release <- stderrors.New("disk full")

	events <- watch.Event{Op: watch.OpAdd, Path: "src/b.ts"}
	pass.waitStarted(t)
	pass.release <- nil

	close(events)
	assert.Equal(t, 2, waitResult(t, result))
}

func TestCoordinator_CancelWaitsForInFlightPass(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pass := newBlockingPass()
	events, result := startCoordinator(ctx, pass.run)

	events <- watch.Event{Op: watch.OpAdd, Path: "src/a.ts"}
	pass.waitStarted(t)
	events <- watch.Event{Op: watch.OpAdd, Path: "src/b.ts"}

	cancel()
	select {
	case <-result:
		t.Fatal("returned while a pass was in flight")
	case <-time.After(50 * time.Millisecond):
	}

	pass.release <- nil
	assert.Equal(t, 1, waitResult(t, result))
	pass.assertNotStarted(t)
}

func TestCoordinator_PassContextSurvivesCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	passCtx := make(chan context.Context, 1)
	release := make(chan struct{})
	pass := func(ctx context.Context) error {
		passCtx <- ctx
		<-release
		return nil
	}
	events, result := startCoordinator(ctx, pass)

	events <- watch.Event{Op: watch.OpAdd, Path: "src/a.ts"}
	var got context.Context
	select {
	case got = <-passCtx:
	case <-time.After(waitTimeout):
		t.Fatal("pass did not start")
	}

	cancel()
	require.NoError(t, got.Err())
	close(release)
	assert.Equal(t, 1, waitResult(t, result))
}

func TestCoordinator_InitialState(t *testing.T) {
	coord := watch.NewCoordinator(func(context.Context) error { return nil }, newTrigger())
	assert.Equal(t, watch.StateIdle, coord.State())
	assert.Equal(t, "idle", coord.State().String())
	assert.Equal(t, "running", watch.StateRunning.String())
	assert.Zero(t, coord.Passes())
}
