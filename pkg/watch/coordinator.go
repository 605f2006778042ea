package watch

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/autobarrel/pkg/logging"
)

// State is the coordinator's run state.
type State int

const (
	// StateIdle means no pass is in flight.
	StateIdle State = iota
	// StateRunning means a pass is in flight.
	StateRunning
)

// String returns the string representation of the state
func (s State) String() string {
	if s == StateRunning {
		return "running"
	}
	return "idle"
}

// PassFunc runs one full pass.
type PassFunc func(ctx context.Context) error

// Coordinator serializes passes and coalesces the events that arrive while
// one is running. It is owned by the goroutine calling Run.
type Coordinator struct {
	pass    PassFunc
	trigger Trigger
	logger  zerolog.Logger

	state    State
	pending  int
	passes   int
	stopping bool
	done     chan error
}

// NewCoordinator creates a coordinator that runs pass for events accepted
// by trigger.
func NewCoordinator(pass PassFunc, trigger Trigger) *Coordinator {
	return &Coordinator{
		pass:    pass,
		trigger: trigger,
		logger:  logging.GetLogger("watch.coordinator"),
		state:   StateIdle,
		done:    make(chan error, 1),
	}
}

// Run consumes events until ctx is cancelled or events is closed. Either
// way it stops taking new events, waits for an in-flight pass to finish
// without starting a follow-up, and returns the number of passes run. Pass
// errors are logged and never stop the loop.
func (c *Coordinator) Run(ctx context.Context, events <-chan Event) int {
	for {
		if c.stopping && c.state == StateIdle {
			return c.passes
		}

		select {
		case <-ctx.Done():
			c.stop()
			events = nil
			ctx = context.WithoutCancel(ctx)

		case ev, ok := <-events:
			if !ok {
				c.stop()
				events = nil
				continue
			}
			c.handle(ctx, ev)

		case err := <-c.done:
			c.finish(ctx, err)
		}
	}
}

func (c *Coordinator) stop() {
	if c.pending > 0 {
		c.logger.Debug().Int("dropped", c.pending).Msg("Watch stopped with pending changes")
	}
	c.stopping = true
	c.pending = 0
}

func (c *Coordinator) handle(ctx context.Context, ev Event) {
	if !c.trigger.Fires(ev) {
		c.logger.Trace().Str("op", ev.Op.String()).Str("path", ev.Path).Msg("Ignoring event")
		return
	}

	if c.state == StateRunning {
		c.pending++
		c.logger.Debug().
			Str("op", ev.Op.String()).
			Str("path", ev.Path).
			Int("pending", c.pending).
			Msg("Pass in flight, deferring event")
		return
	}

	c.logger.Info().Str("op", ev.Op.String()).Str("path", ev.Path).Msg("Autobarrel running due to change")
	c.start(ctx)
}

func (c *Coordinator) start(ctx context.Context) {
	c.state = StateRunning
	c.passes++
	passCtx := context.WithoutCancel(ctx)
	go func() {
		c.done <- c.pass(passCtx)
	}()
}

func (c *Coordinator) finish(ctx context.Context, err error) {
	c.state = StateIdle
	if err != nil {
		c.logger.Error().Err(err).Msg("Pass failed")
	}

	if c.pending > 0 && !c.stopping {
		c.logger.Info().Int("coalesced", c.pending).Msg("Autobarrel running again for changes made during the last pass")
		c.pending = 0
		c.start(ctx)
	}
}

// State returns the current run state. Only meaningful from the goroutine
// running Run, or after Run returned.
func (c *Coordinator) State() State {
	return c.state
}

// Passes returns how many passes were started.
func (c *Coordinator) Passes() int {
	return c.passes
}
