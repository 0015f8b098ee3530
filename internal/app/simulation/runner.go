package simulation

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

var (
	ErrRunnerActive     = errors.New("runner already started")
	ErrRunnerNotRunning = errors.New("runner not running")
	ErrRunnerNotPaused  = errors.New("runner not paused")
)

type RunnerState string

const (
	RunnerStopped RunnerState = "stopped"
	RunnerRunning RunnerState = "running"
	RunnerPaused  RunnerState = "paused"
)

type Cycler interface {
	Cycle(ctx context.Context) (CycleResponse, error)
}

type RunnerStatus struct {
	State     RunnerState `json:"state"`
	Cycles    uint64      `json:"cycles"`
	DelayMS   int64       `json:"delay_ms"`
	LastError string      `json:"last_error,omitempty"`
}

// Runner drives cycles in the background. State changes only take effect
// between cycles: a cycle in progress always completes.
type Runner struct {
	sim    Cycler
	delay  time.Duration
	logger *zap.Logger

	mu      sync.Mutex
	state   RunnerState
	cycles  uint64
	lastErr error
	cancel  context.CancelFunc
	done    chan struct{}
	wake    chan struct{}
}

func NewRunner(sim Cycler, delay time.Duration, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	if delay < 0 {
		delay = 0
	}
	return &Runner{sim: sim, delay: delay, logger: logger, state: RunnerStopped}
}

func (r *Runner) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != RunnerStopped {
		return ErrRunnerActive
	}
	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	r.done = make(chan struct{})
	r.wake = make(chan struct{}, 1)
	r.state = RunnerRunning
	r.lastErr = nil
	go r.loop(ctx, r.done, r.wake)
	r.logger.Info("runner started", zap.Duration("delay", r.delay))
	return nil
}

func (r *Runner) Pause() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != RunnerRunning {
		return ErrRunnerNotRunning
	}
	r.state = RunnerPaused
	r.logger.Info("runner paused", zap.Uint64("cycles", r.cycles))
	return nil
}

func (r *Runner) Resume() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != RunnerPaused {
		return ErrRunnerNotPaused
	}
	r.state = RunnerRunning
	select {
	case r.wake <- struct{}{}:
	default:
	}
	r.logger.Info("runner resumed")
	return nil
}

// Stop waits for the cycle in progress, if any, and is a no-op when the
// runner is already stopped.
func (r *Runner) Stop() {
	r.mu.Lock()
	cancel, done := r.cancel, r.done
	r.cancel = nil
	r.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
	r.mu.Lock()
	r.state = RunnerStopped
	r.mu.Unlock()
	r.logger.Info("runner stopped")
}

func (r *Runner) Status() RunnerStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := RunnerStatus{State: r.state, Cycles: r.cycles, DelayMS: r.delay.Milliseconds()}
	if r.lastErr != nil {
		out.LastError = r.lastErr.Error()
	}
	return out
}

func (r *Runner) loop(ctx context.Context, done chan struct{}, wake chan struct{}) {
	defer close(done)
	for {
		if !r.waitRunnable(ctx, wake) {
			return
		}
		if _, err := r.sim.Cycle(context.WithoutCancel(ctx)); err != nil {
			r.logger.Error("runner cycle failed", zap.Error(err))
			r.mu.Lock()
			r.lastErr = err
			r.state = RunnerStopped
			if r.cancel != nil {
				r.cancel()
				r.cancel = nil
			}
			r.mu.Unlock()
			return
		}
		r.mu.Lock()
		r.cycles++
		r.mu.Unlock()

		if r.delay > 0 {
			timer := time.NewTimer(r.delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
			}
		} else if ctx.Err() != nil {
			return
		}
	}
}

func (r *Runner) waitRunnable(ctx context.Context, wake chan struct{}) bool {
	for {
		r.mu.Lock()
		state := r.state
		r.mu.Unlock()
		if ctx.Err() != nil {
			return false
		}
		if state == RunnerRunning {
			return true
		}
		select {
		case <-ctx.Done():
			return false
		case <-wake:
		}
	}
}
