// Package startStop wraps a pair of start/stop functions into a
// restartable background task with uptime and error tracking.
package startStop

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/nabbar/cybercache/runner"
)

// FuncStart is the long-running body of the task. It should block until ctx
// is cancelled and return any terminal error.
type FuncStart func(ctx context.Context) error

// FuncStop releases resources held by a running task. It is called once the
// task's context has been cancelled.
type FuncStop func(ctx context.Context) error

// StartStop manages a single restartable background goroutine.
type StartStop interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	Restart(ctx context.Context) error
	IsRunning() bool
	Uptime() time.Duration
	ErrorsLast() error
	ErrorsList() []error
}

const maxErrors = 32

type runnerState struct {
	mu      sync.Mutex
	fnStart FuncStart
	fnStop  FuncStop

	cancel  context.CancelFunc
	done    chan struct{}
	running bool
	started time.Time

	errs []error
}

// New builds a StartStop around the given start/stop functions. Either may
// be nil; invoking Start/Stop in that case records an error instead of
// panicking.
func New(start FuncStart, stop FuncStop) StartStop {
	return &runnerState{
		fnStart: start,
		fnStop:  stop,
	}
}

func (r *runnerState) addError(e error) {
	if e == nil {
		return
	}
	r.errs = append(r.errs, e)
	if len(r.errs) > maxErrors {
		r.errs = r.errs[len(r.errs)-maxErrors:]
	}
}

func (r *runnerState) Start(ctx context.Context) error {
	defer func() {
		if p := recover(); p != nil {
			runner.RecoveryCaller("runner/startStop/start", p)
		}
	}()

	r.mu.Lock()
	if r.running {
		cancel := r.cancel
		done := r.done
		r.mu.Unlock()
		if cancel != nil {
			cancel()
		}
		if done != nil {
			<-done
		}
		r.mu.Lock()
	}

	cctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	r.errs = nil
	r.cancel = cancel
	r.done = done
	r.running = true
	r.started = time.Now()
	fn := r.fnStart
	r.mu.Unlock()

	go func() {
		defer close(done)
		defer func() {
			if p := recover(); p != nil {
				runner.RecoveryCaller("runner/startStop/run", p)
			}
		}()

		var e error
		if fn == nil {
			e = errors.New("invalid start function")
		} else {
			e = fn(cctx)
		}

		r.mu.Lock()
		r.addError(e)
		r.running = false
		r.mu.Unlock()
	}()

	return nil
}

func (r *runnerState) Stop(ctx context.Context) error {
	defer func() {
		if p := recover(); p != nil {
			runner.RecoveryCaller("runner/startStop/stop", p)
		}
	}()

	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return nil
	}
	cancel := r.cancel
	done := r.done
	fn := r.fnStop
	r.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		select {
		case <-done:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	var e error
	if fn == nil {
		e = errors.New("invalid stop function")
	} else {
		e = fn(ctx)
	}

	r.mu.Lock()
	r.addError(e)
	r.mu.Unlock()

	return nil
}

func (r *runnerState) Restart(ctx context.Context) error {
	if err := r.Stop(ctx); err != nil {
		return err
	}
	return r.Start(ctx)
}

func (r *runnerState) IsRunning() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}

func (r *runnerState) Uptime() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.running {
		return 0
	}
	return time.Since(r.started)
}

func (r *runnerState) ErrorsLast() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.errs) == 0 {
		return nil
	}
	return r.errs[len(r.errs)-1]
}

func (r *runnerState) ErrorsList() []error {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]error, len(r.errs))
	copy(out, r.errs)
	return out
}
