// Package semaphore bounds the number of concurrent workers a caller may
// spawn, with an optional progress bar tracking active/total workers.
package semaphore

import (
	"context"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
	xsem "golang.org/x/sync/semaphore"
)

// Semaphore limits concurrent work to a fixed weight.
type Semaphore interface {
	NewWorker() error
	NewWorkerTry() bool
	DeferWorker()
	DeferMain()
	Weighted() int64
	GetMPB() interface{}
	New() Semaphore
}

type sem struct {
	ctx context.Context
	max int64
	w   *xsem.Weighted
	pgs *mpb.Progress
	bar *mpb.Bar
}

// New builds a Semaphore bounding concurrency to max simultaneous workers.
// When withProgress is true, an mpb progress bar tracks active workers
// against max.
func New(ctx context.Context, max int64, withProgress bool) Semaphore {
	s := &sem{
		ctx: ctx,
		max: max,
		w:   xsem.NewWeighted(max),
	}

	if withProgress && max > 0 {
		s.pgs = mpb.NewWithContext(ctx)
		s.bar = s.pgs.AddBar(max,
			mpb.PrependDecorators(decor.Name("workers")),
			mpb.AppendDecorators(decor.CountersNoUnit("%d / %d")),
		)
	}

	return s
}

func (s *sem) NewWorker() error {
	if err := s.w.Acquire(s.ctx, 1); err != nil {
		return err
	}
	if s.bar != nil {
		s.bar.Increment()
	}
	return nil
}

func (s *sem) NewWorkerTry() bool {
	ok := s.w.TryAcquire(1)
	if ok && s.bar != nil {
		s.bar.Increment()
	}
	return ok
}

func (s *sem) DeferWorker() {
	s.w.Release(1)
	if s.bar != nil {
		s.bar.SetCurrent(s.bar.Current() - 1)
	}
}

func (s *sem) DeferMain() {
	if s.pgs != nil {
		s.pgs.Wait()
	}
}

func (s *sem) Weighted() int64 {
	return s.max
}

func (s *sem) GetMPB() interface{} {
	if s.pgs == nil {
		return nil
	}
	return s.pgs
}

func (s *sem) New() Semaphore {
	return New(s.ctx, s.max, s.pgs != nil)
}
