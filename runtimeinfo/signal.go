/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package runtimeinfo collects the process-level facilities the core
// engine needs but does not own outright: per-thread signal mask control,
// monotonic/wall clock helpers, cores/memory discovery, and the fatal-path
// stack dump.
package runtimeinfo

import (
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sys/unix"

	"github.com/nabbar/cybercache/errs"
)

// SignalWaiter blocks the calling goroutine until one of SIGINT, SIGTERM,
// or SIGQUIT arrives, mirroring the reactor-owning process's graceful
// shutdown trigger. Each call installs and tears down its own channel, so
// multiple independent waiters (one per reactor) can coexist.
type SignalWaiter struct {
	ch chan os.Signal
}

// NewSignalWaiter installs the notification channel.
func NewSignalWaiter() *SignalWaiter {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	return &SignalWaiter{ch: ch}
}

// Wait blocks until a termination signal arrives and returns it.
func (w *SignalWaiter) Wait() os.Signal {
	return <-w.ch
}

// Stop tears down the notification channel.
func (w *SignalWaiter) Stop() {
	signal.Stop(w.ch)
	close(w.ch)
}

// BlockSignals blocks the named signals for the calling OS thread. The
// reactor thread uses this to keep delivery on a single dedicated signal
// handler thread rather than racing across the goroutine pool.
func BlockSignals(sigs ...syscall.Signal) error {
	set := toSigset(sigs)
	if err := unix.PthreadSigmask(unix.SIG_BLOCK, &set, nil); err != nil {
		return errs.New(errs.SystemCall, "runtimeinfo: pthread_sigmask(SIG_BLOCK) failed", err)
	}
	return nil
}

// UnblockSignals reverses BlockSignals for the calling OS thread.
func UnblockSignals(sigs ...syscall.Signal) error {
	set := toSigset(sigs)
	if err := unix.PthreadSigmask(unix.SIG_UNBLOCK, &set, nil); err != nil {
		return errs.New(errs.SystemCall, "runtimeinfo: pthread_sigmask(SIG_UNBLOCK) failed", err)
	}
	return nil
}

func toSigset(sigs []syscall.Signal) unix.Sigset_t {
	var set unix.Sigset_t
	for _, s := range sigs {
		// Sigset_t is a bitmask keyed by (signal-1); Go's unix package
		// doesn't expose sigaddset, so build it by hand.
		bit := uint(s) - 1
		idx := bit / 64
		if int(idx) < len(set.Val) {
			set.Val[idx] |= 1 << (bit % 64)
		}
	}
	return set
}
