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

// Package memdomain implements the quota-accounted allocator façade of
// the design: one counter pair (used/max) per memory domain, a
// reclaim-on-failure loop, and cross-domain ownership transfer.
package memdomain

import (
	"sync/atomic"

	"github.com/nabbar/cybercache/errs"
	"github.com/nabbar/cybercache/logger"
	loglvl "github.com/nabbar/cybercache/logger/level"
	"github.com/nabbar/cybercache/types"
)

// Reclaimer is called by Alloc/Calloc/Realloc when a domain would exceed
// its quota. It must free at least size bytes from the domain's owner
// (the concrete cache store, out of scope here) and report how many bytes
// it actually reclaimed.
type Reclaimer func(domain types.Domain, size int64) (freed int64)

// maxReclaimAttempts bounds the retry loop so a Reclaimer that cannot
// free enough does not keep Alloc spinning forever —
// language-neutral re-architecture of the reference's
// unbounded retry loop.
const maxReclaimAttempts = 8

type counter struct {
	used atomic.Int64
	max  atomic.Int64
}

// Runtime is the per-process memory-domain context.
// Tests can construct independent Runtimes.
type Runtime struct {
	counters  [4]counter // indexed by types.Domain
	reclaim   [4]Reclaimer
	onCollect MetricsHook
	log       logger.Logger
}

// MetricsHook lets the caller observe allocator activity without coupling
// memdomain to a specific metrics backend; metrics.Recorder implements it.
type MetricsHook interface {
	ObserveAlloc(d types.Domain, size int64)
	ObserveFree(d types.Domain, size int64)
	ObserveReclaim(d types.Domain, requested, freed int64, attempts int)
}

// NewRuntime creates a Runtime with all quotas unset (unlimited).
func NewRuntime() *Runtime {
	return &Runtime{}
}

// SetMetricsHook attaches an observer; nil disables observation.
func (r *Runtime) SetMetricsHook(h MetricsHook) { r.onCollect = h }

// SetLogger attaches l so quota exhaustion and reclaim-failure conditions
// are reported; nil silences logging again.
func (r *Runtime) SetLogger(l logger.Logger) *Runtime {
	r.log = l
	return r
}

func (r *Runtime) logQuota(d types.Domain, msg string, err error) {
	if r.log == nil {
		return
	}
	r.log.Entry(loglvl.WarnLevel, msg).
		FieldAdd("domain", d.String()).
		ErrorAdd(err).
		Log()
}

// SetReclaimer installs the reclaim callback for a domain. Global ignores
// its reclaimer: allocation in Global always succeeds if the OS has memory.
func (r *Runtime) SetReclaimer(d types.Domain, fn Reclaimer) {
	if !d.Valid() {
		return
	}
	r.reclaim[d] = fn
}

// SetQuota sets the byte quota for a domain; 0 means unlimited.
func (r *Runtime) SetQuota(d types.Domain, bytes int64) {
	if !d.Valid() {
		return
	}
	r.counters[d].max.Store(bytes)
}

// Used returns the current accounted usage of a domain.
func (r *Runtime) Used(d types.Domain) int64 {
	if !d.Valid() {
		return 0
	}
	return r.counters[d].used.Load()
}

// Quota returns the configured quota of a domain (0 = unlimited).
func (r *Runtime) Quota(d types.Domain) int64 {
	if !d.Valid() {
		return 0
	}
	return r.counters[d].max.Load()
}

func (r *Runtime) observeAlloc(d types.Domain, n int64) {
	if r.onCollect != nil {
		r.onCollect.ObserveAlloc(d, n)
	}
}

func (r *Runtime) observeFree(d types.Domain, n int64) {
	if r.onCollect != nil {
		r.onCollect.ObserveFree(d, n)
	}
}

// fits reports whether adding n bytes to d's usage would stay within
// quota. Global is advisory-only: it is never
// enforced here, only monitored via Used/Quota.
func (r *Runtime) fits(d types.Domain, n int64) bool {
	if d == Global {
		return true
	}
	max := r.counters[d].max.Load()
	if max <= 0 {
		return true
	}
	return r.counters[d].used.Load()+n <= max
}

// Alloc accounts for n bytes in domain d, calling the domain's Reclaimer
// and retrying when the quota would be exceeded. Without a Reclaimer it
// returns QuotaExceeded at once. If the quota is still not met after
// maxReclaimAttempts calls, it panics with a "Fatal" error when the last
// call freed nothing, and returns QuotaExceeded otherwise.
func (r *Runtime) Alloc(d types.Domain, n int64) error {
	if !d.Valid() {
		return errs.New(errs.InvalidArgument, "memdomain: invalid domain")
	}
	if n < 0 {
		return errs.New(errs.InvalidArgument, "memdomain: negative size")
	}

	attempts := 0
	for !r.fits(d, n) {
		fn := r.reclaim[d]
		if fn == nil || attempts >= maxReclaimAttempts {
			e := errs.New(errs.QuotaExceeded, "memdomain: quota exceeded for "+d.String())
			r.logQuota(d, "memdomain: quota exceeded", e)
			return e
		}
		freed := fn(d, n)
		attempts++
		if r.onCollect != nil {
			r.onCollect.ObserveReclaim(d, n, freed, attempts)
		}
		if freed <= 0 && attempts >= maxReclaimAttempts {
			e := errs.New(errs.Fatal, "memdomain: reclaim made no progress for "+d.String())
			r.logQuota(d, "memdomain: reclaim made no progress", e)
			panic(e.Error())
		}
	}

	r.counters[d].used.Add(n)
	r.observeAlloc(d, n)
	return nil
}

// Calloc is Alloc with n*elemSize accounting; semantics otherwise
// identical.
func (r *Runtime) Calloc(d types.Domain, n, elemSize int64) error {
	return r.Alloc(d, n*elemSize)
}

// OptionalCalloc bypasses the reclaim loop entirely: it returns
// QuotaExceeded immediately rather than looping, for callers that can
// legitimately fail (speculative buffers).
func (r *Runtime) OptionalCalloc(d types.Domain, n, elemSize int64) error {
	if !d.Valid() {
		return errs.New(errs.InvalidArgument, "memdomain: invalid domain")
	}
	size := n * elemSize
	if !r.fits(d, size) {
		e := errs.New(errs.QuotaExceeded, "memdomain: optional_calloc refused for "+d.String())
		r.logQuota(d, "memdomain: optional_calloc refused", e)
		return e
	}
	r.counters[d].used.Add(size)
	r.observeAlloc(d, size)
	return nil
}

// Free releases n bytes of accounting from domain d. Underflow is a
// programmer error and panics rather than silently clamping to zero.
func (r *Runtime) Free(d types.Domain, n int64) {
	if !d.Valid() || n <= 0 {
		return
	}
	if v := r.counters[d].used.Add(-n); v < 0 {
		panic(errs.New(errs.Fatal, "memdomain: used_bytes underflow in "+d.String()).Error())
	}
	r.observeFree(d, n)
}

// Realloc adjusts accounting by the signed delta (newSize-oldSize),
// growing through the reclaim loop and shrinking like Free.
func (r *Runtime) Realloc(d types.Domain, newSize, oldSize int64) error {
	delta := newSize - oldSize
	if delta == 0 {
		return nil
	} else if delta > 0 {
		return r.Alloc(d, delta)
	}
	r.Free(d, -delta)
	return nil
}

// Transfer moves accounting of n bytes from one domain to another without
// touching the OS allocator — used when a payload moves from the global
// request-reader into a per-cache-domain storage object. Transferring to
// the same domain is a no-op.
func (r *Runtime) Transfer(from, to types.Domain, n int64) error {
	if from == to {
		return nil
	}
	if !from.Valid() || !to.Valid() {
		return errs.New(errs.InvalidArgument, "memdomain: invalid transfer domain")
	}
	if !r.fits(to, n) {
		fn := r.reclaim[to]
		if fn == nil {
			e := errs.New(errs.QuotaExceeded, "memdomain: transfer refused into "+to.String())
			r.logQuota(to, "memdomain: transfer refused", e)
			return e
		}
		fn(to, n)
		if !r.fits(to, n) {
			e := errs.New(errs.QuotaExceeded, "memdomain: transfer refused into "+to.String())
			r.logQuota(to, "memdomain: transfer refused", e)
			return e
		}
	}

	if v := r.counters[from].used.Add(-n); v < 0 {
		panic(errs.New(errs.Fatal, "memdomain: used_bytes underflow in "+from.String()).Error())
	}
	r.counters[to].used.Add(n)
	r.observeFree(from, n)
	r.observeAlloc(to, n)
	return nil
}

// InplaceRealloc is a documented no-op hook.
func (r *Runtime) InplaceRealloc(types.Domain, int64, int64) bool { return true }

// HeapCheck is a documented no-op hook.
func (r *Runtime) HeapCheck() error { return nil }

const (
	Global  = types.Global
	Session = types.Session
	Fpc     = types.Fpc
)
