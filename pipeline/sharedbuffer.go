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

// Package pipeline implements the per-connection progress objects of
// the design: refcounted shared buffers and the Reader/Writer
// state machine the reactor drives one step at a time.
package pipeline

import (
	"sync/atomic"

	"github.com/nabbar/cybercache/errs"
	"github.com/nabbar/cybercache/memdomain"
	"github.com/nabbar/cybercache/types"
)

// inlineAuxSize is the small inline region every SharedBuffer carries
// regardless of how it grows, sized to the minimum framed header.
const inlineAuxSize = 32

// SharedBuffer is the refcounted payload carrier attached to each in-flight
// command or response. The inline aux region absorbs the common case of a
// small fixed-shape header without touching the domain allocator; Header
// and Payload grow into domain-accounted memory only when the aux region
// isn't enough.
type SharedBuffer struct {
	aux     [inlineAuxSize]byte
	auxUsed int

	header  []byte
	payload []byte

	refcount atomic.Int32
	domain   types.Domain
	rt       *memdomain.Runtime
}

// NewSharedBuffer creates a buffer refcounted to 1, owned by domain and
// accounted against rt.
func NewSharedBuffer(rt *memdomain.Runtime, domain types.Domain) *SharedBuffer {
	b := &SharedBuffer{domain: domain, rt: rt}
	b.refcount.Store(1)
	return b
}

// Domain reports the owning memory domain.
func (b *SharedBuffer) Domain() types.Domain { return b.domain }

// Retain takes an additional reference, returned when the buffer is handed
// to another pipeline stage.
func (b *SharedBuffer) Retain() { b.refcount.Add(1) }

// Release drops a reference. When the last reference is dropped, both
// growable buffers are freed and the allocation is returned to the owning
// domain.
func (b *SharedBuffer) Release() {
	if b.refcount.Add(-1) != 0 {
		return
	}
	if n := int64(len(b.header) + len(b.payload)); n > 0 && b.rt != nil {
		b.rt.Free(b.domain, n)
	}
	b.header = nil
	b.payload = nil
}

// RefCount reports the current reference count, for tests and diagnostics.
func (b *SharedBuffer) RefCount() int32 { return b.refcount.Load() }

// AppendHeader grows the header region by n bytes, spilling out of the
// inline aux region into domain-accounted memory once it's exhausted, and
// returns the slice to fill.
func (b *SharedBuffer) AppendHeader(n int) ([]byte, error) {
	if b.auxUsed+n <= inlineAuxSize && len(b.header) == 0 {
		start := b.auxUsed
		b.auxUsed += n
		return b.aux[start:b.auxUsed], nil
	}
	return b.grow(&b.header, n)
}

// AppendPayload grows the payload region by n bytes.
func (b *SharedBuffer) AppendPayload(n int) ([]byte, error) {
	return b.grow(&b.payload, n)
}

func (b *SharedBuffer) grow(dst *[]byte, n int) ([]byte, error) {
	if n < 0 {
		return nil, errs.New(errs.InvalidArgument, "pipeline: negative grow size")
	}
	if b.rt != nil {
		if err := b.rt.Alloc(b.domain, int64(n)); err != nil {
			return nil, err
		}
	}
	start := len(*dst)
	*dst = append(*dst, make([]byte, n)...)
	return (*dst)[start:], nil
}

// Header returns the accumulated header bytes, aux region first.
func (b *SharedBuffer) Header() []byte {
	if len(b.header) == 0 {
		return b.aux[:b.auxUsed]
	}
	out := make([]byte, 0, b.auxUsed+len(b.header))
	out = append(out, b.aux[:b.auxUsed]...)
	return append(out, b.header...)
}

// Payload returns the accumulated payload bytes.
func (b *SharedBuffer) Payload() []byte { return b.payload }

// TakePayload removes and returns the payload region, leaving this buffer's
// payload empty — the primitive TransferPayload is built on.
func (b *SharedBuffer) TakePayload() []byte {
	p := b.payload
	b.payload = nil
	return p
}

// Clone yields a new SharedBuffer with the header region copied. Payload is
// copied only when full is true.
func (b *SharedBuffer) Clone(full bool) *SharedBuffer {
	c := NewSharedBuffer(b.rt, b.domain)
	c.aux = b.aux
	c.auxUsed = b.auxUsed
	c.header = append([]byte(nil), b.header...)
	if full {
		c.payload = append([]byte(nil), b.payload...)
	}
	return c
}
