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

package pipeline

import (
	"github.com/nabbar/cybercache/memdomain"
	"github.com/nabbar/cybercache/types"
)

// ConnectionWatch is the lightweight object a completed, persistent
// writer is converted into: it holds only what's
// needed to recognize the next inbound event or a hangup. The reference
// reinterprets the writer's storage in place to avoid heap churn; Go has
// no placement-new, so WatchFrom discards the writer's buffers instead —
// the allocation savings this chases doesn't exist in a GC'd runtime, but
// the lifecycle (writer completes -> watch -> fresh reader or disposal)
// is preserved exactly.
type ConnectionWatch struct {
	Fd       int
	PeerAddr string
	Domain   types.Domain
	rt       *memdomain.Runtime
}

// WatchFrom converts a completed, persistent writer into a ConnectionWatch.
// The caller must have already rewritten the reactor's epoll registration
// from EPOLLOUT to EPOLLIN|EPOLLRDHUP|EPOLLET.
func WatchFrom(fd int, rw *ReaderWriter) *ConnectionWatch {
	rw.Buffers.Release()
	return &ConnectionWatch{
		Fd:       fd,
		PeerAddr: rw.PeerAddr,
		Domain:   rw.Domain,
		rt:       rw.rt,
	}
}

// Resume converts the watch back into a fresh SocketCommandReader on the
// next inbound event.
func (w *ConnectionWatch) Resume(dev byteReader, sizer PayloadSizer) *ReaderWriter {
	r := NewReader(w.rt, w.Domain, dev, true, false, sizer)
	r.PeerAddr = w.PeerAddr
	return r
}
