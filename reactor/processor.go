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

package reactor

import (
	"encoding/binary"
	"sync"

	"github.com/bits-and-blooms/bitset"
	"golang.org/x/sys/unix"

	"github.com/nabbar/cybercache/errs"
	"github.com/nabbar/cybercache/logger"
	loglvl "github.com/nabbar/cybercache/logger/level"
	"github.com/nabbar/cybercache/pipeline"
)

// maxTrackedFd bounds the registration bitset. File descriptors above this
// still work; they just fall back to the map alone for the "is this fd
// registered" fast path bitset.Test gives everything else.
const maxTrackedFd = 1 << 16

// registration is what Wait needs to classify a ready fd without a type
// tag lookup.
type registration struct {
	kind   Kind
	object *pipeline.ReaderWriter
	watch  *pipeline.ConnectionWatch
}

// Processor is one reactor: an epoll instance, a cross-thread wakeup
// eventfd, and the dynamic set of per-connection registrations it
// multiplexes.
type Processor struct {
	epfd   int
	wakeFd int

	mu       sync.Mutex
	regs     map[int]*registration
	present  *bitset.BitSet
	listen   map[int]struct{}
	shutdown bool

	connIPs []string
	conns   map[int]*connHandle

	log logger.Logger
}

// SetLogger attaches l so a failing Wait call is reported at ERROR level
// before it returns to the caller.
func (p *Processor) SetLogger(l logger.Logger) *Processor {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.log = l
	return p
}

// NewProcessor creates the epoll instance and its wakeup eventfd,
// registering the latter with EPOLLIN so trigger_queue_event wakes the
// next epoll_wait immediately.
func NewProcessor() (*Processor, error) {
	epfd, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		return nil, errs.New(errs.SystemCall, "reactor: epoll_create1 failed", err)
	}

	wfd, err := unix.Eventfd(0, unix.EFD_NONBLOCK|unix.EFD_CLOEXEC)
	if err != nil {
		_ = unix.Close(epfd)
		return nil, errs.New(errs.SystemCall, "reactor: eventfd failed", err)
	}

	p := &Processor{
		epfd:    epfd,
		wakeFd:  wfd,
		regs:    make(map[int]*registration),
		present: bitset.New(maxTrackedFd),
		listen:  make(map[int]struct{}),
	}

	ev := unix.EpollEvent{Events: unix.EPOLLIN, Fd: int32(wfd)}
	if err = unix.EpollCtl(epfd, unix.EPOLL_CTL_ADD, wfd, &ev); err != nil {
		_ = unix.Close(wfd)
		_ = unix.Close(epfd)
		return nil, errs.New(errs.SystemCall, "reactor: registering wakeup fd failed", err)
	}

	return p, nil
}

// Register adds fd to the epoll set and associates it with obj, so a Wait
// pass can hand the caller a populated Object event instead of a bare fd.
func (p *Processor) Register(fd int, events uint32, obj *pipeline.ReaderWriter) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	ev := unix.EpollEvent{Events: events, Fd: int32(fd)}
	if err := unix.EpollCtl(p.epfd, unix.EPOLL_CTL_ADD, fd, &ev); err != nil {
		return errs.New(errs.SystemCall, "reactor: epoll_ctl ADD failed", err)
	}

	p.regs[fd] = &registration{kind: Object, object: obj}
	if fd >= 0 && fd < maxTrackedFd {
		p.present.Set(uint(fd))
	}
	return nil
}

// RegisterWatch re-registers fd for a ConnectionWatch once a persistent
// writer has completed.
func (p *Processor) RegisterWatch(fd int, watch *pipeline.ConnectionWatch) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	ev := unix.EpollEvent{Events: unix.EPOLLIN | unix.EPOLLRDHUP | unix.EPOLLET, Fd: int32(fd)}
	if err := unix.EpollCtl(p.epfd, unix.EPOLL_CTL_MOD, fd, &ev); err != nil {
		return errs.New(errs.SystemCall, "reactor: epoll_ctl MOD failed", err)
	}

	p.regs[fd] = &registration{kind: Connection, watch: watch}
	return nil
}

// Modify updates the interest set of an already-registered fd (e.g.
// switching a writer from EPOLLOUT back once it drains).
func (p *Processor) Modify(fd int, events uint32) error {
	ev := unix.EpollEvent{Events: events, Fd: int32(fd)}
	if err := unix.EpollCtl(p.epfd, unix.EPOLL_CTL_MOD, fd, &ev); err != nil {
		return errs.New(errs.SystemCall, "reactor: epoll_ctl MOD failed", err)
	}
	return nil
}

// Unregister removes fd from the epoll set and drops its registration.
func (p *Processor) Unregister(fd int) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	_ = unix.EpollCtl(p.epfd, unix.EPOLL_CTL_DEL, fd, nil)
	delete(p.regs, fd)
	if fd >= 0 && fd < maxTrackedFd {
		p.present.Clear(uint(fd))
	}
	return nil
}

// IsRegistered reports whether fd currently has a live registration,
// served from the bitset fast path before falling back to the map for
// fds outside its range.
func (p *Processor) IsRegistered(fd int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if fd >= 0 && fd < maxTrackedFd {
		return p.present.Test(uint(fd))
	}
	_, ok := p.regs[fd]
	return ok
}

// TriggerQueueEvent makes the next Wait call return immediately with a
// Queue event, the cross-thread wakeup the design calls for.
func (p *Processor) TriggerQueueEvent() error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], 1)
	if _, err := unix.Write(p.wakeFd, buf[:]); err != nil {
		return errs.New(errs.SystemCall, "reactor: eventfd write failed", err)
	}
	return nil
}

func (p *Processor) drainWakeup() {
	var buf [8]byte
	_, _ = unix.Read(p.wakeFd, buf[:])
}

// Wait drains one epoll_wait call and returns every ready event already
// classified. timeoutMs follows
// epoll_wait's own convention: -1 blocks indefinitely, 0 polls.
func (p *Processor) Wait(timeoutMs int) ([]Event, error) {
	raw := make([]unix.EpollEvent, 64)
	n, err := unix.EpollWait(p.epfd, raw, timeoutMs)
	if err != nil {
		if err == unix.EINTR {
			return nil, nil
		}
		e := errs.New(errs.SystemCall, "reactor: epoll_wait failed", err)
		if p.log != nil {
			p.log.Entry(loglvl.ErrorLevel, "reactor: epoll_wait failed").ErrorAdd(e).Log()
		}
		return nil, e
	}

	out := make([]Event, 0, n)

	p.mu.Lock()
	defer p.mu.Unlock()

	for i := 0; i < n; i++ {
		fd := int(raw[i].Fd)

		if fd == p.wakeFd {
			p.drainWakeup()
			out = append(out, Event{Kind: Queue, Fd: fd, Flags: raw[i].Events})
			continue
		}

		if _, isListener := p.listen[fd]; isListener {
			out = append(out, Event{Kind: Socket, Fd: fd, Flags: raw[i].Events})
			continue
		}

		if reg, ok := p.regs[fd]; ok {
			out = append(out, Event{Kind: reg.kind, Fd: fd, Flags: raw[i].Events, Object: reg.object, Watch: reg.watch})
			continue
		}

		out = append(out, Event{Kind: None, Fd: fd, Flags: raw[i].Events})
	}

	return out, nil
}

// Shutdown unregisters and closes all listening sockets, disposes the
// queue event, and closes the epoll handle. Safe to call multiple times
//.
func (p *Processor) Shutdown() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.shutdown {
		return nil
	}
	p.shutdown = true

	for fd := range p.listen {
		_ = unix.EpollCtl(p.epfd, unix.EPOLL_CTL_DEL, fd, nil)
		_ = unix.Close(fd)
	}
	p.listen = make(map[int]struct{})
	p.regs = make(map[int]*registration)

	for _, h := range p.conns {
		_ = unix.Close(h.fd)
	}
	p.conns = nil

	_ = unix.Close(p.wakeFd)
	if err := unix.Close(p.epfd); err != nil {
		return errs.New(errs.SystemCall, "reactor: closing epoll handle failed", err)
	}
	return nil
}
