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
	"net"

	"golang.org/x/sys/unix"

	"github.com/nabbar/cybercache/errs"
)

// CreateListeningSockets binds one non-blocking, reusable listening socket
// per IP in ips, registers each with EPOLLIN|EPOLLRDHUP|EPOLLET, and
// returns how many succeeded. A per-IP failure is returned alongside the
// others but never aborts the remaining attempts, so the service comes up
// as long as at least one bind succeeds.
func (p *Processor) CreateListeningSockets(ips []string, port int) (created int, failures []error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, ip := range ips {
		fd, err := bindListener(ip, port)
		if err != nil {
			failures = append(failures, err)
			continue
		}

		ev := unix.EpollEvent{Events: unix.EPOLLIN | unix.EPOLLRDHUP | unix.EPOLLET, Fd: int32(fd)}
		if err = unix.EpollCtl(p.epfd, unix.EPOLL_CTL_ADD, fd, &ev); err != nil {
			_ = unix.Close(fd)
			failures = append(failures, errs.New(errs.SystemCall, "reactor: registering listening socket for "+ip+" failed", err))
			continue
		}

		p.listen[fd] = struct{}{}
		created++
	}

	return created, failures
}

func bindListener(ip string, port int) (int, error) {
	fd, err := unix.Socket(unix.AF_INET, unix.SOCK_STREAM, 0)
	if err != nil {
		return -1, errs.New(errs.SystemCall, "reactor: socket() for "+ip+" failed", err)
	}

	if err = unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); err != nil {
		_ = unix.Close(fd)
		return -1, errs.New(errs.SystemCall, "reactor: SO_REUSEADDR for "+ip+" failed", err)
	}

	addr, err := sockaddr(ip, port)
	if err != nil {
		_ = unix.Close(fd)
		return -1, err
	}

	if err = unix.Bind(fd, addr); err != nil {
		_ = unix.Close(fd)
		return -1, errs.New(errs.SystemCall, "reactor: bind() for "+ip+" failed", err)
	}

	if err = unix.Listen(fd, unix.SOMAXCONN); err != nil {
		_ = unix.Close(fd)
		return -1, errs.New(errs.SystemCall, "reactor: listen() for "+ip+" failed", err)
	}

	if err = unix.SetNonblock(fd, true); err != nil {
		_ = unix.Close(fd)
		return -1, errs.New(errs.SystemCall, "reactor: setting "+ip+" non-blocking failed", err)
	}

	return fd, nil
}

// AcceptConnection accepts one pending connection off a listening socket
// fd, returning the new non-blocking client fd and its peer IPv4 address.
func (p *Processor) AcceptConnection(fd int) (int, string, error) {
	nfd, sa, err := unix.Accept4(fd, unix.SOCK_NONBLOCK)
	if err != nil {
		return -1, "", errs.New(errs.SystemCall, "reactor: accept4() failed", err)
	}

	peer := ""
	if in4, ok := sa.(*unix.SockaddrInet4); ok {
		peer = net.IP(in4.Addr[:]).String()
	}
	return nfd, peer, nil
}

func sockaddr(ip string, port int) (unix.Sockaddr, error) {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return nil, errs.New(errs.InvalidArgument, "reactor: invalid listening address "+ip)
	}
	v4 := parsed.To4()
	if v4 == nil {
		return nil, errs.New(errs.InvalidArgument, "reactor: only IPv4 listening addresses are supported, got "+ip)
	}
	sa := &unix.SockaddrInet4{Port: port}
	copy(sa.Addr[:], v4)
	return sa, nil
}

// connHandle is a cached outbound connection, kept around across calls
// when the caller marked it persistent.
type connHandle struct {
	fd        int
	persistent bool
}

// SetConnectionSocketsInfo records the candidate outbound addresses
// without opening anything, matching the "stores addresses without
// opening them" contract for the replicator/client path.
func (p *Processor) SetConnectionSocketsInfo(ips []string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.connIPs = append([]string(nil), ips...)
}

// CreateConnectionSocket returns the cached fd for index i if persistent
// and still open, otherwise dials outIP:port fresh and, when persistent,
// caches the result for next time.
func (p *Processor) CreateConnectionSocket(i int, port int, persistent bool) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if i < 0 || i >= len(p.connIPs) {
		return -1, errs.New(errs.InvalidArgument, "reactor: connection socket index out of range")
	}

	if h, ok := p.conns[i]; ok && h.persistent && h.fd >= 0 {
		return h.fd, nil
	}

	fd, err := dialOutbound(p.connIPs[i], port)
	if err != nil {
		return -1, err
	}

	if persistent {
		if p.conns == nil {
			p.conns = make(map[int]*connHandle)
		}
		p.conns[i] = &connHandle{fd: fd, persistent: true}
	}
	return fd, nil
}

func dialOutbound(ip string, port int) (int, error) {
	fd, err := unix.Socket(unix.AF_INET, unix.SOCK_STREAM, 0)
	if err != nil {
		return -1, errs.New(errs.SystemCall, "reactor: socket() for outbound "+ip+" failed", err)
	}
	if err = unix.SetNonblock(fd, true); err != nil {
		_ = unix.Close(fd)
		return -1, errs.New(errs.SystemCall, "reactor: setting outbound socket non-blocking failed", err)
	}

	addr, err := sockaddr(ip, port)
	if err != nil {
		_ = unix.Close(fd)
		return -1, err
	}

	err = unix.Connect(fd, addr)
	if err != nil && err != unix.EINPROGRESS {
		_ = unix.Close(fd)
		return -1, errs.New(errs.SystemCall, "reactor: connect() to "+ip+" failed", err)
	}
	return fd, nil
}

// CloseConnectionSocketByFd tears down a specific outbound link and drops
// it from the persistent-handle cache if it was cached under it.
func (p *Processor) CloseConnectionSocketByFd(fd int) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i, h := range p.conns {
		if h.fd == fd {
			delete(p.conns, i)
		}
	}
	if err := unix.Close(fd); err != nil {
		return errs.New(errs.SystemCall, "reactor: closing connection socket failed", err)
	}
	return nil
}
