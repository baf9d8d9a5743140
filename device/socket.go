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

package device

import (
	"golang.org/x/sys/unix"
)

// SocketReader performs one non-blocking read on a raw socket file
// descriptor, the device-layer counterpart the pipeline command/response
// readers drive a single step at a time.
type SocketReader struct {
	Fd int
}

// NewSocketReader wraps an already-connected, non-blocking socket fd.
func NewSocketReader(fd int) *SocketReader { return &SocketReader{Fd: fd} }

// ReadBytes attempts to fill buf[:n] from the socket. It never blocks
// beyond a single kernel call and never loops internally — Retry tells the
// caller to wait for the next epoll-readable event.
func (s *SocketReader) ReadBytes(buf []byte) (Result, int) {
	if syncIO.Load() {
		return blockingRead(s.Fd, buf)
	}

	n, err := unix.Read(s.Fd, buf)
	if err != nil {
		return classifySocketErr(err), 0
	}
	if n == 0 {
		return Eof, 0
	}
	return Ok, n
}

// SocketWriter performs one non-blocking write on a raw socket file
// descriptor.
type SocketWriter struct {
	Fd int
}

// NewSocketWriter wraps an already-connected, non-blocking socket fd.
func NewSocketWriter(fd int) *SocketWriter { return &SocketWriter{Fd: fd} }

// WriteBytes attempts to push buf to the socket in one kernel call.
func (s *SocketWriter) WriteBytes(buf []byte) (Result, int) {
	if syncIO.Load() {
		return blockingWrite(s.Fd, buf)
	}

	n, err := unix.Write(s.Fd, buf)
	if err != nil {
		return classifySocketErr(err), 0
	}
	return Ok, n
}

// blockingRead retries EAGAIN internally so callers under the synchronous
// I/O switch never observe Retry.
func blockingRead(fd int, buf []byte) (Result, int) {
	for {
		n, err := unix.Read(fd, buf)
		if err != nil {
			if r := classifySocketErr(err); r == Retry {
				continue
			} else {
				return r, 0
			}
		}
		if n == 0 {
			return Eof, 0
		}
		return Ok, n
	}
}

func blockingWrite(fd int, buf []byte) (Result, int) {
	written := 0
	for written < len(buf) {
		n, err := unix.Write(fd, buf[written:])
		if err != nil {
			if r := classifySocketErr(err); r == Retry {
				continue
			} else {
				return r, written
			}
		}
		written += n
	}
	return Ok, written
}
