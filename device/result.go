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

// Package device implements the non-blocking socket and file I/O primitives
// the pipeline state machines drive one step at a time: a single read or write call per invocation, classified into one of
// four outcomes so the reactor never has to inspect an errno itself.
package device

import (
	"errors"
	"io"
	"syscall"
)

// Result classifies the outcome of one read_bytes/write_bytes call.
type Result uint8

const (
	Ok Result = iota
	Retry
	Eof
	Error
)

func (r Result) String() string {
	switch r {
	case Ok:
		return "ok"
	case Retry:
		return "retry"
	case Eof:
		return "eof"
	default:
		return "error"
	}
}

// classifySocketErr maps a socket read/write error to its Result per
// table: EAGAIN/EWOULDBLOCK is Retry, ECONNRESET/EPIPE
// is Eof, anything else is Error. A nil error is never passed in here; the
// caller checks n==0 separately for the "recv returned zero" Eof case.
func classifySocketErr(err error) Result {
	if errors.Is(err, syscall.EAGAIN) || errors.Is(err, syscall.EWOULDBLOCK) {
		return Retry
	}
	if errors.Is(err, syscall.ECONNRESET) || errors.Is(err, syscall.EPIPE) {
		return Eof
	}
	if errors.Is(err, io.EOF) {
		return Eof
	}
	return Error
}
