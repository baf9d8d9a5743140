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

// Package reactor implements the single-threaded, epoll-driven event
// processor of the design: one epoll instance per service, a
// cross-thread wakeup event, and a dynamic set of per-connection
// registrations drained in one epoll_wait call per pass.
package reactor

import "github.com/nabbar/cybercache/pipeline"

// Kind discriminates what a Wait pass returned. Go has
// no vtable-pointer trick to play, so Event carries an explicit tag
// instead of the reference's first-word discriminator.
type Kind uint8

const (
	None Kind = iota
	Queue
	Socket
	Object
	Connection
)

// Event is one drained epoll_wait result, already classified.
type Event struct {
	Kind  Kind
	Fd    int
	Flags uint32

	// Object is populated when Kind is Object: the in-flight
	// reader/writer registered for this fd, ready for its next Step.
	Object *pipeline.ReaderWriter

	// Watch is populated when Kind is Connection and the fd belongs to a
	// ConnectionWatch awaiting its next command.
	Watch *pipeline.ConnectionWatch
}
