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

// State is the progress of one in-flight command or response.
type State uint8

const (
	Created State = iota
	HeaderSize
	Header
	Payload
	Complete
	Error
)

func (s State) String() string {
	switch s {
	case Created:
		return "created"
	case HeaderSize:
		return "header-size"
	case Header:
		return "header"
	case Payload:
		return "payload"
	case Complete:
		return "complete"
	default:
		return "error"
	}
}

// Kind distinguishes the four socket-backed subclasses the design
// names, and their file-backed twins.
type Kind uint8

const (
	CommandReader Kind = iota
	ResponseReader
	CommandWriter
	ResponseWriter
)

func (k Kind) isReader() bool { return k == CommandReader || k == ResponseReader }
func (k Kind) isResponse() bool {
	return k == ResponseReader || k == ResponseWriter
}

// Flags is the per-connection flag set of the design.
type Flags struct {
	IsReader     bool
	IsResponse   bool
	IsNetwork    bool
	IsPersistent bool
	HasMarker    bool
	HasAuth      bool
}
