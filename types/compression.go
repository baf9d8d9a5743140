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

package types

// CodecID identifies a compression engine on the wire. Values are stable
// across client/server builds since they are transmitted in the protocol
// descriptor.
type CodecID uint8

const (
	// CodecInvalid marks an unset/unrecognized id.
	CodecInvalid CodecID = iota
	// CodecNone means "store raw": legal, not a failure.
	CodecNone
	CodecSnappy
	CodecLz4
	CodecZstd
	CodecBrotli
	CodecBzip2
)

func (c CodecID) String() string {
	switch c {
	case CodecInvalid:
		return "<INVALID>"
	case CodecNone:
		return "none"
	case CodecSnappy:
		return "snappy"
	case CodecLz4:
		return "lz4"
	case CodecZstd:
		return "zstd"
	case CodecBrotli:
		return "brotli"
	case CodecBzip2:
		return "bzip2"
	default:
		return "<INACTIVE>"
	}
}

// Level is the compression effort requested by the caller.
type Level uint8

const (
	Fastest Level = iota
	Average
	Best
	Extreme
)

// Hint tells the codec what kind of bytes it is about to compress, so it
// can pick internal parameters (e.g. a dictionary) without inspecting the
// payload itself.
type Hint uint8

const (
	HintBinary Hint = iota
	HintText
	HintNumberOfElements
)
