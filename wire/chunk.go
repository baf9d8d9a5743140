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

package wire

import (
	"github.com/nabbar/cybercache/errs"
)

// ChunkKind discriminates the three header-chunk payloads the design
// section 6 defines.
type ChunkKind uint8

const (
	ChunkNumber ChunkKind = iota
	ChunkString
	ChunkList
)

// Chunk is one decoded header element. Only the field matching Kind is
// meaningful; this is Go's idiomatic discriminated union (a tagged
// struct) in place of the reference's placement-new type punning.
type Chunk struct {
	Kind   ChunkKind
	Number uint64
	String []byte
	List   [][]byte
}

// HeaderBuilder accumulates chunks into the wire encoding across three
// phases the design names explicitly: Estimate (size the output), Configure
// (start a builder on a pre-sized buffer), and Add* (append one chunk at a
// time).
type HeaderBuilder struct {
	buf   []byte
	count int
}

// NewHeaderBuilder starts a builder with an optional pre-sized backing
// array (the Configure phase).
func NewHeaderBuilder(capacity int) *HeaderBuilder {
	return &HeaderBuilder{buf: make([]byte, 0, capacity)}
}

// EstimateSize returns a safe upper bound on the encoded size of n chunks
// whose VLQ-encoded fields and string/list bytes total contentLen, used
// by pipeline to size the header buffer before any Add* call.
func EstimateSize(n, contentLen int) int {
	// Worst case: kind byte + up to 10 VLQ bytes of framing per chunk.
	return n*11 + contentLen
}

// AddNumber appends a Number chunk.
func (b *HeaderBuilder) AddNumber(v uint64) {
	b.buf = append(b.buf, byte(ChunkNumber))
	b.buf = putUvarint(b.buf, v)
	b.count++
}

// AddString appends a String chunk.
func (b *HeaderBuilder) AddString(s []byte) {
	b.buf = append(b.buf, byte(ChunkString))
	b.buf = putUvarint(b.buf, uint64(len(s)))
	b.buf = append(b.buf, s...)
	b.count++
}

// AddList appends a List chunk (a sequence of strings, e.g. an
// enumeration result).
func (b *HeaderBuilder) AddList(items [][]byte) {
	b.buf = append(b.buf, byte(ChunkList))
	b.buf = putUvarint(b.buf, uint64(len(items)))
	for _, it := range items {
		b.buf = putUvarint(b.buf, uint64(len(it)))
		b.buf = append(b.buf, it...)
	}
	b.count++
}

// Count returns how many chunks have been added so far.
func (b *HeaderBuilder) Count() int { return b.count }

// Bytes returns the encoded header: a VLQ chunk count followed by the
// chunks themselves.
func (b *HeaderBuilder) Bytes() []byte {
	out := putUvarint(make([]byte, 0, len(b.buf)+4), uint64(b.count))
	return append(out, b.buf...)
}

// HeaderIterator decodes a header encoded by HeaderBuilder one chunk at a
// time.
type HeaderIterator struct {
	buf    []byte
	remain int
}

// NewHeaderIterator wraps a complete encoded header.
func NewHeaderIterator(buf []byte) (*HeaderIterator, error) {
	n, used, err := uvarint(buf)
	if err != nil {
		return nil, err
	}
	return &HeaderIterator{buf: buf[used:], remain: int(n)}, nil
}

// Len returns how many chunks remain undecoded.
func (it *HeaderIterator) Len() int { return it.remain }

// Next decodes and returns the next chunk.
func (it *HeaderIterator) Next() (Chunk, error) {
	if it.remain == 0 {
		return Chunk{}, errs.New(errs.ProtocolError, "wire: no more chunks")
	}
	if len(it.buf) == 0 {
		return Chunk{}, errs.New(errs.ProtocolError, "wire: truncated header")
	}

	kind := ChunkKind(it.buf[0])
	it.buf = it.buf[1:]
	it.remain--

	switch kind {
	case ChunkNumber:
		v, used, err := uvarint(it.buf)
		if err != nil {
			return Chunk{}, err
		}
		it.buf = it.buf[used:]
		return Chunk{Kind: ChunkNumber, Number: v}, nil

	case ChunkString:
		n, used, err := uvarint(it.buf)
		if err != nil {
			return Chunk{}, err
		}
		it.buf = it.buf[used:]
		if uint64(len(it.buf)) < n {
			return Chunk{}, errs.New(errs.ProtocolError, "wire: truncated string chunk")
		}
		s := it.buf[:n]
		it.buf = it.buf[n:]
		return Chunk{Kind: ChunkString, String: s}, nil

	case ChunkList:
		n, used, err := uvarint(it.buf)
		if err != nil {
			return Chunk{}, err
		}
		it.buf = it.buf[used:]

		items := make([][]byte, 0, n)
		for i := uint64(0); i < n; i++ {
			ln, u2, err := uvarint(it.buf)
			if err != nil {
				return Chunk{}, err
			}
			it.buf = it.buf[u2:]
			if uint64(len(it.buf)) < ln {
				return Chunk{}, errs.New(errs.ProtocolError, "wire: truncated list item")
			}
			items = append(items, it.buf[:ln])
			it.buf = it.buf[ln:]
		}
		return Chunk{Kind: ChunkList, List: items}, nil

	default:
		return Chunk{}, errs.New(errs.ProtocolError, "wire: unknown chunk kind")
	}
}
