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

// Package compress implements the compression engine: a Codec per
// algorithm, a Dispatcher that applies the caller's chosen codec and keeps
// the payload raw when that codec does not shrink it, and a per-worker codec
// cache so concurrent connections don't contend on a single shared
// encoder/decoder.
package compress

import (
	"bytes"
	"io"

	"github.com/nabbar/cybercache/types"
)

// Codec compresses and decompresses whole payloads. Implementations are
// not required to be safe for concurrent use by multiple goroutines at
// once; Dispatcher caches one instance per (worker, codec, level) key.
type Codec interface {
	ID() types.CodecID

	// MaxCompressedSize returns a safe upper bound for Pack's output
	// given an input of srcLen bytes, so callers can size payload
	// buffers up front.
	MaxCompressedSize(srcLen int) int

	// Pack compresses src, appending to dst (which may be nil) and
	// returning the grown slice.
	Pack(dst, src []byte) ([]byte, error)

	// Unpack decompresses src, appending to dst (which may be nil) and
	// returning the grown slice.
	Unpack(dst, src []byte) ([]byte, error)
}

// streamCodec adapts an io.Writer/io.Reader-oriented compression library
// (lz4, zstd, brotli, bzip2) to the whole-payload Codec interface by
// streaming through an in-memory buffer, generalizing the usual
// SetWriter/SetReader/fill pattern for archive/compress engines.
type streamCodec struct {
	id        types.CodecID
	newWriter func(w io.Writer) (io.WriteCloser, error)
	newReader func(r io.Reader) (io.ReadCloser, error)
	bound     func(srcLen int) int
}

func (c *streamCodec) ID() types.CodecID { return c.id }

func (c *streamCodec) MaxCompressedSize(srcLen int) int {
	if c.bound != nil {
		return c.bound(srcLen)
	}
	// Generic worst-case bound for zlib-family callers when the
	// library itself exposes no bound function.
	return srcLen + srcLen/2 + 256
}

func (c *streamCodec) Pack(dst, src []byte) ([]byte, error) {
	buf := bytes.NewBuffer(dst)

	w, err := c.newWriter(buf)
	if err != nil {
		return dst, err
	}
	if _, err = w.Write(src); err != nil {
		_ = w.Close()
		return dst, err
	}
	if err = w.Close(); err != nil {
		return dst, err
	}
	return buf.Bytes(), nil
}

func (c *streamCodec) Unpack(dst, src []byte) ([]byte, error) {
	r, err := c.newReader(bytes.NewReader(src))
	if err != nil {
		return dst, err
	}
	defer func() { _ = r.Close() }()

	out := bytes.NewBuffer(dst)
	if _, err = io.Copy(out, r); err != nil {
		return dst, err
	}
	return out.Bytes(), nil
}

// nopReadCloser adapts a plain io.Reader (brotli.Reader, lz4.Reader have
// no Close method) to io.ReadCloser for streamCodec.newReader.
type nopReadCloser struct{ io.Reader }

func (nopReadCloser) Close() error { return nil }

// closerFunc adapts a Close method with no error return (zstd.Decoder) to
// io.Closer.
type closerFunc func()

func (c closerFunc) Close() error { c(); return nil }

// readCloser composes a Reader with an independent Closer, for libraries
// whose reader and closer come from different methods/signatures.
type readCloser struct {
	io.Reader
	io.Closer
}
