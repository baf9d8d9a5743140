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

package compress

import (
	"io"

	"github.com/andybalholm/brotli"
	bz2 "github.com/dsnet/compress/bzip2"
	"github.com/golang/snappy"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/nabbar/cybercache/types"
)

// noneCodec stores the payload as-is; the dispatcher falls back to it
// whenever compression doesn't pay off.
type noneCodec struct{}

func (noneCodec) ID() types.CodecID { return types.CodecNone }

func (noneCodec) MaxCompressedSize(srcLen int) int { return srcLen }

func (noneCodec) Pack(dst, src []byte) ([]byte, error) {
	return append(dst, src...), nil
}

func (noneCodec) Unpack(dst, src []byte) ([]byte, error) {
	return append(dst, src...), nil
}

// snappyCodec wraps golang/snappy's one-shot block API directly: it needs
// no streaming adapter since the library already operates on whole slices.
type snappyCodec struct{}

func (snappyCodec) ID() types.CodecID { return types.CodecSnappy }

func (snappyCodec) MaxCompressedSize(srcLen int) int { return snappy.MaxEncodedLen(srcLen) }

func (snappyCodec) Pack(dst, src []byte) ([]byte, error) {
	out := snappy.Encode(nil, src)
	return append(dst, out...), nil
}

func (snappyCodec) Unpack(dst, src []byte) ([]byte, error) {
	out, err := snappy.Decode(nil, src)
	if err != nil {
		return dst, err
	}
	return append(dst, out...), nil
}

func newLz4Codec() Codec {
	return &streamCodec{
		id: types.CodecLz4,
		newWriter: func(w io.Writer) (io.WriteCloser, error) {
			return lz4.NewWriter(w), nil
		},
		newReader: func(r io.Reader) (io.ReadCloser, error) {
			return nopReadCloser{Reader: lz4.NewReader(r)}, nil
		},
	}
}

func newZstdCodec() Codec {
	return &streamCodec{
		id: types.CodecZstd,
		newWriter: func(w io.Writer) (io.WriteCloser, error) {
			return zstd.NewWriter(w)
		},
		newReader: func(r io.Reader) (io.ReadCloser, error) {
			d, err := zstd.NewReader(r)
			if err != nil {
				return nil, err
			}
			return readCloser{Reader: d, Closer: closerFunc(d.Close)}, nil
		},
	}
}

func newBrotliCodec(level int) Codec {
	return &streamCodec{
		id: types.CodecBrotli,
		newWriter: func(w io.Writer) (io.WriteCloser, error) {
			return brotli.NewWriterLevel(w, level), nil
		},
		newReader: func(r io.Reader) (io.ReadCloser, error) {
			return nopReadCloser{Reader: brotli.NewReader(r)}, nil
		},
	}
}

func newBzip2Codec() Codec {
	return &streamCodec{
		id: types.CodecBzip2,
		newWriter: func(w io.Writer) (io.WriteCloser, error) {
			return bz2.NewWriter(w, nil)
		},
		newReader: func(r io.Reader) (io.ReadCloser, error) {
			return bz2.NewReader(r, nil)
		},
	}
}

// levelFor maps coarse Level enum onto brotli's 0-11 effort
// scale; the other wired codecs (lz4, zstd, bzip2, snappy) don't expose a
// tunable level through their streaming constructors used here.
func levelFor(l types.Level) int {
	switch l {
	case types.Fastest:
		return 1
	case types.Average:
		return 5
	case types.Best:
		return 9
	case types.Extreme:
		return 11
	default:
		return 5
	}
}
