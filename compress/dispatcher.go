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
	"fmt"

	"github.com/nabbar/cybercache/atomic"
	"github.com/nabbar/cybercache/errs"
	"github.com/nabbar/cybercache/logger"
	loglvl "github.com/nabbar/cybercache/logger/level"
	"github.com/nabbar/cybercache/types"
)

// cacheKey identifies a codec instance within a reactor worker: the design
// section 4.2's single-reactor-per-thread model means each worker only
// ever touches its own slot concurrently, so caching by (worker, codec,
// level) avoids re-allocating an encoder/decoder on every message while
// never sharing one across goroutines.
type cacheKey struct {
	worker int
	codec  types.CodecID
	level  types.Level
}

// Dispatcher picks a codec, reusing per-worker instances, and applies the
// spec's "only keep it compressed if it's smaller" rule.
type Dispatcher struct {
	cache atomic.MapTyped[cacheKey, Codec]
	log   logger.Logger
}

// NewDispatcher builds a Dispatcher with an empty codec cache.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{cache: atomic.NewMapTyped[cacheKey, Codec]()}
}

// SetLogger attaches l so a decompression failure is reported at ERROR
// level before it reaches the caller; nil silences logging again.
func (d *Dispatcher) SetLogger(l logger.Logger) *Dispatcher {
	d.log = l
	return d
}

func newCodec(id types.CodecID, level types.Level) (Codec, error) {
	switch id {
	case types.CodecNone:
		return noneCodec{}, nil
	case types.CodecSnappy:
		return snappyCodec{}, nil
	case types.CodecLz4:
		return newLz4Codec(), nil
	case types.CodecZstd:
		return newZstdCodec(), nil
	case types.CodecBrotli:
		return newBrotliCodec(levelFor(level)), nil
	case types.CodecBzip2:
		return newBzip2Codec(), nil
	default:
		return nil, errs.New(errs.InvalidArgument, fmt.Sprintf("compress: unknown codec id %d", id))
	}
}

// codecFor returns the cached codec for (worker, id, level), constructing
// it on first use.
func (d *Dispatcher) codecFor(worker int, id types.CodecID, level types.Level) (Codec, error) {
	key := cacheKey{worker: worker, codec: id, level: level}
	if c, ok := d.cache.Load(key); ok {
		return c, nil
	}

	c, err := newCodec(id, level)
	if err != nil {
		return nil, err
	}

	if actual, loaded := d.cache.LoadOrStore(key, c); loaded {
		return actual, nil
	}
	return c, nil
}

// Pack compresses src with the requested codec on behalf of worker,
// falling back to CodecNone when compression doesn't shrink the payload
// below budget or when the codec refuses the input
// outright (the Lz4 "refuses certain sizes" edge case).
func (d *Dispatcher) Pack(worker int, id types.CodecID, level types.Level, src []byte) (types.CodecID, []byte, error) {
	if id == types.CodecNone || len(src) == 0 {
		out, _ := noneCodec{}.Pack(nil, src)
		return types.CodecNone, out, nil
	}

	c, err := d.codecFor(worker, id, level)
	if err != nil {
		return types.CodecInvalid, nil, err
	}

	packed, err := c.Pack(nil, src)
	if err != nil || len(packed) >= len(src) {
		out, _ := noneCodec{}.Pack(nil, src)
		return types.CodecNone, out, nil
	}

	return id, packed, nil
}

// Unpack decompresses src that was tagged with id on behalf of worker.
func (d *Dispatcher) Unpack(worker int, id types.CodecID, src []byte) ([]byte, error) {
	if id == types.CodecNone {
		out, _ := noneCodec{}.Unpack(nil, src)
		return out, nil
	}

	c, err := d.codecFor(worker, id, types.Average)
	if err != nil {
		return nil, err
	}
	out, err := c.Unpack(nil, src)
	if err != nil && d.log != nil {
		d.log.Entry(loglvl.ErrorLevel, "compress: decompression failed").
			FieldAdd("codec", id).
			FieldAdd("worker", worker).
			ErrorAdd(err).
			Log()
	}
	return out, err
}

// MaxCompressedSize returns the output-buffer bound for a given codec and
// input length, used by pipeline's header-estimate phase.
func (d *Dispatcher) MaxCompressedSize(id types.CodecID, srcLen int) int {
	c, err := newCodec(id, types.Average)
	if err != nil {
		return srcLen
	}
	return c.MaxCompressedSize(srcLen)
}
