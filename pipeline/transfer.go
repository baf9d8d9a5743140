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

import (
	"github.com/nabbar/cybercache/compress"
	"github.com/nabbar/cybercache/errs"
	"github.com/nabbar/cybercache/types"
)

// TransferPayload moves ownership of a completed reader's payload into a
// cache domain in one step: the payload slice is
// moved, the source buffer's payload region becomes empty, and the
// memory-domain accounting is adjusted to reflect the new owner. When codec
// is not CodecNone the payload is decompressed before the domain charge,
// using the dispatcher's per-worker codec cache.
func TransferPayload(src *ReaderWriter, target types.Domain, worker int, codec types.CodecID, uncompressedSize int, dispatcher *compress.Dispatcher) ([]byte, error) {
	if src.state != Complete {
		return nil, errs.New(errs.InvalidArgument, "pipeline: cannot transfer payload before Complete")
	}

	raw := src.Buffers.TakePayload()
	srcDomain := src.Buffers.Domain()

	if src.rt != nil && len(raw) > 0 {
		if err := src.rt.Transfer(srcDomain, target, int64(len(raw))); err != nil {
			return nil, err
		}
	}

	if codec == types.CodecNone || codec == types.CodecInvalid || dispatcher == nil {
		return raw, nil
	}

	dst := make([]byte, 0, uncompressedSize)
	out, err := dispatcher.Unpack(worker, codec, raw)
	if err != nil {
		return nil, err
	}
	return append(dst, out...), nil
}
