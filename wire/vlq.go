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

// putUvarint appends x to dst as a little-endian base-128 VLQ: each byte
// carries 7 payload bits with the high bit set on every byte except the
// last, matching the header-chunk length/value encoding.
func putUvarint(dst []byte, x uint64) []byte {
	for x >= 0x80 {
		dst = append(dst, byte(x)|0x80)
		x >>= 7
	}
	return append(dst, byte(x))
}

// Uvarint decodes a VLQ at the start of src, returning the value and the
// number of bytes consumed. Exported for pipeline, which needs to detect a
// complete VLQ across several partial device reads before it knows how
// many header bytes to expect.
func Uvarint(src []byte) (uint64, int, error) { return uvarint(src) }

// uvarint decodes a VLQ at the start of src, returning the value and the
// number of bytes consumed.
func uvarint(src []byte) (uint64, int, error) {
	var x uint64
	var s uint
	for i, b := range src {
		if i == 9 && b > 1 {
			return 0, 0, errs.New(errs.ProtocolError, "wire: vlq overflows 64 bits")
		}
		if b < 0x80 {
			return x | uint64(b)<<s, i + 1, nil
		}
		x |= uint64(b&0x7f) << s
		s += 7
	}
	return 0, 0, errs.New(errs.ProtocolError, "wire: truncated vlq")
}
