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
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
	"github.com/spaolacci/murmur3"

	"github.com/nabbar/cybercache/errs"
)

// AuthAlgo identifies the hash used to authenticate an admin-level
// request's header+payload.
type AuthAlgo uint8

const (
	AuthXXHash AuthAlgo = iota
	AuthMurmur3
)

// Sign computes the 8-byte little-endian auth hash of data under the
// shared secret key, by hashing key||data.
func Sign(algo AuthAlgo, key, data []byte) ([]byte, error) {
	var sum uint64

	switch algo {
	case AuthXXHash:
		h := xxhash.New()
		_, _ = h.Write(key)
		_, _ = h.Write(data)
		sum = h.Sum64()
	case AuthMurmur3:
		h := murmur3.New64()
		_, _ = h.Write(key)
		_, _ = h.Write(data)
		sum = h.Sum64()
	default:
		return nil, errs.New(errs.InvalidArgument, "wire: unknown auth algorithm")
	}

	out := make([]byte, 8)
	binary.LittleEndian.PutUint64(out, sum)
	return out, nil
}

// Verify recomputes the signature and compares it against the trailer
// read off the wire.
func Verify(algo AuthAlgo, key, data, trailer []byte) (bool, error) {
	want, err := Sign(algo, key, data)
	if err != nil {
		return false, err
	}
	if len(trailer) != len(want) {
		return false, nil
	}
	for i := range want {
		if want[i] != trailer[i] {
			return false, nil
		}
	}
	return true, nil
}
