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
	"bytes"

	"github.com/nabbar/cybercache/errs"
	"github.com/nabbar/cybercache/types"
)

// Message is a fully assembled wire message: descriptor, header chunks,
// optional payload, optional integrity marker, optional auth trailer.
type Message struct {
	Descriptor Descriptor
	Header     []byte
	Payload    []byte
	AuthAlgo   AuthAlgo
	AuthKey    []byte
}

// Encode serializes m per the layout: descriptor byte,
// header, [marker, payload], [auth trailer].
func Encode(m Message) ([]byte, error) {
	var out bytes.Buffer
	out.WriteByte(byte(m.Descriptor))
	out.Write(m.Header)

	if m.Descriptor.HasPayload() {
		if m.Descriptor.HasMarker() {
			out.Write(types.IntegrityMarker[:])
		}
		out.Write(m.Payload)
	}

	if m.Descriptor.HasAuth() {
		signed := append([]byte{}, m.Header...) // header + payload, not the descriptor or marker
		if m.Descriptor.HasPayload() {
			signed = append(signed, m.Payload...)
		}
		sig, err := Sign(m.AuthAlgo, m.AuthKey, signed)
		if err != nil {
			return nil, err
		}
		out.Write(sig)
	}

	return out.Bytes(), nil
}

// Check validates the integrity marker and, if present, the auth trailer
// of an encoded message already split into its sections — the check()
// assertion of the design.
func Check(descriptor Descriptor, header, marker, payload, trailer, algo byte, key []byte) error {
	if descriptor.HasMarker() {
		if !bytes.Equal(marker, types.IntegrityMarker[:]) {
			return errs.New(errs.ProtocolError, "wire: integrity marker mismatch")
		}
	}

	if descriptor.HasAuth() {
		signed := append(append([]byte{}, header...), payload...)
		ok, err := Verify(AuthAlgo(algo), key, signed, trailer)
		if err != nil {
			return err
		}
		if !ok {
			return errs.New(errs.ProtocolError, "wire: auth hash mismatch")
		}
	}

	return nil
}
