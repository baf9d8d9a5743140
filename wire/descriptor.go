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

// Package wire implements the binary protocol of the design:
// the single descriptor byte, VLQ-encoded header chunks (Number/String/
// List), the fixed integrity marker, and the auth-hash dispatch used to
// authenticate admin-level requests.
package wire

import "github.com/nabbar/cybercache/types"

// Descriptor is the single leading byte of every message: four flag bits
// plus a 4-bit opcode, exactly as the design lays the wire out.
type Descriptor byte

const (
	flagHasPayload Descriptor = 1 << 7
	flagHasAuth    Descriptor = 1 << 6
	flagHasMarker  Descriptor = 1 << 5
	flagIsAdmin    Descriptor = 1 << 4
	opcodeMask     Descriptor = 0x0F
)

// NewDescriptor packs the given flags and opcode into one byte.
func NewDescriptor(op types.Opcode, hasPayload, hasAuth, hasMarker, isAdmin bool) Descriptor {
	var d Descriptor
	if hasPayload {
		d |= flagHasPayload
	}
	if hasAuth {
		d |= flagHasAuth
	}
	if hasMarker {
		d |= flagHasMarker
	}
	if isAdmin {
		d |= flagIsAdmin
	}
	return d | (Descriptor(op) & opcodeMask)
}

// Opcode extracts the 4-bit opcode field.
func (d Descriptor) Opcode() types.Opcode { return types.Opcode(d & opcodeMask) }

// HasPayload reports whether a payload section follows the header.
func (d Descriptor) HasPayload() bool { return d&flagHasPayload != 0 }

// HasAuth reports whether an auth hash trailer is present.
func (d Descriptor) HasAuth() bool { return d&flagHasAuth != 0 }

// HasMarker reports whether the fixed integrity marker precedes the
// payload.
func (d Descriptor) HasMarker() bool { return d&flagHasMarker != 0 }

// IsAdmin reports whether the request requires admin-level authentication.
func (d Descriptor) IsAdmin() bool { return d&flagIsAdmin != 0 }
