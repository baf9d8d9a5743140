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

// Opcode identifies a client request on the wire.
type Opcode uint8

const (
	OpInvalid Opcode = iota
	OpWrite
	OpRead
	OpDelete
	OpLog
	OpRotate
	OpStore
	OpRestore
	OpLoadConfig
	OpSet
	OpGet
	OpStats
	OpInfo
	OpCheck
	OpPing
	OpShutdown
)

// AuthLevel is the authentication requirement declared by an opcode.
type AuthLevel uint8

const (
	AuthNone AuthLevel = iota
	AuthUser
	AuthAdmin
)

// ResponseKind identifies the shape of a server reply.
type ResponseKind uint8

const (
	RespInvalid ResponseKind = iota
	RespOk
	RespData
	RespList
	RespError
)

func (r ResponseKind) String() string {
	switch r {
	case RespOk:
		return "ok"
	case RespData:
		return "data"
	case RespList:
		return "list"
	case RespError:
		return "error"
	default:
		return "invalid"
	}
}

// IntegrityMarker is the fixed 4-byte constant emitted immediately before
// a payload when per-connection integrity checking is enabled. The value
// is an implementation choice fixed
// here to the example bytes given in the design.
var IntegrityMarker = [4]byte{0xC3, 0xCA, 0xCE, 0x02}
