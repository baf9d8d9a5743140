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

package errs

import (
	"math"
	"sort"
	"strconv"
)

// CodeError is a numeric error classification, similar in spirit to HTTP
// status codes: 0 is unknown, 1000-1999 is reserved for the taxonomy of
// the design.
type CodeError uint16

const (
	UnknownError CodeError = 0
	UnknownMessage         = "unknown error"
	NullMessage            = ""
)

// Taxonomy from the design.
const (
	// InvalidArgument: null/empty/out-of-range input; never retried.
	InvalidArgument CodeError = 1000 + iota
	// SystemCall: wraps an OS errno; EAGAIN/EWOULDBLOCK are reclassified to Retry upstream.
	SystemCall
	// PeerClosed: EOF or RST on a connection.
	PeerClosed
	// ProtocolError: malformed framing, bad marker, decompression failure, auth mismatch.
	ProtocolError
	// QuotaExceeded: a non-Global domain would exceed quota even after reclaim.
	QuotaExceeded
	// Fatal: assertion failure, counter underflow, unexpected codec id.
	Fatal
)

func init() {
	RegisterIdFctMessage(InvalidArgument, func(code CodeError) string {
		switch code {
		case InvalidArgument:
			return "invalid argument"
		case SystemCall:
			return "system call failed"
		case PeerClosed:
			return "peer closed connection"
		case ProtocolError:
			return "protocol error"
		case QuotaExceeded:
			return "quota exceeded"
		case Fatal:
			return "fatal error"
		default:
			return UnknownMessage
		}
	})
}

var idMsgFct = make(map[CodeError]Message)

type Message func(code CodeError) (message string)

func (c CodeError) Uint16() uint16 { return uint16(c) }
func (c CodeError) Int() int       { return int(c) }
func (c CodeError) String() string { return strconv.Itoa(c.Int()) }

func (c CodeError) Message() string {
	if c == UnknownError {
		return UnknownMessage
	}
	if f, ok := idMsgFct[findCodeErrorInMapMessage(c)]; ok {
		if m := f(c); m != "" {
			return m
		}
	}
	return UnknownMessage
}

// Error builds a new Error from this code, its registered message, and parents.
func (c CodeError) Error(p ...error) Error {
	return New(c, c.Message(), p...)
}

// Errorf builds a new Error, formatting the registered message with args.
func (c CodeError) Errorf(args ...interface{}) Error {
	return Newf(c, c.Message(), args...)
}

// RegisterIdFctMessage registers a message function for codes >= minCode.
func RegisterIdFctMessage(minCode CodeError, fct Message) {
	idMsgFct[minCode] = fct
	orderMapMessage()
}

// ExistInMapMessage reports whether code resolves to a non-empty message.
func ExistInMapMessage(code CodeError) bool {
	if f, ok := idMsgFct[findCodeErrorInMapMessage(code)]; ok {
		return f(code) != NullMessage
	}
	return false
}

func getMapMessageKey() []CodeError {
	keys := make([]int, 0, len(idMsgFct))
	for k := range idMsgFct {
		keys = append(keys, int(k.Uint16()))
	}
	sort.Ints(keys)

	res := make([]CodeError, 0, len(keys))
	for _, k := range keys {
		var i CodeError
		switch {
		case k < 0:
			i = 0
		case k > math.MaxUint16:
			i = math.MaxUint16
		default:
			i = CodeError(k)
		}
		res = append(res, i)
	}
	return res
}

func orderMapMessage() {
	res := make(map[CodeError]Message)
	for _, k := range getMapMessageKey() {
		res[k] = idMsgFct[k]
	}
	idMsgFct = res
}

func findCodeErrorInMapMessage(code CodeError) CodeError {
	var res CodeError
	for _, k := range getMapMessageKey() {
		if k <= code && k > res {
			res = k
		}
	}
	return res
}

func isCodeInSlice(code CodeError, slice []CodeError) bool {
	for _, c := range slice {
		if c == code {
			return true
		}
	}
	return false
}

func unicCodeSlice(slice []CodeError) []CodeError {
	res := make([]CodeError, 0, len(slice))
	for _, c := range slice {
		if !isCodeInSlice(c, res) {
			res = append(res, c)
		}
	}
	return res
}
