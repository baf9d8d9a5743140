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

// Package persist implements the append-only record framing and rotation
// bookkeeping behind the STORE/RESTORE/ROTATE administrative commands.
// The actual replication/consensus machinery those commands ultimately
// feed stays out of scope; this package only frames and rotates the
// on-disk log.
package persist

import (
	"encoding/binary"
	"io"

	"github.com/nabbar/cybercache/errs"
	"github.com/nabbar/cybercache/wire"
)

// recordLengthSize is the little-endian uint32 length prefix written
// ahead of every framed wire.Message so a reader knows where each record
// ends; ReadRecord reports a truncated tail as a ProtocolError.
const recordLengthSize = 4

// AppendRecord frames msg as [4-byte length][wire-encoded message] and
// writes it to w, returning the total bytes written.
func AppendRecord(w io.Writer, msg wire.Message) (int, error) {
	body, err := wire.Encode(msg)
	if err != nil {
		return 0, err
	}

	var lenBuf [recordLengthSize]byte
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(body)))

	n1, err := w.Write(lenBuf[:])
	if err != nil {
		return n1, errs.New(errs.SystemCall, "persist: writing record length failed", err)
	}

	n2, err := w.Write(body)
	if err != nil {
		return n1 + n2, errs.New(errs.SystemCall, "persist: writing record body failed", err)
	}

	return n1 + n2, nil
}

// ReadRecord reads one length-prefixed record from r. io.EOF propagates
// unchanged when r is exhausted exactly at a record boundary; any other
// short read is a protocol error, since a binlog should never end
// mid-record on a clean shutdown.
func ReadRecord(r io.Reader) ([]byte, error) {
	var lenBuf [recordLengthSize]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, errs.New(errs.ProtocolError, "persist: truncated record length", err)
	}

	size := binary.LittleEndian.Uint32(lenBuf[:])
	body := make([]byte, size)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, errs.New(errs.ProtocolError, "persist: truncated record body", err)
	}

	return body, nil
}
