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
	"github.com/nabbar/cybercache/device"
	"github.com/nabbar/cybercache/errs"
	"github.com/nabbar/cybercache/logger"
	loglvl "github.com/nabbar/cybercache/logger/level"
	"github.com/nabbar/cybercache/memdomain"
	"github.com/nabbar/cybercache/types"
	"github.com/nabbar/cybercache/wire"
)

// byteReader and byteWriter are the device-layer contracts ReaderWriter
// drives one step at a time; *device.SocketReader/Writer and
// *device.FileReader/Writer both satisfy them.
type byteReader interface {
	ReadBytes(buf []byte) (device.Result, int)
}

type byteWriter interface {
	WriteBytes(buf []byte) (device.Result, int)
}

// PayloadSizer resolves the number of payload bytes to read once a
// command/response header has been fully received — the design's
// `compressed_size`, which lives inside the header chunks the wire package
// decodes, not in anything the pipeline layer parses itself.
type PayloadSizer func(header []byte) (int, error)

// ReaderWriter is the per-connection progress object: a single base type
// parameterized by Kind rather than four separate
// reader/writer subclasses, since Go has no inheritance to hang them from.
type ReaderWriter struct {
	Kind     Kind
	PeerAddr string
	Domain   types.Domain
	Flags    Flags

	// Logger, when set, receives an ERROR entry for every step that fails
	// with an error (malformed framing, quota rejection, ...). Nil skips
	// logging; a fresh ReaderWriter has no logger until SetLogger is called.
	Logger logger.Logger

	state     State
	position  int
	remaining int
	total     int

	Buffers *SharedBuffer
	rt      *memdomain.Runtime

	reader byteReader
	writer byteWriter

	sizer PayloadSizer

	vlqBuf     []byte
	descriptor wire.Descriptor
	headerBuf  []byte

	out []byte // fully materialized bytes for a writer
}

// NewReader builds a SocketCommandReader/SocketResponseReader (or their
// file-backed twins, depending on what dev implements) depending on isResponse.
func NewReader(rt *memdomain.Runtime, domain types.Domain, dev byteReader, isNetwork, isResponse bool, sizer PayloadSizer) *ReaderWriter {
	k := CommandReader
	if isResponse {
		k = ResponseReader
	}
	return &ReaderWriter{
		Kind:    k,
		Domain:  domain,
		rt:      rt,
		reader:  dev,
		sizer:   sizer,
		Buffers: NewSharedBuffer(rt, domain),
		Flags:   Flags{IsReader: true, IsResponse: isResponse, IsNetwork: isNetwork},
	}
}

// NewWriter builds a SocketCommandWriter/SocketResponseWriter (or a
// file-backed twin) around bytes already materialized by a builder
//.
func NewWriter(rt *memdomain.Runtime, domain types.Domain, dev byteWriter, isNetwork, isResponse, isPersistent bool, out []byte) *ReaderWriter {
	k := CommandWriter
	if isResponse {
		k = ResponseWriter
	}
	return &ReaderWriter{
		Kind:      k,
		Domain:    domain,
		rt:        rt,
		writer:    dev,
		out:       out,
		remaining: len(out),
		Flags:     Flags{IsResponse: isResponse, IsNetwork: isNetwork, IsPersistent: isPersistent},
	}
}

// SetLogger attaches l so subsequent step failures are reported at ERROR
// level; passing nil silences logging again.
func (rw *ReaderWriter) SetLogger(l logger.Logger) *ReaderWriter {
	rw.Logger = l
	return rw
}

func (rw *ReaderWriter) logStepError(err error) {
	if rw.Logger == nil || err == nil {
		return
	}
	rw.Logger.Entry(loglvl.ErrorLevel, "pipeline: step failed").
		FieldAdd("peer", rw.PeerAddr).
		FieldAdd("domain", rw.Domain.String()).
		ErrorAdd(err).
		Log()
}

// logDeviceError reports a device-layer read/write failure (a non-Ok,
// non-Retry Result with no accompanying Go error) at ERROR level.
func (rw *ReaderWriter) logDeviceError(res device.Result) {
	if rw.Logger == nil || res != device.Error {
		return
	}
	rw.Logger.Entry(loglvl.ErrorLevel, "pipeline: device step failed").
		FieldAdd("peer", rw.PeerAddr).
		FieldAdd("domain", rw.Domain.String()).
		FieldAdd("result", res.String()).
		Log()
}

// State reports the current progress state.
func (rw *ReaderWriter) State() State { return rw.state }

// Total reports bytes transferred across all Step calls so far.
func (rw *ReaderWriter) Total() int { return rw.total }

// Descriptor returns the decoded descriptor byte, valid once state is past
// HeaderSize.
func (rw *ReaderWriter) Descriptor() wire.Descriptor { return rw.descriptor }

// Step performs at most one device call, advances state, and returns
// without looping so a reactor can multiplex many connections. Only the
// direction matching Kind is meaningful; the other aborts with "wrong
// kind" per the step contract.
func (rw *ReaderWriter) Step() (device.Result, error) {
	if rw.state == Complete || rw.state == Error {
		return device.Ok, nil
	}
	if rw.Kind.isReader() {
		if rw.reader == nil {
			return device.Error, errs.New(errs.Fatal, "pipeline: read step on a writer-kind object")
		}
		return rw.stepRead()
	}
	if rw.writer == nil {
		return device.Error, errs.New(errs.Fatal, "pipeline: write step on a reader-kind object")
	}
	return rw.stepWrite()
}

func (rw *ReaderWriter) stepRead() (device.Result, error) {
	switch rw.state {
	case Created:
		rw.state = HeaderSize
		return device.Ok, nil

	case HeaderSize:
		return rw.stepHeaderSize()

	case Header:
		return rw.stepHeader()

	case Payload:
		return rw.stepPayload()

	default:
		return device.Ok, nil
	}
}

func (rw *ReaderWriter) stepHeaderSize() (device.Result, error) {
	// One byte at a time: until the descriptor and the VLQ header-length
	// that follows it are fully read, there is no way to know where the
	// header-size section ends and the header content begins, so a larger
	// read could over-read into the header itself.
	chunk := make([]byte, 1)
	res, n := rw.reader.ReadBytes(chunk)
	if res == device.Retry {
		return res, nil
	}
	if res != device.Ok {
		rw.state = Error
		rw.logDeviceError(res)
		return res, nil
	}

	rw.vlqBuf = append(rw.vlqBuf, chunk[:n]...)
	rw.total += n

	if len(rw.vlqBuf) < 1 {
		return device.Ok, nil
	}

	size, _, err := wire.Uvarint(rw.vlqBuf[1:])
	if err != nil {
		if len(rw.vlqBuf) >= 11 {
			rw.state = Error
			e := errs.New(errs.ProtocolError, "pipeline: header-size VLQ never terminates")
			rw.logStepError(e)
			return device.Error, e
		}
		return device.Ok, nil
	}

	rw.descriptor = wire.Descriptor(rw.vlqBuf[0])
	rw.Flags.HasMarker = rw.descriptor.HasMarker()
	rw.Flags.HasAuth = rw.descriptor.HasAuth()
	rw.remaining = int(size)
	rw.position = 0
	rw.state = Header
	return device.Ok, nil
}

func (rw *ReaderWriter) stepHeader() (device.Result, error) {
	if rw.headerBuf == nil {
		buf, err := rw.Buffers.AppendHeader(rw.remaining)
		if err != nil {
			rw.state = Error
			rw.logStepError(err)
			return device.Error, err
		}
		rw.headerBuf = buf
	}

	res, n := rw.reader.ReadBytes(rw.headerBuf[rw.position:])
	if res == device.Retry {
		return res, nil
	}
	if res != device.Ok {
		rw.state = Error
		rw.logDeviceError(res)
		return res, nil
	}

	rw.position += n
	rw.total += n

	if rw.position < len(rw.headerBuf) {
		return device.Ok, nil
	}

	if !rw.descriptor.HasPayload() {
		rw.state = Complete
		return device.Ok, nil
	}

	size, err := rw.sizer(rw.headerBuf)
	if err != nil {
		rw.state = Error
		rw.logStepError(err)
		return device.Error, err
	}
	rw.remaining = size
	rw.position = 0
	rw.state = Payload
	return device.Ok, nil
}

func (rw *ReaderWriter) stepPayload() (device.Result, error) {
	if rw.remaining == 0 {
		rw.state = Complete
		return device.Ok, nil
	}

	buf := rw.Buffers.Payload()
	if buf == nil {
		var err error
		buf, err = rw.Buffers.AppendPayload(rw.remaining)
		if err != nil {
			rw.state = Error
			rw.logStepError(err)
			return device.Error, err
		}
	}

	res, n := rw.reader.ReadBytes(buf[rw.position:])
	if res == device.Retry {
		return res, nil
	}
	if res != device.Ok {
		rw.state = Error
		rw.logDeviceError(res)
		return res, nil
	}

	rw.position += n
	rw.total += n

	if rw.position >= len(buf) {
		rw.state = Complete
	}
	return device.Ok, nil
}

func (rw *ReaderWriter) stepWrite() (device.Result, error) {
	if rw.state == Created {
		rw.state = HeaderSize
	}

	if rw.position >= len(rw.out) {
		rw.state = Complete
		return device.Ok, nil
	}

	res, n := rw.writer.WriteBytes(rw.out[rw.position:])
	if res == device.Retry {
		return res, nil
	}
	if res != device.Ok {
		rw.state = Error
		rw.logDeviceError(res)
		return res, nil
	}

	rw.position += n
	rw.total += n
	if rw.position >= len(rw.out) {
		rw.state = Complete
	}
	return device.Ok, nil
}
