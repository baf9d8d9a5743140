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

package persist

import (
	"io"
	"os"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"github.com/nabbar/cybercache/errs"
)

// RestoreReader replays a binlog file record by record for the RESTORE
// command, optionally driving an mpb bar sized to the file's length.
type RestoreReader struct {
	f   *os.File
	bar *mpb.Bar
	p   *mpb.Progress
	inc FctIncrement
}

// NewRestoreReader opens path for reading. When interactive, a bar is
// sized to the file's current byte length (the binlog does not grow
// while being replayed back into the cache).
func NewRestoreReader(path string, interactive bool) (*RestoreReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errs.New(errs.SystemCall, "persist: opening restore file failed", err)
	}

	r := &RestoreReader{f: f}

	if interactive {
		if info, statErr := f.Stat(); statErr == nil && info.Size() > 0 {
			r.p = mpb.New()
			r.bar = r.p.AddBar(info.Size(),
				mpb.PrependDecorators(decor.Name("RESTORE")),
				mpb.AppendDecorators(decor.CountersKibiByte("% .1f / % .1f")),
			)
		}
	}

	return r, nil
}

// RegisterFctIncrement installs a caller-supplied byte counter.
func (r *RestoreReader) RegisterFctIncrement(fct FctIncrement) {
	r.inc = fct
}

// Next returns the next record's raw wire-encoded bytes, or io.EOF once
// the file is exhausted at a clean record boundary.
func (r *RestoreReader) Next() ([]byte, error) {
	body, err := ReadRecord(r.f)
	if err != nil {
		return nil, err
	}

	n := int64(recordLengthSize + len(body))
	if r.bar != nil {
		r.bar.IncrInt64(n)
	}
	if r.inc != nil {
		r.inc(n)
	}
	return body, nil
}

// Close flushes the progress display (if any) and closes the file.
func (r *RestoreReader) Close() error {
	if r.bar != nil {
		r.bar.SetTotal(r.bar.Current(), true)
	}
	if r.p != nil {
		r.p.Wait()
	}
	if err := r.f.Close(); err != nil {
		return errs.New(errs.SystemCall, "persist: closing restore file failed", err)
	}
	return nil
}

var _ io.Closer = (*RestoreReader)(nil)
