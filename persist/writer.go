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
	"os"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"github.com/nabbar/cybercache/errs"
	"github.com/nabbar/cybercache/wire"
)

// FctIncrement reports bytes written/read since the last call, the same
// callback shape an I/O progress wrapper registers, generalized here to
// the STORE/RESTORE byte counters.
type FctIncrement func(n int64)

// StoreWriter appends STORE records to a binlog file and optionally
// drives an mpb progress bar sized to the expected total byte count.
type StoreWriter struct {
	f   *os.File
	bar *mpb.Bar
	p   *mpb.Progress
	inc FctIncrement
}

// NewStoreWriter opens path for appending. When total is positive and
// interactive is true, a single-bar mpb progress display tracks bytes
// written; interactive CLI invocations get a bar, daemon-driven STOREs
// (total <= 0 or non-interactive) just get the raw counter.
func NewStoreWriter(path string, total int64, interactive bool) (*StoreWriter, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, errs.New(errs.SystemCall, "persist: opening store file failed", err)
	}

	w := &StoreWriter{f: f}

	if interactive && total > 0 {
		w.p = mpb.New()
		w.bar = w.p.AddBar(total,
			mpb.PrependDecorators(decor.Name("STORE")),
			mpb.AppendDecorators(decor.CountersKibiByte("% .1f / % .1f")),
		)
	}

	return w, nil
}

// RegisterFctIncrement installs a caller-supplied byte counter.
func (w *StoreWriter) RegisterFctIncrement(fct FctIncrement) {
	w.inc = fct
}

// Append writes one record and advances the progress bar / counter.
func (w *StoreWriter) Append(msg wire.Message) (int, error) {
	n, err := AppendRecord(w.f, msg)
	if err != nil {
		return n, err
	}
	if w.bar != nil {
		w.bar.IncrBy(n)
	}
	if w.inc != nil {
		w.inc(int64(n))
	}
	return n, nil
}

// Close flushes the progress display (if any) and closes the file.
func (w *StoreWriter) Close() error {
	if w.bar != nil {
		w.bar.SetTotal(w.bar.Current(), true)
	}
	if w.p != nil {
		w.p.Wait()
	}
	if err := w.f.Close(); err != nil {
		return errs.New(errs.SystemCall, "persist: closing store file failed", err)
	}
	return nil
}
