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
	"fmt"
	"os"
	"path/filepath"

	"github.com/nabbar/cybercache/errs"
	"github.com/nabbar/cybercache/runtimeinfo"
)

// Rotate renames path to "<path>.<timestamp>" and lets the caller reopen
// a fresh StoreWriter at path, the bookkeeping side of the ROTATE
// administrative command (the binlog/replication transport itself stays
// out of scope).
func Rotate(path string) (rotatedTo string, err error) {
	if _, statErr := os.Stat(path); statErr != nil {
		if os.IsNotExist(statErr) {
			return "", nil
		}
		return "", errs.New(errs.SystemCall, "persist: stat before rotate failed", statErr)
	}

	stamp := runtimeinfo.WallClock().Format("20060102-150405")
	target := fmt.Sprintf("%s.%s", path, stamp)

	if err = os.Rename(path, target); err != nil {
		return "", errs.New(errs.SystemCall, "persist: renaming binlog for rotation failed", err)
	}
	return target, nil
}

// Prune removes rotated binlogs under dir beyond keep most recent ones,
// matching log-rotation tools' retention-count convention.
func Prune(dir, base string, keep int) error {
	if keep <= 0 {
		return nil
	}

	matches, err := filepath.Glob(filepath.Join(dir, base+".*"))
	if err != nil {
		return errs.New(errs.SystemCall, "persist: listing rotated binlogs failed", err)
	}
	if len(matches) <= keep {
		return nil
	}

	// Glob returns lexicographic order; the timestamp suffix format sorts
	// chronologically, so the earliest excess entries are the oldest.
	for _, path := range matches[:len(matches)-keep] {
		if rmErr := os.Remove(path); rmErr != nil {
			return errs.New(errs.SystemCall, "persist: pruning rotated binlog failed", rmErr)
		}
	}
	return nil
}
