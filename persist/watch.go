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
	"github.com/fsnotify/fsnotify"

	"github.com/nabbar/cybercache/errs"
)

// RotationWatcher observes a binlog directory for external rotation
// (an operator or logrotate(8) renaming the active file out from under
// the server) and reports it through Events so the owning reactor can
// reopen a fresh StoreWriter instead of appending to a now-unlinked fd.
type RotationWatcher struct {
	w      *fsnotify.Watcher
	Events chan string
}

// WatchDirectory starts watching dir for rename/remove events.
func WatchDirectory(dir string) (*RotationWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errs.New(errs.SystemCall, "persist: creating directory watcher failed", err)
	}
	if err = w.Add(dir); err != nil {
		_ = w.Close()
		return nil, errs.New(errs.SystemCall, "persist: watching binlog directory failed", err)
	}

	rw := &RotationWatcher{w: w, Events: make(chan string, 8)}
	go rw.pump()
	return rw, nil
}

func (rw *RotationWatcher) pump() {
	for ev := range rw.w.Events {
		if ev.Op&(fsnotify.Rename|fsnotify.Remove) != 0 {
			rw.Events <- ev.Name
		}
	}
	close(rw.Events)
}

// Close stops the watcher. It does not wait for the event goroutine, which
// closes Events once fsnotify closes its own event channel.
func (rw *RotationWatcher) Close() error {
	if err := rw.w.Close(); err != nil {
		return errs.New(errs.SystemCall, "persist: closing directory watcher failed", err)
	}
	return nil
}
