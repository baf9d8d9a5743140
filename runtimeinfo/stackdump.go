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

package runtimeinfo

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"runtime"
	"time"

	"golang.org/x/sys/unix"

	"github.com/nabbar/cybercache/errs"
)

const stackDumpBufSize = 1 << 20

// DumpStack writes a full goroutine stack trace to a timestamped file in
// the first of $HOME or the current user's passwd home directory that is
// actually writable, else in the working directory, mirroring the
// fatal-path diagnostic dump.
func DumpStack(reason string) (string, error) {
	dir, err := dumpDirectory()
	if err != nil {
		return "", err
	}

	buf := make([]byte, stackDumpBufSize)
	n := runtime.Stack(buf, true)

	name := fmt.Sprintf("cybercache-stackdump-%s.log", WallClock().Format("20060102-150405"))
	path := filepath.Join(dir, name)

	content := fmt.Sprintf("reason: %s\ntime: %s\n\n%s", reason, time.Now().Format(time.RFC3339), buf[:n])
	if err = os.WriteFile(path, []byte(content), 0o600); err != nil {
		return "", errs.New(errs.SystemCall, "runtimeinfo: writing stack dump failed", err)
	}
	return path, nil
}

// dumpDirectory resolves $HOME, falling back to the passwd database entry
// for the effective user, falling back to the current working directory.
func dumpDirectory() (string, error) {
	if home := os.Getenv("HOME"); home != "" {
		if writable(home) {
			return home, nil
		}
	}

	if u, err := user.Current(); err == nil && u.HomeDir != "" && writable(u.HomeDir) {
		return u.HomeDir, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", errs.New(errs.SystemCall, "runtimeinfo: resolving a stack-dump directory failed", err)
	}
	return cwd, nil
}

func writable(dir string) bool {
	info, err := os.Stat(dir)
	return err == nil && info.IsDir() && unix.Access(dir, unix.W_OK) == nil
}
