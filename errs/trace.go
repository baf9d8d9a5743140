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
	"path"
	"path/filepath"
	"runtime"
	"strings"
)

const pathSeparator = "/"

type frame struct {
	function string
	file     string
	line     int
}

func nilFrame() frame { return frame{} }

// frameHere captures the call site one level above the errs package's own
// public constructors (New, Newf, CodeError.Error, ...).
func frameHere() frame {
	pc := make([]uintptr, 24)
	n := runtime.Callers(2, pc)
	if n <= 0 {
		return nilFrame()
	}

	frames := runtime.CallersFrames(pc[:n])
	for {
		f, more := frames.Next()
		if strings.Contains(f.Function, "nabbar/cybercache/errs") {
			if !more {
				break
			}
			continue
		}
		return frame{function: f.Function, file: f.File, line: f.Line}
	}
	return nilFrame()
}

func convPath(s string) string {
	return strings.ReplaceAll(s, string(filepath.Separator), pathSeparator)
}

func filterPath(pathname string) string {
	pathname = convPath(pathname)
	if i := strings.LastIndex(pathname, pathSeparator+"mod"+pathSeparator); i != -1 {
		pathname = pathname[i+len(pathSeparator+"mod"+pathSeparator):]
	}
	if i := strings.LastIndex(pathname, pathSeparator+"vendor"+pathSeparator); i != -1 {
		pathname = pathname[i+len(pathSeparator+"vendor"+pathSeparator):]
	}
	pathname = path.Clean(pathname)
	return strings.Trim(pathname, pathSeparator)
}
