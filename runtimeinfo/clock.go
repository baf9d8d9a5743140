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

import "time"

// Monotonic returns a monotonic-clock reading suitable for measuring
// elapsed durations; Go's time.Now() already carries a monotonic reading
// piggybacked on the wall-clock value, so subtracting two of these is
// immune to wall-clock adjustments without a separate clock_gettime call.
func Monotonic() time.Time {
	return time.Now()
}

// WallClock returns the current wall-clock time with the monotonic
// reading stripped, for anything that needs to present or persist a
// calendar timestamp (log lines, persisted record headers).
func WallClock() time.Time {
	return time.Now().Round(0)
}

// Since reports the elapsed duration from a Monotonic() reading.
func Since(start time.Time) time.Duration {
	return time.Since(start)
}
