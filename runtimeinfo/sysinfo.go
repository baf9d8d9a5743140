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
	"runtime"

	"golang.org/x/sys/unix"

	"github.com/nabbar/cybercache/errs"
)

// SystemInfo is a point-in-time snapshot for the INFO administrative
// command.
type SystemInfo struct {
	CPUCores   int
	TotalRAM   uint64
	FreeRAM    uint64
	SharedRAM  uint64
	BufferRAM  uint64
	Uptime     int64
	LoadAvg1   float64
	LoadAvg5   float64
	LoadAvg15  float64
}

// Discover reports logical CPU count (runtime.NumCPU, already
// affinity-aware on Linux via GOMAXPROCS defaults) and memory/load figures
// pulled from a single sysinfo(2) call.
func Discover() (SystemInfo, error) {
	info := SystemInfo{CPUCores: runtime.NumCPU()}

	var si unix.Sysinfo_t
	if err := unix.Sysinfo(&si); err != nil {
		return info, errs.New(errs.SystemCall, "runtimeinfo: sysinfo() failed", err)
	}

	unit := uint64(si.Unit)
	if unit == 0 {
		unit = 1
	}
	info.TotalRAM = uint64(si.Totalram) * unit
	info.FreeRAM = uint64(si.Freeram) * unit
	info.SharedRAM = uint64(si.Sharedram) * unit
	info.BufferRAM = uint64(si.Bufferram) * unit
	info.Uptime = int64(si.Uptime)

	const scale = 1 << 16 // Linux sysinfo loads are fixed-point, base 2^16
	info.LoadAvg1 = float64(si.Loads[0]) / scale
	info.LoadAvg5 = float64(si.Loads[1]) / scale
	info.LoadAvg15 = float64(si.Loads[2]) / scale

	return info, nil
}
