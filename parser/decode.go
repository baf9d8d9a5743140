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

package parser

import (
	"strconv"
	"strings"
	"time"

	"github.com/nabbar/cybercache/duration"
	"github.com/nabbar/cybercache/errs"
)

// GetLong decodes a signed 64-bit integer argument.
func GetLong(arg []byte) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(string(arg)), 10, 64)
	if err != nil {
		return 0, errs.New(errs.InvalidArgument, "parser: not an integer: "+string(arg))
	}
	return v, nil
}

// GetULong decodes an unsigned 64-bit integer argument (get_ulong).
func GetULong(arg []byte) (uint64, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(string(arg)), 10, 64)
	if err != nil {
		return 0, errs.New(errs.InvalidArgument, "parser: not an unsigned integer: "+string(arg))
	}
	return v, nil
}

// GetInt decodes a signed 32-bit integer argument (get_int).
func GetInt(arg []byte) (int32, error) {
	v, err := GetLong(arg)
	if err != nil {
		return 0, err
	}
	if v < -(1<<31) || v > (1<<31)-1 {
		return 0, errs.New(errs.InvalidArgument, "parser: integer out of 32-bit range: "+string(arg))
	}
	return int32(v), nil
}

// GetUInt decodes an unsigned 32-bit integer argument (get_uint).
func GetUInt(arg []byte) (uint32, error) {
	v, err := GetULong(arg)
	if err != nil {
		return 0, err
	}
	if v > (1<<32)-1 {
		return 0, errs.New(errs.InvalidArgument, "parser: integer out of 32-bit range: "+string(arg))
	}
	return uint32(v), nil
}

// GetFloat decodes a 32-bit float argument (get_float).
func GetFloat(arg []byte) (float32, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(string(arg)), 32)
	if err != nil {
		return 0, errs.New(errs.InvalidArgument, "parser: not a float: "+string(arg))
	}
	return float32(v), nil
}

// GetDouble decodes a 64-bit float argument (get_double).
func GetDouble(arg []byte) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(string(arg)), 64)
	if err != nil {
		return 0, errs.New(errs.InvalidArgument, "parser: not a float: "+string(arg))
	}
	return v, nil
}

// GetBoolean decodes a boolean argument (get_boolean): "yes"/"true"/"on"/
// "1" and their opposites, case-insensitively.
func GetBoolean(arg []byte) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(string(arg))) {
	case "yes", "true", "on", "1":
		return true, nil
	case "no", "false", "off", "0":
		return false, nil
	default:
		return false, errs.New(errs.InvalidArgument, "parser: not a boolean: "+string(arg))
	}
}

// GetDuration decodes a duration argument (get_duration), delegating to
// the ambient duration package's "XhYmZs"-style grammar.
func GetDuration(arg []byte) (time.Duration, error) {
	d, err := duration.ParseByte(arg)
	if err != nil {
		return 0, errs.New(errs.InvalidArgument, "parser: not a duration: "+string(arg))
	}
	return time.Duration(d), nil
}

var sizeSuffix = map[byte]int64{
	'k': 1 << 10, 'K': 1 << 10,
	'm': 1 << 20, 'M': 1 << 20,
	'g': 1 << 30, 'G': 1 << 30,
	't': 1 << 40, 'T': 1 << 40,
}

// GetSize decodes a byte-count argument (get_size) with an optional
// K/M/G/T suffix; no ecosystem library in the corpus covers this exact
// grammar, so it is implemented directly against strconv (see DESIGN.md).
func GetSize(arg []byte) (int64, error) {
	s := strings.TrimSpace(string(arg))
	if s == "" {
		return 0, errs.New(errs.InvalidArgument, "parser: empty size")
	}

	mult := int64(1)
	if m, ok := sizeSuffix[s[len(s)-1]]; ok {
		mult = m
		s = s[:len(s)-1]
	}

	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, errs.New(errs.InvalidArgument, "parser: not a size: "+string(arg))
	}
	return v * mult, nil
}
