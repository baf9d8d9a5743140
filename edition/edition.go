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

// Package edition encodes the server's edition/build-mode identity into
// the single byte and version strings the INFO/STATS surface reports.
package edition

import "fmt"

// Edition distinguishes the feature set the binary was built with.
type Edition uint8

const (
	Community Edition = iota
	Enterprise
)

func (e Edition) String() string {
	if e == Enterprise {
		return "Enterprise"
	}
	return "Community"
}

func (e Edition) char() byte {
	if e == Enterprise {
		return 'E'
	}
	return 'C'
}

// Subtype distinguishes the optimization profile the binary was compiled
// under.
type Subtype uint8

const (
	Normal Subtype = iota
	Fast
	Safe
)

func (s Subtype) String() string {
	switch s {
	case Fast:
		return "Fast"
	case Safe:
		return "Safe"
	default:
		return "Normal"
	}
}

func (s Subtype) char() byte {
	switch s {
	case Fast:
		return 'F'
	case Safe:
		return 'S'
	default:
		return 'N'
	}
}

// BuildMode packs an edition, subtype, and two optional flags
// (extended-feature build, instrumented build) into a single byte, the
// same shape as the reference's version_id low byte.
type BuildMode struct {
	Edition       Edition
	Subtype       Subtype
	Extended      bool
	Instrumented  bool
}

// ID encodes m into one byte: bit 7 is the edition, bits 6-5 the subtype,
// bit 1 extended, bit 0 instrumented.
func (m BuildMode) ID() byte {
	var id byte
	if m.Edition == Enterprise {
		id |= 1 << 7
	}
	id |= byte(m.Subtype) << 5
	if m.Extended {
		id |= 1 << 1
	}
	if m.Instrumented {
		id |= 1 << 0
	}
	return id
}

// Name renders the 4-character build-mode code (edition/subtype/ext/
// instrumented), matching c3_get_build_mode_name's buffer layout.
func (m BuildMode) Name() string {
	buf := [4]byte{m.Edition.char(), m.Subtype.char(), '-', '-'}
	if m.Extended {
		buf[2] = 'X'
	}
	if m.Instrumented {
		buf[3] = 'I'
	}
	return string(buf[:])
}

// Version is the three-part semantic version the wire protocol and CLI
// surface report (major = protocol changes, minor = feature changes,
// patch = bug fixes).
type Version struct {
	Major, Minor, Patch byte
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// BuildString renders "<version> [<build-mode-name>]".
func BuildString(v Version, m BuildMode) string {
	return fmt.Sprintf("%s [%s]", v, m.Name())
}

// FullVersionString renders the complete banner: "CyberCache Cluster
// (<edition> edition) <version> [<build-mode-name>]".
func FullVersionString(v Version, m BuildMode) string {
	return fmt.Sprintf("CyberCache Cluster (%s edition) %s", m.Edition, BuildString(v, m))
}
