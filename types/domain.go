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

// Package types defines the primitive enums shared by every layer of the
// cache cluster: memory domains, compression levels/hints, and the wire
// opcode/response-kind vocabulary.
package types

// Domain is the memory-accounting partition an allocation belongs to.
type Domain uint8

const (
	Invalid Domain = iota
	Global
	Session
	Fpc
)

func (d Domain) String() string {
	switch d {
	case Global:
		return "global"
	case Session:
		return "session"
	case Fpc:
		return "fpc"
	default:
		return "invalid"
	}
}

// Valid reports whether d is one of the three accounted domains.
func (d Domain) Valid() bool {
	return d == Global || d == Session || d == Fpc
}

// ParseDomain resolves a domain by its lower-case name, matching the
// CLI/config surface's domain masks.
func ParseDomain(name string) Domain {
	switch name {
	case "global":
		return Global
	case "session":
		return Session
	case "fpc":
		return Fpc
	default:
		return Invalid
	}
}

// Domains lists every accounted domain, in a stable order used by
// enumeration and STATS/INFO output.
func Domains() []Domain {
	return []Domain{Global, Session, Fpc}
}
