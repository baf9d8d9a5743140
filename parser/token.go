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

// Package parser implements the tokenizing command/config-line parser of
// the design: quoted/escaped word splitting, comment and
// line-continuation handling, a binary-searched command table, wildcard
// enumeration, and the typed value decoders used by SET/GET handlers.
package parser

// maxArgs bounds the number of words a single logical line may decode
// into; a line that needs more is malformed input, not a bigger limit.
const maxArgs = 16

// maxDecodedBytes bounds the total size of decoded argument bytes across
// a logical line, independent of the raw (still-quoted/escaped) length.
const maxDecodedBytes = 4096

// Line is one fully tokenized logical line: the command word plus its
// arguments, already quote-stripped and escape-decoded.
type Line struct {
	Args [][]byte
}

// Command returns the line's first token, or nil for a blank line.
func (l Line) Command() []byte {
	if len(l.Args) == 0 {
		return nil
	}
	return l.Args[0]
}
