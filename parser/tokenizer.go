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
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/nabbar/cybercache/errs"
)

// tokenizerState names the phases of the tokenizing state machine:
// skip run-in whitespace, read one token (tracking quote
// and escape sub-states), append it as a decoded argument, and either
// loop back for the next token or dispatch the completed line.
type tokenizerState uint8

const (
	stateSkipWhitespace tokenizerState = iota
	stateReadToken
	stateAddArgument
	stateDispatch
)

// Tokenizer turns a stream of logical lines (joining any that end in an
// unescaped backslash) into decoded argument lists.
type Tokenizer struct {
	src *bufio.Reader
}

// NewTokenizer wraps r for line-at-a-time tokenizing.
func NewTokenizer(r io.Reader) *Tokenizer {
	return &Tokenizer{src: bufio.NewReader(r)}
}

// Next reads and tokenizes the next logical line, joining continuation
// lines and skipping blank/comment-only lines. It returns io.EOF once the
// underlying reader is exhausted with no further content.
func (t *Tokenizer) Next() (Line, error) {
	raw, err := t.readLogicalLine()
	if err != nil {
		return Line{}, err
	}
	return tokenize(raw)
}

// readLogicalLine concatenates physical lines while the line ends in an
// odd number of backslashes, i.e. an unescaped continuation marker. The
// check runs on the raw line: a backslash followed by a # comment does
// not continue it.
func (t *Tokenizer) readLogicalLine() (string, error) {
	var b strings.Builder

	for {
		chunk, err := t.src.ReadString('\n')
		if len(chunk) == 0 && err != nil {
			if b.Len() > 0 {
				return b.String(), nil
			}
			return "", err
		}

		chunk = strings.TrimRight(chunk, "\r\n")
		if n := len(chunk) - len(strings.TrimRight(chunk, "\\")); n%2 == 1 {
			b.WriteString(chunk[:len(chunk)-1])
			if err == io.EOF {
				return b.String(), nil
			}
			continue
		}

		b.WriteString(chunk)
		return b.String(), nil
	}
}

// tokenize runs the SkipWhitespace/ReadToken/AddArgument/Dispatch machine
// over one already-joined logical line.
func tokenize(raw string) (Line, error) {
	var (
		state   = stateSkipWhitespace
		args    [][]byte
		cur     []byte
		total   int
		i       int
		inQuote byte // 0 means not quoted; else one of ' " `
	)

	runes := []byte(raw)

	for i < len(runes) {
		c := runes[i]

		switch state {
		case stateSkipWhitespace:
			if c == '#' && inQuote == 0 {
				i = len(runes)
				continue
			}
			if c == ' ' || c == '\t' {
				i++
				continue
			}
			state = stateReadToken
			cur = nil

		case stateReadToken:
			if inQuote != 0 {
				if c == '\\' && i+1 < len(runes) {
					decoded, n, err := decodeEscape(runes[i+1:])
					if err != nil {
						return Line{}, err
					}
					cur = append(cur, decoded...)
					i += 1 + n
					continue
				}
				if c == inQuote {
					inQuote = 0
					i++
					continue
				}
				cur = append(cur, c)
				i++
				continue
			}

			switch {
			case c == '\'' || c == '"' || c == '`':
				inQuote = c
				i++
			case c == '\\' && i+1 < len(runes):
				decoded, n, err := decodeEscape(runes[i+1:])
				if err != nil {
					return Line{}, err
				}
				cur = append(cur, decoded...)
				i += 1 + n
			case c == ' ' || c == '\t' || c == '#':
				state = stateAddArgument
			default:
				cur = append(cur, c)
				i++
			}

		case stateAddArgument:
			total += len(cur)
			if total > maxDecodedBytes {
				return Line{}, errs.New(errs.ProtocolError, fmt.Sprintf("parser: decoded argument bytes exceed %d", maxDecodedBytes))
			}
			if len(args) >= maxArgs {
				return Line{}, errs.New(errs.ProtocolError, fmt.Sprintf("parser: more than %d arguments", maxArgs))
			}
			args = append(args, cur)
			state = stateSkipWhitespace
		}
	}

	if inQuote != 0 {
		return Line{}, errs.New(errs.ProtocolError, "parser: unterminated quote")
	}

	if state == stateReadToken {
		state = stateAddArgument
	}
	if state == stateAddArgument {
		total += len(cur)
		if total > maxDecodedBytes {
			return Line{}, errs.New(errs.ProtocolError, fmt.Sprintf("parser: decoded argument bytes exceed %d", maxDecodedBytes))
		}
		if len(args) >= maxArgs {
			return Line{}, errs.New(errs.ProtocolError, fmt.Sprintf("parser: more than %d arguments", maxArgs))
		}
		args = append(args, cur)
	}

	return Line{Args: args}, nil
}

// decodeEscape decodes one escape sequence starting right after the
// backslash in s, returning the decoded bytes and how many input bytes
// (beyond the backslash itself) it consumed.
func decodeEscape(s []byte) ([]byte, int, error) {
	switch s[0] {
	case 'r':
		return []byte{'\r'}, 1, nil
	case 'n':
		return []byte{'\n'}, 1, nil
	case 't':
		return []byte{'\t'}, 1, nil
	case '\\':
		return []byte{'\\'}, 1, nil
	case '\'':
		return []byte{'\''}, 1, nil
	case '"':
		return []byte{'"'}, 1, nil
	case '`':
		return []byte{'`'}, 1, nil
	case 'x':
		if len(s) < 3 {
			return nil, 0, errs.New(errs.ProtocolError, "parser: truncated \\xHH escape")
		}
		hi, ok1 := hexDigit(s[1])
		lo, ok2 := hexDigit(s[2])
		if !ok1 || !ok2 {
			return nil, 0, errs.New(errs.ProtocolError, "parser: invalid \\xHH escape")
		}
		return []byte{hi<<4 | lo}, 3, nil
	default:
		return nil, 0, errs.New(errs.ProtocolError, fmt.Sprintf("parser: unknown escape \\%c", s[0]))
	}
}

func hexDigit(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}
