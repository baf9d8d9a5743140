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

// Package errs provides the error taxonomy backing the cache cluster:
// numeric codes with registered messages, parent/child hierarchies, and
// call-site trace capture, matching the design (InvalidArgument,
// SystemCall, PeerClosed, ProtocolError, QuotaExceeded, Fatal).
package errs

import (
	"errors"
	"fmt"
	"strings"
)

type FuncMap func(e error) bool

type ReturnError func(code int, msg string, file string, line int)

// Error extends the standard error with a numeric code, a parent chain,
// and call-site trace information.
type Error interface {
	error

	IsCode(code CodeError) bool
	HasCode(code CodeError) bool
	GetCode() CodeError
	GetParentCode() []CodeError

	Is(e error) bool
	IsError(e error) bool
	HasError(err error) bool
	HasParent() bool
	GetParent(withMainError bool) []error
	Map(fct FuncMap) bool
	ContainsString(s string) bool

	Add(parent ...error)
	SetParent(parent ...error)

	Code() uint16
	CodeSlice() []uint16

	CodeError(pattern string) string
	CodeErrorSlice(pattern string) []string
	CodeErrorTrace(pattern string) string
	CodeErrorTraceSlice(pattern string) []string

	Error() string
	StringError() string
	StringErrorSlice() []string

	GetError() error
	GetErrorSlice() []error
	Unwrap() []error

	GetTrace() string
	GetTraceSlice() []string
}

type ers struct {
	c uint16
	e string
	p []Error
	t frame
}

func (e *ers) is(err *ers) bool {
	if e == nil || err == nil {
		return false
	}

	var (
		ss = e.GetTrace()
		sd = err.GetTrace()
		ts = len(ss) > 0
		td = len(sd) > 0
	)

	if (ts || td) && !(ts && td) {
		return false
	} else if ts && td {
		return strings.EqualFold(ss, sd)
	}

	ss = e.Error()
	sd = err.Error()
	ts = len(ss) > 0
	td = len(sd) > 0

	if (ts || td) && !(ts && td) {
		return false
	} else if ts && td {
		return strings.EqualFold(ss, sd)
	}

	cs, cd := e.Code(), err.Code()
	ts, td = cs > 0, cd > 0

	if (ts || td) && !(ts && td) {
		return false
	} else if ts && td {
		return cs == cd
	}

	return false
}

func (e *ers) Is(err error) bool {
	if err == nil {
		return false
	}
	if er, ok := err.(*ers); ok {
		return e.is(er)
	}
	return e.IsError(err)
}

func (e *ers) Add(parent ...error) {
	for _, v := range parent {
		if v == nil {
			continue
		}

		var (
			ok  bool
			er  *ers
			err Error
		)

		if er, ok = v.(*ers); ok {
			if e.IsError(er) {
				for _, erp := range er.p {
					e.Add(erp)
				}
			} else {
				e.p = append(e.p, er)
			}
		} else if err, ok = v.(Error); !ok {
			e.p = append(e.p, &ers{c: 0, e: v.Error()})
		} else {
			e.p = append(e.p, err)
		}
	}
}

func (e *ers) IsCode(code CodeError) bool { return e.c == code.Uint16() }

func (e *ers) IsError(err error) bool { return strings.EqualFold(e.e, err.Error()) }

func (e *ers) HasCode(code CodeError) bool {
	if e.IsCode(code) {
		return true
	}
	for _, p := range e.p {
		if p.HasCode(code) {
			return true
		}
	}
	return false
}

func (e *ers) GetCode() CodeError { return CodeError(e.c) }

func (e *ers) GetParentCode() []CodeError {
	res := []CodeError{e.GetCode()}
	for _, p := range e.p {
		res = append(res, p.GetParentCode()...)
	}
	return unicCodeSlice(res)
}

func (e *ers) HasError(err error) bool {
	if e.IsError(err) {
		return true
	}
	for _, p := range e.p {
		if p.IsError(err) || p.HasError(err) {
			return true
		}
	}
	return false
}

func (e *ers) HasParent() bool { return len(e.p) > 0 }

func (e *ers) GetParent(withMainError bool) []error {
	res := make([]error, 0)
	if withMainError {
		res = append(res, &ers{c: e.c, e: e.e, t: e.t})
	}
	for _, er := range e.p {
		res = append(res, er.GetParent(true)...)
	}
	return res
}

func (e *ers) SetParent(parent ...error) {
	e.p = make([]Error, 0)
	e.Add(parent...)
}

func (e *ers) Map(fct FuncMap) bool {
	if !fct(e) {
		return false
	}
	for _, er := range e.p {
		if !er.Map(fct) {
			return false
		}
	}
	return true
}

func (e *ers) ContainsString(s string) bool {
	if strings.Contains(e.e, s) {
		return true
	}
	for _, i := range e.p {
		if i.ContainsString(s) {
			return true
		}
	}
	return false
}

func (e *ers) Code() uint16 { return e.c }

func (e *ers) CodeSlice() []uint16 {
	r := []uint16{e.Code()}
	for _, v := range e.p {
		if v.Code() > 0 {
			r = append(r, v.Code())
		}
	}
	return r
}

func (e *ers) Error() string { return modeError.format(e) }

func (e *ers) StringError() string { return e.e }

func (e *ers) StringErrorSlice() []string {
	r := []string{e.StringError()}
	for _, v := range e.p {
		r = append(r, v.Error())
	}
	return r
}

func (e *ers) GetError() error { return errors.New(e.e) } //nolint:goerr113

func (e *ers) GetErrorSlice() []error {
	r := []error{e.GetError()}
	for _, v := range e.p {
		if v == nil {
			continue
		}
		r = append(r, v.GetErrorSlice()...)
	}
	return r
}

func (e *ers) Unwrap() []error {
	if len(e.p) < 1 {
		return nil
	}
	r := make([]error, 0, len(e.p))
	for _, v := range e.p {
		if v != nil {
			r = append(r, v)
		}
	}
	return r
}

func (e *ers) GetTrace() string {
	if e.t.file != "" {
		return fmt.Sprintf("%s#%d", filterPath(e.t.file), e.t.line)
	} else if e.t.function != "" {
		return fmt.Sprintf("%s#%d", e.t.function, e.t.line)
	}
	return ""
}

func (e *ers) GetTraceSlice() []string {
	r := []string{e.GetTrace()}
	for _, v := range e.p {
		if t := v.GetTrace(); t != "" {
			r = append(r, t)
		}
	}
	return r
}

func (e *ers) CodeError(pattern string) string {
	if pattern == "" {
		pattern = defaultPattern
	}
	return fmt.Sprintf(pattern, e.Code(), e.StringError())
}

func (e *ers) CodeErrorSlice(pattern string) []string {
	r := []string{e.CodeError(pattern)}
	for _, v := range e.p {
		r = append(r, v.CodeError(pattern))
	}
	return r
}

func (e *ers) CodeErrorTrace(pattern string) string {
	if pattern == "" {
		pattern = defaultPatternTrace
	}
	return fmt.Sprintf(pattern, e.Code(), e.StringError(), e.GetTrace())
}

func (e *ers) CodeErrorTraceSlice(pattern string) []string {
	r := []string{e.CodeErrorTrace(pattern)}
	for _, v := range e.p {
		r = append(r, v.CodeErrorTrace(pattern))
	}
	return r
}

// Is reports whether e wraps an *ers* error (ours), delegating to errors.As.
func Is(e error) bool {
	var err Error
	return errors.As(e, &err)
}

// Get extracts the Error interface from e, or nil.
func Get(e error) Error {
	var err Error
	if errors.As(e, &err) {
		return err
	}
	return nil
}

// Has reports whether e, or one of its parents, carries code.
func Has(e error, code CodeError) bool {
	if err := Get(e); err != nil {
		return err.HasCode(code)
	}
	return false
}

// Make wraps a plain error into Error (code 0) if it is not one already.
func Make(e error) Error {
	var err Error
	if e == nil {
		return nil
	} else if errors.As(e, &err) {
		return err
	}
	return &ers{c: 0, e: e.Error(), t: nilFrame()}
}

// New creates a new Error with the given numeric code, message, and parents.
func New(code CodeError, message string, parent ...error) Error {
	p := make([]Error, 0, len(parent))
	for _, e := range parent {
		if er := Make(e); er != nil {
			p = append(p, er)
		}
	}
	return &ers{c: code.Uint16(), e: message, p: p, t: frameHere()}
}

// Newf creates a new Error with a printf-formatted message.
func Newf(code CodeError, pattern string, args ...any) Error {
	return &ers{c: code.Uint16(), e: fmt.Sprintf(pattern, args...), t: frameHere()}
}
