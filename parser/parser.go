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
	"io"
	"sort"
)

// GetHandler produces the value for a registered GET key.
type GetHandler func() ([]byte, error)

// UnknownSetFunc is consulted when SET targets a key the Parser's table
// doesn't recognize; it returns whether the key was handled.
type UnknownSetFunc func(key string, args [][]byte) bool

// SetErrorFunc is notified when a recognized SET handler returns an
// error, after the error has already been reported to the caller.
type SetErrorFunc func(key string, err error)

// UnknownGetFunc is consulted when GET targets a key the Parser's table
// doesn't recognize; it returns the value (if any) and whether it handled
// the key at all.
type UnknownGetFunc func(key string) (value []byte, handled bool)

// GetErrorFunc is notified when a recognized GET handler returns an
// error, after the error has already been reported to the caller.
type GetErrorFunc func(key string, err error)

// Parser holds the SET handlers in a Table under "set:<key>" registration
// names, the GET handlers in a map keyed by the bare key, and the policy
// hooks Open Questions leave
// unspecified: on_unknown_get/on_get_error default to silent per
// DESIGN.md's recorded decision, configurable via functional options.
type Parser struct {
	table   *Table
	getters map[string]GetHandler

	onUnknownSet UnknownSetFunc
	onSetError   SetErrorFunc
	onUnknownGet UnknownGetFunc
	onGetError   GetErrorFunc
}

// Option configures a Parser at construction time.
type Option func(*Parser)

// WithUnknownSet installs the fallback for SET of an unregistered key.
func WithUnknownSet(fn UnknownSetFunc) Option { return func(p *Parser) { p.onUnknownSet = fn } }

// WithSetError installs the SET error observer.
func WithSetError(fn SetErrorFunc) Option { return func(p *Parser) { p.onSetError = fn } }

// WithUnknownGet installs the fallback for GET of an unregistered key.
func WithUnknownGet(fn UnknownGetFunc) Option { return func(p *Parser) { p.onUnknownGet = fn } }

// WithGetError installs the GET error observer.
func WithGetError(fn GetErrorFunc) Option { return func(p *Parser) { p.onGetError = fn } }

// New builds a Parser around an empty command Table.
func New(opts ...Option) *Parser {
	p := &Parser{
		table:        NewTable(),
		getters:      make(map[string]GetHandler),
		onUnknownSet: func(string, [][]byte) bool { return false },
		onUnknownGet: func(string) ([]byte, bool) { return nil, false },
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Table exposes the underlying command table for registration.
func (p *Parser) Table() *Table { return p.table }

// RegisterSet registers a SET handler under "set:<key>".
func (p *Parser) RegisterSet(key string, fn func(args [][]byte) error) {
	p.table.Register("set:"+key, func(args [][]byte) error { return fn(args) })
}

// RegisterGet registers a GET handler for key.
func (p *Parser) RegisterGet(key string, fn GetHandler) {
	p.getters[key] = fn
}

// EnumerateGetKeys lists registered GET keys matching a shell-style mask,
// reusing the command Table's wildcard engine.
func (p *Parser) EnumerateGetKeys(mask string, callback func(key string) bool) error {
	keys := make([]string, 0, len(p.getters))
	for k := range p.getters {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	t := NewTable()
	for _, k := range keys {
		t.Register(k, nil)
	}
	return t.Enumerate(mask, callback)
}

// Set dispatches a SET of key with its already-split args to the registered
// handler, or to the unknown-set hook when none is registered.
func (p *Parser) Set(key string, args [][]byte) error {
	if fn, ok := p.table.lookup("set:" + key); ok {
		if err := fn(args); err != nil {
			if p.onSetError != nil {
				p.onSetError(key, err)
			}
			return err
		}
		return nil
	}
	if !p.onUnknownSet(key, args) {
		return nil
	}
	return nil
}

// Get resolves a single GET key, consulting the unknown-key hook when no
// handler is registered for it.
func (p *Parser) Get(key string) ([]byte, bool) {
	if fn, ok := p.getters[key]; ok {
		val, err := fn()
		if err != nil {
			if p.onGetError != nil {
				p.onGetError(key, err)
			}
			return nil, false
		}
		return val, true
	}
	return p.onUnknownGet(key)
}

// ParseAll reads every logical line from r and dispatches it against
// table, stopping at the first error or at EOF.
func ParseAll(r io.Reader, table *Table) error {
	tk := NewTokenizer(r)
	for {
		line, err := tk.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if len(line.Args) == 0 {
			continue
		}
		if err = table.Dispatch(line); err != nil {
			return err
		}
	}
}
