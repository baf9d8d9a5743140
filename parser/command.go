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
	"path/filepath"
	"sort"

	"github.com/nabbar/cybercache/errs"
	"github.com/nabbar/cybercache/logger"
	loglvl "github.com/nabbar/cybercache/logger/level"
)

// Handler executes one fully-tokenized command line.
type Handler func(args [][]byte) error

// command is one entry of a Table, kept sorted by Name for binary search.
type command struct {
	name string
	fn   Handler
}

// Table dispatches command words to handlers via binary search, matching
// command-table lookup.
type Table struct {
	entries []command
	sorted  bool
	log     logger.Logger
}

// NewTable creates an empty command table.
func NewTable() *Table {
	return &Table{}
}

// SetLogger attaches l so an unknown command word is reported at WARN
// level; nil silences logging again.
func (t *Table) SetLogger(l logger.Logger) *Table {
	t.log = l
	return t
}

// Register adds or replaces the handler for name. Registration may happen
// in any order; Dispatch/Enumerate sort lazily on first use.
func (t *Table) Register(name string, fn Handler) {
	for i := range t.entries {
		if t.entries[i].name == name {
			t.entries[i].fn = fn
			return
		}
	}
	t.entries = append(t.entries, command{name: name, fn: fn})
	t.sorted = false
}

func (t *Table) ensureSorted() {
	if t.sorted {
		return
	}
	sort.Slice(t.entries, func(i, j int) bool { return t.entries[i].name < t.entries[j].name })
	t.sorted = true
}

// lookup binary-searches the sorted entries for an exact name match.
func (t *Table) lookup(name string) (Handler, bool) {
	t.ensureSorted()
	i := sort.Search(len(t.entries), func(i int) bool { return t.entries[i].name >= name })
	if i < len(t.entries) && t.entries[i].name == name {
		return t.entries[i].fn, true
	}
	return nil, false
}

// Dispatch looks up line's command word and invokes its handler with the
// remaining arguments. Blank lines are silently ignored.
func (t *Table) Dispatch(line Line) error {
	cmd := line.Command()
	if cmd == nil {
		return nil
	}

	fn, ok := t.lookup(string(cmd))
	if !ok {
		e := errs.New(errs.InvalidArgument, "parser: unknown command: "+string(cmd))
		if t.log != nil {
			t.log.Entry(loglvl.WarnLevel, "parser: unknown command").
				FieldAdd("command", string(cmd)).
				ErrorAdd(e).
				Log()
		}
		return e
	}
	return fn(line.Args[1:])
}

// Enumerate invokes callback for every registered command name matching
// the shell-style glob mask"), in sorted order. Matching uses path/filepath's glob
// semantics (*, ?, [set]) since the spec does not define a richer dialect
// and no third-party glob engine appears in the corpus.
func (t *Table) Enumerate(mask string, callback func(name string) bool) error {
	t.ensureSorted()
	for _, e := range t.entries {
		matched, err := filepath.Match(mask, e.name)
		if err != nil {
			return errs.New(errs.InvalidArgument, "parser: invalid wildcard mask: "+mask)
		}
		if matched && !callback(e.name) {
			break
		}
	}
	return nil
}
