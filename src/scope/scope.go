// Package scope keeps track of declared identifiers while a program is walked.
// Scopes are records in an arena and are addressed by a small Scope handle
// holding the arena and the record index. Every record refers to its parent by
// index, and a parent is always created before its children so the chain can
// only ever be walked toward the root.
package scope

import (
	"sort"

	"github.com/tanema/semc/src/lerrors"
)

type (
	record struct {
		idents     map[string]*Ident
		function   *Ident // set when the scope is a function body
		parent     int
		paramIndex int
		varIndex   int
	}
	// Table is the arena that owns every scope record of one analysis.
	Table struct {
		records []record
	}
	// Scope is a handle to a single scope record. Handles are cheap values and
	// become invalid once the scope is closed.
	Scope struct {
		tbl *Table
		idx int
	}
)

const noParent = -1

func newRecord(parent int, fn *Ident) record {
	return record{idents: map[string]*Ident{}, parent: parent, function: fn}
}

// NewGlobal creates a new arena and returns its global scope.
func NewGlobal() Scope {
	tbl := &Table{records: []record{newRecord(noParent, nil)}}
	return Scope{tbl: tbl, idx: 0}
}

func (s Scope) rec() *record { return &s.tbl.records[s.idx] }

// Child opens a new scope nested inside s.
func (s Scope) Child() Scope { return s.open(nil) }

// FuncChild opens a new scope nested inside s that is the body of fn.
func (s Scope) FuncChild(fn *Ident) Scope { return s.open(fn) }

func (s Scope) open(fn *Ident) Scope {
	s.tbl.records = append(s.tbl.records, newRecord(s.idx, fn))
	return Scope{tbl: s.tbl, idx: len(s.tbl.records) - 1}
}

// Close discards s and any scope opened after it. The global scope is never
// discarded.
func (s Scope) Close() {
	if s.idx == 0 || s.idx >= len(s.tbl.records) {
		return
	}
	clear(s.tbl.records[s.idx:])
	s.tbl.records = s.tbl.records[:s.idx]
}

// IsGlobal is true for the root scope.
func (s Scope) IsGlobal() bool { return s.rec().parent == noParent }

// Parent returns the enclosing scope, false for the global scope.
func (s Scope) Parent() (Scope, bool) {
	parent := s.rec().parent
	if parent == noParent {
		return Scope{}, false
	}
	return Scope{tbl: s.tbl, idx: parent}, true
}

// Global walks the chain up to the root.
func (s Scope) Global() Scope { return Scope{tbl: s.tbl, idx: 0} }

// Function returns the function this scope is the body of, if any.
func (s Scope) Function() *Ident { return s.rec().function }

// EnclosingFunction returns the nearest scope, s included, that is a function
// body. It is false when s is outside of any function.
func (s Scope) EnclosingFunction() (Scope, bool) {
	for cur, ok := s, true; ok; cur, ok = cur.Parent() {
		if cur.Function() != nil {
			return cur, true
		}
	}
	return Scope{}, false
}

// Resolve looks name up in s and then in each ancestor in turn.
func (s Scope) Resolve(name string) *Ident {
	for cur, ok := s, true; ok; cur, ok = cur.Parent() {
		if id, found := cur.rec().idents[name]; found {
			return id
		}
	}
	return nil
}

// Declare adds id to s. Any declaration that is not a parameter is classified
// global in the root scope and local elsewhere. The shadowing rules are
// checked against whatever declaration is reachable by name from s:
//   - a parameter may not shadow another parameter
//   - a local may only shadow a global
//   - a global may not shadow anything
//
// Non function declarations are then given the next slot of their class.
func (s Scope) Declare(id *Ident) (*Ident, error) {
	if id.Class != Param {
		if s.IsGlobal() {
			id.Class = Global
		} else {
			id.Class = Local
		}
	}

	if existing := s.Resolve(id.Name); existing != nil && conflicts(id, existing) {
		return nil, lerrors.New(lerrors.DuplicateIdentifier, "identifier %s is already declared", id.Name)
	}

	id.Index = NoSlot
	if !isFunction(id) {
		owner := s.Global()
		if fn, ok := s.EnclosingFunction(); ok {
			owner = fn
		}
		counters := owner.rec()
		if id.Class == Param {
			id.Index = counters.paramIndex
			counters.paramIndex++
		} else {
			id.Index = counters.varIndex
			counters.varIndex++
		}
	}

	s.rec().idents[id.Name] = id
	return id, nil
}

// MarkBuiltIn flags every declaration of the global scope as built in and
// restarts global slot numbering so user globals start at zero.
func (s Scope) MarkBuiltIn() {
	root := s.Global().rec()
	for _, id := range root.idents {
		id.BuiltIn = true
	}
	root.varIndex = 0
}

// Idents returns the declarations made directly in s sorted by name.
func (s Scope) Idents() []*Ident {
	idents := make([]*Ident, 0, len(s.rec().idents))
	for _, id := range s.rec().idents {
		idents = append(idents, id)
	}
	sort.Slice(idents, func(i, j int) bool { return idents[i].Name < idents[j].Name })
	return idents
}

func conflicts(id, existing *Ident) bool {
	switch id.Class {
	case Param:
		return existing.Class == Param
	case Local:
		return existing.Class != Global
	default:
		return true
	}
}
