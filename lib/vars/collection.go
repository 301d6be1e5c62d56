// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package vars

import (
	"maps"
	"slices"
)

// Collection is an ordered sequence of variable definitions. Names are
// not required to be unique; Merge and Resolve decide which definition
// of a repeated name wins.
type Collection struct {
	vars []Var
}

// Define returns a collection holding a copy of vars in the given
// order. Duplicates are kept.
func Define(vars ...Var) Collection {
	return Collection{vars: slices.Clone(vars)}
}

// Vars returns a copy of the definitions in order.
func (c Collection) Vars() []Var { return slices.Clone(c.vars) }

func (c Collection) Len() int { return len(c.vars) }

// Names returns the name of every definition in order, repeats
// included.
func (c Collection) Names() []string {
	names := make([]string, len(c.vars))
	for i, v := range c.vars {
		names[i] = v.Name()
	}
	return names
}

// Lookup returns the last definition of name, which is the one Merge
// and Resolve would keep.
func (c Collection) Lookup(name string) (Var, bool) {
	for i := len(c.vars) - 1; i >= 0; i-- {
		if c.vars[i].Name() == name {
			return c.vars[i], true
		}
	}
	return Var{}, false
}

// Merge overlays other onto c and returns the result. A name's position
// is fixed by where it is first seen, walking c and then other; its
// definition is whichever was seen last. Names only in other are
// appended in other's order. Neither input is modified.
//
//	base:     a=1 b=2 c=3
//	override: d=4 b=5
//	merged:   a=1 b=5 c=3 d=4
func (c Collection) Merge(other Collection) Collection {
	positions := make(map[string]int, len(c.vars)+len(other.vars))
	merged := make([]Var, 0, len(c.vars)+len(other.vars))
	for _, source := range [][]Var{c.vars, other.vars} {
		for _, v := range source {
			if index, seen := positions[v.Name()]; seen {
				merged[index] = v
				continue
			}
			positions[v.Name()] = len(merged)
			merged = append(merged, v)
		}
	}
	return Collection{vars: merged}
}

// Resolve projects every definition to its value and keys it by the
// definition's own name. Later definitions of a name replace earlier
// ones.
func (c Collection) Resolve() Dictionary {
	dictionary := make(Dictionary, len(c.vars))
	for _, v := range c.vars {
		dictionary.Insert(v.Name(), v.Resolve())
	}
	return dictionary
}

// Equal reports whether both collections hold the same definitions in
// the same order.
func (c Collection) Equal(other Collection) bool {
	return slices.Equal(c.vars, other.vars)
}

// Dictionary maps caller-chosen keys to resolved values. The key and
// the value's embedded name are independent: Insert never rewrites the
// name, and encoding writes the key. A Dictionary is a plain map and is
// not safe for concurrent mutation.
type Dictionary map[string]Resolved

func NewDictionary() Dictionary { return make(Dictionary) }

// Insert stores value under name and returns the entry it replaced, if
// any. The last write wins. A nil Dictionary is allocated on first
// insert, so the zero value is ready to use.
func (d *Dictionary) Insert(name string, value Resolved) (previous Resolved, replaced bool) {
	if *d == nil {
		*d = make(Dictionary)
	}
	previous, replaced = (*d)[name]
	(*d)[name] = value
	return previous, replaced
}

func (d Dictionary) Lookup(name string) (Resolved, bool) {
	value, ok := d[name]
	return value, ok
}

// Names returns the keys in sorted order, which is also the order they
// are encoded in.
func (d Dictionary) Names() []string {
	return slices.Sorted(maps.Keys(d))
}

func (d Dictionary) Clone() Dictionary {
	if d == nil {
		return NewDictionary()
	}
	return maps.Clone(d)
}
