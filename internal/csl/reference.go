// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines Reference, the identity of a name used inside a
// constraint body.
//
// A Reference names either a whole parameter (x) or a parameter instantiated
// for one code region (x in region r1). Its canonical key is "x" or "x_r1",
// computed once at construction. Equality and set membership look at the key
// and nothing else, so ParamRef("x_r1") and RegionRef("x", "r1") are the same
// reference. That collision is part of the identity contract: the key is also
// the variable name the generated code uses, and two references that would
// produce the same variable must be the same argument.
package csl

import "fmt"

// RefKind distinguishes the two reference variants.
type RefKind uint8

const (
	RefParam RefKind = iota + 1
	RefRegion
)

func (k RefKind) String() string {
	switch k {
	case RefParam:
		return "param"
	case RefRegion:
		return "region"
	default:
		return "unknown"
	}
}

// Reference is an immutable value. The zero value is not a valid reference.
type Reference struct {
	kind   RefKind
	name   string
	region string
	key    string
}

// ParamRef references the parameter name.
func ParamRef(name string) Reference {
	return Reference{kind: RefParam, name: name, key: name}
}

// RegionRef references parameter varName instantiated for region.
func RegionRef(varName, region string) Reference {
	return Reference{kind: RefRegion, name: varName, region: region, key: varName + "_" + region}
}

func (r Reference) Kind() RefKind { return r.kind }

// Name is the referenced parameter's name.
func (r Reference) Name() string { return r.name }

// Region is the region name of a region reference, empty otherwise.
func (r Reference) Region() string { return r.region }

// Key is the canonical form.
func (r Reference) Key() string { return r.key }

// String implements fmt.Stringer and returns the canonical form.
func (r Reference) String() string { return r.key }

// Equal reports whether r and o have the same canonical form.
func (r Reference) Equal(o Reference) bool { return r.key == o.key }

// SameShape reports whether r and o are structurally identical, which is
// stricter than Equal.
func (r Reference) SameShape(o Reference) bool {
	return r.kind == o.kind && r.name == o.name && r.region == o.region
}

func (r Reference) describe() string {
	if r.kind == RefRegion {
		return fmt.Sprintf("%s(%s, %s)", r.kind, r.name, r.region)
	}
	return fmt.Sprintf("%s(%s)", r.kind, r.name)
}

// ReferenceSet is a set of references keyed by canonical form. Iteration
// follows first-seen insertion order.
type ReferenceSet struct {
	index map[string]int
	refs  []Reference
}

// NewReferenceSet creates a set holding refs. Collisions among refs are
// resolved the same way Add resolves them and are not reported.
func NewReferenceSet(refs ...Reference) *ReferenceSet {
	s := &ReferenceSet{index: make(map[string]int, len(refs))}
	for _, r := range refs {
		_, _ = s.Add(r)
	}
	return s
}

// Add inserts ref unless an equal reference is already present. When the
// present reference has a different shape the set keeps it and Add returns
// an *IdentityCollisionWarning alongside added == false.
func (s *ReferenceSet) Add(ref Reference) (bool, error) {
	if s.index == nil {
		s.index = make(map[string]int)
	}
	if i, ok := s.index[ref.key]; ok {
		kept := s.refs[i]
		if !kept.SameShape(ref) {
			return false, &IdentityCollisionWarning{Key: ref.key, Kept: kept, Rejected: ref}
		}
		return false, nil
	}
	s.index[ref.key] = len(s.refs)
	s.refs = append(s.refs, ref)
	return true, nil
}

// Union adds every reference of other in other's order and returns the
// collisions met on the way.
func (s *ReferenceSet) Union(other *ReferenceSet) []*IdentityCollisionWarning {
	if other == nil {
		return nil
	}
	var collisions []*IdentityCollisionWarning
	for _, r := range other.refs {
		if _, err := s.Add(r); err != nil {
			if w, ok := err.(*IdentityCollisionWarning); ok {
				collisions = append(collisions, w)
			}
		}
	}
	return collisions
}

// Contains reports whether a reference with ref's canonical form is present.
func (s *ReferenceSet) Contains(ref Reference) bool {
	if s == nil {
		return false
	}
	_, ok := s.index[ref.key]
	return ok
}

// Len returns the number of distinct references.
func (s *ReferenceSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.refs)
}

// References returns a copy of the members in insertion order.
func (s *ReferenceSet) References() []Reference {
	if s == nil {
		return nil
	}
	return append([]Reference(nil), s.refs...)
}

// Keys returns the canonical forms in insertion order.
func (s *ReferenceSet) Keys() []string {
	if s == nil {
		return nil
	}
	keys := make([]string, len(s.refs))
	for i, r := range s.refs {
		keys[i] = r.key
	}
	return keys
}
