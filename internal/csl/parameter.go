// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines Parameter, a named and typed tunable entity.
//
// Why validate on attachment?
//
// A front end builds a parameter in several steps: the declaration gives the
// name and type, and the domain, default and region set arrive later. The
// constructor insists on the two required fields and every setter checks the
// attachment against the declared type, so a float range can never end up on
// an int parameter no matter which front end built it.
package csl

import (
	"errors"
	"fmt"
)

// Parameter is a tunable. Only name and type are required.
type Parameter struct {
	name        string
	kind        Type
	problemName string

	domain    Domain
	def       *DefaultVal
	regionSet *RegionSet
}

// NewParameter creates a parameter. The name must be non-empty and kind must
// be a declared Type.
func NewParameter(name string, kind Type) (*Parameter, error) {
	if name == "" {
		return nil, errors.New("parameter name must not be empty")
	}
	if !kind.Valid() {
		return nil, fmt.Errorf("parameter %q: invalid type %d", name, int(kind))
	}
	return &Parameter{name: name, kind: kind}, nil
}

func (p *Parameter) Name() string        { return p.name }
func (p *Parameter) Kind() Type          { return p.kind }
func (p *Parameter) ProblemName() string { return p.problemName }

// Domain returns the attached domain, or nil.
func (p *Parameter) Domain() Domain { return p.domain }

// Default returns the attached default and whether there is one.
func (p *Parameter) Default() (DefaultVal, bool) {
	if p.def == nil {
		return DefaultVal{}, false
	}
	return *p.def, true
}

// RegionSet returns the bound region set, or nil.
func (p *Parameter) RegionSet() *RegionSet { return p.regionSet }

// SetProblemName records the search space the parameter belongs to.
func (p *Parameter) SetProblemName(name string) {
	p.problemName = name
}

// SetDomain attaches d, replacing any previous domain. Int parameters take
// an IntDomain, float parameters a FloatDomain, mixed parameters either, and
// the remaining types none.
func (p *Parameter) SetDomain(d Domain) error {
	if d == nil {
		p.domain = nil
		return nil
	}
	if !domainFits(p.kind, d.Kind()) {
		return &AttachmentError{Parameter: p.name, Want: p.kind, What: "domain", Got: d.Kind()}
	}
	p.domain = d
	return nil
}

func domainFits(param, domain Type) bool {
	switch param {
	case TypeInt, TypeIntArray:
		return domain == TypeInt
	case TypeFloat:
		return domain == TypeFloat
	case TypeMixed:
		return domain == TypeInt || domain == TypeFloat
	default:
		return false
	}
}

// SetDefault attaches def. The default must have the parameter's type, an
// int default may initialize a float parameter, and a mixed parameter takes
// any default. Scalar literals must parse.
func (p *Parameter) SetDefault(def DefaultVal) error {
	if !defaultFits(p.kind, def.kind) {
		return &AttachmentError{Parameter: p.name, Want: p.kind, What: "default", Got: def.kind}
	}
	if err := validateLiteral(def.kind, def.literal); err != nil {
		return fmt.Errorf("parameter %q default: %w", p.name, err)
	}
	p.def = &def
	return nil
}

func defaultFits(param, def Type) bool {
	switch {
	case param == TypeMixed:
		return def.Valid()
	case param == def:
		return true
	case param == TypeFloat && def == TypeInt:
		return true
	default:
		return false
	}
}

// BindRegionSet binds rs, replacing any previously bound set.
func (p *Parameter) BindRegionSet(rs *RegionSet) {
	p.regionSet = rs
}

// CodeRegions returns the regions of the bound region set, or an empty
// slice when none is bound.
func (p *Parameter) CodeRegions() []string {
	if p.regionSet == nil {
		return []string{}
	}
	return p.regionSet.Regions()
}

// References returns what a constraint may use to name this parameter: one
// RegionRef per bound region, or a single ParamRef when no region set is
// bound.
func (p *Parameter) References() []Reference {
	regions := p.CodeRegions()
	if len(regions) == 0 {
		return []Reference{ParamRef(p.name)}
	}
	refs := make([]Reference, len(regions))
	for i, r := range regions {
		refs[i] = RegionRef(p.name, r)
	}
	return refs
}

// Variables returns the canonical forms of References, which are the
// variable names generated code declares for this parameter.
func (p *Parameter) Variables() []string {
	refs := p.References()
	out := make([]string, len(refs))
	for i, r := range refs {
		out[i] = r.Key()
	}
	return out
}
