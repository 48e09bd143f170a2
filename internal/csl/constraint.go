// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines Constraint, a named predicate over parameters.
//
// Why store the raw hcl.Expression?
//
// The body is kept exactly as the front end parsed it. Evaluating it (the
// explorer) and translating it into a target language (the skins) are both
// later stages with their own rules, and neither belongs in the model. The
// argument set is what the model owns: the references the body uses,
// resolved once by the front end.
package csl

import (
	"errors"

	"github.com/hashicorp/hcl/v2"
)

// Constraint is immutable after construction.
type Constraint struct {
	name        string
	problemName string
	arguments   *ReferenceSet
	body        hcl.Expression
}

// NewConstraint creates a constraint. args is copied; body may be nil for
// constraints built without a source expression.
func NewConstraint(name, problemName string, args *ReferenceSet, body hcl.Expression) (*Constraint, error) {
	if name == "" {
		return nil, errors.New("constraint name must not be empty")
	}
	return &Constraint{
		name:        name,
		problemName: problemName,
		arguments:   NewReferenceSet(args.References()...),
		body:        body,
	}, nil
}

func (c *Constraint) Name() string        { return c.name }
func (c *Constraint) ProblemName() string { return c.problemName }

// Body returns the source expression, or nil.
func (c *Constraint) Body() hcl.Expression { return c.body }

// Arguments returns the references used by the body in first-seen order.
func (c *Constraint) Arguments() []Reference { return c.arguments.References() }

// ArgumentSet returns a copy of the argument set.
func (c *Constraint) ArgumentSet() *ReferenceSet {
	return NewReferenceSet(c.arguments.References()...)
}
