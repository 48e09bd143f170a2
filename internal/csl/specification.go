// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines Specification, the top-level legality predicate of a
// search space.
//
// Why compute the arguments at construction?
//
// The argument union is the parameter list of the generated predicate, so it
// has to agree with the constraint list every time it is read. Building it
// once in NewSpecification and never exposing the constraint slice for
// mutation makes a stale read impossible. The order is first-seen: the
// constraints in stored order, and within each constraint its own argument
// order.
package csl

import (
	"context"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/cslgen/internal/ctxlog"
)

// Specification is immutable after construction.
type Specification struct {
	problemName string
	constraints []*Constraint
	body        hcl.Expression
	arguments   *ReferenceSet
	collisions  []*IdentityCollisionWarning
}

// NewSpecification ties constraints together. body is the expression that
// combines them (nil means all constraints AND-ed in order). Identity
// collisions met while building the argument union are logged as warnings.
func NewSpecification(ctx context.Context, problemName string, constraints []*Constraint, body hcl.Expression) *Specification {
	logger := ctxlog.FromContext(ctx)

	s := &Specification{
		problemName: problemName,
		constraints: append([]*Constraint(nil), constraints...),
		body:        body,
		arguments:   NewReferenceSet(),
	}
	for _, c := range s.constraints {
		for _, w := range s.arguments.Union(c.arguments) {
			logger.Warn("Reference identity collision in specification arguments.",
				"problem", problemName,
				"constraint", c.Name(),
				"key", w.Key,
				"kept", w.Kept.describe(),
				"rejected", w.Rejected.describe(),
			)
			s.collisions = append(s.collisions, w)
		}
	}
	logger.Debug("Specification built.", "problem", problemName, "constraints", len(s.constraints), "arguments", s.arguments.Len())
	return s
}

func (s *Specification) ProblemName() string { return s.problemName }

// Body returns the combining expression, or nil when the constraints are
// simply AND-ed.
func (s *Specification) Body() hcl.Expression { return s.body }

// Constraints returns the constraints in stored order.
func (s *Specification) Constraints() []*Constraint {
	return append([]*Constraint(nil), s.constraints...)
}

// Arguments returns the deduplicated union of every constraint's arguments.
func (s *Specification) Arguments() []Reference { return s.arguments.References() }

// ArgumentSet returns a copy of the argument union.
func (s *Specification) ArgumentSet() *ReferenceSet {
	return NewReferenceSet(s.arguments.References()...)
}

// Collisions returns the identity collisions met while building the union.
func (s *Specification) Collisions() []*IdentityCollisionWarning {
	return append([]*IdentityCollisionWarning(nil), s.collisions...)
}
