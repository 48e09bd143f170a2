// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines DefaultVal, the initializer of a parameter declaration.
// The literal is kept as source text; turning it into target-language syntax
// is a skin's job.
package csl

import (
	"fmt"
	"strconv"
)

// DefaultVal is an immutable (kind, literal) pair.
type DefaultVal struct {
	kind    Type
	literal string
}

// NewDefaultVal creates a default value.
func NewDefaultVal(kind Type, literal string) DefaultVal {
	return DefaultVal{kind: kind, literal: literal}
}

func (d DefaultVal) Kind() Type      { return d.kind }
func (d DefaultVal) Literal() string { return d.literal }
func (d DefaultVal) String() string  { return d.literal }

// validateLiteral checks that literal is well-formed for kind. Kinds without
// a scalar grammar (string, intarray, mixed) accept any text.
func validateLiteral(kind Type, literal string) error {
	var err error
	switch kind {
	case TypeInt:
		_, err = strconv.ParseInt(literal, 10, 64)
	case TypeFloat:
		_, err = strconv.ParseFloat(literal, 64)
	case TypeBoolean:
		_, err = strconv.ParseBool(literal)
	}
	if err != nil {
		return fmt.Errorf("literal %q is not a valid %s: %w", literal, kind, err)
	}
	return nil
}
