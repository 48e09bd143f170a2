// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines Type, the closed set of value kinds a CSL parameter,
// default or constant can carry.
package csl

import "strings"

// Type is a CSL value kind.
type Type int

const (
	TypeInvalid Type = iota
	TypeInt
	TypeFloat
	TypeBoolean
	TypeIntArray
	TypeString
	TypeMixed
)

var typeNames = map[Type]string{
	TypeInt:      "int",
	TypeFloat:    "float",
	TypeBoolean:  "boolean",
	TypeIntArray: "intarray",
	TypeString:   "string",
	TypeMixed:    "mixed",
}

// TypeName returns the lower-case keyword for t, or "UNKNOWN".
func TypeName(t Type) string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// LookupType resolves a type keyword. Matching is case-insensitive and
// "bool" is accepted as an alias for "boolean".
func LookupType(name string) (Type, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "bool" {
		return TypeBoolean, true
	}
	for t, n := range typeNames {
		if n == name {
			return t, true
		}
	}
	return TypeInvalid, false
}

// String implements fmt.Stringer.
func (t Type) String() string {
	return TypeName(t)
}

// Valid reports whether t is one of the declared kinds.
func (t Type) Valid() bool {
	_, ok := typeNames[t]
	return ok
}

// Numeric reports whether values of t can live in an IntDomain or FloatDomain.
func (t Type) Numeric() bool {
	switch t {
	case TypeInt, TypeFloat, TypeIntArray, TypeMixed:
		return true
	default:
		return false
	}
}
