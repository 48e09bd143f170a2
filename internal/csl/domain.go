// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines Domain, the enumerated set of legal values of a
// parameter.
//
// Why a sealed union?
//
// A domain is either a sequence of integers or a sequence of floats, and the
// two fill their ranges with different arithmetic. Each variant owns its own
// typed slice, so no caller ever has to guess what a loosely typed element
// is. The unexported isDomain method keeps other packages from adding
// variants the renderer and explorer would not understand.
//
// Fill operations append. They are not idempotent, never deduplicate, and
// either append every value of the range or none of them.
package csl

import (
	"fmt"
	"strconv"
	"strings"
)

// MaxDomainSize bounds how many values a single domain may hold.
const MaxDomainSize = 1 << 20

// Domain is the sealed interface implemented by *IntDomain and *FloatDomain.
type Domain interface {
	isDomain()

	// Kind is the scalar type of the values.
	Kind() Type
	// Len is the number of values.
	Len() int
	// Values returns the values boxed as int64 or float64, in insertion order.
	Values() []any
	// Literals returns the values as decimal text, in insertion order.
	Literals() []string

	// FillLinearText parses its arguments into the domain's scalar type and
	// appends min, min+step, ... up to max.
	FillLinearText(min, max, step string) error
	// FillPowerText parses its arguments into the domain's scalar type and
	// appends base^i for every i from min to max stepping by one.
	FillPowerText(min, max, base string) error
}

// AsIntDomain returns d as an *IntDomain.
func AsIntDomain(d Domain) (*IntDomain, bool) {
	i, ok := d.(*IntDomain)
	return i, ok
}

// AsFloatDomain returns d as a *FloatDomain.
func AsFloatDomain(d Domain) (*FloatDomain, bool) {
	f, ok := d.(*FloatDomain)
	return f, ok
}

// NewDomain returns an empty domain able to hold values of kind.
func NewDomain(kind Type) (Domain, error) {
	switch kind {
	case TypeInt, TypeIntArray:
		return NewIntDomain(), nil
	case TypeFloat:
		return NewFloatDomain(), nil
	default:
		return nil, fmt.Errorf("type %s has no value domain", kind)
	}
}

func checkGrowth(op string, have int, add uint64) error {
	if have >= MaxDomainSize || add > uint64(MaxDomainSize-have) {
		return tooLarge(op)
	}
	return nil
}

func tooLarge(op string) error {
	return &DomainError{Op: op, Reason: fmt.Sprintf("range would grow the domain past %d values", MaxDomainSize)}
}

func parseIntBound(op, name, text string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
	if err != nil {
		return 0, &DomainError{Op: op, Reason: fmt.Sprintf("%s %q is not an integer", name, text), Err: err}
	}
	return v, nil
}

func parseFloatBound(op, name, text string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0, &DomainError{Op: op, Reason: fmt.Sprintf("%s %q is not a number", name, text), Err: err}
	}
	return v, nil
}
