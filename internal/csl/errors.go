package csl

import "fmt"

// DomainError reports degenerate fill arguments: a zero step, a step whose
// sign can never reach the upper bound, unparsable bounds, or a fill that
// would exceed MaxDomainSize.
type DomainError struct {
	Op     string
	Reason string
	Err    error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

func (e *DomainError) Unwrap() error { return e.Err }

// ArithmeticOverflow reports a power-range term that does not fit the
// domain's scalar type.
type ArithmeticOverflow struct {
	Base     string
	Exponent string
}

func (e *ArithmeticOverflow) Error() string {
	return fmt.Sprintf("power range: %s^%s overflows", e.Base, e.Exponent)
}

// AttachmentError reports a domain or default whose kind does not fit the
// parameter it is attached to.
type AttachmentError struct {
	Parameter string
	Want      Type
	What      string
	Got       Type
}

func (e *AttachmentError) Error() string {
	return fmt.Sprintf("parameter %q of type %s cannot take a %s of type %s", e.Parameter, e.Want, e.What, e.Got)
}

// IdentityCollisionWarning is returned, not raised, when two structurally
// different references canonicalize to the same key. The set keeps the first
// one; callers log and carry on.
type IdentityCollisionWarning struct {
	Key      string
	Kept     Reference
	Rejected Reference
}

func (e *IdentityCollisionWarning) Error() string {
	return fmt.Sprintf("references %s and %s share the canonical key %q", e.Kept.describe(), e.Rejected.describe(), e.Key)
}
