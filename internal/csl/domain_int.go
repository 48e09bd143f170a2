package csl

import (
	"math"
	"strconv"
)

const (
	opLinear = "linear range"
	opPower  = "power range"
)

// IntDomain is a sequence of integers.
type IntDomain struct {
	values []int64
}

// NewIntDomain creates an integer domain holding values.
func NewIntDomain(values ...int64) *IntDomain {
	return &IntDomain{values: append([]int64(nil), values...)}
}

func (*IntDomain) isDomain() {}

func (d *IntDomain) Kind() Type { return TypeInt }
func (d *IntDomain) Len() int   { return len(d.values) }

// Push appends values as-is.
func (d *IntDomain) Push(values ...int64) {
	d.values = append(d.values, values...)
}

// Ints returns a copy of the values.
func (d *IntDomain) Ints() []int64 {
	return append([]int64(nil), d.values...)
}

func (d *IntDomain) Values() []any {
	out := make([]any, len(d.values))
	for i, v := range d.values {
		out[i] = v
	}
	return out
}

func (d *IntDomain) Literals() []string {
	out := make([]string, len(d.values))
	for i, v := range d.values {
		out[i] = strconv.FormatInt(v, 10)
	}
	return out
}

// FillLinear appends min, min+step, ... while the term is <= max. A range
// with min > max is empty. A zero step, or a negative step with min <= max,
// is a DomainError.
func (d *IntDomain) FillLinear(min, max, step int64) error {
	if step == 0 {
		return &DomainError{Op: opLinear, Reason: "step must not be zero"}
	}
	if min > max {
		return nil
	}
	if step < 0 {
		return &DomainError{Op: opLinear, Reason: "negative step never reaches max " + strconv.FormatInt(max, 10) + " from min " + strconv.FormatInt(min, 10)}
	}

	// The span is computed in uint64 so that ranges covering most of the
	// int64 space neither overflow nor loop forever.
	span := uint64(max) - uint64(min)
	if span/uint64(step) >= MaxDomainSize {
		return tooLarge(opLinear)
	}
	count := span/uint64(step) + 1
	if err := checkGrowth(opLinear, len(d.values), count); err != nil {
		return err
	}
	for k := uint64(0); k < count; k++ {
		d.values = append(d.values, min+int64(k*uint64(step)))
	}
	return nil
}

// FillLinearText is FillLinear over decimal text.
func (d *IntDomain) FillLinearText(min, max, step string) error {
	lo, err := parseIntBound(opLinear, "min", min)
	if err != nil {
		return err
	}
	hi, err := parseIntBound(opLinear, "max", max)
	if err != nil {
		return err
	}
	st, err := parseIntBound(opLinear, "step", step)
	if err != nil {
		return err
	}
	return d.FillLinear(lo, hi, st)
}

// FillPower appends base^i for i = min..max. Terms that do not fit in an
// int64 fail with ArithmeticOverflow and nothing is appended. Negative
// exponents truncate toward zero.
func (d *IntDomain) FillPower(min, max, base int64) error {
	if min > max {
		return nil
	}
	span := uint64(max) - uint64(min)
	if span >= MaxDomainSize {
		return tooLarge(opPower)
	}
	if err := checkGrowth(opPower, len(d.values), span+1); err != nil {
		return err
	}

	terms := make([]int64, 0, span+1)
	for e := min; ; e++ {
		v, err := intPow(base, e)
		if err != nil {
			return err
		}
		terms = append(terms, v)
		if e == max {
			break
		}
	}
	d.values = append(d.values, terms...)
	return nil
}

// FillPowerText is FillPower over decimal text.
func (d *IntDomain) FillPowerText(min, max, base string) error {
	lo, err := parseIntBound(opPower, "min", min)
	if err != nil {
		return err
	}
	hi, err := parseIntBound(opPower, "max", max)
	if err != nil {
		return err
	}
	b, err := parseIntBound(opPower, "base", base)
	if err != nil {
		return err
	}
	return d.FillPower(lo, hi, b)
}

func intPow(base, exp int64) (int64, error) {
	overflow := &ArithmeticOverflow{Base: strconv.FormatInt(base, 10), Exponent: strconv.FormatInt(exp, 10)}

	if exp < 0 {
		switch base {
		case 1:
			return 1, nil
		case -1:
			if exp%2 == 0 {
				return 1, nil
			}
			return -1, nil
		case 0:
			return 0, overflow
		default:
			return 0, nil
		}
	}

	result := int64(1)
	b := base
	for e := exp; e > 0; {
		if e&1 == 1 {
			var ok bool
			if result, ok = mulInt64(result, b); !ok {
				return 0, overflow
			}
		}
		e >>= 1
		if e > 0 {
			var ok bool
			if b, ok = mulInt64(b, b); !ok {
				return 0, overflow
			}
		}
	}
	return result, nil
}

func mulInt64(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return 0, false
	}
	c := a * b
	if c/b != a {
		return 0, false
	}
	return c, true
}
