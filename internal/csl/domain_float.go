package csl

import (
	"math"
	"strconv"
	"strings"
)

// linearEpsilon is the fraction of the step by which the last term of a
// float range may exceed max and still be included (clamped to max).
const linearEpsilon = 1e-9

// FloatDomain is a sequence of floating point values.
type FloatDomain struct {
	values []float64
}

// NewFloatDomain creates a float domain holding values.
func NewFloatDomain(values ...float64) *FloatDomain {
	return &FloatDomain{values: append([]float64(nil), values...)}
}

func (*FloatDomain) isDomain() {}

func (d *FloatDomain) Kind() Type { return TypeFloat }
func (d *FloatDomain) Len() int   { return len(d.values) }

// Push appends values as-is.
func (d *FloatDomain) Push(values ...float64) {
	d.values = append(d.values, values...)
}

// Floats returns a copy of the values.
func (d *FloatDomain) Floats() []float64 {
	return append([]float64(nil), d.values...)
}

func (d *FloatDomain) Values() []any {
	out := make([]any, len(d.values))
	for i, v := range d.values {
		out[i] = v
	}
	return out
}

func (d *FloatDomain) Literals() []string {
	out := make([]string, len(d.values))
	for i, v := range d.values {
		out[i] = FormatFloat(v)
	}
	return out
}

// FormatFloat renders v in the shortest form that round-trips, always
// keeping a decimal point or exponent so the text still reads as a float.
func FormatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if strings.ContainsAny(s, ".eEnN") {
		return s
	}
	return s + ".0"
}

// FillLinear appends min + k*step for k = 0, 1, ... while the term does not
// exceed max. Terms are computed from the index rather than by repeated
// addition, and a last term within a tiny fraction of the step above max is
// clamped to max.
func (d *FloatDomain) FillLinear(min, max, step float64) error {
	for _, v := range []float64{min, max, step} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return &DomainError{Op: opLinear, Reason: "bounds and step must be finite"}
		}
	}
	if step == 0 {
		return &DomainError{Op: opLinear, Reason: "step must not be zero"}
	}
	if min > max {
		return nil
	}
	if step < 0 {
		return &DomainError{Op: opLinear, Reason: "negative step never reaches max " + FormatFloat(max) + " from min " + FormatFloat(min)}
	}

	estimate := math.Floor((max-min)/step) + 1
	if len(d.values) >= MaxDomainSize || estimate > float64(MaxDomainSize-len(d.values)) {
		return tooLarge(opLinear)
	}

	eps := step * linearEpsilon
	terms := make([]float64, 0, int(estimate)+1)
	for k := 0; ; k++ {
		v := min + float64(k)*step
		if v > max+eps {
			break
		}
		if v > max {
			v = max
		}
		terms = append(terms, v)
	}
	if err := checkGrowth(opLinear, len(d.values), uint64(len(terms))); err != nil {
		return err
	}
	d.values = append(d.values, terms...)
	return nil
}

// FillLinearText is FillLinear over decimal text.
func (d *FloatDomain) FillLinearText(min, max, step string) error {
	lo, err := parseFloatBound(opLinear, "min", min)
	if err != nil {
		return err
	}
	hi, err := parseFloatBound(opLinear, "max", max)
	if err != nil {
		return err
	}
	st, err := parseFloatBound(opLinear, "step", step)
	if err != nil {
		return err
	}
	return d.FillLinear(lo, hi, st)
}

// FillPower appends base^e for e = min, min+1, ... while e <= max. An
// infinite term fails with ArithmeticOverflow; a NaN term (negative base,
// fractional exponent) is a DomainError. Nothing is appended on failure.
func (d *FloatDomain) FillPower(min, max, base float64) error {
	for _, v := range []float64{min, max, base} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return &DomainError{Op: opPower, Reason: "bounds and base must be finite"}
		}
	}
	if min > max {
		return nil
	}
	if max-min >= MaxDomainSize {
		return tooLarge(opPower)
	}

	var terms []float64
	for k := 0; ; k++ {
		e := min + float64(k)
		if e > max {
			break
		}
		v := math.Pow(base, e)
		switch {
		case math.IsInf(v, 0):
			return &ArithmeticOverflow{Base: FormatFloat(base), Exponent: FormatFloat(e)}
		case math.IsNaN(v):
			return &DomainError{Op: opPower, Reason: FormatFloat(base) + "^" + FormatFloat(e) + " is not a real number"}
		}
		terms = append(terms, v)
	}
	if err := checkGrowth(opPower, len(d.values), uint64(len(terms))); err != nil {
		return err
	}
	d.values = append(d.values, terms...)
	return nil
}

// FillPowerText is FillPower over decimal text.
func (d *FloatDomain) FillPowerText(min, max, base string) error {
	lo, err := parseFloatBound(opPower, "min", min)
	if err != nil {
		return err
	}
	hi, err := parseFloatBound(opPower, "max", max)
	if err != nil {
		return err
	}
	b, err := parseFloatBound(opPower, "base", base)
	if err != nil {
		return err
	}
	return d.FillPower(lo, hi, b)
}
