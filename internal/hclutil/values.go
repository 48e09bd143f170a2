package hclutil

import (
	"fmt"

	"github.com/specialistvlad/cslgen/internal/csl"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// Literal renders a known, non-null primitive value as the plain text the
// model stores: decimal numbers without exponent, true/false, or the raw
// string.
func Literal(val cty.Value) (string, error) {
	if val.IsNull() || !val.IsKnown() {
		return "", fmt.Errorf("value must be known and not null")
	}
	switch {
	case val.Type() == cty.Number, val.Type() == cty.Bool:
		str, err := convert.Convert(val, cty.String)
		if err != nil {
			return "", err
		}
		return str.AsString(), nil
	case val.Type() == cty.String:
		return val.AsString(), nil
	default:
		return "", fmt.Errorf("a %s value is not a scalar literal", val.Type().FriendlyName())
	}
}

// KindOf infers the csl type of a primitive value: whole numbers are int,
// other numbers float.
func KindOf(val cty.Value) (csl.Type, bool) {
	if val.IsNull() || !val.IsKnown() {
		return csl.TypeInvalid, false
	}
	switch val.Type() {
	case cty.Number:
		if IsWhole(val) {
			return csl.TypeInt, true
		}
		return csl.TypeFloat, true
	case cty.Bool:
		return csl.TypeBoolean, true
	case cty.String:
		return csl.TypeString, true
	default:
		return csl.TypeInvalid, false
	}
}

// IsWhole reports whether a number value has no fractional part.
func IsWhole(val cty.Value) bool {
	if val.Type() != cty.Number || val.IsNull() || !val.IsKnown() {
		return false
	}
	bf := val.AsBigFloat()
	if bf.IsInf() {
		return false
	}
	return bf.IsInt()
}

// ParseLiteral is the inverse of Literal for the given kind.
func ParseLiteral(kind csl.Type, literal string) (cty.Value, error) {
	switch kind {
	case csl.TypeInt, csl.TypeFloat:
		return cty.ParseNumberVal(literal)
	case csl.TypeBoolean:
		return convert.Convert(cty.StringVal(literal), cty.Bool)
	case csl.TypeString:
		return cty.StringVal(literal), nil
	case csl.TypeMixed:
		if n, err := cty.ParseNumberVal(literal); err == nil {
			return n, nil
		}
		if b, err := convert.Convert(cty.StringVal(literal), cty.Bool); err == nil {
			return b, nil
		}
		return cty.StringVal(literal), nil
	default:
		return cty.NilVal, fmt.Errorf("no literal form for type %s", kind)
	}
}
