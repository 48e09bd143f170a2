package hcl

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/specialistvlad/cslgen/internal/csl"
	"github.com/specialistvlad/cslgen/internal/ctxlog"
	"github.com/specialistvlad/cslgen/internal/hclutil"
	"github.com/zclconf/go-cty/cty"
)

// decodeNames decodes a list of region identifiers and rejects empty ones.
func decodeNames(expr hcl.Expression, what string) ([]string, hcl.Diagnostics) {
	var names []string
	if diags := gohcl.DecodeExpression(expr, nil, &names); diags.HasErrors() {
		return nil, diags
	}
	for _, n := range names {
		if n == "" {
			return nil, hcl.Diagnostics{{
				Severity: hcl.DiagError,
				Summary:  "Empty " + what,
				Detail:   "Region names must not be empty.",
				Subject:  expr.Range().Ptr(),
			}}
		}
	}
	return names, nil
}

// translateCodeRegions reads the optional code_regions list. When it is
// present every region set may only name declared regions.
func (b *builder) translateCodeRegions() hcl.Diagnostics {
	if !hclutil.IsExprDefined(b.block.CodeRegions) {
		return nil
	}
	regions, diags := decodeNames(b.block.CodeRegions, "code region")
	if diags.HasErrors() {
		return diags
	}

	seen := make(map[string]struct{}, len(regions))
	for _, r := range regions {
		if _, dup := seen[r]; dup {
			return hcl.Diagnostics{{
				Severity: hcl.DiagError,
				Summary:  "Duplicate code region",
				Detail:   fmt.Sprintf("The code region %q is declared more than once.", r),
				Subject:  b.block.CodeRegions.Range().Ptr(),
			}}
		}
		seen[r] = struct{}{}
	}
	b.prog.Regions = regions
	return nil
}

// translateConstants evaluates constants in source order. A constant may
// refer to the constants declared before it.
func (b *builder) translateConstants() hcl.Diagnostics {
	logger := ctxlog.FromContext(b.ctx)
	var diags hcl.Diagnostics

	for _, cb := range b.block.Constants {
		rng := cb.Value.Range()
		if d := b.declare(cb.Name, rng); d.HasErrors() {
			diags = append(diags, d...)
			continue
		}

		val, valDiags := cb.Value.Value(b.evalCtx)
		if valDiags.HasErrors() {
			diags = append(diags, valDiags...)
			continue
		}
		kind, ok := hclutil.KindOf(val)
		if !ok {
			diags = append(diags, errorDiag("Invalid constant value", fmt.Errorf("constant %q must be a number, bool or string", cb.Name), rng))
			continue
		}

		if hclutil.IsExprDefined(cb.Type) {
			declared, typeDiags := hclutil.TypeKeyword(cb.Type)
			if typeDiags.HasErrors() {
				diags = append(diags, typeDiags...)
				continue
			}
			if !constantFits(declared, kind) {
				diags = append(diags, errorDiag("Constant type mismatch",
					fmt.Errorf("constant %q is declared %s but its value is %s", cb.Name, declared, kind), rng))
				continue
			}
			kind = declared
		}

		literal, err := hclutil.Literal(val)
		if err != nil {
			diags = append(diags, errorDiag("Invalid constant value", err, rng))
			continue
		}
		sym, err := csl.NewSymbol(cb.Name, kind, literal)
		if err != nil {
			diags = append(diags, errorDiag("Invalid constant", err, rng))
			continue
		}

		b.constants[cb.Name] = sym
		b.evalCtx.Variables[cb.Name] = val
		b.prog.Constants = append(b.prog.Constants, sym)
		logger.Debug("Constant declared.", "name", cb.Name, "type", kind, "value", literal)
	}
	return diags
}

func constantFits(declared, inferred csl.Type) bool {
	switch declared {
	case csl.TypeMixed:
		return true
	case csl.TypeFloat:
		return inferred == csl.TypeFloat || inferred == csl.TypeInt
	default:
		return declared == inferred
	}
}

// translateRegionSets builds the named region sets. Duplicates inside one
// set are kept.
func (b *builder) translateRegionSets() hcl.Diagnostics {
	var diags hcl.Diagnostics
	declared := make(map[string]struct{}, len(b.prog.Regions))
	for _, r := range b.prog.Regions {
		declared[r] = struct{}{}
	}

	for _, rb := range b.block.RegionSets {
		rng := rb.Regions.Range()
		if _, dup := b.regionSets[rb.Name]; dup {
			diags = append(diags, errorDiag("Duplicate region set", fmt.Errorf("region set %q is declared more than once", rb.Name), rng))
			continue
		}

		regions, d := decodeNames(rb.Regions, "region")
		if d.HasErrors() {
			diags = append(diags, d...)
			continue
		}
		if len(declared) > 0 {
			for _, r := range regions {
				if _, ok := declared[r]; !ok {
					diags = append(diags, errorDiag("Unknown code region",
						fmt.Errorf("region set %q names %q, which is not in code_regions", rb.Name, r), rng))
				}
			}
		}

		rs := csl.NewRegionSet(rb.Name)
		rs.PushList(regions)
		b.regionSets[rb.Name] = rs
		b.prog.RegionSets = append(b.prog.RegionSets, rs)
	}
	return diags
}

// evalNumber evaluates a bound and returns its literal text.
func (b *builder) evalNumber(expr hcl.Expression, what string) (cty.Value, string, hcl.Diagnostics) {
	val, diags := expr.Value(b.evalCtx)
	if diags.HasErrors() {
		return cty.NilVal, "", diags
	}
	if val.IsNull() || !val.IsKnown() || val.Type() != cty.Number {
		return cty.NilVal, "", hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Invalid " + what,
			Detail:   fmt.Sprintf("The %s must be a number, got %s.", what, val.Type().FriendlyName()),
			Subject:  expr.Range().Ptr(),
		}}
	}
	literal, err := hclutil.Literal(val)
	if err != nil {
		return cty.NilVal, "", hcl.Diagnostics{errorDiag("Invalid "+what, err, expr.Range())}
	}
	return val, literal, nil
}
