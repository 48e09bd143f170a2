package hcl

import (
	"errors"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/cslgen/internal/csl"
	"github.com/specialistvlad/cslgen/internal/ctxlog"
	"github.com/specialistvlad/cslgen/internal/hclutil"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

func (b *builder) translateParameters() hcl.Diagnostics {
	var diags hcl.Diagnostics
	for _, pb := range b.block.Parameters {
		param, d := b.translateParameter(pb)
		diags = append(diags, d...)
		if param == nil {
			continue
		}
		if d := b.claimVariables(param, pb.Type.Range()); d.HasErrors() {
			diags = append(diags, d...)
			continue
		}
		b.parameters[param.Name()] = param
		b.prog.Parameters = append(b.prog.Parameters, param)
	}
	return diags
}

// claimVariables records the region variables of a region-bound parameter.
// They may not take the name of a constant.
func (b *builder) claimVariables(param *csl.Parameter, rng hcl.Range) hcl.Diagnostics {
	if param.RegionSet() == nil {
		return nil
	}
	var diags hcl.Diagnostics
	for _, name := range param.Variables() {
		if _, ok := b.constants[name]; ok {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Duplicate name",
				Detail:   fmt.Sprintf("Region variable %q of parameter %q has the name of a constant.", name, param.Name()),
				Subject:  rng.Ptr(),
			})
			continue
		}
		if _, ok := b.variables[name]; !ok {
			b.variables[name] = rng
		}
	}
	return diags
}

// translateParameter converts one parameter block. Attachments are applied
// in the order region set, default, domain.
func (b *builder) translateParameter(pb *parameterBlock) (*csl.Parameter, hcl.Diagnostics) {
	logger := ctxlog.FromContext(b.ctx)
	rng := pb.Type.Range()

	if diags := b.declare(pb.Name, rng); diags.HasErrors() {
		return nil, diags
	}

	kind, diags := hclutil.TypeKeyword(pb.Type)
	if diags.HasErrors() {
		return nil, diags
	}
	param, err := csl.NewParameter(pb.Name, kind)
	if err != nil {
		return nil, hcl.Diagnostics{errorDiag("Invalid parameter", err, rng)}
	}
	param.SetProblemName(b.prog.Problem)

	if hclutil.IsExprDefined(pb.RegionSet) {
		rs, d := b.lookupRegionSet(pb.RegionSet)
		if d.HasErrors() {
			return nil, d
		}
		param.BindRegionSet(rs)
	}

	if hclutil.IsExprDefined(pb.Default) {
		if d := b.attachDefault(param, pb.Default); d.HasErrors() {
			return nil, d
		}
	}

	if hclutil.IsExprDefined(pb.Values) || len(pb.Ranges) > 0 || len(pb.PowerRanges) > 0 {
		if d := b.attachDomain(param, pb); d.HasErrors() {
			return nil, d
		}
	}

	logger.Debug("Parameter declared.",
		"name", param.Name(),
		"type", param.Kind(),
		"regions", param.CodeRegions(),
		"domain_size", domainLen(param.Domain()),
	)

	// Booleans range over true and false without a domain.
	if param.Kind() != csl.TypeBoolean && domainLen(param.Domain()) == 0 {
		return param, hcl.Diagnostics{{
			Severity: hcl.DiagWarning,
			Summary:  "Empty parameter domain",
			Detail:   fmt.Sprintf("Parameter %q has no values, so the search space has no legal points.", param.Name()),
			Subject:  rng.Ptr(),
		}}
	}
	return param, nil
}

// lookupRegionSet resolves `region_set = <name>`; a quoted name works too.
func (b *builder) lookupRegionSet(expr hcl.Expression) (*csl.RegionSet, hcl.Diagnostics) {
	var name string
	if traversal, diags := hcl.AbsTraversalForExpr(expr); !diags.HasErrors() && len(traversal) == 1 {
		name = traversal.RootName()
	} else if val, diags := expr.Value(nil); !diags.HasErrors() && val.Type() == cty.String && !val.IsNull() {
		name = val.AsString()
	}

	rs, ok := b.regionSets[name]
	if !ok {
		return nil, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Unknown region set",
			Detail:   fmt.Sprintf("No region set named %q is declared in this search space.", name),
			Subject:  expr.Range().Ptr(),
		}}
	}
	return rs, nil
}

func (b *builder) attachDefault(param *csl.Parameter, expr hcl.Expression) hcl.Diagnostics {
	val, diags := expr.Value(b.evalCtx)
	if diags.HasErrors() {
		return diags
	}
	kind, ok := hclutil.KindOf(val)
	if !ok {
		return hcl.Diagnostics{errorDiag("Invalid default", fmt.Errorf("default of %q must be a number, bool or string", param.Name()), expr.Range())}
	}
	literal, err := hclutil.Literal(val)
	if err != nil {
		return hcl.Diagnostics{errorDiag("Invalid default", err, expr.Range())}
	}
	if err := param.SetDefault(csl.NewDefaultVal(kind, literal)); err != nil {
		return hcl.Diagnostics{errorDiag("Invalid default", err, expr.Range())}
	}
	return nil
}

// attachDomain fills a new domain from values, then range blocks, then
// power_range blocks, each in source order. A mixed parameter gets an int
// domain unless one of its numbers has a fractional part.
func (b *builder) attachDomain(param *csl.Parameter, pb *parameterBlock) hcl.Diagnostics {
	var values []cty.Value
	var valuesRange hcl.Range
	if hclutil.IsExprDefined(pb.Values) {
		var diags hcl.Diagnostics
		values, diags = b.evalValues(pb.Values)
		if diags.HasErrors() {
			return diags
		}
		valuesRange = pb.Values.Range()
	}

	type fill struct {
		power          bool
		min, max, step string
		rng            hcl.Range
	}
	var fills []fill
	var numbers []cty.Value
	numbers = append(numbers, values...)

	for _, r := range pb.Ranges {
		minV, minText, diags := b.evalNumber(r.Min, "range minimum")
		if diags.HasErrors() {
			return diags
		}
		maxV, maxText, diags := b.evalNumber(r.Max, "range maximum")
		if diags.HasErrors() {
			return diags
		}
		stepV, stepText := cty.NumberIntVal(1), "1"
		if hclutil.IsExprDefined(r.Step) {
			if stepV, stepText, diags = b.evalNumber(r.Step, "range step"); diags.HasErrors() {
				return diags
			}
		}
		numbers = append(numbers, minV, maxV, stepV)
		fills = append(fills, fill{min: minText, max: maxText, step: stepText, rng: hcl.RangeBetween(r.Min.Range(), r.Max.Range())})
	}
	for _, r := range pb.PowerRanges {
		minV, minText, diags := b.evalNumber(r.Min, "power range minimum")
		if diags.HasErrors() {
			return diags
		}
		maxV, maxText, diags := b.evalNumber(r.Max, "power range maximum")
		if diags.HasErrors() {
			return diags
		}
		baseV, baseText, diags := b.evalNumber(r.Base, "power range base")
		if diags.HasErrors() {
			return diags
		}
		numbers = append(numbers, minV, maxV, baseV)
		fills = append(fills, fill{power: true, min: minText, max: maxText, step: baseText, rng: hcl.RangeBetween(r.Min.Range(), r.Base.Range())})
	}

	domainKind, err := domainKindFor(param.Kind(), numbers)
	if err != nil {
		return hcl.Diagnostics{errorDiag("Invalid parameter values", err, pb.Type.Range())}
	}
	domain, err := csl.NewDomain(domainKind)
	if err != nil {
		return hcl.Diagnostics{errorDiag("Invalid parameter values", err, pb.Type.Range())}
	}

	for _, v := range values {
		if err := pushValue(domain, v); err != nil {
			return hcl.Diagnostics{errorDiag("Invalid parameter values", fmt.Errorf("parameter %q: %w", param.Name(), err), valuesRange)}
		}
	}
	for _, f := range fills {
		var err error
		if f.power {
			err = domain.FillPowerText(f.min, f.max, f.step)
		} else {
			err = domain.FillLinearText(f.min, f.max, f.step)
		}
		if err != nil {
			return hcl.Diagnostics{errorDiag(fillSummary(err), fmt.Errorf("parameter %q: %w", param.Name(), err), f.rng)}
		}
	}

	if err := param.SetDomain(domain); err != nil {
		return hcl.Diagnostics{errorDiag("Invalid parameter values", err, pb.Type.Range())}
	}
	return nil
}

// evalValues evaluates a `values` list into its number elements.
func (b *builder) evalValues(expr hcl.Expression) ([]cty.Value, hcl.Diagnostics) {
	val, diags := expr.Value(b.evalCtx)
	if diags.HasErrors() {
		return nil, diags
	}
	ty := val.Type()
	if val.IsNull() || !val.IsKnown() || !(ty.IsTupleType() || ty.IsListType() || ty.IsSetType()) {
		return nil, hcl.Diagnostics{errorDiag("Invalid parameter values", fmt.Errorf("values must be a list of numbers, got %s", ty.FriendlyName()), expr.Range())}
	}

	var out []cty.Value
	for it := val.ElementIterator(); it.Next(); {
		_, elem := it.Element()
		if elem.IsNull() || !elem.IsKnown() || elem.Type() != cty.Number {
			return nil, hcl.Diagnostics{errorDiag("Invalid parameter values", fmt.Errorf("values must be a list of numbers, found %s", elem.Type().FriendlyName()), expr.Range())}
		}
		out = append(out, elem)
	}
	return out, nil
}

// domainKindFor picks the domain variant a parameter of kind takes.
func domainKindFor(kind csl.Type, numbers []cty.Value) (csl.Type, error) {
	switch kind {
	case csl.TypeInt, csl.TypeIntArray:
		return csl.TypeInt, nil
	case csl.TypeFloat:
		return csl.TypeFloat, nil
	case csl.TypeMixed:
		for _, n := range numbers {
			if !hclutil.IsWhole(n) {
				return csl.TypeFloat, nil
			}
		}
		return csl.TypeInt, nil
	default:
		return csl.TypeInvalid, fmt.Errorf("a parameter of type %s takes no values", kind)
	}
}

// pushValue appends one explicit value, decoding it with gocty so that a
// fractional value on an int domain is rejected.
func pushValue(domain csl.Domain, v cty.Value) error {
	if d, ok := csl.AsIntDomain(domain); ok {
		var i int64
		if err := gocty.FromCtyValue(v, &i); err != nil {
			return fmt.Errorf("value %s is not an integer: %w", v.AsBigFloat().Text('g', -1), err)
		}
		d.Push(i)
		return nil
	}
	if d, ok := csl.AsFloatDomain(domain); ok {
		var f float64
		if err := gocty.FromCtyValue(v, &f); err != nil {
			return err
		}
		d.Push(f)
		return nil
	}
	return fmt.Errorf("unsupported domain %T", domain)
}

func fillSummary(err error) string {
	var overflow *csl.ArithmeticOverflow
	if errors.As(err, &overflow) {
		return "Power range overflows"
	}
	return "Invalid range"
}

func domainLen(d csl.Domain) int {
	if d == nil {
		return 0
	}
	return d.Len()
}
