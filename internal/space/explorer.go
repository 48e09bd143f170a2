package space

import (
	"context"
	"fmt"
	"math"
	"math/bits"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/cslgen/internal/csl"
	"github.com/specialistvlad/cslgen/internal/ctxlog"
	"github.com/specialistvlad/cslgen/internal/hclutil"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
)

const (
	// DefaultLimit bounds the number of points one exploration evaluates.
	DefaultLimit = 1_000_000
	// DefaultSampleSize is how many legal points a report lists.
	DefaultSampleSize = 10
)

// Explorer evaluates search-space points.
type Explorer struct {
	Limit      int
	SampleSize int
}

// New returns an explorer evaluating at most limit points; limit <= 0
// means DefaultLimit.
func New(limit int) *Explorer {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Explorer{Limit: limit, SampleSize: DefaultSampleSize}
}

// Report summarizes one exploration.
type Report struct {
	Problem   string
	Variables []string
	// Total is the size of the cartesian product, saturating at MaxUint64.
	Total     uint64
	Checked   int
	Legal     int
	Truncated bool
	// Sample holds the first legal points, one literal per variable.
	Sample [][]string
}

// variable is one specification argument and the values it ranges over.
// aliases are the other references sharing its key; they are bound to the
// same value.
type variable struct {
	ref     csl.Reference
	aliases []csl.Reference
	values  []cty.Value
}

// Explore walks the product of the specification arguments' domains in
// declaration order, the last argument varying fastest.
func (e *Explorer) Explore(ctx context.Context, prog *csl.Program) (*Report, error) {
	logger := ctxlog.FromContext(ctx)
	if prog == nil || prog.Specification == nil {
		return nil, fmt.Errorf("program has no specification")
	}
	spec := prog.Specification

	vars, err := variables(prog)
	if err != nil {
		return nil, err
	}
	constants, err := constantValues(prog)
	if err != nil {
		return nil, err
	}

	report := &Report{Problem: prog.Problem, Variables: spec.ArgumentSet().Keys(), Total: 1}
	for _, v := range vars {
		hi, lo := bits.Mul64(report.Total, uint64(len(v.values)))
		if hi != 0 {
			lo = math.MaxUint64
		}
		report.Total = lo
	}
	logger.Debug("Exploring search space.", "problem", prog.Problem, "variables", report.Variables, "total", report.Total, "limit", e.Limit)

	if report.Total == 0 {
		return report, nil
	}

	functions := Functions()
	idx := make([]int, len(vars))
	for {
		if report.Checked >= e.Limit {
			report.Truncated = true
			break
		}
		report.Checked++

		legal, err := evaluate(spec, vars, idx, constants, functions)
		if err != nil {
			return nil, fmt.Errorf("evaluating point %s: %w", describePoint(vars, idx), err)
		}
		if legal {
			report.Legal++
			if len(report.Sample) < e.SampleSize {
				report.Sample = append(report.Sample, pointLiterals(vars, idx))
			}
		}

		if !advance(idx, vars) {
			break
		}
	}

	logger.Debug("Exploration finished.", "checked", report.Checked, "legal", report.Legal, "truncated", report.Truncated)
	return report, nil
}

// advance moves idx to the next point and reports false after the last one.
func advance(idx []int, vars []variable) bool {
	for i := len(idx) - 1; i >= 0; i-- {
		idx[i]++
		if idx[i] < len(vars[i].values) {
			return true
		}
		idx[i] = 0
	}
	return false
}

func variables(prog *csl.Program) ([]variable, error) {
	var out []variable
	for _, ref := range prog.Specification.Arguments() {
		param, ok := prog.Parameter(ref.Name())
		if !ok {
			return nil, fmt.Errorf("argument %s names no parameter", ref)
		}
		values, err := parameterValues(param)
		if err != nil {
			return nil, err
		}
		v := variable{ref: ref, values: values}
		for _, alias := range prog.ReferencesTo(ref.Key()) {
			if !alias.SameShape(ref) {
				v.aliases = append(v.aliases, alias)
			}
		}
		out = append(out, v)
	}
	return out, nil
}

func parameterValues(p *csl.Parameter) ([]cty.Value, error) {
	d := p.Domain()
	if d == nil {
		if p.Kind() == csl.TypeBoolean {
			return []cty.Value{cty.True, cty.False}, nil
		}
		return nil, nil
	}
	literals := d.Literals()
	out := make([]cty.Value, len(literals))
	for i, lit := range literals {
		v, err := hclutil.ParseLiteral(d.Kind(), lit)
		if err != nil {
			return nil, fmt.Errorf("parameter %s value %s: %w", p.Name(), lit, err)
		}
		out[i] = v
	}
	return out, nil
}

func constantValues(prog *csl.Program) (map[string]cty.Value, error) {
	out := make(map[string]cty.Value, len(prog.Constants))
	for _, c := range prog.Constants {
		v, err := hclutil.ParseLiteral(c.Kind(), c.Literal())
		if err != nil {
			return nil, fmt.Errorf("constant %s: %w", c.Name(), err)
		}
		out[c.Name()] = v
	}
	return out, nil
}

// evaluate decides whether the point idx satisfies the specification.
func evaluate(spec *csl.Specification, vars []variable, idx []int, constants map[string]cty.Value, functions map[string]function.Function) (bool, error) {
	scope := make(map[string]cty.Value, len(constants)+len(vars))
	for name, v := range constants {
		scope[name] = v
	}
	regions := make(map[string]map[string]cty.Value)
	bind := func(ref csl.Reference, val cty.Value) {
		if ref.Kind() == csl.RefRegion {
			if regions[ref.Name()] == nil {
				regions[ref.Name()] = make(map[string]cty.Value)
			}
			regions[ref.Name()][ref.Region()] = val
			return
		}
		scope[ref.Name()] = val
	}
	for i, v := range vars {
		val := v.values[idx[i]]
		bind(v.ref, val)
		for _, alias := range v.aliases {
			bind(alias, val)
		}
	}
	for name, attrs := range regions {
		scope[name] = cty.ObjectVal(attrs)
	}
	evalCtx := &hcl.EvalContext{Variables: scope, Functions: functions}

	results := make(map[string]cty.Value, len(spec.Constraints()))
	all := true
	for _, c := range spec.Constraints() {
		ok, err := truth(c.Body(), evalCtx)
		if err != nil {
			return false, fmt.Errorf("constraint %s: %w", c.Name(), err)
		}
		results[c.Name()] = cty.BoolVal(ok)
		all = all && ok
	}

	if spec.Body() == nil {
		return all, nil
	}
	return truth(spec.Body(), &hcl.EvalContext{Variables: results})
}

// truth evaluates expr, which must yield a known boolean.
func truth(expr hcl.Expression, evalCtx *hcl.EvalContext) (bool, error) {
	if expr == nil {
		return true, nil
	}
	val, diags := expr.Value(evalCtx)
	if diags.HasErrors() {
		return false, diags
	}
	if val.Type() != cty.Bool || val.IsNull() || !val.IsKnown() {
		return false, fmt.Errorf("%s: expected a boolean, got %s", expr.Range(), val.Type().FriendlyName())
	}
	return val.True(), nil
}

func pointLiterals(vars []variable, idx []int) []string {
	out := make([]string, len(vars))
	for i, v := range vars {
		lit, err := hclutil.Literal(v.values[idx[i]])
		if err != nil {
			lit = v.values[idx[i]].GoString()
		}
		out[i] = lit
	}
	return out
}

func describePoint(vars []variable, idx []int) string {
	lits := pointLiterals(vars, idx)
	s := "{"
	for i, v := range vars {
		if i > 0 {
			s += ", "
		}
		s += v.ref.Key() + "=" + lits[i]
	}
	return s + "}"
}
