package hcl

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/cslgen/internal/csl"
	"github.com/specialistvlad/cslgen/internal/ctxlog"
	"github.com/specialistvlad/cslgen/internal/hclutil"
)

func (b *builder) translateConstraints() hcl.Diagnostics {
	var diags hcl.Diagnostics
	for _, cb := range b.block.Constraints {
		rng := cb.Expr.Range()
		if _, dup := b.constraints[cb.Name]; dup {
			diags = append(diags, errorDiag("Duplicate constraint", fmt.Errorf("constraint %q is declared more than once", cb.Name), rng))
			continue
		}
		if d := b.variableClash(cb.Name, rng); d.HasErrors() {
			diags = append(diags, d...)
			continue
		}
		if d := b.declare(cb.Name, rng); d.HasErrors() {
			diags = append(diags, d...)
			continue
		}

		args, d := b.resolveArguments(cb.Name, cb.Expr)
		diags = append(diags, d...)
		if d.HasErrors() {
			continue
		}

		c, err := csl.NewConstraint(cb.Name, b.prog.Problem, args, cb.Expr)
		if err != nil {
			diags = append(diags, errorDiag("Invalid constraint", err, rng))
			continue
		}
		b.constraints[cb.Name] = c
		b.prog.Constraints = append(b.prog.Constraints, c)
		ctxlog.FromContext(b.ctx).Debug("Constraint declared.", "name", c.Name(), "arguments", args.Keys())
	}
	return diags
}

// resolveArguments turns the traversals of a constraint body into its
// argument set. `x` names an unbound parameter, `x.r` one region of a
// region-bound parameter, and constants are inlined rather than passed.
func (b *builder) resolveArguments(constraint string, expr hcl.Expression) (*csl.ReferenceSet, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	args := csl.NewReferenceSet()

	for _, tr := range hclutil.Traversals(expr) {
		rng := tr.SourceRange()
		root := tr.RootName()

		if _, ok := b.constants[root]; ok {
			if len(tr) > 1 {
				diags = append(diags, errorDiag("Invalid constant reference", fmt.Errorf("constant %q has no attributes", root), rng))
			}
			continue
		}

		param, ok := b.parameters[root]
		if !ok {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Unknown identifier",
				Detail:   fmt.Sprintf("Constraint %q refers to %q, which is neither a parameter nor a constant.", constraint, root),
				Subject:  rng.Ptr(),
			})
			continue
		}

		ref, err := referenceFor(param, tr)
		if err != nil {
			diags = append(diags, errorDiag("Invalid parameter reference", err, rng))
			continue
		}
		if _, err := args.Add(ref); err != nil {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagWarning,
				Summary:  "Reference identity collision",
				Detail:   err.Error(),
				Subject:  rng.Ptr(),
			})
		}
	}

	for _, call := range hclutil.FunctionCalls(expr) {
		if !csl.IsBuiltin(call.Name) {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Unknown function",
				Detail:   fmt.Sprintf("There is no function named %q. Available functions: %v.", call.Name, csl.Builtins()),
				Subject:  call.NameRange.Ptr(),
			})
		}
	}
	return args, diags
}

func referenceFor(param *csl.Parameter, tr hcl.Traversal) (csl.Reference, error) {
	bound := param.RegionSet() != nil

	switch len(tr) {
	case 1:
		if bound {
			return csl.Reference{}, fmt.Errorf("parameter %q is bound to region set %q; name one of its regions, e.g. %s.%s",
				param.Name(), param.RegionSet().Name(), param.Name(), firstOr(param.CodeRegions(), "region"))
		}
		return csl.ParamRef(param.Name()), nil
	case 2:
		attr, ok := tr[1].(hcl.TraverseAttr)
		if !ok {
			return csl.Reference{}, fmt.Errorf("parameter %q can only be followed by a region name", param.Name())
		}
		if !bound {
			return csl.Reference{}, fmt.Errorf("parameter %q is not bound to a region set", param.Name())
		}
		if !param.RegionSet().Has(attr.Name) {
			return csl.Reference{}, fmt.Errorf("region %q is not in region set %q of parameter %q", attr.Name, param.RegionSet().Name(), param.Name())
		}
		return csl.RegionRef(param.Name(), attr.Name), nil
	default:
		return csl.Reference{}, fmt.Errorf("reference to parameter %q is too deep", param.Name())
	}
}

func firstOr(list []string, fallback string) string {
	if len(list) == 0 {
		return fallback
	}
	return list[0]
}

// translateSpecification reads the optional specification block. Its
// expression may only name constraints; without one every constraint is
// required, in declaration order.
func (b *builder) translateSpecification() hcl.Diagnostics {
	content, diags := b.block.Remain.Content(specificationSchema)
	if diags.HasErrors() {
		return diags
	}

	spec, _, diags := hclutil.DecodeUniqueBlock[*specificationBlock](content.Blocks, "specification", nil)
	if diags.HasErrors() {
		return diags
	}

	if spec == nil {
		b.prog.Specification = csl.NewSpecification(b.ctx, b.prog.Problem, b.prog.Constraints, nil)
		return nil
	}

	var constraints []*csl.Constraint
	for _, tr := range hclutil.Traversals(spec.Expr) {
		rng := tr.SourceRange()
		c, ok := b.constraints[tr.RootName()]
		if !ok || len(tr) != 1 {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Unknown constraint",
				Detail:   fmt.Sprintf("The specification refers to %q, which is not a constraint of this search space.", hclutil.TraversalKey(tr)),
				Subject:  rng.Ptr(),
			})
			continue
		}
		constraints = append(constraints, c)
	}
	for _, call := range hclutil.FunctionCalls(spec.Expr) {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Function call in specification",
			Detail:   "A specification combines constraints with &&, || and !; it cannot call functions.",
			Subject:  call.NameRange.Ptr(),
		})
	}
	if diags.HasErrors() {
		return diags
	}

	b.prog.Specification = csl.NewSpecification(b.ctx, b.prog.Problem, constraints, spec.Expr)
	return nil
}
