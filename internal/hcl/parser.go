package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/cslgen/internal/csl"
	"github.com/specialistvlad/cslgen/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
)

// Parser is the HCL implementation of the translate.Parser capability.
type Parser struct{}

// NewParser creates a new CSL front end.
func NewParser() *Parser {
	return &Parser{}
}

// Parse reads one CSL source file and builds its program. On failure the
// returned error is the hcl.Diagnostics describing every problem found.
func (p *Parser) Parse(ctx context.Context, filename string, src []byte) (*csl.Program, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("CSL front end started.", "file", filename, "bytes", len(src))

	file, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, diags
	}

	var root fileRoot
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, diags
	}

	if len(root.SearchSpaces) != 1 {
		return nil, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Expected exactly one search_space block",
			Detail:   fmt.Sprintf("A CSL file describes one search space, found %d.", len(root.SearchSpaces)),
			Subject:  file.Body.MissingItemRange().Ptr(),
		}}
	}

	b := newBuilder(ctx, root.SearchSpaces[0])
	prog, diags := b.build()
	if diags.HasErrors() {
		return nil, diags
	}
	for _, d := range diags {
		logger.Warn("CSL front end warning.", "summary", d.Summary, "detail", d.Detail, "range", rangeString(d.Subject))
	}

	logger.Debug("CSL parsing complete.",
		"problem", prog.Problem,
		"constants", len(prog.Constants),
		"region_sets", len(prog.RegionSets),
		"parameters", len(prog.Parameters),
		"constraints", len(prog.Constraints),
		"arguments", prog.Specification.ArgumentSet().Len(),
	)
	return prog, nil
}

// builder carries the name scopes of one search space while it is
// translated. Constants, parameters and constraints share one identifier
// namespace; region sets have their own.
type builder struct {
	ctx   context.Context
	block *searchSpaceBlock
	prog  *csl.Program

	evalCtx     *hcl.EvalContext
	identifiers map[string]hcl.Range
	variables   map[string]hcl.Range // region variables, name_region
	constants   map[string]*csl.Symbol
	parameters  map[string]*csl.Parameter
	regionSets  map[string]*csl.RegionSet
	constraints map[string]*csl.Constraint
}

func newBuilder(ctx context.Context, block *searchSpaceBlock) *builder {
	return &builder{
		ctx:         ctx,
		block:       block,
		prog:        &csl.Program{Problem: block.Name},
		evalCtx:     &hcl.EvalContext{Variables: map[string]cty.Value{}},
		identifiers: make(map[string]hcl.Range),
		variables:   make(map[string]hcl.Range),
		constants:   make(map[string]*csl.Symbol),
		parameters:  make(map[string]*csl.Parameter),
		regionSets:  make(map[string]*csl.RegionSet),
		constraints: make(map[string]*csl.Constraint),
	}
}

// build translates the declarations in dependency order. Each stage runs
// only when the previous ones succeeded, so later stages can rely on the
// scopes being complete.
func (b *builder) build() (*csl.Program, hcl.Diagnostics) {
	stages := []func() hcl.Diagnostics{
		b.translateCodeRegions,
		b.translateConstants,
		b.translateRegionSets,
		b.translateParameters,
		b.translateConstraints,
		b.translateSpecification,
	}

	var diags hcl.Diagnostics
	for _, stage := range stages {
		diags = append(diags, stage()...)
		if diags.HasErrors() {
			return nil, diags
		}
	}
	return b.prog, diags
}

// reservedNames are defined by the generated harness itself or reserved by
// the default target language.
var reservedNames = map[string]struct{}{
	"specification": {}, "keys": {}, "key": {}, "solution": {},
	"Problem": {}, "FunctionConstraint": {},
	"False": {}, "None": {}, "True": {}, "and": {}, "as": {}, "assert": {},
	"async": {}, "await": {}, "break": {}, "class": {}, "continue": {},
	"def": {}, "del": {}, "elif": {}, "else": {}, "except": {}, "finally": {},
	"for": {}, "from": {}, "global": {}, "if": {}, "import": {}, "in": {},
	"is": {}, "lambda": {}, "nonlocal": {}, "not": {}, "or": {}, "pass": {},
	"raise": {}, "return": {}, "try": {}, "while": {}, "with": {}, "yield": {},
}

// declare reserves name in the shared namespace of constants, parameters
// and constraints. Generated code defines all three at the same scope as
// the problem itself, so they may not shadow each other or it.
func (b *builder) declare(name string, rng hcl.Range) hcl.Diagnostics {
	if !hclsyntax.ValidIdentifier(name) || csl.Identifier(name) != name {
		return hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Invalid name",
			Detail:   fmt.Sprintf("The name %q must start with a letter or underscore and contain only letters, digits and underscores.", name),
			Subject:  rng.Ptr(),
		}}
	}
	if _, ok := reservedNames[name]; ok || name == csl.Identifier(b.prog.Problem) {
		return hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Reserved name",
			Detail:   fmt.Sprintf("The name %q is used by the generated code.", name),
			Subject:  rng.Ptr(),
		}}
	}
	if prev, ok := b.identifiers[name]; ok {
		return hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Duplicate name",
			Detail:   fmt.Sprintf("The name %q is already declared at %s.", name, prev),
			Subject:  rng.Ptr(),
		}}
	}
	b.identifiers[name] = rng
	return nil
}

// variableClash reports a constant or constraint named like a region
// variable. Parameters may share such a name; that is a reference identity
// collision, not a redeclaration.
func (b *builder) variableClash(name string, rng hcl.Range) hcl.Diagnostics {
	prev, ok := b.variables[name]
	if !ok {
		return nil
	}
	return hcl.Diagnostics{{
		Severity: hcl.DiagError,
		Summary:  "Duplicate name",
		Detail:   fmt.Sprintf("The name %q is already a region variable of the parameter declared at %s.", name, prev),
		Subject:  rng.Ptr(),
	}}
}

func errorDiag(summary string, err error, rng hcl.Range) *hcl.Diagnostic {
	return &hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  summary,
		Detail:   err.Error(),
		Subject:  rng.Ptr(),
	}
}

func rangeString(rng *hcl.Range) string {
	if rng == nil {
		return ""
	}
	return rng.String()
}
