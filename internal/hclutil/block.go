package hclutil

import (
	"reflect"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
)

// FindUniqueBlock searches a slice of blocks for all blocks of a given type.
// It returns a diagnostic error for every block after the first one. If no
// block is found, it returns nil.
func FindUniqueBlock(blocks hcl.Blocks, blockType string) (*hcl.Block, hcl.Diagnostics) {
	var found *hcl.Block
	var diags hcl.Diagnostics

	for _, block := range blocks {
		if block.Type != blockType {
			continue
		}
		if found != nil {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Duplicate \"" + blockType + "\" block",
				Detail:   "Only one \"" + blockType + "\" block is allowed; the first one is at " + found.DefRange.String() + ".",
				Subject:  block.DefRange.Ptr(),
			})
			continue
		}
		found = block
	}

	return found, diags
}

// DecodeUniqueBlock finds the single block of blockType and decodes its body
// into a new value of the struct T points to. The zero T and a nil block are
// returned when the block is absent.
func DecodeUniqueBlock[T any](blocks hcl.Blocks, blockType string, evalCtx *hcl.EvalContext) (T, *hcl.Block, hcl.Diagnostics) {
	var zero T

	block, diags := FindUniqueBlock(blocks, blockType)
	if block == nil || diags.HasErrors() {
		return zero, block, diags
	}

	// T is a pointer type, e.g. *specificationBlock; allocate what it points to.
	content := reflect.New(reflect.TypeOf(zero).Elem()).Interface().(T)

	decodeDiags := gohcl.DecodeBody(block.Body, evalCtx, content)
	diags = append(diags, decodeDiags...)
	if decodeDiags.HasErrors() {
		return zero, block, diags
	}
	return content, block, diags
}

// IsExprDefined reports whether expr was actually written in the source.
// gohcl fills omitted optional hcl.Expression fields with a synthetic
// expression whose range has zero width, so a nil check is not enough.
func IsExprDefined(expr hcl.Expression) bool {
	if expr == nil {
		return false
	}
	rng := expr.Range()
	return rng.End.Byte > rng.Start.Byte
}
