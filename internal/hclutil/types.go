package hclutil

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/cslgen/internal/csl"
	"github.com/zclconf/go-cty/cty"
)

// TypeKeyword converts an expression that names a type, such as the `int`
// in `type = int`, into a csl.Type. Quoted names ("int") are accepted too.
func TypeKeyword(expr hcl.Expression) (csl.Type, hcl.Diagnostics) {
	var name string

	if traversal, diags := hcl.AbsTraversalForExpr(expr); !diags.HasErrors() && len(traversal) == 1 {
		name = traversal.RootName()
	} else if val, valDiags := expr.Value(nil); !valDiags.HasErrors() && val.Type() == cty.String && val.IsKnown() && !val.IsNull() {
		name = val.AsString()
	}

	if name == "" {
		return csl.TypeInvalid, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Invalid type specification",
			Detail:   "The 'type' attribute must be a type keyword like 'int', 'float' or 'boolean', not a complex expression.",
			Subject:  expr.Range().Ptr(),
		}}
	}

	kind, ok := csl.LookupType(name)
	if !ok {
		return csl.TypeInvalid, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Unsupported type",
			Detail:   fmt.Sprintf("The keyword '%s' is not a valid type. Supported types are: int, float, boolean, intarray, string, mixed.", name),
			Subject:  expr.Range().Ptr(),
		}}
	}
	return kind, nil
}
