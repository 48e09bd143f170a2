package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/cslgen/internal/csl"
	"github.com/specialistvlad/cslgen/internal/hclutil"
	"github.com/zclconf/go-cty/cty"
)

var binaryOps = map[*hclsyntax.Operation]string{
	hclsyntax.OpLogicalOr:          "||",
	hclsyntax.OpLogicalAnd:         "&&",
	hclsyntax.OpEqual:              "==",
	hclsyntax.OpNotEqual:           "!=",
	hclsyntax.OpGreaterThan:        ">",
	hclsyntax.OpGreaterThanOrEqual: ">=",
	hclsyntax.OpLessThan:           "<",
	hclsyntax.OpLessThanOrEqual:    "<=",
	hclsyntax.OpAdd:                "+",
	hclsyntax.OpSubtract:           "-",
	hclsyntax.OpMultiply:           "*",
	hclsyntax.OpDivide:             "/",
	hclsyntax.OpModulo:             "%",
}

var unaryOps = map[*hclsyntax.Operation]string{
	hclsyntax.OpLogicalNot: "!",
	hclsyntax.OpNegate:     "neg",
}

// printer spells an expression in a skin's target syntax, fully
// parenthesised. With calls set it prints a specification body, where bare
// identifiers are constraint names.
type printer struct {
	skin      *Skin
	constants map[string]struct{}
	calls     map[string]string
}

// body prints expr and records the functions it calls in used.
func (p *printer) body(expr hcl.Expression, used map[string]struct{}) (string, error) {
	if expr == nil {
		return p.skin.Literals["true"], nil
	}
	syntaxExpr, ok := expr.(hclsyntax.Expression)
	if !ok {
		return "", fmt.Errorf("expression of type %T is not native syntax", expr)
	}
	if used != nil {
		for _, fn := range hclutil.Functions(expr) {
			used[fn] = struct{}{}
		}
	}
	return p.print(syntaxExpr)
}

func (p *printer) print(expr hclsyntax.Expression) (string, error) {
	switch e := expr.(type) {
	case *hclsyntax.ParenthesesExpr:
		return p.print(e.Expression)

	case *hclsyntax.BinaryOpExpr:
		key, ok := binaryOps[e.Op]
		if !ok {
			return "", unsupported(e)
		}
		lhs, err := p.print(e.LHS)
		if err != nil {
			return "", err
		}
		rhs, err := p.print(e.RHS)
		if err != nil {
			return "", err
		}
		return "(" + lhs + " " + p.skin.Operators[key] + " " + rhs + ")", nil

	case *hclsyntax.UnaryOpExpr:
		key, ok := unaryOps[e.Op]
		if !ok {
			return "", unsupported(e)
		}
		val, err := p.print(e.Val)
		if err != nil {
			return "", err
		}
		return "(" + p.skin.Operators[key] + val + ")", nil

	case *hclsyntax.ConditionalExpr:
		if p.skin.Conditional == "" {
			return "", fmt.Errorf("%s: skin %s cannot express conditionals", e.Range(), p.skin.Name)
		}
		cond, err := p.print(e.Condition)
		if err != nil {
			return "", err
		}
		t, err := p.print(e.TrueResult)
		if err != nil {
			return "", err
		}
		f, err := p.print(e.FalseResult)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf(p.skin.Conditional, cond, t, f), nil

	case *hclsyntax.FunctionCallExpr:
		name, ok := p.skin.Functions[e.Name]
		if !ok {
			return "", fmt.Errorf("%s: skin %s does not map function %s", e.NameRange, p.skin.Name, e.Name)
		}
		args := make([]string, len(e.Args))
		for i, a := range e.Args {
			s, err := p.print(a)
			if err != nil {
				return "", err
			}
			args[i] = s
		}
		return name + "(" + strings.Join(args, ", ") + ")", nil

	case *hclsyntax.ScopeTraversalExpr:
		return p.traversal(e)

	case *hclsyntax.LiteralValueExpr:
		return p.value(e.Val, e.Range())

	case *hclsyntax.TemplateExpr:
		if !e.IsStringLiteral() {
			return "", unsupported(e)
		}
		val, diags := e.Value(nil)
		if diags.HasErrors() {
			return "", diags
		}
		return p.value(val, e.Range())

	default:
		return "", unsupported(expr)
	}
}

func (p *printer) traversal(e *hclsyntax.ScopeTraversalExpr) (string, error) {
	root := e.Traversal.RootName()

	if p.calls != nil {
		call, ok := p.calls[root]
		if !ok || len(e.Traversal) != 1 {
			return "", fmt.Errorf("%s: %s is not a constraint", e.Range(), hclutil.TraversalKey(e.Traversal))
		}
		return call, nil
	}

	if _, ok := p.constants[root]; ok {
		return root, nil
	}
	switch len(e.Traversal) {
	case 1:
		return csl.ParamRef(root).Key(), nil
	case 2:
		if attr, ok := e.Traversal[1].(hcl.TraverseAttr); ok {
			return csl.RegionRef(root, attr.Name).Key(), nil
		}
	}
	return "", fmt.Errorf("%s: cannot render reference %s", e.Range(), hclutil.TraversalKey(e.Traversal))
}

func (p *printer) value(val cty.Value, rng hcl.Range) (string, error) {
	if val.IsNull() || !val.IsKnown() {
		return "", fmt.Errorf("%s: null or unknown literal", rng)
	}
	switch val.Type() {
	case cty.Bool:
		if val.True() {
			return p.skin.Literals["true"], nil
		}
		return p.skin.Literals["false"], nil
	case cty.String:
		return strconv.Quote(val.AsString()), nil
	case cty.Number:
		return hclutil.Literal(val)
	default:
		return "", fmt.Errorf("%s: unsupported literal of type %s", rng, val.Type().FriendlyName())
	}
}

func unsupported(expr hclsyntax.Expression) error {
	return fmt.Errorf("%s: unsupported expression %T", expr.Range(), expr)
}
