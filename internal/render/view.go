package render

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/specialistvlad/cslgen/internal/csl"
)

// View is the skin-neutral picture of a program a template executes over.
// Every list keeps the program's order.
type View struct {
	Problem       string            `json:"problem"`
	Skin          string            `json:"skin"`
	Imports       []string          `json:"imports"`
	Regions       []string          `json:"regions"`
	Constants     []ConstantView    `json:"constants"`
	RegionSets    []RegionSetView   `json:"region_sets"`
	Parameters    []ParameterView   `json:"parameters"`
	Variables     []VariableView    `json:"variables"`
	Constraints   []ConstraintView  `json:"constraints"`
	Specification SpecificationView `json:"specification"`
}

type ConstantView struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Value string `json:"value"`
}

type RegionSetView struct {
	Name    string   `json:"name"`
	Regions []string `json:"regions"`
}

// ParameterView describes one declared parameter.
type ParameterView struct {
	Name       string   `json:"name"`
	Type       string   `json:"type"`
	Default    string   `json:"default,omitempty"`
	HasDefault bool     `json:"has_default"`
	RegionSet  string   `json:"region_set,omitempty"`
	Regions    []string `json:"regions"`
	Variables  []string `json:"variables"`
	Values     []string `json:"values"`
}

// VariableView is one generated variable: a parameter without a region
// set, or one region of a region-bound parameter.
type VariableView struct {
	Name       string   `json:"name"`
	Parameter  string   `json:"parameter"`
	Region     string   `json:"region,omitempty"`
	RegionSet  string   `json:"region_set,omitempty"`
	Default    string   `json:"default,omitempty"`
	HasDefault bool     `json:"has_default"`
	Values     []string `json:"values"`
}

type ConstraintView struct {
	Name string   `json:"name"`
	Args []string `json:"args"`
	Body string   `json:"body"`
}

type SpecificationView struct {
	Constraints []string `json:"constraints"`
	Args        []string `json:"args"`
	Body        string   `json:"body"`
}

// BuildView translates prog with the skin's spellings. It only reads prog.
func (s *Skin) BuildView(prog *csl.Program) (*View, error) {
	if prog == nil || prog.Specification == nil {
		return nil, fmt.Errorf("program has no specification")
	}

	v := &View{
		Problem:     prog.Problem,
		Skin:        s.Name,
		Imports:     []string{},
		Regions:     append([]string{}, prog.Regions...),
		Constants:   []ConstantView{},
		RegionSets:  []RegionSetView{},
		Parameters:  []ParameterView{},
		Variables:   []VariableView{},
		Constraints: []ConstraintView{},
	}

	constants := make(map[string]struct{}, len(prog.Constants))
	for _, c := range prog.Constants {
		constants[c.Name()] = struct{}{}
		v.Constants = append(v.Constants, ConstantView{
			Name:  c.Name(),
			Type:  csl.TypeName(c.Kind()),
			Value: s.literal(c.Kind(), c.Literal()),
		})
	}

	for _, rs := range prog.RegionSets {
		v.RegionSets = append(v.RegionSets, RegionSetView{Name: rs.Name(), Regions: rs.Regions()})
	}

	// Colliding variable names are declared once. The reference the
	// specification kept decides whose values the variable takes.
	kept := make(map[string]csl.Reference)
	for _, ref := range prog.Specification.Arguments() {
		kept[ref.Key()] = ref
	}
	declared := make(map[string]int)

	for _, p := range prog.Parameters {
		pv := s.parameterView(p)
		v.Parameters = append(v.Parameters, pv)
		refs := p.References()
		for i, name := range pv.Variables {
			vv := VariableView{
				Name:       name,
				Parameter:  p.Name(),
				RegionSet:  pv.RegionSet,
				Default:    pv.Default,
				HasDefault: pv.HasDefault,
				Values:     pv.Values,
			}
			if len(pv.Regions) > 0 {
				vv.Region = pv.Regions[i]
			}
			if at, dup := declared[name]; dup {
				if ref, ok := kept[name]; ok && ref.SameShape(refs[i]) {
					v.Variables[at] = vv
				}
				continue
			}
			declared[name] = len(v.Variables)
			v.Variables = append(v.Variables, vv)
		}
	}

	pr := &printer{skin: s, constants: constants}
	used := make(map[string]struct{})
	for _, c := range prog.Constraints {
		body, err := pr.body(c.Body(), used)
		if err != nil {
			return nil, fmt.Errorf("constraint %s: %w", c.Name(), err)
		}
		v.Constraints = append(v.Constraints, ConstraintView{
			Name: c.Name(),
			Args: c.ArgumentSet().Keys(),
			Body: body,
		})
	}

	spec, err := s.specificationView(prog.Specification, constants)
	if err != nil {
		return nil, fmt.Errorf("specification: %w", err)
	}
	v.Specification = spec

	v.Imports = s.imports(used)
	return v, nil
}

func (s *Skin) parameterView(p *csl.Parameter) ParameterView {
	pv := ParameterView{
		Name:      p.Name(),
		Type:      csl.TypeName(p.Kind()),
		Regions:   p.CodeRegions(),
		Variables: p.Variables(),
		Values:    []string{},
	}
	if rs := p.RegionSet(); rs != nil {
		pv.RegionSet = rs.Name()
	}
	if def, ok := p.Default(); ok {
		pv.Default = s.literal(def.Kind(), def.Literal())
		pv.HasDefault = true
	}

	switch {
	case p.Domain() != nil:
		pv.Values = p.Domain().Literals()
	case p.Kind() == csl.TypeBoolean:
		pv.Values = []string{s.Literals["true"], s.Literals["false"]}
	}
	return pv
}

// specificationView renders the specification body with constraint names
// turned into calls. Without a body the constraints are AND-ed in order.
func (s *Skin) specificationView(spec *csl.Specification, constants map[string]struct{}) (SpecificationView, error) {
	calls := make(map[string]string)
	sv := SpecificationView{Constraints: []string{}, Args: spec.ArgumentSet().Keys()}
	if sv.Args == nil {
		sv.Args = []string{}
	}
	for _, c := range spec.Constraints() {
		sv.Constraints = append(sv.Constraints, c.Name())
		calls[c.Name()] = c.Name() + "(" + strings.Join(c.ArgumentSet().Keys(), ", ") + ")"
	}

	if spec.Body() == nil {
		switch len(sv.Constraints) {
		case 0:
			sv.Body = s.Literals["true"]
		default:
			body := calls[sv.Constraints[0]]
			for _, name := range sv.Constraints[1:] {
				body = "(" + body + " " + s.Operators["&&"] + " " + calls[name] + ")"
			}
			sv.Body = body
		}
		return sv, nil
	}

	pr := &printer{skin: s, constants: constants, calls: calls}
	body, err := pr.body(spec.Body(), nil)
	if err != nil {
		return sv, err
	}
	sv.Body = body
	return sv, nil
}

// literal spells a scalar literal of kind for the skin's target.
func (s *Skin) literal(kind csl.Type, text string) string {
	switch kind {
	case csl.TypeBoolean:
		if spelled, ok := s.Literals[text]; ok {
			return spelled
		}
	case csl.TypeString:
		return strconv.Quote(text)
	case csl.TypeFloat:
		if f, err := strconv.ParseFloat(text, 64); err == nil {
			return csl.FormatFloat(f)
		}
	}
	return text
}

func (s *Skin) imports(used map[string]struct{}) []string {
	names := make([]string, 0, len(used))
	for fn := range used {
		names = append(names, fn)
	}
	sort.Strings(names)

	seen := make(map[string]struct{})
	out := []string{}
	for _, fn := range names {
		line, ok := s.ImportsFor[fn]
		if !ok {
			continue
		}
		if _, dup := seen[line]; dup {
			continue
		}
		seen[line] = struct{}{}
		out = append(out, line)
	}
	return out
}
