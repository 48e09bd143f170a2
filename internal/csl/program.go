package csl

// Program is what a front end builds from one source file: one search space
// with its declarations in source order.
type Program struct {
	Problem       string
	Regions       []string
	Constants     []*Symbol
	RegionSets    []*RegionSet
	Parameters    []*Parameter
	Constraints   []*Constraint
	Specification *Specification
}

// Parameter returns the parameter called name.
func (p *Program) Parameter(name string) (*Parameter, bool) {
	for _, param := range p.Parameters {
		if param.Name() == name {
			return param, true
		}
	}
	return nil, false
}

// Constraint returns the constraint called name.
func (p *Program) Constraint(name string) (*Constraint, bool) {
	for _, c := range p.Constraints {
		if c.Name() == name {
			return c, true
		}
	}
	return nil, false
}

// Constant returns the constant called name.
func (p *Program) Constant(name string) (*Symbol, bool) {
	for _, s := range p.Constants {
		if s.Name() == name {
			return s, true
		}
	}
	return nil, false
}

// RegionSet returns the region set called name.
func (p *Program) RegionSet(name string) (*RegionSet, bool) {
	for _, rs := range p.RegionSets {
		if rs.Name() == name {
			return rs, true
		}
	}
	return nil, false
}

// ReferencesTo returns every reference the program's parameters can be
// named by whose key is key, in declaration order. More than one means the
// names collide and all of them denote the same variable.
func (p *Program) ReferencesTo(key string) []Reference {
	var out []Reference
	for _, param := range p.Parameters {
	refs:
		for _, ref := range param.References() {
			if ref.Key() != key {
				continue
			}
			for _, seen := range out {
				if seen.SameShape(ref) {
					continue refs
				}
			}
			out = append(out, ref)
		}
	}
	return out
}
