package hcl

import "github.com/hashicorp/hcl/v2"

// fileRoot decodes the top level of a CSL file.
type fileRoot struct {
	SearchSpaces []*searchSpaceBlock `hcl:"search_space,block"`
}

// searchSpaceBlock is one `search_space "<problem>" { ... }` block. The
// specification block is read from Remain so duplicates can be reported.
type searchSpaceBlock struct {
	Name        string             `hcl:"name,label"`
	CodeRegions hcl.Expression     `hcl:"code_regions,optional"`
	Constants   []*constantBlock   `hcl:"constant,block"`
	RegionSets  []*regionSetBlock  `hcl:"region_set,block"`
	Parameters  []*parameterBlock  `hcl:"parameter,block"`
	Constraints []*constraintBlock `hcl:"constraint,block"`
	Remain      hcl.Body           `hcl:",remain"`
}

type constantBlock struct {
	Name  string         `hcl:"name,label"`
	Type  hcl.Expression `hcl:"type,optional"`
	Value hcl.Expression `hcl:"value,attr"`
}

type regionSetBlock struct {
	Name    string         `hcl:"name,label"`
	Regions hcl.Expression `hcl:"regions,attr"`
}

type parameterBlock struct {
	Name        string             `hcl:"name,label"`
	Type        hcl.Expression     `hcl:"type,attr"`
	Default     hcl.Expression     `hcl:"default,optional"`
	RegionSet   hcl.Expression     `hcl:"region_set,optional"`
	Values      hcl.Expression     `hcl:"values,optional"`
	Ranges      []*rangeBlock      `hcl:"range,block"`
	PowerRanges []*powerRangeBlock `hcl:"power_range,block"`
}

// rangeBlock is a linear fill; step defaults to 1.
type rangeBlock struct {
	Min  hcl.Expression `hcl:"min,attr"`
	Max  hcl.Expression `hcl:"max,attr"`
	Step hcl.Expression `hcl:"step,optional"`
}

type powerRangeBlock struct {
	Min  hcl.Expression `hcl:"min,attr"`
	Max  hcl.Expression `hcl:"max,attr"`
	Base hcl.Expression `hcl:"base,attr"`
}

type constraintBlock struct {
	Name string         `hcl:"name,label"`
	Expr hcl.Expression `hcl:"expr,attr"`
}

type specificationBlock struct {
	Expr hcl.Expression `hcl:"expr,attr"`
}

var specificationSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{{Type: "specification"}},
}
