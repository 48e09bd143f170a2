package csl

// RegionSet is a named, ordered group of code-region identifiers.
// Duplicates are kept.
type RegionSet struct {
	name    string
	regions []string
}

// NewRegionSet creates an empty region set.
func NewRegionSet(name string) *RegionSet {
	return &RegionSet{name: name}
}

func (rs *RegionSet) Name() string { return rs.name }

// Push appends one region.
func (rs *RegionSet) Push(region string) {
	rs.regions = append(rs.regions, region)
}

// PushList appends regions in order.
func (rs *RegionSet) PushList(regions []string) {
	rs.regions = append(rs.regions, regions...)
}

// Regions returns a copy of the regions in insertion order.
func (rs *RegionSet) Regions() []string {
	return append([]string{}, rs.regions...)
}

// Has reports whether region is part of the set.
func (rs *RegionSet) Has(region string) bool {
	for _, r := range rs.regions {
		if r == region {
			return true
		}
	}
	return false
}
