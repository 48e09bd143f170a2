// Package hcl is the CSL front end. It reads the HCL surface syntax of a
// search space, resolves every name a constraint uses, and builds the
// format-agnostic csl.Program the rest of the pipeline consumes. HCL
// problems are returned as hcl.Diagnostics so callers keep source locations.
package hcl
