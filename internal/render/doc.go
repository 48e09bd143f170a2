// Package render turns a csl.Program into target text with skins. A skin is
// a YAML descriptor holding the target's operator, function and literal
// spellings plus a Go text/template. Rendering builds a skin-neutral View
// of the program once, translates every expression with the skin's
// spellings, and executes the template over the View.
package render
