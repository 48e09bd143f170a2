package translate

import (
	"errors"
	"fmt"

	"github.com/hashicorp/hcl/v2"
)

// UsageError reports a problem with how the pipeline was invoked, such as a
// missing or unreadable input file.
type UsageError struct {
	Message string
	Err     error
}

func (e *UsageError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *UsageError) Unwrap() error { return e.Err }

// ParseError reports malformed CSL input. Line and Column are 1-based and
// zero when the location is unknown.
type ParseError struct {
	File   string
	Line   int
	Column int
	Err    error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %v", e.File, e.Line, e.Column, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.File, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// TemplateLoadError reports a skin that could not be found or loaded.
type TemplateLoadError struct {
	Skin string
	Err  error
}

func (e *TemplateLoadError) Error() string {
	return fmt.Sprintf("cannot load template %q: %v", e.Skin, e.Err)
}

func (e *TemplateLoadError) Unwrap() error { return e.Err }

// RenderError reports a failure while rendering or writing the output.
type RenderError struct {
	Skin string
	Err  error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("rendering with %q failed: %v", e.Skin, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// newParseError locates err in the source. hcl.Diagnostics carry their own
// ranges; the first error diagnostic with a subject wins.
func newParseError(file string, err error) *ParseError {
	pe := &ParseError{File: file, Err: err}

	var diags hcl.Diagnostics
	if errors.As(err, &diags) {
		for _, d := range diags {
			if d.Severity != hcl.DiagError || d.Subject == nil {
				continue
			}
			pe.Line = d.Subject.Start.Line
			pe.Column = d.Subject.Start.Column
			if d.Subject.Filename != "" {
				pe.File = d.Subject.Filename
			}
			break
		}
	}
	return pe
}
