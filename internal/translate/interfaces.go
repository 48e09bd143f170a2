package translate

import (
	"context"

	"github.com/specialistvlad/cslgen/internal/csl"
)

// Parser turns CSL source text into a program.
type Parser interface {
	Parse(ctx context.Context, filename string, src []byte) (*csl.Program, error)
}

// Renderer turns a program into target text. A renderer must not modify
// the program it is given.
type Renderer interface {
	Render(ctx context.Context, prog *csl.Program) (string, error)
}

// SkinLoader resolves a skin reference, a built-in name or a file path, to
// a Renderer.
type SkinLoader interface {
	Load(ctx context.Context, ref string) (Renderer, error)
}
