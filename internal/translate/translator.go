package translate

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/specialistvlad/cslgen/internal/csl"
	"github.com/specialistvlad/cslgen/internal/ctxlog"
)

const (
	// DefaultSkin is used when Options.Skin is empty.
	DefaultSkin = "python"
	// DefaultOutputPath is used when Options.OutputPath is empty.
	DefaultOutputPath = "out"
)

// Options selects the input, the skin and the destination of one run.
type Options struct {
	InputPath  string
	Skin       string
	OutputPath string
}

// withDefaults fills the optional fields.
func (o Options) withDefaults() Options {
	if o.Skin == "" {
		o.Skin = DefaultSkin
	}
	if o.OutputPath == "" {
		o.OutputPath = DefaultOutputPath
	}
	return o
}

// Result is what a successful run produced.
type Result struct {
	Program    *csl.Program
	Text       string
	OutputPath string
}

// Translator wires a front end to a set of skins.
type Translator struct {
	parser Parser
	skins  SkinLoader
}

// New creates a Translator.
func New(parser Parser, skins SkinLoader) *Translator {
	return &Translator{parser: parser, skins: skins}
}

// Translate runs the pipeline: read input, load skin, parse, render, write.
// Any failure aborts the run before the output file is touched.
func (t *Translator) Translate(ctx context.Context, opts Options) (*Result, error) {
	logger := ctxlog.FromContext(ctx)
	opts = opts.withDefaults()

	if opts.InputPath == "" {
		return nil, &UsageError{Message: "no CSL input file given"}
	}
	src, err := os.ReadFile(opts.InputPath)
	if err != nil {
		return nil, &UsageError{Message: fmt.Sprintf("cannot read CSL input %s", opts.InputPath), Err: err}
	}
	logger.Debug("CSL input read.", "path", opts.InputPath, "bytes", len(src))

	renderer, err := t.skins.Load(ctx, opts.Skin)
	if err != nil {
		return nil, &TemplateLoadError{Skin: opts.Skin, Err: err}
	}
	logger.Debug("Skin loaded.", "skin", opts.Skin)

	prog, err := t.parser.Parse(ctx, opts.InputPath, src)
	if err != nil {
		return nil, newParseError(opts.InputPath, err)
	}
	if prog == nil || prog.Specification == nil {
		return nil, &ParseError{File: opts.InputPath, Err: errors.New("front end produced no specification")}
	}
	logger.Debug("CSL program built.", "problem", prog.Problem, "parameters", len(prog.Parameters), "constraints", len(prog.Constraints))

	text, err := renderer.Render(ctx, prog)
	if err != nil {
		return nil, &RenderError{Skin: opts.Skin, Err: err}
	}

	if err := writeFileAtomic(opts.OutputPath, []byte(text)); err != nil {
		return nil, &RenderError{Skin: opts.Skin, Err: fmt.Errorf("writing %s: %w", opts.OutputPath, err)}
	}
	logger.Info("Translation written.", "problem", prog.Problem, "skin", opts.Skin, "output", opts.OutputPath, "bytes", len(text))

	return &Result{Program: prog, Text: text, OutputPath: opts.OutputPath}, nil
}

// writeFileAtomic writes data next to path and renames it into place, so
// readers see either the old file or the complete new one.
func writeFileAtomic(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
