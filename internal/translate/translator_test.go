package translate

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/cslgen/internal/csl"
	"github.com/stretchr/testify/require"
)

type stubParser struct {
	prog  *csl.Program
	err   error
	calls int
}

func (p *stubParser) Parse(_ context.Context, _ string, _ []byte) (*csl.Program, error) {
	p.calls++
	return p.prog, p.err
}

type stubRenderer struct {
	text string
	err  error
}

func (r *stubRenderer) Render(_ context.Context, prog *csl.Program) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	return r.text + prog.Problem, nil
}

type stubSkins map[string]Renderer

func (s stubSkins) Load(_ context.Context, ref string) (Renderer, error) {
	r, ok := s[ref]
	if !ok {
		return nil, errors.New("no such skin")
	}
	return r, nil
}

func stubProgram(t *testing.T) *csl.Program {
	t.Helper()
	return &csl.Program{
		Problem:       "simple",
		Specification: csl.NewSpecification(context.Background(), "simple", nil, nil),
	}
}

func writeInput(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "in.csl")
	require.NoError(t, os.WriteFile(path, []byte("search_space \"simple\" {}\n"), 0o600))
	return path
}

func TestTranslate_WritesOutput(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.py")
	tr := New(&stubParser{prog: stubProgram(t)}, stubSkins{"python": &stubRenderer{text: "problem="}})

	res, err := tr.Translate(context.Background(), Options{InputPath: writeInput(t), OutputPath: out})
	require.NoError(t, err)
	require.Equal(t, "problem=simple", res.Text)
	require.Equal(t, out, res.OutputPath)
	require.Equal(t, "simple", res.Program.Problem)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Equal(t, "problem=simple", string(data))

	entries, err := os.ReadDir(filepath.Dir(out))
	require.NoError(t, err)
	require.Len(t, entries, 1, "no temp files may be left behind")
}

func TestTranslate_ReplacesExistingOutput(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out")
	require.NoError(t, os.WriteFile(out, []byte("old"), 0o600))

	tr := New(&stubParser{prog: stubProgram(t)}, stubSkins{"json": &stubRenderer{text: "new:"}})
	_, err := tr.Translate(context.Background(), Options{InputPath: writeInput(t), Skin: "json", OutputPath: out})
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Equal(t, "new:simple", string(data))
}

func TestTranslate_Failures(t *testing.T) {
	diags := hcl.Diagnostics{{
		Severity: hcl.DiagError,
		Summary:  "Unknown identifier",
		Subject:  &hcl.Range{Filename: "in.csl", Start: hcl.Pos{Line: 7, Column: 12}, End: hcl.Pos{Line: 7, Column: 13}},
	}}

	testCases := []struct {
		name        string
		input       bool
		parser      *stubParser
		skins       stubSkins
		skin        string
		check       func(t *testing.T, err error)
		parserCalls int
	}{
		{
			name:   "missing input",
			parser: &stubParser{prog: stubProgram(t)},
			skins:  stubSkins{"python": &stubRenderer{}},
			check: func(t *testing.T, err error) {
				var usage *UsageError
				require.ErrorAs(t, err, &usage)
			},
		},
		{
			name:   "unknown skin",
			input:  true,
			parser: &stubParser{prog: stubProgram(t)},
			skins:  stubSkins{},
			skin:   "cobol",
			check: func(t *testing.T, err error) {
				var loadErr *TemplateLoadError
				require.ErrorAs(t, err, &loadErr)
				require.Equal(t, "cobol", loadErr.Skin)
			},
		},
		{
			name:   "parse failure with location",
			input:  true,
			parser: &stubParser{err: diags},
			skins:  stubSkins{"python": &stubRenderer{}},
			check: func(t *testing.T, err error) {
				var parseErr *ParseError
				require.ErrorAs(t, err, &parseErr)
				require.Equal(t, "in.csl", parseErr.File)
				require.Equal(t, 7, parseErr.Line)
				require.Equal(t, 12, parseErr.Column)
				require.Contains(t, parseErr.Error(), "in.csl:7:12")
			},
			parserCalls: 1,
		},
		{
			name:   "parse failure without location",
			input:  true,
			parser: &stubParser{err: errors.New("bad input")},
			skins:  stubSkins{"python": &stubRenderer{}},
			check: func(t *testing.T, err error) {
				var parseErr *ParseError
				require.ErrorAs(t, err, &parseErr)
				require.Zero(t, parseErr.Line)
				require.EqualError(t, parseErr.Err, "bad input")
			},
			parserCalls: 1,
		},
		{
			name:   "render failure",
			input:  true,
			parser: &stubParser{prog: stubProgram(t)},
			skins:  stubSkins{"python": &stubRenderer{err: errors.New("boom")}},
			check: func(t *testing.T, err error) {
				var renderErr *RenderError
				require.ErrorAs(t, err, &renderErr)
				require.ErrorContains(t, err, "boom")
			},
			parserCalls: 1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out := filepath.Join(t.TempDir(), "out")
			opts := Options{Skin: tc.skin, OutputPath: out}
			if tc.input {
				opts.InputPath = writeInput(t)
			}

			res, err := New(tc.parser, tc.skins).Translate(context.Background(), opts)
			require.Error(t, err)
			require.Nil(t, res)
			tc.check(t, err)
			require.Equal(t, tc.parserCalls, tc.parser.calls)

			_, statErr := os.Stat(out)
			require.True(t, os.IsNotExist(statErr), "no output may be written on failure")
		})
	}
}

func TestTranslate_UnreadableInputIsUsageError(t *testing.T) {
	tr := New(&stubParser{prog: stubProgram(t)}, stubSkins{"python": &stubRenderer{}})
	_, err := tr.Translate(context.Background(), Options{InputPath: filepath.Join(t.TempDir(), "missing.csl")})

	var usage *UsageError
	require.ErrorAs(t, err, &usage)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestOptions_Defaults(t *testing.T) {
	opts := Options{InputPath: "a.csl"}.withDefaults()
	require.Equal(t, DefaultSkin, opts.Skin)
	require.Equal(t, DefaultOutputPath, opts.OutputPath)
}
