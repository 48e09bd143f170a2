package render

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
	"text/template"

	"github.com/specialistvlad/cslgen/internal/csl"
	"github.com/specialistvlad/cslgen/internal/ctxlog"
	"github.com/specialistvlad/cslgen/internal/translate"
	"gopkg.in/yaml.v3"
)

//go:embed skins/*.yaml
var builtinSkins embed.FS

// requiredOperators are the operator keys every skin must spell. "neg" is
// unary minus; "!" is logical negation.
var requiredOperators = []string{
	"||", "&&", "==", "!=", "<", "<=", ">", ">=",
	"+", "-", "*", "/", "%", "!", "neg",
}

// Skin is a loaded skin. It implements translate.Renderer.
type Skin struct {
	Name        string            `yaml:"name"`
	Extension   string            `yaml:"extension"`
	Operators   map[string]string `yaml:"operators"`
	Functions   map[string]string `yaml:"functions"`
	Literals    map[string]string `yaml:"literals"`
	ImportsFor  map[string]string `yaml:"imports_for"`
	Conditional string            `yaml:"conditional"`
	Template    string            `yaml:"template"`

	tmpl *template.Template
}

// BuiltinSkins returns the names of the embedded skins.
func BuiltinSkins() []string {
	entries, err := fs.ReadDir(builtinSkins, "skins")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), path.Ext(e.Name())))
	}
	sort.Strings(names)
	return names
}

// Loader is the translate.SkinLoader over embedded skins and skin files.
type Loader struct{}

// NewLoader creates a skin loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load resolves ref: a built-in skin name first, then a file path.
func (l *Loader) Load(ctx context.Context, ref string) (translate.Renderer, error) {
	skin, err := LoadSkin(ctx, ref)
	if err != nil {
		return nil, err
	}
	return skin, nil
}

// LoadSkin reads and compiles the skin ref names.
func LoadSkin(ctx context.Context, ref string) (*Skin, error) {
	logger := ctxlog.FromContext(ctx)
	if ref == "" {
		return nil, errors.New("empty skin reference")
	}

	data, err := builtinSkins.ReadFile("skins/" + ref + ".yaml")
	source := "builtin"
	if err != nil {
		data, err = os.ReadFile(ref)
		if err != nil {
			return nil, fmt.Errorf("%q is neither a built-in skin (%s) nor a readable file: %w", ref, strings.Join(BuiltinSkins(), ", "), err)
		}
		source = "file"
	}
	logger.Debug("Skin source found.", "ref", ref, "source", source, "bytes", len(data))

	return ParseSkin(ref, data)
}

// ParseSkin decodes a skin descriptor and compiles its template. Unknown
// fields are rejected.
func ParseSkin(ref string, data []byte) (*Skin, error) {
	var skin Skin
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&skin); err != nil {
		return nil, fmt.Errorf("decoding skin %s: %w", ref, err)
	}

	if skin.Name == "" {
		skin.Name = strings.TrimSuffix(path.Base(ref), path.Ext(ref))
	}
	if strings.TrimSpace(skin.Template) == "" {
		return nil, fmt.Errorf("skin %s has no template", skin.Name)
	}
	var missing []string
	for _, op := range requiredOperators {
		if _, ok := skin.Operators[op]; !ok {
			missing = append(missing, op)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("skin %s does not spell operators %q", skin.Name, missing)
	}
	for _, lit := range []string{"true", "false"} {
		if _, ok := skin.Literals[lit]; !ok {
			return nil, fmt.Errorf("skin %s does not spell the %s literal", skin.Name, lit)
		}
	}
	for _, fn := range csl.Builtins() {
		if _, ok := skin.Functions[fn]; !ok {
			return nil, fmt.Errorf("skin %s does not map function %s", skin.Name, fn)
		}
	}

	tmpl, err := template.New(skin.Name).Funcs(templateFuncs).Option("missingkey=error").Parse(skin.Template)
	if err != nil {
		return nil, fmt.Errorf("parsing template of skin %s: %w", skin.Name, err)
	}
	skin.tmpl = tmpl
	return &skin, nil
}

// Render implements translate.Renderer.
func (s *Skin) Render(ctx context.Context, prog *csl.Program) (string, error) {
	logger := ctxlog.FromContext(ctx)

	view, err := s.BuildView(prog)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := s.tmpl.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("executing template: %w", err)
	}
	logger.Debug("Program rendered.", "skin", s.Name, "problem", prog.Problem, "bytes", buf.Len())
	return buf.String(), nil
}
