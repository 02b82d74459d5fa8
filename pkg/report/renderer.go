package report

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
)

//go:embed templates/*.tpl
var embeddedTemplates embed.FS

// DefaultTemplate names the embedded text report.
const DefaultTemplate = "report.tpl"

// TemplatesFS returns the embedded templates, rooted at their directory.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return embeddedTemplates
	}
	return sub
}

// Option configures a Renderer.
type Option func(*config)

type config struct {
	templates fs.FS
	name      string
	source    string
}

// WithFS loads the named template from files instead of the embedded set.
func WithFS(files fs.FS, name string) Option {
	return func(cfg *config) {
		cfg.templates = files
		cfg.name = strings.TrimSpace(name)
	}
}

// WithTemplateString renders reports with the given template source.
func WithTemplateString(source string) Option {
	return func(cfg *config) {
		cfg.source = source
	}
}

// Renderer turns a Report into text using a pongo2 template.
type Renderer struct {
	mu       sync.RWMutex
	template *pongo2.Template
}

// New parses the configured template. The embedded report is used by
// default.
func New(options ...Option) (*Renderer, error) {
	cfg := &config{name: DefaultTemplate}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}
	registerFilters()

	var (
		tmpl *pongo2.Template
		err  error
	)
	if cfg.source != "" {
		tmpl, err = pongo2.FromString(cfg.source)
		if err != nil {
			return nil, fmt.Errorf("report: parse template string: %w", err)
		}
		return &Renderer{template: tmpl}, nil
	}

	if cfg.name == "" {
		return nil, errors.New("report: template name is required")
	}
	files := cfg.templates
	if files == nil {
		files = TemplatesFS()
	}
	set := pongo2.NewSet("formgate-report", pongo2.NewFSLoader(files))
	tmpl, err = set.FromFile(cfg.name)
	if err != nil {
		return nil, fmt.Errorf("report: load template %q: %w", cfg.name, err)
	}
	return &Renderer{template: tmpl}, nil
}

// Render returns the rendered report.
func (r *Renderer) Render(report Report) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.RenderTo(&buf, report); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RenderTo writes the rendered report to w.
func (r *Renderer) RenderTo(w io.Writer, report Report) error {
	if r == nil || r.template == nil {
		return errors.New("report: renderer is nil")
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if err := r.template.ExecuteWriter(pongo2.Context{"report": report}, w); err != nil {
		return fmt.Errorf("report: execute template: %w", err)
	}
	return nil
}

var registerOnce sync.Once

func registerFilters() {
	registerOnce.Do(func() {
		if !pongo2.FilterExists("mark") {
			_ = pongo2.RegisterFilter("mark", filterMark)
		}
	})
}

// filterMark prints a check mark for truthy values and a cross otherwise.
func filterMark(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.IsTrue() {
		return pongo2.AsValue("✓"), nil
	}
	return pongo2.AsValue("✗"), nil
}
