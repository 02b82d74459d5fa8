package model

import (
	internalmodel "github.com/goliatone/go-formgate/internal/model"
	"github.com/goliatone/go-formgate/pkg/form"
	pkgopenapi "github.com/goliatone/go-formgate/pkg/openapi"
	"github.com/goliatone/go-formgate/pkg/submit"
)

// Builder derives form definitions from OpenAPI operations.
type Builder interface {
	Build(op pkgopenapi.Operation) (FormModel, error)
}

// Option configures builders and compilation.
type Option func(*options)

type options struct {
	labeler  func(string) string
	registry *Registry
}

// WithLabeler overrides the default label generation function.
func WithLabeler(labeler func(string) string) Option {
	return func(opts *options) {
		opts.labeler = labeler
	}
}

// WithRegistry sets the registry consulted by custom rules. DefaultRegistry
// is used when none is supplied.
func WithRegistry(registry *Registry) Option {
	return func(opts *options) {
		opts.registry = registry
	}
}

func resolve(opts []Option) internalmodel.Options {
	cfg := options{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.registry == nil {
		cfg.registry = DefaultRegistry()
	}
	return internalmodel.Options{
		Labeler:    cfg.labeler,
		Validators: cfg.registry.Get,
	}
}

// NewBuilder returns a Builder backed by the internal implementation.
func NewBuilder(opts ...Option) Builder {
	return internalmodel.New(resolve(opts))
}

// Compile validates def and builds its form store.
func Compile(def FormModel, opts ...Option) (*form.Form, error) {
	return internalmodel.NewCompiler(resolve(opts)).Compile(def)
}

// MustCompile is like Compile but panics on error.
func MustCompile(def FormModel, opts ...Option) *form.Form {
	f, err := Compile(def, opts...)
	if err != nil {
		panic(err)
	}
	return f
}

// SubmitConfig returns the gating options declared by def's submit section.
func SubmitConfig(def FormModel) submit.Config {
	return internalmodel.SubmitConfig(def)
}
