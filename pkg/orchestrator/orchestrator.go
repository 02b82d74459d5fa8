package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"sort"

	internalLoader "github.com/goliatone/go-formgate/internal/openapi/loader"
	internalParser "github.com/goliatone/go-formgate/internal/openapi/parser"
	"github.com/goliatone/go-formgate/pkg/form"
	"github.com/goliatone/go-formgate/pkg/model"
	pkgopenapi "github.com/goliatone/go-formgate/pkg/openapi"
)

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom OpenAPI loader.
func WithLoader(loader pkgopenapi.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithParser injects a custom OpenAPI parser.
func WithParser(parser pkgopenapi.Parser) Option {
	return func(o *Orchestrator) {
		o.parser = parser
	}
}

// WithModelBuilder injects a custom form definition builder.
func WithModelBuilder(builder model.Builder) Option {
	return func(o *Orchestrator) {
		o.builder = builder
	}
}

// WithModelOptions forwards options to the default builder and to Compile.
func WithModelOptions(opts ...model.Option) Option {
	return func(o *Orchestrator) {
		o.modelOpts = append(o.modelOpts, opts...)
	}
}

// WithSchemaTransformer registers a Transformer that mutates definitions
// after building and before decorators run.
func WithSchemaTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		o.transformer = t
	}
}

// WithDecorators registers decorators applied to every built definition.
func WithDecorators(decorators ...model.Decorator) Option {
	return func(o *Orchestrator) {
		o.decorators = append(o.decorators, decorators...)
	}
}

// Orchestrator coordinates the pipeline from OpenAPI document to form
// definition and compiled form store. Missing dependencies are filled with
// the built-in implementations.
type Orchestrator struct {
	loader      pkgopenapi.Loader
	parser      pkgopenapi.Parser
	builder     model.Builder
	modelOpts   []model.Option
	transformer Transformer
	decorators  []model.Decorator
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	if o.loader == nil {
		o.loader = internalLoader.New(pkgopenapi.NewLoaderOptions())
	}
	if o.parser == nil {
		o.parser = internalParser.New(pkgopenapi.NewParserOptions())
	}
	if o.builder == nil {
		o.builder = model.NewBuilder(o.modelOpts...)
	}
	return o
}

// Request describes which operation of which document to turn into a form.
type Request struct {
	// Source identifies where the OpenAPI document lives. Optional when
	// Document is supplied.
	Source pkgopenapi.Source

	// Document bypasses the loader when the payload is already in memory.
	Document *pkgopenapi.Document

	// OperationID selects the operation whose request body becomes the form.
	OperationID string
}

// Operations lists the operation IDs of the requested document that carry a
// request body, sorted.
func (o *Orchestrator) Operations(ctx context.Context, req Request) ([]string, error) {
	operations, err := o.operations(ctx, req)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(operations))
	for id, op := range operations {
		if op.HasRequestBody() {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// Build runs loader, parser, builder, transformer and decorators and returns
// the resulting definition.
func (o *Orchestrator) Build(ctx context.Context, req Request) (model.FormModel, error) {
	if req.OperationID == "" {
		return model.FormModel{}, errors.New("orchestrator: operation id is required")
	}
	operations, err := o.operations(ctx, req)
	if err != nil {
		return model.FormModel{}, err
	}
	op, ok := operations[req.OperationID]
	if !ok {
		return model.FormModel{}, fmt.Errorf("orchestrator: operation %q not found", req.OperationID)
	}

	def, err := o.builder.Build(op)
	if err != nil {
		return model.FormModel{}, fmt.Errorf("orchestrator: build form model: %w", err)
	}
	if o.transformer != nil {
		if err := o.transformer.Transform(ctx, &def); err != nil {
			return model.FormModel{}, fmt.Errorf("orchestrator: transform form: %w", err)
		}
	}
	if err := model.Decorate(&def, o.decorators...); err != nil {
		return model.FormModel{}, fmt.Errorf("orchestrator: decorate form: %w", err)
	}
	if err := model.Validate(def); err != nil {
		return model.FormModel{}, fmt.Errorf("orchestrator: %w", err)
	}
	return def, nil
}

// Compile builds the definition and its live form store.
func (o *Orchestrator) Compile(ctx context.Context, req Request) (model.FormModel, *form.Form, error) {
	def, err := o.Build(ctx, req)
	if err != nil {
		return model.FormModel{}, nil, err
	}
	f, err := model.Compile(def, o.modelOpts...)
	if err != nil {
		return model.FormModel{}, nil, fmt.Errorf("orchestrator: compile form: %w", err)
	}
	return def, f, nil
}

func (o *Orchestrator) operations(ctx context.Context, req Request) (map[string]pkgopenapi.Operation, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	doc, err := o.resolveDocument(ctx, req)
	if err != nil {
		return nil, err
	}
	operations, err := o.parser.Operations(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: parse operations: %w", err)
	}
	return operations, nil
}

func (o *Orchestrator) resolveDocument(ctx context.Context, req Request) (pkgopenapi.Document, error) {
	if req.Document != nil {
		return *req.Document, nil
	}
	if req.Source == nil {
		return pkgopenapi.Document{}, errors.New("orchestrator: source or document is required")
	}
	doc, err := o.loader.Load(ctx, req.Source)
	if err != nil {
		return pkgopenapi.Document{}, fmt.Errorf("orchestrator: load document: %w", err)
	}
	return doc, nil
}
