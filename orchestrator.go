package formgate

import (
	"context"

	"github.com/goliatone/go-formgate/pkg/form"
	"github.com/goliatone/go-formgate/pkg/model"
	pkgopenapi "github.com/goliatone/go-formgate/pkg/openapi"
	"github.com/goliatone/go-formgate/pkg/orchestrator"
)

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// FormFromOpenAPI loads the OpenAPI source and builds the form definition for
// the requested operation.
func FormFromOpenAPI(ctx context.Context, source pkgopenapi.Source, operationID string, options ...orchestrator.Option) (model.FormModel, error) {
	return orchestrator.New(options...).Build(ctx, orchestrator.Request{
		Source:      source,
		OperationID: operationID,
	})
}

// CompileFromOpenAPI is FormFromOpenAPI followed by compilation into a live
// form store.
func CompileFromOpenAPI(ctx context.Context, source pkgopenapi.Source, operationID string, options ...orchestrator.Option) (model.FormModel, *form.Form, error) {
	return orchestrator.New(options...).Compile(ctx, orchestrator.Request{
		Source:      source,
		OperationID: operationID,
	})
}

// WithDecorators registers definition decorators that can be passed to
// FormFromOpenAPI alongside other orchestrator options.
func WithDecorators(decorators ...model.Decorator) orchestrator.Option {
	return orchestrator.WithDecorators(decorators...)
}

// WithRegistry makes the named custom validators in registry available to
// the compiled form.
func WithRegistry(registry *model.Registry) orchestrator.Option {
	return orchestrator.WithModelOptions(model.WithRegistry(registry))
}
