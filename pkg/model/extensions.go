package model

import (
	internalmodel "github.com/goliatone/go-formgate/internal/model"
	pkgopenapi "github.com/goliatone/go-formgate/pkg/openapi"
)

// ExtensionNamespace is the OpenAPI vendor extension read when deriving
// definitions from request bodies.
const ExtensionNamespace = internalmodel.ExtensionNamespace

// ParseExtensions flattens x-formgate extensions into string metadata. It
// returns nil when no supported value is present.
func ParseExtensions(ext map[string]any) map[string]string {
	return internalmodel.ParseExtensions(ext)
}

// Violation is one problem reported by Lint.
type Violation = internalmodel.Violation

// ExtensionKeys lists the supported x-formgate keys.
func ExtensionKeys() []string {
	return internalmodel.ExtensionKeys()
}

// Lint checks the x-formgate extensions of ops. Custom validator names are
// resolved against registry; a nil registry skips that check.
func Lint(ops map[string]pkgopenapi.Operation, registry *Registry) []Violation {
	var known func(string) bool
	if registry != nil {
		known = registry.Has
	}
	return internalmodel.Lint(ops, known)
}
