// Package orchestrator wires the loader → parser → builder pipeline that turns
// an OpenAPI operation into a form definition, then compiles the definition
// into a live form store. Each stage can be replaced through options.
package orchestrator
