// Package submit derives the state of a form's submit control from the
// form-level aggregates and a declarative gating configuration. Derive is a
// pure decision table: the first gating condition that matches decides the
// outcome.
package submit
