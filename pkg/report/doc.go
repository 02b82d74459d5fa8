// Package report renders a text summary of a form: each field with its value
// and error, completion, the password strength meter and the submit control.
// Templates use pongo2 syntax; the embedded default can be replaced with
// WithFS or WithTemplateString.
package report
