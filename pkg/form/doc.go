// Package form holds the mutable state of one form: a fixed, ordered set of
// named fields, each with a value, an error message, a touched flag and a
// validity flag. Updates run the field's rules through package rules and the
// form-level aggregates (validity, touched, completion) are recomputed from
// the field states on every read.
//
// A Form is owned by a single caller and is not safe for concurrent use.
package form
