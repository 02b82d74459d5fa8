// Package rules evaluates per-field validation rule sets. A ValidationRule is
// a small declarative struct (required, minLength, maxLength, pattern and an
// optional custom check) and Validate applies its constraints in a fixed
// order, returning the first failing message. Generic failures therefore
// always mask domain-specific custom checks. Presets cover the fields used by
// the account flows: e-mail, full name, consent checkboxes and confirmation
// fields.
package rules
