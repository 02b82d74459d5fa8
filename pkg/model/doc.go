// Package model defines serialisable form definitions. A FormModel lists
// fields with a kind (text, email, password, checkbox, textarea) and
// declarative validation rules using canonical kinds (required, minLength,
// maxLength, pattern, email, fullName, password, checked, matches, custom)
// with string parameters, plus the submit section's gating options.
//
// Definitions come from YAML or JSON documents (Parse, LoadFile), from the
// embedded presets (Preset) or from OpenAPI request bodies (NewBuilder), and
// Compile turns them into a live form.Form. Custom rules name validators held
// in a Registry. The `x-formgate` OpenAPI extension carries labels,
// placeholders, ordering and confirmation links into field metadata.
package model
