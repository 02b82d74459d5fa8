package model

import internalmodel "github.com/goliatone/go-formgate/internal/model"

// FieldKind re-exports the internal FieldKind enumeration.
type FieldKind = internalmodel.FieldKind

const (
	FieldKindText     = internalmodel.FieldKindText
	FieldKindEmail    = internalmodel.FieldKindEmail
	FieldKindPassword = internalmodel.FieldKindPassword
	FieldKindCheckbox = internalmodel.FieldKindCheckbox
	FieldKindTextarea = internalmodel.FieldKindTextarea
)

const (
	ValidationRuleRequired  = internalmodel.ValidationRuleRequired
	ValidationRuleMinLength = internalmodel.ValidationRuleMinLength
	ValidationRuleMaxLength = internalmodel.ValidationRuleMaxLength
	ValidationRulePattern   = internalmodel.ValidationRulePattern
	ValidationRuleEmail     = internalmodel.ValidationRuleEmail
	ValidationRuleFullName  = internalmodel.ValidationRuleFullName
	ValidationRulePassword  = internalmodel.ValidationRulePassword
	ValidationRuleChecked   = internalmodel.ValidationRuleChecked
	ValidationRuleMatches   = internalmodel.ValidationRuleMatches
	ValidationRuleCustom    = internalmodel.ValidationRuleCustom
)

type ValidationRule = internalmodel.ValidationRule
type Field = internalmodel.Field
type Submit = internalmodel.Submit
type FormModel = internalmodel.FormModel

// Validate checks a form definition without compiling it.
func Validate(def FormModel) error {
	return internalmodel.Validate(def)
}
