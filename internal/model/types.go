package model

// FieldKind selects the input control and the preset rules a field gets.
type FieldKind string

const (
	FieldKindText     FieldKind = "text"
	FieldKindEmail    FieldKind = "email"
	FieldKindPassword FieldKind = "password"
	FieldKindCheckbox FieldKind = "checkbox"
	FieldKindTextarea FieldKind = "textarea"
)

const (
	ValidationRuleRequired  = "required"
	ValidationRuleMinLength = "minLength"
	ValidationRuleMaxLength = "maxLength"
	ValidationRulePattern   = "pattern"
	ValidationRuleEmail     = "email"
	ValidationRuleFullName  = "fullName"
	ValidationRulePassword  = "password"
	ValidationRuleChecked   = "checked"
	ValidationRuleMatches   = "matches"
	ValidationRuleCustom    = "custom"
)

// ValidationRule is one declarative constraint on a field. Length limits keep
// their threshold in Params["value"], pattern rules keep the expression in
// Params["pattern"], matches rules name the sibling in Params["field"] and
// custom rules name a registered validator in Params["name"]. Any rule may
// carry Params["message"] where the preset supports a custom message.
type ValidationRule struct {
	Kind   string            `json:"kind" yaml:"kind"`
	Params map[string]string `json:"params,omitempty" yaml:"params,omitempty"`
}

// Field is one input of a form definition.
type Field struct {
	Name        string            `json:"name" yaml:"name"`
	Kind        FieldKind         `json:"kind,omitempty" yaml:"kind,omitempty"`
	Label       string            `json:"label,omitempty" yaml:"label,omitempty"`
	Placeholder string            `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Description string            `json:"description,omitempty" yaml:"description,omitempty"`
	Required    bool              `json:"required,omitempty" yaml:"required,omitempty"`
	Default     string            `json:"default,omitempty" yaml:"default,omitempty"`
	Sanitize    bool              `json:"sanitize,omitempty" yaml:"sanitize,omitempty"`
	Validations []ValidationRule  `json:"validations,omitempty" yaml:"validations,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Submit holds the gating options and texts of the form's submit control.
type Submit struct {
	DefaultText             string `json:"defaultText,omitempty" yaml:"defaultText,omitempty"`
	LoadingText             string `json:"loadingText,omitempty" yaml:"loadingText,omitempty"`
	DisabledText            string `json:"disabledText,omitempty" yaml:"disabledText,omitempty"`
	RequireCompletion       bool   `json:"requireCompletion,omitempty" yaml:"requireCompletion,omitempty"`
	RequireTouched          bool   `json:"requireTouched,omitempty" yaml:"requireTouched,omitempty"`
	MinCompletionPercentage int    `json:"minCompletionPercentage,omitempty" yaml:"minCompletionPercentage,omitempty"`
}

// FormModel is a serialisable form definition.
type FormModel struct {
	ID          string            `json:"id" yaml:"id"`
	Title       string            `json:"title,omitempty" yaml:"title,omitempty"`
	Description string            `json:"description,omitempty" yaml:"description,omitempty"`
	Fields      []Field           `json:"fields" yaml:"fields"`
	Submit      Submit            `json:"submit,omitempty" yaml:"submit,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Field returns the named field definition.
func (m FormModel) Field(name string) (Field, bool) {
	for _, field := range m.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// Rule returns the first rule of the given kind.
func (f Field) Rule(kind string) (ValidationRule, bool) {
	for _, rule := range f.Validations {
		if rule.Kind == kind {
			return rule, true
		}
	}
	return ValidationRule{}, false
}

// IsRequired reports whether the field is required either through the flag
// or a required rule.
func (f Field) IsRequired() bool {
	if f.Required {
		return true
	}
	_, ok := f.Rule(ValidationRuleRequired)
	return ok
}
