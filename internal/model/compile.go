package model

import (
	"fmt"

	"github.com/goliatone/go-formgate/pkg/form"
	"github.com/goliatone/go-formgate/pkg/password"
	"github.com/goliatone/go-formgate/pkg/rules"
	"github.com/goliatone/go-formgate/pkg/submit"
)

// Compiler turns form definitions into live form stores.
type Compiler struct {
	opts Options
}

// NewCompiler creates a Compiler with the supplied options.
func NewCompiler(options Options) *Compiler {
	return &Compiler{opts: resolveOptions(options)}
}

// Compile validates def and builds the form store. Matches rules read the
// sibling's current value from the returned store.
func (c *Compiler) Compile(def FormModel) (*form.Form, error) {
	if err := Validate(def); err != nil {
		return nil, err
	}

	var built *form.Form
	sibling := func(name string) func() string {
		return func() string {
			if built == nil {
				return ""
			}
			value, _ := built.Value(name)
			return value
		}
	}

	cfg := form.Config{Fields: make([]form.FieldConfig, 0, len(def.Fields))}
	for _, field := range def.Fields {
		rule, err := c.rule(field, sibling)
		if err != nil {
			return nil, fmt.Errorf("model: form %q: field %q: %w", def.ID, field.Name, err)
		}
		cfg.Fields = append(cfg.Fields, form.FieldConfig{
			Name:         field.Name,
			Rules:        rule,
			InitialValue: field.Default,
			Sanitize:     field.Sanitize,
		})
	}

	f, err := form.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("model: form %q: %w", def.ID, err)
	}
	built = f
	return built, nil
}

// rule merges the field kind's preset with the declared validations. Presets
// contribute length limits, a pattern and a custom check; explicit rules
// override the limits and pattern. Custom checks run in declaration order.
func (c *Compiler) rule(field Field, sibling func(string) func() string) (rules.ValidationRule, error) {
	result := rules.ValidationRule{Required: field.IsRequired()}
	var checks []rules.CustomFunc

	apply := func(preset rules.ValidationRule) {
		if !result.Required {
			checks = append(checks, skipEmpty(preset))
			return
		}
		if preset.MinLength > 0 {
			result.MinLength = preset.MinLength
		}
		if preset.MaxLength > 0 {
			result.MaxLength = preset.MaxLength
		}
		if preset.Pattern != nil {
			result.Pattern = preset.Pattern
		}
		checks = append(checks, preset.Custom)
	}

	if !overridesKindPreset(field) {
		switch field.Kind {
		case FieldKindEmail:
			apply(rules.Email())
		case FieldKindPassword:
			apply(password.FieldRule())
		case FieldKindCheckbox:
			if result.Required {
				apply(rules.Consent(""))
			}
		}
	}

	for _, rule := range field.Validations {
		message := rule.Params["message"]
		switch rule.Kind {
		case ValidationRuleMinLength:
			value, err := intParam(rule)
			if err != nil {
				return rules.ValidationRule{}, err
			}
			result.MinLength = value
		case ValidationRuleMaxLength:
			value, err := intParam(rule)
			if err != nil {
				return rules.ValidationRule{}, err
			}
			result.MaxLength = value
		case ValidationRulePattern:
			compiled, err := patternParam(rule)
			if err != nil {
				return rules.ValidationRule{}, err
			}
			result.Pattern = compiled
		case ValidationRuleEmail:
			apply(rules.Email())
		case ValidationRuleFullName:
			apply(rules.FullName())
		case ValidationRulePassword:
			apply(password.FieldRule())
		case ValidationRuleChecked:
			result.Required = true
			apply(rules.Consent(message))
		case ValidationRuleMatches:
			checks = append(checks, rules.MatchesCheck(sibling(rule.Params["field"]), message))
		case ValidationRuleCustom:
			name := rule.Params["name"]
			check, ok := c.opts.Validators(name)
			if !ok {
				return rules.ValidationRule{}, fmt.Errorf("custom validator %q is not registered", name)
			}
			checks = append(checks, check)
		}
	}

	result.Custom = rules.Chain(checks...)
	return result, nil
}

// skipEmpty turns a preset into a single check that accepts the empty value,
// so presets never make an optional field invalid while it is left blank.
func skipEmpty(preset rules.ValidationRule) rules.CustomFunc {
	preset.Required = false
	return func(value string) string {
		if value == "" {
			return ""
		}
		return preset.Validate(value)
	}
}

// overridesKindPreset reports whether the field declares its own preset or is
// a confirmation field, in which case the kind's implied preset is skipped.
func overridesKindPreset(field Field) bool {
	for _, rule := range field.Validations {
		switch rule.Kind {
		case ValidationRuleEmail, ValidationRuleFullName, ValidationRulePassword,
			ValidationRuleChecked, ValidationRuleMatches:
			return true
		}
	}
	return false
}

// SubmitConfig returns the gating options declared by def. Aggregates are
// filled in later from the form summary.
func SubmitConfig(def FormModel) submit.Config {
	return submit.Config{
		DefaultText:             def.Submit.DefaultText,
		LoadingText:             def.Submit.LoadingText,
		DisabledText:            def.Submit.DisabledText,
		RequireCompletion:       def.Submit.RequireCompletion,
		RequireTouched:          def.Submit.RequireTouched,
		MinCompletionPercentage: def.Submit.MinCompletionPercentage,
	}
}
