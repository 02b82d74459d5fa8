package model

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	errFormIDMissing = errors.New("model: form id is required")
	errFormNoFields  = errors.New("model: form has no fields")
)

// Validate checks a definition before it is compiled: names are present and
// unique, kinds are known, numeric params parse, patterns compile and
// matches rules reference a sibling field.
func Validate(form FormModel) error {
	if strings.TrimSpace(form.ID) == "" {
		return errFormIDMissing
	}
	if len(form.Fields) == 0 {
		return errFormNoFields
	}
	if p := form.Submit.MinCompletionPercentage; p < 0 || p > 100 {
		return fmt.Errorf("model: form %q: minCompletionPercentage %d out of range", form.ID, p)
	}

	names := make(map[string]struct{}, len(form.Fields))
	for _, field := range form.Fields {
		name := strings.TrimSpace(field.Name)
		if name == "" {
			return fmt.Errorf("model: form %q: field name is required", form.ID)
		}
		if _, exists := names[name]; exists {
			return fmt.Errorf("model: form %q: duplicate field %q", form.ID, name)
		}
		names[name] = struct{}{}
	}

	for _, field := range form.Fields {
		if err := validateField(form, field); err != nil {
			return fmt.Errorf("model: form %q: field %q: %w", form.ID, field.Name, err)
		}
	}
	return nil
}

func validateField(form FormModel, field Field) error {
	switch field.Kind {
	case "", FieldKindText, FieldKindEmail, FieldKindPassword, FieldKindCheckbox, FieldKindTextarea:
	default:
		return fmt.Errorf("unknown kind %q", field.Kind)
	}

	for _, rule := range field.Validations {
		switch rule.Kind {
		case ValidationRuleRequired, ValidationRuleEmail, ValidationRuleFullName,
			ValidationRulePassword, ValidationRuleChecked:
		case ValidationRuleMinLength, ValidationRuleMaxLength:
			if _, err := intParam(rule); err != nil {
				return err
			}
		case ValidationRulePattern:
			if _, err := patternParam(rule); err != nil {
				return err
			}
		case ValidationRuleMatches:
			target := rule.Params["field"]
			if target == "" {
				return errors.New("matches rule requires params.field")
			}
			if target == field.Name {
				return errors.New("matches rule references its own field")
			}
			if _, ok := form.Field(target); !ok {
				return fmt.Errorf("matches rule references unknown field %q", target)
			}
		case ValidationRuleCustom:
			if rule.Params["name"] == "" {
				return errors.New("custom rule requires params.name")
			}
		default:
			return fmt.Errorf("unknown rule kind %q", rule.Kind)
		}
	}
	return nil
}

func intParam(rule ValidationRule) (int, error) {
	raw := rule.Params["value"]
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || value < 0 {
		return 0, fmt.Errorf("%s rule requires a non-negative params.value, got %q", rule.Kind, raw)
	}
	return value, nil
}

func patternParam(rule ValidationRule) (*regexp.Regexp, error) {
	raw := rule.Params["pattern"]
	if raw == "" {
		return nil, errors.New("pattern rule requires params.pattern")
	}
	compiled, err := regexp.Compile(raw)
	if err != nil {
		return nil, fmt.Errorf("pattern rule: %w", err)
	}
	return compiled, nil
}
