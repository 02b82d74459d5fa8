package rules

import (
	"regexp"
	"strings"
)

// Checked is the value a checkbox field holds when it is ticked. Unticked
// checkboxes hold the empty string.
const Checked = "true"

const (
	EmailMinLength    = 5
	EmailMaxLength    = 254
	FullNameMinLength = 2
	FullNameMaxLength = 100

	MessageFullName = "Please enter your first and last name"
	MessageChecked  = "This box must be checked"
	MessageMismatch = "Values do not match"
)

// EmailPattern matches the address shapes accepted by the sign-up flow.
var EmailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Email returns the rule set used for e-mail address fields.
func Email() ValidationRule {
	return ValidationRule{
		Required:  true,
		MinLength: EmailMinLength,
		MaxLength: EmailMaxLength,
		Pattern:   EmailPattern,
	}
}

// FullName returns the rule set for a "first and last name" field. The
// two-part check is a custom rule so generic length failures win over it.
func FullName() ValidationRule {
	return ValidationRule{
		Required:  true,
		MinLength: FullNameMinLength,
		MaxLength: FullNameMaxLength,
		Custom:    FullNameCheck,
	}
}

// FullNameCheck requires at least two whitespace separated name parts.
func FullNameCheck(value string) string {
	if len(strings.Fields(value)) < 2 {
		return MessageFullName
	}
	return ""
}

// Consent returns a required checkbox rule. An empty message falls back to
// MessageChecked.
func Consent(message string) ValidationRule {
	return ValidationRule{
		Required: true,
		Custom:   CheckedCheck(message),
	}
}

// CheckedCheck rejects any value other than Checked.
func CheckedCheck(message string) CustomFunc {
	if strings.TrimSpace(message) == "" {
		message = MessageChecked
	}
	return func(value string) string {
		if value != Checked {
			return message
		}
		return ""
	}
}

// Confirmation returns a required rule whose value must equal the value
// reported by other, typically a sibling field in the same form.
func Confirmation(other func() string, message string) ValidationRule {
	return ValidationRule{
		Required: true,
		Custom:   MatchesCheck(other, message),
	}
}

// MatchesCheck rejects values that differ from other(). A nil other accepts
// every value.
func MatchesCheck(other func() string, message string) CustomFunc {
	if strings.TrimSpace(message) == "" {
		message = MessageMismatch
	}
	return func(value string) string {
		if other == nil {
			return ""
		}
		if value != other() {
			return message
		}
		return ""
	}
}
