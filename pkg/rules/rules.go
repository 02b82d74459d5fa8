package rules

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	// MessageRequired is reported when a required field holds only whitespace.
	MessageRequired = "This field is required"
	// MessageInvalidFormat is reported when a value does not match Pattern.
	MessageInvalidFormat = "Invalid format"
)

// CustomFunc runs a domain-specific check against a field value. It returns
// the error message to surface, or an empty string when the value passes.
type CustomFunc func(value string) string

// ValidationRule is the declarative rule set attached to one field. Zero
// values disable a constraint: MinLength/MaxLength of 0, a nil Pattern and a
// nil Custom are all skipped.
type ValidationRule struct {
	Required  bool
	MinLength int
	MaxLength int
	Pattern   *regexp.Regexp
	Custom    CustomFunc
}

// Validate evaluates rule against value and returns the first failing
// constraint's message, or "" when the value is valid. Constraints run in a
// fixed order: required, minLength, maxLength, pattern, custom.
func Validate(rule ValidationRule, value string) string {
	if rule.Required && strings.TrimSpace(value) == "" {
		return MessageRequired
	}
	if rule.MinLength > 0 && Length(value) < rule.MinLength {
		return TooShort(rule.MinLength)
	}
	if rule.MaxLength > 0 && Length(value) > rule.MaxLength {
		return TooLong(rule.MaxLength)
	}
	if rule.Pattern != nil && !rule.Pattern.MatchString(value) {
		return MessageInvalidFormat
	}
	if rule.Custom != nil {
		return rule.Custom(value)
	}
	return ""
}

// Validate is shorthand for Validate(r, value).
func (r ValidationRule) Validate(value string) string {
	return Validate(r, value)
}

// IsRequired reports whether the rule marks its field as required. Required
// fields are the ones counted by completion tracking.
func (r ValidationRule) IsRequired() bool {
	return r.Required
}

// Length counts characters the way users perceive them in an input box
// (runes, not bytes).
func Length(value string) int {
	return utf8.RuneCountInString(value)
}

// TooShort formats the minLength violation message.
func TooShort(min int) string {
	return fmt.Sprintf("Must be at least %d characters", min)
}

// TooLong formats the maxLength violation message.
func TooLong(max int) string {
	return fmt.Sprintf("Must be no more than %d characters", max)
}

// Chain combines custom checks into one. Checks run in order and the first
// non-empty message wins. Nil checks are skipped.
func Chain(checks ...CustomFunc) CustomFunc {
	active := make([]CustomFunc, 0, len(checks))
	for _, check := range checks {
		if check != nil {
			active = append(active, check)
		}
	}
	switch len(active) {
	case 0:
		return nil
	case 1:
		return active[0]
	}
	return func(value string) string {
		for _, check := range active {
			if msg := check(value); msg != "" {
				return msg
			}
		}
		return ""
	}
}
