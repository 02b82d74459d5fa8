package password

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/goliatone/go-formgate/pkg/rules"
)

// MinLength is the shortest password accepted by the default rule set.
const MinLength = 8

// MaxLength caps password fields built with FieldRule.
const MaxLength = 128

// SpecialCharacters lists the punctuation accepted by the special character
// rule.
const SpecialCharacters = `!@#$%^&*()_+-=[]{};':"\|,.<>/?`

const (
	baseWeight         = 80
	lengthBonusPerRune = 2
	maxLengthBonus     = 20

	// MessageRequired is reported by Validator for empty passwords.
	MessageRequired = "Password is required"
)

// Strength is the discrete label derived from a score.
type Strength string

const (
	StrengthWeak   Strength = "Weak"
	StrengthFair   Strength = "Fair"
	StrengthGood   Strength = "Good"
	StrengthStrong Strength = "Strong"
)

// Rule is one weighted password requirement. Message is the field error
// Validator reports when the rule fails.
type Rule struct {
	ID       string
	Label    string
	Message  string
	Required bool
	Test     func(password string) bool
}

var (
	uppercase = regexp.MustCompile(`[A-Z]`)
	lowercase = regexp.MustCompile(`[a-z]`)
	digit     = regexp.MustCompile(`\d`)
)

// DefaultRules returns the five requirements shown by the strength meter.
// Every rule is required; the score formula weighs them equally.
func DefaultRules() []Rule {
	return []Rule{
		{
			ID:       "minLength",
			Label:    fmt.Sprintf("At least %d characters", MinLength),
			Message:  fmt.Sprintf("Password must be at least %d characters", MinLength),
			Required: true,
			Test:     func(p string) bool { return rules.Length(p) >= MinLength },
		},
		{
			ID:       "hasUppercase",
			Label:    "At least one uppercase letter",
			Message:  "Password must contain at least one uppercase letter",
			Required: true,
			Test:     uppercase.MatchString,
		},
		{
			ID:       "hasLowercase",
			Label:    "At least one lowercase letter",
			Message:  "Password must contain at least one lowercase letter",
			Required: true,
			Test:     lowercase.MatchString,
		},
		{
			ID:       "hasNumber",
			Label:    "At least one number",
			Message:  "Password must contain at least one number",
			Required: true,
			Test:     digit.MatchString,
		},
		{
			ID:       "hasSpecialChar",
			Label:    "At least one special character (!@#$%^&*)",
			Message:  "Password must contain at least one special character",
			Required: true,
			Test:     func(p string) bool { return strings.ContainsAny(p, SpecialCharacters) },
		},
	}
}

// RuleResult reports the outcome of a single rule.
type RuleResult struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Required bool   `json:"required"`
	Passed   bool   `json:"passed"`
}

// Result is the strength assessment of one password. Score is unrounded;
// use Percent for display.
type Result struct {
	Score             float64      `json:"score"`
	Label             Strength     `json:"label"`
	Rules             []RuleResult `json:"rules"`
	RequiredPassed    int          `json:"requiredPassed"`
	TotalRequired     int          `json:"totalRequired"`
	AllRequiredPassed bool         `json:"allRequiredPassed"`
}

// Score evaluates password against DefaultRules.
func Score(password string) Result {
	return Evaluate(DefaultRules(), password)
}

// Evaluate scores password against set. Required rules contribute up to 80
// points in proportion to how many pass; every rune beyond MinLength adds 2
// bonus points, capped at 20. An empty password scores 0.
func Evaluate(set []Rule, password string) Result {
	result := Result{Rules: make([]RuleResult, 0, len(set))}
	for _, rule := range set {
		passed := rule.Test != nil && rule.Test(password)
		result.Rules = append(result.Rules, RuleResult{
			ID:       rule.ID,
			Label:    rule.Label,
			Required: rule.Required,
			Passed:   passed,
		})
		if !rule.Required {
			continue
		}
		result.TotalRequired++
		if passed {
			result.RequiredPassed++
		}
	}

	length := rules.Length(password)
	if length > 0 {
		if result.TotalRequired > 0 {
			result.Score = float64(result.RequiredPassed*baseWeight) / float64(result.TotalRequired)
		}
		if length > MinLength {
			result.Score += float64(min((length-MinLength)*lengthBonusPerRune, maxLengthBonus))
		}
	}

	result.Label = LabelFor(result.Score)
	result.AllRequiredPassed = result.RequiredPassed == result.TotalRequired
	return result
}

// LabelFor maps an unrounded score onto a strength label. Boundary values
// belong to the higher bracket.
func LabelFor(score float64) Strength {
	switch {
	case score < 40:
		return StrengthWeak
	case score < 60:
		return StrengthFair
	case score < 80:
		return StrengthGood
	default:
		return StrengthStrong
	}
}

// Percent returns the score rounded for display.
func (r Result) Percent() int {
	return int(math.Round(r.Score))
}

// Summary returns the overall status line shown under the rule list.
func (r Result) Summary() string {
	if r.AllRequiredPassed {
		return "Password meets all requirements"
	}
	return fmt.Sprintf("%d of %d requirements met", r.RequiredPassed, r.TotalRequired)
}

// Validator builds the custom field check for password inputs from the same
// rule set the strength meter displays, so the field error and the meter
// never disagree. Empty values report MessageRequired; otherwise the first
// failing required rule's Message is returned.
func Validator(set []Rule) rules.CustomFunc {
	return func(value string) string {
		if value == "" {
			return MessageRequired
		}
		for _, rule := range set {
			if !rule.Required || rule.Test == nil {
				continue
			}
			if !rule.Test(value) {
				return rule.Message
			}
		}
		return ""
	}
}

// FieldRule returns the rule set for a password input backed by
// DefaultRules.
func FieldRule() rules.ValidationRule {
	return rules.ValidationRule{
		Required:  true,
		MaxLength: MaxLength,
		Custom:    Validator(DefaultRules()),
	}
}
