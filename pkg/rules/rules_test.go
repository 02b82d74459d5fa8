package rules_test

import (
	"regexp"
	"testing"

	"github.com/goliatone/go-formgate/pkg/rules"
)

func TestValidate_Order(t *testing.T) {
	digits := regexp.MustCompile(`^\d+$`)
	custom := func(string) string { return "custom failure" }

	cases := []struct {
		name  string
		rule  rules.ValidationRule
		value string
		want  string
	}{
		{name: "no constraints", rule: rules.ValidationRule{}, value: "", want: ""},
		{name: "required blank", rule: rules.ValidationRule{Required: true}, value: "   ", want: rules.MessageRequired},
		{name: "required masks min length", rule: rules.ValidationRule{Required: true, MinLength: 3}, value: "", want: rules.MessageRequired},
		{name: "min length before pattern", rule: rules.ValidationRule{MinLength: 5, Pattern: digits}, value: "ab", want: "Must be at least 5 characters"},
		{name: "max length", rule: rules.ValidationRule{MaxLength: 3}, value: "abcd", want: "Must be no more than 3 characters"},
		{name: "max length before pattern", rule: rules.ValidationRule{MaxLength: 2, Pattern: digits}, value: "abc", want: "Must be no more than 2 characters"},
		{name: "pattern", rule: rules.ValidationRule{Pattern: digits}, value: "12a", want: rules.MessageInvalidFormat},
		{name: "pattern before custom", rule: rules.ValidationRule{Pattern: digits, Custom: custom}, value: "x", want: rules.MessageInvalidFormat},
		{name: "custom runs last", rule: rules.ValidationRule{Required: true, Pattern: digits, Custom: custom}, value: "123", want: "custom failure"},
		{name: "all pass", rule: rules.ValidationRule{Required: true, MinLength: 2, MaxLength: 4, Pattern: digits}, value: "123", want: ""},
		{name: "optional empty skips required", rule: rules.ValidationRule{MaxLength: 2}, value: "", want: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := rules.Validate(tc.rule, tc.value); got != tc.want {
				t.Fatalf("Validate(%q) = %q, want %q", tc.value, got, tc.want)
			}
		})
	}
}

func TestValidate_Idempotent(t *testing.T) {
	rule := rules.Email()
	for _, value := range []string{"", "bad", "test@example.com", "a@b.c"} {
		first := rule.Validate(value)
		second := rule.Validate(value)
		if first != second {
			t.Fatalf("expected identical results for %q, got %q then %q", value, first, second)
		}
	}
}

func TestLength_CountsRunes(t *testing.T) {
	rule := rules.ValidationRule{MaxLength: 4}
	if msg := rule.Validate("José"); msg != "" {
		t.Fatalf("expected four-rune value to pass, got %q", msg)
	}
}

func TestEmailPreset(t *testing.T) {
	rule := rules.Email()
	if msg := rule.Validate("test@example.com"); msg != "" {
		t.Fatalf("expected valid address, got %q", msg)
	}
	if msg := rule.Validate("test@example"); msg != rules.MessageInvalidFormat {
		t.Fatalf("expected invalid format, got %q", msg)
	}
	if msg := rule.Validate("a@b"); msg != rules.TooShort(rules.EmailMinLength) {
		t.Fatalf("expected min length failure, got %q", msg)
	}
}

func TestFullNamePreset(t *testing.T) {
	rule := rules.FullName()
	if msg := rule.Validate("Jane"); msg != rules.MessageFullName {
		t.Fatalf("expected full name failure, got %q", msg)
	}
	if msg := rule.Validate("J"); msg != rules.TooShort(rules.FullNameMinLength) {
		t.Fatalf("expected generic failure to win over custom check, got %q", msg)
	}
	if msg := rule.Validate("Jane Doe"); msg != "" {
		t.Fatalf("expected valid name, got %q", msg)
	}
}

func TestConsentPreset(t *testing.T) {
	rule := rules.Consent("You must agree to the terms and conditions")
	if msg := rule.Validate(""); msg != rules.MessageRequired {
		t.Fatalf("expected required failure, got %q", msg)
	}
	if msg := rule.Validate("false"); msg != "You must agree to the terms and conditions" {
		t.Fatalf("expected consent message, got %q", msg)
	}
	if msg := rule.Validate(rules.Checked); msg != "" {
		t.Fatalf("expected ticked box to pass, got %q", msg)
	}
	if msg := rules.Consent("").Validate("no"); msg != rules.MessageChecked {
		t.Fatalf("expected default consent message, got %q", msg)
	}
}

func TestConfirmationPreset(t *testing.T) {
	original := "secret"
	rule := rules.Confirmation(func() string { return original }, "Passwords do not match")

	if msg := rule.Validate("other"); msg != "Passwords do not match" {
		t.Fatalf("expected mismatch, got %q", msg)
	}
	if msg := rule.Validate("secret"); msg != "" {
		t.Fatalf("expected match, got %q", msg)
	}

	original = "changed"
	if msg := rule.Validate("secret"); msg != "Passwords do not match" {
		t.Fatalf("expected lookup to observe the latest value, got %q", msg)
	}
}

func TestChain(t *testing.T) {
	if rules.Chain() != nil || rules.Chain(nil, nil) != nil {
		t.Fatalf("expected empty chain to be nil")
	}

	first := func(v string) string {
		if v == "a" {
			return "first"
		}
		return ""
	}
	second := func(string) string { return "second" }

	chained := rules.Chain(first, nil, second)
	if got := chained("a"); got != "first" {
		t.Fatalf("expected first message, got %q", got)
	}
	if got := chained("b"); got != "second" {
		t.Fatalf("expected second message, got %q", got)
	}
}
