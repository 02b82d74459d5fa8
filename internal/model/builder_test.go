package model

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formgate/internal/openapi/parser"
	"github.com/goliatone/go-formgate/internal/testsupport"
	pkgopenapi "github.com/goliatone/go-formgate/pkg/openapi"
)

func fixtureOperations(t *testing.T) map[string]pkgopenapi.Operation {
	t.Helper()
	doc := testsupport.LoadDocument(t, testsupport.SignupDocument)
	ops, err := parser.New(pkgopenapi.ParserOptions{}).Operations(context.Background(), doc)
	if err != nil {
		t.Fatalf("operations: %v", err)
	}
	return ops
}

func fieldNames(form FormModel) []string {
	names := make([]string, len(form.Fields))
	for i, field := range form.Fields {
		names[i] = field.Name
	}
	return names
}

func TestBuilder_CreateAccount(t *testing.T) {
	ops := fixtureOperations(t)
	form, err := New(Options{}).Build(ops["createAccount"])
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	wantNames := []string{"fullName", "email", "password", "confirmPassword", "agreeToTerms", "age", "bio", "nickname"}
	if diff := cmp.Diff(wantNames, fieldNames(form)); diff != "" {
		t.Fatalf("field order mismatch (-want +got):\n%s", diff)
	}

	wantSubmit := Submit{DefaultText: "Create Account", LoadingText: "Creating Account..."}
	if diff := cmp.Diff(wantSubmit, form.Submit); diff != "" {
		t.Fatalf("submit mismatch (-want +got):\n%s", diff)
	}
	if form.Metadata["method"] != "POST" || form.Metadata["endpoint"] != "/accounts" {
		t.Fatalf("unexpected form metadata %v", form.Metadata)
	}

	fullName, _ := form.Field("fullName")
	wantFullName := Field{
		Name:        "fullName",
		Kind:        FieldKindText,
		Label:       "Full name",
		Placeholder: "Jane Doe",
		Required:    true,
		Validations: []ValidationRule{
			{Kind: ValidationRuleMinLength, Params: map[string]string{"value": "2"}},
			{Kind: ValidationRuleMaxLength, Params: map[string]string{"value": "100"}},
			{Kind: ValidationRuleFullName},
		},
		Metadata: map[string]string{
			"order":       "1",
			"placeholder": "Jane Doe",
			"validator":   "fullName",
		},
	}
	if diff := cmp.Diff(wantFullName, fullName); diff != "" {
		t.Fatalf("fullName mismatch (-want +got):\n%s", diff)
	}

	confirm, _ := form.Field("confirmPassword")
	if confirm.Kind != FieldKindPassword || confirm.Label != "Confirm password" {
		t.Fatalf("unexpected confirmPassword %+v", confirm)
	}
	matches, ok := confirm.Rule(ValidationRuleMatches)
	if !ok || matches.Params["field"] != "password" || matches.Params["message"] != "Passwords do not match" {
		t.Fatalf("expected matches rule, got %+v", confirm.Validations)
	}

	terms, _ := form.Field("agreeToTerms")
	checked, ok := terms.Rule(ValidationRuleChecked)
	if terms.Kind != FieldKindCheckbox || !ok || checked.Params["message"] != "You must agree to the terms and conditions" {
		t.Fatalf("unexpected agreeToTerms %+v", terms)
	}

	age, _ := form.Field("age")
	if _, ok := age.Rule(ValidationRulePattern); !ok || age.Required || age.Label != "Age" {
		t.Fatalf("expected optional integer field with numeric pattern, got %+v", age)
	}

	nickname, _ := form.Field("nickname")
	if nickname.Default != "guest" {
		t.Fatalf("expected default value, got %q", nickname.Default)
	}

	bio, _ := form.Field("bio")
	if bio.Kind != FieldKindTextarea || !bio.Sanitize {
		t.Fatalf("unexpected bio %+v", bio)
	}
}

func TestBuilder_CreateAccountCompiles(t *testing.T) {
	ops := fixtureOperations(t)
	def, err := New(Options{}).Build(ops["createAccount"])
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	f, err := NewCompiler(Options{}).Compile(def)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	updates := []struct{ name, value string }{
		{"fullName", "Jane Doe"},
		{"email", "jane@example.com"},
		{"password", "StrongPassword123!"},
		{"confirmPassword", "StrongPassword123!"},
		{"agreeToTerms", "true"},
		{"age", "abc"},
	}
	for _, u := range updates {
		if err := f.UpdateField(u.name, u.value); err != nil {
			t.Fatalf("update %s: %v", u.name, err)
		}
	}
	age, _ := f.Field("age")
	if age.Error != "Invalid format" {
		t.Fatalf("expected numeric format error, got %q", age.Error)
	}
	_ = f.UpdateField("age", "42")
	if !f.IsFormValid() || !f.IsFormCompleted() {
		t.Fatalf("expected valid complete form: %+v", f.Fields())
	}
}

func TestBuilder_FormEncodedBody(t *testing.T) {
	ops := fixtureOperations(t)
	form, err := New(Options{}).Build(ops["signIn"])
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if diff := cmp.Diff([]string{"email", "password"}, fieldNames(form)); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
	if form.Submit.DefaultText != "Sign In" {
		t.Fatalf("expected summary as submit text, got %q", form.Submit.DefaultText)
	}
}

func TestBuilder_Errors(t *testing.T) {
	ops := fixtureOperations(t)
	if _, err := New(Options{}).Build(ops["listSessions"]); err == nil {
		t.Fatalf("expected error for operation without body")
	}
	if _, err := New(Options{}).Build(pkgopenapi.Operation{}); err != errFormIDMissing {
		t.Fatalf("expected missing id error, got %v", err)
	}

	onlyArrays := pkgopenapi.MustNewOperation("tags", "post", "/tags", pkgopenapi.Schema{
		Type: "object",
		Properties: map[string]pkgopenapi.Schema{
			"tags": {Type: "array", Items: &pkgopenapi.Schema{Type: "string"}},
		},
	})
	if _, err := New(Options{}).Build(onlyArrays); err == nil {
		t.Fatalf("expected error when no field is supported")
	}
}

func TestBuilder_NestedAndSkipped(t *testing.T) {
	op := pkgopenapi.MustNewOperation("updateAddress", "put", "/address", pkgopenapi.Schema{
		Type:     "object",
		Required: []string{"address"},
		Properties: map[string]pkgopenapi.Schema{
			"address": {
				Type:     "object",
				Required: []string{"street"},
				Properties: map[string]pkgopenapi.Schema{
					"street": {Type: "string"},
					"zip":    {Type: "string"},
				},
			},
			"contact": {
				Type:     "object",
				Required: []string{"phone"},
				Properties: map[string]pkgopenapi.Schema{
					"phone": {Type: "string"},
				},
			},
			"tags": {Type: "array"},
		},
	})

	form, err := New(Options{Labeler: func(name string) string { return "label:" + name }}).Build(op)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if diff := cmp.Diff([]string{"address.street", "address.zip", "contact.phone"}, fieldNames(form)); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
	street, _ := form.Field("address.street")
	if !street.Required || street.Label != "label:address.street" {
		t.Fatalf("unexpected street %+v", street)
	}
	phone, _ := form.Field("contact.phone")
	if phone.Required {
		t.Fatalf("expected fields of an optional object to be optional")
	}
	if form.Metadata["skipped"] != "tags" {
		t.Fatalf("expected skipped metadata, got %v", form.Metadata)
	}
	if form.Metadata["method"] != "PUT" {
		t.Fatalf("expected upper-case method, got %q", form.Metadata["method"])
	}
}

func TestDefaultLabeler(t *testing.T) {
	cases := map[string]string{
		"":                "",
		"confirmPassword": "Confirm Password",
		"terms_accepted":  "Terms Accepted",
		"address.street":  "Address Street",
		"line2":           "Line 2",
		"full-name":       "Full Name",
	}
	for input, want := range cases {
		if got := DefaultLabeler(input); got != want {
			t.Fatalf("DefaultLabeler(%q): want %q, got %q", input, want, got)
		}
	}
}

func TestParseExtensions(t *testing.T) {
	got := ParseExtensions(map[string]any{
		"x-formgate":       map[string]any{"label": "Email", "order": float64(2), "sanitize": true},
		"x-formgate-kind":  "email",
		"x-other":          "ignored",
		"x-formgate-empty": "",
	})
	want := map[string]string{
		"label":    "Email",
		"order":    "2",
		"sanitize": "true",
		"kind":     "email",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("extensions mismatch (-want +got):\n%s", diff)
	}
	if ParseExtensions(map[string]any{"x-other": 1}) != nil {
		t.Fatalf("expected nil for unrelated extensions")
	}
}
