package model_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formgate/pkg/model"
	"github.com/goliatone/go-formgate/pkg/rules"
	"github.com/goliatone/go-formgate/pkg/submit"
)

func TestPresetNames(t *testing.T) {
	want := []string{"login", "profile", "signup"}
	if diff := cmp.Diff(want, model.PresetNames()); diff != "" {
		t.Fatalf("preset names mismatch (-want +got):\n%s", diff)
	}
	if _, err := model.Preset("missing"); err == nil {
		t.Fatalf("expected unknown preset to fail")
	}
}

func TestPresets_Compile(t *testing.T) {
	defs, err := model.Presets()
	if err != nil {
		t.Fatalf("presets: %v", err)
	}
	for name, def := range defs {
		if _, err := model.Compile(def); err != nil {
			t.Fatalf("compile %s: %v", name, err)
		}
	}
}

func TestSignupPreset_Flow(t *testing.T) {
	def, err := model.Preset("signup")
	if err != nil {
		t.Fatalf("preset: %v", err)
	}
	f := model.MustCompile(def)
	base := model.SubmitConfig(def)

	if got := f.TotalRequiredFieldsCount(); got != 6 {
		t.Fatalf("expected 6 required fields, got %d", got)
	}
	state := f.SubmitState(base)
	if state.CanSubmit || state.Reason != submit.ReasonInvalid {
		t.Fatalf("expected empty sign-up to be blocked as invalid, got %#v", state)
	}

	values := map[string]string{
		"fullName":        "Jane Doe",
		"email":           "jane@example.com",
		"password":        "StrongPassword123!",
		"confirmPassword": "StrongPassword123!",
		"ageVerification": rules.Checked,
		"agreeToTerms":    rules.Checked,
	}
	for _, name := range f.Names() {
		if value, ok := values[name]; ok {
			if err := f.UpdateField(name, value); err != nil {
				t.Fatalf("update %s: %v", name, err)
			}
		}
	}

	state = f.SubmitState(base)
	if !state.CanSubmit {
		t.Fatalf("expected complete sign-up to be submittable: %#v / %#v", state, f.Fields())
	}
	if state.ButtonText != "Create Account" {
		t.Fatalf("unexpected button text %q", state.ButtonText)
	}

	_ = f.UpdateField("confirmPassword", "StrongPassword123")
	confirm, _ := f.Field("confirmPassword")
	if confirm.Error != "Passwords do not match" {
		t.Fatalf("expected mismatch error, got %q", confirm.Error)
	}

	_ = f.UpdateField("agreeToTerms", "")
	terms, _ := f.Field("agreeToTerms")
	if terms.Error != rules.MessageRequired {
		t.Fatalf("expected required error on unticked terms, got %q", terms.Error)
	}
	_ = f.UpdateField("agreeToTerms", "false")
	terms, _ = f.Field("agreeToTerms")
	if terms.Error != "You must agree to the terms and conditions" {
		t.Fatalf("expected consent message, got %q", terms.Error)
	}

	_ = f.UpdateField("password", "weak")
	pw, _ := f.Field("password")
	if pw.Error != "Password must be at least 8 characters" {
		t.Fatalf("expected password rule message, got %q", pw.Error)
	}
}

func TestParse_YAMLAndJSON(t *testing.T) {
	const yamlDoc = `
id: contact
fields:
  - name: email
    kind: email
    required: true
  - name: message
    kind: textarea
    validations:
      - kind: maxLength
        params: {value: "10"}
`
	const jsonDoc = `{"id":"contact","fields":[{"name":"email","kind":"email","required":true},{"name":"message","kind":"textarea","validations":[{"kind":"maxLength","params":{"value":"10"}}]}]}`

	fromYAML, err := model.Parse([]byte(yamlDoc), "contact.yaml")
	if err != nil {
		t.Fatalf("parse yaml: %v", err)
	}
	fromJSON, err := model.Parse([]byte(jsonDoc), "contact.json")
	if err != nil {
		t.Fatalf("parse json: %v", err)
	}
	if diff := cmp.Diff(fromYAML, fromJSON); diff != "" {
		t.Fatalf("yaml and json definitions differ (-yaml +json):\n%s", diff)
	}

	f := model.MustCompile(fromYAML)
	_ = f.UpdateField("message", "this is too long")
	state, _ := f.Field("message")
	if state.Error != "Must be no more than 10 characters" {
		t.Fatalf("unexpected error %q", state.Error)
	}
}

func TestParse_RoundTripsThroughMarshal(t *testing.T) {
	def, err := model.Preset("profile")
	if err != nil {
		t.Fatalf("preset: %v", err)
	}
	for _, format := range []string{"yaml", "json"} {
		data, err := model.Marshal(def, format)
		if err != nil {
			t.Fatalf("marshal %s: %v", format, err)
		}
		parsed, err := model.Parse(data, "roundtrip."+format)
		if err != nil {
			t.Fatalf("parse %s: %v", format, err)
		}
		if diff := cmp.Diff(def, parsed); diff != "" {
			t.Fatalf("%s round trip mismatch (-want +got):\n%s", format, diff)
		}
	}
}

func TestParse_Errors(t *testing.T) {
	cases := map[string]string{
		"empty":           "   ",
		"unknown key":     "id: x\nfields:\n  - name: a\n    colour: red\n",
		"missing id":      "fields:\n  - name: a\n",
		"no fields":       "id: x\n",
		"duplicate":       "id: x\nfields:\n  - name: a\n  - name: a\n",
		"bad kind":        "id: x\nfields:\n  - name: a\n    kind: slider\n",
		"bad rule":        "id: x\nfields:\n  - name: a\n    validations:\n      - kind: between\n",
		"bad length":      "id: x\nfields:\n  - name: a\n    validations:\n      - kind: minLength\n        params: {value: abc}\n",
		"bad pattern":     "id: x\nfields:\n  - name: a\n    validations:\n      - kind: pattern\n        params: {pattern: \"[\"}\n",
		"dangling match":  "id: x\nfields:\n  - name: a\n    validations:\n      - kind: matches\n        params: {field: b}\n",
		"self match":      "id: x\nfields:\n  - name: a\n    validations:\n      - kind: matches\n        params: {field: a}\n",
		"nameless custom": "id: x\nfields:\n  - name: a\n    validations:\n      - kind: custom\n",
		"bad threshold":   "id: x\nfields:\n  - name: a\nsubmit:\n  minCompletionPercentage: 120\n",
	}
	for name, doc := range cases {
		if _, err := model.Parse([]byte(doc), name); err == nil {
			t.Fatalf("%s: expected parse error", name)
		}
	}
}

func TestCompile_CustomValidators(t *testing.T) {
	def := model.FormModel{
		ID: "invite",
		Fields: []model.Field{
			{
				Name:     "code",
				Required: true,
				Validations: []model.ValidationRule{
					{Kind: model.ValidationRuleCustom, Params: map[string]string{"name": "inviteCode"}},
					{Kind: model.ValidationRuleCustom, Params: map[string]string{"name": "noWhitespace"}},
				},
			},
		},
	}

	if _, err := model.Compile(def); err == nil || !strings.Contains(err.Error(), "inviteCode") {
		t.Fatalf("expected unregistered validator error, got %v", err)
	}

	registry := model.DefaultRegistry()
	registry.MustRegister("inviteCode", func(value string) string {
		if !strings.HasPrefix(value, "INV") {
			return "Unknown invite code"
		}
		return ""
	})

	f, err := model.Compile(def, model.WithRegistry(registry))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	cases := map[string]string{
		"ABC":     "Unknown invite code",
		"INV 123": "Must not contain spaces",
		"INV123":  "",
	}
	for value, want := range cases {
		_ = f.UpdateField("code", value)
		state, _ := f.Field("code")
		if state.Error != want {
			t.Fatalf("code %q: expected %q, got %q", value, want, state.Error)
		}
	}
}

func TestCompile_ExplicitRulesOverridePreset(t *testing.T) {
	def := model.FormModel{
		ID: "work",
		Fields: []model.Field{
			{
				Name: "email",
				Kind: model.FieldKindEmail,
				Validations: []model.ValidationRule{
					{Kind: model.ValidationRuleRequired},
					{Kind: model.ValidationRuleMaxLength, Params: map[string]string{"value": "20"}},
				},
			},
		},
	}
	f := model.MustCompile(def)
	r, _ := f.Rules("email")
	if !r.Required || r.MaxLength != 20 || r.MinLength != rules.EmailMinLength || r.Pattern == nil {
		t.Fatalf("unexpected merged rule %+v", r)
	}
}

func TestCompile_InvalidDefinition(t *testing.T) {
	if _, err := model.Compile(model.FormModel{ID: "x"}); err == nil {
		t.Fatalf("expected error for definition without fields")
	}
}

func TestRegistry(t *testing.T) {
	registry := model.NewRegistry()
	if err := registry.Register("", rules.FullNameCheck); err == nil {
		t.Fatalf("expected empty name to fail")
	}
	if err := registry.Register("x", nil); err == nil {
		t.Fatalf("expected nil validator to fail")
	}
	registry.MustRegister("b", rules.FullNameCheck)
	registry.MustRegister("a", rules.FullNameCheck)
	if err := registry.Register("a", rules.FullNameCheck); err == nil {
		t.Fatalf("expected duplicate to fail")
	}
	if diff := cmp.Diff([]string{"a", "b"}, registry.List()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
	if !registry.Has("a") || registry.Has("c") {
		t.Fatalf("unexpected Has results")
	}

	defaults := model.DefaultRegistry()
	check, ok := defaults.Get("notCommonPassword")
	if !ok {
		t.Fatalf("expected built-in validator")
	}
	if msg := check("Password"); msg != "Password is too common" {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestDecorate(t *testing.T) {
	def, _ := model.Preset("login")
	err := model.Decorate(&def,
		model.WithSubmit(model.Submit{DefaultText: "Log In", RequireTouched: true}),
		model.DecoratorFunc(func(m *model.FormModel) error {
			m.Title = "Welcome back"
			return nil
		}),
	)
	if err != nil {
		t.Fatalf("decorate: %v", err)
	}
	if def.Title != "Welcome back" || def.Submit.DefaultText != "Log In" || !def.Submit.RequireTouched {
		t.Fatalf("decorators not applied: %+v", def)
	}

	failing := model.DecoratorFunc(func(*model.FormModel) error { return errors.New("boom") })
	if err := model.Decorate(&def, failing); err == nil {
		t.Fatalf("expected decorator error")
	}
}

func TestCatalog(t *testing.T) {
	catalog, err := model.DefaultCatalog()
	if err != nil {
		t.Fatalf("default catalog: %v", err)
	}
	if diff := cmp.Diff([]string{"login", "profile", "signup"}, catalog.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}

	dir := t.TempDir()
	files := map[string]string{
		"contact.yaml": "id: contact\nfields:\n  - name: email\n    kind: email\n",
		"notes.txt":    "ignored",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if err := catalog.LoadDir(dir); err != nil {
		t.Fatalf("load dir: %v", err)
	}
	if _, ok := catalog.Get("contact"); !ok {
		t.Fatalf("expected contact form to be loaded")
	}

	if err := os.WriteFile(filepath.Join(dir, "broken.json"), []byte(`{"id":""}`), 0o600); err != nil {
		t.Fatalf("write broken: %v", err)
	}
	if err := catalog.LoadDir(dir); err == nil {
		t.Fatalf("expected invalid definition to fail")
	}
	if err := catalog.LoadDir(filepath.Join(dir, "missing")); err == nil {
		t.Fatalf("expected missing dir to fail")
	}
}
