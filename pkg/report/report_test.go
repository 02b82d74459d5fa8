package report_test

import (
	"encoding/json"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formgate/pkg/model"
	"github.com/goliatone/go-formgate/pkg/report"
	"github.com/goliatone/go-formgate/pkg/submit"
)

func signup(t *testing.T, values map[string]string) (model.FormModel, report.Report) {
	t.Helper()
	def, err := model.Preset("signup")
	if err != nil {
		t.Fatalf("preset: %v", err)
	}
	f := model.MustCompile(def)
	for _, name := range f.Names() {
		if value, ok := values[name]; ok {
			if err := f.UpdateField(name, value); err != nil {
				t.Fatalf("update %s: %v", name, err)
			}
			_ = f.TouchField(name)
		}
	}
	return def, report.Build(def, f, model.SubmitConfig(def))
}

func TestBuild(t *testing.T) {
	_, r := signup(t, map[string]string{
		"fullName":        "Jane",
		"password":        "Secret12",
		"confirmPassword": "Secret12",
		"agreeToTerms":    "true",
	})

	if r.FormID != "signup" || len(r.Fields) != 7 {
		t.Fatalf("unexpected report header %+v", r)
	}

	want := report.Field{
		Name:     "fullName",
		Label:    "Full Name",
		Kind:     "text",
		Display:  "Jane",
		Error:    "Please enter your first and last name",
		Required: true,
		Touched:  true,
	}
	if diff := cmp.Diff(want, r.Fields[0]); diff != "" {
		t.Fatalf("fullName row mismatch (-want +got):\n%s", diff)
	}
	if r.Fields[2].Display != "********" {
		t.Fatalf("expected masked password, got %q", r.Fields[2].Display)
	}
	if r.Fields[5].Display != "yes" || r.Fields[4].Display != "no" {
		t.Fatalf("unexpected checkbox display %q / %q", r.Fields[5].Display, r.Fields[4].Display)
	}

	if r.Strength == nil || r.Strength.Field != "password" {
		t.Fatalf("expected strength for the password field, got %+v", r.Strength)
	}
	if r.Strength.Summary != "4 of 5 requirements met" || r.Strength.Percent != 64 {
		t.Fatalf("unexpected strength %+v", r.Strength)
	}
	if r.Submit.Reason != submit.ReasonInvalid {
		t.Fatalf("expected invalid submit state, got %q", r.Submit.Reason)
	}
}

func TestBuild_NoStrengthWithoutPassword(t *testing.T) {
	_, r := signup(t, nil)
	if r.Strength != nil {
		t.Fatalf("expected no strength meter for an empty password")
	}
	payload, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(payload), `"strength"`) {
		t.Fatalf("expected strength to be omitted: %s", payload)
	}
}

func TestRenderer_DefaultTemplate(t *testing.T) {
	_, r := signup(t, map[string]string{
		"fullName": "Jane Doe",
		"password": "Secret12",
	})
	renderer, err := report.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	out, err := renderer.Render(r)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	text := string(out)

	for _, want := range []string{
		"Create Account\n",
		"✓ Full Name",
		"Jane Doe",
		"********",
		"Completion: 1/6 required fields (17%)",
		"Password strength: Good (64%), 4 of 5 requirements met",
		"  ✗ At least one special character (!@#$%^&*)",
		"Submit: [disabled] Create Account (Please fix all form errors)",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected %q in report:\n%s", want, text)
		}
	}
	if strings.Contains(text, "&amp;") {
		t.Fatalf("expected unescaped output:\n%s", text)
	}
}

func TestRenderer_CustomTemplates(t *testing.T) {
	_, r := signup(t, nil)

	inline, err := report.New(report.WithTemplateString("{{ report.FormID }}:{{ report.Submit.ButtonStyle }}"))
	if err != nil {
		t.Fatalf("new inline renderer: %v", err)
	}
	out, err := inline.Render(r)
	if err != nil {
		t.Fatalf("render inline: %v", err)
	}
	if string(out) != "signup:disabled" {
		t.Fatalf("unexpected inline output %q", out)
	}

	files := fstest.MapFS{
		"short.tpl": {Data: []byte("{{ report.Summary.TotalRequiredFieldsCount }} required")},
	}
	fromFS, err := report.New(report.WithFS(files, "short.tpl"))
	if err != nil {
		t.Fatalf("new fs renderer: %v", err)
	}
	out, err = fromFS.Render(r)
	if err != nil {
		t.Fatalf("render fs: %v", err)
	}
	if string(out) != "6 required" {
		t.Fatalf("unexpected fs output %q", out)
	}

	if _, err := report.New(report.WithFS(files, "missing.tpl")); err == nil {
		t.Fatalf("expected missing template error")
	}
	if _, err := report.New(report.WithTemplateString("{% if %}")); err == nil {
		t.Fatalf("expected parse error")
	}
}
