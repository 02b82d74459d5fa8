package report

import (
	"strings"

	"github.com/goliatone/go-formgate/pkg/form"
	"github.com/goliatone/go-formgate/pkg/model"
	"github.com/goliatone/go-formgate/pkg/password"
	"github.com/goliatone/go-formgate/pkg/rules"
	"github.com/goliatone/go-formgate/pkg/submit"
)

// Report is a point-in-time view of a form: every field, the aggregates, the
// strength of the primary password entry and the submit control.
type Report struct {
	FormID   string       `json:"formId"`
	Title    string       `json:"title,omitempty"`
	Fields   []Field      `json:"fields"`
	Summary  form.Summary `json:"summary"`
	Strength *Strength    `json:"strength,omitempty"`
	Submit   submit.State `json:"submit"`
}

// Field is one row of the report. Display masks password values.
type Field struct {
	Name      string `json:"name"`
	Label     string `json:"label"`
	Kind      string `json:"kind"`
	Display   string `json:"display"`
	Error     string `json:"error,omitempty"`
	Required  bool   `json:"required"`
	Touched   bool   `json:"touched"`
	Valid     bool   `json:"valid"`
	Completed bool   `json:"completed"`
}

// Strength is the meter shown for a password entry.
type Strength struct {
	Field   string                `json:"field"`
	Label   password.Strength     `json:"label"`
	Percent int                   `json:"percent"`
	Summary string                `json:"summary"`
	Rules   []password.RuleResult `json:"rules"`
}

// Build assembles a report for def's compiled store f. base carries the
// submit options that are not derived from the form, such as IsLoading.
func Build(def model.FormModel, f *form.Form, base submit.Config) Report {
	out := Report{
		FormID:  def.ID,
		Title:   def.Title,
		Summary: f.Summary(),
		Submit:  f.SubmitState(base),
	}

	for _, field := range def.Fields {
		state, ok := f.Field(field.Name)
		if !ok {
			continue
		}
		kind := field.Kind
		if kind == "" {
			kind = model.FieldKindText
		}
		label := field.Label
		if label == "" {
			label = field.Name
		}
		out.Fields = append(out.Fields, Field{
			Name:      field.Name,
			Label:     label,
			Kind:      string(kind),
			Display:   display(kind, state.Value),
			Error:     state.Error,
			Required:  field.IsRequired(),
			Touched:   state.Touched,
			Valid:     state.Valid,
			Completed: f.IsFieldCompleted(field.Name),
		})

		if out.Strength == nil && kind == model.FieldKindPassword && state.Value != "" {
			if _, confirm := field.Rule(model.ValidationRuleMatches); !confirm {
				result := password.Score(state.Value)
				out.Strength = &Strength{
					Field:   field.Name,
					Label:   result.Label,
					Percent: result.Percent(),
					Summary: result.Summary(),
					Rules:   result.Rules,
				}
			}
		}
	}
	return out
}

func display(kind model.FieldKind, value string) string {
	switch kind {
	case model.FieldKindPassword:
		return strings.Repeat("*", rules.Length(value))
	case model.FieldKindCheckbox:
		if value == rules.Checked {
			return "yes"
		}
		return "no"
	default:
		return value
	}
}
