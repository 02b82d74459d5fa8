package form

import "github.com/goliatone/go-formgate/pkg/submit"

// Summary captures every form-level aggregate at one point in time.
type Summary struct {
	IsFormValid              bool `json:"isFormValid"`
	IsFormTouched            bool `json:"isFormTouched"`
	IsFormCompleted          bool `json:"isFormCompleted"`
	CompletedFieldsCount     int  `json:"completedFieldsCount"`
	TotalRequiredFieldsCount int  `json:"totalRequiredFieldsCount"`
	CompletionPercentage     int  `json:"completionPercentage"`
}

// Summary computes the current aggregates.
func (f *Form) Summary() Summary {
	completed := f.CompletedFieldsCount()
	total := f.TotalRequiredFieldsCount()
	return Summary{
		IsFormValid:              f.IsFormValid(),
		IsFormTouched:            f.IsFormTouched(),
		IsFormCompleted:          completed == total,
		CompletedFieldsCount:     completed,
		TotalRequiredFieldsCount: total,
		CompletionPercentage:     percentage(completed, total),
	}
}

// SubmitConfig copies the aggregates into base, leaving the caller's gating
// options and texts untouched.
func (s Summary) SubmitConfig(base submit.Config) submit.Config {
	base.IsFormValid = s.IsFormValid
	base.IsFormTouched = s.IsFormTouched
	base.IsFormCompleted = s.IsFormCompleted
	base.CurrentCompletionPercentage = submit.Percentage(s.CompletionPercentage)
	return base
}

// SubmitState derives the submit control state for the form's current
// aggregates.
func (f *Form) SubmitState(base submit.Config) submit.State {
	return submit.Derive(f.Summary().SubmitConfig(base))
}
