package form

import (
	"fmt"
	"math"
	"strings"

	"github.com/goliatone/go-formgate/pkg/rules"
)

// FieldConfig describes one named field. The set of fields is fixed once the
// form is built.
type FieldConfig struct {
	Name         string
	Rules        rules.ValidationRule
	InitialValue string

	// Sanitize strips markup from values before they are validated and stored.
	Sanitize bool
}

// Config lists the fields of a form in iteration order.
type Config struct {
	Fields []FieldConfig
}

// FieldState is the mutable record kept for each field. Valid is true exactly
// when Error is empty.
type FieldState struct {
	Name    string `json:"name"`
	Value   string `json:"value"`
	Error   string `json:"error,omitempty"`
	Touched bool   `json:"touched"`
	Valid   bool   `json:"valid"`
}

type field struct {
	config FieldConfig
	state  FieldState
}

// Form is the field/form state store.
type Form struct {
	fields []*field
	index  map[string]*field
}

// New builds a form from cfg. Field names must be non-empty and unique.
func New(cfg Config) (*Form, error) {
	f := &Form{
		fields: make([]*field, 0, len(cfg.Fields)),
		index:  make(map[string]*field, len(cfg.Fields)),
	}
	for i, fc := range cfg.Fields {
		name := strings.TrimSpace(fc.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: field %d has no name", ErrInvalidConfig, i)
		}
		if _, exists := f.index[name]; exists {
			return nil, fmt.Errorf("%w: duplicate field %q", ErrInvalidConfig, name)
		}
		fc.Name = name
		entry := &field{config: fc}
		entry.reset()
		f.fields = append(f.fields, entry)
		f.index[name] = entry
	}
	return f, nil
}

// MustNew is like New but panics on error.
func MustNew(cfg Config) *Form {
	f, err := New(cfg)
	if err != nil {
		panic(err)
	}
	return f
}

// reset restores the initial value. The field starts valid unless it is
// required and has no initial value; no rules run until the first update.
func (fl *field) reset() {
	value := fl.config.InitialValue
	if fl.config.Sanitize {
		value = SanitizeValue(value)
	}
	fl.state = FieldState{
		Name:  fl.config.Name,
		Value: value,
		Valid: !fl.config.Rules.Required || value != "",
	}
}

func (fl *field) validate(value string) {
	msg := fl.config.Rules.Validate(value)
	fl.state.Value = value
	fl.state.Error = msg
	fl.state.Valid = msg == ""
}

func (fl *field) completed() bool {
	if !fl.config.Rules.Required {
		return true
	}
	trimmed := strings.TrimSpace(fl.state.Value)
	if trimmed == "" || !fl.state.Valid {
		return false
	}
	minimum := fl.config.Rules.MinLength
	return minimum <= 0 || rules.Length(trimmed) >= minimum
}

func (f *Form) lookup(name string) (*field, error) {
	entry, ok := f.index[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownField, name)
	}
	return entry, nil
}

// UpdateField validates value against the field's rules and stores the
// value, error and validity. The touched flag is left unchanged.
func (f *Form) UpdateField(name, value string) error {
	entry, err := f.lookup(name)
	if err != nil {
		return err
	}
	if entry.config.Sanitize {
		value = SanitizeValue(value)
	}
	entry.validate(value)
	return nil
}

// TouchField marks the field as touched without validating it.
func (f *Form) TouchField(name string) error {
	entry, err := f.lookup(name)
	if err != nil {
		return err
	}
	entry.state.Touched = true
	return nil
}

// ValidateField re-runs the field's rules against its stored value.
func (f *Form) ValidateField(name string) error {
	entry, err := f.lookup(name)
	if err != nil {
		return err
	}
	entry.validate(entry.state.Value)
	return nil
}

// ValidateForm validates and touches every field in order and reports the
// resulting form validity.
func (f *Form) ValidateForm() bool {
	for _, entry := range f.fields {
		entry.validate(entry.state.Value)
		entry.state.Touched = true
	}
	return f.IsFormValid()
}

// ResetForm restores every field to its initial value and clears errors and
// touched flags.
func (f *Form) ResetForm() {
	for _, entry := range f.fields {
		entry.reset()
	}
}

// Field returns a copy of the named field's state.
func (f *Form) Field(name string) (FieldState, bool) {
	entry, ok := f.index[name]
	if !ok {
		return FieldState{}, false
	}
	return entry.state, true
}

// Value returns the stored value of the named field.
func (f *Form) Value(name string) (string, bool) {
	entry, ok := f.index[name]
	if !ok {
		return "", false
	}
	return entry.state.Value, true
}

// Has reports whether name is a configured field.
func (f *Form) Has(name string) bool {
	_, ok := f.index[name]
	return ok
}

// Names returns the configured field names in order.
func (f *Form) Names() []string {
	names := make([]string, len(f.fields))
	for i, entry := range f.fields {
		names[i] = entry.config.Name
	}
	return names
}

// Fields returns copies of every field state in order.
func (f *Form) Fields() []FieldState {
	states := make([]FieldState, len(f.fields))
	for i, entry := range f.fields {
		states[i] = entry.state
	}
	return states
}

// Values returns the stored values keyed by field name.
func (f *Form) Values() map[string]string {
	values := make(map[string]string, len(f.fields))
	for _, entry := range f.fields {
		values[entry.config.Name] = entry.state.Value
	}
	return values
}

// Rules returns the rule set configured for name.
func (f *Form) Rules(name string) (rules.ValidationRule, bool) {
	entry, ok := f.index[name]
	if !ok {
		return rules.ValidationRule{}, false
	}
	return entry.config.Rules, true
}

// IsFieldCompleted reports whether a required field holds a valid value that
// meets its minimum length. Optional fields always count as completed and
// unknown names never do.
func (f *Form) IsFieldCompleted(name string) bool {
	entry, ok := f.index[name]
	if !ok {
		return false
	}
	return entry.completed()
}

// IsFormValid reports whether every field is valid.
func (f *Form) IsFormValid() bool {
	for _, entry := range f.fields {
		if !entry.state.Valid {
			return false
		}
	}
	return true
}

// IsFormTouched reports whether any field has been touched.
func (f *Form) IsFormTouched() bool {
	for _, entry := range f.fields {
		if entry.state.Touched {
			return true
		}
	}
	return false
}

// TotalRequiredFieldsCount counts fields whose rules mark them required.
func (f *Form) TotalRequiredFieldsCount() int {
	total := 0
	for _, entry := range f.fields {
		if entry.config.Rules.Required {
			total++
		}
	}
	return total
}

// CompletedFieldsCount counts required fields that are completed.
func (f *Form) CompletedFieldsCount() int {
	count := 0
	for _, entry := range f.fields {
		if entry.config.Rules.Required && entry.completed() {
			count++
		}
	}
	return count
}

// CompletionPercentage is the rounded share of completed required fields,
// or 0 when the form has no required fields.
func (f *Form) CompletionPercentage() int {
	return percentage(f.CompletedFieldsCount(), f.TotalRequiredFieldsCount())
}

// IsFormCompleted reports whether every required field is completed. A form
// without required fields is complete.
func (f *Form) IsFormCompleted() bool {
	return f.CompletedFieldsCount() == f.TotalRequiredFieldsCount()
}

func percentage(completed, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(completed) / float64(total)))
}
