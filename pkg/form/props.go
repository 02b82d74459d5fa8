package form

// FieldProps bundles what an input control needs to render one field. The
// callbacks are bound to the store's UpdateField and TouchField for that
// field.
type FieldProps struct {
	Name      string
	Value     string
	Error     string
	Touched   bool
	Valid     bool
	Completed bool
	OnChange  func(value string)
	OnBlur    func()
}

// FieldProps returns the render props of the named field.
func (f *Form) FieldProps(name string) (FieldProps, error) {
	entry, err := f.lookup(name)
	if err != nil {
		return FieldProps{}, err
	}
	return FieldProps{
		Name:      entry.state.Name,
		Value:     entry.state.Value,
		Error:     entry.state.Error,
		Touched:   entry.state.Touched,
		Valid:     entry.state.Valid,
		Completed: entry.completed(),
		OnChange:  func(value string) { _ = f.UpdateField(name, value) },
		OnBlur:    func() { _ = f.TouchField(name) },
	}, nil
}
