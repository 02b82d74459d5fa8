package model

// Decorator adjusts a form definition after it has been built, for example to
// override labels or tighten the submit gating of a generated form.
type Decorator interface {
	Decorate(*FormModel) error
}

// DecoratorFunc adapts a function into a Decorator.
type DecoratorFunc func(*FormModel) error

// Decorate calls the underlying function.
func (fn DecoratorFunc) Decorate(form *FormModel) error {
	return fn(form)
}

// Decorate applies decorators in order and stops at the first error.
func Decorate(form *FormModel, decorators ...Decorator) error {
	for _, decorator := range decorators {
		if decorator == nil {
			continue
		}
		if err := decorator.Decorate(form); err != nil {
			return err
		}
	}
	return nil
}

// WithSubmit returns a decorator that replaces the submit section.
func WithSubmit(submit Submit) Decorator {
	return DecoratorFunc(func(form *FormModel) error {
		form.Submit = submit
		return nil
	})
}
