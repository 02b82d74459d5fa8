package model

import "github.com/goliatone/go-formgate/pkg/rules"

// ValidatorLookup resolves a named custom validator.
type ValidatorLookup func(name string) (rules.CustomFunc, bool)

// Options configures the Builder and the Compiler. The public adapters in
// pkg/model fill it from functional options.
type Options struct {
	Labeler    func(string) string
	Validators ValidatorLookup
}

func defaultOptions() Options {
	return Options{
		Labeler:    DefaultLabeler,
		Validators: func(string) (rules.CustomFunc, bool) { return nil, false },
	}
}

func resolveOptions(options Options) Options {
	opts := defaultOptions()
	if options.Labeler != nil {
		opts.Labeler = options.Labeler
	}
	if options.Validators != nil {
		opts.Validators = options.Validators
	}
	return opts
}
