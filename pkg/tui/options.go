package tui

import "github.com/goliatone/go-formgate/pkg/model"

// DefaultMaxAttempts bounds how often an invalid field is asked again.
const DefaultMaxAttempts = 3

// Theme holds the prefixes printed in front of session messages.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
}

// DefaultTheme is used when no theme is supplied.
var DefaultTheme = Theme{
	InfoPrefix:  "·",
	ErrorPrefix: "✗",
}

// Option configures a Session.
type Option func(*Session)

// WithPromptDriver overrides the prompt driver used by the session.
func WithPromptDriver(driver PromptDriver) Option {
	return func(s *Session) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithTheme applies message prefixes.
func WithTheme(theme Theme) Option {
	return func(s *Session) {
		s.theme = theme
	}
}

// WithMaxAttempts sets how many times a field is prompted while it stays
// invalid. Values below one are ignored.
func WithMaxAttempts(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.maxAttempts = n
		}
	}
}

// WithStrengthMeter toggles the strength summary printed after password
// fields. It is on by default.
func WithStrengthMeter(enabled bool) Option {
	return func(s *Session) {
		s.strength = enabled
	}
}

// WithModelOptions forwards options, such as a validator registry, to the
// form compiler.
func WithModelOptions(opts ...model.Option) Option {
	return func(s *Session) {
		s.modelOpts = append(s.modelOpts, opts...)
	}
}
