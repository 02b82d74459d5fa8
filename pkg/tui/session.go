package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-formgate/pkg/form"
	"github.com/goliatone/go-formgate/pkg/model"
	"github.com/goliatone/go-formgate/pkg/password"
	"github.com/goliatone/go-formgate/pkg/rules"
	"github.com/goliatone/go-formgate/pkg/submit"
)

// Session walks a form definition field by field. Every answer is written to
// the form store, the field is touched as the prompt closes, and invalid
// answers are reported and asked again.
type Session struct {
	def         model.FormModel
	form        *form.Form
	driver      PromptDriver
	theme       Theme
	maxAttempts int
	strength    bool
	modelOpts   []model.Option
}

// Result is what a completed session collected.
type Result struct {
	Values  map[string]string `json:"values"`
	Fields  []form.FieldState `json:"fields"`
	Summary form.Summary      `json:"summary"`
	Submit  submit.State      `json:"submit"`
}

// New compiles def and prepares a session. The survey driver is used unless
// WithPromptDriver is supplied.
func New(def model.FormModel, options ...Option) (*Session, error) {
	s := &Session{
		def:         def,
		theme:       DefaultTheme,
		maxAttempts: DefaultMaxAttempts,
		strength:    true,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if s.driver == nil {
		s.driver = NewSurveyDriver(nil)
	}

	compiled, err := model.Compile(def, s.modelOpts...)
	if err != nil {
		return nil, fmt.Errorf("tui: %w", err)
	}
	s.form = compiled
	return s, nil
}

// Form exposes the underlying store.
func (s *Session) Form() *form.Form {
	return s.form
}

// Run prompts every field in order and reports the final submit state. It
// stops early when the driver fails or the user aborts.
func (s *Session) Run(ctx context.Context) (Result, error) {
	if ctx == nil {
		return Result{}, errors.New("tui: context is required")
	}
	if s.def.Title != "" {
		if err := s.driver.Info(ctx, s.def.Title); err != nil {
			return Result{}, err
		}
	}

	for _, field := range s.def.Fields {
		if err := s.fill(ctx, field); err != nil {
			return Result{}, err
		}
	}

	state := s.form.SubmitState(model.SubmitConfig(s.def))
	if err := s.driver.Info(ctx, s.describe(state)); err != nil {
		return Result{}, err
	}

	return Result{
		Values:  s.form.Values(),
		Fields:  s.form.Fields(),
		Summary: s.form.Summary(),
		Submit:  state,
	}, nil
}

func (s *Session) fill(ctx context.Context, field model.Field) error {
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		value, err := s.ask(ctx, field)
		if err != nil {
			return err
		}
		if err := s.form.UpdateField(field.Name, value); err != nil {
			return fmt.Errorf("tui: %w", err)
		}
		if err := s.form.TouchField(field.Name); err != nil {
			return fmt.Errorf("tui: %w", err)
		}

		if s.strength && isPasswordEntry(field) && value != "" {
			result := password.Score(value)
			msg := fmt.Sprintf("%s Strength: %s (%d%%), %s", s.theme.InfoPrefix, result.Label, result.Percent(), result.Summary())
			if err := s.driver.Info(ctx, msg); err != nil {
				return err
			}
		}

		state, _ := s.form.Field(field.Name)
		if state.Error == "" {
			return nil
		}
		if err := s.driver.Info(ctx, fmt.Sprintf("%s %s", s.theme.ErrorPrefix, state.Error)); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) ask(ctx context.Context, field model.Field) (string, error) {
	message := field.Label
	if message == "" {
		message = field.Name
	}
	if field.IsRequired() {
		message += " *"
	}
	current, _ := s.form.Value(field.Name)

	switch field.Kind {
	case model.FieldKindPassword:
		return s.driver.Password(ctx, InputConfig{Message: message, Help: field.Description})
	case model.FieldKindCheckbox:
		ok, err := s.driver.Confirm(ctx, ConfirmConfig{
			Message: message,
			Help:    field.Description,
			Default: current == rules.Checked,
		})
		if err != nil {
			return "", err
		}
		if ok {
			return rules.Checked, nil
		}
		return "", nil
	case model.FieldKindTextarea:
		return s.driver.TextArea(ctx, TextAreaConfig{Message: message, Help: field.Description, Default: current})
	default:
		help := field.Description
		if help == "" {
			help = field.Placeholder
		}
		return s.driver.Input(ctx, InputConfig{Message: message, Help: help, Default: current})
	}
}

func (s *Session) describe(state submit.State) string {
	if state.CanSubmit {
		return fmt.Sprintf("%s [%s] %s", s.theme.InfoPrefix, state.ButtonStyle, state.ButtonText)
	}
	return fmt.Sprintf("%s [%s] %s: %s", s.theme.ErrorPrefix, state.ButtonStyle, state.ButtonText, state.DisabledReason)
}

// isPasswordEntry excludes confirmation fields, which only need to match.
func isPasswordEntry(field model.Field) bool {
	if field.Kind != model.FieldKindPassword {
		return false
	}
	_, confirm := field.Rule(model.ValidationRuleMatches)
	return !confirm
}
