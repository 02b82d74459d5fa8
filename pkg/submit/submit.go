package submit

import (
	"fmt"
	"strings"
)

// Style is the visual variant a renderer should apply to the button.
type Style string

const (
	StyleDefault  Style = "default"
	StyleDisabled Style = "disabled"
	StyleLoading  Style = "loading"
	StyleReady    Style = "ready"
)

// Reason identifies the gating condition that disabled the button.
type Reason string

const (
	ReasonNone             Reason = ""
	ReasonLoading          Reason = "loading"
	ReasonInvalid          Reason = "invalid"
	ReasonIncomplete       Reason = "incomplete"
	ReasonUntouched        Reason = "untouched"
	ReasonBelowThreshold   Reason = "below_threshold"
	ReasonCustomValidation Reason = "custom_validation"
)

const (
	MessageInvalid          = "Please fix all form errors"
	MessageIncomplete       = "Please complete all required fields"
	MessageUntouched        = "Please fill out the form"
	MessageCustomValidation = "Additional validation required"

	// HintDisabled is used when a disabled button has no reason text.
	HintDisabled = "Button is currently disabled"
	HintLoading  = "Processing your request"
	HintReady    = "Double tap to submit the form"

	DefaultText = "Submit"
	LoadingText = "Submitting..."
)

// Config is the gating input for Derive. Zero values match the documented
// defaults except CurrentCompletionPercentage, where nil means 100.
type Config struct {
	IsFormValid     bool
	IsFormTouched   bool
	IsFormCompleted bool
	IsLoading       bool

	// CustomValidation is consulted last; nil means no extra check.
	CustomValidation func() bool

	DefaultText  string
	LoadingText  string
	DisabledText string

	RequireCompletion           bool
	RequireTouched              bool
	MinCompletionPercentage     int
	CurrentCompletionPercentage *int
}

// Percentage returns a pointer suitable for Config.CurrentCompletionPercentage.
func Percentage(value int) *int {
	return &value
}

// State is the derived presentation of the submit control.
type State struct {
	IsDisabled         bool   `json:"isDisabled"`
	IsEnabled          bool   `json:"isEnabled"`
	ButtonText         string `json:"buttonText"`
	ButtonStyle        Style  `json:"buttonStyle"`
	AccessibilityLabel string `json:"accessibilityLabel"`
	AccessibilityHint  string `json:"accessibilityHint"`
	// DisabledReason is empty while loading and when the button is enabled.
	DisabledReason     string `json:"disabledReason,omitempty"`
	Reason             Reason `json:"reason,omitempty"`
	CanSubmit          bool   `json:"canSubmit"`
	ShowProgress       bool   `json:"showProgress"`
	ProgressPercentage int    `json:"progressPercentage"`
}

// BelowThresholdMessage formats the reason reported when the completion
// percentage is under the configured minimum.
func BelowThresholdMessage(minimum int) string {
	return fmt.Sprintf("Form must be at least %d%% complete", minimum)
}

// Derive evaluates cfg against the gating chain: loading, invalid,
// incomplete, untouched, below threshold, custom validation, ready.
func Derive(cfg Config) State {
	defaultText := textOr(cfg.DefaultText, DefaultText)
	loadingText := textOr(cfg.LoadingText, LoadingText)

	current := 100
	if cfg.CurrentCompletionPercentage != nil {
		current = *cfg.CurrentCompletionPercentage
	}

	style, reason, message := gate(cfg, current)
	disabled := style != StyleReady

	state := State{
		IsDisabled:         disabled,
		IsEnabled:          !disabled,
		ButtonStyle:        style,
		DisabledReason:     message,
		Reason:             reason,
		CanSubmit:          !disabled && !cfg.IsLoading,
		ShowProgress:       cfg.MinCompletionPercentage > 0,
		ProgressPercentage: current,
	}

	switch {
	case cfg.IsLoading:
		state.ButtonText = loadingText
		state.AccessibilityLabel = loadingText + ". Please wait."
		state.AccessibilityHint = HintLoading
	case disabled:
		state.ButtonText = textOr(cfg.DisabledText, defaultText)
		state.AccessibilityLabel = "Submit button disabled. " + message
		state.AccessibilityHint = textOr(message, HintDisabled)
	default:
		state.ButtonText = defaultText
		state.AccessibilityLabel = defaultText + ". Form is ready to submit."
		state.AccessibilityHint = HintReady
	}
	return state
}

func gate(cfg Config, current int) (Style, Reason, string) {
	switch {
	case cfg.IsLoading:
		return StyleLoading, ReasonLoading, ""
	case !cfg.IsFormValid:
		return StyleDisabled, ReasonInvalid, MessageInvalid
	case cfg.RequireCompletion && !cfg.IsFormCompleted:
		return StyleDisabled, ReasonIncomplete, MessageIncomplete
	case cfg.RequireTouched && !cfg.IsFormTouched:
		return StyleDisabled, ReasonUntouched, MessageUntouched
	case current < cfg.MinCompletionPercentage:
		return StyleDisabled, ReasonBelowThreshold, BelowThresholdMessage(cfg.MinCompletionPercentage)
	case cfg.CustomValidation != nil && !cfg.CustomValidation():
		return StyleDisabled, ReasonCustomValidation, MessageCustomValidation
	default:
		return StyleReady, ReasonNone, ""
	}
}

func textOr(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
