package submit_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formgate/pkg/submit"
)

func readyConfig() submit.Config {
	return submit.Config{
		IsFormValid:     true,
		IsFormTouched:   true,
		IsFormCompleted: true,
		DefaultText:     "Create Account",
		LoadingText:     "Creating Account...",
	}
}

func TestDerive_Invalid(t *testing.T) {
	state := submit.Derive(submit.Config{IsFormValid: false, IsLoading: false, DefaultText: "Save"})

	want := submit.State{
		IsDisabled:         true,
		ButtonText:         "Save",
		ButtonStyle:        submit.StyleDisabled,
		AccessibilityLabel: "Submit button disabled. Please fix all form errors",
		AccessibilityHint:  "Please fix all form errors",
		DisabledReason:     submit.MessageInvalid,
		Reason:             submit.ReasonInvalid,
		ProgressPercentage: 100,
	}
	if diff := cmp.Diff(want, state); diff != "" {
		t.Fatalf("state mismatch (-want +got):\n%s", diff)
	}
}

func TestDerive_LoadingWinsOverValidity(t *testing.T) {
	cfg := readyConfig()
	cfg.IsLoading = true

	state := submit.Derive(cfg)
	if state.ButtonStyle != submit.StyleLoading {
		t.Fatalf("expected loading style, got %s", state.ButtonStyle)
	}
	if state.ButtonText != "Creating Account..." {
		t.Fatalf("expected loading text, got %q", state.ButtonText)
	}
	if state.DisabledReason != "" {
		t.Fatalf("expected no reason while loading, got %q", state.DisabledReason)
	}
	if !state.IsDisabled || state.CanSubmit {
		t.Fatalf("expected loading button to be disabled")
	}
	if state.AccessibilityLabel != "Creating Account.... Please wait." {
		t.Fatalf("unexpected accessibility label %q", state.AccessibilityLabel)
	}
	if state.AccessibilityHint != submit.HintLoading {
		t.Fatalf("unexpected accessibility hint %q", state.AccessibilityHint)
	}
}

func TestDerive_LoadingDominatesEveryInput(t *testing.T) {
	for mask := 0; mask < 1<<5; mask++ {
		cfg := submit.Config{
			IsFormValid:                 mask&1 != 0,
			IsFormTouched:               mask&2 != 0,
			IsFormCompleted:             mask&4 != 0,
			RequireCompletion:           mask&8 != 0,
			RequireTouched:              mask&16 != 0,
			IsLoading:                   true,
			MinCompletionPercentage:     50,
			CurrentCompletionPercentage: submit.Percentage(10),
			CustomValidation:            func() bool { return false },
		}
		if got := submit.Derive(cfg).ButtonStyle; got != submit.StyleLoading {
			t.Fatalf("mask %05b: expected loading, got %s", mask, got)
		}
	}
}

func TestDerive_PriorityChain(t *testing.T) {
	never := func() bool { return false }

	cases := []struct {
		name   string
		mutate func(*submit.Config)
		reason submit.Reason
		text   string
	}{
		{
			name:   "invalid before incomplete",
			mutate: func(c *submit.Config) { c.IsFormValid = false; c.RequireCompletion = true; c.IsFormCompleted = false },
			reason: submit.ReasonInvalid,
			text:   submit.MessageInvalid,
		},
		{
			name:   "incomplete before untouched",
			mutate: func(c *submit.Config) { c.RequireCompletion = true; c.IsFormCompleted = false; c.RequireTouched = true; c.IsFormTouched = false },
			reason: submit.ReasonIncomplete,
			text:   submit.MessageIncomplete,
		},
		{
			name:   "completion ignored unless required",
			mutate: func(c *submit.Config) { c.IsFormCompleted = false; c.RequireTouched = true; c.IsFormTouched = false },
			reason: submit.ReasonUntouched,
			text:   submit.MessageUntouched,
		},
		{
			name: "untouched before threshold",
			mutate: func(c *submit.Config) {
				c.RequireTouched = true
				c.IsFormTouched = false
				c.MinCompletionPercentage = 80
				c.CurrentCompletionPercentage = submit.Percentage(20)
			},
			reason: submit.ReasonUntouched,
			text:   submit.MessageUntouched,
		},
		{
			name: "threshold before custom",
			mutate: func(c *submit.Config) {
				c.MinCompletionPercentage = 80
				c.CurrentCompletionPercentage = submit.Percentage(79)
				c.CustomValidation = never
			},
			reason: submit.ReasonBelowThreshold,
			text:   "Form must be at least 80% complete",
		},
		{
			name:   "custom validation",
			mutate: func(c *submit.Config) { c.CustomValidation = never },
			reason: submit.ReasonCustomValidation,
			text:   submit.MessageCustomValidation,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := readyConfig()
			tc.mutate(&cfg)
			state := submit.Derive(cfg)
			if state.Reason != tc.reason {
				t.Fatalf("expected reason %q, got %q", tc.reason, state.Reason)
			}
			if state.DisabledReason != tc.text {
				t.Fatalf("expected message %q, got %q", tc.text, state.DisabledReason)
			}
			if state.ButtonStyle != submit.StyleDisabled || state.CanSubmit {
				t.Fatalf("expected disabled button, got %#v", state)
			}
		})
	}
}

func TestDerive_Ready(t *testing.T) {
	cfg := readyConfig()
	cfg.CustomValidation = func() bool { return true }
	cfg.MinCompletionPercentage = 100

	state := submit.Derive(cfg)
	want := submit.State{
		IsEnabled:          true,
		ButtonText:         "Create Account",
		ButtonStyle:        submit.StyleReady,
		AccessibilityLabel: "Create Account. Form is ready to submit.",
		AccessibilityHint:  submit.HintReady,
		CanSubmit:          true,
		ShowProgress:       true,
		ProgressPercentage: 100,
	}
	if diff := cmp.Diff(want, state); diff != "" {
		t.Fatalf("state mismatch (-want +got):\n%s", diff)
	}
}

func TestDerive_DisabledText(t *testing.T) {
	cfg := readyConfig()
	cfg.IsFormValid = false
	cfg.DisabledText = "Fix errors first"

	if got := submit.Derive(cfg).ButtonText; got != "Fix errors first" {
		t.Fatalf("expected disabled text, got %q", got)
	}

	cfg.IsFormValid = true
	if got := submit.Derive(cfg).ButtonText; got != "Create Account" {
		t.Fatalf("expected default text once enabled, got %q", got)
	}
}

func TestDerive_Defaults(t *testing.T) {
	state := submit.Derive(submit.Config{IsFormValid: true})
	if state.ButtonText != submit.DefaultText {
		t.Fatalf("expected fallback text, got %q", state.ButtonText)
	}
	if state.ShowProgress {
		t.Fatalf("expected progress hidden without a minimum percentage")
	}
	if state.ProgressPercentage != 100 {
		t.Fatalf("expected default completion of 100, got %d", state.ProgressPercentage)
	}
}

func TestDerive_Deterministic(t *testing.T) {
	cfg := readyConfig()
	cfg.MinCompletionPercentage = 60
	cfg.CurrentCompletionPercentage = submit.Percentage(40)

	first := submit.Derive(cfg)
	second := submit.Derive(cfg)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("expected identical derivations (-first +second):\n%s", diff)
	}
}
