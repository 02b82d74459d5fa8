package server

import (
	"github.com/goliatone/go-formgate/pkg/model"
	"github.com/goliatone/go-formgate/pkg/password"
	"github.com/goliatone/go-formgate/pkg/report"
)

// FormInfo is one entry of the form listing.
type FormInfo struct {
	ID     string `json:"id" example:"signup"`
	Title  string `json:"title,omitempty" example:"Create Account"`
	Fields int    `json:"fields" example:"7"`
}

// FormListResponse lists the forms the service can evaluate.
type FormListResponse struct {
	Forms []FormInfo `json:"forms"`
}

// FormResponse wraps a full form definition.
type FormResponse struct {
	Form model.FormModel `json:"form"`
}

// EvaluateRequest carries the values typed so far. Values are applied in the
// form's field order; Touched lists the fields that lost focus. ValidateAll
// runs a submit attempt, validating and touching every field.
type EvaluateRequest struct {
	Values      map[string]string `json:"values,omitempty" doc:"Field values keyed by field name"`
	Touched     []string          `json:"touched,omitempty" doc:"Fields that have been blurred"`
	ValidateAll bool              `json:"validateAll,omitempty" doc:"Validate and touch every field"`
	Loading     bool              `json:"loading,omitempty" doc:"A submission is in flight"`
}

// EvaluateResponse is the report of one evaluation.
type EvaluateResponse struct {
	EvaluationID string `json:"evaluationId" example:"5f0c6a8e-2b1d-4c3e-9a7f-1d2e3f4a5b6c"`
	report.Report
}

// StrengthRequest carries the password to score.
type StrengthRequest struct {
	Password string `json:"password" doc:"Password to score"`
}

// StrengthResponse is the meter output for a password.
type StrengthResponse struct {
	Score             float64               `json:"score"`
	Percent           int                   `json:"percent"`
	Label             password.Strength     `json:"label"`
	Summary           string                `json:"summary"`
	AllRequiredPassed bool                  `json:"allRequiredPassed"`
	Rules             []password.RuleResult `json:"rules"`
}
