package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	humachi "github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/goliatone/go-formgate/pkg/form"
	"github.com/goliatone/go-formgate/pkg/model"
	"github.com/goliatone/go-formgate/pkg/password"
	"github.com/goliatone/go-formgate/pkg/report"
)

// Config for the HTTP API handler.
type Config struct {
	Catalog  *model.Catalog
	Registry *model.Registry
	BasePath string
	// Quiet disables the per-request log line.
	Quiet bool
	// NewID generates evaluation IDs. Defaults to random UUIDs.
	NewID func() string
}

type apiErrorBody struct {
	Code    string         `json:"code" example:"unknown_field"`
	Message string         `json:"message" example:"form: unknown field \"nickname\""`
	Details map[string]any `json:"details,omitempty" jsonschema:"type=object,additionalProperties=true"`
}

// apiError models the error envelope.
type apiError struct {
	status int
	Body   apiErrorBody `json:"error"`
}

func (e *apiError) GetStatus() int { return e.status }
func (e *apiError) Error() string  { return e.Body.Message }

// New returns an HTTP handler exposing the evaluation API.
func New(cfg Config) (http.Handler, error) {
	if cfg.Catalog == nil {
		return nil, errors.New("server: catalog is required")
	}
	if cfg.Registry == nil {
		cfg.Registry = model.DefaultRegistry()
	}
	if cfg.NewID == nil {
		cfg.NewID = uuid.NewString
	}
	basePath := cfg.BasePath
	if basePath != "" && !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}

	huma.DefaultArrayNullable = false
	huma.NewError = func(status int, msg string, errs ...error) huma.StatusError {
		var details map[string]any
		if len(errs) > 0 {
			details = map[string]any{"errors": errs}
		}
		return newAPIError(status, "", msg, details)
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	if !cfg.Quiet {
		router.Use(middleware.Logger)
	}
	router.Use(middleware.Recoverer)

	hcfg := huma.DefaultConfig("Formgate API", "1.0.0")
	hcfg.OpenAPIPath = basePath + "/openapi"
	hcfg.DocsPath = ""
	api := humachi.New(router, hcfg)
	group := huma.NewGroup(api, basePath)

	registerHealth(group)
	registerForms(group, cfg)
	registerEvaluate(group, cfg)
	registerStrength(group)

	return router, nil
}

func newAPIError(status int, code, message string, details map[string]any) huma.StatusError {
	if code == "" {
		code = defaultCodeForStatus(status)
	}
	return &apiError{
		status: status,
		Body: apiErrorBody{
			Code:    code,
			Message: message,
			Details: details,
		},
	}
}

func defaultCodeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "bad_request"
	case http.StatusNotFound:
		return "not_found"
	case http.StatusUnprocessableEntity:
		return "validation_failed"
	case http.StatusInternalServerError:
		return "internal_error"
	default:
		return strings.ToLower(strings.ReplaceAll(http.StatusText(status), " ", "_"))
	}
}

func registerHealth(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
	}, func(ctx context.Context, _ *struct{}) (*struct {
		Body map[string]string `json:"body"`
	}, error) {
		return &struct {
			Body map[string]string `json:"body"`
		}{Body: map[string]string{"status": "ok"}}, nil
	})
}

type formPath struct {
	Form string `path:"form" doc:"Form ID"`
}

func registerForms(api huma.API, cfg Config) {
	huma.Register(api, huma.Operation{
		OperationID: "list-forms",
		Method:      http.MethodGet,
		Path:        "/forms",
		Summary:     "List forms",
	}, func(ctx context.Context, _ *struct{}) (*struct {
		Body FormListResponse `json:"body"`
	}, error) {
		out := FormListResponse{Forms: []FormInfo{}}
		for _, name := range cfg.Catalog.Names() {
			def, _ := cfg.Catalog.Get(name)
			out.Forms = append(out.Forms, FormInfo{ID: def.ID, Title: def.Title, Fields: len(def.Fields)})
		}
		return &struct {
			Body FormListResponse `json:"body"`
		}{Body: out}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-form",
		Method:      http.MethodGet,
		Path:        "/forms/{form}",
		Summary:     "Get form definition",
		Errors:      []int{http.StatusNotFound},
	}, func(ctx context.Context, input *formPath) (*struct {
		Body FormResponse `json:"body"`
	}, error) {
		def, err := lookupForm(cfg.Catalog, input.Form)
		if err != nil {
			return nil, err
		}
		return &struct {
			Body FormResponse `json:"body"`
		}{Body: FormResponse{Form: def}}, nil
	})
}

func registerEvaluate(api huma.API, cfg Config) {
	huma.Register(api, huma.Operation{
		OperationID: "evaluate-form",
		Method:      http.MethodPost,
		Path:        "/forms/{form}/evaluate",
		Summary:     "Evaluate form values",
		Description: "Applies the values to a fresh form store and returns field states, aggregates and the submit button state.",
		Errors: []int{
			http.StatusBadRequest,
			http.StatusNotFound,
			http.StatusUnprocessableEntity,
			http.StatusInternalServerError,
		},
	}, func(ctx context.Context, input *struct {
		Form string          `path:"form" doc:"Form ID"`
		Body EvaluateRequest `json:"body"`
	}) (*struct {
		Body EvaluateResponse `json:"body"`
	}, error) {
		def, err := lookupForm(cfg.Catalog, input.Form)
		if err != nil {
			return nil, err
		}
		out, err := evaluate(def, input.Body, cfg.Registry)
		if err != nil {
			return nil, err
		}
		return &struct {
			Body EvaluateResponse `json:"body"`
		}{Body: EvaluateResponse{EvaluationID: cfg.NewID(), Report: out}}, nil
	})
}

func registerStrength(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "password-strength",
		Method:      http.MethodPost,
		Path:        "/password/strength",
		Summary:     "Score a password",
	}, func(ctx context.Context, input *struct {
		Body StrengthRequest `json:"body"`
	}) (*struct {
		Body StrengthResponse `json:"body"`
	}, error) {
		result := password.Score(input.Body.Password)
		return &struct {
			Body StrengthResponse `json:"body"`
		}{Body: StrengthResponse{
			Score:             result.Score,
			Percent:           result.Percent(),
			Label:             result.Label,
			Summary:           result.Summary(),
			AllRequiredPassed: result.AllRequiredPassed,
			Rules:             result.Rules,
		}}, nil
	})
}

func lookupForm(catalog *model.Catalog, id string) (model.FormModel, error) {
	def, ok := catalog.Get(id)
	if !ok {
		return model.FormModel{}, newAPIError(http.StatusNotFound, "form_not_found", fmt.Sprintf("form %q not found", id), map[string]any{"form": id})
	}
	return def, nil
}

// evaluate replays a request against a fresh store: values in field order,
// then touches, then the optional submit attempt.
func evaluate(def model.FormModel, req EvaluateRequest, registry *model.Registry) (report.Report, error) {
	f, err := model.Compile(def, model.WithRegistry(registry))
	if err != nil {
		return report.Report{}, newAPIError(http.StatusInternalServerError, "", err.Error(), nil)
	}

	names := make([]string, 0, len(req.Values))
	for name := range req.Values {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if !f.Has(name) {
			return report.Report{}, unknownField(name)
		}
	}
	for _, name := range f.Names() {
		if value, ok := req.Values[name]; ok {
			if err := f.UpdateField(name, value); err != nil {
				return report.Report{}, unknownField(name)
			}
		}
	}
	for _, name := range req.Touched {
		if err := f.TouchField(name); err != nil {
			if errors.Is(err, form.ErrUnknownField) {
				return report.Report{}, unknownField(name)
			}
			return report.Report{}, err
		}
	}
	if req.ValidateAll {
		f.ValidateForm()
	}

	base := model.SubmitConfig(def)
	base.IsLoading = req.Loading
	return report.Build(def, f, base), nil
}

func unknownField(name string) error {
	return newAPIError(http.StatusUnprocessableEntity, "unknown_field", fmt.Sprintf("%v %q", form.ErrUnknownField, name), map[string]any{"field": name})
}
