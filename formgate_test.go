package formgate_test

import (
	"context"
	"io/fs"
	"testing"

	formgate "github.com/goliatone/go-formgate"
	"github.com/goliatone/go-formgate/pkg/model"
	pkgopenapi "github.com/goliatone/go-formgate/pkg/openapi"
	"github.com/goliatone/go-formgate/pkg/report"
	"github.com/goliatone/go-formgate/pkg/rules"
)

func TestFormFromOpenAPI(t *testing.T) {
	def, err := formgate.FormFromOpenAPI(context.Background(),
		pkgopenapi.SourceFromFile("testdata/signup.openapi.yaml"),
		"signIn",
		formgate.WithDecorators(model.WithSubmit(model.Submit{DefaultText: "Log In", RequireTouched: true})),
	)
	if err != nil {
		t.Fatalf("form from openapi: %v", err)
	}
	if def.Submit.DefaultText != "Log In" || !def.Submit.RequireTouched {
		t.Fatalf("decorator not applied: %+v", def.Submit)
	}
}

func TestCompileFromOpenAPI_WithRegistry(t *testing.T) {
	registry := model.NewRegistry()
	registry.MustRegister("fullName", rules.FullNameCheck)

	def, f, err := formgate.CompileFromOpenAPI(context.Background(),
		pkgopenapi.SourceFromFile("testdata/signup.openapi.yaml"),
		"createAccount",
		formgate.WithRegistry(registry),
	)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if len(def.Fields) != len(f.Names()) {
		t.Fatalf("store and definition disagree: %d vs %d", len(def.Fields), len(f.Names()))
	}
}

func TestLoaderAndParser(t *testing.T) {
	ctx := context.Background()
	doc, err := formgate.NewLoader().Load(ctx, pkgopenapi.SourceFromFile("testdata/signup.openapi.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	ops, err := formgate.NewParser(pkgopenapi.WithMediaTypes("application/json")).Operations(ctx, doc)
	if err != nil {
		t.Fatalf("operations: %v", err)
	}
	if !ops["createAccount"].HasRequestBody() || ops["signIn"].HasRequestBody() {
		t.Fatalf("unexpected media type filtering: %+v", ops)
	}
}

func TestEmbeddedTemplates(t *testing.T) {
	if _, err := fs.Stat(formgate.EmbeddedTemplates(), report.DefaultTemplate); err != nil {
		t.Fatalf("expected embedded report template: %v", err)
	}
}
