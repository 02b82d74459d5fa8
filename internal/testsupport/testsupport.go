// Package testsupport locates the shared fixtures under testdata/ for tests
// spread across the module.
package testsupport

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	pkgopenapi "github.com/goliatone/go-formgate/pkg/openapi"
)

// SignupDocument is the OpenAPI fixture with the createAccount, signIn and
// listSessions operations.
const SignupDocument = "signup.openapi.yaml"

// SignupValues is a values file that makes the signup preset submittable.
const SignupValues = "signup.values.yaml"

// Path returns the absolute path of a file in the module's testdata
// directory.
func Path(name string) string {
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		return filepath.Join("testdata", name)
	}
	return filepath.Join(filepath.Dir(file), "..", "..", "testdata", name)
}

// ReadFile returns the content of a testdata file.
func ReadFile(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(Path(name))
	if err != nil {
		t.Fatalf("read fixture %s: %v", name, err)
	}
	return data
}

// LoadDocument wraps a testdata file in an openapi.Document with a file
// source.
func LoadDocument(t *testing.T, name string) pkgopenapi.Document {
	t.Helper()
	doc, err := pkgopenapi.NewDocument(pkgopenapi.SourceFromFile(Path(name)), ReadFile(t, name))
	if err != nil {
		t.Fatalf("new document %s: %v", name, err)
	}
	return doc
}
