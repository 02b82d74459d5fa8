package model

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	pkgopenapi "github.com/goliatone/go-formgate/pkg/openapi"
)

// Violation is one problem found in the x-formgate extensions of an
// operation.
type Violation struct {
	Operation string `json:"operation"`
	Location  string `json:"location"`
	Message   string `json:"message"`
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: %s -> %s", v.Operation, v.Location, v.Message)
}

// Lint checks the extensions of every operation. Keys must be ones the
// Builder reads and values must be scalars of the expected shape. matches
// must name another body property. knownValidator, when not nil, decides
// whether a custom validator name resolves. The result is sorted.
func Lint(ops map[string]pkgopenapi.Operation, knownValidator func(name string) bool) []Violation {
	var out []Violation
	for id, op := range ops {
		l := linter{op: id, knownValidator: knownValidator, fields: map[string]bool{}}
		collectFieldNames(l.fields, "", op.RequestBody)

		l.extensions([]string{"operation"}, op.Extensions)
		l.extensions([]string{"requestBody"}, op.RequestBody.Extensions)
		l.properties([]string{"requestBody"}, op.RequestBody)
		out = append(out, l.violations...)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Operation != out[j].Operation {
			return out[i].Operation < out[j].Operation
		}
		if out[i].Location != out[j].Location {
			return out[i].Location < out[j].Location
		}
		return out[i].Message < out[j].Message
	})
	return out
}

type linter struct {
	op             string
	knownValidator func(string) bool
	fields         map[string]bool
	violations     []Violation
}

func (l *linter) report(path []string, format string, args ...any) {
	l.violations = append(l.violations, Violation{
		Operation: l.op,
		Location:  strings.Join(path, " > "),
		Message:   fmt.Sprintf(format, args...),
	})
}

func (l *linter) properties(path []string, schema pkgopenapi.Schema) {
	keys := make([]string, 0, len(schema.Properties))
	for key := range schema.Properties {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		prop := schema.Properties[key]
		next := appendPath(path, "properties."+key)
		l.extensions(next, prop.Extensions)
		if prop.Type == "object" {
			l.properties(next, prop)
		}
	}
}

func (l *linter) extensions(path []string, ext map[string]any) {
	keys := make([]string, 0, len(ext))
	for key := range ext {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := ext[key]
		switch {
		case key == ExtensionNamespace:
			nested, ok := value.(map[string]any)
			if !ok {
				l.report(path, "%s must be an object, found %T", ExtensionNamespace, value)
				continue
			}
			nestedKeys := make([]string, 0, len(nested))
			for nestedKey := range nested {
				nestedKeys = append(nestedKeys, nestedKey)
			}
			sort.Strings(nestedKeys)
			for _, nestedKey := range nestedKeys {
				l.hint(appendPath(path, nestedKey), nestedKey, nested[nestedKey])
			}
		case strings.HasPrefix(key, ExtensionNamespace+"-"):
			l.hint(path, strings.TrimPrefix(key, ExtensionNamespace+"-"), value)
		}
	}
}

func (l *linter) hint(path []string, key string, value any) {
	if key == "" {
		l.report(path, "extension key is empty")
		return
	}
	if !IsExtensionKey(key) {
		l.report(path, "unsupported extension key %q (supported: %s)", key, strings.Join(extensionKeys, ", "))
		return
	}
	switch value.(type) {
	case map[string]any, []any:
		l.report(path, "value for %q must be a string, number or boolean (got %T)", key, value)
		return
	}
	str, ok := CanonicalizeExtensionValue(value)
	if !ok {
		l.report(path, "value for %q must be a string, number or boolean (got %T)", key, value)
		return
	}

	switch key {
	case MetadataKind:
		switch FieldKind(str) {
		case FieldKindText, FieldKindEmail, FieldKindPassword, FieldKindCheckbox, FieldKindTextarea:
		default:
			l.report(path, "unknown field kind %q", str)
		}
	case MetadataOrder:
		if _, err := strconv.Atoi(str); err != nil {
			l.report(path, "order must be an integer, got %q", str)
		}
	case MetadataSanitize:
		if _, err := strconv.ParseBool(str); err != nil {
			l.report(path, "sanitize must be a boolean, got %q", str)
		}
	case MetadataMatches:
		if !l.fields[str] {
			l.report(path, "matches names unknown field %q", str)
		}
	case MetadataValidator:
		switch str {
		case ValidationRuleFullName, ValidationRuleEmail, ValidationRulePassword:
		default:
			if l.knownValidator != nil && !l.knownValidator(str) {
				l.report(path, "validator %q is not registered", str)
			}
		}
	}
}

func collectFieldNames(into map[string]bool, prefix string, schema pkgopenapi.Schema) {
	for key, prop := range schema.Properties {
		name := prefix + key
		into[name] = true
		if prop.Type == "object" {
			collectFieldNames(into, name+".", prop)
		}
	}
}

func appendPath(path []string, segment string) []string {
	next := append([]string(nil), path...)
	return append(next, segment)
}
