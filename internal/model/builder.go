package model

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	pkgopenapi "github.com/goliatone/go-formgate/pkg/openapi"
)

// Builder converts OpenAPI operations into form definitions.
type Builder struct {
	opts Options
}

// New creates a Builder with the supplied options.
func New(options Options) *Builder {
	return &Builder{opts: resolveOptions(options)}
}

// Build derives a form definition from the operation's request body. String
// properties become text-like fields and booleans become checkboxes; other
// types are skipped and listed under the "skipped" metadata key. Nested
// objects are flattened with dotted names.
func (b *Builder) Build(op pkgopenapi.Operation) (FormModel, error) {
	if op.ID == "" {
		return FormModel{}, errFormIDMissing
	}
	if !op.HasRequestBody() {
		return FormModel{}, fmt.Errorf("model builder: operation %q has no request body fields", op.ID)
	}

	form := FormModel{
		ID:          op.ID,
		Title:       op.Summary,
		Description: op.Description,
		Metadata: map[string]string{
			"method":   strings.ToUpper(op.Method),
			"endpoint": op.Path,
		},
	}

	opMeta := ParseExtensions(op.Extensions)
	bodyMeta := ParseExtensions(op.RequestBody.Extensions)
	form.Submit.DefaultText = firstNonEmpty(bodyMeta[MetadataSubmitLabel], opMeta[MetadataSubmitLabel], op.Summary)
	form.Submit.LoadingText = firstNonEmpty(bodyMeta[MetadataLoadingText], opMeta[MetadataLoadingText])

	var skipped []string
	form.Fields = b.fieldsFromObject("", op.RequestBody, &skipped)
	if len(form.Fields) == 0 {
		return FormModel{}, fmt.Errorf("model builder: operation %q has no supported fields", op.ID)
	}
	if len(skipped) > 0 {
		sort.Strings(skipped)
		form.Metadata["skipped"] = strings.Join(skipped, ",")
	}

	if err := Validate(form); err != nil {
		return FormModel{}, fmt.Errorf("model builder: %w", err)
	}
	return form, nil
}

type orderedField struct {
	field Field
	order int
}

func (b *Builder) fieldsFromObject(prefix string, schema pkgopenapi.Schema, skipped *[]string) []Field {
	var collected []orderedField
	for name, prop := range schema.Properties {
		path := name
		if prefix != "" {
			path = prefix + "." + name
		}
		required := schema.IsRequired(name)

		switch prop.Type {
		case "object":
			for _, nested := range b.fieldsFromObject(path, prop, skipped) {
				if !required {
					nested.Required = false
				}
				collected = append(collected, orderedField{field: nested, order: orderOf(prop)})
			}
		case "string", "boolean", "integer", "number":
			field := b.fieldFromPrimitive(path, prop, required)
			collected = append(collected, orderedField{field: field, order: orderOf(prop)})
		default:
			*skipped = append(*skipped, path)
		}
	}

	sort.SliceStable(collected, func(i, j int) bool {
		if collected[i].order != collected[j].order {
			return collected[i].order < collected[j].order
		}
		return collected[i].field.Name < collected[j].field.Name
	})

	fields := make([]Field, len(collected))
	for i, item := range collected {
		fields[i] = item.field
	}
	return fields
}

// orderOf reads x-formgate order. Unordered fields sort after ordered ones.
func orderOf(schema pkgopenapi.Schema) int {
	meta := ParseExtensions(schema.Extensions)
	if raw, ok := meta[MetadataOrder]; ok {
		if value, err := strconv.Atoi(raw); err == nil {
			return value
		}
	}
	return int(^uint(0) >> 1)
}

func (b *Builder) fieldFromPrimitive(name string, schema pkgopenapi.Schema, required bool) Field {
	meta := ParseExtensions(schema.Extensions)

	label := firstNonEmpty(meta[MetadataLabel], schema.Title)
	if label == "" {
		label = b.opts.Labeler(name)
	}

	field := Field{
		Name:        name,
		Kind:        kindFor(schema, meta),
		Label:       label,
		Placeholder: meta[MetadataPlaceholder],
		Description: schema.Description,
		Required:    required,
		Sanitize:    meta[MetadataSanitize] == "true",
	}
	if value, ok := CanonicalizeExtensionValue(schema.Default); ok {
		field.Default = value
	}

	applyValidations(&field, schema, meta)

	field.Metadata = make(map[string]string)
	if schema.Format != "" {
		field.Metadata["format"] = schema.Format
	}
	if schema.Type != "string" {
		field.Metadata["type"] = schema.Type
	}
	mergeMetadata(field.Metadata, meta)
	if len(field.Metadata) == 0 {
		field.Metadata = nil
	}
	return field
}

func kindFor(schema pkgopenapi.Schema, meta map[string]string) FieldKind {
	if kind := FieldKind(meta[MetadataKind]); kind != "" {
		return kind
	}
	switch {
	case schema.Type == "boolean":
		return FieldKindCheckbox
	case schema.Format == "email":
		return FieldKindEmail
	case schema.Format == "password":
		return FieldKindPassword
	default:
		return FieldKindText
	}
}

var numericPatterns = map[string]string{
	"integer": `^-?\d+$`,
	"number":  `^-?\d+(\.\d+)?$`,
}

func applyValidations(field *Field, schema pkgopenapi.Schema, meta map[string]string) {
	message := meta[MetadataMessage]

	if schema.MinLength != nil {
		field.Validations = append(field.Validations, ValidationRule{
			Kind:   ValidationRuleMinLength,
			Params: map[string]string{"value": strconv.Itoa(*schema.MinLength)},
		})
	}
	if schema.MaxLength != nil {
		field.Validations = append(field.Validations, ValidationRule{
			Kind:   ValidationRuleMaxLength,
			Params: map[string]string{"value": strconv.Itoa(*schema.MaxLength)},
		})
	}

	pattern := schema.Pattern
	if pattern == "" {
		pattern = numericPatterns[schema.Type]
	}
	if pattern != "" {
		field.Validations = append(field.Validations, ValidationRule{
			Kind:   ValidationRulePattern,
			Params: map[string]string{"pattern": pattern},
		})
	}

	if field.Kind == FieldKindCheckbox && field.Required && message != "" {
		field.Validations = append(field.Validations, ValidationRule{
			Kind:   ValidationRuleChecked,
			Params: map[string]string{"message": message},
		})
	}

	if target := meta[MetadataMatches]; target != "" {
		params := map[string]string{"field": target}
		if message != "" {
			params["message"] = message
		}
		field.Validations = append(field.Validations, ValidationRule{
			Kind:   ValidationRuleMatches,
			Params: params,
		})
	}

	switch validator := meta[MetadataValidator]; validator {
	case "":
	case ValidationRuleFullName, ValidationRuleEmail, ValidationRulePassword:
		field.Validations = append(field.Validations, ValidationRule{Kind: validator})
	default:
		field.Validations = append(field.Validations, ValidationRule{
			Kind:   ValidationRuleCustom,
			Params: map[string]string{"name": validator},
		})
	}
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}
