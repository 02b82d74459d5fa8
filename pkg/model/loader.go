package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Parse decodes a form definition from JSON or YAML. Payloads starting with
// '{' are read as JSON, everything else as YAML. Unknown keys are rejected
// and the result is validated. source only labels error messages.
func Parse(data []byte, source string) (FormModel, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return FormModel{}, fmt.Errorf("model: %s: document is empty", source)
	}

	var def FormModel
	if trimmed[0] == '{' {
		decoder := json.NewDecoder(bytes.NewReader(trimmed))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&def); err != nil {
			return FormModel{}, fmt.Errorf("model: %s: decode json: %w", source, err)
		}
	} else {
		decoder := yaml.NewDecoder(bytes.NewReader(trimmed))
		decoder.KnownFields(true)
		if err := decoder.Decode(&def); err != nil {
			return FormModel{}, fmt.Errorf("model: %s: decode yaml: %w", source, err)
		}
	}

	if err := Validate(def); err != nil {
		return FormModel{}, fmt.Errorf("%w (%s)", err, source)
	}
	return def, nil
}

// LoadFile reads and parses a definition file.
func LoadFile(path string) (FormModel, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return FormModel{}, fmt.Errorf("model: %w", err)
	}
	return Parse(data, path)
}

// Marshal encodes def as YAML, or as indented JSON when format is "json".
func Marshal(def FormModel, format string) ([]byte, error) {
	if strings.EqualFold(format, "json") {
		return json.MarshalIndent(def, "", "  ")
	}
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(def); err != nil {
		return nil, fmt.Errorf("model: encode yaml: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
