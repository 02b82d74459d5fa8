package model

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

//go:embed presets/*.yaml
var presetFS embed.FS

// PresetNames lists the embedded form definitions.
func PresetNames() []string {
	entries, err := fs.ReadDir(presetFS, "presets")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), path.Ext(entry.Name())))
	}
	sort.Strings(names)
	return names
}

// Preset returns the embedded definition with the given name.
func Preset(name string) (FormModel, error) {
	file := path.Join("presets", name+".yaml")
	data, err := presetFS.ReadFile(file)
	if err != nil {
		return FormModel{}, fmt.Errorf("model: preset %q not found", name)
	}
	return Parse(data, file)
}

// Presets returns every embedded definition keyed by name.
func Presets() (map[string]FormModel, error) {
	names := PresetNames()
	out := make(map[string]FormModel, len(names))
	for _, name := range names {
		def, err := Preset(name)
		if err != nil {
			return nil, err
		}
		out[name] = def
	}
	return out, nil
}
