package model

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"
)

// ExtensionNamespace is the OpenAPI vendor extension read by the Builder,
// either as an object (`x-formgate: {label: ...}`) or as flat keys
// (`x-formgate-label`).
const ExtensionNamespace = "x-formgate"

const (
	MetadataLabel       = "label"
	MetadataPlaceholder = "placeholder"
	MetadataKind        = "kind"
	MetadataOrder       = "order"
	MetadataSanitize    = "sanitize"
	MetadataMatches     = "matches"
	MetadataMessage     = "message"
	MetadataValidator   = "validator"
	MetadataSubmitLabel = "submitLabel"
	MetadataLoadingText = "loadingText"
)

var extensionKeys = []string{
	MetadataKind,
	MetadataLabel,
	MetadataLoadingText,
	MetadataMatches,
	MetadataMessage,
	MetadataOrder,
	MetadataPlaceholder,
	MetadataSanitize,
	MetadataSubmitLabel,
	MetadataValidator,
}

// ExtensionKeys lists the keys read from x-formgate extensions, sorted.
func ExtensionKeys() []string {
	return append([]string(nil), extensionKeys...)
}

// IsExtensionKey reports whether key is read by the Builder.
func IsExtensionKey(key string) bool {
	for _, known := range extensionKeys {
		if known == key {
			return true
		}
	}
	return false
}

// ParseExtensions flattens x-formgate extensions into string metadata. It
// returns nil when no supported value is present.
func ParseExtensions(ext map[string]any) map[string]string {
	if len(ext) == 0 {
		return nil
	}

	result := make(map[string]string)
	for key, value := range ext {
		if key == ExtensionNamespace {
			nested, ok := value.(map[string]any)
			if !ok {
				continue
			}
			for nestedKey, nestedValue := range nested {
				if str, ok := CanonicalizeExtensionValue(nestedValue); ok {
					result[nestedKey] = str
				}
			}
			continue
		}
		if trimmed, ok := strings.CutPrefix(key, ExtensionNamespace+"-"); ok {
			if str, ok := CanonicalizeExtensionValue(value); ok {
				result[trimmed] = str
			}
		}
	}

	if len(result) == 0 {
		return nil
	}
	return result
}

// CanonicalizeExtensionValue turns an extension value into a deterministic
// string. It returns false for empty or unsupported values.
func CanonicalizeExtensionValue(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, v != ""
	case bool:
		return strconv.FormatBool(v), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case uint64:
		return strconv.FormatUint(v, 10), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case map[string]any, []any:
		payload, err := json.Marshal(v)
		if err != nil || string(payload) == "{}" || string(payload) == "[]" {
			return "", false
		}
		return string(payload), true
	default:
		return "", false
	}
}

func mergeMetadata(target map[string]string, updates map[string]string) {
	if target == nil || len(updates) == 0 {
		return
	}
	keys := make([]string, 0, len(updates))
	for key := range updates {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		target[key] = updates[key]
	}
}
