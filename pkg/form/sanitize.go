package form

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	valuePolicyOnce sync.Once
	valuePolicy     *bluemonday.Policy
)

// SanitizeValue strips markup from a user supplied value. Text content is
// kept and entities escaped by the policy are decoded again so the stored
// value stays plain text.
func SanitizeValue(raw string) string {
	if raw == "" || !strings.ContainsAny(raw, "<>&") {
		return raw
	}
	cleaned := valueSanitizer().Sanitize(raw)
	return html.UnescapeString(cleaned)
}

func valueSanitizer() *bluemonday.Policy {
	valuePolicyOnce.Do(func() {
		valuePolicy = bluemonday.StrictPolicy()
	})
	return valuePolicy
}
