package model

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-formgate/pkg/rules"
)

// Registry stores named custom validators referenced by custom rules.
type Registry struct {
	mu         sync.RWMutex
	validators map[string]rules.CustomFunc
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		validators: make(map[string]rules.CustomFunc),
	}
}

// DefaultRegistry returns a registry preloaded with the built-in checks:
// "fullName", "noWhitespace" and "notCommonPassword".
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.MustRegister("fullName", rules.FullNameCheck)
	r.MustRegister("noWhitespace", noWhitespace)
	r.MustRegister("notCommonPassword", notCommonPassword)
	return r
}

// Register adds a validator under name. Duplicate names return an error.
func (r *Registry) Register(name string, check rules.CustomFunc) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("model: validator name is required")
	}
	if check == nil {
		return fmt.Errorf("model: validator %q is nil", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.validators[name]; exists {
		return fmt.Errorf("model: validator %q already registered", name)
	}
	r.validators[name] = check
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(name string, check rules.CustomFunc) {
	if err := r.Register(name, check); err != nil {
		panic(err)
	}
}

// Get retrieves a validator by name.
func (r *Registry) Get(name string) (rules.CustomFunc, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	check, ok := r.validators[name]
	return check, ok
}

// Has reports whether a validator is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.Get(name)
	return ok
}

// List returns the registered names in sorted order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.validators))
	for name := range r.validators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func noWhitespace(value string) string {
	if strings.ContainsAny(value, " \t\r\n") {
		return "Must not contain spaces"
	}
	return ""
}

var commonPasswords = map[string]struct{}{
	"password":   {},
	"12345678":   {},
	"qwerty123":  {},
	"admin123":   {},
	"letmein":    {},
	"welcome123": {},
}

func notCommonPassword(value string) string {
	if _, ok := commonPasswords[strings.ToLower(value)]; ok {
		return "Password is too common"
	}
	return ""
}
