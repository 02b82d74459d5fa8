package model

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// Catalog holds named form definitions, keyed by their ID.
type Catalog struct {
	mu    sync.RWMutex
	forms map[string]FormModel
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{forms: make(map[string]FormModel)}
}

// DefaultCatalog returns a catalog holding the embedded presets.
func DefaultCatalog() (*Catalog, error) {
	presets, err := Presets()
	if err != nil {
		return nil, err
	}
	c := NewCatalog()
	for _, def := range presets {
		if err := c.Add(def); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Add validates def and stores it, replacing any definition with the same ID.
func (c *Catalog) Add(def FormModel) error {
	if err := Validate(def); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.forms[def.ID] = def
	return nil
}

// LoadDir adds every .yaml, .yml and .json definition found directly in dir.
func (c *Catalog) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("model: read forms dir: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".yaml", ".yml", ".json":
		default:
			continue
		}
		def, err := LoadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return err
		}
		if err := c.Add(def); err != nil {
			return err
		}
	}
	return nil
}

// Get returns the definition stored under id.
func (c *Catalog) Get(id string) (FormModel, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	def, ok := c.forms[id]
	return def, ok
}

// Names lists the stored IDs in sorted order.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.forms))
	for name := range c.forms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
