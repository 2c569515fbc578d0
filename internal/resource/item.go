// Package resource loads the static item table: ids, names, descriptions and
// HP mods for every item a set file may mention.
package resource

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Mods holds the item stat modifiers relevant to scoring.
type Mods struct {
	HP int `yaml:"hp"`
	MP int `yaml:"mp"`
}

// ItemDef defines the static properties of an item loaded from YAML.
type ItemDef struct {
	ID   int    `yaml:"id"`
	Name string `yaml:"name"`
	// NameLong is the untruncated display name, when the game abbreviates Name.
	NameLong    string `yaml:"name_long"`
	Description string `yaml:"description"`
	Mods        Mods   `yaml:"mods"`
}

// Validate checks that the ItemDef satisfies its invariants.
//
// Precondition: d is non-nil.
// Postcondition: returns nil iff all fields are valid.
func (d *ItemDef) Validate() error {
	var errs []error
	if d.ID <= 0 {
		errs = append(errs, fmt.Errorf("ID must be > 0, got %d", d.ID))
	}
	if d.Name == "" {
		errs = append(errs, errors.New("Name must not be empty"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("item %d validation failed: %w", d.ID, errors.Join(errs...))
	}
	return nil
}

type itemFile struct {
	Items []*ItemDef `yaml:"items"`
}

// ParseItems decodes an item table document and validates every entry.
//
// Postcondition: returns all ItemDefs or the first invalid one's error.
func ParseItems(data []byte) ([]*ItemDef, error) {
	var f itemFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing item table: %w", err)
	}
	for _, d := range f.Items {
		if d == nil {
			return nil, errors.New("parsing item table: empty item entry")
		}
		if err := d.Validate(); err != nil {
			return nil, err
		}
	}
	return f.Items, nil
}

// LoadFile reads one item table file.
//
// Precondition: path is a readable YAML file with a top-level items list.
// Postcondition: returns all valid ItemDefs or an error naming path.
func LoadFile(path string) ([]*ItemDef, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("LoadFile: cannot read file %q: %w", path, err)
	}
	items, err := ParseItems(data)
	if err != nil {
		return nil, fmt.Errorf("LoadFile: %q: %w", path, err)
	}
	return items, nil
}

// LoadDir reads every *.yaml and *.yml file in dir in name order.
//
// Precondition: dir is a readable directory path.
// Postcondition: returns all valid ItemDefs or the first encountered error.
func LoadDir(dir string) ([]*ItemDef, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("LoadDir: cannot read directory %q: %w", dir, err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	var items []*ItemDef
	for _, entry := range entries {
		ext := filepath.Ext(entry.Name())
		if entry.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		defs, err := LoadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		items = append(items, defs...)
	}
	return items, nil
}

// Load reads path as a directory when it is one, otherwise as a single file.
func Load(path string) ([]*ItemDef, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("resource: %w", err)
	}
	if info.IsDir() {
		return LoadDir(path)
	}
	return LoadFile(path)
}
