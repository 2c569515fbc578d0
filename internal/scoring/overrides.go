package scoring

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/hpprio/internal/gear"
)

//go:embed overrides.yaml
var defaultOverridesYAML []byte

// overridesFile is the on-disk schema of an override table file.
type overridesFile struct {
	Version int            `yaml:"version"`
	Unity   map[string]int `yaml:"unity"`
	JSENeck map[string]int `yaml:"jse_neck"`
}

// Overrides holds the fixed augment-HP tables.
type Overrides struct {
	// unity is keyed by gear.LowerName.
	unity map[string]int
	// jseNeck is keyed by gear.NormalizeName.
	jseNeck map[string]int
}

// NewOverrides builds override tables from raw name→HP maps.
//
// Precondition: every value must be >= 0.
// Postcondition: returns tables keyed by their lookup forms, or an error.
func NewOverrides(unity, jseNeck map[string]int) (*Overrides, error) {
	o := &Overrides{
		unity:   make(map[string]int, len(unity)),
		jseNeck: make(map[string]int, len(jseNeck)),
	}
	var errs []error
	for name, hp := range unity {
		if hp < 0 {
			errs = append(errs, fmt.Errorf("unity override %q: HP must be >= 0, got %d", name, hp))
			continue
		}
		o.unity[gear.LowerName(name)] = hp
	}
	for name, hp := range jseNeck {
		if hp < 0 {
			errs = append(errs, fmt.Errorf("jse_neck override %q: HP must be >= 0, got %d", name, hp))
			continue
		}
		o.jseNeck[gear.NormalizeName(name)] = hp
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return o, nil
}

// ParseOverrides decodes an override table file.
//
// Postcondition: returns non-nil Overrides or a non-nil error.
func ParseOverrides(data []byte) (*Overrides, error) {
	var f overridesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing overrides: %w", err)
	}
	if f.Version != 1 {
		return nil, fmt.Errorf("parsing overrides: unsupported version %d", f.Version)
	}
	return NewOverrides(f.Unity, f.JSENeck)
}

// LoadOverrides reads override tables from path; an empty path yields the
// built-in tables.
func LoadOverrides(path string) (*Overrides, error) {
	if path == "" {
		return DefaultOverrides(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading overrides %q: %w", path, err)
	}
	return ParseOverrides(data)
}

// DefaultOverrides returns the built-in override tables.
func DefaultOverrides() *Overrides {
	o, err := ParseOverrides(defaultOverridesYAML)
	if err != nil {
		panic(fmt.Sprintf("scoring: embedded overrides invalid: %v", err))
	}
	return o
}

// Apply raises augHP to the Unity override for name and then to the
// JSE-neck override, never lowering it.
//
// Postcondition: result >= augHP.
func (o *Overrides) Apply(name string, augHP int) int {
	if o == nil {
		return augHP
	}
	if hp, ok := o.unity[gear.LowerName(name)]; ok && hp > augHP {
		augHP = hp
	}
	if hp, ok := o.jseNeck[gear.NormalizeName(name)]; ok && hp > augHP {
		augHP = hp
	}
	return augHP
}
