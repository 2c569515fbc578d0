package resource

import (
	"fmt"

	"github.com/cory-johannsen/hpprio/internal/gear"
)

// Store holds item definitions indexed by id and by lower-cased name.
// It satisfies scoring.ResourceStore. A Store is read-only once built and
// safe for concurrent reads.
type Store struct {
	items  map[int]*ItemDef
	byName map[string]int
}

// NewStore returns an empty Store.
//
// Postcondition: all internal maps are initialised.
func NewStore() *Store {
	return &Store{
		items:  make(map[int]*ItemDef),
		byName: make(map[string]int),
	}
}

// NewStoreFrom builds a Store from defs.
//
// Postcondition: returns an error on the first duplicate id.
func NewStoreFrom(defs []*ItemDef) (*Store, error) {
	s := NewStore()
	for _, d := range defs {
		if err := s.Register(d); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Register adds d to the store. Both Name and NameLong resolve to d; when two
// items share a name the lower id wins.
//
// Precondition: d must not be nil.
// Postcondition: Item(d.ID) returns (d, true); returns error if d.ID already registered.
func (s *Store) Register(d *ItemDef) error {
	if _, exists := s.items[d.ID]; exists {
		return fmt.Errorf("resource: Store.Register: item ID %d already registered", d.ID)
	}
	s.items[d.ID] = d
	for _, n := range []string{d.Name, d.NameLong} {
		if n == "" {
			continue
		}
		key := gear.LowerName(n)
		if cur, ok := s.byName[key]; !ok || d.ID < cur {
			s.byName[key] = d.ID
		}
	}
	return nil
}

// Item returns the ItemDef for id and whether it was found.
func (s *Store) Item(id int) (*ItemDef, bool) {
	d, ok := s.items[id]
	return d, ok
}

// Len returns the number of registered items.
func (s *Store) Len() int { return len(s.items) }

// BaseHPMods returns the item's HP modifier, or 0 for an unknown id.
func (s *Store) BaseHPMods(id int) int {
	if d, ok := s.items[id]; ok {
		return d.Mods.HP
	}
	return 0
}

// ItemName returns the item's display name.
func (s *Store) ItemName(id int) (string, bool) {
	d, ok := s.items[id]
	if !ok {
		return "", false
	}
	return d.Name, true
}

// Description returns the item's description, or "" for an unknown id.
func (s *Store) Description(id int) string {
	if d, ok := s.items[id]; ok {
		return d.Description
	}
	return ""
}

// ItemID resolves name, ignoring case, against both short and long names.
func (s *Store) ItemID(name string) (int, bool) {
	id, ok := s.byName[gear.LowerName(name)]
	return id, ok
}
