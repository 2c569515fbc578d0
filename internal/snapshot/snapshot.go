// Package snapshot reads a player's exported equipment, inventory and stats.
//
// A snapshot is a Lua chunk that returns one table:
//
//	return {
//	  player = { max_hp = 2786 },
//	  equipment = {
//	    head  = { id = 23375, augments = { "Path: B" } },
//	    waist = 26366,
//	  },
//	  bags = {
//	    inventory = { { id = 14813 }, { id = 26282, augments = { "HP+20" } } },
//	    wardrobe  = { },
//	  },
//	}
//
// The chunk runs in a sandboxed, instruction-limited interpreter, so an export
// may compute values but cannot touch the filesystem.
package snapshot

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/hpprio/internal/gear"
	"github.com/cory-johannsen/hpprio/internal/scoring"
)

// ErrNotTable is returned when a snapshot chunk does not return a table.
var ErrNotTable = errors.New("snapshot: chunk must return a table")

// Record is one item instance. It is the raw payload carried by
// scoring.InventoryItem and understood by Snapshot.Decode.
type Record struct {
	ID int
	// Augments is the decoded augment text; valid when HasAugments.
	Augments    []string
	HasAugments bool
}

// Equipped is an item in an equipment slot.
type Equipped struct {
	Slot   gear.Slot
	Record Record
}

// Snapshot is an immutable view of exported player state. It satisfies
// scoring.Inventory, scoring.AugmentDecoder and scoring.PlayerState.
type Snapshot struct {
	maxHP     int
	equipment map[gear.Slot]Record
	bags      map[string][]Record
}

// Empty returns a Snapshot with no items and unknown max HP.
func Empty() *Snapshot {
	return &Snapshot{
		equipment: make(map[gear.Slot]Record),
		bags:      make(map[string][]Record),
	}
}

// Load reads and evaluates the snapshot chunk at path.
//
// Precondition: instLimit >= 0; 0 uses DefaultInstructionLimit.
// Postcondition: Returns a non-nil Snapshot or an error naming path.
func Load(path string, instLimit int, logger *zap.Logger) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("snapshot: reading %q: %w", path, err)
	}
	s, err := Parse(string(data), path, instLimit, logger)
	if err != nil {
		return nil, fmt.Errorf("snapshot: loading %q: %w", path, err)
	}
	return s, nil
}

// Parse evaluates src as a snapshot chunk. name labels Lua error messages.
//
// Postcondition: Returns a non-nil Snapshot or a non-nil error. Unknown slot
// keys and malformed item entries are skipped with a warning.
func Parse(src, name string, instLimit int, logger *zap.Logger) (*Snapshot, error) {
	L, cancel := NewSandboxedState(instLimit)
	defer cancel()
	defer L.Close()

	fn, err := L.Load(strings.NewReader(src), name)
	if err != nil {
		return nil, err
	}
	L.Push(fn)
	if err := L.PCall(0, 1, nil); err != nil {
		return nil, err
	}
	root, ok := L.Get(-1).(*lua.LTable)
	if !ok {
		return nil, ErrNotTable
	}

	s := Empty()
	if player, ok := root.RawGetString("player").(*lua.LTable); ok {
		if n, ok := player.RawGetString("max_hp").(lua.LNumber); ok && n > 0 {
			s.maxHP = int(n)
		}
	}

	if equipment, ok := root.RawGetString("equipment").(*lua.LTable); ok {
		equipment.ForEach(func(k, v lua.LValue) {
			key, isString := k.(lua.LString)
			if !isString {
				return
			}
			slot, known := gear.LookupSlot(string(key))
			if !known {
				logger.Warn("skipping unknown equipment slot", zap.String("slot", string(key)))
				return
			}
			rec, ok := decodeRecord(v)
			if !ok {
				logger.Warn("skipping malformed equipment entry", zap.String("slot", string(key)))
				return
			}
			s.equipment[slot] = rec
		})
	}

	if bags, ok := root.RawGetString("bags").(*lua.LTable); ok {
		bags.ForEach(func(k, v lua.LValue) {
			bag, isString := k.(lua.LString)
			items, isTable := v.(*lua.LTable)
			if !isString || !isTable {
				return
			}
			var recs []Record
			for i := 1; i <= items.Len(); i++ {
				rec, ok := decodeRecord(items.RawGetInt(i))
				if !ok {
					logger.Warn("skipping malformed bag entry", zap.String("bag", string(bag)), zap.Int("index", i))
					continue
				}
				recs = append(recs, rec)
			}
			s.bags[string(bag)] = recs
		})
	}

	logger.Debug("loaded snapshot",
		zap.String("name", name),
		zap.Int("max_hp", s.maxHP),
		zap.Int("equipped", len(s.equipment)),
		zap.Int("bags", len(s.bags)),
	)
	return s, nil
}

// decodeRecord accepts either a bare item id or { id = N, augments = {...} }.
func decodeRecord(v lua.LValue) (Record, bool) {
	switch tv := v.(type) {
	case lua.LNumber:
		if tv <= 0 {
			return Record{}, false
		}
		return Record{ID: int(tv)}, true
	case *lua.LTable:
		id, ok := tv.RawGetString("id").(lua.LNumber)
		if !ok || id <= 0 {
			return Record{}, false
		}
		rec := Record{ID: int(id)}
		if augs, ok := tv.RawGetString("augments").(*lua.LTable); ok {
			rec.HasAugments = true
			for i := 1; i <= augs.Len(); i++ {
				if s, ok := augs.RawGetInt(i).(lua.LString); ok {
					rec.Augments = append(rec.Augments, string(s))
				}
			}
		}
		return rec, true
	}
	return Record{}, false
}

// MaxHP returns the player's max HP; ok is false when the export had none.
func (s *Snapshot) MaxHP() (int, bool) {
	return s.maxHP, s.maxHP > 0
}

// Equipped returns the equipped items in slot display order.
func (s *Snapshot) Equipped() []Equipped {
	var out []Equipped
	for _, slot := range gear.Slots() {
		if rec, ok := s.equipment[slot]; ok {
			out = append(out, Equipped{Slot: slot, Record: rec})
		}
	}
	return out
}

// AllItems returns every owned item: equipped items first in slot order,
// then each bag in name order.
//
// Postcondition: every Raw is a Record.
func (s *Snapshot) AllItems() []scoring.InventoryItem {
	var out []scoring.InventoryItem
	for _, e := range s.Equipped() {
		out = append(out, scoring.InventoryItem{ID: e.Record.ID, Raw: e.Record})
	}
	names := make([]string, 0, len(s.bags))
	for name := range s.bags {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		for _, rec := range s.bags[name] {
			out = append(out, scoring.InventoryItem{ID: rec.ID, Raw: rec})
		}
	}
	return out
}

// Decode returns the augment text of a Record payload.
//
// Postcondition: ok is false for any other payload or a record exported
// without an augments table.
func (s *Snapshot) Decode(raw any) ([]string, bool) {
	rec, ok := raw.(Record)
	if !ok || !rec.HasAugments {
		return nil, false
	}
	return rec.Augments, true
}
