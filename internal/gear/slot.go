// Package gear defines the equipment-slot vocabulary and item-name
// normalization shared by the scoring engine and the set-file rewriter.
package gear

import "sort"

// Slot is a canonical equipment slot identifier.
type Slot string

const (
	SlotMain      Slot = "main"
	SlotSub       Slot = "sub"
	SlotRange     Slot = "range"
	SlotAmmo      Slot = "ammo"
	SlotHead      Slot = "head"
	SlotBody      Slot = "body"
	SlotHands     Slot = "hands"
	SlotLegs      Slot = "legs"
	SlotFeet      Slot = "feet"
	SlotNeck      Slot = "neck"
	SlotWaist     Slot = "waist"
	SlotLeftEar   Slot = "left_ear"
	SlotRightEar  Slot = "right_ear"
	SlotLeftRing  Slot = "left_ring"
	SlotRightRing Slot = "right_ring"
	SlotBack      Slot = "back"
)

// slotKeys maps every accepted key spelling to its canonical slot.
// Canonical names map to themselves.
var slotKeys = map[string]Slot{
	"main":       SlotMain,
	"sub":        SlotSub,
	"range":      SlotRange,
	"ranged":     SlotRange,
	"ammo":       SlotAmmo,
	"head":       SlotHead,
	"body":       SlotBody,
	"hands":      SlotHands,
	"legs":       SlotLegs,
	"feet":       SlotFeet,
	"neck":       SlotNeck,
	"waist":      SlotWaist,
	"left_ear":   SlotLeftEar,
	"lear":       SlotLeftEar,
	"ear1":       SlotLeftEar,
	"right_ear":  SlotRightEar,
	"rear":       SlotRightEar,
	"ear2":       SlotRightEar,
	"left_ring":  SlotLeftRing,
	"lring":      SlotLeftRing,
	"ring1":      SlotLeftRing,
	"right_ring": SlotRightRing,
	"rring":      SlotRightRing,
	"ring2":      SlotRightRing,
	"back":       SlotBack,
}

// LookupSlot resolves a key spelling (canonical or alias) to its canonical slot.
//
// Postcondition: ok is true iff key is in the slot vocabulary; matching is case-sensitive.
func LookupSlot(key string) (Slot, bool) {
	s, ok := slotKeys[key]
	return s, ok
}

// SlotKeys returns every accepted key spelling in lexicographic order.
func SlotKeys() []string {
	out := make([]string, 0, len(slotKeys))
	for k := range slotKeys {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Slots returns the canonical slots in equipment display order.
func Slots() []Slot {
	return []Slot{
		SlotMain, SlotSub, SlotRange, SlotAmmo,
		SlotHead, SlotNeck, SlotLeftEar, SlotRightEar,
		SlotBody, SlotHands, SlotLeftRing, SlotRightRing,
		SlotBack, SlotWaist, SlotLegs, SlotFeet,
	}
}
