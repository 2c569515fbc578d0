// Package scoring computes HP priority scores for equipment items.
//
// All collaborators are fallible-returns-empty: an unknown id yields zero
// values rather than an error, and scoring degrades to a partial score.
package scoring

import (
	"regexp"

	"go.uber.org/zap"

	"github.com/cory-johannsen/hpprio/internal/augment"
	"github.com/cory-johannsen/hpprio/internal/gear"
)

// ResourceStore exposes static item metadata.
type ResourceStore interface {
	// BaseHPMods returns the sum of the item's HP mods, or 0.
	BaseHPMods(id int) int
	// ItemName returns the item's display name.
	ItemName(id int) (string, bool)
	// Description returns the item's description text, or "".
	Description(id int) string
	// ItemID resolves a display name (case-insensitive) to an item id.
	ItemID(name string) (int, bool)
}

// InventoryItem is one owned item instance. Raw is an opaque payload handed
// back to the AugmentDecoder that understands it.
type InventoryItem struct {
	ID  int
	Raw any
}

// Inventory enumerates every owned item in every storage container.
type Inventory interface {
	AllItems() []InventoryItem
}

// AugmentDecoder turns an item payload into augment description strings.
type AugmentDecoder interface {
	// Decode returns ok=false when raw carries no decodable augment data.
	Decode(raw any) (augments []string, ok bool)
}

// PlayerState exposes the player's current stats.
type PlayerState interface {
	// MaxHP returns ok=false when max HP is unknown.
	MaxHP() (hp int, ok bool)
}

// AugmentLookup returns the best known augment HP for an item name when no
// augment text is available. Implemented by AugmentIndex and FixedAugments.
type AugmentLookup interface {
	Lookup(name string) (hp int, ok bool)
}

// FixedAugments is an AugmentLookup over a prebuilt normalized-name map.
type FixedAugments map[string]int

// Lookup returns the entry for name's normalized form.
func (f FixedAugments) Lookup(name string) (int, bool) {
	hp, ok := f[gear.NormalizeName(name)]
	return hp, ok
}

// beltRe matches the spellings of the Platinum Moogle Belt.
var beltRe = regexp.MustCompile(`^\s*plat(?:\.|inum)\s*mo(?:g\.|ogle)\s*belt\s*$`)

// beltDivisor is the share of max HP the belt contributes.
const beltDivisor = 11

// IsPlatinumMoogleBelt reports whether name spells the Platinum Moogle Belt.
func IsPlatinumMoogleBelt(name string) bool {
	return beltRe.MatchString(gear.LowerName(name))
}

// Engine combines base HP, augment HP, overrides and the belt rule.
type Engine struct {
	resources ResourceStore
	player    PlayerState
	augments  AugmentLookup
	overrides *Overrides
	logger    *zap.Logger
}

// NewEngine creates an Engine.
//
// Precondition: resources and logger must be non-nil. player and augments
// may be nil; a nil player disables the belt rule and a nil augments lookup
// disables the inventory fallback. A nil overrides uses DefaultOverrides.
// Postcondition: Returns a non-nil Engine.
func NewEngine(resources ResourceStore, player PlayerState, augments AugmentLookup, overrides *Overrides, logger *zap.Logger) *Engine {
	if overrides == nil {
		overrides = DefaultOverrides()
	}
	return &Engine{
		resources: resources,
		player:    player,
		augments:  augments,
		overrides: overrides,
		logger:    logger,
	}
}

// ScoreItem scores a resolved item instance.
//
// Precondition: id identifies the item in the resource store; augments is the
// instance's decoded augment list.
// Postcondition: result >= 0.
func (e *Engine) ScoreItem(slot gear.Slot, id int, name string, augments []string) int {
	if hp, ok := e.beltScore(slot, name); ok {
		return hp
	}
	base := e.baseHP(id, name)
	aug := e.overrides.Apply(name, augment.ListHP(augment.Filter(augments)))
	return base + aug
}

// ScoreByName scores an item known only by name, as found in a set file.
// When inline is true augments is the item's augment table (possibly empty);
// otherwise augment HP comes from the inventory lookup.
//
// Postcondition: result >= 0; an unresolvable name contributes base HP 0.
func (e *Engine) ScoreByName(slot gear.Slot, name string, augments []string, inline bool) int {
	if hp, ok := e.beltScore(slot, name); ok {
		return hp
	}

	base := 0
	if id, ok := e.resources.ItemID(name); ok {
		base = e.baseHP(id, name)
	}

	aug := 0
	switch {
	case inline:
		aug = augment.ListHP(augment.Filter(augments))
	case e.augments != nil:
		if hp, ok := e.augments.Lookup(name); ok {
			aug = hp
		}
	}
	aug = e.overrides.Apply(name, aug)

	e.logger.Debug("scored item",
		zap.String("slot", string(slot)),
		zap.String("name", name),
		zap.Int("base_hp", base),
		zap.Int("augment_hp", aug),
		zap.Bool("inline_augments", inline),
	)
	return base + aug
}

// baseHP is the resource mod sum plus HP mined from the name and description.
func (e *Engine) baseHP(id int, name string) int {
	text := name + " " + e.resources.Description(id)
	return e.resources.BaseHPMods(id) + augment.DescriptionHP(text)
}

// beltScore applies floor(maxHP/11) when the Platinum Moogle Belt sits in
// the waist slot and max HP is known.
func (e *Engine) beltScore(slot gear.Slot, name string) (int, bool) {
	if slot != gear.SlotWaist || e.player == nil || !IsPlatinumMoogleBelt(name) {
		return 0, false
	}
	maxHP, ok := e.player.MaxHP()
	if !ok || maxHP <= 0 {
		return 0, false
	}
	return maxHP / beltDivisor, true
}
