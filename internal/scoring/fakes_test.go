package scoring_test

import (
	"strings"

	"github.com/cory-johannsen/hpprio/internal/scoring"
)

type fakeItem struct {
	name string
	desc string
	hp   int
}

type fakeResources map[int]fakeItem

func (f fakeResources) BaseHPMods(id int) int { return f[id].hp }

func (f fakeResources) ItemName(id int) (string, bool) {
	it, ok := f[id]
	return it.name, ok
}

func (f fakeResources) Description(id int) string { return f[id].desc }

func (f fakeResources) ItemID(name string) (int, bool) {
	for id, it := range f {
		if strings.EqualFold(it.name, name) {
			return id, true
		}
	}
	return 0, false
}

type fakePlayer struct {
	hp    int
	known bool
}

func (p fakePlayer) MaxHP() (int, bool) { return p.hp, p.known }

type fakeInventory struct {
	items []scoring.InventoryItem
	calls int
}

func (f *fakeInventory) AllItems() []scoring.InventoryItem {
	f.calls++
	return f.items
}

// sliceDecoder decodes payloads that are already []string; anything else
// is undecodable.
type sliceDecoder struct{}

func (sliceDecoder) Decode(raw any) ([]string, bool) {
	augs, ok := raw.([]string)
	return augs, ok
}
