package scoring

import (
	"sync"

	"go.uber.org/zap"

	"github.com/cory-johannsen/hpprio/internal/augment"
	"github.com/cory-johannsen/hpprio/internal/gear"
)

// AugmentIndex maps normalized item names to the best augment HP observed
// across every owned copy. It is built on the first Lookup and never
// rebuilt; it is safe for concurrent use.
type AugmentIndex struct {
	inventory Inventory
	resources ResourceStore
	decoder   AugmentDecoder
	logger    *zap.Logger

	once sync.Once
	best map[string]int
}

// NewAugmentIndex creates an unbuilt index.
//
// Precondition: all arguments must be non-nil.
// Postcondition: no inventory access happens until the first Lookup.
func NewAugmentIndex(inventory Inventory, resources ResourceStore, decoder AugmentDecoder, logger *zap.Logger) *AugmentIndex {
	return &AugmentIndex{
		inventory: inventory,
		resources: resources,
		decoder:   decoder,
		logger:    logger,
	}
}

// Lookup returns the best augment HP recorded for name.
//
// Postcondition: the index is built exactly once across all calls.
func (x *AugmentIndex) Lookup(name string) (int, bool) {
	x.once.Do(x.build)
	hp, ok := x.best[gear.NormalizeName(name)]
	return hp, ok
}

// Len returns the number of distinct names in the index, building it if needed.
func (x *AugmentIndex) Len() int {
	x.once.Do(x.build)
	return len(x.best)
}

func (x *AugmentIndex) build() {
	x.best = make(map[string]int)
	items := x.inventory.AllItems()
	skipped := 0
	for _, it := range items {
		name, ok := x.resources.ItemName(it.ID)
		if !ok || name == "" {
			skipped++
			continue
		}
		augs, ok := x.decoder.Decode(it.Raw)
		if !ok {
			skipped++
			continue
		}
		hp := augment.ListHP(augment.Filter(augs))
		key := gear.NormalizeName(name)
		if cur, seen := x.best[key]; !seen || hp > cur {
			x.best[key] = hp
		}
	}
	x.logger.Debug("built inventory augment index",
		zap.Int("items", len(items)),
		zap.Int("skipped", skipped),
		zap.Int("names", len(x.best)),
	)
}
