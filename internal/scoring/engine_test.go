package scoring_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/hpprio/internal/gear"
	"github.com/cory-johannsen/hpprio/internal/scoring"
)

func testResources() fakeResources {
	return fakeResources{
		100: {name: "Nyame Helm"},
		101: {name: "Sakpata's Breastplate", desc: "DEF:150 HP+136 STR+30", hp: 0},
		102: {name: "Odnowa Earring +1", desc: "HP+110 Converts 150 MP to HP", hp: 0},
		103: {name: "Moonlight Cape", hp: 275},
		104: {name: "Plat. Mog. Belt", desc: "HP+10%"},
		105: {name: "Knight's Beads +2", hp: 0},
		106: {name: "Cryptic Earring", desc: "HP+40", hp: 0},
	}
}

func newEngine(t *testing.T, player scoring.PlayerState, lookup scoring.AugmentLookup) *scoring.Engine {
	t.Helper()
	return scoring.NewEngine(testResources(), player, lookup, nil, zaptest.NewLogger(t))
}

func TestScoreItem_BasePlusAugments(t *testing.T) {
	e := newEngine(t, nil, nil)
	got := e.ScoreItem(gear.SlotBody, 101, "Sakpata's Breastplate", []string{"HP+20", "HP+15"})
	assert.Equal(t, 136+35, got)
}

func TestScoreItem_DescriptionConversion(t *testing.T) {
	e := newEngine(t, nil, nil)
	assert.Equal(t, 110+150, e.ScoreItem(gear.SlotLeftEar, 102, "Odnowa Earring +1", nil))
}

func TestScoreItem_ResourceModsAndFilteredAugments(t *testing.T) {
	e := newEngine(t, nil, nil)
	assert.Equal(t, 275+25, e.ScoreItem(gear.SlotBack, 103, "Moonlight Cape", []string{"none", ""}),
		"unity override raises empty augment HP")
}

// Belt: waist, Plat. Mog. Belt, max HP 2786 → 253.
func TestScoreItem_BeltFormula(t *testing.T) {
	e := newEngine(t, fakePlayer{hp: 2786, known: true}, nil)
	assert.Equal(t, 253, e.ScoreItem(gear.SlotWaist, 104, "Plat. Mog. Belt", []string{"HP+50"}))
}

func TestScoreByName_BeltLongSpelling(t *testing.T) {
	e := newEngine(t, fakePlayer{hp: 2786, known: true}, nil)
	assert.Equal(t, 253, e.ScoreByName(gear.SlotWaist, "PLATINUM MOOGLE BELT", nil, false))
}

func TestScoreByName_BeltUnknownMaxHPFallsBack(t *testing.T) {
	e := newEngine(t, fakePlayer{known: false}, nil)
	assert.Equal(t, 10, e.ScoreByName(gear.SlotWaist, "Plat. Mog. Belt", nil, false),
		"additive scoring reads HP+10 from the description")
}

func TestScoreByName_BeltOutsideWaistIsAdditive(t *testing.T) {
	e := newEngine(t, fakePlayer{hp: 2786, known: true}, nil)
	assert.Equal(t, 10+30, e.ScoreByName(gear.SlotBody, "Plat. Mog. Belt", []string{"HP+30"}, true))
}

func TestScoreByName_UnresolvedNameIsBaseZero(t *testing.T) {
	e := newEngine(t, nil, nil)
	assert.Equal(t, 0, e.ScoreByName(gear.SlotNeck, "Sibyl Scarf", nil, false))
	assert.Equal(t, 25, e.ScoreByName(gear.SlotNeck, "Sibyl Scarf", []string{"HP+25"}, true))
}

func TestScoreByName_InlineAugmentsBeatInventory(t *testing.T) {
	lookup := scoring.FixedAugments{"nyamehelm": 90}
	e := newEngine(t, nil, lookup)
	assert.Equal(t, 0, e.ScoreByName(gear.SlotHead, "Nyame Helm", []string{"Path: B"}, true))
	assert.Equal(t, 0, e.ScoreByName(gear.SlotHead, "Nyame Helm", nil, true),
		"an empty inline augment table is still inline")
	assert.Equal(t, 90, e.ScoreByName(gear.SlotHead, "Nyame Helm", nil, false))
}

// An item whose parsed augment HP is 80 but whose override is 50 keeps 80.
func TestScoreByName_OverrideNeverLowers(t *testing.T) {
	e := newEngine(t, nil, nil)
	assert.Equal(t, 80, e.ScoreByName(gear.SlotNeck, "Warrior's Beads +2", []string{"HP+80"}, true))
	assert.Equal(t, 50, e.ScoreByName(gear.SlotNeck, "Warrior's Beads +2", []string{"HP+10"}, true))
}

func TestScoreByName_JSENeckNormalizedKey(t *testing.T) {
	e := newEngine(t, nil, nil)
	assert.Equal(t, 60, e.ScoreByName(gear.SlotNeck, "Kgt. Bead Necklace +2", nil, false))
}

func TestScoreByName_UnityExactMatchOnly(t *testing.T) {
	e := newEngine(t, nil, nil)
	assert.Equal(t, 40+40, e.ScoreByName(gear.SlotLeftEar, "cryptic earring", nil, false))
	assert.Equal(t, 0, e.ScoreByName(gear.SlotLeftEar, "Cryptic Earring +1", nil, false))
}

func TestIsPlatinumMoogleBelt(t *testing.T) {
	for _, name := range []string{"Plat. Mog. Belt", "plat. mog. belt", "Platinum Moogle Belt", "Plat.Mog.Belt"} {
		assert.True(t, scoring.IsPlatinumMoogleBelt(name), name)
	}
	for _, name := range []string{"Platinum Belt", "Mog. Belt", "Plat. Mog. Belt +1"} {
		assert.False(t, scoring.IsPlatinumMoogleBelt(name), name)
	}
}

func TestProperty_BeltFormula(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		maxHP := rapid.IntRange(1, 20000).Draw(rt, "max_hp")
		e := scoring.NewEngine(testResources(), fakePlayer{hp: maxHP, known: true}, nil, nil, zaptest.NewLogger(t))
		assert.Equal(rt, maxHP/11, e.ScoreByName(gear.SlotWaist, "Plat. Mog. Belt", nil, false))
	})
}

func TestProperty_OverrideRaiseOnly(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		parsed := rapid.IntRange(0, 1000).Draw(rt, "parsed")
		override := rapid.IntRange(0, 1000).Draw(rt, "override")
		o, err := scoring.NewOverrides(map[string]int{"Test Ring": override}, nil)
		require.NoError(rt, err)
		got := o.Apply("TEST RING", parsed)
		assert.Equal(rt, max(parsed, override), got)
	})
}
