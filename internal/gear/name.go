package gear

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// nameSynonyms collapse spelling variants of the same item. Applied in order
// after punctuation and whitespace have been removed.
var nameSynonyms = []struct{ from, to string }{
	{"necklace", ""},
	{"beads", "bead"},
	{"warriors", "war"},
	{"knights", "kgt"},
}

// LowerName returns name lower-cased. This is the key form used for exact
// name matches such as belt detection and the Unity override table.
func LowerName(name string) string {
	// Casers carry state; one per call keeps this safe for concurrent use.
	return cases.Lower(language.Und).String(name)
}

// NormalizeName returns the aggressive lookup key for name: lower-cased,
// stripped of every character except ASCII letters, digits and '+', with
// known synonyms collapsed. "Warrior's Beads +2" and "War. Bead Necklace +2"
// both normalize to "warbead+2".
func NormalizeName(name string) string {
	lower := LowerName(name)
	var b strings.Builder
	b.Grow(len(lower))
	for _, r := range lower {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '+' {
			b.WriteRune(r)
		}
	}
	key := b.String()
	for _, s := range nameSynonyms {
		key = strings.ReplaceAll(key, s.from, s.to)
	}
	return key
}
