package rewrite

import "github.com/cory-johannsen/hpprio/internal/gear"

// Assignment is one "<slot> = <value>" occurrence located in a document.
type Assignment struct {
	// Slot is the canonical slot the key resolves to.
	Slot gear.Slot
	// Key is the slot key exactly as written in the document.
	Key string
	// KeySpan covers the key through the '='.
	KeySpan Span
	// ValueFrom is the offset just past the '='; the value starts at or after it.
	ValueFrom int
}

// Locate finds the first slot assignment at or after from. Keys are matched
// as whole identifiers that are not field accesses (no preceding '.'), and
// never inside string literals or comments. "==" is not an assignment.
//
// Postcondition: ok is false when no further assignment exists.
func Locate(src string, from int) (Assignment, bool) {
	if from < 0 {
		from = 0
	}
	i := from
	for i < len(src) {
		c := src[i]
		switch {
		case isQuote(c):
			i, _ = scanString(src, i)
			continue
		case isComment(src, i):
			i, _ = skipComment(src, i)
			continue
		case c == '[':
			if level, ok := longBracket(src, i); ok {
				i, _ = skipLong(src, i, level)
				continue
			}
		case isIdentStart(c):
			end := scanIdent(src, i)
			if i > 0 && (isIdentChar(src[i-1]) || src[i-1] == '.') {
				i = end
				continue
			}
			if a, ok := matchAssignment(src, i, end); ok {
				return a, true
			}
			i = end
			continue
		}
		i++
	}
	return Assignment{}, false
}

func matchAssignment(src string, start, end int) (Assignment, bool) {
	key := src[start:end]
	slot, ok := gear.LookupSlot(key)
	if !ok {
		return Assignment{}, false
	}
	eq := skipSpace(src, end)
	if eq >= len(src) || src[eq] != '=' {
		return Assignment{}, false
	}
	if eq+1 < len(src) && src[eq+1] == '=' {
		return Assignment{}, false
	}
	return Assignment{
		Slot:      slot,
		Key:       key,
		KeySpan:   Span{start, eq + 1},
		ValueFrom: eq + 1,
	}, true
}
