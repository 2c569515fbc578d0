package rewrite

import "errors"

var (
	// ErrNoValue is returned when no literal value begins at the scan offset.
	ErrNoValue = errors.New("no value")
	// ErrUnterminated is returned when a string or table literal never closes.
	ErrUnterminated = errors.New("unterminated literal")
)

// Span is a half-open byte range [Start, End) within a document.
type Span struct {
	Start, End int
}

// Len returns the number of bytes in the span.
func (s Span) Len() int { return s.End - s.Start }

// ScanValue finds the single literal value beginning at or after from,
// skipping leading whitespace. The value is a quoted string, a brace table,
// or a bare token running up to the next ',', '}', newline or comment.
//
// Postcondition: on success the span is non-empty and rescanning from
// Span.Start returns the same span. When nothing can be scanned the result is
// Span{from, from} with ErrNoValue; an unterminated literal returns the
// best-effort span with ErrUnterminated.
func ScanValue(src string, from int) (Span, error) {
	if from < 0 || from >= len(src) {
		return Span{from, from}, ErrNoValue
	}
	i := skipSpace(src, from)
	if i >= len(src) {
		return Span{from, from}, ErrNoValue
	}

	switch c := src[i]; {
	case isQuote(c):
		end, ok := scanString(src, i)
		if !ok {
			return Span{i, end}, ErrUnterminated
		}
		return Span{i, end}, nil
	case c == '{':
		end, ok := scanTable(src, i)
		if !ok {
			return Span{i, end}, ErrUnterminated
		}
		return Span{i, end}, nil
	case c == ',' || c == '}' || c == ';' || isComment(src, i):
		return Span{from, from}, ErrNoValue
	}

	j := i
	for j < len(src) && src[j] != ',' && src[j] != '}' && src[j] != '\n' && !isComment(src, j) {
		j++
	}
	for j > i && isSpace(src[j-1]) {
		j--
	}
	return Span{i, j}, nil
}

// scanTable consumes the brace table opening at i, tracking depth. Strings,
// long strings and comments inside are skipped so their braces and quotes
// never affect depth.
func scanTable(src string, i int) (int, bool) {
	depth := 0
	for j := i; j < len(src); {
		c := src[j]
		switch {
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return j + 1, true
			}
		case isQuote(c):
			end, ok := scanString(src, j)
			if !ok {
				return end, false
			}
			j = end
			continue
		case isComment(src, j):
			end, ok := skipComment(src, j)
			if !ok {
				return end, false
			}
			j = end
			continue
		case c == '[':
			if level, ok := longBracket(src, j); ok {
				end, closed := skipLong(src, j, level)
				if !closed {
					return end, false
				}
				j = end
				continue
			}
		}
		j++
	}
	return len(src), false
}
