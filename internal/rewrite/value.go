package rewrite

import (
	"errors"
	"strconv"
	"strings"
)

// Kind classifies a slot value literal.
type Kind int

const (
	// KindBare is any value that is neither a string nor a table (nil, a
	// variable reference, a function call).
	KindBare Kind = iota
	// KindString is a quoted string literal.
	KindString
	// KindTable is a brace-delimited table constructor.
	KindTable
)

// Value is what the rewriter understands of a slot value.
type Value struct {
	Kind Kind
	// Name is the item name; valid when HasName.
	Name    string
	HasName bool
	// Augments is the inline augment list; valid when HasAugments, which is
	// true whenever an augments= field exists, even an empty one.
	Augments    []string
	HasAugments bool
	// Priority is the existing numeric priority; valid when HasPriority.
	Priority    int
	HasPriority bool
}

// field is one top-level entry of a table constructor.
type field struct {
	// key is the field name for "key = value" entries, "" otherwise.
	key string
	// start and end bound the entry, from its first byte to the end of its value.
	start, end int
	// value bounds the value expression.
	value Span
	// sep is the offset of the ',' or ';' following the entry, or -1.
	sep int
	// sepEnd is the offset after sep and any whitespace following it, or -1.
	sepEnd int
}

// splitFields splits the table constructor text (which must start with '{'
// and end with the matching '}') into its top-level entries.
func splitFields(text string) []field {
	var fields []field
	last := len(text) - 1
	i := 1
	for i < last {
		i = skipSpaceAndComments(text, i, last)
		if i >= last {
			break
		}
		f, ok := scanField(text, i, last)
		if !ok {
			break
		}
		if f.end > f.start {
			fields = append(fields, f)
		}
		if f.sep < 0 {
			break
		}
		i = f.sep + 1
	}
	return fields
}

// skipSpaceAndComments advances past whitespace and comments, stopping at limit.
func skipSpaceAndComments(text string, i, limit int) int {
	for i < limit {
		switch {
		case isSpace(text[i]):
			i++
		case isComment(text, i):
			i, _ = skipComment(text, i)
		default:
			return i
		}
	}
	return i
}

// scanField reads the entry starting at i and the separator that follows it.
func scanField(text string, i, limit int) (field, bool) {
	f := field{start: i, sep: -1, sepEnd: -1}

	valueFrom := i
	if isIdentStart(text[i]) {
		end := scanIdent(text, i)
		eq := skipSpace(text, end)
		if eq < limit && text[eq] == '=' && (eq+1 >= limit || text[eq+1] != '=') {
			f.key = text[i:end]
			valueFrom = eq + 1
		}
	}

	span, err := ScanValue(text[:limit], valueFrom)
	switch {
	case errors.Is(err, ErrNoValue):
		// An empty entry such as a separator directly after another.
		f.end = f.start
		span = Span{valueFrom, valueFrom}
	case err != nil:
		return field{}, false
	default:
		f.value = span
		f.end = span.End
	}

	j := skipSpaceAndComments(text, span.End, limit)
	if j < limit && (text[j] == ',' || text[j] == ';') {
		f.sep = j
		f.sepEnd = skipSpace(text, j+1)
		if f.sepEnd > limit {
			f.sepEnd = limit
		}
	}
	return f, true
}

func findField(fields []field, key string) (field, bool) {
	for _, f := range fields {
		if f.key == key {
			return f, true
		}
	}
	return field{}, false
}

// isPriorityField reports whether f is "priority = <digits>".
func isPriorityField(text string, f field) bool {
	if f.key != "priority" || f.value.Len() == 0 {
		return false
	}
	lit := text[f.value.Start:f.value.End]
	if !isDigits(lit) {
		return false
	}
	_, err := strconv.Atoi(lit)
	return err == nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// ParseValue extracts the item name, inline augments and existing priority
// from a slot value literal.
func ParseValue(text string) Value {
	if text == "" {
		return Value{Kind: KindBare}
	}
	switch {
	case isQuote(text[0]):
		return Value{Kind: KindString, Name: unquote(text), HasName: true}
	case text[0] != '{' || text[len(text)-1] != '}':
		return Value{Kind: KindBare}
	}

	v := Value{Kind: KindTable}
	fields := splitFields(text)
	if f, ok := findField(fields, "name"); ok && f.value.Len() > 0 && isQuote(text[f.value.Start]) {
		v.Name = unquote(text[f.value.Start:f.value.End])
		v.HasName = true
	}
	if f, ok := findField(fields, "augments"); ok && f.value.Len() > 0 {
		v.HasAugments = true
		lit := text[f.value.Start:f.value.End]
		if lit[0] == '{' {
			for _, af := range splitFields(lit) {
				if af.value.Len() > 0 && isQuote(lit[af.value.Start]) {
					v.Augments = append(v.Augments, unquote(lit[af.value.Start:af.value.End]))
				}
			}
		}
	}
	for _, f := range fields {
		if isPriorityField(text, f) {
			n, _ := strconv.Atoi(text[f.value.Start:f.value.End])
			v.Priority = n
			v.HasPriority = true
		}
	}
	return v
}

// RewriteValue returns text with its priority annotation set to priority.
//
//   - A string literal stays as-is for priority 0 and otherwise becomes
//     { name=<string>, priority=<n> }.
//   - A table has every numeric priority field removed. For priority 0 a
//     table left holding only its name collapses to the bare name string;
//     otherwise ", priority=<n>" is appended after the last field.
//   - A table whose first field is name= always opens with "{ name=".
//
// Other values are returned unchanged.
//
// Postcondition: RewriteValue(RewriteValue(t, p), p) == RewriteValue(t, p).
func RewriteValue(text string, priority int) string {
	if text == "" {
		return text
	}
	switch {
	case isQuote(text[0]):
		if priority <= 0 {
			return text
		}
		return "{ name=" + text + ", priority=" + strconv.Itoa(priority) + " }"
	case text[0] != '{' || text[len(text)-1] != '}':
		return text
	}

	text = stripPriority(text)
	fields := splitFields(text)
	if len(fields) > 0 && fields[0].key == "name" && text[1:fields[0].start] != " " {
		text = "{ " + text[fields[0].start:]
		fields = splitFields(text)
	}

	if priority <= 0 {
		if len(fields) == 1 && fields[0].key == "name" && fields[0].value.Len() > 0 && isQuote(text[fields[0].value.Start]) {
			return text[fields[0].value.Start:fields[0].value.End]
		}
		return text
	}

	annotation := "priority=" + strconv.Itoa(priority)
	if len(fields) == 0 {
		return "{ " + annotation + " }"
	}
	lastField := fields[len(fields)-1]
	rest := lastField.end
	if lastField.sep >= 0 {
		rest = lastField.sep + 1
	}
	return text[:lastField.end] + ", " + annotation + text[rest:]
}

// stripPriority removes every top-level "priority = <digits>" field along
// with the separator that tied it to its neighbours.
func stripPriority(text string) string {
	for {
		fields := splitFields(text)
		idx := -1
		for i, f := range fields {
			if isPriorityField(text, f) {
				idx = i
				break
			}
		}
		if idx < 0 {
			return text
		}
		f := fields[idx]
		switch {
		case f.sep >= 0:
			text = text[:f.start] + text[f.sepEnd:]
		case idx > 0:
			text = text[:fields[idx-1].end] + text[f.end:]
		default:
			text = text[:f.start] + strings.TrimLeft(text[f.end:], " \t")
		}
	}
}
