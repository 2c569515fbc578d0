package rewrite

import "strings"

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentChar(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

func isQuote(c byte) bool {
	return c == '"' || c == '\''
}

// skipSpace returns the first offset at or after i that is not whitespace.
func skipSpace(src string, i int) int {
	for i < len(src) && isSpace(src[i]) {
		i++
	}
	return i
}

// scanIdent returns the end of the identifier starting at i.
func scanIdent(src string, i int) int {
	for i < len(src) && isIdentChar(src[i]) {
		i++
	}
	return i
}

// scanString consumes the quoted string opening at i. A backslash escapes the
// following byte. Returns the offset just past the closing quote, or
// len(src) and false when the string never closes.
func scanString(src string, i int) (int, bool) {
	q := src[i]
	for j := i + 1; j < len(src); j++ {
		switch src[j] {
		case '\\':
			j++
		case q:
			return j + 1, true
		}
	}
	return len(src), false
}

// longBracket reports the level of a long bracket "[", "="*level, "[" opening at i.
func longBracket(src string, i int) (int, bool) {
	if i >= len(src) || src[i] != '[' {
		return 0, false
	}
	j := i + 1
	for j < len(src) && src[j] == '=' {
		j++
	}
	if j < len(src) && src[j] == '[' {
		return j - i - 1, true
	}
	return 0, false
}

// skipLong consumes the long string or long comment body opened by a bracket
// of the given level at i. Returns len(src) and false when it never closes.
func skipLong(src string, i, level int) (int, bool) {
	open := i + level + 2
	closer := "]" + strings.Repeat("=", level) + "]"
	k := strings.Index(src[open:], closer)
	if k < 0 {
		return len(src), false
	}
	return open + k + len(closer), true
}

// isComment reports whether a "--" comment starts at i.
func isComment(src string, i int) bool {
	return i+1 < len(src) && src[i] == '-' && src[i+1] == '-'
}

// skipComment consumes the comment starting at i (which must satisfy
// isComment). Line comments end before the newline.
func skipComment(src string, i int) (int, bool) {
	j := i + 2
	if level, ok := longBracket(src, j); ok {
		return skipLong(src, j, level)
	}
	if k := strings.IndexByte(src[j:], '\n'); k >= 0 {
		return j + k, true
	}
	return len(src), true
}

// unquote returns the contents of a quoted string literal with escapes resolved.
func unquote(lit string) string {
	if len(lit) < 2 || !isQuote(lit[0]) || lit[len(lit)-1] != lit[0] {
		return lit
	}
	body := lit[1 : len(lit)-1]
	if strings.IndexByte(body, '\\') < 0 {
		return body
	}
	var b strings.Builder
	b.Grow(len(body))
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' || i+1 == len(body) {
			b.WriteByte(c)
			continue
		}
		i++
		switch body[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		default:
			b.WriteByte(body[i])
		}
	}
	return b.String()
}

// lineOf returns the 1-based line number of offset in src.
func lineOf(src string, offset int) int {
	if offset > len(src) {
		offset = len(src)
	}
	return strings.Count(src[:offset], "\n") + 1
}
