// Package augment extracts HP contributions from free-form augment and
// description text.
//
// A single text blob describes one stat, so repeated figures inside it are
// reduced to their maximum. An augment list holds independent stat lines, so
// figures across entries are summed.
package augment

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	hpPlusRe = regexp.MustCompile(`(?i)\bHP\s*\+\s*(\d+)`)
	// The bare form also matches the number in "Converts N MP to HP"; both
	// forms are kept so either spelling is recognised on its own.
	mpToHPRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bconverts\s+(\d+)\s*MP\s+to\s+HP\b`),
		regexp.MustCompile(`(?i)\b(\d+)\s*MP\s+to\s+HP\b`),
	}
)

// HPPlus returns every "HP+<n>" figure in text, in order of appearance.
func HPPlus(text string) []int {
	var out []int
	for _, m := range hpPlusRe.FindAllStringSubmatch(text, -1) {
		if n, ok := atoi(m[1]); ok {
			out = append(out, n)
		}
	}
	return out
}

// MPToHP returns the largest "MP to HP" conversion in text, or 0.
func MPToHP(text string) int {
	best := 0
	for _, re := range mpToHPRes {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			if n, ok := atoi(m[1]); ok && n > best {
				best = n
			}
		}
	}
	return best
}

// DescriptionHP scores a single description blob: the largest HP+ figure
// (never below zero) plus the largest MP-to-HP conversion.
//
// Postcondition: result >= 0.
func DescriptionHP(text string) int {
	best := 0
	for _, n := range HPPlus(text) {
		if n > best {
			best = n
		}
	}
	return best + MPToHP(text)
}

// EntryHP scores one augment line: every HP+ figure summed, plus the
// largest MP-to-HP conversion on that line.
func EntryHP(entry string) int {
	total := 0
	for _, n := range HPPlus(entry) {
		total += n
	}
	return total + MPToHP(entry)
}

// ListHP scores an augment list by summing EntryHP over all entries.
//
// Postcondition: ListHP(a) == Σ EntryHP(a[i]); order of entries is irrelevant.
func ListHP(augments []string) int {
	total := 0
	for _, a := range augments {
		total += EntryHP(a)
	}
	return total
}

// Filter drops empty entries and the literal "none", preserving order.
//
// Postcondition: the returned slice is a new slice; augments is not modified.
func Filter(augments []string) []string {
	out := make([]string, 0, len(augments))
	for _, a := range augments {
		trimmed := strings.TrimSpace(a)
		if trimmed == "" || strings.EqualFold(trimmed, "none") {
			continue
		}
		out = append(out, a)
	}
	return out
}

// atoi parses a digit run, rejecting values that overflow int.
func atoi(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
