// Package rewrite annotates slot assignments in equipment-set source files
// with HP priorities. It scans only the structure it needs (slot keys,
// string and table literals) and copies every other byte verbatim.
package rewrite

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/cory-johannsen/hpprio/internal/gear"
)

// Scorer computes the priority of an item found in a set file.
// *scoring.Engine satisfies Scorer.
type Scorer interface {
	ScoreByName(slot gear.Slot, name string, augments []string, inline bool) int
}

// ParseError reports a slot value that could not be scanned. The document
// is not rewritten when one occurs.
type ParseError struct {
	// Key is the slot key as written.
	Key string
	// Offset is the byte offset where the value was expected.
	Offset int
	// Line is the 1-based line of Offset.
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("rewrite: %s value at line %d (offset %d): %v", e.Key, e.Line, e.Offset, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Result summarizes one transformation pass.
type Result struct {
	// Output is the rewritten document.
	Output string
	// Assignments counts slot assignments found.
	Assignments int
	// Scored counts assignments whose item name was understood and scored.
	Scored int
	// Changes counts assignments whose priority numeral appeared, changed
	// or disappeared.
	Changes int
}

// Transformer rewrites slot values in a document.
type Transformer struct {
	scorer Scorer
	logger *zap.Logger
}

// NewTransformer creates a Transformer.
//
// Precondition: scorer and logger must be non-nil.
// Postcondition: Returns a non-nil Transformer.
func NewTransformer(scorer Scorer, logger *zap.Logger) *Transformer {
	return &Transformer{scorer: scorer, logger: logger}
}

// Transform rewrites every slot assignment in src in one left-to-right pass.
//
// Postcondition: on success, Output differs from src only inside slot values,
// and Transform(Output) yields Output again with zero Changes when scores are
// unchanged. On a *ParseError the Result is empty.
func (t *Transformer) Transform(src string) (Result, error) {
	var (
		out    strings.Builder
		res    Result
		cursor int
	)
	out.Grow(len(src) + len(src)/8)

	for {
		a, ok := Locate(src, cursor)
		if !ok {
			break
		}
		span, err := ScanValue(src, a.ValueFrom)
		if err == nil && span.End <= a.ValueFrom {
			err = ErrNoValue
		}
		if err != nil {
			return Result{}, &ParseError{
				Key:    a.Key,
				Offset: a.ValueFrom,
				Line:   lineOf(src, a.ValueFrom),
				Err:    err,
			}
		}

		res.Assignments++
		out.WriteString(src[cursor:span.Start])
		text := src[span.Start:span.End]
		rewritten, scored, changed := t.rewriteAssignment(a, text, lineOf(src, span.Start))
		out.WriteString(rewritten)
		if scored {
			res.Scored++
		}
		if changed {
			res.Changes++
		}
		cursor = span.End
	}
	out.WriteString(src[cursor:])

	res.Output = out.String()
	return res, nil
}

func (t *Transformer) rewriteAssignment(a Assignment, text string, line int) (string, bool, bool) {
	v := ParseValue(text)
	if !v.HasName || v.Name == "" {
		return text, false, false
	}

	priority := t.scorer.ScoreByName(a.Slot, v.Name, v.Augments, v.HasAugments)
	rewritten := RewriteValue(text, priority)

	changed := v.HasPriority != (priority > 0) || (v.HasPriority && v.Priority != priority)
	if changed {
		t.logger.Debug("priority changed",
			zap.String("key", a.Key),
			zap.String("item", v.Name),
			zap.Int("line", line),
			zap.Int("old", v.Priority),
			zap.Int("new", priority),
		)
	}
	return rewritten, true, changed
}
