// Package edit applies positional replacements to a source string.
//
// Producers collect every edit against the original text first and apply
// them in a single pass. Edits are applied in descending start order so an
// edit never shifts the offsets of an edit that has not been applied yet.
// Overlapping edits are not detected; producers guarantee non-overlap.
package edit

import (
	"sort"
	"strings"
)

// Edit replaces source[Start:End] with Replacement. Start == End is an
// insertion, an empty Replacement is a removal.
type Edit struct {
	Start       int
	End         int
	Replacement string
}

// Insert returns an edit inserting text at pos.
func Insert(pos int, text string) Edit {
	return Edit{Start: pos, End: pos, Replacement: text}
}

// Remove returns an edit deleting source[start:end].
func Remove(start, end int) Edit {
	return Edit{Start: start, End: end}
}

// Replace returns an edit replacing source[start:end] with text.
func Replace(start, end int, text string) Edit {
	return Edit{Start: start, End: end, Replacement: text}
}

// Sort orders edits by descending start. Ties are broken by descending end
// and then by replacement text so the order never depends on the order the
// edits were produced in.
func Sort(edits []Edit) {
	sort.SliceStable(edits, func(i, j int) bool {
		a, b := edits[i], edits[j]
		if a.Start != b.Start {
			return a.Start > b.Start
		}
		if a.End != b.End {
			return a.End > b.End
		}
		return a.Replacement > b.Replacement
	})
}

// Apply returns text with all edits applied. The input slice is not
// modified. Offsets outside text are clamped.
func Apply(text string, edits []Edit) string {
	if len(edits) == 0 {
		return text
	}

	sorted := make([]Edit, len(edits))
	copy(sorted, edits)
	Sort(sorted)

	// Walk from the end of the text towards the start, copying untouched
	// segments and replacements into a list that is reversed at the end.
	parts := make([]string, 0, 2*len(sorted)+1)
	tail := len(text)
	for _, e := range sorted {
		start, end := clamp(e.Start, len(text)), clamp(e.End, len(text))
		if end < start {
			end = start
		}
		if end > tail {
			// Overlap with an already applied edit; keep what is left of
			// this one rather than duplicating text.
			end = tail
			if start > end {
				start = end
			}
		}
		parts = append(parts, text[end:tail], e.Replacement)
		tail = start
	}
	parts = append(parts, text[:tail])

	var sb strings.Builder
	sb.Grow(len(text))
	for i := len(parts) - 1; i >= 0; i-- {
		sb.WriteString(parts[i])
	}
	return sb.String()
}

// ApplyRange rewrites the sub-range text[start:end], applying only the edits
// that fall entirely inside it. The returned string is the rewritten
// sub-range on its own.
func ApplyRange(text string, start, end int, edits []Edit) string {
	start, end = clamp(start, len(text)), clamp(end, len(text))
	if end < start {
		return ""
	}
	return Apply(text[start:end], Within(edits, start, end))
}

// Within returns the edits that lie entirely inside [start, end], shifted so
// that offset start becomes offset 0.
func Within(edits []Edit, start, end int) []Edit {
	var out []Edit
	for _, e := range edits {
		if e.Start >= start && e.End <= end {
			out = append(out, Edit{Start: e.Start - start, End: e.End - start, Replacement: e.Replacement})
		}
	}
	return out
}

func clamp(v, max int) int {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}
