// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package splice

import (
	"unicode/utf8"

	"github.com/walteh/decktext/pkg/document"
)

// 📝 Edit records a single span rewrite
type Edit struct {
	// Paragraph is the paragraph index inside the frame (0 for a bare paragraph)
	Paragraph int
	// Span is the span index inside the paragraph
	Span   int
	Before string
	After  string
}

// Remainder is the part of a match and its replacement that did not fit into
// the spans handed to Splice. Both are empty once the match is consumed.
type Remainder struct {
	Match       []rune
	Replacement []rune
}

// Done reports whether nothing is left to carry forward
func (r Remainder) Done() bool {
	return len(r.Match) == 0 && len(r.Replacement) == 0
}

// ✂️ Splice replaces the match starting at rune offset pos of the spans' flattened
// text with replacement.
//
// Every span overlapped by the match keeps the part of the new text that falls
// inside its old boundaries: a span the match runs through absorbs at most as
// many replacement runes as it had matched runes, and the span where the match
// ends receives whatever replacement text is left, followed by its own
// unmatched suffix. Spans are never added or removed and their formatting is
// written back unchanged after each text write.
//
// When the spans run out before the match does, the unconsumed match and
// replacement runes are returned so the caller can continue in the next paragraph.
func Splice(spans []document.Span, pos int, match, replacement []rune) (Remainder, []Edit) {
	i := 0
	for ; i < len(spans); i++ {
		n := utf8.RuneCountInString(spans[i].Text())
		if pos < n {
			break
		}
		// a zero-length match at the very end lands in the last span
		if pos == n && len(match) == 0 && i == len(spans)-1 {
			break
		}
		pos -= n
	}
	if i == len(spans) {
		return Remainder{Match: match, Replacement: replacement}, nil
	}

	var edits []Edit
	for ; i < len(spans); i++ {
		span := spans[i]
		before := span.Text()
		text := []rune(before)
		if len(text) == 0 && len(match) > 0 {
			continue
		}
		end := pos + len(match)

		var after string
		switch {
		case end < len(text):
			after = string(text[:pos]) + string(replacement) + string(text[end:])
			match, replacement = nil, nil
		case end == len(text):
			after = string(text[:pos]) + string(replacement)
			match, replacement = nil, nil
		default:
			overlap := len(text) - pos
			take := min(overlap, len(replacement))
			after = string(text[:pos]) + string(replacement[:take])
			replacement = replacement[take:]
			match = match[overlap:]
			pos = 0
		}

		Rewrite(span, after)
		edits = append(edits, Edit{Span: i, Before: before, After: after})

		if len(match) == 0 {
			return Remainder{}, edits
		}
	}
	return Remainder{Match: match, Replacement: replacement}, edits
}

// 🖋️ Rewrite sets the text of span and reapplies the formatting it had before
// the write. Some backends reset run properties when the text changes.
func Rewrite(span document.Span, text string) {
	f := span.Formatting()
	span.SetText(text)
	span.SetFormatting(f)
}
