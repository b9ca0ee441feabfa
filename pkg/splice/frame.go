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

// 📦 SpliceFrame replaces the match starting at rune offset start of the frame's
// flattened text (see FrameText).
//
// A match may cross paragraph breaks. The "\n" separator counts as one matched
// rune but is never removed; the replacement keeps flowing into the next
// paragraph's spans. Replacement text still left when the match ends on a
// separator is appended to the last span written.
//
// The second result is false when some replacement text had nowhere to go,
// which only happens for paragraphs without any spans. Such text is dropped
// and never lands in a neighbouring paragraph.
func SpliceFrame(frame document.TextFrame, start int, match, replacement string) ([]Edit, bool) {
	paras := frame.Paragraphs()
	m, r := []rune(match), []rune(replacement)
	pos := start

	pi := 0
	for ; pi < len(paras); pi++ {
		n := paragraphLen(paras[pi])
		if pos < n || (pos == n && (len(m) == 0 || pi == len(paras)-1)) {
			break
		}
		if pos == n {
			// the match begins with the separator after this paragraph
			m = m[1:]
			pos = 0
			pi++
			break
		}
		pos -= n + 1
	}

	var (
		edits []Edit
		last  document.Span
		lastE Edit
	)
	for ; pi < len(paras); pi++ {
		if len(m) == 0 && len(r) == 0 {
			break
		}
		spans := paras[pi].Spans()
		rem, es := Splice(spans, pos, m, r)
		for _, e := range es {
			e.Paragraph = pi
			edits = append(edits, e)
			last, lastE = spans[e.Span], e
		}
		if rem.Done() {
			return edits, true
		}
		if len(rem.Match) == 0 {
			// the match ended in a paragraph without spans; its replacement
			// never moves on to a later paragraph
			return edits, false
		}

		m, r, pos = rem.Match, rem.Replacement, 0
		if len(m) > 0 && pi < len(paras)-1 {
			m = m[1:]
		}
		if len(m) == 0 && (last != nil || pi == len(paras)-1) {
			break
		}
	}

	switch {
	case len(m) == 0 && len(r) == 0:
		return edits, true
	case len(m) == 0 && last != nil:
		before := last.Text()
		after := before + string(r)
		Rewrite(last, after)
		edits = append(edits, Edit{Paragraph: lastE.Paragraph, Span: lastE.Span, Before: before, After: after})
		return edits, true
	default:
		return edits, false
	}
}

func paragraphLen(p document.Paragraph) int {
	n := 0
	for _, s := range p.Spans() {
		n += utf8.RuneCountInString(s.Text())
	}
	return n
}
