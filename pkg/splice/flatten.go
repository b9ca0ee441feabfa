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

// Package splice rewrites the text of formatted spans in place.
//
// A paragraph's text is the concatenation of its spans; a frame's text is its
// paragraphs joined by "\n". Offsets are counted in runes and are never cached
// across a splice, because span lengths change.
package splice

import (
	"strings"
	"unicode/utf8"

	"github.com/walteh/decktext/pkg/document"
)

// Separator joins paragraphs in a frame's flattened text
const Separator = '\n'

// 📏 Flatten returns the text of spans and the rune offset where each span starts
func Flatten(spans []document.Span) (string, []int) {
	var sb strings.Builder
	offsets := make([]int, len(spans))
	pos := 0
	for i, s := range spans {
		offsets[i] = pos
		text := s.Text()
		sb.WriteString(text)
		pos += utf8.RuneCountInString(text)
	}
	return sb.String(), offsets
}

// ParagraphText returns the flattened text of a paragraph
func ParagraphText(p document.Paragraph) string {
	text, _ := Flatten(p.Spans())
	return text
}

// FrameText returns the flattened text of a frame
func FrameText(f document.TextFrame) string {
	paras := f.Paragraphs()
	parts := make([]string, len(paras))
	for i, p := range paras {
		parts[i] = ParagraphText(p)
	}
	return strings.Join(parts, string(Separator))
}
