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

// Package match locates literal and regular-expression occurrences in flattened text.
// All offsets are rune offsets so they line up with span text lengths.
package match

import (
	"strings"
	"unicode/utf8"
)

// 🎯 Match is one occurrence in a flattened text
type Match struct {
	// Start is the rune offset of the first matched rune
	Start int
	// Text is the matched text
	Text string
	// Replacement is the text that replaces Text (templates already expanded)
	Replacement string
}

// Len returns the match length in runes
func (m Match) Len() int {
	return utf8.RuneCountInString(m.Text)
}

// End returns the rune offset just past the match
func (m Match) End() int {
	return m.Start + m.Len()
}

// 🔍 FindLiteral returns the rune offset of the first occurrence of needle
// at or after start, or -1 when there is none.
func FindLiteral(haystack, needle string, start int) int {
	if start < 0 {
		start = 0
	}
	b := byteOffset(haystack, start)
	if b < 0 {
		return -1
	}
	i := strings.Index(haystack[b:], needle)
	if i < 0 {
		return -1
	}
	return start + utf8.RuneCountInString(haystack[b:b+i])
}

// FindAllLiteral returns the non-overlapping occurrences of needle, left to right
func FindAllLiteral(haystack, needle, replacement string) []Match {
	if needle == "" {
		return nil
	}
	var out []Match
	step := utf8.RuneCountInString(needle)
	for pos := FindLiteral(haystack, needle, 0); pos >= 0; pos = FindLiteral(haystack, needle, pos+step) {
		out = append(out, Match{Start: pos, Text: needle, Replacement: replacement})
	}
	return out
}

// 🔄 Apply substitutes ms (sorted by Start, non-overlapping) into text
func Apply(text string, ms []Match) string {
	if len(ms) == 0 {
		return text
	}
	runes := []rune(text)
	var sb strings.Builder
	prev := 0
	for _, m := range ms {
		sb.WriteString(string(runes[prev:m.Start]))
		sb.WriteString(m.Replacement)
		prev = m.End()
	}
	sb.WriteString(string(runes[prev:]))
	return sb.String()
}

// byteOffset converts a rune offset into a byte offset, -1 when past the end
func byteOffset(s string, runes int) int {
	n := 0
	for i := range s {
		if n == runes {
			return i
		}
		n++
	}
	if n == runes {
		return len(s)
	}
	return -1
}
