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

package log

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Printable escapes control and unassigned characters as \uXXXX (or
// \UXXXXXXXX above the BMP). Newlines are kept.
func Printable(text string) string {
	if strings.IndexFunc(text, needsEscape) < 0 {
		return text
	}
	var sb strings.Builder
	for _, r := range text {
		if !needsEscape(r) {
			sb.WriteRune(r)
			continue
		}
		if r <= 0xFFFF {
			fmt.Fprintf(&sb, "\\u%04x", r)
		} else {
			fmt.Fprintf(&sb, "\\U%08x", r)
		}
	}
	return sb.String()
}

func needsEscape(r rune) bool {
	if r == '\n' {
		return false
	}
	if unicode.IsControl(r) {
		return true
	}
	// unassigned code points belong to none of the general categories
	return !unicode.In(r, unicode.L, unicode.M, unicode.N, unicode.P, unicode.S, unicode.Z, unicode.C)
}

// 🔍 Diff renders the change from before to after as one line, deletions as
// [-text-] and insertions as {+text+}, coloured when the console allows it.
func Diff(before, after string) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffCleanupSemantic(dmp.DiffMain(before, after, false))

	var sb strings.Builder
	for _, d := range diffs {
		text := Printable(d.Text)
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			sb.WriteString(deleted.Sprint("[-" + text + "-]"))
		case diffmatchpatch.DiffInsert:
			sb.WriteString(inserted.Sprint("{+" + text + "+}"))
		default:
			sb.WriteString(text)
		}
	}
	return sb.String()
}
