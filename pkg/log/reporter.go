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

	"github.com/fatih/color"
	"github.com/walteh/decktext/pkg/report"
)

var _ report.Reporter = (*Logger)(nil)

func indent(level int) string {
	return strings.Repeat("  ", level)
}

// println writes one console line; callers hold l.mu
func (l *Logger) println(format string, args ...any) {
	fmt.Fprintf(l.console, format+"\n", args...)
}

// 🔍 Visit prints the structure walk in verbose mode
func (l *Logger) Visit(v report.Visit) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.zlog.Debug().
		Str("node", v.Node.String()).
		Int("level", v.Level).
		Int("index", v.Index).
		Bool("skipped", v.Skipped).
		Msg("visit")

	if l.verbosity < Verbose {
		return
	}

	in := indent(v.Level)
	skipped := func(level int) {
		if v.Skipped {
			l.println("%s... skipped", indent(level))
		}
	}

	switch v.Node {
	case report.NodeDocument:
		l.println("%sPresentation[%s]", in, v.Text)
	case report.NodeSlide:
		l.println("%sSlide[%d, id=%d] with title '%s'", in, v.Index, v.ID, Printable(v.Text))
		skipped(v.Level + 1)
	case report.NodeShape:
		l.println("%sShape[%d, id=%d, type=%s]", in, v.Index, v.ID, v.Kind)
	case report.NodeTextFrame:
		if v.Skipped {
			skipped(v.Level)
			return
		}
		l.println("%sTextFrame: '%s'", in, Printable(v.Text))
	case report.NodeParagraph:
		l.println("%sParagraph[%d]: '%s'", in, v.Index, Printable(v.Text))
	case report.NodeRun:
		l.println("%sRun[%d,%d]: '%s'", in, v.Paragraph, v.Index, Printable(v.Text))
	case report.NodeTable:
		l.println("%sTable[%d,%d]", in, v.Row, v.Col)
		skipped(v.Level + 1)
	case report.NodeCell:
		l.println("%sCell[%d,%d]: '%s'", in, v.Row, v.Col, Printable(v.Text))
	case report.NodeChart:
		l.println("%sChart of type %s", in, v.Kind)
		skipped(v.Level + 1)
	case report.NodeCategory:
		l.println("%sCategory[%d] '%s'", in, v.Index, Printable(v.Text))
	}
}

// 🎯 Match prints every rule attempt in verbose mode
func (l *Logger) Match(m report.Match) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.zlog.Debug().
		Stringer("location", m.Location).
		Str("pattern", m.Pattern).
		Bool("found", m.Found).
		Int("start", m.Start).
		Msg("match")

	if l.verbosity < Verbose {
		return
	}

	in := indent(m.Level)
	pattern := Printable(m.Pattern)
	if m.Location.Target == report.TargetCategory {
		if !m.Found {
			l.println("%sReplacing '%s' -> no match", in, pattern)
			return
		}
		l.println("%sReplacing '%s' -> changed to '%s'", in, pattern, Printable(m.Replacement))
		return
	}

	if !m.Found {
		l.println("%sTrying to match '%s' -> no match", in, pattern)
		return
	}
	detail := ""
	if m.Regex {
		detail = fmt.Sprintf(": '%s' -> '%s'", Printable(m.Text), Printable(m.Replacement))
	}
	l.println("%sTrying to match '%s' -> matched at %d%s", in, pattern, m.Start, detail)
}

// ✏️ Rewrite prints a changed run or category
func (l *Logger) Rewrite(w report.Rewrite) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.zlog.Info().
		Stringer("location", w.Location).
		Str("before", w.Before).
		Str("after", w.After).
		Msg("rewrite")

	category := w.Location.Target == report.TargetCategory
	switch l.verbosity {
	case Quiet:
		return
	case Verbose:
		// category changes were already printed with their match
		if category {
			return
		}
		l.println("%sRun[%d,%d]: %s", indent(w.Level), w.Location.Paragraph, w.Location.Run, l.change(w.Before, w.After))
	default:
		if category {
			l.println("%s: replacing '%s' -> '%s' changed to '%s'",
				w.Location, Printable(w.Pattern), Printable(w.Before), Printable(w.After))
			return
		}
		l.println("%s: %s", w.Location, l.change(w.Before, w.After))
	}
}

// ⚠️ Issue collects warnings and errors for the closing summary
func (l *Logger) Issue(is report.Issue) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.issues = append(l.issues, is)
	if is.Severity == report.SeverityError {
		l.zlog.Error().Msg(is.Message)
		return
	}
	l.zlog.Warn().Msg(is.Message)
}

// change renders a before/after pair, or an inline diff when enabled
func (l *Logger) change(before, after string) string {
	if !l.diff {
		return fmt.Sprintf("'%s' -> '%s'", Printable(before), Printable(after))
	}
	return "'" + Diff(before, after) + "'"
}

var (
	deleted  = color.New(color.FgRed, color.CrossedOut)
	inserted = color.New(color.FgGreen, color.Underline)
)
