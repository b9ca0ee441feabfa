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

// Package report carries the structured events of a substitution pass from
// the engine to whoever renders them.
package report

import (
	"fmt"

	"github.com/walteh/decktext/pkg/document"
)

// Node names the document element a Visit describes
type Node int

const (
	NodeDocument Node = iota
	NodeSlide
	NodeShape
	NodeTextFrame
	NodeParagraph
	NodeRun
	NodeTable
	NodeCell
	NodeChart
	NodeCategory
)

var nodeNames = [...]string{"Presentation", "Slide", "Shape", "TextFrame", "Paragraph", "Run", "Table", "Cell", "Chart", "Category"}

func (n Node) String() string {
	if n < 0 || int(n) >= len(nodeNames) {
		return fmt.Sprintf("Node(%d)", int(n))
	}
	return nodeNames[n]
}

// 🔍 Visit is emitted for every element the traversal walks past.
//
// Field use depends on Node:
//
//	Document   Text=name
//	Slide      Index=position ID Text=title Skipped
//	Shape      Index ID Kind
//	TextFrame  Text Skipped
//	Paragraph  Index Text
//	Run        Paragraph Index Text
//	Table      Row=rows Col=cols Skipped
//	Cell       Row Col Text
//	Chart      Kind=chart type Skipped
//	Category   Index Text
type Visit struct {
	Level     int
	Node      Node
	Index     int
	Paragraph int
	Row       int
	Col       int
	ID        int
	Kind      string
	Text      string
	Skipped   bool
}

// Target is the kind of text a Location points into
type Target int

const (
	TargetRun Target = iota
	TargetCategory
)

// 📍 Location pins an event to a slide, a shape and a run or category
type Location struct {
	Slide     int
	ShapeID   int
	ShapeKind document.Kind
	Target    Target
	Paragraph int
	Run       int
	Category  int
}

func (l Location) String() string {
	base := fmt.Sprintf("Slide[%d].%s[id=%d]", l.Slide, l.ShapeKind, l.ShapeID)
	if l.Target == TargetCategory {
		return fmt.Sprintf("%s.Category[%d]", base, l.Category)
	}
	return fmt.Sprintf("%s.Run[%d,%d]", base, l.Paragraph, l.Run)
}

// 🎯 Match is one attempt of a rule against a container. For text frames
// Start, Text and Replacement describe the occurrence being spliced; for
// categories Text and Replacement are the label before and after the rule.
type Match struct {
	Level       int
	Location    Location
	Pattern     string
	Found       bool
	Regex       bool
	Start       int
	Text        string
	Replacement string
}

// ✏️ Rewrite is emitted after a run's text or a category label changed
type Rewrite struct {
	Level    int
	Location Location
	// Pattern is set for category rewrites
	Pattern string
	Before  string
	After   string
}

// Severity of an Issue
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

func (s Severity) String() string {
	if s == SeverityError {
		return "ERROR"
	}
	return "WARNING"
}

// ⚠️ Issue is an advisory warning or a recovered error
type Issue struct {
	Severity Severity
	Message  string
}

func (i Issue) String() string {
	return i.Severity.String() + ": " + i.Message
}

// Reporter receives the events of a pass. Implementations must not touch the
// document.
type Reporter interface {
	Visit(Visit)
	Match(Match)
	Rewrite(Rewrite)
	Issue(Issue)
}

// Nop discards everything
type Nop struct{}

func (Nop) Visit(Visit)     {}
func (Nop) Match(Match)     {}
func (Nop) Rewrite(Rewrite) {}
func (Nop) Issue(Issue)     {}

// 📝 Recorder keeps every event in memory
type Recorder struct {
	Visits   []Visit
	Matches  []Match
	Rewrites []Rewrite
	Issues   []Issue
}

func (r *Recorder) Visit(v Visit)     { r.Visits = append(r.Visits, v) }
func (r *Recorder) Match(m Match)     { r.Matches = append(r.Matches, m) }
func (r *Recorder) Rewrite(w Rewrite) { r.Rewrites = append(r.Rewrites, w) }
func (r *Recorder) Issue(i Issue)     { r.Issues = append(r.Issues, i) }

type multi []Reporter

// Multi fans every event out to each reporter in order
func Multi(reporters ...Reporter) Reporter {
	return multi(reporters)
}

func (m multi) Visit(v Visit) {
	for _, r := range m {
		r.Visit(v)
	}
}

func (m multi) Match(mt Match) {
	for _, r := range m {
		r.Match(mt)
	}
}

func (m multi) Rewrite(w Rewrite) {
	for _, r := range m {
		r.Rewrite(w)
	}
}

func (m multi) Issue(i Issue) {
	for _, r := range m {
		r.Issue(i)
	}
}
