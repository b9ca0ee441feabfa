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

package document

import "context"

// 📄 Document is a loaded presentation
type Document interface {
	// Slides returns the slides in presentation order
	Slides() []Slide
	// Save writes the (possibly modified) document to path
	Save(ctx context.Context, path string) error
}

// 🖼️ Slide is a single slide of a document
type Slide interface {
	ID() int
	// Title returns the text of the title placeholder, or "" when there is none
	Title() string
	Shapes() []Shape
}

// 🔷 Shape is an element placed on a slide or inside a group
type Shape interface {
	ID() int
	Name() string
	Content() Content
}

// ✏️ Span is the smallest independently formatted piece of text
type Span interface {
	Text() string
	SetText(text string)
	Formatting() Formatting
	SetFormatting(f Formatting)
}

// 📃 Paragraph is an ordered sequence of spans
type Paragraph interface {
	Spans() []Span
}

// 📦 TextFrame is an ordered sequence of paragraphs
type TextFrame interface {
	Paragraphs() []Paragraph
}

// 📊 Table is a grid of text frames
type Table interface {
	Rows() int
	Cols() int
	Cell(row, col int) TextFrame
}

// 📈 Chart exposes the category labels and series of a category chart
type Chart interface {
	// Type returns the backend name of the chart type (e.g. "barChart")
	Type() string
	Categories() []string
	Series() []Series
	// ReplaceDataset swaps categories and series in one step. It returns an
	// error wrapping ErrDataset when the dataset does not fit the chart.
	ReplaceDataset(categories []string, series []Series) error
}

// Kind discriminates shape content
type Kind int

const (
	KindPlain Kind = iota
	KindTextFrame
	KindTable
	KindGroup
	KindChart
)

func (k Kind) String() string {
	switch k {
	case KindPlain:
		return "Plain"
	case KindTextFrame:
		return "TextFrame"
	case KindTable:
		return "Table"
	case KindGroup:
		return "Group"
	case KindChart:
		return "Chart"
	default:
		return "Unknown"
	}
}

// 🧩 Content is the closed set of things a shape can hold.
// Implementations: PlainContent, TextContent, TableContent, GroupContent, ChartContent.
type Content interface {
	Kind() Kind
	sealed()
}

// PlainContent is a shape without editable text (pictures, connectors, ...)
type PlainContent struct {
	// Type is a backend-specific description, e.g. "pic"
	Type string
}

// TextContent is a shape carrying a text frame
type TextContent struct {
	Frame TextFrame
}

// TableContent is a shape carrying a table
type TableContent struct {
	Table Table
}

// GroupContent is a group of nested shapes
type GroupContent struct {
	Shapes []Shape
}

// ChartContent is a shape carrying a chart
type ChartContent struct {
	Chart Chart
}

func (PlainContent) Kind() Kind { return KindPlain }
func (TextContent) Kind() Kind  { return KindTextFrame }
func (TableContent) Kind() Kind { return KindTable }
func (GroupContent) Kind() Kind { return KindGroup }
func (ChartContent) Kind() Kind { return KindChart }

func (PlainContent) sealed() {}
func (TextContent) sealed()  {}
func (TableContent) sealed() {}
func (GroupContent) sealed() {}
func (ChartContent) sealed() {}
