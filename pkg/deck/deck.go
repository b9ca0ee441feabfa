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

// Package deck is an in-memory presentation that can be read from and
// written to YAML or JSON. It backs the text-only workflows and the tests.
//
//	slides:
//	  - id: 256
//	    title: Overview
//	    shapes:
//	      - id: 2
//	        text_frame:
//	          paragraphs:
//	            - runs:
//	                - text: "Hello "
//	                  font: {family: Arial, size: 18, bold: true}
//	                - text: "world"
//	      - id: 3
//	        chart:
//	          type: barChart
//	          categories: [Q1, Q2]
//	          series: [{name: Sales, values: [1, null]}]
package deck

import (
	"math"

	"github.com/walteh/decktext/pkg/document"
	"gitlab.com/tozd/go/errors"
)

// 📦 Deck is the root of an in-memory presentation
type Deck struct {
	Title     string   `json:"name,omitempty" yaml:"name,omitempty"`
	SlideList []*Slide `json:"slides" yaml:"slides"`

	path string
}

var _ document.Document = (*Deck)(nil)

// New builds a deck from slides
func New(slides ...*Slide) *Deck {
	return &Deck{SlideList: slides}
}

func (d *Deck) Slides() []document.Slide {
	out := make([]document.Slide, len(d.SlideList))
	for i, s := range d.SlideList {
		out[i] = s
	}
	return out
}

// Name is the deck's name, or the file it was loaded from
func (d *Deck) Name() string {
	if d.Title != "" {
		return d.Title
	}
	return d.path
}

type Slide struct {
	SlideID   int      `json:"id" yaml:"id"`
	TitleText string   `json:"title,omitempty" yaml:"title,omitempty"`
	ShapeList []*Shape `json:"shapes" yaml:"shapes"`
}

func NewSlide(id int, title string, shapes ...*Shape) *Slide {
	return &Slide{SlideID: id, TitleText: title, ShapeList: shapes}
}

func (s *Slide) ID() int       { return s.SlideID }
func (s *Slide) Title() string { return s.TitleText }

func (s *Slide) Shapes() []document.Shape {
	return shapeList(s.ShapeList)
}

func shapeList(shapes []*Shape) []document.Shape {
	out := make([]document.Shape, len(shapes))
	for i, s := range shapes {
		out[i] = s
	}
	return out
}

// 🔷 Shape carries exactly one of its content fields. A shape without any
// content is plain.
type Shape struct {
	ShapeID   int      `json:"id" yaml:"id"`
	ShapeName string   `json:"name,omitempty" yaml:"name,omitempty"`
	Plain     string   `json:"plain,omitempty" yaml:"plain,omitempty"`
	TextFrame *Frame   `json:"text_frame,omitempty" yaml:"text_frame,omitempty"`
	Table     *Table   `json:"table,omitempty" yaml:"table,omitempty"`
	Group     []*Shape `json:"group,omitempty" yaml:"group,omitempty"`
	Chart     *Chart   `json:"chart,omitempty" yaml:"chart,omitempty"`
}

func TextShape(id int, frame *Frame) *Shape {
	return &Shape{ShapeID: id, TextFrame: frame}
}

func TableShape(id int, table *Table) *Shape {
	return &Shape{ShapeID: id, Table: table}
}

func GroupShape(id int, shapes ...*Shape) *Shape {
	return &Shape{ShapeID: id, Group: shapes}
}

func ChartShape(id int, chart *Chart) *Shape {
	return &Shape{ShapeID: id, Chart: chart}
}

func PlainShape(id int, kind string) *Shape {
	return &Shape{ShapeID: id, Plain: kind}
}

func (s *Shape) ID() int      { return s.ShapeID }
func (s *Shape) Name() string { return s.ShapeName }

func (s *Shape) Content() document.Content {
	switch {
	case s.TextFrame != nil:
		return document.TextContent{Frame: s.TextFrame}
	case s.Table != nil:
		return document.TableContent{Table: s.Table}
	case s.Group != nil:
		return document.GroupContent{Shapes: shapeList(s.Group)}
	case s.Chart != nil:
		return document.ChartContent{Chart: s.Chart}
	default:
		return document.PlainContent{Type: s.Plain}
	}
}

func (s *Shape) validate() error {
	n := 0
	for _, set := range []bool{s.TextFrame != nil, s.Table != nil, s.Group != nil, s.Chart != nil} {
		if set {
			n++
		}
	}
	if n > 1 {
		return errors.Errorf("shape %d: text_frame, table, group and chart are mutually exclusive", s.ShapeID)
	}
	for _, g := range s.Group {
		if err := g.validate(); err != nil {
			return err
		}
	}
	if s.Chart != nil {
		if err := document.ValidateDataset(s.Chart.Categories(), s.Chart.Series()); err != nil {
			return errors.Errorf("shape %d: %w", s.ShapeID, err)
		}
	}
	return nil
}

type Frame struct {
	Paras []*Paragraph `json:"paragraphs" yaml:"paragraphs"`
}

func NewFrame(paras ...*Paragraph) *Frame {
	return &Frame{Paras: paras}
}

func (f *Frame) Paragraphs() []document.Paragraph {
	out := make([]document.Paragraph, len(f.Paras))
	for i, p := range f.Paras {
		out[i] = p
	}
	return out
}

type Paragraph struct {
	Runs []*Run `json:"runs" yaml:"runs"`
}

func NewParagraph(runs ...*Run) *Paragraph {
	return &Paragraph{Runs: runs}
}

func (p *Paragraph) Spans() []document.Span {
	out := make([]document.Span, len(p.Runs))
	for i, r := range p.Runs {
		out[i] = r
	}
	return out
}

// ✏️ Run is a formatted span
type Run struct {
	Value string `json:"text" yaml:"text"`
	Font  *Font  `json:"font,omitempty" yaml:"font,omitempty"`

	// Volatile makes SetText drop the font, the way some presentation
	// libraries reset run properties on a text write.
	Volatile bool `json:"-" yaml:"-"`
	// Writes counts SetText calls
	Writes int `json:"-" yaml:"-"`
}

func NewRun(text string, font *Font) *Run {
	return &Run{Value: text, Font: font}
}

func (r *Run) Text() string { return r.Value }

func (r *Run) SetText(text string) {
	r.Value = text
	r.Writes++
	if r.Volatile {
		r.Font = nil
	}
}

func (r *Run) Formatting() document.Formatting {
	return r.Font.formatting()
}

func (r *Run) SetFormatting(f document.Formatting) {
	r.Font = fontOf(f)
}

type Table struct {
	RowList []*Row `json:"rows" yaml:"rows"`
}

type Row struct {
	Cells []*Frame `json:"cells" yaml:"cells"`
}

func NewTable(rows ...[]*Frame) *Table {
	t := &Table{}
	for _, cells := range rows {
		t.RowList = append(t.RowList, &Row{Cells: cells})
	}
	return t
}

func (t *Table) Rows() int { return len(t.RowList) }

func (t *Table) Cols() int {
	n := 0
	for _, r := range t.RowList {
		n = max(n, len(r.Cells))
	}
	return n
}

// Cell returns nil for a cell missing from a ragged row
func (t *Table) Cell(row, col int) document.TextFrame {
	if row < 0 || row >= len(t.RowList) || col < 0 || col >= len(t.RowList[row].Cells) {
		return nil
	}
	if c := t.RowList[row].Cells[col]; c != nil {
		return c
	}
	return nil
}

// 📊 Chart holds a category chart's dataset. A nil value is a blank point.
type Chart struct {
	ChartType  string        `json:"type" yaml:"type"`
	Cats       []string      `json:"categories" yaml:"categories"`
	SeriesList []*SeriesData `json:"series" yaml:"series"`
}

type SeriesData struct {
	Name   string     `json:"name" yaml:"name"`
	Values []*float64 `json:"values" yaml:"values"`
}

func NewChart(kind string, categories []string, series ...document.Series) *Chart {
	c := &Chart{ChartType: kind, Cats: categories}
	c.setSeries(series)
	return c
}

func (c *Chart) Type() string { return c.ChartType }

func (c *Chart) Categories() []string {
	return append([]string(nil), c.Cats...)
}

func (c *Chart) Series() []document.Series {
	out := make([]document.Series, len(c.SeriesList))
	for i, s := range c.SeriesList {
		vals := make([]float64, len(s.Values))
		for j, v := range s.Values {
			if v == nil {
				vals[j] = math.NaN()
			} else {
				vals[j] = *v
			}
		}
		out[i] = document.Series{Name: s.Name, Values: vals}
	}
	return out
}

func (c *Chart) ReplaceDataset(categories []string, series []document.Series) error {
	if err := document.ValidateDataset(categories, series); err != nil {
		return err
	}
	c.Cats = append([]string(nil), categories...)
	c.setSeries(series)
	return nil
}

func (c *Chart) setSeries(series []document.Series) {
	c.SeriesList = make([]*SeriesData, len(series))
	for i, s := range series {
		vals := make([]*float64, len(s.Values))
		for j, v := range s.Values {
			if !math.IsNaN(v) {
				v := v
				vals[j] = &v
			}
		}
		c.SeriesList[i] = &SeriesData{Name: s.Name, Values: vals}
	}
}
