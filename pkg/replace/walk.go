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

package replace

import (
	"github.com/walteh/decktext/pkg/document"
	"github.com/walteh/decktext/pkg/report"
	"github.com/walteh/decktext/pkg/splice"
)

// shapes visits a shape list depth first; groups recurse without limit
func (p *pass) shapes(level int, shapes []document.Shape) error {
	for i, shape := range shapes {
		content := shape.Content()
		kind := content.Kind()
		if pc, ok := content.(document.PlainContent); ok && pc.Type != "" {
			p.rep.Visit(report.Visit{Level: level, Node: report.NodeShape, Index: i, ID: shape.ID(), Kind: kind.String() + ":" + pc.Type})
		} else {
			p.rep.Visit(report.Visit{Level: level, Node: report.NodeShape, Index: i, ID: shape.ID(), Kind: kind.String()})
		}

		loc := report.Location{Slide: p.slide, ShapeID: shape.ID(), ShapeKind: kind}

		switch c := content.(type) {
		case document.PlainContent:
		case document.TextContent:
			if !p.opts.TextFrames {
				p.rep.Visit(report.Visit{Level: level + 1, Node: report.NodeTextFrame, Skipped: true})
				continue
			}
			if err := p.textFrame(level+1, loc, c.Frame); err != nil {
				return err
			}
		case document.TableContent:
			if err := p.table(level+1, loc, c.Table); err != nil {
				return err
			}
		case document.GroupContent:
			if err := p.shapes(level+1, c.Shapes); err != nil {
				return err
			}
		case document.ChartContent:
			if err := p.chart(level+1, loc, c.Chart); err != nil {
				return err
			}
		}
	}
	return nil
}

func (p *pass) table(level int, loc report.Location, t document.Table) error {
	rows, cols := t.Rows(), t.Cols()
	p.rep.Visit(report.Visit{Level: level, Node: report.NodeTable, Row: rows, Col: cols, Skipped: !p.opts.Tables})
	if !p.opts.Tables {
		return nil
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			cell := t.Cell(r, c)
			if cell == nil {
				continue
			}
			p.rep.Visit(report.Visit{Level: level + 1, Node: report.NodeCell, Row: r, Col: c, Text: splice.FrameText(cell)})
			if err := p.textFrame(level+2, loc, cell); err != nil {
				return err
			}
		}
	}
	return nil
}

// textFrame reports the frame's structure and then runs every rule over it
func (p *pass) textFrame(level int, loc report.Location, frame document.TextFrame) error {
	p.rep.Visit(report.Visit{Level: level, Node: report.NodeTextFrame, Text: splice.FrameText(frame)})
	for pi, para := range frame.Paragraphs() {
		p.rep.Visit(report.Visit{Level: level + 1, Node: report.NodeParagraph, Index: pi, Text: splice.ParagraphText(para)})
		for ri, span := range para.Spans() {
			p.rep.Visit(report.Visit{Level: level + 2, Node: report.NodeRun, Paragraph: pi, Index: ri, Text: span.Text()})
		}
	}
	return p.replaceFrame(level+1, loc, frame)
}
