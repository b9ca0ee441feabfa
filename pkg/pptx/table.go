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

package pptx

import (
	"github.com/beevik/etree"
	"github.com/walteh/decktext/pkg/document"
)

// table is an a:tbl; merged cells still carry their own text body
type table struct {
	cells [][]*frame
	cols  int
}

func newTable(pt *part, tbl *etree.Element) *table {
	t := &table{cols: len(children(child(tbl, "tblGrid"), "gridCol"))}
	for _, tr := range children(tbl, "tr") {
		var row []*frame
		for _, tc := range children(tr, "tc") {
			row = append(row, newFrame(pt, child(tc, "txBody")))
		}
		t.cols = max(t.cols, len(row))
		t.cells = append(t.cells, row)
	}
	return t
}

func (t *table) Rows() int { return len(t.cells) }
func (t *table) Cols() int { return t.cols }

func (t *table) Cell(row, col int) document.TextFrame {
	if row < 0 || row >= len(t.cells) || col < 0 || col >= len(t.cells[row]) {
		return nil
	}
	return t.cells[row][col]
}
