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
	"bytes"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"gitlab.com/tozd/go/errors"
)

const workbookPart = "xl/workbook.xml"

// 📒 workbook is the spreadsheet embedded behind a chart. Only the cells the
// chart formulas point at are rewritten.
type workbook struct {
	name   string
	pk     *pkg
	sheets map[string]string
}

func openWorkbook(name string, data []byte) (*workbook, error) {
	pk, err := readPackage(data)
	if err != nil {
		return nil, errors.Errorf("reading workbook %s: %w", name, err)
	}
	pt, err := pk.Part(workbookPart)
	if err != nil {
		return nil, errors.Errorf("reading workbook %s: %w", name, err)
	}
	rels, err := pk.relationships(workbookPart)
	if err != nil {
		return nil, err
	}

	wb := &workbook{name: name, pk: pk, sheets: map[string]string{}}
	for _, sh := range children(child(pt.doc.Root(), "sheets"), "sheet") {
		if target, ok := rels[sh.SelectAttrValue("r:id", "")]; ok {
			wb.sheets[sh.SelectAttrValue("name", "")] = target
		}
	}
	return wb, nil
}

// write stores values in the cells of ref, starting at its first cell and
// following its direction. Numeric values that are empty clear the cell.
func (w *workbook) write(ref cellRange, values []string, numeric bool) error {
	target, ok := w.sheets[ref.sheet]
	if !ok {
		return errors.Errorf("workbook %s has no sheet %q", w.name, ref.sheet)
	}
	pt, err := w.pk.Part(target)
	if err != nil {
		return err
	}
	data := descend(pt.doc.Root(), "sheetData")
	if data == nil {
		return errors.Errorf("sheet %q of %s has no data", ref.sheet, w.name)
	}
	for i, v := range values {
		col, row := ref.cell(i)
		setCell(rowElement(data, row), col, row, v, numeric)
	}
	pt.touch()
	return nil
}

func (w *workbook) bytes() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := w.pk.WriteTo(&buf); err != nil {
		return nil, errors.Errorf("writing workbook %s: %w", w.name, err)
	}
	return buf.Bytes(), nil
}

func rowElement(data *etree.Element, n int) *etree.Element {
	for _, r := range children(data, "row") {
		rn, _ := strconv.Atoi(r.SelectAttrValue("r", "0"))
		if rn == n {
			return r
		}
		if rn > n {
			return newChild(data, r, "row", strconv.Itoa(n))
		}
	}
	return newChild(data, nil, "row", strconv.Itoa(n))
}

func setCell(row *etree.Element, col, rowNum int, value string, numeric bool) {
	ref := columnName(col) + strconv.Itoa(rowNum)
	var cell *etree.Element
	for _, c := range children(row, "c") {
		r := c.SelectAttrValue("r", "")
		if r == ref {
			cell = c
			break
		}
		if cc, _, ok := parseCell(r); ok && cc > col {
			cell = newChild(row, c, "c", ref)
			break
		}
	}
	if cell == nil {
		cell = newChild(row, nil, "c", ref)
	}

	removeChildren(cell, "f", "v", "is")
	cell.RemoveAttr("t")
	switch {
	case value == "" && numeric:
	case numeric:
		v := etree.NewElement("v")
		v.Space = cell.Space
		v.SetText(value)
		cell.AddChild(v)
	default:
		cell.CreateAttr("t", "inlineStr")
		is := etree.NewElement("is")
		is.Space = cell.Space
		t := etree.NewElement("t")
		t.Space = cell.Space
		t.SetText(value)
		is.AddChild(t)
		cell.AddChild(is)
	}
}

// newChild creates a tag with an r attribute in the parent's namespace,
// placed before the given sibling or last
func newChild(parent, before *etree.Element, tag, r string) *etree.Element {
	el := etree.NewElement(tag)
	el.Space = parent.Space
	el.CreateAttr("r", r)
	if before != nil {
		parent.InsertChildAt(before.Index(), el)
	} else {
		parent.AddChild(el)
	}
	return el
}

// cellRange is a one dimensional A1 reference such as Sheet1!$A$2:$A$5
type cellRange struct {
	sheet          string
	col, row       int
	endCol, endRow int
}

func parseRange(f string) (cellRange, bool) {
	f = strings.TrimPrefix(strings.TrimSpace(f), "=")
	i := strings.LastIndex(f, "!")
	if i <= 0 {
		return cellRange{}, false
	}
	sheet, cells := f[:i], f[i+1:]
	if len(sheet) >= 2 && sheet[0] == '\'' && sheet[len(sheet)-1] == '\'' {
		sheet = strings.ReplaceAll(sheet[1:len(sheet)-1], "''", "'")
	}

	from, to, _ := strings.Cut(cells, ":")
	if to == "" {
		to = from
	}
	col, row, ok := parseCell(from)
	if !ok {
		return cellRange{}, false
	}
	endCol, endRow, ok := parseCell(to)
	if !ok || endCol < col || endRow < row || (endCol > col && endRow > row) {
		return cellRange{}, false
	}
	return cellRange{sheet: sheet, col: col, row: row, endCol: endCol, endRow: endRow}, true
}

// parseCell reads an A1 cell name; the column is 1-based
func parseCell(s string) (int, int, bool) {
	s = strings.ReplaceAll(s, "$", "")
	col, i := 0, 0
	for ; i < len(s) && s[i] >= 'A' && s[i] <= 'Z'; i++ {
		col = col*26 + int(s[i]-'A'+1)
	}
	row, err := strconv.Atoi(s[i:])
	if i == 0 || err != nil || row < 1 {
		return 0, 0, false
	}
	return col, row, true
}

func columnName(col int) string {
	var b []byte
	for ; col > 0; col = (col - 1) / 26 {
		b = append([]byte{byte('A' + (col-1)%26)}, b...)
	}
	return string(b)
}

func (r cellRange) horizontal() bool {
	return r.endCol > r.col
}

func (r cellRange) len() int {
	if r.horizontal() {
		return r.endCol - r.col + 1
	}
	return r.endRow - r.row + 1
}

func (r cellRange) cell(i int) (int, int) {
	if r.horizontal() {
		return r.col + i, r.row
	}
	return r.col, r.row + i
}

// resized keeps the first cell and direction and covers n cells
func (r cellRange) resized(n int) cellRange {
	if r.horizontal() {
		r.endCol = r.col + n - 1
	} else {
		r.endRow = r.row + n - 1
	}
	return r
}

func (r cellRange) String() string {
	sheet := r.sheet
	if strings.ContainsFunc(sheet, func(c rune) bool {
		return !(c == '_' || c == '.' || c >= '0' && c <= '9' || c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z')
	}) {
		sheet = "'" + strings.ReplaceAll(sheet, "'", "''") + "'"
	}
	out := sheet + "!$" + columnName(r.col) + "$" + strconv.Itoa(r.row)
	if r.endCol != r.col || r.endRow != r.row {
		out += ":$" + columnName(r.endCol) + "$" + strconv.Itoa(r.endRow)
	}
	return out
}
