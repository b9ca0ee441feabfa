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
	"math"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/walteh/decktext/pkg/document"
	"gitlab.com/tozd/go/errors"
)

// 📊 chart is a c:chartSpace part. Categories are read from the first series
// that has any; series are collected across every plot of the chart.
type chart struct {
	pk    *pkg
	part  *part
	plots []*etree.Element
	// workbook is the embedded xlsx entry named by c:externalData, if any
	workbook string
}

func loadChart(pk *pkg, name string) (*chart, error) {
	pt, err := pk.Part(name)
	if err != nil {
		return nil, err
	}
	area := descend(pt.doc.Root(), "chart", "plotArea")
	if area == nil {
		return nil, errors.Errorf("chart %s has no plot area", name)
	}
	c := &chart{pk: pk, part: pt}
	for _, el := range area.ChildElements() {
		if strings.HasSuffix(el.Tag, "Chart") {
			c.plots = append(c.plots, el)
		}
	}

	if ext := child(pt.doc.Root(), "externalData"); ext != nil {
		rels, err := pk.relationships(name)
		if err != nil {
			return nil, err
		}
		// OLE objects (.bin) are left alone
		if target, ok := rels[ext.SelectAttrValue("r:id", "")]; ok && strings.HasSuffix(target, ".xlsx") && pk.Has(target) {
			c.workbook = target
		}
	}
	return c, nil
}

func (c *chart) Type() string {
	if len(c.plots) == 0 {
		return ""
	}
	return c.plots[0].Tag
}

func (c *chart) series() []*etree.Element {
	var out []*etree.Element
	for _, p := range c.plots {
		out = append(out, children(p, "ser")...)
	}
	return out
}

func categoryElement(ser *etree.Element) *etree.Element {
	if cat := child(ser, "cat"); cat != nil {
		return cat
	}
	return child(ser, "xVal")
}

func valueElement(ser *etree.Element) *etree.Element {
	if val := child(ser, "val"); val != nil {
		return val
	}
	return child(ser, "yVal")
}

func (c *chart) Categories() []string {
	for _, ser := range c.series() {
		if cat := categoryElement(ser); cat != nil {
			return readPoints(cat)
		}
	}
	return nil
}

func (c *chart) Series() []document.Series {
	var out []document.Series
	for _, ser := range c.series() {
		raw := readPoints(valueElement(ser))
		vals := make([]float64, len(raw))
		for i, v := range raw {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				f = math.NaN()
			}
			vals[i] = f
		}
		out = append(out, document.Series{Name: seriesName(ser), Values: vals})
	}
	return out
}

// ReplaceDataset rewrites the cached categories, names and values of every
// series, and the cells those caches point at in the embedded workbook.
// Cell formulas keep their first cell and are resized to the new category
// count. Nothing is modified when the workbook cannot be updated.
func (c *chart) ReplaceDataset(categories []string, series []document.Series) error {
	if err := document.ValidateDataset(categories, series); err != nil {
		return err
	}
	sers := c.series()
	if len(series) != len(sers) {
		return errors.Errorf("chart has %d series, dataset has %d: %w", len(sers), len(series), document.ErrDataset)
	}
	if c.workbook != "" {
		if err := c.writeWorkbook(sers, categories, series); err != nil {
			return err
		}
	}

	for i, ser := range sers {
		writeCategories(ser, categories)
		writeValues(ser, series[i].Values)
		writeName(ser, series[i].Name)
		resizeFormula(categoryElement(ser), len(categories))
		resizeFormula(valueElement(ser), len(categories))
	}
	c.part.touch()
	return nil
}

func (c *chart) writeWorkbook(sers []*etree.Element, categories []string, series []document.Series) error {
	data, err := c.pk.Bytes(c.workbook)
	if err != nil {
		return err
	}
	wb, err := openWorkbook(c.workbook, data)
	if err != nil {
		return err
	}

	for i, ser := range sers {
		vals := make([]string, len(series[i].Values))
		for j, v := range series[i].Values {
			if !math.IsNaN(v) {
				vals[j] = strconv.FormatFloat(v, 'f', -1, 64)
			}
		}
		cells := []struct {
			el      *etree.Element
			values  []string
			numeric bool
		}{
			{categoryElement(ser), categories, false},
			{valueElement(ser), vals, true},
			{child(ser, "tx"), []string{series[i].Name}, false},
		}
		for _, cl := range cells {
			ref, ok := parseRange(formula(cl.el))
			if !ok {
				continue
			}
			if err := wb.write(ref, cl.values, cl.numeric); err != nil {
				return err
			}
		}
	}

	out, err := wb.bytes()
	if err != nil {
		return err
	}
	c.pk.SetBytes(c.workbook, out)
	return nil
}

// resizeFormula points the c:f under el at n cells when its length differs
func resizeFormula(el *etree.Element, n int) {
	for _, c := range childElements(el) {
		f := child(c, "f")
		if f == nil {
			continue
		}
		if ref, ok := parseRange(f.Text()); ok && n > 0 && ref.len() != n {
			f.SetText(ref.resized(n).String())
		}
		return
	}
}

// readPoints reads the cache or literal under a c:cat / c:val element
func readPoints(el *etree.Element) []string {
	data := pointData(el)
	if data == nil {
		return nil
	}
	n := 0
	if pc := child(data, "ptCount"); pc != nil {
		n, _ = strconv.Atoi(pc.SelectAttrValue("val", "0"))
	}
	pts := children(data, "pt")
	for _, pt := range pts {
		idx, _ := strconv.Atoi(pt.SelectAttrValue("idx", "0"))
		n = max(n, idx+1)
	}

	out := make([]string, n)
	for _, pt := range pts {
		idx, _ := strconv.Atoi(pt.SelectAttrValue("idx", "0"))
		if v := child(pt, "v"); v != nil && idx >= 0 && idx < n {
			out[idx] = v.Text()
		}
	}
	return out
}

func pointData(el *etree.Element) *etree.Element {
	if el == nil {
		return nil
	}
	for _, c := range el.ChildElements() {
		switch c.Tag {
		case "strRef":
			return child(c, "strCache")
		case "numRef":
			return child(c, "numCache")
		case "strLit", "numLit":
			return c
		}
	}
	return nil
}

func formula(el *etree.Element) string {
	for _, c := range childElements(el) {
		if f := child(c, "f"); f != nil {
			return f.Text()
		}
	}
	return ""
}

func childElements(el *etree.Element) []*etree.Element {
	if el == nil {
		return nil
	}
	return el.ChildElements()
}

func writeCategories(ser *etree.Element, labels []string) {
	cat := categoryElement(ser)
	if cat == nil {
		cat = etree.NewElement("c:cat")
		insertBefore(ser, cat, "val", "yVal", "smooth", "extLst")
	}
	f := formula(cat)
	for _, c := range cat.ChildElements() {
		cat.RemoveChild(c)
	}

	var cache *etree.Element
	if f != "" {
		ref := cat.CreateElement("c:strRef")
		ref.CreateElement("c:f").SetText(f)
		cache = ref.CreateElement("c:strCache")
	} else {
		cache = cat.CreateElement("c:strLit")
	}
	writePoints(cache, labels)
}

func writeValues(ser *etree.Element, values []float64) {
	val := valueElement(ser)
	if val == nil {
		val = etree.NewElement("c:val")
		insertBefore(ser, val, "smooth", "extLst")
		val.CreateElement("c:numLit")
	}
	data := pointData(val)
	if data == nil {
		data = val.CreateElement("c:numLit")
	}

	format := ""
	if fc := child(data, "formatCode"); fc != nil {
		format = fc.Text()
	}
	for _, c := range data.ChildElements() {
		data.RemoveChild(c)
	}
	if format != "" {
		data.CreateElement("c:formatCode").SetText(format)
	}
	data.CreateElement("c:ptCount").CreateAttr("val", strconv.Itoa(len(values)))
	for i, v := range values {
		if math.IsNaN(v) {
			continue
		}
		pt := data.CreateElement("c:pt")
		pt.CreateAttr("idx", strconv.Itoa(i))
		pt.CreateElement("c:v").SetText(strconv.FormatFloat(v, 'f', -1, 64))
	}
}

func writePoints(data *etree.Element, labels []string) {
	data.CreateElement("c:ptCount").CreateAttr("val", strconv.Itoa(len(labels)))
	for i, l := range labels {
		pt := data.CreateElement("c:pt")
		pt.CreateAttr("idx", strconv.Itoa(i))
		pt.CreateElement("c:v").SetText(l)
	}
}

func seriesName(ser *etree.Element) string {
	tx := child(ser, "tx")
	if tx == nil {
		return ""
	}
	if v := child(tx, "v"); v != nil {
		return v.Text()
	}
	if names := readPoints(tx); len(names) > 0 {
		return names[0]
	}
	return ""
}

func writeName(ser *etree.Element, name string) {
	if seriesName(ser) == name {
		return
	}
	tx := child(ser, "tx")
	if tx == nil {
		tx = etree.NewElement("c:tx")
		insertBefore(ser, tx, "spPr", "invertIfNegative", "pictureOptions", "dPt", "dLbls", "trendline", "errBars", "cat", "val", "xVal", "yVal", "explosion", "marker", "smooth", "extLst")
	}
	if v := child(tx, "v"); v != nil {
		v.SetText(name)
		return
	}
	if ref := child(tx, "strRef"); ref != nil {
		cache := child(ref, "strCache")
		if cache == nil {
			cache = ref.CreateElement("c:strCache")
		}
		for _, c := range cache.ChildElements() {
			cache.RemoveChild(c)
		}
		writePoints(cache, []string{name})
		return
	}
	tx.CreateElement("c:v").SetText(name)
}
