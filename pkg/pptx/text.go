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

	"github.com/beevik/etree"
	"github.com/walteh/decktext/pkg/document"
)

// frame is an a:txBody (or p:txBody)
type frame struct {
	paras []document.Paragraph
}

func newFrame(pt *part, body *etree.Element) *frame {
	f := &frame{}
	for _, p := range children(body, "p") {
		para := &paragraph{}
		for _, r := range children(p, "r") {
			para.runs = append(para.runs, &run{part: pt, el: r})
		}
		f.paras = append(f.paras, para)
	}
	return f
}

func (f *frame) Paragraphs() []document.Paragraph { return f.paras }

type paragraph struct {
	runs []document.Span
}

func (p *paragraph) Spans() []document.Span { return p.runs }

// ✏️ run is an a:r element
type run struct {
	part *part
	el   *etree.Element
}

func (r *run) Text() string {
	if t := child(r.el, "t"); t != nil {
		return t.Text()
	}
	return ""
}

func (r *run) SetText(text string) {
	t := child(r.el, "t")
	if t == nil {
		t = r.el.CreateElement("a:t")
	} else if t.Text() == text {
		return
	}
	t.SetText(text)
	r.part.touch()
}

func (r *run) props() *etree.Element {
	return child(r.el, "rPr")
}

func (r *run) ensureProps() *etree.Element {
	if pr := r.props(); pr != nil {
		return pr
	}
	pr := etree.NewElement("a:rPr")
	r.el.InsertChildAt(0, pr)
	return pr
}

// 🖋️ Formatting reads a:rPr
func (r *run) Formatting() document.Formatting {
	pr := r.props()
	if pr == nil {
		return document.Formatting{}
	}
	f := document.Formatting{
		Bold:      tristateAttr(pr, "b"),
		Italic:    tristateAttr(pr, "i"),
		Underline: pr.SelectAttrValue("u", ""),
	}
	f.Size, _ = strconv.Atoi(pr.SelectAttrValue("sz", "0"))
	if latin := child(pr, "latin"); latin != nil {
		f.Family = latin.SelectAttrValue("typeface", "")
	}
	f.Color = readColor(child(pr, "solidFill"))
	return f
}

// SetFormatting writes only the attributes that differ from the current ones,
// so reapplying an unchanged formatting leaves the XML alone.
func (r *run) SetFormatting(f document.Formatting) {
	cur := r.Formatting()
	if cur == f {
		return
	}
	pr := r.ensureProps()

	if cur.Size != f.Size {
		if f.Size == 0 {
			pr.RemoveAttr("sz")
		} else {
			pr.CreateAttr("sz", strconv.Itoa(f.Size))
		}
	}
	if cur.Bold != f.Bold {
		setTristateAttr(pr, "b", f.Bold)
	}
	if cur.Italic != f.Italic {
		setTristateAttr(pr, "i", f.Italic)
	}
	if cur.Underline != f.Underline {
		if f.Underline == "" {
			pr.RemoveAttr("u")
		} else {
			pr.CreateAttr("u", f.Underline)
		}
	}
	if cur.Color != f.Color {
		writeColor(pr, f.Color)
	}
	if cur.Family != f.Family {
		removeChildren(pr, "latin")
		if f.Family != "" {
			latin := etree.NewElement("a:latin")
			latin.CreateAttr("typeface", f.Family)
			insertBefore(pr, latin, "ea", "cs", "sym", "hlinkClick", "hlinkMouseOver", "rtl", "extLst")
		}
	}
	r.part.touch()
}

func tristateAttr(el *etree.Element, key string) document.Tristate {
	switch el.SelectAttrValue(key, "") {
	case "1", "true":
		return document.On
	case "0", "false":
		return document.Off
	default:
		return document.Inherit
	}
}

func setTristateAttr(el *etree.Element, key string, t document.Tristate) {
	switch t {
	case document.On:
		el.CreateAttr(key, "1")
	case document.Off:
		el.CreateAttr(key, "0")
	default:
		el.RemoveAttr(key)
	}
}

// 🎨 readColor reads a:solidFill. Brightness follows the lumMod/lumOff
// encoding: positive values carry lumOff, negative ones only lumMod.
func readColor(fill *etree.Element) document.Color {
	if fill == nil {
		return document.Color{}
	}
	if rgb := child(fill, "srgbClr"); rgb != nil {
		return document.Color{Type: document.ColorRGB, RGB: rgb.SelectAttrValue("val", "")}
	}
	scheme := child(fill, "schemeClr")
	if scheme == nil {
		return document.Color{}
	}
	c := document.Color{Type: document.ColorScheme, Theme: scheme.SelectAttrValue("val", "")}
	if off := child(scheme, "lumOff"); off != nil {
		v, _ := strconv.Atoi(off.SelectAttrValue("val", "0"))
		c.Brightness = float64(v) / 100000
	} else if mod := child(scheme, "lumMod"); mod != nil {
		v, _ := strconv.Atoi(mod.SelectAttrValue("val", "100000"))
		c.Brightness = float64(v)/100000 - 1
	}
	return c
}

func writeColor(pr *etree.Element, c document.Color) {
	removeChildren(pr, "noFill", "solidFill", "gradFill", "blipFill", "pattFill", "grpFill")
	if c.Type == document.ColorNone {
		return
	}

	fill := etree.NewElement("a:solidFill")
	switch c.Type {
	case document.ColorRGB:
		fill.CreateElement("a:srgbClr").CreateAttr("val", c.RGB)
	case document.ColorScheme:
		clr := fill.CreateElement("a:schemeClr")
		clr.CreateAttr("val", c.Theme)
		switch {
		case c.Brightness > 0:
			clr.CreateElement("a:lumMod").CreateAttr("val", strconv.Itoa(int(math.Round((1-c.Brightness)*100000))))
			clr.CreateElement("a:lumOff").CreateAttr("val", strconv.Itoa(int(math.Round(c.Brightness*100000))))
		case c.Brightness < 0:
			clr.CreateElement("a:lumMod").CreateAttr("val", strconv.Itoa(int(math.Round((1+c.Brightness)*100000))))
		}
	}
	// fill comes right after the outline in CT_TextCharacterProperties
	insertBefore(pr, fill, "effectLst", "effectDag", "highlight", "uLnTx", "uLn", "uFillTx", "uFill",
		"latin", "ea", "cs", "sym", "hlinkClick", "hlinkMouseOver", "rtl", "extLst")
}

// insertBefore inserts el ahead of the first child with one of the given tags,
// or appends it
func insertBefore(parent, el *etree.Element, tags ...string) {
	for _, c := range parent.ChildElements() {
		for _, t := range tags {
			if c.Tag == t {
				parent.InsertChildAt(c.Index(), el)
				return
			}
		}
	}
	parent.AddChild(el)
}
