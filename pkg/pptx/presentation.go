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
	"context"
	"os"
	"path/filepath"
	"strconv"

	"github.com/beevik/etree"
	"github.com/rs/zerolog"
	"github.com/walteh/decktext/pkg/document"
	"github.com/walteh/decktext/pkg/splice"
	"gitlab.com/tozd/go/errors"
)

const presentationPart = "ppt/presentation.xml"

// 📊 Presentation is an opened .pptx file
type Presentation struct {
	pkg    *pkg
	name   string
	slides []*Slide
}

var _ document.Document = (*Presentation)(nil)

// Open reads a .pptx file into memory
func Open(ctx context.Context, path string) (*Presentation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading presentation: %w", err)
	}
	p, err := Read(data)
	if err != nil {
		return nil, errors.Errorf("loading %s: %w", path, err)
	}
	p.name = path
	zerolog.Ctx(ctx).Debug().Str("path", path).Int("slides", len(p.slides)).Msg("opened presentation")
	return p, nil
}

// Read parses a presentation from the bytes of a .pptx archive
func Read(data []byte) (*Presentation, error) {
	pk, err := readPackage(data)
	if err != nil {
		return nil, err
	}
	pres, err := pk.Part(presentationPart)
	if err != nil {
		return nil, err
	}
	rels, err := pk.relationships(presentationPart)
	if err != nil {
		return nil, err
	}

	p := &Presentation{pkg: pk}
	for _, sid := range children(descend(pres.doc.Root(), "sldIdLst"), "sldId") {
		target, ok := rels[sid.SelectAttrValue("r:id", "")]
		if !ok {
			return nil, errors.Errorf("slide %s has no relationship target", sid.SelectAttrValue("id", "?"))
		}
		id, _ := strconv.Atoi(sid.SelectAttrValue("id", "0"))
		s, err := p.loadSlide(id, target)
		if err != nil {
			return nil, err
		}
		p.slides = append(p.slides, s)
	}
	return p, nil
}

func (p *Presentation) Name() string { return p.name }

func (p *Presentation) Slides() []document.Slide {
	out := make([]document.Slide, len(p.slides))
	for i, s := range p.slides {
		out[i] = s
	}
	return out
}

// 💾 Save writes the presentation to path. The file is written next to its
// destination first and renamed into place, so a failed save leaves no
// partial output behind.
func (p *Presentation) Save(ctx context.Context, path string) error {
	var buf bytes.Buffer
	if _, err := p.pkg.WriteTo(&buf); err != nil {
		return errors.Errorf("encoding presentation: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return errors.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return errors.Errorf("writing presentation: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return errors.Errorf("writing presentation: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return errors.Errorf("moving presentation into place: %w", err)
	}

	dirty := 0
	for _, pt := range p.pkg.parts {
		if pt.dirty {
			dirty++
		}
	}
	zerolog.Ctx(ctx).Debug().Str("path", path).Int("modified_parts", dirty).Msg("saved presentation")
	return nil
}

// Slide is one slide part
type Slide struct {
	id     int
	part   *part
	title  string
	shapes []document.Shape
}

func (s *Slide) ID() int                  { return s.id }
func (s *Slide) Title() string            { return s.title }
func (s *Slide) Shapes() []document.Shape { return s.shapes }

func (p *Presentation) loadSlide(id int, name string) (*Slide, error) {
	pt, err := p.pkg.Part(name)
	if err != nil {
		return nil, err
	}
	rels, err := p.pkg.relationships(name)
	if err != nil {
		return nil, err
	}

	s := &Slide{id: id, part: pt}
	tree := descend(pt.doc.Root(), "cSld", "spTree")
	if tree == nil {
		return nil, errors.Errorf("slide %s has no shape tree", name)
	}
	l := &loader{pkg: p.pkg, part: pt, rels: rels, slide: s}
	if s.shapes, err = l.shapes(tree); err != nil {
		return nil, errors.Errorf("slide %s: %w", name, err)
	}
	return s, nil
}

// loader builds shapes for one slide part
type loader struct {
	pkg   *pkg
	part  *part
	rels  map[string]string
	slide *Slide
}

// 🔷 Shape is an element of a shape tree
type Shape struct {
	id      int
	name    string
	content document.Content
}

func (s *Shape) ID() int                   { return s.id }
func (s *Shape) Name() string              { return s.name }
func (s *Shape) Content() document.Content { return s.content }

func (l *loader) shapes(tree *etree.Element) ([]document.Shape, error) {
	var out []document.Shape
	for _, el := range tree.ChildElements() {
		var (
			content document.Content
			err     error
		)
		switch el.Tag {
		case "nvGrpSpPr", "grpSpPr", "extLst":
			continue
		case "sp":
			content = l.textShape(el)
		case "grpSp":
			var inner []document.Shape
			if inner, err = l.shapes(el); err == nil {
				content = document.GroupContent{Shapes: inner}
			}
		case "graphicFrame":
			content, err = l.graphicFrame(el)
		default:
			content = document.PlainContent{Type: el.Tag}
		}
		if err != nil {
			return nil, err
		}

		id, name := shapeIdentity(el)
		out = append(out, &Shape{id: id, name: name, content: content})
	}
	return out, nil
}

func (l *loader) textShape(el *etree.Element) document.Content {
	body := child(el, "txBody")
	if body == nil {
		return document.PlainContent{Type: "sp"}
	}
	f := newFrame(l.part, body)
	if l.slide.title == "" && isTitle(el) {
		l.slide.title = splice.FrameText(f)
	}
	return document.TextContent{Frame: f}
}

func (l *loader) graphicFrame(el *etree.Element) (document.Content, error) {
	data := descend(el, "graphic", "graphicData")
	if tbl := child(data, "tbl"); tbl != nil {
		return document.TableContent{Table: newTable(l.part, tbl)}, nil
	}
	if ref := child(data, "chart"); ref != nil {
		target, ok := l.rels[ref.SelectAttrValue("r:id", "")]
		if !ok {
			return nil, errors.Errorf("chart reference %q has no target", ref.SelectAttrValue("r:id", ""))
		}
		c, err := loadChart(l.pkg, target)
		if err != nil {
			return nil, err
		}
		return document.ChartContent{Chart: c}, nil
	}
	return document.PlainContent{Type: "graphicFrame"}, nil
}

// shapeIdentity reads cNvPr from the shape's non-visual properties
func shapeIdentity(el *etree.Element) (int, string) {
	for _, c := range el.ChildElements() {
		if len(c.Tag) > 2 && c.Tag[:2] == "nv" {
			if pr := child(c, "cNvPr"); pr != nil {
				id, _ := strconv.Atoi(pr.SelectAttrValue("id", "0"))
				return id, pr.SelectAttrValue("name", "")
			}
		}
	}
	return 0, ""
}

func isTitle(el *etree.Element) bool {
	ph := descend(el, "nvSpPr", "nvPr", "ph")
	if ph == nil {
		return false
	}
	switch ph.SelectAttrValue("type", "") {
	case "title", "ctrTitle":
		return true
	}
	return false
}
