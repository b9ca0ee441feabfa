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

// Package pptx reads and writes the text, tables and chart categories of
// Office Open XML presentations.
//
// The whole archive is held in memory. XML parts are parsed on first use and
// only the parts that were modified are re-serialized on save; every other
// entry is copied through byte for byte.
package pptx

import (
	"archive/zip"
	"bytes"
	"io"
	"path"
	"strings"

	"github.com/beevik/etree"
	"gitlab.com/tozd/go/errors"
)

// part is one parsed XML entry of the package
type part struct {
	name  string
	doc   *etree.Document
	dirty bool
}

func (p *part) touch() {
	p.dirty = true
}

// 📦 pkg is the zip container of a presentation
type pkg struct {
	zr    *zip.Reader
	files map[string]*zip.File
	parts map[string]*part
	// raw holds replaced binary entries such as embedded workbooks
	raw map[string][]byte
}

func readPackage(data []byte) (*pkg, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, errors.Errorf("opening zip: %w", err)
	}
	p := &pkg{
		zr:    zr,
		files: make(map[string]*zip.File, len(zr.File)),
		parts: map[string]*part{},
		raw:   map[string][]byte{},
	}
	for _, f := range zr.File {
		p.files[f.Name] = f
	}
	return p, nil
}

// Part parses the named XML entry once and returns it
func (p *pkg) Part(name string) (*part, error) {
	if pt, ok := p.parts[name]; ok {
		return pt, nil
	}
	f, ok := p.files[name]
	if !ok {
		return nil, errors.Errorf("part %q not found", name)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, errors.Errorf("opening part %q: %w", name, err)
	}
	defer rc.Close()

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(rc); err != nil {
		return nil, errors.Errorf("parsing part %q: %w", name, err)
	}
	pt := &part{name: name, doc: doc}
	p.parts[name] = pt
	return pt, nil
}

// Has reports whether the package contains the named entry
func (p *pkg) Has(name string) bool {
	_, ok := p.files[name]
	return ok
}

// Bytes returns the content of an entry, including a replacement set with
// SetBytes
func (p *pkg) Bytes(name string) ([]byte, error) {
	if data, ok := p.raw[name]; ok {
		return data, nil
	}
	f, ok := p.files[name]
	if !ok {
		return nil, errors.Errorf("entry %q not found", name)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, errors.Errorf("opening entry %q: %w", name, err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, errors.Errorf("reading entry %q: %w", name, err)
	}
	return data, nil
}

// SetBytes replaces the content of an existing non-XML entry
func (p *pkg) SetBytes(name string, data []byte) {
	p.raw[name] = data
}

// relationships maps relationship ids of a part to absolute part names
func (p *pkg) relationships(partName string) (map[string]string, error) {
	relsName := path.Join(path.Dir(partName), "_rels", path.Base(partName)+".rels")
	if !p.Has(relsName) {
		return map[string]string{}, nil
	}
	pt, err := p.Part(relsName)
	if err != nil {
		return nil, err
	}

	out := map[string]string{}
	root := pt.doc.Root()
	if root == nil {
		return out, nil
	}
	for _, rel := range root.ChildElements() {
		if rel.Tag != "Relationship" || rel.SelectAttrValue("TargetMode", "") == "External" {
			continue
		}
		out[rel.SelectAttrValue("Id", "")] = resolve(partName, rel.SelectAttrValue("Target", ""))
	}
	return out, nil
}

// resolve turns a relationship target into a package entry name
func resolve(source, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(path.Clean(target), "/")
	}
	return path.Join(path.Dir(source), target)
}

// WriteTo writes the package, re-serializing modified parts only
func (p *pkg) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	zw := zip.NewWriter(cw)
	for _, f := range p.zr.File {
		data, replaced := p.raw[f.Name]
		pt, ok := p.parts[f.Name]
		if !replaced && (!ok || !pt.dirty) {
			if err := zw.Copy(f); err != nil {
				return cw.n, errors.Errorf("copying %q: %w", f.Name, err)
			}
			continue
		}

		if !replaced {
			var err error
			if data, err = pt.doc.WriteToBytes(); err != nil {
				return cw.n, errors.Errorf("serializing %q: %w", f.Name, err)
			}
		}
		hdr := f.FileHeader
		hdr.Method = zip.Deflate
		fw, err := zw.CreateHeader(&hdr)
		if err != nil {
			return cw.n, errors.Errorf("writing %q: %w", f.Name, err)
		}
		if _, err := fw.Write(data); err != nil {
			return cw.n, errors.Errorf("writing %q: %w", f.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return cw.n, errors.Errorf("closing zip: %w", err)
	}
	return cw.n, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(b []byte) (int, error) {
	n, err := c.w.Write(b)
	c.n += int64(n)
	return n, err
}

// xml helpers; tags are compared by local name

func child(el *etree.Element, tag string) *etree.Element {
	if el == nil {
		return nil
	}
	for _, c := range el.ChildElements() {
		if c.Tag == tag {
			return c
		}
	}
	return nil
}

func children(el *etree.Element, tag string) []*etree.Element {
	if el == nil {
		return nil
	}
	var out []*etree.Element
	for _, c := range el.ChildElements() {
		if c.Tag == tag {
			out = append(out, c)
		}
	}
	return out
}

func descend(el *etree.Element, tags ...string) *etree.Element {
	for _, t := range tags {
		el = child(el, t)
	}
	return el
}

func removeChildren(el *etree.Element, tags ...string) {
	for _, t := range tags {
		for _, c := range children(el, t) {
			el.RemoveChild(c)
		}
	}
}
