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
	"archive/zip"
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	nsDecl  = `xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"`
	relsNS  = `xmlns="http://schemas.openxmlformats.org/package/2006/relationships"`
	slideRT = `http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide`
	chartRT = `http://schemas.openxmlformats.org/officeDocument/2006/relationships/chart`
	xmlHead = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"
)

var fixtureParts = map[string]string{
	"[Content_Types].xml": xmlHead + `<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"><Default Extension="xml" ContentType="application/xml"/></Types>`,
	"docProps/app.xml":    xmlHead + `<Properties><Application>Test</Application></Properties>`,
	"ppt/presentation.xml": xmlHead + `<p:presentation ` + nsDecl + `><p:sldIdLst>` +
		`<p:sldId id="256" r:id="rId2"/><p:sldId id="257" r:id="rId3"/>` +
		`</p:sldIdLst></p:presentation>`,
	"ppt/_rels/presentation.xml.rels": xmlHead + `<Relationships ` + relsNS + `>` +
		`<Relationship Id="rId2" Type="` + slideRT + `" Target="slides/slide1.xml"/>` +
		`<Relationship Id="rId3" Type="` + slideRT + `" Target="/ppt/slides/slide2.xml"/>` +
		`<Relationship Id="rId9" Type="x" Target="https://example.com" TargetMode="External"/>` +
		`</Relationships>`,
	"ppt/slides/slide1.xml": xmlHead + `<p:sld ` + nsDecl + `><p:cSld><p:spTree>` +
		`<p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr><p:grpSpPr/>` +
		// title
		`<p:sp><p:nvSpPr><p:cNvPr id="2" name="Title 1"/><p:cNvSpPr/><p:nvPr><p:ph type="title"/></p:nvPr></p:nvSpPr><p:spPr/>` +
		`<p:txBody><a:bodyPr/><a:p><a:r><a:t>Agenda</a:t></a:r></a:p></p:txBody></p:sp>` +
		// body text with formatted runs
		`<p:sp><p:nvSpPr><p:cNvPr id="3" name="Body"/><p:cNvSpPr/><p:nvPr/></p:nvSpPr><p:spPr/>` +
		`<p:txBody><a:bodyPr/><a:p>` +
		`<a:r><a:rPr lang="en-US" sz="2400" b="1"><a:solidFill><a:schemeClr val="accent1"><a:lumMod val="75000"/></a:schemeClr></a:solidFill><a:latin typeface="Arial"/></a:rPr><a:t>Hello there! </a:t></a:r>` +
		`<a:r><a:rPr lang="en-US" i="1"><a:solidFill><a:srgbClr val="FF0000"/></a:solidFill></a:rPr><a:t>How </a:t></a:r>` +
		`<a:r><a:rPr lang="en-US" u="sng"/><a:t>are</a:t></a:r>` +
		`<a:r><a:t> you?</a:t></a:r>` +
		`</a:p><a:p><a:r><a:t>second</a:t></a:r></a:p></p:txBody></p:sp>` +
		// table
		`<p:graphicFrame><p:nvGraphicFramePr><p:cNvPr id="4" name="Table 3"/><p:cNvGraphicFramePr/><p:nvPr/></p:nvGraphicFramePr><p:xfrm/>` +
		`<a:graphic><a:graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/table"><a:tbl><a:tblGrid><a:gridCol w="1"/><a:gridCol w="1"/></a:tblGrid>` +
		`<a:tr h="1"><a:tc><a:txBody><a:bodyPr/><a:p><a:r><a:t>r0c0</a:t></a:r></a:p></a:txBody></a:tc><a:tc><a:txBody><a:bodyPr/><a:p><a:r><a:t>r0c1</a:t></a:r></a:p></a:txBody></a:tc></a:tr>` +
		`<a:tr h="1"><a:tc><a:txBody><a:bodyPr/><a:p><a:r><a:t>r1c0</a:t></a:r></a:p></a:txBody></a:tc><a:tc hMerge="1"><a:txBody><a:bodyPr/><a:p/></a:txBody></a:tc></a:tr>` +
		`</a:tbl></a:graphicData></a:graphic></p:graphicFrame>` +
		// group with a nested shape and a picture
		`<p:grpSp><p:nvGrpSpPr><p:cNvPr id="5" name="Group 4"/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr><p:grpSpPr/>` +
		`<p:sp><p:nvSpPr><p:cNvPr id="6" name="Inner"/><p:cNvSpPr/><p:nvPr/></p:nvSpPr><p:spPr/><p:txBody><a:bodyPr/><a:p><a:r><a:t>nested</a:t></a:r></a:p></p:txBody></p:sp>` +
		`</p:grpSp>` +
		`<p:pic><p:nvPicPr><p:cNvPr id="7" name="Picture"/><p:cNvPicPr/><p:nvPr/></p:nvPicPr></p:pic>` +
		`</p:spTree></p:cSld></p:sld>`,
	"ppt/slides/slide2.xml": xmlHead + `<p:sld ` + nsDecl + `><p:cSld><p:spTree>` +
		`<p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr><p:grpSpPr/>` +
		`<p:graphicFrame><p:nvGraphicFramePr><p:cNvPr id="8" name="Chart 7"/><p:cNvGraphicFramePr/><p:nvPr/></p:nvGraphicFramePr><p:xfrm/>` +
		`<a:graphic><a:graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/chart">` +
		`<c:chart xmlns:c="http://schemas.openxmlformats.org/drawingml/2006/chart" r:id="rId2"/>` +
		`</a:graphicData></a:graphic></p:graphicFrame>` +
		`</p:spTree></p:cSld></p:sld>`,
	"ppt/slides/_rels/slide2.xml.rels": xmlHead + `<Relationships ` + relsNS + `>` +
		`<Relationship Id="rId2" Type="` + chartRT + `" Target="../charts/chart1.xml"/>` +
		`</Relationships>`,
	"ppt/charts/chart1.xml": xmlHead + `<c:chartSpace xmlns:c="http://schemas.openxmlformats.org/drawingml/2006/chart" xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main"><c:chart><c:plotArea><c:layout/>` +
		`<c:barChart><c:barDir val="col"/><c:ser><c:idx val="0"/><c:order val="0"/>` +
		`<c:tx><c:strRef><c:f>Sheet1!$B$1</c:f><c:strCache><c:ptCount val="1"/><c:pt idx="0"><c:v>Sales</c:v></c:pt></c:strCache></c:strRef></c:tx>` +
		`<c:cat><c:strRef><c:f>Sheet1!$A$2:$A$3</c:f><c:strCache><c:ptCount val="2"/><c:pt idx="0"><c:v>Q1</c:v></c:pt><c:pt idx="1"><c:v>Q2</c:v></c:pt></c:strCache></c:strRef></c:cat>` +
		`<c:val><c:numRef><c:f>Sheet1!$B$2:$B$3</c:f><c:numCache><c:formatCode>General</c:formatCode><c:ptCount val="2"/><c:pt idx="0"><c:v>10</c:v></c:pt><c:pt idx="1"><c:v>20.5</c:v></c:pt></c:numCache></c:numRef></c:val>` +
		`</c:ser><c:axId val="1"/></c:barChart></c:plotArea></c:chart></c:chartSpace>`,
}

// fixtureOrder keeps the archive layout stable
var fixtureOrder = []string{
	"[Content_Types].xml",
	"docProps/app.xml",
	"ppt/presentation.xml",
	"ppt/_rels/presentation.xml.rels",
	"ppt/slides/slide1.xml",
	"ppt/slides/slide2.xml",
	"ppt/slides/_rels/slide2.xml.rels",
	"ppt/charts/chart1.xml",
}

func buildFixture(t *testing.T) []byte {
	t.Helper()
	return zipEntries(t, fixtureOrder, fixtureParts)
}

func zipEntries(t *testing.T, order []string, entries map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range order {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = io.WriteString(w, entries[name])
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func unzip(t *testing.T, data []byte) map[string]string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	out := map[string]string{}
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		b, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		out[f.Name] = string(b)
	}
	return out
}
