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

package deck

import (
	"math"

	"github.com/walteh/decktext/pkg/document"
)

// 🖋️ Font is the file form of document.Formatting. Size is in points.
type Font struct {
	Family    string     `json:"family,omitempty" yaml:"family,omitempty"`
	Size      float64    `json:"size,omitempty" yaml:"size,omitempty"`
	Bold      *bool      `json:"bold,omitempty" yaml:"bold,omitempty"`
	Italic    *bool      `json:"italic,omitempty" yaml:"italic,omitempty"`
	Underline string     `json:"underline,omitempty" yaml:"underline,omitempty"`
	Color     *FontColor `json:"color,omitempty" yaml:"color,omitempty"`
}

// FontColor is either {type: scheme, theme, brightness} or {type: rgb, rgb}
type FontColor struct {
	Type       string  `json:"type" yaml:"type"`
	Theme      string  `json:"theme,omitempty" yaml:"theme,omitempty"`
	Brightness float64 `json:"brightness,omitempty" yaml:"brightness,omitempty"`
	RGB        string  `json:"rgb,omitempty" yaml:"rgb,omitempty"`
}

func (f *Font) formatting() document.Formatting {
	if f == nil {
		return document.Formatting{}
	}
	out := document.Formatting{
		Family:    f.Family,
		Size:      int(math.Round(f.Size * 100)),
		Bold:      document.TristateOf(f.Bold),
		Italic:    document.TristateOf(f.Italic),
		Underline: f.Underline,
	}
	if f.Color != nil {
		switch f.Color.Type {
		case "scheme":
			out.Color = document.Color{Type: document.ColorScheme, Theme: f.Color.Theme, Brightness: f.Color.Brightness}
		case "rgb":
			out.Color = document.Color{Type: document.ColorRGB, RGB: f.Color.RGB}
		}
	}
	return out
}

func fontOf(f document.Formatting) *Font {
	if f == (document.Formatting{}) {
		return nil
	}
	out := &Font{
		Family:    f.Family,
		Size:      float64(f.Size) / 100,
		Bold:      f.Bold.Bool(),
		Italic:    f.Italic.Bool(),
		Underline: f.Underline,
	}
	switch f.Color.Type {
	case document.ColorScheme:
		out.Color = &FontColor{Type: "scheme", Theme: f.Color.Theme, Brightness: f.Color.Brightness}
	case document.ColorRGB:
		out.Color = &FontColor{Type: "rgb", RGB: f.Color.RGB}
	}
	return out
}
