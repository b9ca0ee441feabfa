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

package document

import "fmt"

// Tristate is a formatting flag that may be inherited from the layout
type Tristate int8

const (
	Inherit Tristate = iota
	On
	Off
)

// TristateOf converts a nullable bool
func TristateOf(b *bool) Tristate {
	switch {
	case b == nil:
		return Inherit
	case *b:
		return On
	default:
		return Off
	}
}

// Bool converts back to a nullable bool
func (t Tristate) Bool() *bool {
	if t == Inherit {
		return nil
	}
	b := t == On
	return &b
}

// ColorType tags a Color
type ColorType int8

const (
	// ColorNone means no explicit color; the run inherits one
	ColorNone ColorType = iota
	// ColorScheme references a theme color adjusted by brightness
	ColorScheme
	// ColorRGB is an explicit sRGB value
	ColorRGB
)

// 🎨 Color is a tagged color descriptor
type Color struct {
	Type ColorType
	// Theme is the theme color name (e.g. "accent1"), ColorScheme only
	Theme string
	// Brightness is in [-1, 1], ColorScheme only
	Brightness float64
	// RGB is a six digit hex value (e.g. "FF0000"), ColorRGB only
	RGB string
}

func (c Color) String() string {
	switch c.Type {
	case ColorScheme:
		return fmt.Sprintf("scheme(%s,%+.2f)", c.Theme, c.Brightness)
	case ColorRGB:
		return "#" + c.RGB
	default:
		return "none"
	}
}

// 🖋️ Formatting is the attribute bag of a span.
// It is a value type; two formattings are the same iff they are ==.
type Formatting struct {
	Family string
	// Size is in hundredths of a point, 0 inherits
	Size      int
	Bold      Tristate
	Italic    Tristate
	Underline string
	Color     Color
}
