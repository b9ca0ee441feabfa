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
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// Format is a deck file encoding
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatOf picks the encoding from a file extension
func FormatOf(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, true
	case ".json":
		return FormatJSON, true
	default:
		return "", false
	}
}

// 📂 Load reads a deck file
func Load(ctx context.Context, path string) (*Deck, error) {
	format, ok := FormatOf(path)
	if !ok {
		return nil, errors.Errorf("unknown deck file extension %q", filepath.Ext(path))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading deck: %w", err)
	}
	d, err := Parse(data, format)
	if err != nil {
		return nil, errors.Errorf("parsing %s: %w", path, err)
	}
	d.path = path
	zerolog.Ctx(ctx).Debug().Str("path", path).Int("slides", len(d.SlideList)).Msg("loaded deck")
	return d, nil
}

// Parse decodes a deck, rejecting unknown fields
func Parse(data []byte, format Format) (*Deck, error) {
	d := &Deck{}
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(d); err != nil {
			return nil, errors.Errorf("decoding yaml: %w", err)
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(d); err != nil {
			return nil, errors.Errorf("decoding json: %w", err)
		}
	default:
		return nil, errors.Errorf("unknown deck format %q", format)
	}

	for _, s := range d.SlideList {
		for _, sh := range s.ShapeList {
			if err := sh.validate(); err != nil {
				return nil, errors.Errorf("slide %d: %w", s.SlideID, err)
			}
		}
	}
	return d, nil
}

// Marshal encodes the deck
func (d *Deck) Marshal(format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(d); err != nil {
			return nil, errors.Errorf("encoding yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, errors.Errorf("encoding yaml: %w", err)
		}
		return buf.Bytes(), nil
	case FormatJSON:
		data, err := json.MarshalIndent(d, "", "  ")
		if err != nil {
			return nil, errors.Errorf("encoding json: %w", err)
		}
		return append(data, '\n'), nil
	default:
		return nil, errors.Errorf("unknown deck format %q", format)
	}
}

// 💾 Save writes the deck in the format given by the extension of path
func (d *Deck) Save(ctx context.Context, path string) error {
	format, ok := FormatOf(path)
	if !ok {
		return errors.Errorf("unknown deck file extension %q", filepath.Ext(path))
	}
	data, err := d.Marshal(format)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Errorf("writing deck: %w", err)
	}
	zerolog.Ctx(ctx).Debug().Str("path", path).Msg("saved deck")
	return nil
}
