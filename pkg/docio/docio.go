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

// Package docio opens documents with the backend matching their file extension.
package docio

import (
	"context"
	"path/filepath"
	"sort"
	"strings"

	"github.com/walteh/decktext/pkg/deck"
	"github.com/walteh/decktext/pkg/document"
	"github.com/walteh/decktext/pkg/pptx"
	"gitlab.com/tozd/go/errors"
)

var ErrUnsupportedFormat = errors.New("unsupported document format")

// Backend names a document implementation
type Backend string

const (
	BackendPPTX Backend = "pptx"
	BackendDeck Backend = "deck"
)

// extensions maps every supported file extension to its backend
var extensions = map[string]Backend{
	".pptx": BackendPPTX,
	".pptm": BackendPPTX,
	".potx": BackendPPTX,
	".yaml": BackendDeck,
	".yml":  BackendDeck,
	".json": BackendDeck,
}

// Formats lists the supported extensions of every backend, sorted
func Formats() map[Backend][]string {
	out := map[Backend][]string{}
	for ext, b := range extensions {
		out[b] = append(out[b], ext)
	}
	for _, exts := range out {
		sort.Strings(exts)
	}
	return out
}

// BackendFor picks the backend for path
func BackendFor(path string) (Backend, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if b, ok := extensions[ext]; ok {
		return b, nil
	}
	return "", errors.Errorf("%q: %w", ext, ErrUnsupportedFormat)
}

// 📂 Open loads the document at path
func Open(ctx context.Context, path string) (document.Document, error) {
	backend, err := BackendFor(path)
	if err != nil {
		return nil, err
	}
	if backend == BackendPPTX {
		p, err := pptx.Open(ctx, path)
		if err != nil {
			return nil, err
		}
		return p, nil
	}
	d, err := deck.Load(ctx, path)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// CheckOutput makes sure a document opened from in can be saved as out.
// A pptx cannot be written as a deck file and the other way round.
func CheckOutput(in, out string) error {
	a, err := BackendFor(in)
	if err != nil {
		return err
	}
	b, err := BackendFor(out)
	if err != nil {
		return err
	}
	if a != b {
		return errors.Errorf("cannot write a %s document to %s: %w", a, filepath.Base(out), ErrUnsupportedFormat)
	}
	return nil
}
