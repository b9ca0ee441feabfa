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

package operation

import (
	"context"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/decktext/pkg/docio"
	"gitlab.com/tozd/go/errors"
)

// ErrNoInputs is returned when a batch glob matches no documents
var ErrNoInputs = errors.New("no documents matched")

// 🔍 Expand resolves a doublestar glob ("decks/**/*.pptx") to the documents
// it matches, sorted. Directories and files without a known document
// extension are skipped.
func Expand(ctx context.Context, pattern string) ([]string, error) {
	logger := zerolog.Ctx(ctx)

	if !doublestar.ValidatePattern(filepath.ToSlash(pattern)) {
		return nil, errors.Errorf("invalid glob %q", pattern)
	}
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, errors.Errorf("expanding glob %q: %w", pattern, err)
	}

	var out []string
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil {
			return nil, errors.Errorf("checking %s: %w", m, err)
		}
		if info.IsDir() {
			continue
		}
		if _, err := docio.BackendFor(m); err != nil {
			logger.Debug().Str("path", m).Msg("skipping file with unsupported extension")
			continue
		}
		out = append(out, m)
	}
	if len(out) == 0 {
		return nil, errors.Errorf("%q: %w", pattern, ErrNoInputs)
	}
	sort.Strings(out)
	return out, nil
}

// 📦 OutputFor maps input to its place below outDir, keeping the path
// relative to the static base of pattern. An empty outDir means in place.
func OutputFor(pattern, input, outDir string) (string, error) {
	if outDir == "" {
		return input, nil
	}
	base, _ := doublestar.SplitPattern(filepath.ToSlash(pattern))
	rel, err := filepath.Rel(filepath.FromSlash(base), input)
	if err != nil {
		return "", errors.Errorf("relating %s to %s: %w", input, base, err)
	}
	return filepath.Join(outDir, rel), nil
}

// 🏭 Batch builds one ReplaceOperation per document matching pattern. Every
// operation shares opts except for its input and output paths.
func Batch(ctx context.Context, pattern, outDir string, opts Options) ([]*ReplaceOperation, error) {
	inputs, err := Expand(ctx, pattern)
	if err != nil {
		return nil, err
	}
	ops := make([]*ReplaceOperation, len(inputs))
	for i, in := range inputs {
		out, err := OutputFor(pattern, in, outDir)
		if err != nil {
			return nil, err
		}
		o := opts
		o.Input, o.Output = in, out
		ops[i] = NewReplaceOperation(o)
	}
	return ops, nil
}
