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

	"github.com/rs/zerolog"
	"github.com/walteh/decktext/pkg/docio"
	"github.com/walteh/decktext/pkg/log"
	"github.com/walteh/decktext/pkg/replace"
	"gitlab.com/tozd/go/errors"
)

// 📝 NewReplaceOperation creates an operation that rewrites one document
func NewReplaceOperation(opts Options) *ReplaceOperation {
	return &ReplaceOperation{
		BaseOperation: NewBaseOperation(opts),
	}
}

// 📝 ReplaceOperation applies the rules to a single document
type ReplaceOperation struct {
	BaseOperation
	result *replace.Result
}

// Result returns the outcome of the last Execute, or nil
func (op *ReplaceOperation) Result() *replace.Result {
	return op.result
}

// 🏃 Execute runs the replace operation
func (op *ReplaceOperation) Execute(ctx context.Context) (err error) {
	logger := zerolog.Ctx(ctx).With().Str("input", op.Input).Logger()
	out := op.OutputPath()

	// a batch logger holds lines back until the document is done
	console := op.Logger
	if console != nil {
		console = console.ForDocument(op.Input)
		defer func() {
			res := log.DocumentResult{Input: op.Input, Output: out, Err: err}
			if op.result != nil {
				res.Changes = op.result.SpansRewritten + op.result.CategoriesChanged
				res.Issues = len(op.result.Issues)
			}
			console.LogDocument(ctx, res)
			console.Flush()
		}()
	}

	if err := docio.CheckOutput(op.Input, out); err != nil {
		return errors.Errorf("checking output: %w", err)
	}

	opts := op.Engine
	if opts.Reporter == nil && console != nil {
		opts.Reporter = console
	}
	engine, err := replace.New(opts)
	if err != nil {
		return errors.Errorf("creating engine: %w", err)
	}

	doc, err := docio.Open(ctx, op.Input)
	if err != nil {
		return errors.Errorf("opening document: %w", err)
	}

	res, err := engine.Run(logger.WithContext(ctx), doc)
	op.result = res
	if err != nil {
		return errors.Errorf("replacing text: %w", err)
	}

	if !res.Changed() && out == op.Input {
		logger.Debug().Msg("nothing changed, document not rewritten")
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
		return errors.Errorf("creating output directory: %w", err)
	}
	if err := doc.Save(ctx, out); err != nil {
		return errors.Errorf("saving document: %w", err)
	}

	logger.Debug().
		Str("output", out).
		Int("matches", res.Matches).
		Int("spans", res.SpansRewritten).
		Int("categories", res.CategoriesChanged).
		Msg("document saved")
	return nil
}
