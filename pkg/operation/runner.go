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

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// 🏃 Runner executes operations
type Runner struct {
	logger *zerolog.Logger
	jobs   int
}

// 🏗️ NewRunner creates a new runner. jobs bounds how many operations run at
// once; 1 or less runs them one after another.
func NewRunner(logger *zerolog.Logger, jobs int) *Runner {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Runner{
		logger: logger,
		jobs:   jobs,
	}
}

// 🏃 Run executes a single operation
func (r *Runner) Run(ctx context.Context, op Operation) error {
	r.logger.Debug().Str("operation", op.Name()).Msg("running operation")
	if err := op.Execute(ctx); err != nil {
		return errors.Errorf("executing %s: %w", op.Name(), err)
	}
	return nil
}

// 🏃 RunAll executes every operation. A failing operation does not stop the
// others; all failures are joined into the returned error in input order.
func (r *Runner) RunAll(ctx context.Context, ops []Operation) error {
	if r.jobs <= 1 {
		return r.runSync(ctx, ops)
	}
	return r.runAsync(ctx, ops)
}

// 🔄 runSync runs operations one after another
func (r *Runner) runSync(ctx context.Context, ops []Operation) error {
	errs := make([]error, len(ops))
	for i, op := range ops {
		if err := ctx.Err(); err != nil {
			return errors.Errorf("operation cancelled: %w", err)
		}
		errs[i] = r.Run(ctx, op)
	}
	return errors.Join(errs...)
}

// ⚡ runAsync runs up to r.jobs operations at a time
func (r *Runner) runAsync(ctx context.Context, ops []Operation) error {
	errs := make([]error, len(ops))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.jobs)
	for i, op := range ops {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				errs[i] = errors.Errorf("skipping %s: %w", op.Name(), err)
				return nil
			}
			errs[i] = r.Run(gctx, op)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return errors.Errorf("waiting for operations: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return errors.Errorf("operation cancelled: %w", err)
	}
	return errors.Join(errs...)
}
