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

package commands

import (
	"runtime"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/decktext/cmd/decktext/opts"
	"github.com/walteh/decktext/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

// NewBatchCommand creates the batch command
func NewBatchCommand(root *opts.RootOpts) *cobra.Command {
	flags := &opts.ReplaceFlags{}
	var (
		glob   string
		outDir string
		jobs   int
	)

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Apply the same rules to many documents",
		Long: `Batch expands a glob pattern (with ** support) and runs an independent
substitution pass on every matching document. Outputs keep their path
relative to the pattern's base directory under --out-dir; without
--out-dir every document is rewritten in place.`,
		Example: `  decktext batch --glob 'decks/**/*.pptx' --out-dir out -m ACME -r Initech`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := flags.Resolve(ctx, root, cmd.Flags())
			if err != nil {
				return err
			}

			logger := opts.NewConsole(ctx, cmd.OutOrStdout(), cfg)
			ops, err := operation.Batch(ctx, glob, outDir, operation.Options{
				Engine: cfg.Options(nil),
				Logger: logger,
			})
			if err != nil {
				return errors.Errorf("expanding %s: %w", glob, err)
			}

			logger.Header(cfg.String())
			list := make([]operation.Operation, len(ops))
			for i, op := range ops {
				list[i] = op
			}
			err = operation.NewRunner(zerolog.Ctx(ctx), jobs).RunAll(ctx, list)

			failed := 0
			for _, doc := range logger.Documents() {
				if doc.Err != nil {
					failed++
				}
			}
			logger.LogNewline()
			if failed > 0 {
				logger.Errorf("%d of %d documents failed", failed, len(ops))
			} else {
				logger.Successf("%d documents processed", len(ops))
			}
			logger.Summary(cmd.ErrOrStderr())
			return err
		},
	}

	flags.Bind(cmd.Flags())
	cmd.Flags().StringVarP(&glob, "glob", "g", "", "documents to process, i.e. 'decks/**/*.pptx'")
	cmd.Flags().StringVar(&outDir, "out-dir", "", "directory receiving the rewritten documents")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", runtime.NumCPU(), "documents processed concurrently")
	_ = cmd.MarkFlagRequired("glob")
	return cmd
}
