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

package main

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/decktext/cmd/decktext/commands"
	"github.com/walteh/decktext/cmd/decktext/opts"
	"github.com/walteh/decktext/pkg/operation"
)

// newRootCmd builds the decktext command tree. The root command itself runs a
// single document substitution.
func newRootCmd() *cobra.Command {
	root := &opts.RootOpts{}
	flags := &opts.ReplaceFlags{}
	var input, output string

	cmd := &cobra.Command{
		Use:   "decktext",
		Short: "Replace text in presentations while keeping its formatting",
		Long: `decktext replaces text in text frames, table cells and chart categories.
A match may span several differently formatted runs; every run keeps its
formatting and receives the part of the replacement that falls inside it.

Rules are applied in order. Each --match is paired with the --replace at the
same position.`,
		Example: `  decktext -i deck.pptx -o out.pptx -m "Q1" -r "Quarter 1"
  decktext -i deck.pptx -o out.pptx -x -m '(\d+)%' -r '\1 percent' -s 2,4-6
  decktext --config rules.hcl -i deck.yaml -o deck.yaml -T -C`,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if root.Debug {
				zlog := zerolog.Ctx(cmd.Context()).Level(zerolog.DebugLevel)
				cmd.SetContext(zlog.WithContext(cmd.Context()))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := flags.Resolve(ctx, root, cmd.Flags())
			if err != nil {
				return err
			}

			logger := opts.NewConsole(ctx, cmd.OutOrStdout(), cfg)
			op := operation.NewReplaceOperation(operation.Options{
				Input:  input,
				Output: output,
				Engine: cfg.Options(logger),
			})

			err = operation.NewRunner(zerolog.Ctx(ctx), 1).Run(ctx, op)
			if res := op.Result(); res != nil && !cfg.Quiet {
				logger.Infof("%d matches, %d runs rewritten, %d categories changed, %d charts rebuilt, %d slides processed, %d skipped",
					res.Matches, res.SpansRewritten, res.CategoriesChanged, res.ChartsRebuilt, res.SlidesProcessed, res.SlidesSkipped)
			}
			logger.Summary(cmd.ErrOrStderr())
			return err
		},
	}

	cmd.PersistentFlags().StringVar(&root.ConfigFile, "config", "", "rules file (.hcl, .yaml or .json); flags override its values")
	cmd.PersistentFlags().BoolVarP(&root.Debug, "debug", "d", false, "enable debug logging")

	flags.Bind(cmd.Flags())
	cmd.Flags().StringVarP(&input, "input", "i", "", "the input file")
	cmd.Flags().StringVarP(&output, "output", "o", "", "the output file, may be the same as the input")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("output")

	cmd.AddCommand(
		commands.NewAnalyzeCommand(root),
		commands.NewInspectCommand(root),
		commands.NewBatchCommand(root),
		newVersionCmd(),
	)

	return cmd
}
