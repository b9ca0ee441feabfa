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
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/decktext/cmd/decktext/opts"
	"github.com/walteh/decktext/pkg/docio"
	"github.com/walteh/decktext/pkg/log"
	"github.com/walteh/decktext/pkg/replace"
	"gitlab.com/tozd/go/errors"
)

// NewInspectCommand creates the inspect command
func NewInspectCommand(root *opts.RootOpts) *cobra.Command {
	var input, slides string

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print the structure of a document",
		Long: `Inspect walks a document the way a substitution pass does and prints
slides, shapes, tables, cells, paragraphs, runs and chart categories.
Nothing is written.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			logger := log.New(cmd.OutOrStdout(), *zerolog.Ctx(ctx))
			logger.SetVerbosity(log.Verbose)

			o := replace.DefaultOptions()
			o.Slides = slides
			o.Reporter = logger
			engine, err := replace.New(o)
			if err != nil {
				return errors.Errorf("creating engine: %w", err)
			}

			doc, err := docio.Open(ctx, input)
			if err != nil {
				return errors.Errorf("opening document: %w", err)
			}
			if _, err := engine.Run(ctx, doc); err != nil {
				return errors.Errorf("walking document: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "the document to inspect")
	cmd.Flags().StringVarP(&slides, "slides", "s", "", "comma separated list of 1-based slide numbers, i.e. '2,4,6-10'")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}
