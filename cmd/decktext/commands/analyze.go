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
	"github.com/spf13/cobra"
	"github.com/walteh/decktext/cmd/decktext/opts"
	"github.com/walteh/decktext/pkg/rules"
)

// NewAnalyzeCommand creates the analyze command
func NewAnalyzeCommand(root *opts.RootOpts) *cobra.Command {
	flags := &opts.ReplaceFlags{}

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Check a rule list for chaining and shadowing hazards",
		Long: `Analyze inspects the ordered rule list without opening any document.
It warns when:
1. a rule's replacement would be matched again by a later rule
2. a later rule can never match because an earlier rule consumes its text

Regex rules cannot be analyzed statically and are only validated.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := flags.Resolve(ctx, root, cmd.Flags())
			if err != nil {
				return err
			}

			logger := opts.NewConsole(ctx, cmd.OutOrStdout(), cfg)
			warnings := rules.Analyze(cfg.Rules, cfg.Regex)
			for _, w := range warnings {
				logger.Warning(w.Message)
			}
			if len(warnings) == 0 {
				logger.Successf("%d rules, no conflicts found", len(cfg.Rules))
			}
			return nil
		},
	}

	flags.RuleFlags.Bind(cmd.Flags())
	return cmd
}
