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

package opts

import (
	"context"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/walteh/decktext/pkg/config"
	"github.com/walteh/decktext/pkg/log"
	"github.com/walteh/decktext/pkg/rules"
	"gitlab.com/tozd/go/errors"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	ConfigFile string
	Debug      bool
}

// 🔧 RuleFlags holds the flags that define the rule list
type RuleFlags struct {
	Matches      []string
	Replacements []string
	Regex        bool
}

// Bind registers the rule flags on fs
func (f *RuleFlags) Bind(fs *pflag.FlagSet) {
	fs.StringArrayVarP(&f.Matches, "match", "m", nil, "the string to look for and to be replaced (repeatable)")
	fs.StringArrayVarP(&f.Replacements, "replace", "r", nil, "the replacement for all the matches' occurrences (repeatable, paired with --match)")
	fs.BoolVarP(&f.Regex, "regex", "x", false, "use match strings as regular expressions")
}

// Rules pairs --match and --replace positionally
func (f *RuleFlags) Rules() ([]rules.Rule, error) {
	rs, err := rules.Pair(f.Matches, f.Replacements)
	if err != nil {
		return nil, errors.Errorf("there must be as many match strings (-m) as replacement strings (-r): %w", err)
	}
	return rs, nil
}

// 🔧 ReplaceFlags holds every flag of a substitution pass
type ReplaceFlags struct {
	RuleFlags
	Slides       string
	TextFrames   bool
	NoTextFrames bool
	Tables       bool
	NoTables     bool
	Charts       bool
	NoCharts     bool
	ChainMode    string
	Verbose      bool
	Quiet        bool
	Diff         bool
}

// Bind registers the replace flags on fs
func (f *ReplaceFlags) Bind(fs *pflag.FlagSet) {
	f.RuleFlags.Bind(fs)
	fs.StringVarP(&f.Slides, "slides", "s", "", "comma separated list of 1-based slide numbers to restrict processing to, i.e. '2,4,6-10'")
	fs.BoolVarP(&f.TextFrames, "text-frames", "f", false, "process text frames in any shape (default)")
	fs.BoolVarP(&f.NoTextFrames, "no-text-frames", "F", false, "do not process any text frames in shapes")
	fs.BoolVarP(&f.Tables, "tables", "t", false, "process tables (default)")
	fs.BoolVarP(&f.NoTables, "no-tables", "T", false, "do not process tables and their cells")
	fs.BoolVarP(&f.Charts, "charts", "c", false, "process chart categories (default)")
	fs.BoolVarP(&f.NoCharts, "no-charts", "C", false, "do not process charts and their categories")
	fs.StringVar(&f.ChainMode, "chain-mode", "", "sequential (later rules see earlier output, default) or isolated")
	fs.BoolVarP(&f.Verbose, "verbose", "v", false, "print detailed structure of and changes made in the document")
	fs.BoolVarP(&f.Quiet, "quiet", "q", false, "don't even print the changes that are done")
	fs.BoolVar(&f.Diff, "diff", false, "print changed runs as inline diffs")
}

// 📚 Resolve builds the run configuration: the --config file when given,
// overridden by every flag set explicitly on fs. The result is validated.
func (f *ReplaceFlags) Resolve(ctx context.Context, root *RootOpts, fs *pflag.FlagSet) (*config.Config, error) {
	cfg := &config.Config{}
	if root.ConfigFile != "" {
		c, err := config.Read(ctx, root.ConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = c
	}

	if fs.Changed("match") || fs.Changed("replace") {
		rs, err := f.Rules()
		if err != nil {
			return nil, err
		}
		cfg.Rules = rs
	}
	if fs.Changed("regex") {
		cfg.Regex = f.Regex
	}
	if fs.Changed("slides") {
		cfg.Slides = f.Slides
	}
	cfg.TextFrames = toggle(fs, cfg.TextFrames, "text-frames", "no-text-frames")
	cfg.Tables = toggle(fs, cfg.Tables, "tables", "no-tables")
	cfg.Charts = toggle(fs, cfg.Charts, "charts", "no-charts")
	if fs.Changed("chain-mode") {
		cfg.ChainMode = f.ChainMode
	}
	if fs.Changed("verbose") {
		cfg.Verbose = f.Verbose
	}
	if fs.Changed("quiet") {
		cfg.Quiet = f.Quiet
	}
	if fs.Changed("diff") {
		cfg.Diff = f.Diff
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating options: %w", err)
	}
	zerolog.Ctx(ctx).Debug().Str("config", cfg.String()).Msg("options resolved")
	return cfg, nil
}

// toggle applies an --x / --no-x flag pair; the negative flag wins when both are set
func toggle(fs *pflag.FlagSet, current *bool, on, off string) *bool {
	switch {
	case fs.Changed(off):
		return config.Bool(false)
	case fs.Changed(on):
		return config.Bool(true)
	default:
		return current
	}
}

// 🏭 NewConsole creates the console logger for a run configured by cfg
func NewConsole(ctx context.Context, w io.Writer, cfg *config.Config) *log.Logger {
	logger := log.New(w, *zerolog.Ctx(ctx))
	logger.SetVerbosity(log.VerbosityFor(cfg.Verbose, cfg.Quiet))
	logger.SetDiff(cfg.Diff)
	return logger
}
