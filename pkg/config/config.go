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

package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/decktext/pkg/replace"
	"github.com/walteh/decktext/pkg/report"
	"github.com/walteh/decktext/pkg/rules"
	"gitlab.com/tozd/go/errors"
)

// ErrInvalid marks a configuration that can not be used for a run
var ErrInvalid = errors.New("invalid configuration")

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 📚 Config represents the complete run configuration
type Config struct {
	Rules      []rules.Rule `json:"rules" yaml:"rules"`
	Regex      bool         `json:"regex,omitempty" yaml:"regex,omitempty"`
	Slides     string       `json:"slides,omitempty" yaml:"slides,omitempty"`
	TextFrames *bool        `json:"text_frames,omitempty" yaml:"text_frames,omitempty"`
	Tables     *bool        `json:"tables,omitempty" yaml:"tables,omitempty"`
	Charts     *bool        `json:"charts,omitempty" yaml:"charts,omitempty"`
	ChainMode  string       `json:"chain_mode,omitempty" yaml:"chain_mode,omitempty"`
	Verbose    bool         `json:"verbose,omitempty" yaml:"verbose,omitempty"`
	Quiet      bool         `json:"quiet,omitempty" yaml:"quiet,omitempty"`
	Diff       bool         `json:"diff,omitempty" yaml:"diff,omitempty"`
}

// 🎯 Load loads and validates the configuration from a file
func Load(ctx context.Context, path string) (*Config, error) {
	cfg, err := Read(ctx, path)
	if err != nil {
		return nil, err
	}

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	zerolog.Ctx(ctx).Debug().Int("rules", len(cfg.Rules)).Bool("regex", cfg.Regex).Msg("configuration loaded")
	return cfg, nil
}

// 📖 Read parses the configuration from a file without validating it, for
// callers that merge in more settings first
func Read(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	// Read config file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	// Get parser
	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	// Parse config
	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// 🔍 Validate checks if the configuration is valid. Rules are compiled, so a
// bad regular expression or replacement template is caught here.
func (cfg *Config) Validate() error {
	if len(cfg.Rules) == 0 {
		return errors.Errorf("at least one rule is required: %w", ErrInvalid)
	}
	if _, err := rules.Compile(cfg.Rules, cfg.Regex); err != nil {
		return errors.Errorf("%w: %s", ErrInvalid, err.Error())
	}
	mode, err := replace.ParseChainMode(cfg.ChainMode)
	if err != nil {
		return errors.Errorf("%w: %s", ErrInvalid, err.Error())
	}
	cfg.ChainMode = string(mode)
	cfg.Slides = strings.TrimSpace(cfg.Slides)

	// verbose output already includes every change
	if cfg.Verbose {
		cfg.Quiet = false
	}
	return nil
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	kind := "literal"
	if cfg.Regex {
		kind = "regex"
	}
	slides := cfg.Slides
	if slides == "" {
		slides = "all"
	}
	return fmt.Sprintf("%d %s rules, slides %s, %s", len(cfg.Rules), kind, slides, cfg.ChainMode)
}

// ⚙️ Options converts the config into engine options reporting to rep
func (cfg *Config) Options(rep report.Reporter) replace.Options {
	opts := replace.DefaultOptions(cfg.Rules...)
	opts.Regex = cfg.Regex
	opts.Slides = cfg.Slides
	opts.TextFrames = enabled(cfg.TextFrames)
	opts.Tables = enabled(cfg.Tables)
	opts.Charts = enabled(cfg.Charts)
	if cfg.ChainMode != "" {
		opts.ChainMode = replace.ChainMode(cfg.ChainMode)
	}
	opts.Reporter = rep
	return opts
}

func enabled(b *bool) bool {
	return b == nil || *b
}

// Bool returns a pointer to b, for setting toggles
func Bool(b bool) *bool {
	return &b
}
