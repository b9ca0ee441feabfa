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
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/walteh/decktext/pkg/rules"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files
type HCLParser struct{}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".hcl")
}

// 📝 Parse parses the config from HCL. Rules are repeated `rule` blocks.
func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "decktext.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	// Create evaluation context
	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
	}

	// Define HCL schema
	type hclConfig struct {
		Rules      []rules.Rule `hcl:"rule,block"`
		Regex      *bool        `hcl:"regex,optional"`
		Slides     *string      `hcl:"slides,optional"`
		TextFrames *bool        `hcl:"text_frames,optional"`
		Tables     *bool        `hcl:"tables,optional"`
		Charts     *bool        `hcl:"charts,optional"`
		ChainMode  *string      `hcl:"chain_mode,optional"`
		Verbose    *bool        `hcl:"verbose,optional"`
		Quiet      *bool        `hcl:"quiet,optional"`
		Diff       *bool        `hcl:"diff,optional"`
	}

	// Decode HCL
	var hclCfg hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &hclCfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	// Convert to model
	cfg := &Config{
		Rules:      hclCfg.Rules,
		TextFrames: hclCfg.TextFrames,
		Tables:     hclCfg.Tables,
		Charts:     hclCfg.Charts,
	}
	if hclCfg.Regex != nil {
		cfg.Regex = *hclCfg.Regex
	}
	if hclCfg.Slides != nil {
		cfg.Slides = *hclCfg.Slides
	}
	if hclCfg.ChainMode != nil {
		cfg.ChainMode = *hclCfg.ChainMode
	}
	if hclCfg.Verbose != nil {
		cfg.Verbose = *hclCfg.Verbose
	}
	if hclCfg.Quiet != nil {
		cfg.Quiet = *hclCfg.Quiet
	}
	if hclCfg.Diff != nil {
		cfg.Diff = *hclCfg.Diff
	}

	return cfg, nil
}
