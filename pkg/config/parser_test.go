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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/decktext/pkg/rules"
)

// 🧪 TestParserRegistration tests the parser registration system
func TestParserRegistration(t *testing.T) {
	// Save original parsers
	originalParsers := parsers
	defer func() {
		parsers = originalParsers
	}()

	// Reset parsers
	parsers = nil

	// Create mock parser
	mockParser := &struct {
		Parser
		canParse bool
	}{
		canParse: true,
	}

	// Test registration
	Register(mockParser)
	assert.Len(t, parsers, 1, "should have 1 parser registered")
	assert.Equal(t, mockParser, parsers[0], "registered parser should match")
}

// 🧪 TestParserSelection tests parser selection by file extension
func TestParserSelection(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		want     Parser
	}{
		{name: "yaml_file", filename: "decktext.yaml", want: &YAMLParser{}},
		{name: "yml_file", filename: "decktext.yml", want: &YAMLParser{}},
		{name: "upper_case_yaml", filename: "RULES.YAML", want: &YAMLParser{}},
		{name: "json_file", filename: "rules.json", want: &JSONParser{}},
		{name: "hcl_file", filename: "decktext.hcl", want: &HCLParser{}},
		{name: "unknown_extension", filename: "decktext.txt", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GetParser(tt.filename)
			if tt.want == nil {
				assert.Nil(t, got, "should return nil for unknown extension")
				return
			}
			require.NotNil(t, got, "should return a parser")
			assert.IsType(t, tt.want, got, "should return correct parser type")
		})
	}
}

// 🧪 TestParsing tests each format against the same settings
func TestParsing(t *testing.T) {
	wantRules := []rules.Rule{
		{Match: `(\d{4})-(\d{2})`, Replace: `\2/\1`},
		{Match: "ACME", Replace: "Acme Corp."},
	}

	tests := []struct {
		name        string
		parser      Parser
		config      string
		wantErr     bool
		errContains string
		check       func(t *testing.T, cfg *Config)
	}{
		{
			name:   "valid_yaml",
			parser: &YAMLParser{},
			config: `
regex: true
slides: "1,3-"
charts: false
chain_mode: isolated
rules:
  - match: '(\d{4})-(\d{2})'
    replace: '\2/\1'
  - match: ACME
    replace: Acme Corp.
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, wantRules, cfg.Rules)
				assert.True(t, cfg.Regex)
				assert.Equal(t, "1,3-", cfg.Slides)
				assert.Nil(t, cfg.TextFrames, "unset toggle should stay nil")
				require.NotNil(t, cfg.Charts)
				assert.False(t, *cfg.Charts)
				assert.Equal(t, "isolated", cfg.ChainMode)
			},
		},
		{
			name:   "valid_json",
			parser: &JSONParser{},
			config: `{
  "regex": true,
  "slides": "1,3-",
  "charts": false,
  "chain_mode": "isolated",
  "rules": [
    {"match": "(\\d{4})-(\\d{2})", "replace": "\\2/\\1"},
    {"match": "ACME", "replace": "Acme Corp."}
  ]
}`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, wantRules, cfg.Rules)
				assert.True(t, cfg.Regex)
				assert.Equal(t, "1,3-", cfg.Slides)
				require.NotNil(t, cfg.Charts)
				assert.False(t, *cfg.Charts)
				assert.Equal(t, "isolated", cfg.ChainMode)
			},
		},
		{
			name:   "valid_hcl",
			parser: &HCLParser{},
			config: `
regex      = true
slides     = "1,3-"
charts     = false
chain_mode = "isolated"

rule {
  match   = "(\\d{4})-(\\d{2})"
  replace = "\\2/\\1"
}

rule {
  match   = "ACME"
  replace = "Acme Corp."
}
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, wantRules, cfg.Rules)
				assert.True(t, cfg.Regex)
				assert.Equal(t, "1,3-", cfg.Slides)
				assert.Nil(t, cfg.Tables)
				require.NotNil(t, cfg.Charts)
				assert.False(t, *cfg.Charts)
				assert.Equal(t, "isolated", cfg.ChainMode)
			},
		},
		{
			name:        "unknown_yaml_field",
			parser:      &YAMLParser{},
			config:      "rulez: []\n",
			wantErr:     true,
			errContains: "parsing YAML",
		},
		{
			name:        "unknown_json_field",
			parser:      &JSONParser{},
			config:      `{"rules": [], "verbosee": true}`,
			wantErr:     true,
			errContains: "parsing JSON",
		},
		{
			name:   "invalid_hcl_syntax",
			parser: &HCLParser{},
			config: `
rule {
  match =
}`,
			wantErr:     true,
			errContains: "parsing HCL",
		},
		{
			name:   "invalid_block_type",
			parser: &HCLParser{},
			config: `
unknown_block {
  foo = "bar"
}`,
			wantErr:     true,
			errContains: "decoding HCL",
		},
	}

	ctx := context.Background()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := tt.parser.Parse(ctx, []byte(tt.config))
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}

			require.NoError(t, err)
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}
