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

package replace

import (
	"strings"

	"github.com/walteh/decktext/pkg/report"
	"github.com/walteh/decktext/pkg/rules"
	"gitlab.com/tozd/go/errors"
)

// ChainMode decides whether a rule sees the output of earlier rules
type ChainMode string

const (
	// ChainSequential applies each rule exhaustively to a container before
	// the next rule scans the already modified text
	ChainSequential ChainMode = "sequential"
	// ChainIsolated matches every rule against the container's original text
	// and gives earlier rules priority where matches overlap
	ChainIsolated ChainMode = "isolated"
)

// ParseChainMode accepts "sequential", "isolated" or "" (sequential)
func ParseChainMode(s string) (ChainMode, error) {
	switch ChainMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ChainSequential:
		return ChainSequential, nil
	case ChainIsolated:
		return ChainIsolated, nil
	default:
		return "", errors.Errorf("unknown chain mode %q (want %s or %s)", s, ChainSequential, ChainIsolated)
	}
}

// ⚙️ Options configures an Engine
type Options struct {
	Rules []rules.Rule
	Regex bool
	// Slides restricts processing to a slide list such as "1,3-5,8-"; empty means all
	Slides     string
	TextFrames bool
	Tables     bool
	Charts     bool
	ChainMode  ChainMode
	// Reporter receives structured events; nil discards them
	Reporter report.Reporter
}

// DefaultOptions processes every container kind in sequential mode
func DefaultOptions(rs ...rules.Rule) Options {
	return Options{
		Rules:      rs,
		TextFrames: true,
		Tables:     true,
		Charts:     true,
		ChainMode:  ChainSequential,
	}
}
