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

// Package rules holds the ordered (search, replacement) rule list and its
// static conflict analysis.
package rules

import (
	"strings"

	"github.com/walteh/decktext/pkg/match"
	"gitlab.com/tozd/go/errors"
)

var (
	ErrEmptyPattern  = errors.New("a match string can not be empty")
	ErrCountMismatch = errors.New("match and replace counts differ")
)

// 📝 Rule is one search pattern and its replacement
type Rule struct {
	Match   string `json:"match" yaml:"match" hcl:"match"`
	Replace string `json:"replace" yaml:"replace" hcl:"replace"`
}

func (r Rule) String() string {
	return "'" + r.Match + "' -> '" + r.Replace + "'"
}

// 🔗 Pair zips positionally paired match and replace lists
func Pair(matches, replacements []string) ([]Rule, error) {
	if len(matches) != len(replacements) {
		return nil, errors.Errorf("%d matches, %d replacements: %w", len(matches), len(replacements), ErrCountMismatch)
	}
	out := make([]Rule, len(matches))
	for i := range matches {
		out[i] = Rule{Match: matches[i], Replace: replacements[i]}
	}
	return out, nil
}

// 🔍 Validate rejects rules with an empty search pattern
func Validate(rules []Rule) error {
	for i, r := range rules {
		if r.Match == "" {
			return errors.Errorf("rule %d: %w", i, ErrEmptyPattern)
		}
	}
	return nil
}

// Compiled is a validated rule ready for matching. In regex mode the search
// pattern and replacement template are compiled once up front.
type Compiled struct {
	Rule
	Index   int
	pattern *match.Pattern
}

// 🏭 Compile validates rules and prepares them for matching
func Compile(rules []Rule, regex bool) ([]*Compiled, error) {
	if err := Validate(rules); err != nil {
		return nil, err
	}
	out := make([]*Compiled, len(rules))
	for i, r := range rules {
		c := &Compiled{Rule: r, Index: i}
		if regex {
			p, err := match.Compile(r.Match, r.Replace)
			if err != nil {
				return nil, errors.Errorf("rule %d: %w", i, err)
			}
			c.pattern = p
		}
		out[i] = c
	}
	return out, nil
}

// Regex reports whether the rule matches as a regular expression
func (c *Compiled) Regex() bool {
	return c.pattern != nil
}

// FindAll returns the non-overlapping matches in text, left to right
func (c *Compiled) FindAll(text string) ([]match.Match, error) {
	if c.pattern != nil {
		return c.pattern.FindAll(text)
	}
	return match.FindAllLiteral(text, c.Match, c.Replace), nil
}

// Next returns the first literal occurrence at or after rune offset start.
// It must not be called in regex mode.
func (c *Compiled) Next(text string, start int) (match.Match, bool) {
	pos := match.FindLiteral(text, c.Match, start)
	if pos < 0 {
		return match.Match{}, false
	}
	return match.Match{Start: pos, Text: c.Match, Replacement: c.Replace}, true
}

// ReplaceAll rewrites every occurrence in a flat string
func (c *Compiled) ReplaceAll(text string) (string, error) {
	if c.pattern != nil {
		return c.pattern.ReplaceAll(text)
	}
	return strings.ReplaceAll(text, c.Match, c.Replace), nil
}
