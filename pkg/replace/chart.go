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

	"github.com/walteh/decktext/pkg/document"
	"github.com/walteh/decktext/pkg/report"
	"gitlab.com/tozd/go/errors"
)

// chart rewrites category labels as flat strings. The dataset is only
// resubmitted when some label changed; a rejected dataset is recorded as an
// error for this chart and the pass goes on.
func (p *pass) chart(level int, loc report.Location, c document.Chart) error {
	p.rep.Visit(report.Visit{Level: level, Node: report.NodeChart, Kind: c.Type(), Skipped: !p.opts.Charts})
	if !p.opts.Charts {
		return nil
	}

	loc.Target = report.TargetCategory
	categories := c.Categories()
	updated := make([]string, len(categories))
	changed := false
	for i, category := range categories {
		p.rep.Visit(report.Visit{Level: level + 1, Node: report.NodeCategory, Index: i, Text: category})
		loc.Category = i

		var (
			after string
			err   error
		)
		if p.opts.ChainMode == ChainIsolated {
			after, err = p.categoryIsolated(level+2, loc, category)
		} else {
			after, err = p.categorySequential(level+2, loc, category)
		}
		if err != nil {
			return errors.Errorf("chart %d category %d: %w", loc.ShapeID, i, err)
		}
		if after != category {
			changed = true
			p.res.CategoriesChanged++
		}
		updated[i] = after
	}

	if !changed {
		return nil
	}
	if err := c.ReplaceDataset(updated, document.CloneSeries(c.Series())); err != nil {
		p.issuef(report.SeverityError, "Replacing chart data of chart with id %d on slide %d failed with error: %v", loc.ShapeID, loc.Slide, err)
		p.logger.Error().Err(err).Int("slide", loc.Slide).Int("shape", loc.ShapeID).Msg("chart dataset rejected")
		return nil
	}
	p.res.ChartsRebuilt++
	return nil
}

// categorySequential lets every rule see the output of the rules before it
func (p *pass) categorySequential(level int, loc report.Location, category string) (string, error) {
	for _, rule := range p.compiled {
		after, err := rule.ReplaceAll(category)
		if err != nil {
			return "", errors.Errorf("rule %d: %w", rule.Index, err)
		}
		found := after != category
		p.rep.Match(report.Match{Level: level, Location: loc, Pattern: rule.Match, Found: found, Regex: rule.Regex(), Text: category, Replacement: after})
		if found {
			p.rep.Rewrite(report.Rewrite{Level: level, Location: loc, Pattern: rule.Match, Before: category, After: after})
			category = after
		}
	}
	return category, nil
}

// categoryIsolated matches all rules against the original label
func (p *pass) categoryIsolated(level int, loc report.Location, category string) (string, error) {
	planned, err := plan(p.compiled, category)
	if err != nil {
		return "", err
	}
	after := applyFlat(category, planned)

	var used []string
	for _, rule := range p.compiled {
		found := false
		for _, pm := range planned {
			if pm.Rule == rule.Index {
				found = true
				break
			}
		}
		p.rep.Match(report.Match{Level: level, Location: loc, Pattern: rule.Match, Found: found, Regex: rule.Regex(), Text: category, Replacement: after})
		if found {
			used = append(used, rule.Match)
		}
	}
	if after != category {
		p.rep.Rewrite(report.Rewrite{Level: level, Location: loc, Pattern: strings.Join(used, ", "), Before: category, After: after})
	}
	return after, nil
}
