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
	"slices"

	"github.com/walteh/decktext/pkg/match"
	"github.com/walteh/decktext/pkg/rules"
	"gitlab.com/tozd/go/errors"
)

type planned struct {
	match.Match
	Rule int
}

// plan matches every rule against the same snapshot of text. A match is kept
// only when it does not overlap a match that was kept before it, so earlier
// rules win and within a rule the leftmost match wins. The result is ordered
// right to left; at the same start the longer match comes first.
func plan(compiled []*rules.Compiled, text string) ([]planned, error) {
	var kept []planned
	for _, rule := range compiled {
		ms, err := rule.FindAll(text)
		if err != nil {
			return nil, errors.Errorf("rule %d: %w", rule.Index, err)
		}
	next:
		for _, m := range ms {
			for _, k := range kept {
				if overlaps(m, k.Match) {
					continue next
				}
			}
			kept = append(kept, planned{Match: m, Rule: rule.Index})
		}
	}

	slices.SortStableFunc(kept, func(a, b planned) int {
		if a.Start != b.Start {
			return b.Start - a.Start
		}
		return b.Len() - a.Len()
	})
	return kept, nil
}

// overlaps treats a zero-length match as a point: it collides with a match
// that strictly contains it or with another point at the same offset.
func overlaps(a, b match.Match) bool {
	al, bl := a.Len(), b.Len()
	switch {
	case al == 0 && bl == 0:
		return a.Start == b.Start
	case al == 0:
		return b.Start < a.Start && a.Start < b.End()
	case bl == 0:
		return a.Start < b.Start && b.Start < a.End()
	default:
		return a.Start < b.End() && b.Start < a.End()
	}
}

// applyFlat substitutes the planned matches into a flat string
func applyFlat(text string, ps []planned) string {
	ms := make([]match.Match, len(ps))
	for i, pm := range ps {
		// plan is right to left, Apply wants left to right
		ms[len(ps)-1-i] = pm.Match
	}
	return match.Apply(text, ms)
}
