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

package rules

import (
	"fmt"
	"strings"
)

// WarningKind classifies a rule conflict
type WarningKind int

const (
	// ChainedReplacement means an earlier rule's output is matched by a later rule
	ChainedReplacement WarningKind = iota
	// Redundant means a later rule is fully subsumed by an earlier one
	Redundant
	// Unreachable means a later rule can no longer match as written
	Unreachable
)

func (k WarningKind) String() string {
	switch k {
	case ChainedReplacement:
		return "chained"
	case Redundant:
		return "redundant"
	case Unreachable:
		return "unreachable"
	default:
		return fmt.Sprintf("WarningKind(%d)", int(k))
	}
}

// ⚠️ Warning is an advisory finding about a pair of rules (Earlier < Later)
type Warning struct {
	Kind    WarningKind
	Earlier int
	Later   int
	Message string
}

func (w Warning) String() string {
	return w.Message
}

// 🔍 Analyze inspects every ordered pair of rules for chaining and shadowing
// hazards. Regex rules cannot be decided statically, so it returns nothing
// in regex mode. Both checks run independently for each pair.
func Analyze(rules []Rule, regex bool) []Warning {
	if regex {
		return nil
	}

	var out []Warning
	for i := 0; i < len(rules)-1; i++ {
		ri := rules[i]
		for j := i + 1; j < len(rules); j++ {
			rj := rules[j]

			if rj.Match != "" && strings.Contains(ri.Replace, rj.Match) {
				out = append(out, Warning{
					Kind:    ChainedReplacement,
					Earlier: i,
					Later:   j,
					Message: fmt.Sprintf("Replacement string %s at index %d matches search string %s at index %d. This may produce unintended results due to chained replacements!", ri.Replace, i, rj.Match, j),
				})
			}

			if ri.Match == "" || !strings.Contains(rj.Match, ri.Match) {
				continue
			}
			if strings.ReplaceAll(rj.Match, ri.Match, ri.Replace) == rj.Replace {
				out = append(out, Warning{
					Kind:    Redundant,
					Earlier: i,
					Later:   j,
					Message: fmt.Sprintf("Match/Replacement ('%s','%s') at index %d is obsolete due to match/replacement ('%s','%s') at index %d", rj.Match, rj.Replace, j, ri.Match, ri.Replace, i),
				})
			} else {
				out = append(out, Warning{
					Kind:    Unreachable,
					Earlier: i,
					Later:   j,
					Message: fmt.Sprintf("Match/Replacement ('%s','%s') at index %d will never match due to match/replacement ('%s','%s') at index %d", rj.Match, rj.Replace, j, ri.Match, ri.Replace, i),
				})
			}
		}
	}
	return out
}
