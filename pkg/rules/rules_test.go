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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

func TestPair(t *testing.T) {
	got, err := Pair([]string{"a", "b"}, []string{"1", "2"})
	require.NoError(t, err)
	assert.Equal(t, []Rule{{Match: "a", Replace: "1"}, {Match: "b", Replace: "2"}}, got)

	_, err = Pair([]string{"a", "b"}, []string{"1"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCountMismatch))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		rules   []Rule
		wantErr error
	}{
		{name: "no_rules", rules: nil},
		{name: "empty_replacement_is_fine", rules: []Rule{{Match: "x", Replace: ""}}},
		{name: "empty_match", rules: []Rule{{Match: "x"}, {Match: "", Replace: "y"}}, wantErr: ErrEmptyPattern},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.rules)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr))
				assert.Contains(t, err.Error(), "rule 1")
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestCompile(t *testing.T) {
	t.Run("literal", func(t *testing.T) {
		cs, err := Compile([]Rule{{Match: "a.", Replace: "x"}}, false)
		require.NoError(t, err)
		require.Len(t, cs, 1)
		assert.False(t, cs[0].Regex())

		got, err := cs[0].ReplaceAll("a.b ab")
		require.NoError(t, err)
		assert.Equal(t, "xb ab", got, "dot should be taken literally")

		m, ok := cs[0].Next("a.a.", 1)
		require.True(t, ok)
		assert.Equal(t, 2, m.Start)
		assert.Equal(t, "a.", m.Text)

		_, ok = cs[0].Next("a.a.", 3)
		assert.False(t, ok)
	})

	t.Run("regex", func(t *testing.T) {
		cs, err := Compile([]Rule{{Match: `Q(\d)`, Replace: `Quarter \1`}}, true)
		require.NoError(t, err)
		assert.True(t, cs[0].Regex())

		got, err := cs[0].ReplaceAll("Q1 Q2")
		require.NoError(t, err)
		assert.Equal(t, "Quarter 1 Quarter 2", got)

		ms, err := cs[0].FindAll("x Q3")
		require.NoError(t, err)
		require.Len(t, ms, 1)
		assert.Equal(t, 2, ms[0].Start)
		assert.Equal(t, "Quarter 3", ms[0].Replacement)
	})

	t.Run("bad_regex_names_rule", func(t *testing.T) {
		_, err := Compile([]Rule{{Match: "ok", Replace: ""}, {Match: "(", Replace: ""}}, true)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "rule 1")
	})

	t.Run("empty_pattern", func(t *testing.T) {
		_, err := Compile([]Rule{{Match: ""}}, false)
		assert.True(t, errors.Is(err, ErrEmptyPattern))
	})
}

func TestAnalyze(t *testing.T) {
	tests := []struct {
		name  string
		rules []Rule
		regex bool
		want  []Warning
	}{
		{
			name:  "chained_replacement",
			rules: []Rule{{Match: "foo", Replace: "bar"}, {Match: "bar", Replace: "baz"}},
			want: []Warning{{
				Kind:    ChainedReplacement,
				Earlier: 0,
				Later:   1,
				Message: "Replacement string bar at index 0 matches search string bar at index 1. This may produce unintended results due to chained replacements!",
			}},
		},
		{
			name:  "redundant",
			rules: []Rule{{Match: "a", Replace: "b"}, {Match: "xa", Replace: "xb"}},
			want: []Warning{{
				Kind:    Redundant,
				Earlier: 0,
				Later:   1,
				Message: "Match/Replacement ('xa','xb') at index 1 is obsolete due to match/replacement ('a','b') at index 0",
			}},
		},
		{
			name:  "unreachable",
			rules: []Rule{{Match: "a", Replace: "b"}, {Match: "xa", Replace: "yy"}},
			want: []Warning{{
				Kind:    Unreachable,
				Earlier: 0,
				Later:   1,
				Message: "Match/Replacement ('xa','yy') at index 1 will never match due to match/replacement ('a','b') at index 0",
			}},
		},
		{
			name:  "both_checks_on_one_pair",
			rules: []Rule{{Match: "a", Replace: "ab"}, {Match: "ab", Replace: "c"}},
			want: []Warning{
				{Kind: ChainedReplacement, Earlier: 0, Later: 1},
				{Kind: Unreachable, Earlier: 0, Later: 1},
			},
		},
		{
			name:  "independent_rules",
			rules: []Rule{{Match: "foo", Replace: "bar"}, {Match: "baz", Replace: "qux"}},
		},
		{
			name:  "later_feeding_earlier_is_fine",
			rules: []Rule{{Match: "bar", Replace: "baz"}, {Match: "foo", Replace: "bar"}},
		},
		{
			name:  "regex_mode_is_skipped",
			rules: []Rule{{Match: "foo", Replace: "bar"}, {Match: "bar", Replace: "baz"}},
			regex: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Analyze(tt.rules, tt.regex)
			require.Len(t, got, len(tt.want))
			for i, w := range tt.want {
				assert.Equal(t, w.Kind, got[i].Kind)
				assert.Equal(t, w.Earlier, got[i].Earlier)
				assert.Equal(t, w.Later, got[i].Later)
				if w.Message != "" {
					assert.Equal(t, w.Message, got[i].Message)
				}
			}
		})
	}
}
