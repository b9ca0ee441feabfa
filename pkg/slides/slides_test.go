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

package slides

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		spec    string
		count   int
		want    []int
		wantErr error
	}{
		{name: "empty_selects_all", spec: "  ", count: 3, want: []int{1, 2, 3}},
		{name: "single", spec: "2", count: 3, want: []int{2}},
		{name: "open_ended_range", spec: "2,4-", count: 5, want: []int{2, 4, 5}},
		{name: "closed_range", spec: "2-4", count: 5, want: []int{2, 3, 4}},
		{name: "whitespace_around_separators", spec: " 1 , 3 - 4 ", count: 5, want: []int{1, 3, 4}},
		{name: "overlapping_items", spec: "1-3,2", count: 3, want: []int{1, 2, 3}},
		{name: "single_item_range", spec: "3-3", count: 3, want: []int{3}},
		{name: "beyond_last", spec: "6", count: 5, wantErr: ErrOutOfRange},
		{name: "zero", spec: "0", count: 5, wantErr: ErrOutOfRange},
		{name: "high_beyond_last", spec: "2-9", count: 5, wantErr: ErrOutOfRange},
		{name: "not_a_number", spec: "two", count: 5, wantErr: ErrSyntax},
		{name: "missing_low", spec: "-3", count: 5, wantErr: ErrSyntax},
		{name: "too_many_dashes", spec: "1-2-3", count: 5, wantErr: ErrSyntax},
		{name: "empty_item", spec: "1,,2", count: 5, wantErr: ErrSyntax},
		{name: "reversed_range", spec: "4-2", count: 5, wantErr: ErrSyntax},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.spec, tt.count)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Positions())
			assert.Equal(t, tt.count, got.Count())
		})
	}
}

func TestSelectionContains(t *testing.T) {
	s, err := Parse("2,4-", 5)
	require.NoError(t, err)

	for pos, want := range map[int]bool{0: false, 1: false, 2: true, 3: false, 4: true, 5: true, 6: false} {
		assert.Equal(t, want, s.Contains(pos), "slide %d", pos)
	}
}
