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

// Package slides parses slide selections such as "1,3-5,8-".
package slides

import (
	"strconv"
	"strings"

	"gitlab.com/tozd/go/errors"
)

var (
	ErrSyntax     = errors.New("not a comma separated list of slide numbers (i.e. 1) or slide number ranges (i.e. 4-12)")
	ErrOutOfRange = errors.New("slide number is lower than 1 or bigger than the last slide number")
)

// 🎯 Selection is a set of 1-based slide positions
type Selection struct {
	selected []bool
}

// All selects every one of count slides
func All(count int) Selection {
	s := Selection{selected: make([]bool, count)}
	for i := range s.selected {
		s.selected[i] = true
	}
	return s
}

// 🔍 Parse reads a comma separated list of slide numbers and inclusive
// ranges. A range without an upper bound runs through the last slide and an
// empty spec selects everything.
func Parse(spec string, count int) (Selection, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return All(count), nil
	}

	s := Selection{selected: make([]bool, count)}
	for _, item := range strings.Split(spec, ",") {
		item = strings.TrimSpace(item)
		low, high, err := parseRange(item, count)
		if err != nil {
			return Selection{}, errors.Errorf("slide list %q: %w", spec, err)
		}
		for pos := low; pos <= high; pos++ {
			s.selected[pos-1] = true
		}
	}
	return s, nil
}

func parseRange(item string, count int) (int, int, error) {
	parts := strings.Split(item, "-")
	if len(parts) > 2 {
		return 0, 0, errors.Errorf("range %q: %w", item, ErrSyntax)
	}

	low, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, errors.Errorf("slide %q: %w", parts[0], ErrSyntax)
	}
	high := low
	if len(parts) == 2 {
		hs := strings.TrimSpace(parts[1])
		if hs == "" {
			high = count
		} else if high, err = strconv.Atoi(hs); err != nil {
			return 0, 0, errors.Errorf("slide %q: %w", hs, ErrSyntax)
		}
	}

	for _, n := range []int{low, high} {
		if n < 1 || n > count {
			return 0, 0, errors.Errorf("slide number %d (last is %d): %w", n, count, ErrOutOfRange)
		}
	}
	if low > high {
		return 0, 0, errors.Errorf("range %q is invalid: %w", item, ErrSyntax)
	}
	return low, high, nil
}

// Contains reports whether the 1-based slide position is selected
func (s Selection) Contains(pos int) bool {
	return pos >= 1 && pos <= len(s.selected) && s.selected[pos-1]
}

// Positions returns the selected positions in ascending order
func (s Selection) Positions() []int {
	var out []int
	for i, ok := range s.selected {
		if ok {
			out = append(out, i+1)
		}
	}
	return out
}

// Count is the number of slides the selection was parsed against
func (s Selection) Count() int {
	return len(s.selected)
}
