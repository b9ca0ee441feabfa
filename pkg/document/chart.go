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

package document

import (
	"gitlab.com/tozd/go/errors"
)

// ErrDataset is returned by Chart.ReplaceDataset for a structurally incompatible dataset
var ErrDataset = errors.New("incompatible chart dataset")

// Series is a named sequence of values, one per category. Blank points are NaN.
type Series struct {
	Name   string
	Values []float64
}

// ValidateDataset checks that every series has exactly one value per category
func ValidateDataset(categories []string, series []Series) error {
	for i, s := range series {
		if len(s.Values) != len(categories) {
			return errors.Errorf("series %d (%q) has %d values for %d categories: %w",
				i, s.Name, len(s.Values), len(categories), ErrDataset)
		}
	}
	return nil
}

// CloneSeries deep copies a series list
func CloneSeries(series []Series) []Series {
	out := make([]Series, len(series))
	for i, s := range series {
		out[i] = Series{Name: s.Name, Values: append([]float64(nil), s.Values...)}
	}
	return out
}
