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
	"context"

	"github.com/walteh/decktext/pkg/deck"
	"github.com/walteh/decktext/pkg/document"
	"gitlab.com/tozd/go/errors"
)

type fakeDoc struct {
	slides []document.Slide
}

func (d *fakeDoc) Slides() []document.Slide { return d.slides }
func (d *fakeDoc) Save(ctx context.Context, path string) error {
	return errors.New("not supported")
}

type fakeSlide struct {
	shapes []document.Shape
}

func (s *fakeSlide) ID() int                  { return 256 }
func (s *fakeSlide) Title() string            { return "" }
func (s *fakeSlide) Shapes() []document.Shape { return s.shapes }

type chartShape struct {
	id    int
	chart document.Chart
}

func (s *chartShape) ID() int      { return s.id }
func (s *chartShape) Name() string { return "Chart" }
func (s *chartShape) Content() document.Content {
	return document.ChartContent{Chart: s.chart}
}

// failingChart rejects every dataset
type failingChart struct {
	categories []string
}

func (c *failingChart) Type() string         { return "barChart" }
func (c *failingChart) Categories() []string { return c.categories }
func (c *failingChart) Series() []document.Series {
	return []document.Series{{Name: "s", Values: make([]float64, len(c.categories))}}
}
func (c *failingChart) ReplaceDataset(categories []string, series []document.Series) error {
	return errors.Errorf("chart workbook is locked: %w", document.ErrDataset)
}

type countingChart struct {
	*deck.Chart
	calls int
}

func (c *countingChart) ReplaceDataset(categories []string, series []document.Series) error {
	c.calls++
	return c.Chart.ReplaceDataset(categories, series)
}
