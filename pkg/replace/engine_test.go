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
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/decktext/pkg/deck"
	"github.com/walteh/decktext/pkg/document"
	"github.com/walteh/decktext/pkg/report"
	"github.com/walteh/decktext/pkg/rules"
	"github.com/walteh/decktext/pkg/slides"
	"gitlab.com/tozd/go/errors"
)

func testContext(t *testing.T) context.Context {
	logger := zerolog.New(zerolog.NewTestWriter(t)).Level(zerolog.DebugLevel)
	return logger.WithContext(context.Background())
}

func fontFor(i int) *deck.Font {
	bold := i%2 == 0
	return &deck.Font{
		Family: fmt.Sprintf("Font%d", i),
		Size:   float64(10 + i),
		Bold:   &bold,
		Color:  &deck.FontColor{Type: "scheme", Theme: "accent2", Brightness: -0.25},
	}
}

// frameOf builds a frame whose runs forget their font on every text write
func frameOf(paras ...[]string) *deck.Frame {
	f := deck.NewFrame()
	for _, texts := range paras {
		p := deck.NewParagraph()
		for i, text := range texts {
			r := deck.NewRun(text, fontFor(i))
			r.Volatile = true
			p.Runs = append(p.Runs, r)
		}
		f.Paras = append(f.Paras, p)
	}
	return f
}

func frameTexts(f *deck.Frame) [][]string {
	out := make([][]string, len(f.Paras))
	for i, p := range f.Paras {
		out[i] = []string{}
		for _, r := range p.Runs {
			out[i] = append(out[i], r.Value)
		}
	}
	return out
}

func assertFonts(t *testing.T, f *deck.Frame) {
	t.Helper()
	for _, p := range f.Paras {
		for i, r := range p.Runs {
			assert.Equal(t, fontFor(i), r.Font, "run %d font", i)
		}
	}
}

func run(t *testing.T, opts Options, d *deck.Deck) *Result {
	t.Helper()
	e, err := New(opts)
	require.NoError(t, err)
	res, err := e.Run(testContext(t), d)
	require.NoError(t, err)
	return res
}

func TestRunTextFrames(t *testing.T) {
	tests := []struct {
		name      string
		paras     [][]string
		rules     []rules.Rule
		regex     bool
		chain     ChainMode
		want      [][]string
		wantCount int
	}{
		{
			name:      "match_across_spans",
			paras:     [][]string{{"Hello there! ", "How ", "are", " you?", " What is your name?"}},
			rules:     []rules.Rule{{Match: "How are you?", Replace: "I'm fine!"}},
			want:      [][]string{{"Hello there! ", "I'm ", "fin", "e!", " What is your name?"}},
			wantCount: 1,
		},
		{
			name:      "literal_never_rematches_own_output",
			paras:     [][]string{{"aaa"}},
			rules:     []rules.Rule{{Match: "a", Replace: "aa"}},
			want:      [][]string{{"aaaaaa"}},
			wantCount: 3,
		},
		{
			name:      "literal_deletion_everywhere",
			paras:     [][]string{{"x-y", "-z-"}},
			rules:     []rules.Rule{{Match: "-", Replace: ""}},
			want:      [][]string{{"xy", "z"}},
			wantCount: 3,
		},
		{
			name:      "regex_backrefs_across_spans",
			paras:     [][]string{{"mail bo", "b@ho", "me now"}},
			rules:     []rules.Rule{{Match: `(\w+)@(\w+)`, Replace: `\2 at \1`}},
			regex:     true,
			want:      [][]string{{"mail ho", "me a", "t bob now"}},
			wantCount: 1,
		},
		{
			name:      "regex_many_matches_right_to_left",
			paras:     [][]string{{"a1 a", "2 a3"}},
			rules:     []rules.Rule{{Match: `a(\d)`, Replace: `item-\1`}},
			regex:     true,
			want:      [][]string{{"item-1 i", "tem-2 item-3"}},
			wantCount: 3,
		},
		{
			name:      "regex_across_paragraphs",
			paras:     [][]string{{"ab"}, {"cd"}},
			rules:     []rules.Rule{{Match: `b\nc`, Replace: "X"}},
			regex:     true,
			want:      [][]string{{"aX"}, {"d"}},
			wantCount: 1,
		},
		{
			name:      "regex_multiline_anchor",
			paras:     [][]string{{"one"}, {"two"}},
			rules:     []rules.Rule{{Match: `^`, Replace: "- "}},
			regex:     true,
			want:      [][]string{{"- one"}, {"- two"}},
			wantCount: 2,
		},
		{
			name:      "sequential_chains",
			paras:     [][]string{{"foo ", "bar"}},
			rules:     []rules.Rule{{Match: "foo", Replace: "bar"}, {Match: "bar", Replace: "baz"}},
			want:      [][]string{{"baz ", "baz"}},
			wantCount: 3,
		},
		{
			name:      "isolated_does_not_chain",
			paras:     [][]string{{"foo ", "bar"}},
			rules:     []rules.Rule{{Match: "foo", Replace: "bar"}, {Match: "bar", Replace: "baz"}},
			chain:     ChainIsolated,
			want:      [][]string{{"bar ", "baz"}},
			wantCount: 2,
		},
		{
			name:      "isolated_earlier_rule_wins_overlap",
			paras:     [][]string{{"abc"}},
			rules:     []rules.Rule{{Match: "bc", Replace: "X"}, {Match: "ab", Replace: "Y"}},
			chain:     ChainIsolated,
			want:      [][]string{{"aX"}},
			wantCount: 1,
		},
		{
			name:      "identity_rule",
			paras:     [][]string{{"How ", "are", " you?"}},
			rules:     []rules.Rule{{Match: "How are you?", Replace: "How are you?"}},
			want:      [][]string{{"How ", "are", " you?"}},
			wantCount: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame := frameOf(tt.paras...)
			d := deck.New(deck.NewSlide(256, "", deck.TextShape(2, frame)))

			opts := DefaultOptions(tt.rules...)
			opts.Regex = tt.regex
			if tt.chain != "" {
				opts.ChainMode = tt.chain
			}
			res := run(t, opts, d)

			assert.Equal(t, tt.want, frameTexts(frame))
			assert.Equal(t, tt.wantCount, res.Matches)
			assertFonts(t, frame)
		})
	}
}

func TestRunParagraphWithoutRuns(t *testing.T) {
	frame := frameOf([]string{"ab"}, []string{}, []string{"cd"})
	d := deck.New(deck.NewSlide(256, "", deck.TextShape(2, frame)))

	opts := DefaultOptions(rules.Rule{Match: `^`, Replace: "- "})
	opts.Regex = true
	res := run(t, opts, d)

	assert.Equal(t, [][]string{{"- ab"}, {}, {"- cd"}}, frameTexts(frame), "text for the empty paragraph must not land in its neighbour")
	assert.Equal(t, 3, res.Matches)
	assert.Equal(t, 2, res.SpansRewritten)
	require.Len(t, res.Warnings(), 1)
	assert.Contains(t, res.Warnings()[0].Message, "was dropped because the paragraph has no runs")
	assertFonts(t, frame)
}

func TestRunReportsRewrites(t *testing.T) {
	frame := frameOf([]string{"Hello there! ", "How ", "are", " you?"})
	d := deck.New(deck.NewSlide(256, "Greeting", deck.TextShape(2, frame)))
	rec := &report.Recorder{}

	opts := DefaultOptions(rules.Rule{Match: "How are you?", Replace: "I'm fine!"}, rules.Rule{Match: "nope", Replace: "x"})
	opts.Reporter = rec
	res := run(t, opts, d)

	require.Len(t, rec.Rewrites, 3)
	assert.Equal(t, "Slide[1].TextFrame[id=2].Run[0,1]", rec.Rewrites[0].Location.String())
	assert.Equal(t, "How ", rec.Rewrites[0].Before)
	assert.Equal(t, "I'm ", rec.Rewrites[0].After)
	assert.Equal(t, 3, res.SpansRewritten)
	assert.Zero(t, frame.Paras[0].Runs[0].Writes, "run before the match is untouched")

	require.Len(t, rec.Matches, 2)
	assert.True(t, rec.Matches[0].Found)
	assert.Equal(t, 13, rec.Matches[0].Start)
	assert.False(t, rec.Matches[1].Found)
	assert.Equal(t, "nope", rec.Matches[1].Pattern)

	assert.Equal(t, report.Visit{Level: 0, Node: report.NodeDocument}, rec.Visits[0])
	assert.Equal(t, report.Visit{Level: 1, Node: report.NodeSlide, Index: 1, ID: 256, Text: "Greeting"}, rec.Visits[1])
}

func TestRunChartCategories(t *testing.T) {
	chart := deck.NewChart("barChart", []string{"Q1", "Q2"}, document.Series{Name: "Sales", Values: []float64{10, 20}})
	d := deck.New(deck.NewSlide(256, "", deck.ChartShape(3, chart)))

	res := run(t, DefaultOptions(rules.Rule{Match: "Q", Replace: "Quarter "}), d)

	assert.Equal(t, []string{"Quarter 1", "Quarter 2"}, chart.Categories())
	assert.Equal(t, []document.Series{{Name: "Sales", Values: []float64{10, 20}}}, chart.Series())
	assert.Equal(t, 2, res.CategoriesChanged)
	assert.Equal(t, 1, res.ChartsRebuilt)
	assert.True(t, res.Changed())
}

func TestRunChartChainModes(t *testing.T) {
	rs := []rules.Rule{{Match: "foo", Replace: "bar"}, {Match: "bar", Replace: "baz"}}

	for mode, want := range map[ChainMode]string{ChainSequential: "baz baz", ChainIsolated: "bar baz"} {
		t.Run(string(mode), func(t *testing.T) {
			chart := deck.NewChart("pieChart", []string{"foo bar"}, document.Series{Name: "s", Values: []float64{1}})
			opts := DefaultOptions(rs...)
			opts.ChainMode = mode
			run(t, opts, deck.New(deck.NewSlide(1, "", deck.ChartShape(3, chart))))

			assert.Equal(t, []string{want}, chart.Categories())
		})
	}
}

func TestRunChartUnchangedIsNotRebuilt(t *testing.T) {
	chart := &countingChart{Chart: deck.NewChart("barChart", []string{"a"}, document.Series{Name: "s", Values: []float64{1}})}
	doc := &fakeDoc{slides: []document.Slide{&fakeSlide{shapes: []document.Shape{&chartShape{id: 3, chart: chart}}}}}

	e, err := New(DefaultOptions(rules.Rule{Match: "zzz", Replace: "y"}))
	require.NoError(t, err)
	res, err := e.Run(testContext(t), doc)
	require.NoError(t, err)

	assert.Zero(t, chart.calls)
	assert.Zero(t, res.ChartsRebuilt)
	assert.False(t, res.Changed())
}

func TestRunChartDatasetErrorContinues(t *testing.T) {
	bad := &failingChart{categories: []string{"a1"}}
	frame := frameOf([]string{"a2"})
	doc := &fakeDoc{slides: []document.Slide{&fakeSlide{shapes: []document.Shape{
		&chartShape{id: 7, chart: bad},
		deck.TextShape(8, frame),
	}}}}

	rec := &report.Recorder{}
	opts := DefaultOptions(rules.Rule{Match: "a", Replace: "b"})
	opts.Reporter = rec

	e, err := New(opts)
	require.NoError(t, err)
	res, err := e.Run(testContext(t), doc)
	require.NoError(t, err)

	assert.Equal(t, [][]string{{"b2"}}, frameTexts(frame), "shapes after a failed chart are still processed")
	require.Len(t, res.Errors(), 1)
	assert.Contains(t, res.Errors()[0].Message, "Replacing chart data of chart with id 7 on slide 1 failed with error:")
	assert.Contains(t, res.Messages()[0], "ERROR: ")
	assert.Equal(t, res.Issues, rec.Issues)
	assert.Zero(t, res.ChartsRebuilt)
}

func TestRunSlideSelection(t *testing.T) {
	build := func() (*deck.Deck, []*deck.Frame) {
		var frames []*deck.Frame
		d := deck.New()
		for i := 1; i <= 5; i++ {
			f := frameOf([]string{"x"})
			frames = append(frames, f)
			d.SlideList = append(d.SlideList, deck.NewSlide(255+i, "", deck.TextShape(2, f)))
		}
		return d, frames
	}

	t.Run("open_ended_range", func(t *testing.T) {
		d, frames := build()
		opts := DefaultOptions(rules.Rule{Match: "x", Replace: "y"})
		opts.Slides = "2,4-"
		res := run(t, opts, d)

		var got []string
		for _, f := range frames {
			got = append(got, f.Paras[0].Runs[0].Value)
		}
		assert.Equal(t, []string{"x", "y", "x", "y", "y"}, got)
		assert.Equal(t, 3, res.SlidesProcessed)
		assert.Equal(t, 2, res.SlidesSkipped)
	})

	t.Run("out_of_range_touches_nothing", func(t *testing.T) {
		d, frames := build()
		opts := DefaultOptions(rules.Rule{Match: "x", Replace: "y"})
		opts.Slides = "6"

		e, err := New(opts)
		require.NoError(t, err)
		_, err = e.Run(testContext(t), d)
		require.Error(t, err)
		assert.True(t, errors.Is(err, slides.ErrOutOfRange))
		for _, f := range frames {
			assert.Zero(t, f.Paras[0].Runs[0].Writes)
		}
	})
}

func TestRunToggles(t *testing.T) {
	tests := []struct {
		name       string
		textFrames bool
		tables     bool
		charts     bool
		wantText   string
		wantCell   string
		wantCat    string
	}{
		{name: "all", textFrames: true, tables: true, charts: true, wantText: "y", wantCell: "y", wantCat: "y"},
		{name: "no_text_frames", textFrames: false, tables: true, charts: true, wantText: "x", wantCell: "y", wantCat: "y"},
		{name: "no_tables", textFrames: true, tables: false, charts: true, wantText: "y", wantCell: "x", wantCat: "y"},
		{name: "no_charts", textFrames: true, tables: true, charts: false, wantText: "y", wantCell: "y", wantCat: "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := frameOf([]string{"x"})
			cell := frameOf([]string{"x"})
			chart := deck.NewChart("barChart", []string{"x"}, document.Series{Name: "s", Values: []float64{1}})
			d := deck.New(deck.NewSlide(1, "",
				deck.TextShape(2, text),
				deck.TableShape(3, deck.NewTable([]*deck.Frame{cell})),
				deck.ChartShape(4, chart),
			))

			opts := DefaultOptions(rules.Rule{Match: "x", Replace: "y"})
			opts.TextFrames, opts.Tables, opts.Charts = tt.textFrames, tt.tables, tt.charts
			rec := &report.Recorder{}
			opts.Reporter = rec
			run(t, opts, d)

			assert.Equal(t, tt.wantText, text.Paras[0].Runs[0].Value)
			assert.Equal(t, tt.wantCell, cell.Paras[0].Runs[0].Value)
			assert.Equal(t, tt.wantCat, chart.Cats[0])

			skipped := 0
			for _, v := range rec.Visits {
				if v.Skipped {
					skipped++
				}
			}
			if tt.name == "all" {
				assert.Zero(t, skipped)
			} else {
				assert.Equal(t, 1, skipped)
			}
		})
	}
}

func TestRunNestedGroupsAndTables(t *testing.T) {
	deep := frameOf([]string{"old"})
	c00, c11 := frameOf([]string{"old"}), frameOf([]string{"ol", "d"})
	d := deck.New(deck.NewSlide(1, "",
		deck.GroupShape(10, deck.GroupShape(11, deck.GroupShape(12, deck.TextShape(13, deep)))),
		deck.TableShape(20, deck.NewTable(
			[]*deck.Frame{c00, frameOf([]string{"keep"})},
			[]*deck.Frame{frameOf(), c11},
		)),
		deck.PlainShape(30, "pic"),
	))

	rec := &report.Recorder{}
	opts := DefaultOptions(rules.Rule{Match: "old", Replace: "new"})
	opts.Reporter = rec
	res := run(t, opts, d)

	assert.Equal(t, [][]string{{"new"}}, frameTexts(deep))
	assert.Equal(t, [][]string{{"new"}}, frameTexts(c00))
	assert.Equal(t, [][]string{{"ne", "w"}}, frameTexts(c11))
	assert.Equal(t, 3, res.Matches)

	var locs []string
	for _, w := range rec.Rewrites {
		locs = append(locs, w.Location.String())
	}
	assert.Equal(t, []string{
		"Slide[1].TextFrame[id=13].Run[0,0]",
		"Slide[1].Table[id=20].Run[0,0]",
		"Slide[1].Table[id=20].Run[0,0]",
		"Slide[1].Table[id=20].Run[0,1]",
	}, locs)
}

func TestEngine(t *testing.T) {
	t.Run("warnings_are_reported_before_the_pass", func(t *testing.T) {
		e, err := New(DefaultOptions(rules.Rule{Match: "foo", Replace: "bar"}, rules.Rule{Match: "bar", Replace: "baz"}))
		require.NoError(t, err)
		require.Len(t, e.Warnings(), 1)
		assert.Equal(t, rules.ChainedReplacement, e.Warnings()[0].Kind)

		res, err := e.Run(testContext(t), deck.New())
		require.NoError(t, err)
		require.Len(t, res.Warnings(), 1)
		assert.Equal(t, "WARNING: "+e.Warnings()[0].Message, res.Messages()[0])
	})

	t.Run("replacement_history", func(t *testing.T) {
		r := rules.Rule{Match: "a", Replace: "b"}
		e, err := New(DefaultOptions(r))
		require.NoError(t, err)
		assert.Empty(t, e.Replacements())

		for i := 0; i < 2; i++ {
			_, err := e.Run(testContext(t), deck.New())
			require.NoError(t, err)
		}
		assert.Equal(t, []rules.Rule{r, r}, e.Replacements())
	})

	t.Run("cancelled_context", func(t *testing.T) {
		e, err := New(DefaultOptions(rules.Rule{Match: "a", Replace: "b"}))
		require.NoError(t, err)
		ctx, cancel := context.WithCancel(testContext(t))
		cancel()

		f := frameOf([]string{"a"})
		_, err = e.Run(ctx, deck.New(deck.NewSlide(1, "", deck.TextShape(2, f))))
		assert.True(t, errors.Is(err, context.Canceled))
		assert.Equal(t, "a", f.Paras[0].Runs[0].Value)
	})
}

func TestNewErrors(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr error
		errText string
	}{
		{name: "empty_pattern", opts: DefaultOptions(rules.Rule{Match: ""}), wantErr: rules.ErrEmptyPattern},
		{name: "bad_regex", opts: Options{Rules: []rules.Rule{{Match: "(", Replace: ""}}, Regex: true}, errText: "compiling pattern"},
		{name: "bad_chain_mode", opts: Options{ChainMode: "sideways"}, errText: "unknown chain mode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.opts)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr))
			}
			if tt.errText != "" {
				assert.Contains(t, err.Error(), tt.errText)
			}
		})
	}
}

func TestParseChainMode(t *testing.T) {
	for in, want := range map[string]ChainMode{"": ChainSequential, "Sequential": ChainSequential, " isolated ": ChainIsolated} {
		got, err := ParseChainMode(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}
