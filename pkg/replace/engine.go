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

// Package replace drives text substitution over a whole document: it walks
// slides, shapes, tables, groups and charts and hands every text frame to the
// splice engine.
package replace

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/walteh/decktext/pkg/document"
	"github.com/walteh/decktext/pkg/report"
	"github.com/walteh/decktext/pkg/rules"
	"github.com/walteh/decktext/pkg/slides"
	"gitlab.com/tozd/go/errors"
)

// 🏭 Engine applies a fixed rule list to documents
type Engine struct {
	opts     Options
	compiled []*rules.Compiled
	warnings []rules.Warning
	history  []rules.Rule
}

// New validates and compiles the rules and runs the conflict analyzer.
// Nothing is read from or written to any document yet.
func New(opts Options) (*Engine, error) {
	mode, err := ParseChainMode(string(opts.ChainMode))
	if err != nil {
		return nil, err
	}
	opts.ChainMode = mode

	compiled, err := rules.Compile(opts.Rules, opts.Regex)
	if err != nil {
		return nil, errors.Errorf("compiling rules: %w", err)
	}
	if opts.Reporter == nil {
		opts.Reporter = report.Nop{}
	}

	return &Engine{
		opts:     opts,
		compiled: compiled,
		warnings: rules.Analyze(opts.Rules, opts.Regex),
	}, nil
}

// Warnings returns the rule conflicts found by New
func (e *Engine) Warnings() []rules.Warning {
	return e.warnings
}

// Replacements returns every rule applied by Run so far, across documents
func (e *Engine) Replacements() []rules.Rule {
	return append([]rules.Rule(nil), e.history...)
}

// 📊 Result summarizes one pass
type Result struct {
	Matches           int
	SpansRewritten    int
	CategoriesChanged int
	ChartsRebuilt     int
	SlidesProcessed   int
	SlidesSkipped     int
	// Issues holds rule warnings and recovered chart errors in the order they occurred
	Issues []report.Issue
}

// Changed reports whether the pass modified the document
func (r *Result) Changed() bool {
	return r.SpansRewritten > 0 || r.ChartsRebuilt > 0
}

func (r *Result) filter(sev report.Severity) []report.Issue {
	var out []report.Issue
	for _, i := range r.Issues {
		if i.Severity == sev {
			out = append(out, i)
		}
	}
	return out
}

// Warnings returns the issues the pass worked around, such as replacement
// text dropped for lack of a run
func (r *Result) Warnings() []report.Issue { return r.filter(report.SeverityWarning) }

// Errors returns the recovered failures of the pass, such as a chart whose
// dataset could not be rebuilt
func (r *Result) Errors() []report.Issue { return r.filter(report.SeverityError) }

// Messages renders Issues as "WARNING: ..." and "ERROR: ..." lines
func (r *Result) Messages() []string {
	out := make([]string, len(r.Issues))
	for i, is := range r.Issues {
		out[i] = is.String()
	}
	return out
}

// named is implemented by documents that know their file name
type named interface {
	Name() string
}

// 🚀 Run applies the rules to doc in place.
//
// The slide list is resolved before the first mutation, so a bad selection
// leaves doc untouched. Chart dataset failures are recorded in the Result and
// do not stop the pass. Cancellation is checked between slides only.
func (e *Engine) Run(ctx context.Context, doc document.Document) (*Result, error) {
	all := doc.Slides()
	sel, err := slides.Parse(e.opts.Slides, len(all))
	if err != nil {
		return nil, errors.Errorf("selecting slides: %w", err)
	}

	logger := zerolog.Ctx(ctx).With().Str("component", "replace").Logger()
	p := &pass{
		Engine: e,
		rep:    e.opts.Reporter,
		res:    &Result{},
		logger: &logger,
	}
	e.history = append(e.history, e.opts.Rules...)

	for _, w := range e.warnings {
		p.issue(report.SeverityWarning, w.Message)
	}

	name := ""
	if n, ok := doc.(named); ok {
		name = n.Name()
	}
	p.rep.Visit(report.Visit{Level: 0, Node: report.NodeDocument, Text: name})

	for i, slide := range all {
		if err := ctx.Err(); err != nil {
			return p.res, errors.Errorf("processing slide %d: %w", i+1, err)
		}
		p.slide = i + 1
		selected := sel.Contains(p.slide)
		title := slide.Title()
		if title == "" {
			title = "<no title>"
		}
		p.rep.Visit(report.Visit{Level: 1, Node: report.NodeSlide, Index: p.slide, ID: slide.ID(), Text: title, Skipped: !selected})
		if !selected {
			p.res.SlidesSkipped++
			continue
		}

		p.logger.Debug().Int("slide", p.slide).Int("id", slide.ID()).Msg("processing slide")
		if err := p.shapes(2, slide.Shapes()); err != nil {
			return p.res, errors.Errorf("processing slide %d: %w", p.slide, err)
		}
		p.res.SlidesProcessed++
	}

	p.logger.Debug().
		Int("matches", p.res.Matches).
		Int("spans", p.res.SpansRewritten).
		Int("categories", p.res.CategoriesChanged).
		Msg("pass complete")
	return p.res, nil
}

// pass holds the state of a single Run
type pass struct {
	*Engine
	rep    report.Reporter
	res    *Result
	logger *zerolog.Logger
	slide  int
}

func (p *pass) issue(sev report.Severity, msg string) {
	is := report.Issue{Severity: sev, Message: msg}
	p.res.Issues = append(p.res.Issues, is)
	p.rep.Issue(is)
}

func (p *pass) issuef(sev report.Severity, format string, args ...any) {
	p.issue(sev, fmt.Sprintf(format, args...))
}
