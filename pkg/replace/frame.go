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
	"unicode/utf8"

	"github.com/walteh/decktext/pkg/document"
	"github.com/walteh/decktext/pkg/match"
	"github.com/walteh/decktext/pkg/report"
	"github.com/walteh/decktext/pkg/rules"
	"github.com/walteh/decktext/pkg/splice"
	"gitlab.com/tozd/go/errors"
)

func (p *pass) replaceFrame(level int, loc report.Location, frame document.TextFrame) error {
	if p.opts.ChainMode == ChainIsolated {
		return p.replaceFrameIsolated(level, loc, frame)
	}
	for _, rule := range p.compiled {
		if rule.Regex() {
			if err := p.replaceFrameRegex(level, loc, frame, rule); err != nil {
				return err
			}
			continue
		}
		p.replaceFrameLiteral(level, loc, frame, rule)
	}
	return nil
}

// replaceFrameRegex collects every match up front and splices them right to
// left, so pending offsets stay valid.
func (p *pass) replaceFrameRegex(level int, loc report.Location, frame document.TextFrame, rule *rules.Compiled) error {
	ms, err := rule.FindAll(splice.FrameText(frame))
	if err != nil {
		return errors.Errorf("rule %d: %w", rule.Index, err)
	}
	if len(ms) == 0 {
		p.miss(level, loc, rule)
		return nil
	}
	for i := len(ms) - 1; i >= 0; i-- {
		p.apply(level, loc, frame, rule, ms[i])
	}
	return nil
}

// replaceFrameLiteral scans left to right and re-flattens after each splice.
// The next scan starts after the inserted text, so a rule never matches its
// own output.
func (p *pass) replaceFrameLiteral(level int, loc report.Location, frame document.TextFrame, rule *rules.Compiled) {
	text := splice.FrameText(frame)
	m, ok := rule.Next(text, 0)
	if !ok {
		p.miss(level, loc, rule)
		return
	}
	for ok {
		p.apply(level, loc, frame, rule, m)

		// everything after the match is left as it was
		tail := utf8.RuneCountInString(text) - m.End()
		text = splice.FrameText(frame)
		m, ok = rule.Next(text, utf8.RuneCountInString(text)-tail)
	}
}

func (p *pass) replaceFrameIsolated(level int, loc report.Location, frame document.TextFrame) error {
	planned, err := plan(p.compiled, splice.FrameText(frame))
	if err != nil {
		return err
	}

	hit := make([]bool, len(p.compiled))
	for _, pm := range planned {
		hit[pm.Rule] = true
	}
	for i, rule := range p.compiled {
		if !hit[i] {
			p.miss(level, loc, rule)
		}
	}

	// plan returns right to left
	for _, pm := range planned {
		p.apply(level, loc, frame, p.compiled[pm.Rule], pm.Match)
	}
	return nil
}

func (p *pass) miss(level int, loc report.Location, rule *rules.Compiled) {
	p.rep.Match(report.Match{Level: level, Location: loc, Pattern: rule.Match, Regex: rule.Regex()})
}

func (p *pass) apply(level int, loc report.Location, frame document.TextFrame, rule *rules.Compiled, m match.Match) {
	p.res.Matches++
	p.rep.Match(report.Match{
		Level:       level,
		Location:    loc,
		Pattern:     rule.Match,
		Found:       true,
		Regex:       rule.Regex(),
		Start:       m.Start,
		Text:        m.Text,
		Replacement: m.Replacement,
	})

	edits, placed := splice.SpliceFrame(frame, m.Start, m.Text, m.Replacement)
	for _, e := range edits {
		l := loc
		l.Paragraph, l.Run = e.Paragraph, e.Span
		p.rep.Rewrite(report.Rewrite{Level: level + 1, Location: l, Before: e.Before, After: e.After})
	}
	p.res.SpansRewritten += len(edits)

	if !placed {
		p.issuef(report.SeverityWarning, "Slide[%d].%s[id=%d]: replacement '%s' for '%s' at %d was dropped because the paragraph has no runs",
			loc.Slide, loc.ShapeKind, loc.ShapeID, m.Replacement, m.Text, m.Start)
	}
	p.logger.Trace().Int("slide", loc.Slide).Int("shape", loc.ShapeID).Int("start", m.Start).Int("edits", len(edits)).Msg("spliced match")
}
