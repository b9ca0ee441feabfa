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

package match

import (
	"slices"
	"strconv"
	"strings"

	"github.com/dlclark/regexp2"
	"gitlab.com/tozd/go/errors"
)

// 🧪 Pattern is a compiled regular expression plus its replacement template.
// Patterns run in multi-line mode so ^ and $ anchor at paragraph breaks.
type Pattern struct {
	re       *regexp2.Regexp
	template []piece
}

// piece is either literal text or a group reference
type piece struct {
	literal string
	group   int
	isGroup bool
}

// Compile compiles expr and parses template.
//
// Templates follow Python's re syntax: \1 .. \99, \g<name> and \g<N> refer
// to groups, \0 and three digit octal numbers are character escapes, and
// \a \b \f \n \r \t \v \\ are the usual control escapes. Any other escaped
// letter is an error; other escaped characters are kept with their backslash.
// A $ is plain text.
func Compile(expr, template string) (*Pattern, error) {
	re, err := regexp2.Compile(expr, regexp2.Multiline)
	if err != nil {
		return nil, errors.Errorf("compiling pattern %q: %w", expr, err)
	}
	pieces, err := parseTemplate(re, template)
	if err != nil {
		return nil, errors.Errorf("parsing replacement %q: %w", template, err)
	}
	return &Pattern{re: re, template: pieces}, nil
}

// String returns the source expression
func (p *Pattern) String() string {
	return p.re.String()
}

// 🔍 FindAll returns every match in haystack in ascending start order
func (p *Pattern) FindAll(haystack string) ([]Match, error) {
	var out []Match
	m, err := p.re.FindStringMatch(haystack)
	for err == nil && m != nil {
		out = append(out, Match{
			Start:       m.Index,
			Text:        m.String(),
			Replacement: p.expand(m),
		})
		m, err = p.re.FindNextMatch(m)
	}
	if err != nil {
		return nil, errors.Errorf("matching %q: %w", p.re.String(), err)
	}
	return out, nil
}

// ReplaceAll substitutes every match in s
func (p *Pattern) ReplaceAll(s string) (string, error) {
	ms, err := p.FindAll(s)
	if err != nil {
		return "", err
	}
	return Apply(s, ms), nil
}

func (p *Pattern) expand(m *regexp2.Match) string {
	var sb strings.Builder
	for _, pc := range p.template {
		if !pc.isGroup {
			sb.WriteString(pc.literal)
			continue
		}
		if g := m.GroupByNumber(pc.group); g != nil {
			sb.WriteString(g.String())
		}
	}
	return sb.String()
}

// escapes are the single character escapes a template understands
var escapes = map[byte]byte{
	'a': '\a', 'b': '\b', 'f': '\f', 'n': '\n', 'r': '\r', 't': '\t', 'v': '\v', '\\': '\\',
}

func parseTemplate(re *regexp2.Regexp, template string) ([]piece, error) {
	var (
		out []piece
		lit strings.Builder
	)
	numbers := re.GetGroupNumbers()

	flush := func() {
		if lit.Len() > 0 {
			out = append(out, piece{literal: lit.String()})
			lit.Reset()
		}
	}
	group := func(ref string) error {
		n, err := resolveGroup(re, numbers, ref)
		if err != nil {
			return err
		}
		flush()
		out = append(out, piece{group: n, isGroup: true})
		return nil
	}

	for i := 0; i < len(template); i++ {
		c := template[i]
		if c != '\\' {
			lit.WriteByte(c)
			continue
		}
		if i+1 == len(template) {
			return nil, errors.New("bad escape (end of template)")
		}

		next := template[i+1]
		switch {
		case next == 'g':
			if i+2 >= len(template) || template[i+2] != '<' {
				return nil, errors.Errorf("missing < after \\g at offset %d", i)
			}
			end := strings.IndexByte(template[i+3:], '>')
			if end < 0 {
				return nil, errors.Errorf("unterminated \\g< at offset %d", i)
			}
			if err := group(template[i+3 : i+3+end]); err != nil {
				return nil, err
			}
			i = i + 3 + end
		case next == '0':
			// \0 is an octal escape of up to three digits, never group 0
			j := i + 2
			for j < len(template) && j < i+4 && isOctal(template[j]) {
				j++
			}
			v, _ := strconv.ParseUint(template[i+1:j], 8, 16)
			lit.WriteRune(rune(v))
			i = j - 1
		case isDigit(next):
			if i+3 < len(template) && isOctal(next) && isOctal(template[i+2]) && isOctal(template[i+3]) {
				v, _ := strconv.ParseUint(template[i+1:i+4], 8, 16)
				if v > 0o377 {
					return nil, errors.Errorf("octal escape %s outside of range 0-0o377", template[i:i+4])
				}
				lit.WriteRune(rune(v))
				i += 3
				continue
			}
			j := i + 2
			if j < len(template) && isDigit(template[j]) {
				j++
			}
			if err := group(template[i+1 : j]); err != nil {
				return nil, err
			}
			i = j - 1
		default:
			if e, ok := escapes[next]; ok {
				lit.WriteByte(e)
			} else if isLetter(next) {
				return nil, errors.Errorf("bad escape \\%c at offset %d", next, i)
			} else {
				lit.WriteByte(c)
				lit.WriteByte(next)
			}
			i++
		}
	}
	flush()
	return out, nil
}

func resolveGroup(re *regexp2.Regexp, numbers []int, ref string) (int, error) {
	if ref == "" {
		return 0, errors.New("empty group reference")
	}
	if n, err := strconv.Atoi(ref); err == nil {
		if !slices.Contains(numbers, n) {
			return 0, errors.Errorf("invalid group reference %d", n)
		}
		return n, nil
	}
	n := re.GroupNumberFromName(ref)
	if n < 0 {
		return 0, errors.Errorf("unknown group name %q", ref)
	}
	return n, nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isOctal(c byte) bool {
	return c >= '0' && c <= '7'
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
