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

// Package log renders the events of a substitution pass for people.
//
// Console lines use fatih/color; every line is mirrored as a zerolog record so
// a --debug run carries the same information in structured form.
package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/walteh/decktext/pkg/report"
)

// 🎨 Display configuration
const (
	fileIndent  = 4  // spaces to indent document entries
	nameWidth   = 35 // Base width for document path
	statusWidth = 15 // Width for status text
)

// Verbosity selects how much of a pass is printed
type Verbosity int

const (
	// Quiet prints nothing but the closing summary
	Quiet Verbosity = iota
	// Normal prints one line per rewritten run or category
	Normal
	// Verbose prints the whole structure walk
	Verbose
)

// VerbosityFor maps the two CLI switches to a Verbosity. Verbose wins.
func VerbosityFor(verbose, quiet bool) Verbosity {
	switch {
	case verbose:
		return Verbose
	case quiet:
		return Quiet
	default:
		return Normal
	}
}

// 🎯 DocumentResult summarizes one processed document for logging
type DocumentResult struct {
	Input   string // Input path
	Output  string // Output path
	Changes int    // Number of rewritten runs and categories
	Issues  int    // Number of warnings and errors
	Err     error  // Failure, if any
}

// 🎯 Logger handles structured logging with console output
type Logger struct {
	zlog      zerolog.Logger
	console   io.Writer
	mu        sync.Mutex
	verbosity Verbosity
	diff      bool
	issues    []report.Issue
	documents []DocumentResult

	// set on loggers returned by ForDocument
	parent *Logger
	buf    *bytes.Buffer
}

// 🏭 New creates a new logger printing to console
func New(console io.Writer, zlog zerolog.Logger) *Logger {
	return &Logger{
		zlog:      zlog,
		console:   console,
		mu:        sync.Mutex{},
		verbosity: Normal,
	}
}

// SetVerbosity changes how much of a pass is printed
func (l *Logger) SetVerbosity(v Verbosity) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.verbosity = v
}

// SetDiff renders run rewrites as inline diffs instead of before/after pairs
func (l *Logger) SetDiff(on bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.diff = on
}

// 📦 ForDocument returns a logger for one document of a batch. Its lines are
// held back until Flush so concurrent documents never interleave.
func (l *Logger) ForDocument(name string) *Logger {
	l.mu.Lock()
	defer l.mu.Unlock()
	buf := &bytes.Buffer{}
	return &Logger{
		zlog:      l.zlog.With().Str("document", name).Logger(),
		console:   buf,
		verbosity: l.verbosity,
		diff:      l.diff,
		parent:    l,
		buf:       buf,
	}
}

// Flush hands buffered lines, issues and document results to the parent logger
func (l *Logger) Flush() {
	if l.parent == nil {
		return
	}
	l.mu.Lock()
	out := l.buf.Bytes()
	issues, docs := l.issues, l.documents
	l.buf = &bytes.Buffer{}
	l.console = l.buf
	l.issues, l.documents = nil, nil
	l.mu.Unlock()

	l.parent.mu.Lock()
	defer l.parent.mu.Unlock()
	_, _ = l.parent.console.Write(out)
	l.parent.issues = append(l.parent.issues, issues...)
	l.parent.documents = append(l.parent.documents, docs...)
}

// Issues returns every issue received so far
func (l *Logger) Issues() []report.Issue {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]report.Issue(nil), l.issues...)
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		panic("logger not found in context")
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// 📝 formatDocument formats a batch entry for display
func (l *Logger) formatDocument(res DocumentResult) string {
	var symbol rune
	var symbolColor color.Attribute
	var status string
	switch {
	case res.Err != nil:
		symbol = '✗'
		symbolColor = color.FgRed
		status = "FAILED"
	case res.Changes > 0:
		symbol = '⟳'
		symbolColor = color.FgBlue
		status = fmt.Sprintf("%d CHANGED", res.Changes)
	default:
		symbol = '•'
		symbolColor = color.FgCyan
		status = "UNCHANGED"
	}

	line := fmt.Sprintf("%s%s %s %s",
		fmt.Sprintf("%*s", fileIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", nameWidth, res.Input),
		fmt.Sprintf("%-*s", statusWidth, status))
	if res.Err == nil && res.Output != "" && res.Output != res.Input {
		line += color.New(color.Faint).Sprint("→ " + res.Output)
	}
	return line
}

// 📝 LogDocument logs the outcome of one document
func (l *Logger) LogDocument(ctx context.Context, res DocumentResult) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.documents = append(l.documents, res)
	fmt.Fprintln(l.console, l.formatDocument(res))

	ev := l.zlog.Info()
	if res.Err != nil {
		ev = l.zlog.Error().Err(res.Err)
	}
	ev.Str("input", res.Input).
		Str("output", res.Output).
		Int("changes", res.Changes).
		Int("issues", res.Issues).
		Msg("document processed")
}

// Documents returns every document logged so far
func (l *Logger) Documents() []DocumentResult {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]DocumentResult(nil), l.documents...)
}

// 📝 LogNewline logs a newline
func (l *Logger) LogNewline() {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console)
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("decktext")
	fmt.Fprintf(l.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

// 📝 Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}
