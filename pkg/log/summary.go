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

package log

import (
	"fmt"
	"io"

	"github.com/pterm/pterm"
	"github.com/walteh/decktext/pkg/report"
)

// SummaryHeader opens the list of issues printed after a run
const SummaryHeader = "The following warnings and errors have been issued during this run:"

// 📊 Summary prints every collected warning and error to w, which is stderr
// for the CLI. Nothing is printed when the run was clean.
func (l *Logger) Summary(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.issues) == 0 {
		return
	}

	fmt.Fprintln(w, SummaryHeader)
	warning := pterm.Warning.WithWriter(w)
	failure := pterm.Error.WithWriter(w)
	for _, is := range l.issues {
		if is.Severity == report.SeverityError {
			failure.Println(is.Message)
			continue
		}
		warning.Println(is.Message)
	}
	l.zlog.Info().Int("issues", len(l.issues)).Msg("summary printed")
}
