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

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime"
	"runtime/debug"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/walteh/decktext/pkg/docio"
)

// 📦 buildInfo describes the binary and the document formats it can rewrite
type buildInfo struct {
	Version   string              `json:"version"`
	Revision  string              `json:"revision,omitempty"`
	Modified  bool                `json:"modified,omitempty"`
	Built     string              `json:"built,omitempty"`
	GoVersion string              `json:"go_version"`
	Platform  string              `json:"platform"`
	Formats   map[string][]string `json:"formats"`
}

func readBuildInfo() *buildInfo {
	info := &buildInfo{
		Version:   "dev",
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
		Formats:   map[string][]string{},
	}
	for backend, exts := range docio.Formats() {
		info.Formats[string(backend)] = exts
	}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	if v := bi.Main.Version; v != "" && v != "(devel)" {
		info.Version = v
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			info.Revision = s.Value
		case "vcs.time":
			info.Built = s.Value
		case "vcs.modified":
			info.Modified = s.Value == "true"
		}
	}
	return info
}

// writeText prints info for people, one backend per line
func (info *buildInfo) writeText(w io.Writer) error {
	revision := info.Revision
	if revision == "" {
		revision = "unknown"
	}
	if info.Modified {
		revision += " (modified)"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "🚀 decktext version info:\n")
	fmt.Fprintf(&sb, "Version:   %s\n", info.Version)
	fmt.Fprintf(&sb, "Revision:  %s\n", revision)
	if info.Built != "" {
		fmt.Fprintf(&sb, "Built:     %s\n", info.Built)
	}
	fmt.Fprintf(&sb, "Go:        %s\n", info.GoVersion)
	fmt.Fprintf(&sb, "Platform:  %s\n", info.Platform)

	backends := make([]string, 0, len(info.Formats))
	for b := range info.Formats {
		backends = append(backends, b)
	}
	sort.Strings(backends)
	fmt.Fprintf(&sb, "Formats:\n")
	for _, b := range backends {
		fmt.Fprintf(&sb, "  %-6s %s\n", b, strings.Join(info.Formats[b], " "))
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func newVersionCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information and supported document formats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := readBuildInfo()
			if !asJSON {
				return info.writeText(cmd.OutOrStdout())
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(info)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}
