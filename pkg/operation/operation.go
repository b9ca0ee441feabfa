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

package operation

import (
	"context"

	"github.com/walteh/decktext/pkg/log"
	"github.com/walteh/decktext/pkg/replace"
)

// 🎯 Operation is a unit of work executed by a Runner
type Operation interface {
	// Execute runs the operation
	Execute(ctx context.Context) error
	// Name identifies the operation in logs
	Name() string
}

// 🔧 Options contains configuration for a document operation
type Options struct {
	// Input is the document to read
	Input string
	// Output is where the result is written; empty means back over Input
	Output string
	// Engine configures the substitution pass. A nil Reporter is replaced by
	// Logger when one is set.
	Engine replace.Options
	// Logger renders the pass; optional
	Logger *log.Logger
}

// 📦 BaseOperation provides the fields shared by operations
type BaseOperation struct {
	Options
}

// 🏭 NewBaseOperation creates a new base operation
func NewBaseOperation(opts Options) BaseOperation {
	return BaseOperation{Options: opts}
}

// Name returns the input path
func (op *BaseOperation) Name() string {
	return op.Input
}

// OutputPath returns the effective output path
func (op *BaseOperation) OutputPath() string {
	if op.Output == "" {
		return op.Input
	}
	return op.Output
}
