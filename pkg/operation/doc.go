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

/*
Package operation turns a configured rule set into work on files.

🎯 Purpose:
- Runs one substitution pass per document: open, replace, save
- Expands batch globs and maps every input to its output path
- Executes many documents concurrently with a bounded worker count

🔄 Flow:
1. The engine is built first, so bad rules fail before any file is read
2. The document is opened with the backend matching its extension
3. The engine rewrites it in place in memory
4. The result is saved to the output path, or back over the input

⚡ Concurrency:
A document is never shared between goroutines. The Runner only runs
independent documents side by side; each pass is single threaded.

🔍 Example:

	op := operation.NewReplaceOperation(operation.Options{
		Input:  "deck.pptx",
		Output: "out.pptx",
		Engine: replace.DefaultOptions(rules.Rule{Match: "Q", Replace: "Quarter "}),
	})
	runner := operation.NewRunner(zerolog.Ctx(ctx), 1)
	err := runner.Run(ctx, op)
*/
package operation
