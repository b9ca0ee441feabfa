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
Package document defines the host document model that decktext edits.

	+-----------+
	| Document  |
	+-----+-----+
	      |
	+-----+-----+        +-------------------------------------------+
	|  Slide    +--------+ Shape: Plain | Text | Table | Group | Chart |
	+-----------+        +-------------------------------------------+
	                          |        |        |
	                     TextFrame   Cells   Categories/Series
	                          |
	                     Paragraph -> Span (text + Formatting)

🎯 Purpose:
  - Describe the capabilities the substitution engine needs from a document
  - Keep backends (pptx, yaml/json decks) interchangeable

📝 Rules:
  - A Span is never split or merged by the engine, only its text is rewritten
  - Formatting is a comparable value: read it before a text write, write it
    back after, compare with ==
  - Shape content is a closed set of variants, dispatched with a type switch
*/
package document
