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
Package config loads the run configuration of decktext from a file.

	            +-------------+
	            |   Config    |
	            | (rules and  |
	            |  toggles)   |
	            +------+------+
	                   |
	      +------------+------------+
	      |            |            |
	+-----+----+ +-----+----+ +-----+----+
	|   YAML   | |   JSON   | |   HCL    |
	|  Parser  | |  Parser  | |  Parser  |
	+----------+ +----------+ +----------+

🎯 Purpose:
- Reads the ordered rule list and processing toggles from a file
- Rejects unknown fields so typos never pass silently
- Validates rules before any document is opened

🔄 Flow:
1. Load picks a registered Parser by file extension
2. The parser decodes the file strictly
3. Validate checks patterns, regex compilability and the chain mode
4. Options turns the Config into engine options

📝 Formats:

	# decktext.yaml
	regex: true
	chain_mode: isolated
	charts: false
	rules:
	  - match: '(\d{4})-(\d{2})'
	    replace: '\2/\1'

	# decktext.hcl
	slides = "1,3-"
	rule {
	  match   = "ACME"
	  replace = "Acme Corp."
	}

Toggles left out of the file default to enabled. Command line flags that are
set explicitly take precedence over the file.
*/
package config
