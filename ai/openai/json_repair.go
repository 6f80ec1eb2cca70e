// Copyright 2026 Auditkit Authors
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


package openai

import "regexp"

var (
	// `{ type":` or `, type":` -> the key lost its opening quote.
	unquotedKeyRE = regexp.MustCompile(`([{,]\s*)([A-Za-z_][A-Za-z0-9_]*)(":)`)

	// `"a": 1,}` -> trailing comma before a closing brace or bracket.
	trailingCommaRE = regexp.MustCompile(`,(\s*[}\]])`)
)

// repairJSON fixes common defects in model-produced JSON: keys missing their
// opening quote and trailing commas. It deliberately does not attempt
// anything structural; unrecoverable output should fail the unmarshal and
// trigger the keyword fallback instead.
func repairJSON(s string) string {
	s = unquotedKeyRE.ReplaceAllString(s, `$1"$2$3`)
	s = trailingCommaRE.ReplaceAllString(s, `$1`)
	return s
}
