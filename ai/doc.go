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


// Package ai defines the language-model collaborator interfaces: resolving
// free-text queries into structured intents, and formatting evidence into a
// human-readable summary.
//
// Every interface has a deterministic keyword-based fallback implementation
// in this package. The fallback is part of the engine's contract, not a test
// convenience: the pipeline must keep answering when no model endpoint is
// configured or reachable, so LLM-backed implementations degrade to the
// fallback rather than surfacing resolver errors to the caller.
package ai
