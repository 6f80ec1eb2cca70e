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


// Package relevance turns query text into search terms and scores candidate
// records against them.
//
// Scoring is a sum of four additive components clamped to 1.0: keyword
// coverage, an exact-phrase boost, an intent-word boost, and a pattern boost
// drawn from an ordered rule table where the first rule whose query predicate
// fires wins. Records are admitted only when their score exceeds
// AdmissionThreshold.
//
// The pattern rules are heuristic and their weights are load-bearing:
// downstream ranking depends on the exact boost values, so changing them is a
// behavioral change, not a tuning tweak.
package relevance
