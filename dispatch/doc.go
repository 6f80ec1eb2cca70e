// Copyright 2026 Auditkit Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package dispatch routes a resolved intent to the evidence sources that
// can answer it and merges their results.
//
// Each source (version control, issue tracker, document corpus) is wrapped
// in a Handler. A Handler failure never aborts a query: the dispatcher
// converts it into a synthetic evidence item with a confidence score of
// zero so the caller always receives a complete, inspectable result set.
package dispatch
