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


// Package search scores normalized documents against a query and packages
// surviving matches as evidence.
//
// Documents are rescanned per query; there is no persistent index. Each
// search re-resolves the query's intent independently of the dispatcher's
// resolution, so the scorer always sees intent parameters even when the
// search is invoked outside a dispatch pipeline.
package search
