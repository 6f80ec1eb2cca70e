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

// Package report renders stored query results into human- and
// machine-readable forms.
//
// Two surfaces are provided: audit reports (plain text or structured JSON)
// derived from a complete query result, and raw evidence exports (JSON,
// CSV, or spreadsheet) written to an export directory for downstream
// tooling.
package report
