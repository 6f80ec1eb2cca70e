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


package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidEvidenceItem indicates an EvidenceItem failed validation.
	ErrInvalidEvidenceItem = errors.New("invalid evidence item")

	// ErrInvalidQueryResult indicates a QueryResult failed validation.
	ErrInvalidQueryResult = errors.New("invalid query result")

	// ErrInvalidConfidence indicates a confidence score outside [0, 1].
	ErrInvalidConfidence = errors.New("confidence score must be between 0 and 1")

	// ErrInvalidSourceType indicates an unknown SourceType value.
	ErrInvalidSourceType = errors.New("invalid source type")

	// ErrEmptySource indicates the Source field is empty.
	ErrEmptySource = errors.New("source cannot be empty")

	// ErrEmptyQueryID indicates the QueryID field is empty.
	ErrEmptyQueryID = errors.New("query id cannot be empty")

	// ErrEmptyQuery indicates the query text is empty.
	ErrEmptyQuery = errors.New("query text cannot be empty")

	// ErrEvidenceCountMismatch indicates EvidenceCount disagrees with the
	// evidence slice length.
	ErrEvidenceCountMismatch = errors.New("evidence count does not match evidence length")
)
