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

import "fmt"

// ValidateEvidenceItem validates an EvidenceItem according to domain rules.
//
// Validation rules:
//   - Source must not be empty
//   - SourceType must be one of github, jira, document
//   - ConfidenceScore must lie in [0, 1]
//
// NOT validated:
//   - Data (open mapping, source-specific)
//   - Timestamp (absence is valid, e.g. document matches)
func ValidateEvidenceItem(item *EvidenceItem) error {
	if item == nil {
		return fmt.Errorf("%w: item is nil", ErrInvalidEvidenceItem)
	}

	if item.Source == "" {
		return fmt.Errorf("%w: %w", ErrInvalidEvidenceItem, ErrEmptySource)
	}

	if err := ValidateSourceType(item.SourceType); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidEvidenceItem, err)
	}

	if item.ConfidenceScore < 0.0 || item.ConfidenceScore > 1.0 {
		return fmt.Errorf("%w: %w: got %v", ErrInvalidEvidenceItem, ErrInvalidConfidence, item.ConfidenceScore)
	}

	return nil
}

// ValidateQueryResult validates a QueryResult according to domain rules.
//
// Validation rules:
//   - QueryID must not be empty
//   - Query must not be empty
//   - EvidenceCount must equal len(Evidence)
//   - every evidence item must itself be valid
func ValidateQueryResult(result *QueryResult) error {
	if result == nil {
		return fmt.Errorf("%w: result is nil", ErrInvalidQueryResult)
	}

	if result.QueryID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidQueryResult, ErrEmptyQueryID)
	}

	if result.Query == "" {
		return fmt.Errorf("%w: %w", ErrInvalidQueryResult, ErrEmptyQuery)
	}

	if result.EvidenceCount != len(result.Evidence) {
		return fmt.Errorf("%w: %w", ErrInvalidQueryResult, ErrEvidenceCountMismatch)
	}

	for i := range result.Evidence {
		if err := ValidateEvidenceItem(&result.Evidence[i]); err != nil {
			return fmt.Errorf("%w: evidence[%d]: %w", ErrInvalidQueryResult, i, err)
		}
	}

	return nil
}

// ValidateSourceType validates that a SourceType has a known value.
func ValidateSourceType(st SourceType) error {
	switch st {
	case SourceTypeGitHub, SourceTypeJira, SourceTypeDocument:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidSourceType, st)
	}
}
