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

// Package storage provides the persistence abstraction for query results.
//
// It defines the ResultStore interface that decouples the storage
// implementation from the query pipeline, so different backends (BadgerDB,
// in-memory, etc.) can be used interchangeably.
//
// # Usage
//
// Open a store:
//
//	store, err := badger.NewResultStore("/path/to/db")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer store.Close()
//
// Use in tests with in-memory storage:
//
//	store, err := badger.NewMemoryStore()
//
// # Semantics
//
// Storing a result under an existing query ID replaces the previous result;
// retries of the same query are idempotent rather than duplicated. The
// store stamps CreatedAt at write time (UTC) and derives EvidenceCount from
// the evidence slice, so the two can never disagree on disk.
//
// # Thread Safety
//
// All implementations must be safe for concurrent use. Writes that touch
// both the record and its listing index are transactional: a reader never
// observes the index without the record or vice versa.
package storage
