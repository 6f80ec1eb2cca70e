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


package vcs

import "errors"

var (
	// ErrNotConfigured indicates the client is missing its repository
	// coordinates.
	ErrNotConfigured = errors.New("vcs client not configured")

	// ErrNotFound indicates the requested pull request does not exist.
	ErrNotFound = errors.New("pull request not found")

	// ErrRequestFailed indicates the host rejected or failed a request.
	ErrRequestFailed = errors.New("vcs request failed")
)
