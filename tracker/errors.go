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


package tracker

import "errors"

var (
	// ErrMissingCredentials indicates the client has no URL, username, or
	// API token configured.
	ErrMissingCredentials = errors.New("tracker credentials not configured")

	// ErrTicketNotFound indicates the requested ticket does not exist.
	ErrTicketNotFound = errors.New("ticket not found")

	// ErrRequestFailed indicates the tracker rejected or failed a request.
	ErrRequestFailed = errors.New("tracker request failed")
)
