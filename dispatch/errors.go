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

package dispatch

import "errors"

var (
	// ErrHandlerRequired is returned when a dispatcher is constructed
	// without at least one source handler.
	ErrHandlerRequired = errors.New("at least one source handler is required")

	// ErrClientNotConfigured is returned by a handler whose backing
	// client was never supplied.
	ErrClientNotConfigured = errors.New("source client not configured")

	// ErrUnknownFunction is returned when the resolved intent names an
	// operation the handler does not implement.
	ErrUnknownFunction = errors.New("unknown function requested")
)
