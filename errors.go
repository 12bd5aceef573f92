// Copyright 2026 The Rivaas Authors
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

package relay

import "errors"

// Error types for better error handling and testing.
//
// Design rationale:
//   - Sentinel errors (package-level vars) enable [errors.Is] checks
//   - Configuration errors are the only user-visible failures in normal
//     operation; sink write failures are absorbed by the worker pool and
//     surfaced only as counters (see [System.DebugInfo])
//
// Usage pattern:
//
//	if err := sys.SetWorkerCount(n); err != nil {
//	    if errors.Is(err, relay.ErrInvalidConfiguration) {
//	        // Reject the operator input, keep the previous value
//	    }
//	}
var (
	// ErrInvalidConfiguration indicates a rejected configuration value:
	// a zero worker count, a non-positive period, or an unknown severity.
	// The previously staged configuration is left unchanged.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrQueueUnavailable indicates a message was submitted after the
	// system's final teardown via [System.Close]. It is non-retryable.
	ErrQueueUnavailable = errors.New("message queue unavailable")
)
