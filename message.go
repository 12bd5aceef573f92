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

import "time"

// DefaultDestination is the reserved destination identifier used by
// producers that do not name one.
const DefaultDestination = "default"

// Message is one unit of delivery: a rendered text line addressed to a
// named destination. Messages are immutable once constructed; they are
// queued by producers and consumed exactly once by the worker pool.
type Message struct {
	// Destination is the identifier the message is routed by. A destination
	// with no bound output silently discards the message.
	Destination string

	// Severity is the severity the producer flushed the message at.
	// Filtering against a minimum severity happens on the producer side;
	// the delivery loop never re-filters queued messages.
	Severity Severity

	// Time is the instant the message was flushed by its producer.
	Time time.Time

	// Text is the rendered message body, without trailing newline.
	Text string
}
