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

import (
	"io"
	"time"
)

// WithPeriod sets the delivery check period. The period is the upper bound
// on delivery latency after submission, except at shutdown when workers are
// woken promptly.
func WithPeriod(period time.Duration) Option {
	return func(s *System) { s.period = period }
}

// WithWorkerCount sets the number of delivery workers.
func WithWorkerCount(n int) Option {
	return func(s *System) { s.workerCount = n }
}

// WithMinSeverity sets the minimum severity inherited by producers that do
// not specify their own threshold.
func WithMinSeverity(min Severity) Option {
	return func(s *System) { s.minSeverity = min }
}

// WithOutput binds a destination identifier to a sink at construction time.
// Equivalent to calling [System.SetOutput] after New.
func WithOutput(id string, sink io.Writer, owned bool) Option {
	return func(s *System) { s.outputs.bind(id, sink, owned) }
}
