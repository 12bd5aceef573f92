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

// Guard couples a system's lifetime to a scope: construction stages the
// given options and starts the system, Close stops it. Deferring Close
// right after construction guarantees the stop runs on every exit path,
// including early returns and panics unwinding through the scope:
//
//	guard, err := relay.NewGuard(sys,
//	    relay.WithPeriod(250*time.Millisecond),
//	    relay.WithWorkerCount(2),
//	)
//	if err != nil {
//	    return err
//	}
//	defer guard.Close()
//
// Stop is idempotent, so a Guard composes safely with explicit Stop calls.
type Guard struct {
	system *System
}

// NewGuard stages opts on the system and starts it. Passing nil uses the
// process-wide [Default] system.
func NewGuard(s *System, opts ...Option) (*Guard, error) {
	g, err := NewDeferredGuard(s, opts...)
	if err != nil {
		return nil, err
	}
	g.Start()

	return g, nil
}

// NewDeferredGuard stages opts without starting the system; call
// [Guard.Start] when ready. Useful when bindings must be installed between
// configuration and start.
func NewDeferredGuard(s *System, opts ...Option) (*Guard, error) {
	if s == nil {
		s = Default()
	}
	if err := s.Configure(opts...); err != nil {
		return nil, err
	}

	return &Guard{system: s}, nil
}

// Start starts (or restarts) the guarded system. See [System.Start].
func (g *Guard) Start() bool {
	return g.system.Start()
}

// System returns the guarded system.
func (g *Guard) System() *System {
	return g.system
}

// Close stops the guarded system. Queued messages survive and are delivered
// on a later Start. Close never fails; the error return satisfies
// [io.Closer] so guards compose with generic cleanup helpers.
func (g *Guard) Close() error {
	g.system.Stop()
	return nil
}
