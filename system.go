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
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"
)

// Default configuration applied by [New] when no option overrides it.
const (
	// DefaultPeriod is the default delivery check period.
	DefaultPeriod = time.Second
	// DefaultWorkerCount is the default number of delivery workers.
	DefaultWorkerCount = 1
)

// System is the delivery coordinator: it owns the staged configuration, the
// pending-message queue, the output routing table and the worker pool.
//
// Thread-safety: all public methods are safe for concurrent use.
//   - mu guards configuration and lifecycle transitions
//   - the queue and the output table carry their own synchronization, so
//     Submit and SetOutput never contend with a Start or Stop in progress
//   - closed uses atomic.Bool for teardown checks without the mutex
//
// Lifecycle: a System is either stopped or running. Start builds the worker
// pool from the staged configuration; Stop joins the pool and preserves the
// queue; Start on a running system restarts the pool in place so staged
// configuration changes take effect without a separate stop/start dance.
type System struct {
	mu sync.Mutex

	// Staged configuration; applied on the next Start
	period      time.Duration
	workerCount int
	minSeverity Severity

	queue   *messageQueue
	outputs *outputTable
	pool    *workerPool // nil while stopped

	writeFailures atomic.Int64
	dropped       atomic.Int64
	closed        atomic.Bool
}

// Option is a functional option for configuring a [System].
type Option func(*System)

// defaultSystem returns a System with default configuration.
func defaultSystem() *System {
	return &System{
		period:      DefaultPeriod,
		workerCount: DefaultWorkerCount,
		minSeverity: SeverityInfo,
		queue:       newMessageQueue(),
		outputs:     newOutputTable(),
	}
}

// New creates a stopped System with the given options.
//
// Most processes use the shared [Default] system instead; New exists so
// tests and hosts embedding several delivery domains can run isolated
// instances side by side.
func New(opts ...Option) (*System, error) {
	s := defaultSystem()

	for _, opt := range opts {
		opt(s)
	}

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return s, nil
}

// MustNew creates a new System or panics on error.
func MustNew(opts ...Option) *System {
	s, err := New(opts...)
	if err != nil {
		panic("relay initialization failed: " + err.Error())
	}

	return s
}

// Process-wide shared system, created lazily on first access.
var (
	defaultOnce sync.Once
	defaultSys  *System
)

// Default returns the process-wide System, creating it with default
// configuration on first access. The caller owns teardown: stop it, or
// [Close] it, before process exit (typically via a [Guard]).
func Default() *System {
	defaultOnce.Do(func() {
		defaultSys = defaultSystem()
	})

	return defaultSys
}

// Validate checks the staged configuration.
func (s *System) Validate() error {
	return validateConfig(s.period, s.workerCount, s.minSeverity)
}

func validateConfig(period time.Duration, workerCount int, minSeverity Severity) error {
	if workerCount <= 0 {
		return fmt.Errorf("%w: worker count must be positive, got %d", ErrInvalidConfiguration, workerCount)
	}
	if period <= 0 {
		return fmt.Errorf("%w: period must be positive, got %v", ErrInvalidConfiguration, period)
	}
	if !minSeverity.valid() {
		return fmt.Errorf("%w: unknown severity %d", ErrInvalidConfiguration, int(minSeverity))
	}

	return nil
}

// SetPeriod stages a new delivery check period. The change takes effect on
// the next Start (or restart); a running pool keeps its current period.
func (s *System) SetPeriod(period time.Duration) error {
	if period <= 0 {
		return fmt.Errorf("%w: period must be positive, got %v", ErrInvalidConfiguration, period)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.period = period

	return nil
}

// SetWorkerCount stages a new worker pool size for the next Start.
func (s *System) SetWorkerCount(n int) error {
	if n <= 0 {
		return fmt.Errorf("%w: worker count must be positive, got %d", ErrInvalidConfiguration, n)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.workerCount = n

	return nil
}

// SetMinSeverity stages the minimum severity inherited by producers created
// after this call (see [System.NewLogger]). Already-queued messages are
// never re-filtered.
func (s *System) SetMinSeverity(min Severity) error {
	if !min.valid() {
		return fmt.Errorf("%w: unknown severity %d", ErrInvalidConfiguration, int(min))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.minSeverity = min

	return nil
}

// Configure applies a set of options atomically. If the resulting
// configuration is invalid, the previous configuration is restored and the
// error is returned.
func (s *System) Configure(opts ...Option) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	period, workerCount, minSeverity := s.period, s.workerCount, s.minSeverity

	for _, opt := range opts {
		opt(s)
	}

	if err := validateConfig(s.period, s.workerCount, s.minSeverity); err != nil {
		s.period, s.workerCount, s.minSeverity = period, workerCount, minSeverity
		return fmt.Errorf("invalid configuration: %w", err)
	}

	return nil
}

// Period returns the staged delivery check period.
func (s *System) Period() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.period
}

// WorkerCount returns the staged worker pool size.
func (s *System) WorkerCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.workerCount
}

// MinSeverity returns the staged minimum severity for new producers.
func (s *System) MinSeverity() Severity {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.minSeverity
}

// Running reports whether a worker pool is currently active.
func (s *System) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.pool != nil
}

// Start transitions the system to running under the staged configuration
// and reports whether a start or restart took place.
//
// If the system is already running, Start performs a full restart: workers
// are signalled and joined, any batch remainder they held is requeued with
// order preserved, and a fresh pool is built under the (possibly changed)
// configuration. Restarting instead of ignoring the call lets operators
// change the worker count or period live.
//
// Start on a closed system is a no-op and returns false.
func (s *System) Start() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed.Load() {
		return false
	}

	if s.pool != nil {
		s.pool.halt()
		s.pool = nil
	}
	s.pool = startWorkerPool(s.workerCount, s.period, s.queue, s.outputs, &s.writeFailures, &s.dropped)

	return true
}

// Stop transitions the system to stopped and reports whether a transition
// occurred. Workers are woken immediately rather than waiting out the
// period, finish the message they are writing, and exit; Stop returns after
// all of them have been joined.
//
// Messages still queued at stop time are not discarded. They stay queued
// and are delivered on the next Start. Stop is idempotent.
func (s *System) Stop() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.stopLocked()
}

func (s *System) stopLocked() bool {
	if s.pool == nil {
		return false
	}
	s.pool.halt()
	s.pool = nil

	return true
}

// Submit enqueues a message for delivery. It is non-blocking beyond the
// queue's append critical section and is callable in any lifecycle state:
// messages submitted while stopped accumulate until the next Start.
//
// Submit fails only with [ErrQueueUnavailable] after final teardown.
func (s *System) Submit(m Message) error {
	return s.queue.push(m)
}

// SetOutput binds the destination identifier to a sink, replacing any
// existing binding. When owned is true the system takes ownership of the
// sink and closes it (if it implements [io.Closer]) on rebind, unbind or
// teardown; an unowned sink stays the caller's responsibility and must
// outlive the binding.
func (s *System) SetOutput(id string, sink io.Writer, owned bool) {
	s.outputs.bind(id, sink, owned)
}

// ClearOutput removes the destination's binding, releasing an owned sink.
// Subsequent messages to the identifier are dropped without error.
func (s *System) ClearOutput(id string) {
	s.outputs.unbind(id)
}

// Close is the final teardown: it stops the worker pool, marks the queue
// unavailable and releases every owned sink. Submit after Close returns
// [ErrQueueUnavailable]. Close is idempotent.
func (s *System) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}

	s.mu.Lock()
	s.stopLocked()
	s.mu.Unlock()

	s.queue.close()
	s.outputs.releaseAll()

	return nil
}

// DebugInfo returns diagnostic information about the system.
func (s *System) DebugInfo() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()

	return map[string]any{
		"period":         s.period.String(),
		"worker_count":   s.workerCount,
		"min_severity":   s.minSeverity.String(),
		"running":        s.pool != nil,
		"closed":         s.closed.Load(),
		"queue_length":   s.queue.length(),
		"write_failures": s.writeFailures.Load(),
		"dropped":        s.dropped.Load(),
	}
}
