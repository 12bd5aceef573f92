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
	"strings"
	"sync"
	"time"
)

// MockSink is an in-memory sink that records writes for test assertions.
// Unlike a plain bytes.Buffer it is safe for concurrent writers, can count
// close calls to verify ownership semantics, and can inject write errors.
//
// Example:
//
//	sink := &relay.MockSink{}
//	sys := relay.MustNew(relay.WithOutput("app", sink, false))
//	// ... start, submit, stop ...
//	require.Equal(t, []string{"..."}, sink.Lines())
type MockSink struct {
	mu         sync.Mutex
	writes     [][]byte
	writeErr   error
	closeCount int
}

// Write implements io.Writer.
func (m *MockSink) Write(p []byte) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.writeErr != nil {
		return 0, m.writeErr
	}
	m.writes = append(m.writes, append([]byte(nil), p...))

	return len(p), nil
}

// Close implements io.Closer and counts invocations, so tests can verify an
// owned sink is released exactly once.
func (m *MockSink) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closeCount++

	return nil
}

// FailWith makes every subsequent write return err. Pass nil to heal.
func (m *MockSink) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writeErr = err
}

// WriteCount returns the number of successful write calls.
func (m *MockSink) WriteCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.writes)
}

// CloseCount returns the number of Close calls.
func (m *MockSink) CloseCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.closeCount
}

// Contents returns everything written so far as one string.
func (m *MockSink) Contents() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	var b strings.Builder
	for _, w := range m.writes {
		b.Write(w)
	}

	return b.String()
}

// Lines returns the written content split into newline-terminated lines.
func (m *MockSink) Lines() []string {
	contents := m.Contents()
	if contents == "" {
		return nil
	}

	return strings.Split(strings.TrimSuffix(contents, "\n"), "\n")
}

// Reset clears all recorded writes.
func (m *MockSink) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes = nil
}

// CountingSink counts bytes without storing them, for volume checks in
// long-running tests that would exhaust memory with [MockSink].
type CountingSink struct {
	mu    sync.Mutex
	count int64
}

// Write implements io.Writer.
func (c *CountingSink) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.count += int64(len(p))

	return len(p), nil
}

// Count returns the total bytes written.
func (c *CountingSink) Count() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.count
}

// SlowSink delays each write, for exercising stop-while-writing paths and
// restart-in-flight behavior.
type SlowSink struct {
	delay time.Duration
	inner io.Writer
}

// NewSlowSink creates a sink that sleeps for delay before each write to
// inner. A nil inner discards the data after the delay.
func NewSlowSink(delay time.Duration, inner io.Writer) *SlowSink {
	return &SlowSink{delay: delay, inner: inner}
}

// Write implements io.Writer with delay.
func (s *SlowSink) Write(p []byte) (int, error) {
	time.Sleep(s.delay)
	if s.inner != nil {
		return s.inner.Write(p)
	}

	return len(p), nil
}
