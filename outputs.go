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
	"errors"
	"io"
	"sync"
)

// errSinkReleased is returned for a write that races with unbind; the
// worker pool absorbs it like any other write failure.
var errSinkReleased = errors.New("output binding released")

// outputBinding couples a destination's sink with its ownership flag.
//
// The per-binding mutex serializes writes from concurrent workers and makes
// release wait for an in-flight write to finish before closing an owned sink.
type outputBinding struct {
	mu       sync.Mutex
	sink     io.Writer
	owned    bool
	released bool
}

// write sends one rendered line to the sink.
func (b *outputBinding) write(line []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.released {
		return errSinkReleased
	}
	_, err := b.sink.Write(line)

	return err
}

// release closes the sink if the binding owns it. Safe to call more than
// once; the sink is closed at most one time.
func (b *outputBinding) release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.released {
		return
	}
	b.released = true

	if !b.owned {
		return
	}
	if c, ok := b.sink.(io.Closer); ok {
		_ = c.Close() // Close errors have nowhere useful to go
	}
}

// outputTable is the routing table from destination identifiers to bindings.
//
// Administrative calls (bind, unbind) and delivery (resolve) may run
// concurrently; the RWMutex guarantees a worker sees either the old or the
// new binding for an identifier, never a partially-updated one.
type outputTable struct {
	mu       sync.RWMutex
	bindings map[string]*outputBinding
}

func newOutputTable() *outputTable {
	return &outputTable{
		bindings: make(map[string]*outputBinding),
	}
}

// bind installs a sink for the identifier, replacing any existing binding.
// If the previous binding owned its sink, that sink is released first.
func (t *outputTable) bind(id string, sink io.Writer, owned bool) {
	t.mu.Lock()
	prev := t.bindings[id]
	t.bindings[id] = &outputBinding{sink: sink, owned: owned}
	t.mu.Unlock()

	if prev != nil {
		prev.release()
	}
}

// unbind removes the identifier's binding, releasing an owned sink.
// Subsequent messages to the identifier are dropped.
func (t *outputTable) unbind(id string) {
	t.mu.Lock()
	prev := t.bindings[id]
	delete(t.bindings, id)
	t.mu.Unlock()

	if prev != nil {
		prev.release()
	}
}

// resolve looks up the binding for an identifier.
func (t *outputTable) resolve(id string) (*outputBinding, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	b, ok := t.bindings[id]

	return b, ok
}

// releaseAll empties the table, releasing every owned sink.
func (t *outputTable) releaseAll() {
	t.mu.Lock()
	bindings := t.bindings
	t.bindings = make(map[string]*outputBinding)
	t.mu.Unlock()

	for _, b := range bindings {
		b.release()
	}
}
