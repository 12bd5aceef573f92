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

import "sync"

// messageQueue is the pending-message buffer shared by arbitrary producer
// goroutines and the worker pool. Producers only append; workers drain the
// whole queue at once, so the critical section on the producer path is a
// single slice append.
type messageQueue struct {
	mu      sync.Mutex
	pending []Message
	closed  bool
}

func newMessageQueue() *messageQueue {
	return &messageQueue{
		pending: make([]Message, 0, 64), // Pre-allocate for typical backlogs
	}
}

// push enqueues a message. It fails only after final teardown.
func (q *messageQueue) push(m Message) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return ErrQueueUnavailable
	}
	q.pending = append(q.pending, m)

	return nil
}

// drain atomically removes and returns every pending message in submission
// order. Concurrent drainers race on the mutex; exactly one of them gets the
// batch, the others see an empty queue.
func (q *messageQueue) drain() []Message {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.pending) == 0 {
		return nil
	}
	batch := q.pending
	q.pending = make([]Message, 0, 64)

	return batch
}

// requeue returns undelivered messages to the front of the queue so they are
// drained before anything submitted after the original drain. Relative order
// within the batch is preserved.
func (q *messageQueue) requeue(batch []Message) {
	if len(batch) == 0 {
		return
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	merged := make([]Message, 0, len(batch)+len(q.pending))
	merged = append(merged, batch...)
	merged = append(merged, q.pending...)
	q.pending = merged
}

// length returns the number of pending messages.
func (q *messageQueue) length() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return len(q.pending)
}

// close marks the queue unavailable and discards anything still pending.
// Called only from the system's final teardown.
func (q *messageQueue) close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.closed = true
	q.pending = nil
}
