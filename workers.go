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
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// lineTimeFormat is the timestamp layout of delivered lines:
// [2026-01-02T15:04:05.000] [INFO] text
const lineTimeFormat = "2006-01-02T15:04:05.000"

// lineBuilderPool provides reusable [strings.Builder] instances for
// rendering delivery lines.
var lineBuilderPool = sync.Pool{
	New: func() any {
		return &strings.Builder{}
	},
}

// renderLine formats a message as a single output line with trailing newline.
func renderLine(m Message) []byte {
	b := lineBuilderPool.Get().(*strings.Builder)
	b.Reset()
	defer lineBuilderPool.Put(b)

	b.WriteString("[")
	b.WriteString(m.Time.Format(lineTimeFormat))
	b.WriteString("] [")
	b.WriteString(m.Severity.String())
	b.WriteString("] ")
	b.WriteString(m.Text)
	b.WriteString("\n")

	return []byte(b.String())
}

// workerPool runs a fixed number of delivery goroutines against a shared
// queue and output table. A pool is built by [System.Start] and torn down by
// [System.Stop]; configuration changes never touch a live pool.
type workerPool struct {
	period   time.Duration
	queue    *messageQueue
	outputs  *outputTable
	failures *atomic.Int64
	dropped  *atomic.Int64

	stop chan struct{}
	wg   sync.WaitGroup
}

// startWorkerPool launches n workers delivering on the given period.
func startWorkerPool(n int, period time.Duration, queue *messageQueue, outputs *outputTable, failures, dropped *atomic.Int64) *workerPool {
	p := &workerPool{
		period:   period,
		queue:    queue,
		outputs:  outputs,
		failures: failures,
		dropped:  dropped,
		stop:     make(chan struct{}),
	}

	p.wg.Add(n)
	for i := 0; i < n; i++ {
		go p.run()
	}

	return p
}

// run is the delivery loop for one worker: wait up to period for either the
// stop signal or the period elapsing, then drain and deliver. The drain is
// atomic relative to submissions, so a batch is owned by exactly one worker.
//
// The queue is deliberately left untouched when stop wins the wait: pending
// messages survive a stop and are delivered on the next start.
func (p *workerPool) run() {
	defer p.wg.Done()

	timer := time.NewTimer(p.period)
	defer timer.Stop()

	for {
		select {
		case <-p.stop:
			return
		case <-timer.C:
		}

		p.deliver(p.queue.drain())
		timer.Reset(p.period)
	}
}

// deliver writes each message of a batch in order. Stop is cooperative:
// it is observed between messages, never mid-write, and the unwritten
// remainder of the batch is returned to the front of the queue so a stop or
// restart loses nothing.
func (p *workerPool) deliver(batch []Message) {
	for i, m := range batch {
		select {
		case <-p.stop:
			p.queue.requeue(batch[i:])
			return
		default:
		}
		p.write(m)
	}
}

// write routes one message to its bound output. Messages to unbound
// destinations are dropped, and write errors are absorbed and counted; a
// broken sink never takes down a worker or blocks later messages.
func (p *workerPool) write(m Message) {
	binding, ok := p.outputs.resolve(m.Destination)
	if !ok {
		p.dropped.Add(1)
		return
	}

	if err := binding.write(renderLine(m)); err != nil {
		p.failures.Add(1)
	}
}

// halt signals every worker to stop and joins them. Workers wake immediately
// rather than waiting out the period, finish the message they are writing,
// requeue whatever remains of their batch, and exit.
func (p *workerPool) halt() {
	close(p.stop)
	p.wg.Wait()
}
