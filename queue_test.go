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
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func msg(text string) Message {
	return Message{Destination: DefaultDestination, Severity: SeverityInfo, Text: text}
}

func TestMessageQueue_PushDrainOrder(t *testing.T) {
	t.Parallel()

	q := newMessageQueue()
	require.NoError(t, q.push(msg("a")))
	require.NoError(t, q.push(msg("b")))
	require.NoError(t, q.push(msg("c")))
	assert.Equal(t, 3, q.length())

	batch := q.drain()
	require.Len(t, batch, 3)
	assert.Equal(t, "a", batch[0].Text)
	assert.Equal(t, "b", batch[1].Text)
	assert.Equal(t, "c", batch[2].Text)

	assert.Nil(t, q.drain(), "second drain sees an empty queue")
	assert.Zero(t, q.length())
}

func TestMessageQueue_RequeueGoesToFront(t *testing.T) {
	t.Parallel()

	q := newMessageQueue()
	require.NoError(t, q.push(msg("a")))
	require.NoError(t, q.push(msg("b")))

	batch := q.drain()
	require.NoError(t, q.push(msg("c"))) // submitted while the batch was in flight
	q.requeue(batch[1:])                 // "b" was not yet written

	next := q.drain()
	require.Len(t, next, 2)
	assert.Equal(t, "b", next[0].Text, "requeued backlog drains before newer submissions")
	assert.Equal(t, "c", next[1].Text)
}

func TestMessageQueue_RequeueEmptyBatch(t *testing.T) {
	t.Parallel()

	q := newMessageQueue()
	q.requeue(nil)
	assert.Zero(t, q.length())
}

func TestMessageQueue_ConcurrentPushersLoseNothing(t *testing.T) {
	t.Parallel()

	q := newMessageQueue()

	const pushers = 10
	const perPusher = 100

	var wg sync.WaitGroup
	wg.Add(pushers)
	for i := 0; i < pushers; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < perPusher; j++ {
				_ = q.push(msg("x"))
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, pushers*perPusher, q.length())
}

func TestMessageQueue_CloseRejectsSubmissions(t *testing.T) {
	t.Parallel()

	q := newMessageQueue()
	require.NoError(t, q.push(msg("before")))

	q.close()

	err := q.push(msg("after"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrQueueUnavailable)
	assert.Zero(t, q.length(), "teardown discards the backlog")
}

func TestOutputTable_ResolveSeesOldOrNew(t *testing.T) {
	t.Parallel()

	table := newOutputTable()
	first := &MockSink{}
	second := &MockSink{}

	table.bind("app", first, false)
	b, ok := table.resolve("app")
	require.True(t, ok)
	require.NoError(t, b.write([]byte("one\n")))

	table.bind("app", second, false)
	b, ok = table.resolve("app")
	require.True(t, ok)
	require.NoError(t, b.write([]byte("two\n")))

	assert.Equal(t, []string{"one"}, first.Lines())
	assert.Equal(t, []string{"two"}, second.Lines())
}

func TestOutputTable_WriteAfterReleaseFails(t *testing.T) {
	t.Parallel()

	table := newOutputTable()
	sink := &MockSink{}
	table.bind("app", sink, true)

	b, ok := table.resolve("app")
	require.True(t, ok)

	// A worker can hold a binding while an administrative call unbinds it;
	// the late write must fail cleanly instead of hitting a closed sink.
	table.unbind("app")
	require.Error(t, b.write([]byte("late\n")))
	assert.Equal(t, 1, sink.CloseCount())
}

func TestOutputTable_ReleaseAll(t *testing.T) {
	t.Parallel()

	table := newOutputTable()
	owned := &MockSink{}
	borrowed := &MockSink{}
	table.bind("owned", owned, true)
	table.bind("borrowed", borrowed, false)

	table.releaseAll()

	assert.Equal(t, 1, owned.CloseCount())
	assert.Zero(t, borrowed.CloseCount())

	_, ok := table.resolve("owned")
	assert.False(t, ok)
}

func TestRenderLine(t *testing.T) {
	t.Parallel()

	m := Message{
		Destination: "app",
		Severity:    SeverityWarning,
		Text:        "disk almost full",
	}

	line := string(renderLine(m))
	assert.Contains(t, line, "] [WARNING] disk almost full\n")
	assert.Equal(t, byte('['), line[0])
}
