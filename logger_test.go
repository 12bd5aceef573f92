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

package relay_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/relay"
)

// queueLength reads the pending-queue depth from the diagnostics map.
func queueLength(sys *relay.System) int {
	return sys.DebugInfo()["queue_length"].(int)
}

func TestLogger_Defaults(t *testing.T) {
	t.Parallel()

	sys := relay.MustNew(relay.WithMinSeverity(relay.SeverityWarning))
	log := sys.NewLogger()

	assert.Equal(t, relay.DefaultDestination, log.Destination())
	assert.Equal(t, relay.SeverityWarning, log.MinSeverity(), "min inherited from system at construction")
	assert.Equal(t, relay.SeverityInfo, log.Severity())
}

func TestLogger_MinInheritedAtConstructionOnly(t *testing.T) {
	t.Parallel()

	sys := relay.MustNew(relay.WithMinSeverity(relay.SeverityDebug))
	log := sys.NewLogger()

	require.NoError(t, sys.SetMinSeverity(relay.SeverityError))
	assert.Equal(t, relay.SeverityDebug, log.MinSeverity(), "later configuration changes do not retrofit existing loggers")

	later := sys.NewLogger()
	assert.Equal(t, relay.SeverityError, later.MinSeverity())
}

func TestLogger_EndSubmitsAtOrAboveMin(t *testing.T) {
	t.Parallel()

	sys := relay.MustNew(relay.WithMinSeverity(relay.SeverityDebug))
	log := sys.NewLogger(relay.WithDestination("app"))

	require.NoError(t, log.Info().Append("hello ", "world").End())
	assert.Equal(t, 1, queueLength(sys))

	require.NoError(t, log.Error().Appendf("failed after %d retries", 3).End())
	assert.Equal(t, 2, queueLength(sys))
}

func TestLogger_EndDiscardsBelowMin(t *testing.T) {
	t.Parallel()

	sys := relay.MustNew(relay.WithMinSeverity(relay.SeverityWarning))
	log := sys.NewLogger()

	require.NoError(t, log.Debug().Append("noise").End())
	require.NoError(t, log.Info().Append("still noise").End())
	assert.Zero(t, queueLength(sys), "messages below the logger's minimum are never submitted")

	require.NoError(t, log.Warning().Append("signal").End())
	assert.Equal(t, 1, queueLength(sys))
}

func TestLogger_EndClearsBuffer(t *testing.T) {
	t.Parallel()

	sink := &relay.MockSink{}
	sys := relay.MustNew(
		relay.WithPeriod(testPeriod),
		relay.WithMinSeverity(relay.SeverityDebug),
		relay.WithOutput("app", sink, false),
	)
	t.Cleanup(func() { sys.Stop() })

	log := sys.NewLogger(relay.WithDestination("app"))
	require.NoError(t, log.Info().Append("first").End())
	require.NoError(t, log.Append("second").End())

	require.True(t, sys.Start())
	require.Eventually(t, func() bool {
		return sink.WriteCount() == 2
	}, time.Second, testPeriod)

	lines := sink.Lines()
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "] [INFO] first")
	assert.Contains(t, lines[1], "] [INFO] second")
	assert.NotContains(t, lines[1], "first", "End must clear the buffer")
}

func TestLogger_ResetDiscardsWithoutSubmitting(t *testing.T) {
	t.Parallel()

	sys := relay.MustNew(relay.WithMinSeverity(relay.SeverityDebug))
	log := sys.NewLogger()

	log.Error().Append("drafted but abandoned").Reset()
	require.NoError(t, log.Append("kept").End())

	assert.Equal(t, 1, queueLength(sys))
	assert.Equal(t, relay.SeverityError, log.Severity(), "reset clears the buffer, not the severity tag")
}

func TestLogger_Options(t *testing.T) {
	t.Parallel()

	sys := relay.MustNew(relay.WithMinSeverity(relay.SeverityWarning))
	log := sys.NewLogger(
		relay.WithDestination("audit"),
		relay.WithLoggerMinSeverity(relay.SeverityDebug),
		relay.WithInitialSeverity(relay.SeverityError),
	)

	assert.Equal(t, "audit", log.Destination())
	assert.Equal(t, relay.SeverityDebug, log.MinSeverity())
	assert.Equal(t, relay.SeverityError, log.Severity())

	require.NoError(t, log.Append("override works").End())
	assert.Equal(t, 1, queueLength(sys))
}

func TestLogger_SubmitWhileStoppedAccumulates(t *testing.T) {
	t.Parallel()

	sys := relay.MustNew(relay.WithMinSeverity(relay.SeverityDebug))
	log := sys.NewLogger()

	for i := 0; i < 5; i++ {
		require.NoError(t, log.Info().Appendf("msg %d", i).End())
	}

	assert.Equal(t, 5, queueLength(sys), "a stopped system accumulates submissions")
}
