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

// Package relay delivers buffered log messages to named destinations from a
// background worker pool.
//
// Producers build a message through a [Logger], which submits it to a
// [System]: the coordinator that owns the pending queue, the routing table
// from destination identifiers to sinks, and the worker pool that
// periodically drains the queue and writes each message to its bound sink.
// Producers never block on I/O; delivery latency is bounded by the
// configured period.
//
// # Basic Usage
//
//	sys := relay.MustNew(
//	    relay.WithPeriod(100*time.Millisecond),
//	    relay.WithWorkerCount(2),
//	    relay.WithOutput("app", os.Stdout, false),
//	)
//	sys.Start()
//	defer sys.Stop()
//
//	log := sys.NewLogger(relay.WithDestination("app"))
//	log.Info().Append("service started on port ", 8080).End()
//
// Most processes use the shared [Default] system and the package-level
// [NewLogger]; [New] exists for tests and hosts that need isolated
// instances.
//
// # Lifecycle
//
// A System is stopped or running. [System.Start] builds the worker pool
// from the staged configuration; calling it on a running system restarts
// the pool in place so configuration changes (period, worker count) take
// effect without losing queued or in-flight messages. [System.Stop] wakes
// the workers immediately, joins them, and preserves the queue: everything
// still pending is delivered on the next Start. [Guard] ties this lifecycle
// to a scope:
//
//	guard, err := relay.NewGuard(nil, relay.WithWorkerCount(4))
//	if err != nil {
//	    return err
//	}
//	defer guard.Close()
//
// # Destinations and Ownership
//
// [System.SetOutput] binds a destination identifier to any io.Writer. An
// owned sink is closed by the system when the destination is rebound,
// unbound or the system is torn down; an unowned sink stays the caller's
// responsibility. Messages addressed to an unbound destination are silently
// dropped, so leaving a destination unbound mutes that subsystem.
//
// # Failure Semantics
//
// Configuration errors ([ErrInvalidConfiguration]) are the only failures
// surfaced in normal operation. A sink write error drops that one message
// and increments a counter visible through [System.DebugInfo]; it never
// reaches a producer and never stops a worker. Delivery is at-most-once,
// best-effort, with per-destination submission order preserved within a
// drain batch.
//
// # Trace Correlation
//
// [System.NewLoggerContext] reads the active OpenTelemetry span from a
// context and prefixes flushed messages with trace_id and span_id, so
// plain-text delivery lines correlate with traces:
//
//	log := sys.NewLoggerContext(ctx, relay.WithDestination("app"))
//	log.Warning().Append("slow query: ", elapsed).End()
//
// # Policy Files
//
// [LoadConfig] and [System.ApplyConfig] stage a YAML delivery policy
// (period, workers, minimum severity, file-backed outputs); see
// [FileConfig] for the schema.
package relay
