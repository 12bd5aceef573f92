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
	"context"
	"fmt"

	"go.opentelemetry.io/otel/trace"
)

// Trace correlation field names, matching OpenTelemetry semantic
// conventions so delivered lines grep the same as structured logs.
const (
	fieldTraceID = "trace_id"
	fieldSpanID  = "span_id"
)

// NewLoggerContext returns a producer whose flushed messages carry trace
// correlation identifiers. If the context holds a valid OpenTelemetry span,
// every message the logger submits is prefixed with the span's trace and
// span IDs; otherwise the logger behaves exactly like [System.NewLogger].
//
// When to use:
//
//	✓ Request handlers with OpenTelemetry tracing enabled
//	✓ Background jobs that propagate context
//	✗ Package-level loggers (no request context available)
func (s *System) NewLoggerContext(ctx context.Context, opts ...LoggerOption) *Logger {
	l := s.NewLogger(opts...)

	if span := trace.SpanFromContext(ctx); span.SpanContext().IsValid() {
		sc := span.SpanContext()
		l.traceID = sc.TraceID().String()
		l.spanID = sc.SpanID().String()
		l.prefix = fmt.Sprintf("%s=%s %s=%s ", fieldTraceID, l.traceID, fieldSpanID, l.spanID)
	}

	return l
}

// NewLoggerContext returns a context-aware producer bound to the
// process-wide [Default] system.
func NewLoggerContext(ctx context.Context, opts ...LoggerOption) *Logger {
	return Default().NewLoggerContext(ctx, opts...)
}

// TraceID returns the trace ID if the logger was built from a traced
// context, empty otherwise.
func (l *Logger) TraceID() string { return l.traceID }

// SpanID returns the span ID if the logger was built from a traced
// context, empty otherwise.
func (l *Logger) SpanID() string { return l.spanID }
