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
	"strings"
	"time"
)

// Logger is the producer side of the delivery system: a per-call-site text
// buffer with a severity tag. Values are appended to the buffer, and End
// flushes the buffer as one [Message] to the logger's destination, provided
// the current severity reaches the logger's minimum.
//
// All buffer-mutating methods return the receiver so call sites can chain:
//
//	log := sys.NewLogger(relay.WithDestination("app"))
//	log.Error().Append("connect failed after ", retries, " retries").End()
//
// A Logger is not safe for concurrent use; create one per call site or per
// goroutine. Submission to the shared system is thread-safe.
type Logger struct {
	system *System
	dest   string
	min    Severity

	severity Severity
	buf      strings.Builder
	prefix   string

	traceID string
	spanID  string
}

// LoggerOption configures a producer [Logger].
type LoggerOption func(*Logger)

// WithDestination routes the logger's messages to the given destination
// identifier instead of [DefaultDestination].
func WithDestination(id string) LoggerOption {
	return func(l *Logger) { l.dest = id }
}

// WithLoggerMinSeverity overrides the minimum severity inherited from the
// system at construction time.
func WithLoggerMinSeverity(min Severity) LoggerOption {
	return func(l *Logger) { l.min = min }
}

// WithInitialSeverity sets the severity the logger starts at. The default
// is [SeverityInfo].
func WithInitialSeverity(severity Severity) LoggerOption {
	return func(l *Logger) { l.severity = severity }
}

// NewLogger returns a producer bound to this system. Unless overridden by
// options, the logger writes to [DefaultDestination] and filters at the
// system's minimum severity as configured at this moment; later calls to
// [System.SetMinSeverity] do not affect existing loggers.
func (s *System) NewLogger(opts ...LoggerOption) *Logger {
	l := &Logger{
		system:   s,
		dest:     DefaultDestination,
		min:      s.MinSeverity(),
		severity: SeverityInfo,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// NewLogger returns a producer bound to the process-wide [Default] system.
func NewLogger(opts ...LoggerOption) *Logger {
	return Default().NewLogger(opts...)
}

// Append renders the values with [fmt.Fprint] semantics and adds them to
// the message buffer.
func (l *Logger) Append(args ...any) *Logger {
	fmt.Fprint(&l.buf, args...)
	return l
}

// Appendf renders a format string into the message buffer.
func (l *Logger) Appendf(format string, args ...any) *Logger {
	fmt.Fprintf(&l.buf, format, args...)
	return l
}

// SetSeverity tags the message being built with the given severity.
func (l *Logger) SetSeverity(severity Severity) *Logger {
	l.severity = severity
	return l
}

// Debug tags the message being built as [SeverityDebug].
func (l *Logger) Debug() *Logger { return l.SetSeverity(SeverityDebug) }

// Info tags the message being built as [SeverityInfo].
func (l *Logger) Info() *Logger { return l.SetSeverity(SeverityInfo) }

// Warning tags the message being built as [SeverityWarning].
func (l *Logger) Warning() *Logger { return l.SetSeverity(SeverityWarning) }

// Error tags the message being built as [SeverityError].
func (l *Logger) Error() *Logger { return l.SetSeverity(SeverityError) }

// End flushes the buffered message: if the current severity reaches the
// logger's minimum, a [Message] carrying the destination, severity, current
// time and buffered text is submitted to the system. The buffer is cleared
// either way; the severity tag is kept for the next message.
//
// Messages below the minimum are discarded here, on the producer side. The
// delivery workers never re-filter.
func (l *Logger) End() error {
	defer l.buf.Reset()

	if l.severity < l.min {
		return nil
	}

	return l.system.Submit(Message{
		Destination: l.dest,
		Severity:    l.severity,
		Time:        time.Now(),
		Text:        l.prefix + l.buf.String(),
	})
}

// Reset discards the buffered message without submitting anything.
func (l *Logger) Reset() *Logger {
	l.buf.Reset()
	return l
}

// Destination returns the destination identifier the logger writes to.
func (l *Logger) Destination() string { return l.dest }

// Severity returns the severity tag of the message being built.
func (l *Logger) Severity() Severity { return l.severity }

// MinSeverity returns the logger's minimum severity threshold.
func (l *Logger) MinSeverity() Severity { return l.min }
