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
)

// Severity identifies the importance of a message.
//
// Severities form a fixed total order: [SeverityDebug] < [SeverityInfo] <
// [SeverityWarning] < [SeverityError]. The order is defined by the integer
// values and is never reconfigured; comparison and string rendering are the
// only operations the rest of the package relies on.
type Severity int

const (
	// SeverityDebug is the lowest severity, used for development diagnostics.
	SeverityDebug Severity = iota
	// SeverityInfo is the default severity for routine messages.
	SeverityInfo
	// SeverityWarning marks conditions that deserve attention but are not failures.
	SeverityWarning
	// SeverityError is the highest severity, reserved for failures.
	SeverityError
)

// String returns the fixed uppercase token for the severity.
func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "DEBUG"
	case SeverityInfo:
		return "INFO"
	case SeverityWarning:
		return "WARNING"
	case SeverityError:
		return "ERROR"
	default:
		return fmt.Sprintf("SEVERITY(%d)", int(s))
	}
}

// valid reports whether s is one of the four defined severities.
func (s Severity) valid() bool {
	return s >= SeverityDebug && s <= SeverityError
}

// ParseSeverity converts a string token into a [Severity].
// Matching is case-insensitive and ignores surrounding whitespace.
func ParseSeverity(token string) (Severity, error) {
	switch strings.ToUpper(strings.TrimSpace(token)) {
	case "DEBUG":
		return SeverityDebug, nil
	case "INFO":
		return SeverityInfo, nil
	case "WARNING", "WARN":
		return SeverityWarning, nil
	case "ERROR":
		return SeverityError, nil
	default:
		return 0, fmt.Errorf("%w: unknown severity %q", ErrInvalidConfiguration, token)
	}
}
