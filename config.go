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
	"os"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cast"
)

// FileConfig is the YAML-loadable delivery policy:
//
//	period: 250ms
//	workers: 4
//	min_severity: warning
//	outputs:
//	  app: /var/log/app.log
//	  audit: /var/log/audit.log
//
// Period and Workers are loosely typed so operators can write "250ms" or a
// plain number; values are coerced when converted to options.
type FileConfig struct {
	Period      any               `yaml:"period"`
	Workers     any               `yaml:"workers"`
	MinSeverity string            `yaml:"min_severity"`
	Outputs     map[string]string `yaml:"outputs"`
}

// LoadConfig reads and parses a delivery policy file.
func LoadConfig(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return ParseConfig(data)
}

// ParseConfig parses a delivery policy from YAML bytes.
func ParseConfig(data []byte) (*FileConfig, error) {
	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	return &cfg, nil
}

// Options converts the file values into staged [Option] values. Absent
// fields produce no option, so a partial file only overrides what it names.
func (c *FileConfig) Options() ([]Option, error) {
	var opts []Option

	if c.Period != nil {
		period, err := cast.ToDurationE(c.Period)
		if err != nil {
			return nil, fmt.Errorf("%w: period %v: %v", ErrInvalidConfiguration, c.Period, err)
		}
		opts = append(opts, WithPeriod(period))
	}

	if c.Workers != nil {
		workers, err := cast.ToIntE(c.Workers)
		if err != nil {
			return nil, fmt.Errorf("%w: workers %v: %v", ErrInvalidConfiguration, c.Workers, err)
		}
		opts = append(opts, WithWorkerCount(workers))
	}

	if c.MinSeverity != "" {
		min, err := ParseSeverity(c.MinSeverity)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithMinSeverity(min))
	}

	return opts, nil
}

// ApplyConfig stages the policy on the system and binds each configured
// output path as an owned, append-mode file sink. Configuration takes
// effect on the next Start; the file bindings replace any existing bindings
// for the same identifiers immediately.
func (s *System) ApplyConfig(cfg *FileConfig) error {
	opts, err := cfg.Options()
	if err != nil {
		return err
	}
	if err := s.Configure(opts...); err != nil {
		return err
	}

	for id, path := range cfg.Outputs {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open output %q: %w", id, err)
		}
		s.SetOutput(id, f, true)
	}

	return nil
}
