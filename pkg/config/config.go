// Copyright 2025 walteh LLC
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

package config

import (
	"context"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 📚 Config holds the tool defaults a library keeper wants to pin down
// once instead of repeating on every invocation. CLI flags override any
// value set here.
type Config struct {
	// Patterns are the include globs candidate files must match
	Patterns []string `json:"patterns,omitempty" yaml:"patterns,omitempty" hcl:"patterns,optional"`
	// DryRun simulates the run without touching the destination
	DryRun bool `json:"dryrun,omitempty" yaml:"dryrun,omitempty" hcl:"dryrun,optional"`
	// NoOverwrite skips files whose destination already exists
	NoOverwrite bool `json:"no_overwrite,omitempty" yaml:"no_overwrite,omitempty" hcl:"no_overwrite,optional"`
	// Quiet suppresses per-file output, keeping the final summary
	Quiet bool `json:"quiet,omitempty" yaml:"quiet,omitempty" hcl:"quiet,optional"`
}

// defaultPatterns is the FITS/XISF extension family the scanner accepts
var defaultPatterns = []string{
	"**/*.fits",
	"**/*.fit",
	"**/*.fts",
	"**/*.xisf",
}

// 🏭 Default returns the configuration used when no file is given
func Default() *Config {
	cfg := &Config{}
	_ = cfg.Validate()
	return cfg
}

// 🎯 Load loads the configuration from a file
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// 🔍 Validate checks the configuration and applies defaults
func (cfg *Config) Validate() error {
	if len(cfg.Patterns) == 0 {
		cfg.Patterns = append([]string(nil), defaultPatterns...)
	}
	for _, p := range cfg.Patterns {
		if strings.TrimSpace(p) == "" {
			return errors.Errorf("empty include pattern")
		}
	}
	return nil
}
