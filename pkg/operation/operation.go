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

package operation

import (
	"context"

	"github.com/walteh/masterlib/pkg/config"
	"github.com/walteh/masterlib/pkg/header"
	"github.com/walteh/masterlib/pkg/log"
	"github.com/walteh/masterlib/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// 🎯 Operator runs one source-to-library transfer
type Operator interface {
	// Execute walks the source tree and transfers every recognized
	// master, returning the run's statistics. Per-file outcomes are
	// never fatal; only setup failures return an error.
	Execute(ctx context.Context) (*status.RunStatistics, error)
}

// 🔧 Options contains configuration for the operator
type Options struct {
	// SourceDir is the tree scanned for candidate files
	SourceDir string
	// Config carries include patterns and policy defaults
	Config *config.Config
	// Reader extracts headers from candidate files
	Reader header.Reader
	// Files performs destination file system operations
	Files status.FileManager
	// Logger emits per-file lines and structured events
	Logger *log.Logger

	// DryRun simulates the transfer without touching the destination
	DryRun bool
	// NoOverwrite skips files whose destination already exists
	NoOverwrite bool
}

// 🏭 New creates a new operator with the given options
func New(opts Options) (Operator, error) {
	if opts.SourceDir == "" {
		return nil, errors.Errorf("source directory is required")
	}
	if opts.Config == nil {
		return nil, errors.Errorf("config is required")
	}
	if opts.Reader == nil {
		return nil, errors.Errorf("header reader is required")
	}
	if opts.Files == nil {
		return nil, errors.Errorf("file manager is required")
	}
	if opts.Logger == nil {
		return nil, errors.Errorf("logger is required")
	}
	return &transferOperation{opts: opts}, nil
}
