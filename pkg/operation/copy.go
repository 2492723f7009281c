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
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/masterlib/pkg/frame"
	"github.com/walteh/masterlib/pkg/header"
	"github.com/walteh/masterlib/pkg/library"
	"github.com/walteh/masterlib/pkg/log"
	"github.com/walteh/masterlib/pkg/status"
)

// 📦 transferOperation implements the transfer run
type transferOperation struct {
	opts Options
}

// 🏃 Execute runs the transfer: walk, extract, classify, build path,
// apply policy, copy. Files are processed strictly one at a time; each
// file's full lifecycle completes before the next begins.
func (op *transferOperation) Execute(ctx context.Context) (*status.RunStatistics, error) {
	runLog := zerolog.Ctx(ctx).With().Str("run_id", uuid.NewString()).Logger()
	ctx = runLog.WithContext(ctx)

	info, err := os.Stat(op.opts.SourceDir)
	if err != nil || !info.IsDir() {
		return nil, errors.Errorf("source directory does not exist: %s", op.opts.SourceDir)
	}

	if !op.opts.DryRun {
		if err := op.opts.Files.EnsureRoot(ctx); err != nil {
			return nil, errors.Errorf("preparing destination: %w", err)
		}
	}

	stats := status.NewRunStatistics()

	runLog.Info().
		Str("source", op.opts.SourceDir).
		Bool("dryrun", op.opts.DryRun).
		Bool("no_overwrite", op.opts.NoOverwrite).
		Msg("scanning source directory")

	walkErr := filepath.WalkDir(op.opts.SourceDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == op.opts.SourceDir {
				return errors.Errorf("reading source directory: %w", err)
			}
			// One unreadable subtree never aborts the run.
			runLog.Warn().Str("path", path).Err(err).Msg("skipping unreadable entry")
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !op.matchesPatterns(path) {
			return nil
		}

		op.processFile(ctx, path, stats)
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	return stats, nil
}

// 🔍 matchesPatterns checks a candidate against the include globs,
// case-insensitively
func (op *transferOperation) matchesPatterns(path string) bool {
	rel, err := filepath.Rel(op.opts.SourceDir, path)
	if err != nil {
		rel = filepath.Base(path)
	}
	rel = strings.ToLower(filepath.ToSlash(rel))

	for _, pattern := range op.opts.Config.Patterns {
		matched, err := doublestar.Match(strings.ToLower(pattern), rel)
		if err != nil {
			continue
		}
		if matched {
			return true
		}
	}
	return false
}

// 📄 processFile runs one file through the full pipeline. Every outcome
// is recorded in stats exactly once.
func (op *transferOperation) processFile(ctx context.Context, path string, stats *status.RunStatistics) {
	logger := zerolog.Ctx(ctx)
	stats.AddScanned()

	hdr, err := op.opts.Reader.Extract(path)
	if err != nil {
		stats.AddRejected()
		outcome := log.OutcomeRejected
		if errors.Is(err, header.ErrUnreadableFile) {
			outcome = log.OutcomeUnreadable
		}
		op.opts.Logger.LogFileOperation(log.FileOperation{
			Source:  path,
			Outcome: outcome,
			Reason:  err.Error(),
		})
		return
	}

	rec, err := frame.Classify(hdr, filepath.Ext(path))
	if err != nil {
		var rejection *frame.Rejection
		if errors.As(err, &rejection) && rejection.Kind == frame.RejectionUnrecognizedType {
			stats.AddSkippedUnrecognized()
		} else {
			stats.AddRejected()
		}
		op.opts.Logger.LogFileOperation(log.FileOperation{
			Source:  path,
			Outcome: log.OutcomeRejected,
			Reason:  err.Error(),
		})
		return
	}

	stats.AddClassified(rec.Type)
	rel := library.BuildPath(rec)
	dest := op.opts.Files.DestPath(rel)

	if op.opts.NoOverwrite {
		exists, err := op.opts.Files.FileExists(ctx, rel)
		if err != nil {
			stats.AddFailed(rec.Type)
			op.opts.Logger.LogFileOperation(log.FileOperation{
				Source:  path,
				Dest:    dest,
				Type:    rec.Type.String(),
				Outcome: log.OutcomeFailed,
				Reason:  err.Error(),
			})
			return
		}
		if exists {
			stats.AddSkippedExists(rec.Type)
			op.opts.Logger.LogFileOperation(log.FileOperation{
				Source:  path,
				Dest:    dest,
				Type:    rec.Type.String(),
				Outcome: log.OutcomeSkipped,
				Reason:  "destination exists",
			})
			return
		}
	}

	if op.opts.DryRun {
		// A dry-run hit counts as copied: it is what would happen.
		stats.AddCopied(rec.Type)
		op.opts.Logger.LogFileOperation(log.FileOperation{
			Source:  path,
			Dest:    dest,
			Type:    rec.Type.String(),
			Outcome: log.OutcomeDryRun,
		})
		return
	}

	logger.Debug().Str("source", path).Str("dest", dest).Msg("copy")

	if err := op.opts.Files.CopyFile(ctx, path, rel); err != nil {
		stats.AddFailed(rec.Type)
		op.opts.Logger.LogFileOperation(log.FileOperation{
			Source:  path,
			Dest:    dest,
			Type:    rec.Type.String(),
			Outcome: log.OutcomeFailed,
			Reason:  err.Error(),
		})
		return
	}

	stats.AddCopied(rec.Type)
	op.opts.Logger.LogFileOperation(log.FileOperation{
		Source:  path,
		Dest:    dest,
		Type:    rec.Type.String(),
		Outcome: log.OutcomeCopied,
	})
}
