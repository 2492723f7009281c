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

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/masterlib/pkg/config"
	"github.com/walteh/masterlib/pkg/header"
	"github.com/walteh/masterlib/pkg/log"
	"github.com/walteh/masterlib/pkg/operation"
	"github.com/walteh/masterlib/pkg/status"
)

var (
	// Flags
	configFile  string
	debug       bool
	dryrun      bool
	noOverwrite bool
	quiet       bool
)

// lockPath names the lock file guarding a library root against
// concurrent mutating runs. It sits beside the root, not inside it, so
// the library tree holds nothing but frames.
func lockPath(root string) string {
	return root + ".lock"
}

// newRootCmd builds the single-verb masterlib command
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "masterlib <source_dir> <dest_dir>",
		Short: "Copy and organize master calibration frames into a library",
		Long: "masterlib scans a source tree for master calibration frames (FITS/XISF),\n" +
			"classifies each by its embedded header, and copies it into a deterministic\n" +
			"library layout keyed by camera, optical configuration and observation date.",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogging()
			return run(cmd.Context(), args[0], args[1], cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", "", "config file path (.yaml or .hcl)")
	cmd.Flags().BoolVar(&debug, "debug", false, "enable debug logging")
	cmd.Flags().BoolVar(&dryrun, "dryrun", false, "report what would be copied without touching the destination")
	cmd.Flags().BoolVar(&noOverwrite, "no-overwrite", false, "skip files whose destination already exists")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "suppress per-file output (summary still prints)")

	return cmd
}

// setupLogging configures zerolog based on flags
func setupLogging() {
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	zlog := zerolog.New(os.Stderr).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &zlog
}

// run wires the pipeline together and executes one transfer
func run(ctx context.Context, sourceDir, destDir string, console io.Writer) error {
	zlog := *zerolog.Ctx(ctx)
	ctx = zlog.WithContext(ctx)

	// Environment variables in the directory arguments are expanded so
	// library locations can be pinned in shell profiles ($ASTRO_LIBRARY).
	sourceDir = filepath.Clean(os.ExpandEnv(sourceDir))
	destDir = filepath.Clean(os.ExpandEnv(destDir))

	cfg := config.Default()
	if configFile != "" {
		loaded, err := config.Load(ctx, configFile)
		if err != nil {
			return errors.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	// Flags can only tighten what the config file allows.
	effDryRun := dryrun || cfg.DryRun
	effNoOverwrite := noOverwrite || cfg.NoOverwrite
	effQuiet := quiet || cfg.Quiet

	logger := log.New(console, zlog, effQuiet)
	files := status.NewManager(destDir)

	logger.Header(fmt.Sprintf("%s -> %s", sourceDir, destDir))

	if !effDryRun {
		if err := files.EnsureRoot(ctx); err != nil {
			return errors.Errorf("preparing destination root: %w", err)
		}

		lock := flock.New(lockPath(files.Root()))
		ok, err := lock.TryLock()
		if err != nil {
			return errors.Errorf("acquiring library lock: %w", err)
		}
		if !ok {
			return errors.Errorf("another masterlib run holds the library at %s", files.Root())
		}
		defer func() {
			if err := lock.Unlock(); err != nil {
				zlog.Warn().Err(err).Msg("releasing library lock")
			}
		}()
	}

	op, err := operation.New(operation.Options{
		SourceDir:   sourceDir,
		Config:      cfg,
		Reader:      header.NewReader(),
		Files:       files,
		Logger:      logger,
		DryRun:      effDryRun,
		NoOverwrite: effNoOverwrite,
	})
	if err != nil {
		return errors.Errorf("creating operator: %w", err)
	}

	stats, err := op.Execute(ctx)
	if err != nil {
		return err
	}

	report := status.Report{Stats: stats, DryRun: effDryRun}
	report.Render(console)

	logger.Successf("run complete: %d scanned, %d copied, %d skipped, %d failed",
		stats.Total.Scanned,
		stats.Total.Copied,
		stats.Total.SkippedExists+stats.Total.SkippedUnrecognized+stats.Total.Rejected,
		stats.Total.Failed,
	)
	return nil
}
