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

package operation_test

import (
	"bytes"
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/masterlib/pkg/config"
	"github.com/walteh/masterlib/pkg/header"
	"github.com/walteh/masterlib/pkg/log"
	"github.com/walteh/masterlib/pkg/operation"
	"github.com/walteh/masterlib/pkg/status"
)

// 🧪 fakeReader serves canned headers keyed by source file basename
type fakeReader struct {
	headers map[string]header.Header
	errs    map[string]error
}

func (f *fakeReader) Extract(path string) (header.Header, error) {
	base := filepath.Base(path)
	if err, ok := f.errs[base]; ok {
		return nil, err
	}
	if hdr, ok := f.headers[base]; ok {
		return hdr, nil
	}
	return nil, errors.Errorf("%s: %w", path, header.ErrUnreadableFile)
}

// 🧪 testEnv bundles the orchestrator's collaborators for one test
type testEnv struct {
	ctx       context.Context
	sourceDir string
	destDir   string
	files     *status.Manager
	logger    *log.Logger
	console   *bytes.Buffer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	tmpDir := t.TempDir()

	sourceDir := filepath.Join(tmpDir, "src")
	destDir := filepath.Join(tmpDir, "library")
	require.NoError(t, os.MkdirAll(sourceDir, 0755))

	zlog := zerolog.New(zerolog.NewTestWriter(t))
	console := &bytes.Buffer{}

	return &testEnv{
		ctx:       zlog.WithContext(context.Background()),
		sourceDir: sourceDir,
		destDir:   destDir,
		files:     status.NewManager(destDir),
		logger:    log.New(console, zlog, false),
		console:   console,
	}
}

func (e *testEnv) writeSource(t *testing.T, name, content string) {
	t.Helper()
	path := filepath.Join(e.sourceDir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func (e *testEnv) operator(t *testing.T, reader header.Reader, dryRun, noOverwrite bool) operation.Operator {
	t.Helper()
	op, err := operation.New(operation.Options{
		SourceDir:   e.sourceDir,
		Config:      config.Default(),
		Reader:      reader,
		Files:       e.files,
		Logger:      e.logger,
		DryRun:      dryRun,
		NoOverwrite: noOverwrite,
	})
	require.NoError(t, err)
	return op
}

func biasHeader() header.Header {
	return header.Header{
		"IMAGETYP": "MASTER BIAS",
		"INSTRUME": "ASI2600MM",
		"GAIN":     "100",
		"OFFSET":   "10",
	}
}

func darkHeader() header.Header {
	return header.Header{
		"IMAGETYP": "MASTER DARK",
		"INSTRUME": "ASI2600MM",
		"GAIN":     "100",
		"EXPTIME":  "300",
	}
}

// 🧪 TestExecuteCopiesRecognizedMasters tests the happy transfer path
func TestExecuteCopiesRecognizedMasters(t *testing.T) {
	env := newTestEnv(t)
	env.writeSource(t, "bias.xisf", "bias content")
	env.writeSource(t, filepath.Join("darks", "dark.fits"), "dark content")
	env.writeSource(t, "light.xisf", "a light frame")
	env.writeSource(t, "notes.txt", "not a frame")

	reader := &fakeReader{headers: map[string]header.Header{
		"bias.xisf":  biasHeader(),
		"dark.fits":  darkHeader(),
		"light.xisf": {"IMAGETYP": "LIGHT", "INSTRUME": "ASI2600MM", "GAIN": "100"},
	}}

	stats, err := env.operator(t, reader, false, false).Execute(env.ctx)
	require.NoError(t, err)

	// notes.txt never matches the include patterns.
	assert.Equal(t, 3, stats.Total.Scanned)
	assert.Equal(t, 2, stats.Total.Classified)
	assert.Equal(t, 2, stats.Total.Copied)
	assert.Equal(t, 1, stats.Total.SkippedUnrecognized)
	assert.Equal(t, 0, stats.Total.Failed)

	biasDest := filepath.Join(env.destDir, "MASTER BIAS", "ASI2600MM", "masterBias_GAIN_100_OFFSET_10.xisf")
	content, err := os.ReadFile(biasDest)
	require.NoError(t, err)
	assert.Equal(t, "bias content", string(content))

	darkDest := filepath.Join(env.destDir, "MASTER DARK", "ASI2600MM", "masterDark_EXPTIME_300_GAIN_100.fits")
	content, err = os.ReadFile(darkDest)
	require.NoError(t, err)
	assert.Equal(t, "dark content", string(content))
}

// 🧪 TestExecuteDryRunPurity verifies a dry run mutates nothing
func TestExecuteDryRunPurity(t *testing.T) {
	env := newTestEnv(t)
	env.writeSource(t, "bias.xisf", "bias content")
	env.writeSource(t, "dark.fits", "dark content")

	reader := &fakeReader{headers: map[string]header.Header{
		"bias.xisf": biasHeader(),
		"dark.fits": darkHeader(),
	}}

	stats, err := env.operator(t, reader, true, false).Execute(env.ctx)
	require.NoError(t, err)

	// Counted as copied: it is what would happen.
	assert.Equal(t, 2, stats.Total.Copied)

	// The destination tree must not even have been created.
	_, statErr := os.Stat(env.destDir)
	assert.True(t, os.IsNotExist(statErr))
}

// 🧪 TestExecuteNoOverwrite verifies pre-existing destinations are
// skipped, not modified, and the run still succeeds
func TestExecuteNoOverwrite(t *testing.T) {
	env := newTestEnv(t)
	env.writeSource(t, "bias.xisf", "new content")

	rel := filepath.Join("MASTER BIAS", "ASI2600MM", "masterBias_GAIN_100_OFFSET_10.xisf")
	dest := filepath.Join(env.destDir, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(dest), 0755))
	require.NoError(t, os.WriteFile(dest, []byte("original content"), 0644))

	reader := &fakeReader{headers: map[string]header.Header{"bias.xisf": biasHeader()}}

	stats, err := env.operator(t, reader, false, true).Execute(env.ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Total.SkippedExists)
	assert.Equal(t, 0, stats.Total.Copied)
	assert.Equal(t, 0, stats.Total.Failed)

	content, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "original content", string(content))
}

// 🧪 TestExecuteIdempotence verifies re-running with overwrite enabled
// converges on an identical destination tree
func TestExecuteIdempotence(t *testing.T) {
	env := newTestEnv(t)
	env.writeSource(t, "bias.xisf", "bias content")

	reader := &fakeReader{headers: map[string]header.Header{"bias.xisf": biasHeader()}}

	_, err := env.operator(t, reader, false, false).Execute(env.ctx)
	require.NoError(t, err)
	firstTree := listTree(t, env.destDir)

	stats, err := env.operator(t, reader, false, false).Execute(env.ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Total.Copied)

	assert.Equal(t, firstTree, listTree(t, env.destDir))
}

// 🧪 TestExecuteUnreadableFileContinues verifies one bad file never
// aborts the run
func TestExecuteUnreadableFileContinues(t *testing.T) {
	env := newTestEnv(t)
	env.writeSource(t, "corrupt.xisf", "garbage")
	env.writeSource(t, "bias.xisf", "bias content")

	reader := &fakeReader{
		headers: map[string]header.Header{"bias.xisf": biasHeader()},
		errs: map[string]error{
			"corrupt.xisf": errors.Errorf("corrupt: %w", header.ErrUnreadableFile),
		},
	}

	stats, err := env.operator(t, reader, false, false).Execute(env.ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Total.Scanned)
	assert.Equal(t, 1, stats.Total.Copied)
	assert.Equal(t, 1, stats.Total.Rejected)
}

// 🧪 failingFiles wraps a Manager and fails every copy
type failingFiles struct {
	*status.Manager
}

func (f *failingFiles) CopyFile(ctx context.Context, src, rel string) error {
	return errors.New("disk full")
}

// 🧪 TestExecuteCopyFailureContinues verifies copy I/O errors are
// counted per file and never fatal
func TestExecuteCopyFailureContinues(t *testing.T) {
	env := newTestEnv(t)
	env.writeSource(t, "bias.xisf", "bias content")
	env.writeSource(t, "dark.fits", "dark content")

	reader := &fakeReader{headers: map[string]header.Header{
		"bias.xisf": biasHeader(),
		"dark.fits": darkHeader(),
	}}

	op, err := operation.New(operation.Options{
		SourceDir: env.sourceDir,
		Config:    config.Default(),
		Reader:    reader,
		Files:     &failingFiles{Manager: env.files},
		Logger:    env.logger,
	})
	require.NoError(t, err)

	stats, err := op.Execute(env.ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Total.Classified)
	assert.Equal(t, 2, stats.Total.Failed)
	assert.Equal(t, 0, stats.Total.Copied)
}

// 🧪 TestExecuteMissingSource verifies a missing source root is fatal
func TestExecuteMissingSource(t *testing.T) {
	env := newTestEnv(t)
	op, err := operation.New(operation.Options{
		SourceDir: filepath.Join(env.sourceDir, "nope"),
		Config:    config.Default(),
		Reader:    &fakeReader{},
		Files:     env.files,
		Logger:    env.logger,
	})
	require.NoError(t, err)

	stats, err := op.Execute(env.ctx)
	require.Error(t, err)
	assert.Nil(t, stats)
}

// 🧪 TestExecuteMatchesExtensionsCaseInsensitively tests the include
// pattern family
func TestExecuteMatchesExtensionsCaseInsensitively(t *testing.T) {
	env := newTestEnv(t)
	env.writeSource(t, "BIAS2.XISF", "bias content")
	env.writeSource(t, "dark.FIT", "dark content")

	reader := &fakeReader{headers: map[string]header.Header{
		"BIAS2.XISF": biasHeader(),
		"dark.FIT":   darkHeader(),
	}}

	stats, err := env.operator(t, reader, false, false).Execute(env.ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Total.Scanned)
	assert.Equal(t, 2, stats.Total.Copied)
}

// listTree returns every file under root with its content
func listTree(t *testing.T, root string) map[string]string {
	t.Helper()
	tree := map[string]string{}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		require.NoError(t, err)
		if d.IsDir() {
			return nil
		}
		content, err := os.ReadFile(path)
		require.NoError(t, err)
		rel, err := filepath.Rel(root, path)
		require.NoError(t, err)
		tree[rel] = string(content)
		return nil
	})
	require.NoError(t, err)
	return tree
}
