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

package status

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"gitlab.com/tozd/go/errors"
)

// 💾 FileManager handles the file system operations the transfer needs
type FileManager interface {
	// DestPath resolves a library-relative path against the root
	DestPath(rel string) string
	// FileExists reports whether a destination file already exists
	FileExists(ctx context.Context, rel string) (bool, error)
	// CopyFile copies src into the library, creating parent directories
	CopyFile(ctx context.Context, src, rel string) error
	// EnsureRoot creates the library root; failure is a setup error
	EnsureRoot(ctx context.Context) error
}

// 🔧 Manager implements FileManager rooted at the library destination
type Manager struct {
	root string
}

// 🏭 NewManager creates a file manager for the given library root
func NewManager(root string) *Manager {
	return &Manager{root: filepath.Clean(root)}
}

// Root returns the library root directory
func (m *Manager) Root() string {
	return m.root
}

func (m *Manager) DestPath(rel string) string {
	return filepath.Join(m.root, rel)
}

func (m *Manager) EnsureRoot(ctx context.Context) error {
	if err := os.MkdirAll(m.root, 0755); err != nil {
		return errors.Errorf("creating library root: %w", err)
	}
	return nil
}

func (m *Manager) FileExists(ctx context.Context, rel string) (bool, error) {
	_, err := os.Stat(m.DestPath(rel))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, errors.Errorf("checking file existence: %w", err)
}

func (m *Manager) CopyFile(ctx context.Context, src, rel string) error {
	dst := m.DestPath(rel)

	srcFile, err := os.Open(src)
	if err != nil {
		return errors.Errorf("opening source file: %w", err)
	}
	defer srcFile.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return errors.Errorf("creating parent directories: %w", err)
	}

	dstFile, err := os.Create(dst)
	if err != nil {
		return errors.Errorf("creating destination file: %w", err)
	}

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		dstFile.Close()
		return errors.Errorf("copying file content: %w", err)
	}

	if err := dstFile.Close(); err != nil {
		return errors.Errorf("flushing destination file: %w", err)
	}

	return nil
}
