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

package header

import (
	"path/filepath"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// 🚫 ErrUnreadableFile indicates the container could not be parsed or
// carries no header section
var ErrUnreadableFile = errors.New("unreadable calibration file")

// 🚫 ErrUnsupportedFormat indicates the file extension maps to no known reader
var ErrUnsupportedFormat = errors.New("unsupported file format")

// 📄 Header is the read-only key/value metadata extracted from one file.
// Keys are upper-cased and trimmed at ingestion; values keep their textual
// form (numbers rendered minimally, strings unquoted).
type Header map[string]string

// Get returns the value for a single key
func (h Header) Get(key string) (string, bool) {
	v, ok := h[normalizeKey(key)]
	return v, ok
}

// Lookup resolves a fallback chain of candidate keys in order, returning
// the first present value. Chains exist for keys with multiple historical
// spellings (EXPTIME/EXPOSURE, SET-TEMP/SETTEMP).
func (h Header) Lookup(keys ...string) (string, bool) {
	for _, key := range keys {
		if v, ok := h.Get(key); ok {
			return v, true
		}
	}
	return "", false
}

// 🔌 Reader extracts the embedded header from one calibration file
type Reader interface {
	// Extract reads the file's header. It fails with ErrUnreadableFile
	// when the container cannot be parsed, and never mutates the file.
	Extract(path string) (Header, error)
}

// 🏭 NewReader creates a reader that dispatches on file extension:
// .fits/.fit/.fts to the FITS reader, .xisf to the XISF reader
func NewReader() Reader {
	return &formatReader{
		fits: &fitsReader{},
		xisf: &xisfReader{},
	}
}

// 🎮 formatReader dispatches to the per-format implementations
type formatReader struct {
	fits Reader
	xisf Reader
}

func (r *formatReader) Extract(path string) (Header, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".fits", ".fit", ".fts":
		return r.fits.Extract(path)
	case ".xisf":
		return r.xisf.Extract(path)
	default:
		return nil, errors.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
}

// normalizeKey upper-cases and trims a header key
func normalizeKey(key string) string {
	return strings.ToUpper(strings.TrimSpace(key))
}

// setCard stores a key/value pair, first occurrence wins
func (h Header) setCard(key, value string) {
	k := normalizeKey(key)
	if k == "" {
		return
	}
	if _, ok := h[k]; ok {
		return
	}
	h[k] = strings.TrimSpace(value)
}
