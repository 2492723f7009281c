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

// Package library builds destination paths for the on-disk calibration
// library. The directory skeleton and the field order inside filenames
// are the persisted format of the library; they must stay bit-exact
// across versions so trees written by different runs stay mergeable.
package library

import (
	"path/filepath"
	"strings"

	"github.com/walteh/masterlib/pkg/frame"
)

// 🗺️ BuildPath maps a classified record to its destination path relative
// to the library root. Pure and deterministic: equal records always map
// to the equal path, and absent optional fields omit their filename
// segment entirely.
func BuildPath(rec *frame.MasterRecord) string {
	segments := []string{rec.Type.String(), rec.Camera}

	if rec.Type == frame.TypeFlat {
		if rec.Optic != nil {
			segments = append(segments, *rec.Optic)
		}
		segments = append(segments, "DATE_"+rec.DateObs.Format("2006-01-02"))
	}

	segments = append(segments, buildFilename(rec))
	return filepath.Join(segments...)
}

// buildFilename assembles the fixed-order filename for a record
func buildFilename(rec *frame.MasterRecord) string {
	var b strings.Builder
	b.WriteString(rec.Type.Prefix())

	switch rec.Type {
	case frame.TypeBias:
		appendField(&b, "GAIN", &rec.Gain)
		appendField(&b, "OFFSET", rec.Offset)
		appendField(&b, "SETTEMP", rec.SetTemp)
		appendField(&b, "READOUTMODE", rec.ReadoutMode)
	case frame.TypeDark:
		appendField(&b, "EXPTIME", rec.ExpTime)
		appendField(&b, "GAIN", &rec.Gain)
		appendField(&b, "OFFSET", rec.Offset)
		appendField(&b, "SETTEMP", rec.SetTemp)
	case frame.TypeFlat:
		appendField(&b, "FILTER", rec.Filter)
		appendField(&b, "GAIN", &rec.Gain)
		appendField(&b, "OFFSET", rec.Offset)
		appendField(&b, "SETTEMP", rec.SetTemp)
		appendField(&b, "FOCALLEN", rec.FocalLen)
	}

	b.WriteString(rec.Ext)
	return b.String()
}

// appendField appends a _KEY_value segment, or nothing when the field is
// absent
func appendField(b *strings.Builder, key string, value *string) {
	if value == nil {
		return
	}
	b.WriteString("_")
	b.WriteString(key)
	b.WriteString("_")
	b.WriteString(*value)
}
