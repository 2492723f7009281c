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

package frame

import (
	"time"
)

// 🔭 Type identifies the kind of master calibration frame
type Type int

const (
	TypeUnrecognized Type = iota
	TypeBias              // Read-noise baseline frame
	TypeDark              // Thermal-noise baseline at a given exposure
	TypeFlat              // Per-pixel sensitivity map for an optical setup
)

// String returns the library directory name for the frame type
func (t Type) String() string {
	switch t {
	case TypeBias:
		return "MASTER BIAS"
	case TypeDark:
		return "MASTER DARK"
	case TypeFlat:
		return "MASTER FLAT"
	default:
		return "UNRECOGNIZED"
	}
}

// Prefix returns the camelCase filename prefix for the frame type
func (t Type) Prefix() string {
	switch t {
	case TypeBias:
		return "masterBias"
	case TypeDark:
		return "masterDark"
	case TypeFlat:
		return "masterFlat"
	default:
		return ""
	}
}

// 📦 MasterRecord is the classified, typed unit the pipeline operates on.
// All text fields are sanitized and filename-ready; optional fields are
// nil when the header did not carry them, never an empty-string sentinel.
type MasterRecord struct {
	Type   Type   // Bias, Dark or Flat; never Unrecognized
	Camera string // INSTRUME, always present
	Gain   string // GAIN, always present

	Offset      *string // OFFSET
	SetTemp     *string // SET-TEMP / SETTEMP
	ReadoutMode *string // READOUTM / READOUTMODE

	ExpTime *string // EXPTIME / EXPOSURE; present iff Type == TypeDark

	Filter   *string   // FILTER; present iff Type == TypeFlat
	DateObs  time.Time // DATE-OBS calendar date; zero unless Type == TypeFlat
	Optic    *string   // TELESCOP / OPTIC
	FocalLen *string   // FOCALLEN

	Ext string // source file extension, lower-cased, with leading dot
}
