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
	"strings"

	"github.com/walteh/masterlib/pkg/header"
)

// 🔍 typeFromHeader matches IMAGETYP against the recognized master frame
// type strings, case-insensitively and whitespace-tolerantly
func typeFromHeader(imagetyp string) Type {
	switch strings.ToUpper(strings.Join(strings.Fields(imagetyp), " ")) {
	case "MASTER BIAS":
		return TypeBias
	case "MASTER DARK":
		return TypeDark
	case "MASTER FLAT":
		return TypeFlat
	default:
		return TypeUnrecognized
	}
}

// 🔍 Classify inspects an extracted header and assembles a MasterRecord,
// or returns a *Rejection explaining why the file is not a recognized
// master. Exactly one of the two is returned; unknown header fields are
// ignored. ext is the source file's extension (with leading dot).
func Classify(hdr header.Header, ext string) (*MasterRecord, error) {
	imagetyp, _ := hdr.Get("IMAGETYP")
	frameType := typeFromHeader(imagetyp)
	if frameType == TypeUnrecognized {
		return nil, rejectUnrecognized(imagetyp)
	}

	rec := &MasterRecord{
		Type: frameType,
		Ext:  strings.ToLower(ext),
	}

	camera, ok := hdr.Get("INSTRUME")
	if rec.Camera = sanitizeText(camera); !ok || rec.Camera == "" {
		return nil, rejectMissing("INSTRUME")
	}

	gain, ok := hdr.Get("GAIN")
	if !ok {
		return nil, rejectMissing("GAIN")
	}
	normalized, err := normalizeInteger(gain)
	if err != nil {
		// An unparsable required number is as useless as a missing one.
		return nil, rejectMissing("GAIN")
	}
	rec.Gain = normalized

	rec.Offset = optionalInteger(hdr, "OFFSET")
	rec.SetTemp = optionalDecimal(hdr, "SET-TEMP", "SETTEMP")
	rec.ReadoutMode = optionalText(hdr, "READOUTM", "READOUTMODE")

	switch frameType {
	case TypeDark:
		exptime, ok := hdr.Lookup("EXPTIME", "EXPOSURE")
		if !ok {
			return nil, rejectMissing("EXPTIME")
		}
		normalized, err := normalizeDecimal(exptime)
		if err != nil {
			return nil, rejectMissing("EXPTIME")
		}
		rec.ExpTime = &normalized

	case TypeFlat:
		filter, ok := hdr.Get("FILTER")
		sanitized := sanitizeText(filter)
		if !ok || sanitized == "" {
			return nil, rejectMissing("FILTER")
		}
		rec.Filter = &sanitized

		dateObs, ok := hdr.Get("DATE-OBS")
		if !ok {
			return nil, rejectMissing("DATE-OBS")
		}
		date, err := parseDateObs(dateObs)
		if err != nil {
			return nil, rejectDate(dateObs)
		}
		rec.DateObs = date

		rec.Optic = optionalText(hdr, "TELESCOP", "OPTIC")
		rec.FocalLen = optionalDecimal(hdr, "FOCALLEN")
	}

	return rec, nil
}

// optionalText resolves an optional text field through its fallback
// chain; absent or blank-after-sanitization means nil, never ""
func optionalText(hdr header.Header, keys ...string) *string {
	raw, ok := hdr.Lookup(keys...)
	if !ok {
		return nil
	}
	sanitized := sanitizeText(raw)
	if sanitized == "" {
		return nil
	}
	return &sanitized
}

// optionalInteger resolves an optional integer field; unparsable values
// are treated as absent
func optionalInteger(hdr header.Header, keys ...string) *string {
	raw, ok := hdr.Lookup(keys...)
	if !ok {
		return nil
	}
	normalized, err := normalizeInteger(raw)
	if err != nil {
		return nil
	}
	return &normalized
}

// optionalDecimal resolves an optional decimal field; unparsable values
// are treated as absent
func optionalDecimal(hdr header.Header, keys ...string) *string {
	raw, ok := hdr.Lookup(keys...)
	if !ok {
		return nil
	}
	normalized, err := normalizeDecimal(raw)
	if err != nil {
		return nil
	}
	return &normalized
}
