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
	"math"
	"strconv"
	"strings"
	"time"

	"gitlab.com/tozd/go/errors"
)

// sanitizeText trims a header value and replaces filesystem-unsafe runes
// with "-" so it can appear in a path segment or filename
func sanitizeText(s string) string {
	s = strings.TrimSpace(s)
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '/' || r == '\\' || r == ':' || r == '"' || r == '\'':
			b.WriteRune('-')
		case r == '*' || r == '?' || r == '<' || r == '>' || r == '|':
			b.WriteRune('-')
		case r < 0x20:
			b.WriteRune('-')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// parseFinite parses a numeric header value, refusing the non-finite
// spellings ParseFloat accepts ("nan", "inf"). A non-finite value can
// never round to stable filename text.
func parseFinite(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, errors.Errorf("parsing number %q: %w", s, err)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errors.Errorf("non-finite number %q", s)
	}
	return f, nil
}

// normalizeInteger renders a numeric header value as integer text.
// Two headers expressing the same physical value ("100", "100.0") must
// produce the same filename segment.
func normalizeInteger(s string) (string, error) {
	f, err := parseFinite(s)
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(int64(math.Round(f)), 10), nil
}

// normalizeDecimal renders a numeric header value rounded to one decimal
// place with trailing zeros trimmed ("300.00" -> "300", "-9.75" -> "-9.8")
func normalizeDecimal(s string) (string, error) {
	f, err := parseFinite(s)
	if err != nil {
		return "", err
	}
	out := strconv.FormatFloat(math.Round(f*10)/10, 'f', 1, 64)
	out = strings.TrimSuffix(out, ".0")
	if out == "-0" {
		out = "0"
	}
	return out, nil
}

// dateObsLayouts are the DATE-OBS spellings seen in the wild, most
// specific first
var dateObsLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// parseDateObs parses a DATE-OBS value down to its calendar date
func parseDateObs(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateObsLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, errors.Errorf("unparsable DATE-OBS %q", s)
}
