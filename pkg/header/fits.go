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
	"fmt"
	"os"
	"strconv"

	"github.com/astrogo/fitsio"
	"gitlab.com/tozd/go/errors"
)

// 📄 fitsReader extracts the primary HDU header of a FITS container
type fitsReader struct{}

func (r *fitsReader) Extract(path string) (Header, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	fits, err := fitsio.Open(f)
	if err != nil {
		return nil, errors.Errorf("%s: parsing fits container (%v): %w", path, err, ErrUnreadableFile)
	}
	defer fits.Close()

	if len(fits.HDUs()) == 0 {
		return nil, errors.Errorf("%s: no header unit: %w", path, ErrUnreadableFile)
	}

	hdr := fits.HDU(0).Header()
	out := make(Header, len(hdr.Keys()))
	for _, key := range hdr.Keys() {
		card := hdr.Get(key)
		if card == nil || card.Value == nil {
			continue
		}
		out.setCard(key, formatCardValue(card.Value))
	}
	return out, nil
}

// formatCardValue renders a FITS card value to its minimal textual form
func formatCardValue(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case bool:
		if val {
			return "T"
		}
		return "F"
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", val)
	}
}
