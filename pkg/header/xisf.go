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
	"bytes"
	"encoding/binary"
	"encoding/xml"
	"io"
	"os"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// XISF monolithic container layout: an 8-byte signature, a 4-byte
// little-endian XML header length, 4 reserved bytes, then the XML header
// itself. FITSKeyword elements inside the header carry the metadata.
const (
	xisfSignature    = "XISF0100"
	xisfPreambleSize = 16
	// A malformed length field must not make us slurp the pixel data.
	xisfMaxHeaderSize = 64 << 20
)

// 📄 xisfReader extracts FITSKeyword metadata from an XISF XML header
type xisfReader struct{}

func (r *xisfReader) Extract(path string) (Header, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	preamble := make([]byte, xisfPreambleSize)
	if _, err := io.ReadFull(f, preamble); err != nil {
		return nil, errors.Errorf("%s: reading xisf preamble: %w", path, ErrUnreadableFile)
	}
	if string(preamble[:len(xisfSignature)]) != xisfSignature {
		return nil, errors.Errorf("%s: not an xisf monolithic container: %w", path, ErrUnreadableFile)
	}

	headerLen := binary.LittleEndian.Uint32(preamble[8:12])
	if headerLen == 0 || headerLen > xisfMaxHeaderSize {
		return nil, errors.Errorf("%s: implausible xisf header length %d: %w", path, headerLen, ErrUnreadableFile)
	}

	raw := make([]byte, headerLen)
	if _, err := io.ReadFull(f, raw); err != nil {
		return nil, errors.Errorf("%s: reading xisf header: %w", path, ErrUnreadableFile)
	}

	hdr, err := parseXISFHeader(raw)
	if err != nil {
		return nil, errors.Errorf("%s: %v: %w", path, err, ErrUnreadableFile)
	}
	return hdr, nil
}

// parseXISFHeader collects every FITSKeyword element in the XML header,
// wherever it appears (PixInsight emits them under both Image and
// Metadata). First occurrence of a key wins.
func parseXISFHeader(raw []byte) (Header, error) {
	dec := xml.NewDecoder(bytes.NewReader(raw))
	out := make(Header)
	seen := false

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Errorf("parsing xisf xml: %w", err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if start.Name.Local == "xisf" {
			seen = true
		}
		if start.Name.Local != "FITSKeyword" {
			continue
		}

		var name, value string
		for _, attr := range start.Attr {
			switch attr.Name.Local {
			case "name":
				name = attr.Value
			case "value":
				value = attr.Value
			}
		}
		out.setCard(name, unquoteFITS(value))
	}

	if !seen {
		return nil, errors.New("no xisf root element")
	}
	return out, nil
}

// unquoteFITS strips the FITS-style single quotes XISF keeps around
// string-typed keyword values
func unquoteFITS(v string) string {
	v = strings.TrimSpace(v)
	if len(v) >= 2 && strings.HasPrefix(v, "'") && strings.HasSuffix(v, "'") {
		v = strings.TrimSpace(v[1 : len(v)-1])
	}
	return v
}
