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

package header_test

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/masterlib/pkg/header"
)

// 🧪 writeXISF writes a minimal monolithic XISF container holding the
// given XML header
func writeXISF(t *testing.T, dir, name, xmlHeader string) string {
	t.Helper()

	preamble := make([]byte, 16)
	copy(preamble, "XISF0100")
	binary.LittleEndian.PutUint32(preamble[8:12], uint32(len(xmlHeader)))

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, append(preamble, xmlHeader...), 0644))
	return path
}

const biasXML = `<?xml version="1.0" encoding="UTF-8"?>
<xisf version="1.0" xmlns="http://www.pixinsight.com/xisf">
 <Image geometry="64:64:1" sampleFormat="Float32" location="attachment:4096:16384">
  <FITSKeyword name="IMAGETYP" value="'Master Bias'" comment="Type of image"/>
  <FITSKeyword name="INSTRUME" value="'ASI2600MM'" comment=""/>
  <FITSKeyword name="GAIN" value="100." comment=""/>
  <FITSKeyword name="OFFSET" value="10" comment=""/>
  <FITSKeyword name="SET-TEMP" value="-10." comment=""/>
 </Image>
 <Metadata>
  <FITSKeyword name="IMAGETYP" value="'shadowed duplicate'" comment=""/>
 </Metadata>
</xisf>`

// 🧪 TestXISFExtract tests keyword extraction from a well-formed container
func TestXISFExtract(t *testing.T) {
	dir := t.TempDir()
	path := writeXISF(t, dir, "bias.xisf", biasXML)

	hdr, err := header.NewReader().Extract(path)
	require.NoError(t, err)

	imagetyp, ok := hdr.Get("IMAGETYP")
	require.True(t, ok)
	// Quotes stripped, first occurrence wins over the Metadata duplicate.
	assert.Equal(t, "Master Bias", imagetyp)

	gain, ok := hdr.Get("GAIN")
	require.True(t, ok)
	assert.Equal(t, "100.", gain)

	settemp, ok := hdr.Lookup("SET-TEMP", "SETTEMP")
	require.True(t, ok)
	assert.Equal(t, "-10.", settemp)
}

// 🧪 TestXISFUnreadable tests the failure taxonomy for broken containers
func TestXISFUnreadable(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name  string
		write func(t *testing.T) string
	}{
		{
			name: "wrong_signature",
			write: func(t *testing.T) string {
				path := filepath.Join(dir, "notxisf.xisf")
				require.NoError(t, os.WriteFile(path, []byte("SIMPLE  = T        "), 0644))
				return path
			},
		},
		{
			name: "truncated_preamble",
			write: func(t *testing.T) string {
				path := filepath.Join(dir, "short.xisf")
				require.NoError(t, os.WriteFile(path, []byte("XISF"), 0644))
				return path
			},
		},
		{
			name: "malformed_xml",
			write: func(t *testing.T) string {
				return writeXISF(t, dir, "badxml.xisf", "<xisf><unclosed></xisf>")
			},
		},
		{
			name: "truncated_header",
			write: func(t *testing.T) string {
				preamble := make([]byte, 16)
				copy(preamble, "XISF0100")
				binary.LittleEndian.PutUint32(preamble[8:12], 4096)
				path := filepath.Join(dir, "trunc.xisf")
				require.NoError(t, os.WriteFile(path, append(preamble, "<xisf/>"...), 0644))
				return path
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := tt.write(t)
			hdr, err := header.NewReader().Extract(path)
			assert.Nil(t, hdr)
			require.Error(t, err)
			assert.True(t, errors.Is(err, header.ErrUnreadableFile))
		})
	}
}

// 🧪 TestReaderUnsupportedExtension tests format dispatch
func TestReaderUnsupportedExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0644))

	_, err := header.NewReader().Extract(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, header.ErrUnsupportedFormat))
}
