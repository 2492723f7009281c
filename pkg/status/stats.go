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
	"github.com/walteh/masterlib/pkg/frame"
)

// 📊 Counters holds the per-file outcome tallies for one bucket
type Counters struct {
	Scanned             int // candidate files discovered
	Classified          int // recognized masters with complete metadata
	Copied              int // copied (or would-copy, in dry-run)
	SkippedExists       int // destination existed under --no-overwrite
	SkippedUnrecognized int // IMAGETYP not a recognized master type
	Rejected            int // other classifier rejections (missing field, bad date, unreadable)
	Failed              int // copy I/O errors
}

// 📈 RunStatistics accumulates outcomes for one orchestrator run.
// It is created at run start, mutated by the single orchestrator
// goroutine, and read once at the end for the report. Totals are kept
// alongside a per-frame-type breakdown.
type RunStatistics struct {
	Total   Counters
	PerType map[frame.Type]*Counters
}

// 🏭 NewRunStatistics creates an empty statistics accumulator
func NewRunStatistics() *RunStatistics {
	return &RunStatistics{
		PerType: map[frame.Type]*Counters{
			frame.TypeBias: {},
			frame.TypeDark: {},
			frame.TypeFlat: {},
		},
	}
}

// forType returns the per-type bucket, or nil for unrecognized frames
// (those never acquire a type to be bucketed under)
func (s *RunStatistics) forType(t frame.Type) *Counters {
	return s.PerType[t]
}

// AddScanned records a discovered candidate file
func (s *RunStatistics) AddScanned() {
	s.Total.Scanned++
}

// AddClassified records a successful classification
func (s *RunStatistics) AddClassified(t frame.Type) {
	s.Total.Classified++
	if c := s.forType(t); c != nil {
		c.Classified++
	}
}

// AddCopied records a copy (or a dry-run would-copy)
func (s *RunStatistics) AddCopied(t frame.Type) {
	s.Total.Copied++
	if c := s.forType(t); c != nil {
		c.Copied++
	}
}

// AddSkippedExists records a destination skipped under --no-overwrite
func (s *RunStatistics) AddSkippedExists(t frame.Type) {
	s.Total.SkippedExists++
	if c := s.forType(t); c != nil {
		c.SkippedExists++
	}
}

// AddSkippedUnrecognized records a file whose IMAGETYP is not a master
func (s *RunStatistics) AddSkippedUnrecognized() {
	s.Total.SkippedUnrecognized++
}

// AddRejected records a non-unrecognized classifier rejection
func (s *RunStatistics) AddRejected() {
	s.Total.Rejected++
}

// AddFailed records a copy I/O failure
func (s *RunStatistics) AddFailed(t frame.Type) {
	s.Total.Failed++
	if c := s.forType(t); c != nil {
		c.Failed++
	}
}
