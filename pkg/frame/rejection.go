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
	"fmt"
)

// 🚫 RejectionKind categorizes why a file was not classified
type RejectionKind int

const (
	RejectionUnknown RejectionKind = iota
	RejectionUnrecognizedType
	RejectionMissingField
	RejectionInvalidDate
)

// String returns a string representation of RejectionKind
func (k RejectionKind) String() string {
	switch k {
	case RejectionUnrecognizedType:
		return "unrecognized frame type"
	case RejectionMissingField:
		return "missing required field"
	case RejectionInvalidDate:
		return "invalid date"
	default:
		return "unknown"
	}
}

// 🚫 Rejection is the non-fatal outcome for a file the classifier refuses.
// It satisfies error so it can flow through the orchestrator's per-file
// error path, but it is a counted outcome, not a run failure.
type Rejection struct {
	Kind  RejectionKind
	Field string // header field name, for RejectionMissingField
	Value string // offending value, for the other kinds
}

func (r *Rejection) Error() string {
	switch r.Kind {
	case RejectionUnrecognizedType:
		return fmt.Sprintf("unrecognized frame type %q", r.Value)
	case RejectionMissingField:
		return fmt.Sprintf("missing required field %s", r.Field)
	case RejectionInvalidDate:
		return fmt.Sprintf("invalid observation date %q", r.Value)
	default:
		return "rejected"
	}
}

// rejectUnrecognized builds an unrecognized-frame-type rejection
func rejectUnrecognized(value string) *Rejection {
	return &Rejection{Kind: RejectionUnrecognizedType, Value: value}
}

// rejectMissing builds a missing-required-field rejection naming the field
func rejectMissing(field string) *Rejection {
	return &Rejection{Kind: RejectionMissingField, Field: field}
}

// rejectDate builds an invalid-date rejection carrying the raw value
func rejectDate(value string) *Rejection {
	return &Rejection{Kind: RejectionInvalidDate, Value: value}
}
