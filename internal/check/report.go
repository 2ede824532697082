package check

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/av-efi/eficonv/pkg/efi"
)

// ViolationKind classifies a repairable rule violation.
type ViolationKind int

const (
	ViolationTitleTooLong ViolationKind = iota + 1
	ViolationInvalidDate
	ViolationEmptyName
	ViolationNoteTooLong
	ViolationUnresolvableReference
	ViolationDanglingRecord
)

func (k ViolationKind) String() string {
	switch k {
	case ViolationTitleTooLong:
		return "title_too_long"
	case ViolationInvalidDate:
		return "invalid_date"
	case ViolationEmptyName:
		return "empty_name"
	case ViolationNoteTooLong:
		return "note_too_long"
	case ViolationUnresolvableReference:
		return "unresolvable_reference"
	case ViolationDanglingRecord:
		return "dangling_record"
	default:
		return "unknown"
	}
}

// MarshalText encodes the kind by name.
func (k ViolationKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name written by MarshalText.
func (k *ViolationKind) UnmarshalText(text []byte) error {
	for c := ViolationTitleTooLong; c <= ViolationDanglingRecord; c++ {
		if c.String() == string(text) {
			*k = c
			return nil
		}
	}
	return fmt.Errorf("unknown violation kind %q", text)
}

// Violation is one rule violation found during a run. Record names the
// offending record; for unresolvable references it is the first record
// holding the reference and Target is the missing identifier.
type Violation struct {
	Kind       ViolationKind   `json:"kind"`
	Record     efi.Identifier  `json:"record"`
	RecordKind efi.Kind        `json:"record_kind"`
	Target     *efi.Identifier `json:"target,omitempty"`
	Message    string          `json:"message"`
}

// RemovalReason records why a record was removed during repair.
type RemovalReason int

const (
	// RemovedInvalidFields: the record itself failed a field rule.
	RemovedInvalidFields RemovalReason = iota + 1
	// RemovedUnresolvable: the record referenced a missing identifier,
	// directly or through a record removed before it.
	RemovedUnresolvable
	// RemovedDangling: the record had no dependents left.
	RemovedDangling
)

func (r RemovalReason) String() string {
	switch r {
	case RemovedInvalidFields:
		return "invalid_fields"
	case RemovedUnresolvable:
		return "unresolvable_reference"
	case RemovedDangling:
		return "dangling"
	default:
		return "unknown"
	}
}

// MarshalText encodes the reason by name.
func (r RemovalReason) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText decodes a reason name written by MarshalText.
func (r *RemovalReason) UnmarshalText(text []byte) error {
	for c := RemovedInvalidFields; c <= RemovedDangling; c++ {
		if c.String() == string(text) {
			*r = c
			return nil
		}
	}
	return fmt.Errorf("unknown removal reason %q", text)
}

// Removal is one record dropped from the batch during repair.
type Removal struct {
	Record     efi.Identifier  `json:"record"`
	RecordKind efi.Kind        `json:"record_kind"`
	Reason     RemovalReason   `json:"reason"`
	Cause      *efi.Identifier `json:"cause,omitempty"`
}

// Report is the outcome of one run.
type Report struct {
	RunID      uuid.UUID   `json:"run_id"`
	Total      int         `json:"total"`
	Repair     bool        `json:"repair"`
	Violations []Violation `json:"violations"`
	Removed    []Removal   `json:"removed"`
}

// Passed reports whether the batch was valid before any repair.
func (r *Report) Passed() bool {
	return len(r.Violations) == 0
}

// Remaining is the number of records left in the batch after the run.
func (r *Report) Remaining() int {
	return r.Total - len(r.Removed)
}

// CountByKind tallies violations per kind.
func (r *Report) CountByKind() map[ViolationKind]int {
	counts := make(map[ViolationKind]int)
	for _, v := range r.Violations {
		counts[v.Kind]++
	}
	return counts
}
