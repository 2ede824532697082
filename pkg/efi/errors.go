package efi

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	ok, err := check.PassChecks(&batch, true)
//	if errors.Is(err, efi.ErrDuplicateIdentifier) {
//	    // Fix the converter; the batch cannot be repaired
//	}
var (
	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInvalidRecords indicates that violations were found and the batch
	// was left untouched because repair was not requested.
	ErrInvalidRecords = errors.New("invalid records")

	// ErrApprovalDenied indicates the user denied overwriting the batch file.
	ErrApprovalDenied = errors.New("approval denied")

	// ErrMissingIdentifier indicates a record without has_identifier.
	ErrMissingIdentifier = errors.New("missing identifier")

	// ErrDuplicateIdentifier indicates two records sharing an identifier.
	ErrDuplicateIdentifier = errors.New("duplicate identifier")

	// ErrUnknownRecordKind indicates a record whose category is not a
	// WorkVariant, Manifestation or Item.
	ErrUnknownRecordKind = errors.New("unknown record kind")

	// ErrSchemaViolation indicates a record rejected by the schema validator.
	ErrSchemaViolation = errors.New("schema violation")

	// ErrBatchModified indicates the batch file changed on disk between
	// loading and writing back.
	ErrBatchModified = errors.New("batch file modified")
)

// DuplicateIdentifierError reports an identifier owned by two records.
// Slots are positions in the batch.
type DuplicateIdentifierError struct {
	Identifier Identifier
	FirstSlot  int
	SecondSlot int
	SecondKind Kind
}

func (e *DuplicateIdentifierError) Error() string {
	return fmt.Sprintf("identifier is not unique: %s (records #%d and #%d)\n\nHint: %s",
		e.Identifier, e.FirstSlot, e.SecondSlot,
		"Every identifier must belong to exactly one record. Check the converter's local key generation.")
}

func (e *DuplicateIdentifierError) Unwrap() error { return ErrDuplicateIdentifier }

// MissingIdentifierError reports a record with an empty has_identifier.
type MissingIdentifierError struct {
	Slot int
	Kind Kind
}

func (e *MissingIdentifierError) Error() string {
	return fmt.Sprintf("has_identifier is missing in %s record #%d", e.Kind, e.Slot)
}

func (e *MissingIdentifierError) Unwrap() error { return ErrMissingIdentifier }

// ModelError reports a record variant the validator cannot handle.
// Category carries the raw JSON discriminator when the record was decoded.
type ModelError struct {
	Slot     int
	Kind     Kind
	Category string
}

func (e *ModelError) Error() string {
	if e.Category != "" {
		return fmt.Sprintf("cannot handle record category %q (record #%d)", e.Category, e.Slot)
	}
	return fmt.Sprintf("cannot handle record kind %s (record #%d)", e.Kind, e.Slot)
}

func (e *ModelError) Unwrap() error { return ErrUnknownRecordKind }

// SchemaError wraps a structural validation failure for one record.
type SchemaError struct {
	Slot   int
	Record Identifier
	Err    error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("record #%d (%s) does not conform to schema: %v", e.Slot, e.Record, e.Err)
}

// Unwrap exposes both the sentinel and the validator's own error.
func (e *SchemaError) Unwrap() []error { return []error{ErrSchemaViolation, e.Err} }

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrInvalidRecords):
		return ExitInvalidRecords
	case errors.Is(err, ErrApprovalDenied):
		return ExitApprovalDenied
	case errors.Is(err, ErrMissingIdentifier),
		errors.Is(err, ErrDuplicateIdentifier),
		errors.Is(err, ErrUnknownRecordKind):
		return ExitFatalRecordError
	case errors.Is(err, ErrSchemaViolation):
		return ExitSchemaViolation
	case errors.Is(err, ErrBatchModified):
		return ExitBatchModified
	}

	if isUsageError(err.Error()) {
		return ExitUsageError
	}

	return ExitGeneralError
}

// usagePatterns are the messages cobra and pflag produce for command line misuse.
var usagePatterns = []string{
	"unknown flag",
	"unknown shorthand flag",
	"unknown command",
	"accepts ",
	"requires at least",
	"required flag",
	"invalid argument",
	"missing required argument",
	"flag needs an argument",
}

func isUsageError(msg string) bool {
	for _, p := range usagePatterns {
		if strings.Contains(msg, p) {
			return true
		}
	}
	return false
}
