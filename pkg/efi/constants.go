package efi

import "time"

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess          = 0  // All records valid, or invalid records removed
	ExitGeneralError     = 1  // Unknown or unclassified error
	ExitUsageError       = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic            = 3  // Internal panic (unexpected crash)
	ExitConfigError      = 10 // Invalid configuration
	ExitInvalidRecords   = 11 // Violations found and repair was not requested
	ExitApprovalDenied   = 12 // User denied overwriting the batch file
	ExitFatalRecordError = 13 // Missing/duplicate identifier or unknown record category
	ExitSchemaViolation  = 14 // Record rejected by the structural schema
	ExitBatchModified    = 15 // Batch file changed on disk while it was being checked
)

const (
	// DefaultLineLimit is the maximum number of characters allowed in a title.
	DefaultLineLimit = 250

	// DefaultTextLimit is the maximum number of characters allowed in a
	// free-text field such as a manifestation note.
	DefaultTextLimit = 8192

	// DefaultForceApprovalCountdown is the countdown shown by the forced
	// approver before the batch file is overwritten.
	DefaultForceApprovalCountdown = 0 * time.Second

	// EnvPrefix is prepended to every environment variable read by eficonv.
	EnvPrefix = "EFI_CONV_"
)
