package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// RequireBatchFile validates that exactly one efi_file argument is provided.
// Returns a helpful error message with usage and examples if missing or too many.
func RequireBatchFile(cmd *cobra.Command, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf(`missing required argument: <efi_file>

Usage: %s

Example:
  %s out/batch.json --remove-invalid`, cmd.UseLine(), cmd.CommandPath())
	}
	if len(args) > 1 {
		return fmt.Errorf("accepts 1 arg(s), received %d", len(args))
	}
	return nil
}
