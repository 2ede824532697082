package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "eficonv",
	Short: "Check and repair AVefi record batches",
	Long: `eficonv checks batches of AVefi records (works, manifestations and items)
produced by the converters before they are published.

Each record is validated against the AVefi JSON schema and against rules the
schema cannot express: field length limits, date formats, resolvable
references between records, and records left without items. Invalid records
can be removed from the batch, together with every record depending on them.

Exit Codes:
  0  - Success (all records valid, or invalid records removed)
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration
  11 - Invalid records found (no action taken)
  12 - User denied overwriting the batch file
  13 - Missing or duplicate identifier, or unknown record category
  14 - Record does not conform to the AVefi schema
  15 - Batch file changed on disk while it was being checked`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo()
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}
