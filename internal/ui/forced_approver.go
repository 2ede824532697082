package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/av-efi/eficonv/pkg/efi"
)

// ForcedApprover implements the Approver interface for forced (non-interactive)
// approval. It displays an optional countdown and then approves, used when
// the --force flag is provided or no terminal is attached.
type ForcedApprover struct {
	verbose   bool
	countdown time.Duration
	output    io.Writer
	sleepFn   func(time.Duration)
}

// NewForcedApprover creates a new ForcedApprover writing to stderr.
func NewForcedApprover(verbose bool, countdown time.Duration) efi.Approver {
	return &ForcedApprover{
		verbose:   verbose,
		countdown: countdown,
		output:    os.Stderr,
		sleepFn:   time.Sleep,
	}
}

// RequestApproval counts down and approves.
func (a *ForcedApprover) RequestApproval(ctx context.Context, path string, removed int) (bool, error) {
	seconds := int(a.countdown.Seconds())
	if seconds > 0 || a.verbose {
		fmt.Fprintf(a.output, "\nRemoving %d invalid record(s) from %s\n", removed, path)
	}

	for i := seconds; i > 0; i-- {
		if err := ctx.Err(); err != nil {
			fmt.Fprintln(a.output)
			return false, err
		}
		fmt.Fprintf(a.output, "\rWriting in: %d seconds... (Press Ctrl+C to cancel)", i)
		a.sleepFn(time.Second)
	}
	if err := ctx.Err(); err != nil {
		fmt.Fprintln(a.output)
		return false, err
	}

	if seconds > 0 || a.verbose {
		fmt.Fprintf(a.output, "\r✓ Proceeding with batch file overwrite...                    \n")
	}
	return true, nil
}

// Verify ForcedApprover implements the Approver interface at compile time
var _ efi.Approver = (*ForcedApprover)(nil)
