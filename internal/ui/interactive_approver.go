package ui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/av-efi/eficonv/internal/tui"
	"github.com/av-efi/eficonv/pkg/efi"
)

// InteractiveApprover implements the Approver interface for console-based
// interactive confirmation. It prompts the user to type the batch file's
// name before the file is rewritten.
type InteractiveApprover struct {
	verbose bool
	input   io.Reader
	output  io.Writer

	// prompt replaces the plain line prompt when set.
	prompt func(ctx context.Context, title, message, phrase string) (string, error)
}

// NewInteractiveApprover creates a new InteractiveApprover on stdin and
// stderr. On a terminal the prompt is a full-screen text field.
func NewInteractiveApprover(verbose bool) efi.Approver {
	a := &InteractiveApprover{
		verbose: verbose,
		input:   os.Stdin,
		output:  os.Stderr,
	}
	if tui.IsInteractive() {
		a.prompt = func(ctx context.Context, title, message, phrase string) (string, error) {
			return tui.RunConfirm(ctx, a.input, a.output, title, message, phrase)
		}
	}
	return a
}

// RequestApproval asks the user to type the file name of path.
func (a *InteractiveApprover) RequestApproval(ctx context.Context, path string, removed int) (bool, error) {
	name := filepath.Base(path)
	title := fmt.Sprintf("WARNING: You are about to rewrite '%s'", path)
	message := fmt.Sprintf("%d invalid record(s) will be permanently removed from this file.", removed)

	var input string
	var err error
	if a.prompt != nil {
		input, err = a.prompt(ctx, title, message, name)
		if errors.Is(err, tui.ErrCancelled) {
			fmt.Fprintln(a.output, "✗ Operation cancelled.")
			return false, nil
		}
	} else {
		fmt.Fprintf(a.output, "\n⚠️  %s\n%s\n", title, message)
		fmt.Fprintf(a.output, "\nTo confirm, type the file name '%s' and press Enter: ", name)
		input, err = a.readLine(ctx)
	}
	if err != nil {
		return false, err
	}

	if input == name {
		fmt.Fprintln(a.output, "✓ Confirmed. Proceeding with batch file overwrite...")
		return true, nil
	}
	fmt.Fprintf(a.output, "✗ Input '%s' does not match file name '%s'. Operation cancelled.\n", input, name)
	return false, nil
}

// readLine reads one line with context cancellation support.
func (a *InteractiveApprover) readLine(ctx context.Context) (string, error) {
	inputChan := make(chan string, 1)
	errChan := make(chan error, 1)

	go func() {
		reader := bufio.NewReader(a.input)
		input, err := reader.ReadString('\n')
		if err != nil {
			errChan <- err
			return
		}
		inputChan <- strings.TrimSpace(input)
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case err := <-errChan:
		return "", fmt.Errorf("failed to read input: %w", err)
	case input := <-inputChan:
		return input, nil
	}
}

// Verify InteractiveApprover implements the Approver interface at compile time
var _ efi.Approver = (*InteractiveApprover)(nil)
