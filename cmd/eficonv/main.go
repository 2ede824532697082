package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/av-efi/eficonv/internal/cli"
	"github.com/av-efi/eficonv/pkg/efi"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
			os.Exit(efi.ExitPanic)
		}
	}()

	if os.Getenv("EFI_CONV_TEST_PANIC") == "1" {
		panic("intentional test panic")
	}

	if err := cli.Execute(); err != nil {
		os.Exit(efi.ExitCodeForError(err))
	}
}
