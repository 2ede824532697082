package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/av-efi/eficonv/internal/check"
	"github.com/av-efi/eficonv/internal/tui"
)

// printReport writes the report as JSON to out, or a human summary to
// errOut. applied tells whether a repaired batch was written back.
func printReport(out, errOut io.Writer, report *check.Report, asJSON, applied bool) error {
	if asJSON {
		jsonBytes, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Fprintln(out, string(jsonBytes))
		return nil
	}

	fmt.Fprintln(errOut)
	fmt.Fprintln(errOut, tui.TitleStyle.Render("Check Summary:"))
	fmt.Fprintf(errOut, "  Records: %d\n", report.Total)
	fmt.Fprintf(errOut, "  Violations: %d\n", len(report.Violations))

	counts := report.CountByKind()
	kinds := make([]check.ViolationKind, 0, len(counts))
	for kind := range counts {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	for _, kind := range kinds {
		fmt.Fprintf(errOut, "    %s %s: %d\n", tui.SymbolBullet, kind, counts[kind])
	}

	if report.Repair && applied {
		fmt.Fprintf(errOut, "  Removed: %d\n", len(report.Removed))
		fmt.Fprintf(errOut, "  Remaining: %d\n", report.Remaining())
	}
	fmt.Fprintln(errOut, tui.MutedStyle.Render("  Run: "+report.RunID.String()))
	fmt.Fprintln(errOut)

	switch {
	case report.Passed():
		fmt.Fprintln(errOut, tui.SuccessStyle.Render(tui.SymbolCheck+" All records passed"))
	case report.Repair && applied:
		fmt.Fprintln(errOut, tui.WarningStyle.Render(fmt.Sprintf("%s %d invalid record(s) removed", tui.SymbolCheck, len(report.Removed))))
	default:
		fmt.Fprintln(errOut, tui.ErrorStyle.Render(tui.SymbolCross+" Batch contains invalid records"))
	}
	return nil
}
