// Package check validates a batch of converted AVefi records before
// publication and optionally repairs it.
//
// # Checks
//
// A run first rejects batches it cannot reason about at all. These
// conditions are fatal and abort the run before anything is changed:
//   - a record of unknown kind
//   - a record without identifiers
//   - a record rejected by the schema validator
//   - an identifier owned by two records
//
// It then collects violations, which are repairable:
//   - field rules: title length, date grammar, empty names, note length
//   - unresolvable references: a local identifier that no record owns
//   - dangling records: a Work or Manifestation with only local
//     identifiers that nothing refers to, so no Item descends from it
//
// # Repair
//
// With repair enabled, records failing a field rule are dropped before the
// reference graph is built. Records depending on a missing local
// identifier are removed together with everything depending on them in
// turn, and dangling records are removed together with any parent left
// without dependents. Both cascades are worklists over the identity index;
// a record reached twice is skipped the second time.
//
// The batch is compacted once, after all checks. A second run over a
// repaired batch finds no violations.
//
// # Usage
//
//	checker := check.New(check.WithRepair(true), check.WithLogger(logger))
//	report, err := checker.Run(&batch)
//	if err != nil {
//	    return err // fatal, batch untouched
//	}
//	if !report.Passed() {
//	    // violations found; batch was repaired in place
//	}
package check
