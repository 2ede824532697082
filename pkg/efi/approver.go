package efi

import "context"

// Approver handles user interaction before a repaired batch overwrites
// the file it was loaded from.
//
// Implementations:
//   - ForcedApprover: Shows an optional countdown and approves
//   - InteractiveApprover: Prompts the user to type the file name
type Approver interface {
	// RequestApproval asks for confirmation before path is rewritten
	// without the removed records.
	//
	// Returns:
	//   - bool: true if approved, false if denied
	//   - error: Any error that occurred during the approval process
	RequestApproval(ctx context.Context, path string, removed int) (bool, error)
}
